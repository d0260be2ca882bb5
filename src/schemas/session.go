package schemas

import (
	"time"

	"github.com/manusiele/therapyflow-sub000/src/models"
)

// CreateSessionRequest represents the body of a request to schedule a session.
type CreateSessionRequest struct {
	TherapistID string    `json:"therapist_id" binding:"required"`
	PatientID   string    `json:"patient_id" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

// SessionResponse wraps a single session record.
type SessionResponse struct {
	Session *models.TherapySession `json:"session"`
	// RoomName is the deterministic video room key both participants resolve.
	RoomName string `json:"room_name"`
}

// UpdateSessionStatusRequest represents the request body for updating session status
type UpdateSessionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateSessionStatusResponse represents the response for updating session status
type UpdateSessionStatusResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
}
