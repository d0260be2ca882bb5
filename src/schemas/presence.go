package schemas

import "github.com/manusiele/therapyflow-sub000/src/models"

// UpdatePresenceRequest represents the body of a presence join/leave upsert.
type UpdatePresenceRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	UserID    string `json:"user_id" binding:"required"`
	UserType  string `json:"user_type" binding:"required"`
	IsOnline  *bool  `json:"is_online" binding:"required"`
}

// UpdatePresenceResponse acknowledges a presence write.
type UpdatePresenceResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	IsOnline  bool   `json:"is_online"`
}

// HeartbeatRequest refreshes a participant's last-seen timestamp.
type HeartbeatRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	UserID    string `json:"user_id" binding:"required"`
}

// GateStatusResponse carries the participant gate's decision for a session.
type GateStatusResponse struct {
	SessionID string              `json:"session_id"`
	Decision  models.GateDecision `json:"decision"`
}
