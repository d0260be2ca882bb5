package models

import "time"

// SessionStatus represents the status of a therapy session
type SessionStatus string

const (
	StatusScheduled  SessionStatus = "SCHEDULED"
	StatusInProgress SessionStatus = "IN_PROGRESS"
	StatusCompleted  SessionStatus = "COMPLETED"
	StatusCancelled  SessionStatus = "CANCELLED"
)

// TherapySession represents a scheduled therapist/patient session in the database
type TherapySession struct {
	SessionID     string        `json:"session_id"`
	TherapistID   string        `json:"therapist_id"`
	PatientID     string        `json:"patient_id"`
	ScheduledAt   time.Time     `json:"scheduled_at"`
	SessionStatus SessionStatus `json:"session_status"`
	CreatedAt     time.Time     `json:"created_at"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty"`
}
