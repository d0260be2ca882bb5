package models

import "time"

// UserType identifies which side of a session a user belongs to
type UserType string

const (
	UserTypeTherapist UserType = "therapist"
	UserTypePatient   UserType = "patient"
)

// SessionPresence represents one user's live connection state for one session.
// Keyed by (session_id, user_id); upserted on every join/leave.
type SessionPresence struct {
	SessionID  string     `json:"session_id"`
	UserID     string     `json:"user_id"`
	UserType   UserType   `json:"user_type"`
	IsOnline   bool       `json:"is_online"`
	JoinedAt   *time.Time `json:"joined_at,omitempty"`
	LeftAt     *time.Time `json:"left_at,omitempty"`
	LastSeenAt time.Time  `json:"last_seen_at"`
}

// PresenceEvent is published to the presence fanout exchange on every
// presence write so the peer client can react without polling.
type PresenceEvent struct {
	SessionID  string    `json:"session_id"`
	UserID     string    `json:"user_id"`
	UserType   UserType  `json:"user_type"`
	IsOnline   bool      `json:"is_online"`
	OccurredAt time.Time `json:"occurred_at"`
}

// GateState is the call page's coarse state as decided by the participant gate
type GateState string

const (
	GateWaiting GateState = "waiting"
	GateReady   GateState = "ready"
)

// GateDecision is the result of evaluating the participant gate against a
// snapshot of presence rows. Re-evaluating the same snapshot yields the
// same decision.
type GateDecision struct {
	State           GateState         `json:"state"`
	TherapistOnline bool              `json:"therapist_online"`
	PatientOnline   bool              `json:"patient_online"`
	OnlineCount     int               `json:"online_count"`
	Participants    []SessionPresence `json:"participants"`
}
