package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/manusiele/therapyflow-sub000/src/config"
	"github.com/manusiele/therapyflow-sub000/src/models"
	"github.com/manusiele/therapyflow-sub000/src/rabbitmq"
	"github.com/manusiele/therapyflow-sub000/src/repository"
	"github.com/manusiele/therapyflow-sub000/src/schemas"
)

// SessionGetter is the slice of the session service the gate needs.
type SessionGetter interface {
	GetSession(ctx context.Context, sessionID string) (*models.TherapySession, error)
}

type PresenceService struct {
	presence  repository.PresenceStore
	sessions  SessionGetter
	publisher rabbitmq.Publisher
}

// NewPresenceService creates a presence service. publisher may be nil; event
// fan-out is then skipped.
func NewPresenceService(presence repository.PresenceStore, sessions SessionGetter, publisher rabbitmq.Publisher) *PresenceService {
	return &PresenceService{
		presence:  presence,
		sessions:  sessions,
		publisher: publisher,
	}
}

// UpdatePresence upserts the user's presence row for a session and fans the
// change out to the presence exchange. The upsert is idempotent: marking a
// user offline twice is a no-op, not an error. Publish failures are logged
// only; the peer falls back to polling the gate.
func (s *PresenceService) UpdatePresence(ctx context.Context, sessionID, userID string, userType models.UserType, isOnline bool) (*models.SessionPresence, error) {
	instance := "/presence"

	if userType != models.UserTypeTherapist && userType != models.UserTypePatient {
		return nil, schemas.NewBadRequestError(
			fmt.Sprintf("user_type must be %q or %q", models.UserTypeTherapist, models.UserTypePatient),
			instance,
		)
	}

	row, err := s.presence.UpsertPresence(ctx, sessionID, userID, userType, isOnline)
	if err != nil {
		return nil, schemas.NewInternalError(
			fmt.Sprintf("failed to update presence: %v", err),
			instance,
		)
	}

	s.publishEvent(models.PresenceEvent{
		SessionID:  sessionID,
		UserID:     userID,
		UserType:   userType,
		IsOnline:   isOnline,
		OccurredAt: time.Now().UTC(),
	})

	return row, nil
}

// Heartbeat refreshes the participant's last-seen timestamp.
func (s *PresenceService) Heartbeat(ctx context.Context, sessionID, userID string) error {
	if err := s.presence.Heartbeat(ctx, sessionID, userID); err != nil {
		return schemas.NewInternalError(
			fmt.Sprintf("failed to record heartbeat: %v", err),
			"/presence/heartbeat",
		)
	}
	return nil
}

// CheckParticipants evaluates the participant gate for a session against a
// fresh snapshot of presence rows. The decision is a pure function of the
// snapshot, so re-running it on every presence event is safe.
func (s *PresenceService) CheckParticipants(ctx context.Context, sessionID string) (*models.GateDecision, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	rows, err := s.presence.ListPresence(ctx, sessionID)
	if err != nil {
		return nil, schemas.NewInternalError(
			fmt.Sprintf("failed to read presence: %v", err),
			"/sessions/"+sessionID+"/gate",
		)
	}

	decision := DecideGate(session, rows)
	return &decision, nil
}

// DecideGate decides whether the call may start. The gate opens only when the
// session's assigned therapist and patient are both online; unexpected online
// rows never unlock it.
func DecideGate(session *models.TherapySession, rows []models.SessionPresence) models.GateDecision {
	decision := models.GateDecision{
		State: models.GateWaiting,
	}

	for _, row := range rows {
		if !row.IsOnline {
			continue
		}
		decision.OnlineCount++
		decision.Participants = append(decision.Participants, row)
		switch row.UserID {
		case session.TherapistID:
			decision.TherapistOnline = true
		case session.PatientID:
			decision.PatientOnline = true
		}
	}

	if decision.TherapistOnline && decision.PatientOnline {
		decision.State = models.GateReady
	}

	return decision
}

func (s *PresenceService) publishEvent(event models.PresenceEvent) {
	if s.publisher == nil {
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal presence event", "session_id", event.SessionID, "error", err)
		return
	}

	if err := s.publisher.Publish(config.PresenceExchange, body); err != nil {
		slog.Error("Failed to publish presence event",
			"session_id", event.SessionID,
			"user_id", event.UserID,
			"error", err)
	}
}
