package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/manusiele/therapyflow-sub000/src/models"
	"github.com/manusiele/therapyflow-sub000/src/repository"
	"github.com/manusiele/therapyflow-sub000/src/schemas"
)

// SessionCache is the read-through cache the session service keeps in front
// of the repository. Implementations must treat a miss as cache.ErrCacheMiss.
type SessionCache interface {
	Get(ctx context.Context, sessionID string) (*models.TherapySession, error)
	Set(ctx context.Context, session *models.TherapySession) error
	Invalidate(ctx context.Context, sessionID string) error
}

type SessionService struct {
	repo  repository.SessionStore
	cache SessionCache
}

// NewSessionService creates a session service. cache may be nil.
func NewSessionService(repo repository.SessionStore, cache SessionCache) *SessionService {
	return &SessionService{
		repo:  repo,
		cache: cache,
	}
}

// CreateSession schedules a new therapy session.
func (s *SessionService) CreateSession(ctx context.Context, therapistID, patientID string, scheduledAt time.Time) (*models.TherapySession, error) {
	session, err := s.repo.CreateSession(ctx, therapistID, patientID, scheduledAt)
	if err != nil {
		return nil, schemas.NewInternalError(
			fmt.Sprintf("failed to create session: %v", err),
			"/sessions",
		)
	}
	return session, nil
}

// GetSession retrieves a session, reading through the cache. Cache failures
// fall back to the repository and are logged, never surfaced.
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*models.TherapySession, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, sessionID)
		if err == nil {
			return cached, nil
		}
	}

	session, err := s.repo.GetSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			return nil, schemas.NewNotFoundError(
				fmt.Sprintf("session with ID %s not found", sessionID),
				"/sessions/"+sessionID,
			)
		}
		return nil, schemas.NewInternalError(
			fmt.Sprintf("failed to get session: %v", err),
			"/sessions/"+sessionID,
		)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, session); err != nil {
			slog.Warn("Failed to cache session", "session_id", sessionID, "error", err)
		}
	}

	return session, nil
}

// StartSession moves a SCHEDULED session to IN_PROGRESS.
func (s *SessionService) StartSession(ctx context.Context, sessionID string) error {
	instance := "/sessions/" + sessionID + "/status/in-progress"

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}

	if session.SessionStatus != models.StatusScheduled && session.SessionStatus != models.StatusInProgress {
		return schemas.NewConflictError(
			"cannot start: session is not SCHEDULED",
			instance,
		)
	}

	return s.updateStatus(ctx, sessionID, models.StatusInProgress, instance)
}

// SetSessionStatusToCompleted sets the session status to COMPLETED
func (s *SessionService) SetSessionStatusToCompleted(ctx context.Context, sessionID string) error {
	instance := "/sessions/" + sessionID + "/status/completed"

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}

	// Check if session is in progress
	if session.SessionStatus != models.StatusInProgress {
		return schemas.SessionNotInProgressError(
			"cannot update status: session is not IN_PROGRESS",
			instance,
		)
	}

	return s.updateStatus(ctx, sessionID, models.StatusCompleted, instance)
}

// SetSessionStatusToCancelled cancels a session that has not completed.
func (s *SessionService) SetSessionStatusToCancelled(ctx context.Context, sessionID string) error {
	instance := "/sessions/" + sessionID + "/status/cancelled"

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}

	if session.SessionStatus == models.StatusCompleted {
		return schemas.NewConflictError(
			"cannot cancel: session already completed",
			instance,
		)
	}

	return s.updateStatus(ctx, sessionID, models.StatusCancelled, instance)
}

func (s *SessionService) updateStatus(ctx context.Context, sessionID string, status models.SessionStatus, instance string) error {
	err := s.repo.UpdateSessionStatus(ctx, sessionID, status)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			return schemas.NewNotFoundError(
				fmt.Sprintf("session with ID %s not found", sessionID),
				instance,
			)
		}
		return schemas.NewInternalError(
			fmt.Sprintf("failed to update session status to %s: %v", status, err),
			instance,
		)
	}

	// The cached row is stale the moment the status changes.
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, sessionID); err != nil {
			slog.Warn("Failed to invalidate cached session", "session_id", sessionID, "error", err)
		}
	}

	return nil
}
