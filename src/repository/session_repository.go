package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/manusiele/therapyflow-sub000/src/db"
	"github.com/manusiele/therapyflow-sub000/src/models"

	"github.com/google/uuid"
)

// SessionStore defines the persistence operations for therapy sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, therapistID, patientID string, scheduledAt time.Time) (*models.TherapySession, error)
	GetSessionByID(ctx context.Context, sessionID string) (*models.TherapySession, error)
	UpdateSessionStatus(ctx context.Context, sessionID string, status models.SessionStatus) error
}

// SessionRepository handles all database operations for therapy sessions
type SessionRepository struct {
	db *db.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(database *db.DB) *SessionRepository {
	return &SessionRepository{
		db: database,
	}
}

// CreateSession creates a new scheduled therapy session
func (r *SessionRepository) CreateSession(ctx context.Context, therapistID, patientID string, scheduledAt time.Time) (*models.TherapySession, error) {
	sessionID := uuid.New().String()

	query := `
		INSERT INTO therapy_sessions
		(session_id, therapist_id, patient_id, scheduled_at, session_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING session_id, therapist_id, patient_id, scheduled_at, session_status,
		          created_at, completed_at
	`

	var session models.TherapySession
	err := r.db.GetConnection().QueryRowContext(
		ctx,
		query,
		sessionID,
		therapistID,
		patientID,
		scheduledAt,
		models.StatusScheduled,
		time.Now(),
	).Scan(
		&session.SessionID,
		&session.TherapistID,
		&session.PatientID,
		&session.ScheduledAt,
		&session.SessionStatus,
		&session.CreatedAt,
		&session.CompletedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	slog.Info("Created new session",
		"session_id", session.SessionID,
		"therapist_id", therapistID,
		"patient_id", patientID)

	return &session, nil
}

// GetSessionByID retrieves a session by its ID
func (r *SessionRepository) GetSessionByID(ctx context.Context, sessionID string) (*models.TherapySession, error) {
	query := `
		SELECT session_id, therapist_id, patient_id, scheduled_at, session_status,
		       created_at, completed_at
		FROM therapy_sessions
		WHERE session_id = $1
	`

	var session models.TherapySession
	err := r.db.GetConnection().QueryRowContext(ctx, query, sessionID).Scan(
		&session.SessionID,
		&session.TherapistID,
		&session.PatientID,
		&session.ScheduledAt,
		&session.SessionStatus,
		&session.CreatedAt,
		&session.CompletedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &session, nil
}

// UpdateSessionStatus updates the status of a session. Moving to COMPLETED
// also stamps completed_at.
func (r *SessionRepository) UpdateSessionStatus(ctx context.Context, sessionID string, status models.SessionStatus) error {
	query := `
		UPDATE therapy_sessions
		SET session_status = $1,
		    completed_at = CASE WHEN $1 = 'COMPLETED' THEN now() ELSE completed_at END
		WHERE session_id = $2
	`

	result, err := r.db.GetConnection().ExecContext(ctx, query, status, sessionID)
	if err != nil {
		return fmt.Errorf("failed to update session status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrSessionNotFound
	}

	slog.Info("Updated session status",
		"session_id", sessionID,
		"status", status)

	return nil
}
