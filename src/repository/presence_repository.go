package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/manusiele/therapyflow-sub000/src/db"
	"github.com/manusiele/therapyflow-sub000/src/models"
)

// PresenceStore defines the persistence operations for session presence rows.
type PresenceStore interface {
	UpsertPresence(ctx context.Context, sessionID, userID string, userType models.UserType, isOnline bool) (*models.SessionPresence, error)
	Heartbeat(ctx context.Context, sessionID, userID string) error
	ListPresence(ctx context.Context, sessionID string) ([]models.SessionPresence, error)
	ExpireStale(ctx context.Context, olderThan time.Duration) (int64, error)
}

// PresenceRepository handles all database operations for presence rows
type PresenceRepository struct {
	db *db.DB
}

// NewPresenceRepository creates a new presence repository
func NewPresenceRepository(database *db.DB) *PresenceRepository {
	return &PresenceRepository{
		db: database,
	}
}

// UpsertPresence creates or updates the presence row for (sessionID, userID).
// Going online stamps joined_at, going offline stamps left_at; the write is
// idempotent so repeating the same transition is not an error.
func (r *PresenceRepository) UpsertPresence(ctx context.Context, sessionID, userID string, userType models.UserType, isOnline bool) (*models.SessionPresence, error) {
	query := `
		INSERT INTO session_presence
		(session_id, user_id, user_type, is_online, joined_at, left_at, last_seen_at)
		VALUES ($1, $2, $3, $4,
		        CASE WHEN $4 THEN now() END,
		        CASE WHEN NOT $4 THEN now() END,
		        now())
		ON CONFLICT (session_id, user_id) DO UPDATE SET
		    user_type    = EXCLUDED.user_type,
		    is_online    = EXCLUDED.is_online,
		    joined_at    = CASE WHEN EXCLUDED.is_online THEN now() ELSE session_presence.joined_at END,
		    left_at      = CASE WHEN NOT EXCLUDED.is_online THEN now() ELSE session_presence.left_at END,
		    last_seen_at = now()
		RETURNING session_id, user_id, user_type, is_online, joined_at, left_at, last_seen_at
	`

	var row models.SessionPresence
	err := r.db.GetConnection().QueryRowContext(ctx, query, sessionID, userID, userType, isOnline).Scan(
		&row.SessionID,
		&row.UserID,
		&row.UserType,
		&row.IsOnline,
		&row.JoinedAt,
		&row.LeftAt,
		&row.LastSeenAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to upsert presence: %w", err)
	}

	return &row, nil
}

// Heartbeat refreshes last_seen_at for an online participant so the reaper
// does not expire it. A missing row is not an error; the next join recreates it.
func (r *PresenceRepository) Heartbeat(ctx context.Context, sessionID, userID string) error {
	query := `
		UPDATE session_presence
		SET last_seen_at = now()
		WHERE session_id = $1 AND user_id = $2 AND is_online
	`

	_, err := r.db.GetConnection().ExecContext(ctx, query, sessionID, userID)
	if err != nil {
		return fmt.Errorf("failed to record heartbeat: %w", err)
	}
	return nil
}

// ListPresence returns all presence rows for a session.
func (r *PresenceRepository) ListPresence(ctx context.Context, sessionID string) ([]models.SessionPresence, error) {
	query := `
		SELECT session_id, user_id, user_type, is_online, joined_at, left_at, last_seen_at
		FROM session_presence
		WHERE session_id = $1
		ORDER BY user_id
	`

	rows, err := r.db.GetConnection().QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list presence: %w", err)
	}
	defer rows.Close()

	var presences []models.SessionPresence
	for rows.Next() {
		var row models.SessionPresence
		if err := rows.Scan(
			&row.SessionID,
			&row.UserID,
			&row.UserType,
			&row.IsOnline,
			&row.JoinedAt,
			&row.LeftAt,
			&row.LastSeenAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan presence row: %w", err)
		}
		presences = append(presences, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read presence rows: %w", err)
	}

	return presences, nil
}

// ExpireStale marks online rows offline whose last_seen_at is older than the
// given TTL. Returns the number of rows expired.
func (r *PresenceRepository) ExpireStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	query := `
		UPDATE session_presence
		SET is_online = FALSE, left_at = now()
		WHERE is_online AND last_seen_at < now() - $1::interval
	`

	interval := fmt.Sprintf("%d seconds", int64(olderThan.Seconds()))
	result, err := r.db.GetConnection().ExecContext(ctx, query, interval)
	if err != nil {
		return 0, fmt.Errorf("failed to expire stale presence: %w", err)
	}

	expired, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if expired > 0 {
		slog.Info("Expired stale presence rows", "count", expired)
	}

	return expired, nil
}
