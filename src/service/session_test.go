package service

import (
	"context"
	"testing"
	"time"

	"github.com/manusiele/therapyflow-sub000/src/cache"
	"github.com/manusiele/therapyflow-sub000/src/models"
	"github.com/manusiele/therapyflow-sub000/src/schemas"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSessionStore is an in-memory SessionStore.
type fakeSessionStore struct {
	sessions map[string]*models.TherapySession
	getCalls int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*models.TherapySession)}
}

func (f *fakeSessionStore) CreateSession(_ context.Context, therapistID, patientID string, scheduledAt time.Time) (*models.TherapySession, error) {
	session := &models.TherapySession{
		SessionID:     uuid.New().String(),
		TherapistID:   therapistID,
		PatientID:     patientID,
		ScheduledAt:   scheduledAt,
		SessionStatus: models.StatusScheduled,
		CreatedAt:     time.Now().UTC(),
	}
	f.sessions[session.SessionID] = session
	return session, nil
}

func (f *fakeSessionStore) GetSessionByID(_ context.Context, sessionID string) (*models.TherapySession, error) {
	f.getCalls++
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSessionStore) UpdateSessionStatus(_ context.Context, sessionID string, status models.SessionStatus) error {
	session, ok := f.sessions[sessionID]
	if !ok {
		return models.ErrSessionNotFound
	}
	session.SessionStatus = status
	return nil
}

// fakeSessionCache is an in-memory SessionCache.
type fakeSessionCache struct {
	entries     map[string]*models.TherapySession
	invalidated []string
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{entries: make(map[string]*models.TherapySession)}
}

func (f *fakeSessionCache) Get(_ context.Context, sessionID string) (*models.TherapySession, error) {
	session, ok := f.entries[sessionID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return session, nil
}

func (f *fakeSessionCache) Set(_ context.Context, session *models.TherapySession) error {
	f.entries[session.SessionID] = session
	return nil
}

func (f *fakeSessionCache) Invalidate(_ context.Context, sessionID string) error {
	delete(f.entries, sessionID)
	f.invalidated = append(f.invalidated, sessionID)
	return nil
}

func TestGetSessionReadsThroughCache(t *testing.T) {
	store := newFakeSessionStore()
	sessionCache := newFakeSessionCache()
	svc := NewSessionService(store, sessionCache)

	created, err := svc.CreateSession(context.Background(), "T1", "P1", time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	first, err := svc.GetSession(context.Background(), created.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, store.getCalls)

	second, err := svc.GetSession(context.Background(), created.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, store.getCalls, "second read should hit the cache")
	assert.Equal(t, first.SessionID, second.SessionID)
}

func TestGetSessionNotFound(t *testing.T) {
	svc := NewSessionService(newFakeSessionStore(), nil)

	_, err := svc.GetSession(context.Background(), "missing")

	var apiErr *schemas.ErrorResponse
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
}

func TestCompleteSessionRequiresInProgress(t *testing.T) {
	store := newFakeSessionStore()
	svc := NewSessionService(store, nil)

	created, err := svc.CreateSession(context.Background(), "T1", "P1", time.Now().UTC())
	require.NoError(t, err)

	err = svc.SetSessionStatusToCompleted(context.Background(), created.SessionID)

	var apiErr *schemas.ErrorResponse
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.Status)
}

func TestStatusChangeInvalidatesCache(t *testing.T) {
	store := newFakeSessionStore()
	sessionCache := newFakeSessionCache()
	svc := NewSessionService(store, sessionCache)

	created, err := svc.CreateSession(context.Background(), "T1", "P1", time.Now().UTC())
	require.NoError(t, err)

	_, err = svc.GetSession(context.Background(), created.SessionID)
	require.NoError(t, err)

	require.NoError(t, svc.StartSession(context.Background(), created.SessionID))
	assert.Contains(t, sessionCache.invalidated, created.SessionID)

	require.NoError(t, svc.SetSessionStatusToCompleted(context.Background(), created.SessionID))

	got, err := svc.GetSession(context.Background(), created.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.SessionStatus)
}

func TestCancelCompletedSessionConflicts(t *testing.T) {
	store := newFakeSessionStore()
	svc := NewSessionService(store, nil)

	created, err := svc.CreateSession(context.Background(), "T1", "P1", time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, svc.StartSession(context.Background(), created.SessionID))
	require.NoError(t, svc.SetSessionStatusToCompleted(context.Background(), created.SessionID))

	err = svc.SetSessionStatusToCancelled(context.Background(), created.SessionID)

	var apiErr *schemas.ErrorResponse
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.Status)
}
