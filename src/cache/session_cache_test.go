package cache

import (
	"context"
	"testing"
	"time"

	"github.com/manusiele/therapyflow-sub000/src/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type SessionCacheTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	cache  *SessionCache
}

func (s *SessionCacheTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	cache, err := NewSessionCache(&Config{
		RedisClient: s.client,
		TTL:         time.Minute,
	})
	s.Require().NoError(err)
	s.cache = cache
}

func (s *SessionCacheTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestSessionCacheTestSuite(t *testing.T) {
	suite.Run(t, new(SessionCacheTestSuite))
}

func (s *SessionCacheTestSuite) testSession() *models.TherapySession {
	return &models.TherapySession{
		SessionID:     "sess-1",
		TherapistID:   "T1",
		PatientID:     "P1",
		ScheduledAt:   time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
		SessionStatus: models.StatusScheduled,
		CreatedAt:     time.Date(2024, 12, 30, 9, 0, 0, 0, time.UTC),
	}
}

func (s *SessionCacheTestSuite) TestSetAndGet() {
	session := s.testSession()

	err := s.cache.Set(context.Background(), session)
	s.Require().NoError(err)

	got, err := s.cache.Get(context.Background(), "sess-1")
	s.Require().NoError(err)
	s.Equal(session.SessionID, got.SessionID)
	s.Equal(session.TherapistID, got.TherapistID)
	s.Equal(session.SessionStatus, got.SessionStatus)
	s.True(session.ScheduledAt.Equal(got.ScheduledAt))
}

func (s *SessionCacheTestSuite) TestGetMiss() {
	_, err := s.cache.Get(context.Background(), "unknown")
	s.ErrorIs(err, ErrCacheMiss)
}

func (s *SessionCacheTestSuite) TestInvalidate() {
	session := s.testSession()
	s.Require().NoError(s.cache.Set(context.Background(), session))

	s.Require().NoError(s.cache.Invalidate(context.Background(), "sess-1"))

	_, err := s.cache.Get(context.Background(), "sess-1")
	s.ErrorIs(err, ErrCacheMiss)
}

func (s *SessionCacheTestSuite) TestInvalidateMissingIsNoop() {
	s.NoError(s.cache.Invalidate(context.Background(), "never-cached"))
}

func (s *SessionCacheTestSuite) TestEntryExpires() {
	session := s.testSession()
	s.Require().NoError(s.cache.Set(context.Background(), session))

	s.mr.FastForward(2 * time.Minute)

	_, err := s.cache.Get(context.Background(), "sess-1")
	s.ErrorIs(err, ErrCacheMiss)
}
