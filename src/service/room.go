package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/manusiele/therapyflow-sub000/src/config"
	"github.com/manusiele/therapyflow-sub000/src/daily"
	"github.com/manusiele/therapyflow-sub000/src/models"
	"github.com/manusiele/therapyflow-sub000/src/schemas"
)

// maxRoomNameLen bounds the resolved room name. Truncation can in theory
// collide for id pairs sharing a long common prefix; acceptable because the
// space of concurrent same-day sessions per therapist is small.
const maxRoomNameLen = 40

var invalidRoomChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// ResolveRoomName derives a deterministic room key from the therapist id,
// patient id and calendar date (YYYY-MM-DD). Both participants compute it
// independently and land in the same room without a lookup round trip.
func ResolveRoomName(therapistID, patientID, date string) string {
	raw := fmt.Sprintf("%s-%s-%s", therapistID, patientID, date)
	clean := invalidRoomChars.ReplaceAllString(raw, "")
	if len(clean) > maxRoomNameLen {
		clean = clean[:maxRoomNameLen]
	}
	return strings.ToLower(clean)
}

// RoomNameForSession resolves the room key for a session on its scheduled day.
func RoomNameForSession(session *models.TherapySession) string {
	return ResolveRoomName(session.TherapistID, session.PatientID, session.ScheduledAt.UTC().Format("2006-01-02"))
}

// RoomProvider creates video rooms on the external provider. exists is true
// when the room was already present.
type RoomProvider interface {
	CreateRoom(ctx context.Context, name string) (*daily.Room, bool, error)
}

type RoomService struct {
	provider RoomProvider
}

// NewRoomService creates a room service. provider may be nil when no video
// credentials are configured; creation then fails with a 500 per request.
func NewRoomService(provider RoomProvider) *RoomService {
	return &RoomService{
		provider: provider,
	}
}

// NewRoomServiceFromConfig wires the Daily client from configured credentials.
func NewRoomServiceFromConfig(cfg *config.GlobalConfig) *RoomService {
	if !cfg.HasDailyCredentials() {
		return NewRoomService(nil)
	}
	return NewRoomService(daily.NewClient(cfg.DailyAPIKey, cfg.DailyAPIURL))
}

// CreateRoom creates the named provider room. Idempotent: an existing room
// is reported as success with Exists set, never as an error.
func (s *RoomService) CreateRoom(ctx context.Context, roomName string) (*schemas.CreateRoomResponse, error) {
	instance := "/api/daily/create-room"

	if roomName == "" {
		return nil, schemas.NewBadRequestError("room_name is required", instance)
	}

	if s.provider == nil {
		return nil, schemas.ProviderNotConfiguredError("video provider credentials are not configured", instance)
	}

	room, exists, err := s.provider.CreateRoom(ctx, roomName)
	if err != nil {
		return nil, schemas.NewInternalError(fmt.Sprintf("failed to create room: %v", err), instance)
	}

	return &schemas.CreateRoomResponse{
		Success: true,
		Exists:  exists,
		Room: schemas.RoomInfo{
			Name: room.Name,
			URL:  room.URL,
		},
	}, nil
}
