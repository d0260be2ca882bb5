package service

// Service bundles the application services the router wires into controllers.
type Service struct {
	Sessions *SessionService
	Presence *PresenceService
	Rooms    *RoomService
	SMS      *SMSService
}

// NewService creates a new instance of Service.
func NewService(sessions *SessionService, presence *PresenceService, rooms *RoomService, sms *SMSService) *Service {
	return &Service{
		Sessions: sessions,
		Presence: presence,
		Rooms:    rooms,
		SMS:      sms,
	}
}
