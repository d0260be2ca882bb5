package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/manusiele/therapyflow-sub000/src/config"
	"github.com/manusiele/therapyflow-sub000/src/schemas"
	"github.com/manusiele/therapyflow-sub000/src/twilio"
)

// E.164-ish: optional +, leading non-zero digit, 8 to 15 digits total.
var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{7,14}$`)

// SMSProvider dispatches a message and returns the provider message SID.
type SMSProvider interface {
	SendMessage(ctx context.Context, to, body string) (string, error)
}

type SMSService struct {
	provider SMSProvider
}

// NewSMSService creates an SMS service. provider may be nil; delivery is then
// simulated (demo mode).
func NewSMSService(provider SMSProvider) *SMSService {
	return &SMSService{
		provider: provider,
	}
}

// NewSMSServiceFromConfig wires the Twilio client from configured credentials.
func NewSMSServiceFromConfig(cfg *config.GlobalConfig) *SMSService {
	if !cfg.HasTwilioCredentials() {
		return NewSMSService(nil)
	}
	return NewSMSService(twilio.NewClient(
		cfg.TwilioAccountSID,
		cfg.TwilioAuthToken,
		cfg.TwilioFromNumber,
		"https://api.twilio.com",
	))
}

// Send validates the recipient and dispatches the SMS. Without a configured
// provider the delivery is simulated and the response reports demo mode.
func (s *SMSService) Send(ctx context.Context, to, message string) (*schemas.SendSMSResponse, error) {
	instance := "/api/notifications/sms"

	if !phonePattern.MatchString(to) {
		return nil, schemas.NewBadRequestError(
			fmt.Sprintf("invalid phone number: %q", to),
			instance,
		)
	}
	if message == "" {
		return nil, schemas.NewBadRequestError("message is required", instance)
	}

	if s.provider == nil {
		slog.Info("SMS delivery simulated (demo mode)", "to", to)
		return &schemas.SendSMSResponse{
			Success: true,
			Demo:    true,
			To:      to,
		}, nil
	}

	sid, err := s.provider.SendMessage(ctx, to, message)
	if err != nil {
		return nil, schemas.NewBadGatewayError(
			fmt.Sprintf("SMS provider failure: %v", err),
			instance,
		)
	}

	slog.Info("SMS dispatched", "to", to, "sid", sid)
	return &schemas.SendSMSResponse{
		Success: true,
		Demo:    false,
		SID:     sid,
		To:      to,
	}, nil
}
