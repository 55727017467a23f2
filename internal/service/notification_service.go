package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pointdigital/manager-api/internal/model"
	"github.com/pointdigital/manager-api/internal/policy"
	"github.com/pointdigital/manager-api/internal/repository"
	"github.com/pointdigital/manager-api/internal/sms"
)

// Sender delivers one message with the given credentials and returns the
// provider message id.
type Sender interface {
	Send(creds model.SMSCredentials, to, body string) (string, error)
}

// SMSError carries a user-facing reason. It unwraps to ErrInvalidInput for
// configuration problems and to ErrUpstream for provider failures.
type SMSError struct {
	Kind   error
	Reason string
}

func (e *SMSError) Error() string { return e.Kind.Error() + ": " + e.Reason }
func (e *SMSError) Unwrap() error { return e.Kind }

func smsConfigError(reason string) error {
	return &SMSError{Kind: ErrInvalidInput, Reason: reason}
}

type NotificationService struct {
	settings    *repository.SettingsRepository
	logs        *repository.SMSLogRepository
	sender      Sender
	countryCode string
	log         zerolog.Logger
}

func NewNotificationService(settings *repository.SettingsRepository, logs *repository.SMSLogRepository, sender Sender, countryCode string, log zerolog.Logger) *NotificationService {
	return &NotificationService{settings: settings, logs: logs, sender: sender, countryCode: countryCode, log: log}
}

type SendResult struct {
	SID string
}

// Send resolves credentials from the first settings record, calls the
// provider once and records the attempt. Configuration problems are
// reported before any provider call and are not recorded.
func (s *NotificationService) Send(ctx context.Context, p model.Principal, to, body string) (*SendResult, error) {
	if err := authorize(p, policy.ActionSend, policy.ResourceMessages); err != nil {
		return nil, err
	}
	to = strings.TrimSpace(to)
	if to == "" || strings.TrimSpace(body) == "" {
		return nil, smsConfigError("to and body are required")
	}

	settings, err := s.settings.First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, smsConfigError("SMS settings are not configured")
		}
		return nil, err
	}
	creds := settings.SMSCredentials()
	if !creds.Enabled {
		return nil, smsConfigError("SMS sending is disabled in settings")
	}
	if !creds.Complete() {
		return nil, smsConfigError("Twilio credentials are incomplete")
	}

	dest := sms.NormalizePhone(to, s.countryCode)
	sid, sendErr := s.sender.Send(creds, dest, body)

	entry := &model.SMSLog{
		To:        dest,
		Body:      body,
		Status:    model.SMSStatusSuccess,
		Timestamp: time.Now().UTC().Truncate(time.Second),
	}
	var reason string
	if sendErr != nil {
		reason = sms.Describe(sendErr)
		entry.Status = model.SMSStatusFailed
		entry.Error = reason
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		s.log.Error().Err(err).Str("to", dest).Msg("failed to record sms log")
	}

	if sendErr != nil {
		s.log.Warn().Err(sendErr).Str("log_id", entry.ID).Str("to", dest).Msg("sms delivery failed")
		return nil, &SMSError{Kind: ErrUpstream, Reason: reason}
	}
	s.log.Info().Str("log_id", entry.ID).Str("sid", sid).Str("to", dest).Msg("sms sent")
	return &SendResult{SID: sid}, nil
}
