package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

var ErrNotConfigured = errors.New("email delivery is not configured")

// Message is a rendered email ready for delivery.
type Message struct {
	To      []string
	Subject string
	HTML    string
	Text    string
	ReplyTo string
}

type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// ResendSender delivers mail through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey), from: from}
}

func (s *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	req := &resend.SendEmailRequest{
		From:    s.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	}
	resp, err := s.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return "", fmt.Errorf("resend: %w", err)
	}
	return resp.Id, nil
}

// DisabledSender is used when no API key is configured. It logs the message
// and reports ErrNotConfigured so callers record the email as not sent.
type DisabledSender struct {
	log *zap.Logger
}

func NewDisabledSender(log *zap.Logger) *DisabledSender {
	if log == nil {
		log = zap.NewNop()
	}
	return &DisabledSender{log: log}
}

func (s *DisabledSender) Send(_ context.Context, msg Message) (string, error) {
	s.log.Warn("email not sent: RESEND_API_KEY is empty",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return "", ErrNotConfigured
}

// NewSender picks the Resend sender when an API key is present.
func NewSender(apiKey, from string, log *zap.Logger) Sender {
	if apiKey == "" {
		return NewDisabledSender(log)
	}
	return NewResendSender(apiKey, from)
}
