package inquiry

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tigermarine/internal/notification"
)

// Notifier delivers the email that accompanies each inquiry.
type Notifier interface {
	SendContact(ctx context.Context, e notification.ContactEmail) error
	SendCustomizer(ctx context.Context, e notification.CustomizerEmail) error
}

type Service struct {
	repo     *Repository
	notifier Notifier
	hub      *Hub
	log      *zap.Logger
}

func NewService(repo *Repository, notifier Notifier, hub *Hub, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, notifier: notifier, hub: hub, log: log}
}

// SubmitContact emails and stores a contact form submission. Email delivery
// is best effort: the inquiry is stored either way and EmailSent records
// the outcome. req must already be normalized and validated.
func (s *Service) SubmitContact(ctx context.Context, req ContactRequest) (*Inquiry, error) {
	err := s.notifier.SendContact(ctx, notification.ContactEmail{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		s.log.Warn("contact email failed", zap.String("email", req.Email), zap.Error(err))
	}

	inq := &Inquiry{
		Type:      TypeContact,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     optional(req.Phone),
		Subject:   optional(req.Subject),
		Message:   optional(req.Message),
		EmailSent: err == nil,
	}
	return inq, s.save(ctx, inq)
}

func (s *Service) SubmitCustomizer(ctx context.Context, req CustomizerRequest) (*Inquiry, error) {
	err := s.notifier.SendCustomizer(ctx, notification.CustomizerEmail{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		ModelName: req.ModelName,
		Colors:    req.SelectedColors,
		Features:  req.SelectedFeatures,
		Message:   req.Message,
	})
	if err != nil {
		s.log.Warn("customizer email failed", zap.String("email", req.Email), zap.Error(err))
	}

	inq := &Inquiry{
		Type:             TypeCustomizer,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            optional(req.Phone),
		ModelName:        optional(req.ModelName),
		SelectedColors:   req.SelectedColors,
		SelectedFeatures: req.SelectedFeatures,
		Message:          optional(req.Message),
		EmailSent:        err == nil,
	}
	return inq, s.save(ctx, inq)
}

func (s *Service) save(ctx context.Context, inq *Inquiry) error {
	if err := s.repo.Create(ctx, inq); err != nil {
		return fmt.Errorf("save %s inquiry: %w", inq.Type, err)
	}
	s.log.Info("inquiry saved",
		zap.Uint("id", inq.ID),
		zap.String("type", inq.Type),
		zap.Bool("email_sent", inq.EmailSent),
	)
	if s.hub != nil {
		s.hub.Publish(Event{Type: EventInquiryCreated, Inquiry: inq})
	}
	return nil
}

// List clamps the page size to [1, MaxListLimit] and rejects unknown types.
func (s *Service) List(ctx context.Context, f ListFilter) ([]Inquiry, int64, ListFilter, error) {
	if f.Type != "" && f.Type != TypeContact && f.Type != TypeCustomizer {
		return nil, 0, f, fmt.Errorf("%w: %q", ErrInvalidType, f.Type)
	}
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, 0, f, fmt.Errorf("list inquiries: %w", err)
	}
	return items, total, f, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
