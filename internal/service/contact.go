package service

import (
	"context"
	"fmt"
	"log/slog"

	"portfolio/internal/domain"
	"portfolio/internal/mail"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ContactRequest is a contact-form submission.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Validate checks the submission. Returns validation.Errors (keyed by JSON
// field name) so the handler can render a field-level error list.
func (r ContactRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required,
			validation.Length(2, 0).Error("must be at least 2 characters"),
		),
		validation.Field(&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(&r.Subject,
			validation.Required,
			validation.Length(3, 0).Error("must be at least 3 characters"),
		),
		validation.Field(&r.Message,
			validation.Required,
			validation.Length(10, 0).Error("must be at least 10 characters"),
		),
	)
}

// ContactService validates contact submissions and forwards them through the
// outbound mail relay. Relay failures surface synchronously; there is no
// retry - the visitor re-submits.
type ContactService struct {
	mailer mail.Mailer
	logger *slog.Logger
}

func NewContactService(mailer mail.Mailer, logger *slog.Logger) *ContactService {
	return &ContactService{mailer: mailer, logger: logger}
}

func (s *ContactService) Send(ctx context.Context, req ContactRequest) error {
	if err := req.Validate(); err != nil {
		// Double-wrap: errors.Is sees the sentinel, errors.As still reaches
		// the field-level validation.Errors for the 400 response body.
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	msg := mail.Message{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Message,
	}
	if err := s.mailer.Send(msg); err != nil {
		s.logger.Error("contact relay failed", "error", err)
		return err
	}

	s.logger.Info("contact message relayed", "from", req.Email)
	return nil
}
