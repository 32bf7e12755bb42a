package usecase

import (
	"context"
	"go-jobboard-web/internal/domain"
	"go-jobboard-web/pkg/apperror"
	"go-jobboard-web/pkg/email"
	"go-jobboard-web/pkg/validation"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MsgContactFailed is shown when the mail relay refused the message.
const MsgContactFailed = "We couldn't send your message. Please try again later."

type contactUsecase struct {
	emailService *email.EmailService
	validate     *validator.Validate
	log          *slog.Logger
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(emailService *email.EmailService, validate *validator.Validate, log *slog.Logger) domain.ContactUsecase {
	return &contactUsecase{
		emailService: emailService,
		validate:     validate,
		log:          log,
	}
}

// SendContactMessage validates the contact request and sends the email.
// Without SMTP settings the message is only logged.
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)

	if err := uc.validate.Struct(req); err != nil {
		return apperror.Validation(validation.FirstMessage(err), err)
	}

	if uc.emailService == nil || !uc.emailService.IsConfigured() {
		uc.log.InfoContext(ctx, "Contact message received (SMTP not configured)",
			"from", req.Email, "subject", req.Subject)
		return nil
	}

	emailData := email.ContactEmailData{
		SenderName:  req.Name,
		SenderEmail: req.Email,
		Subject:     req.Subject,
		Message:     req.Message,
	}
	if err := uc.emailService.SendContactEmail(emailData); err != nil {
		uc.log.ErrorContext(ctx, "Failed to send contact email", "error", err)
		return apperror.Unavailable(MsgContactFailed, err)
	}
	return nil
}
