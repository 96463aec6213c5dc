package service

import (
	"context"

	"github.com/ignatzorin/agency-site/internal/logger"
	"github.com/ignatzorin/agency-site/internal/models"
	"github.com/ignatzorin/agency-site/internal/pkg/apperror"
	"github.com/ignatzorin/agency-site/internal/validation"
)

// ContactFormService принимает сообщения из формы обратной связи.
type ContactFormService struct {
	api SubmissionAPI
}

func NewContactFormService(api SubmissionAPI) *ContactFormService {
	return &ContactFormService{api: api}
}

// Submit очищает поля от HTML, проверяет их и пересылает сообщение в API.
func (s *ContactFormService) Submit(ctx context.Context, in models.ContactInput) (*Receipt, error) {
	clean := models.ContactInput{
		Name:    plainText(in.Name),
		Email:   plainText(in.Email),
		Subject: plainText(in.Subject),
		Message: plainText(in.Message),
	}
	if err := validation.ValidateContactInput(clean); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	if err := s.api.SubmitContact(ctx, clean); err != nil {
		logger.WithComponent("contact-form").WithError(err).Warn("contact submission failed")
		return nil, submissionError(err, "Failed to send message. Please try again.")
	}
	return &Receipt{Title: "Message sent!", Message: "Message sent successfully! We'll get back to you soon."}, nil
}
