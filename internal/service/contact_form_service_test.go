package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/agency-site/internal/apiclient"
	"github.com/ignatzorin/agency-site/internal/models"
	"github.com/ignatzorin/agency-site/internal/pkg/apperror"
)

func validContact() models.ContactInput {
	return models.ContactInput{
		Name:    "Jane",
		Email:   "jane@example.com",
		Subject: "Project",
		Message: "We would like a new website <script>alert(1)</script>for our shop.",
	}
}

func TestContactForm_StripsHTML(t *testing.T) {
	api := new(mockSubmissionAPI)
	api.On("SubmitContact", mock.Anything, mock.MatchedBy(func(in models.ContactInput) bool {
		return in.Message == "We would like a new website for our shop."
	})).Return(nil).Once()

	receipt, err := NewContactFormService(api).Submit(context.Background(), validContact())
	require.NoError(t, err)
	assert.Equal(t, "Message sent!", receipt.Title)
	api.AssertExpectations(t)
}

func TestContactForm_Validation(t *testing.T) {
	api := new(mockSubmissionAPI)
	in := validContact()
	in.Email = "not-an-email"

	_, err := NewContactFormService(api).Submit(context.Background(), in)
	assert.True(t, apperror.IsValidation(err))
	api.AssertNotCalled(t, "SubmitContact", mock.Anything, mock.Anything)
}

func TestContactForm_ErrorMessages(t *testing.T) {
	tests := []struct {
		name   string
		apiErr error
		want   string
	}{
		{
			name:   "field errors joined",
			apiErr: &apiclient.APIError{StatusCode: 400, Errors: []apiclient.FieldError{{Msg: "Name is required."}, {Msg: "Email is invalid."}}},
			want:   "Name is required. Email is invalid.",
		},
		{
			name:   "api message",
			apiErr: &apiclient.APIError{StatusCode: 500, Message: "Mail server down"},
			want:   "Mail server down",
		},
		{
			name:   "fallback",
			apiErr: &apiclient.APIError{StatusCode: 500},
			want:   "Failed to send message. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(mockSubmissionAPI)
			api.On("SubmitContact", mock.Anything, mock.Anything).Return(tt.apiErr).Once()

			_, err := NewContactFormService(api).Submit(context.Background(), validContact())
			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.want, appErr.Message)
		})
	}
}
