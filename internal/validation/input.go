package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ignatzorin/agency-site/internal/models"
)

// Константы валидации
const (
	MaxNameLength        = 100
	MaxEmailLength       = 254
	MaxSubjectLength     = 200
	MinMessageLength     = 10
	MaxMessageLength     = 5000
	MaxCoverLetterLength = 5000
)

var (
	emailLocalRegex  = regexp.MustCompile(`^[a-z0-9._+-]+$`)
	emailDomainRegex = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s must be at least %d characters", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s must be at most %d characters", fieldName, max)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("Email is required")
	}
	if len(email) > MaxEmailLength {
		return fmt.Errorf("Email is too long")
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("Please enter a valid email address")
	}

	localPart, domainPart := parts[0], parts[1]
	if len(localPart) == 0 || len(localPart) > 64 || !emailLocalRegex.MatchString(localPart) {
		return fmt.Errorf("Please enter a valid email address")
	}
	if !emailDomainRegex.MatchString(domainPart) {
		return fmt.Errorf("Please enter a valid email address")
	}
	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateContactInput проверяет форму обратной связи. Все поля обязательны.
func ValidateContactInput(in models.ContactInput) error {
	if err := ValidateNonEmpty("Name", in.Name); err != nil {
		return err
	}
	if err := ValidateLength("Name", in.Name, 0, MaxNameLength); err != nil {
		return err
	}
	if err := ValidateEmail(in.Email); err != nil {
		return err
	}
	if err := ValidateNonEmpty("Subject", in.Subject); err != nil {
		return err
	}
	if err := ValidateLength("Subject", in.Subject, 0, MaxSubjectLength); err != nil {
		return err
	}
	if err := ValidateNonEmpty("Message", in.Message); err != nil {
		return err
	}
	return ValidateLength("Message", strings.TrimSpace(in.Message), MinMessageLength, MaxMessageLength)
}

// ValidateApplicant проверяет имя и email кандидата и необязательное сопроводительное письмо.
func ValidateApplicant(name, email, coverLetter string) error {
	if err := ValidateNonEmpty("Full name", name); err != nil {
		return err
	}
	if err := ValidateLength("Full name", name, 0, MaxNameLength); err != nil {
		return err
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return ValidateLength("Cover letter", coverLetter, 0, MaxCoverLetterLength)
}
