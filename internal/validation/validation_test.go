package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/agency-site/internal/models"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("Jane.Doe+jobs@example.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("jane"))
	assert.Error(t, ValidateEmail("jane@localhost"))
	assert.Error(t, ValidateEmail("a@b@c.io"))
}

func TestValidateContactInput(t *testing.T) {
	valid := models.ContactInput{Name: "Jane", Email: "jane@x.io", Subject: "Hello", Message: "We need a new website."}
	assert.NoError(t, ValidateContactInput(valid))

	missing := valid
	missing.Subject = "  "
	assert.EqualError(t, ValidateContactInput(missing), "Subject is required")

	short := valid
	short.Message = "hi"
	assert.Error(t, ValidateContactInput(short))
}

func TestValidateApplicant(t *testing.T) {
	assert.NoError(t, ValidateApplicant("Jane", "jane@x.io", ""))
	assert.Error(t, ValidateApplicant("", "jane@x.io", ""))
	assert.Error(t, ValidateApplicant("Jane", "jane@x.io", strings.Repeat("a", MaxCoverLetterLength+1)))
}

func TestValidateResume(t *testing.T) {
	pdf := []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	const limit = 5 * 1024 * 1024

	assert.NoError(t, ValidateResume("cv.PDF", 1024, limit, pdf))
	assert.EqualError(t, ValidateResume("cv.pdf", limit+1, limit, pdf), "Please upload a file smaller than 5MB")
	assert.Error(t, ValidateResume("cv.txt", 1024, limit, pdf))
	assert.Error(t, ValidateResume("cv.pdf", 1024, limit, png))
	assert.Error(t, ValidateResume("cv.docx", 1024, limit, pdf))
	assert.Error(t, ValidateResume("cv.pdf", 0, limit, nil))
}
