package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/agency-site/internal/pkg/apperror"
)

func TestJobStatus_Advance(t *testing.T) {
	assert.Equal(t, JobStatusReviewed, JobStatusPending.Advance())
	assert.Equal(t, JobStatusShortlisted, JobStatusReviewed.Advance())
	// Карточка не смотрит дальше первого шага
	assert.Equal(t, JobStatusShortlisted, JobStatusRejected.Advance())
	assert.Equal(t, JobStatusShortlisted, JobStatus("unknown").Advance())
}

func TestSpontaneousStatus_AdvanceStaysInVocabulary(t *testing.T) {
	for _, s := range SpontaneousStatuses {
		assert.True(t, s.Advance().IsValid(), "advance of %s", s)
	}
	assert.Equal(t, SpontaneousStatusReviewed, SpontaneousStatusPending.Advance())
	assert.Equal(t, SpontaneousStatusContacted, SpontaneousStatusReviewed.Advance())
}

func TestContactStatus_Advance(t *testing.T) {
	assert.Equal(t, ContactStatusRead, ContactStatusPending.Advance())
	assert.Equal(t, ContactStatusReplied, ContactStatusRead.Advance())
	assert.Equal(t, ContactStatusReplied, ContactStatusSpam.Advance())
}

func TestValidateApplicationStatus_VocabulariesDiverge(t *testing.T) {
	assert.NoError(t, ValidateApplicationStatus(KindJob, "shortlisted"))
	assert.NoError(t, ValidateApplicationStatus(KindSpontaneous, "contacted"))

	err := ValidateApplicationStatus(KindSpontaneous, "shortlisted")
	assert.True(t, apperror.IsValidation(err))

	err = ValidateApplicationStatus(KindJob, "archived")
	assert.True(t, apperror.IsValidation(err))
}

func TestNewApplicationKind(t *testing.T) {
	k, err := NewApplicationKind(" Job ")
	assert.NoError(t, err)
	assert.Equal(t, KindJob, k)

	_, err = NewApplicationKind("internship")
	assert.Error(t, err)
}

func TestVariants(t *testing.T) {
	assert.Equal(t, VariantDanger, JobStatusRejected.Variant())
	assert.Equal(t, VariantAccent, SpontaneousStatusContacted.Variant())
	assert.Equal(t, VariantDefault, ContactStatus("weird").Variant())
}
