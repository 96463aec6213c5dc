package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/agency-site/internal/models"
	"github.com/ignatzorin/agency-site/internal/pkg/apperror"
	"github.com/ignatzorin/agency-site/internal/repository"
	"github.com/ignatzorin/agency-site/internal/repository/common"
)

func TestAuditService_Disabled(t *testing.T) {
	svc := NewAuditService(nil)
	assert.False(t, svc.Enabled())

	svc.Record(context.Background(), newTestSession(), models.AuditApplicationDelete, TargetJob, "a1", "", true)

	entries, err := svc.List(context.Background(), repository.AuditFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = svc.Entry(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrAuditEntryNotFound)
}

func TestAuditService_RecordFillsActor(t *testing.T) {
	repo := new(mockAuditRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *models.AuditEntry) bool {
		return e.Actor == "admin" && e.SessionID == "sess-1" && e.TargetKind == string(TargetJob) && !e.Succeeded
	})).Return(errors.New("db down")).Once()

	NewAuditService(repo).Record(context.Background(), newTestSession(), models.AuditApplicationDelete, TargetJob, "a1", "", false)
	repo.AssertExpectations(t)
}

func TestAuditService_Entry(t *testing.T) {
	repo := new(mockAuditRepo)
	known, missing := uuid.New(), uuid.New()
	repo.On("GetByID", mock.Anything, known).Return(&models.AuditEntry{ID: known, Action: models.AuditExport}, nil)
	repo.On("GetByID", mock.Anything, missing).Return(nil, common.ErrNotFound)

	svc := NewAuditService(repo)

	entry, err := svc.Entry(context.Background(), known)
	require.NoError(t, err)
	assert.Equal(t, models.AuditExport, entry.Action)

	_, err = svc.Entry(context.Background(), missing)
	assert.True(t, apperror.IsNotFound(err))
}
