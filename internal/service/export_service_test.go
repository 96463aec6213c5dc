package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ignatzorin/agency-site/internal/domain/valueobject"
	"github.com/ignatzorin/agency-site/internal/models"
)

func TestExport_WritesFilteredApplications(t *testing.T) {
	api := new(mockApplicationsAPI)
	expectLoad(api, jobApps(12, valueobject.JobStatusPending), nil)
	dashboard := NewDashboardService(api, nil)

	repo := new(mockAuditRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *models.AuditEntry) bool {
		return e.Action == models.AuditExport && e.Actor == "admin" && e.Succeeded
	})).Return(nil).Once()

	sess := newTestSession()
	_, err := dashboard.Applications(context.Background(), sess, ViewQuery{Search: strPtr("applicant1")})
	require.NoError(t, err)

	file, err := NewExportService(dashboard, NewAuditService(repo)).Applications(context.Background(), sess)
	require.NoError(t, err)
	// applicant1, applicant10, applicant11, applicant12
	assert.Equal(t, 4, file.Rows)
	assert.Contains(t, file.Name, "job-applications-")

	book, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Applications")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Name", "Email", "Job", "Department", "Status", "Applied At", "Resume", "Cover Letter"}, rows[0][:8])
	assert.Equal(t, "Applicant 1", rows[1][0])
	assert.Equal(t, "pending", rows[1][4])
	repo.AssertExpectations(t)
}
