package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/agency-site/internal/apiclient"
	"github.com/ignatzorin/agency-site/internal/domain/valueobject"
	"github.com/ignatzorin/agency-site/internal/models"
	"github.com/ignatzorin/agency-site/internal/notify"
	"github.com/ignatzorin/agency-site/internal/repository"
)

type mockApplicationsAPI struct {
	mock.Mock
}

func (m *mockApplicationsAPI) ListApplications(ctx context.Context, kind valueobject.ApplicationKind) ([]models.Application, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Application), args.Error(1)
}

func (m *mockApplicationsAPI) ApplicationStats(ctx context.Context) (*models.ApplicationStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ApplicationStats), args.Error(1)
}

func (m *mockApplicationsAPI) UpdateApplicationStatus(ctx context.Context, kind valueobject.ApplicationKind, id, status string) error {
	args := m.Called(ctx, kind, id, status)
	return args.Error(0)
}

func (m *mockApplicationsAPI) DeleteApplication(ctx context.Context, kind valueobject.ApplicationKind, id string) error {
	args := m.Called(ctx, kind, id)
	return args.Error(0)
}

type mockContactsAPI struct {
	mock.Mock
}

func (m *mockContactsAPI) ListContacts(ctx context.Context, q apiclient.ContactQuery) (*apiclient.ContactPage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apiclient.ContactPage), args.Error(1)
}

func (m *mockContactsAPI) ContactStats(ctx context.Context) (*models.ContactStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContactStats), args.Error(1)
}

func (m *mockContactsAPI) GetContact(ctx context.Context, id string) (*models.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contact), args.Error(1)
}

func (m *mockContactsAPI) UpdateContactStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockContactsAPI) DeleteContact(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockSubmissionAPI struct {
	mock.Mock
}

func (m *mockSubmissionAPI) SubmitApplication(ctx context.Context, s apiclient.Submission) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockSubmissionAPI) SubmitContact(ctx context.Context, in models.ContactInput) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

type mockAuditRepo struct {
	mock.Mock
}

func (m *mockAuditRepo) Create(ctx context.Context, entry *models.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockAuditRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.AuditEntry, error) {
	args := m.Called(ctx, id)
	if e, ok := args.Get(0).(*models.AuditEntry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuditRepo) List(ctx context.Context, f repository.AuditFilter) ([]models.AuditEntry, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]models.AuditEntry), args.Error(1)
}

func newTestSession() *ConsoleSession {
	return NewConsoleSession("sess-1", "admin", 10, notify.NewStore(notify.WithoutTimers(), notify.WithTTL(time.Minute)), time.Now(), time.Hour)
}

// jobApps строит n откликов на вакансию, самый свежий первым.
func jobApps(n int, status valueobject.JobStatus) []models.Application {
	now := time.Now()
	out := make([]models.Application, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, &models.JobApplication{
			ApplicationBase: models.ApplicationBase{
				ID:             fmt.Sprintf("job-%d", i),
				ApplicantName:  fmt.Sprintf("Applicant %d", i),
				ApplicantEmail: fmt.Sprintf("applicant%d@example.com", i),
				AppliedAt:      now.Add(-time.Duration(i) * time.Hour),
			},
			JobID:    "1",
			JobTitle: "Frontend Developer",
			Status:   status,
		})
	}
	return out
}

func spontaneousApps(n int) []models.Application {
	now := time.Now()
	out := make([]models.Application, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, &models.SpontaneousApplication{
			ApplicationBase: models.ApplicationBase{
				ID:             fmt.Sprintf("sp-%d", i),
				ApplicantName:  fmt.Sprintf("Talent %d", i),
				ApplicantEmail: fmt.Sprintf("talent%d@example.com", i),
				AppliedAt:      now.Add(-time.Duration(i) * 24 * time.Hour),
			},
			Status: valueobject.SpontaneousStatusPending,
		})
	}
	return out
}

// expectLoad ожидает одну полную загрузку откликов и статистики.
func expectLoad(api *mockApplicationsAPI, jobs, spontaneous []models.Application) {
	api.On("ListApplications", mock.Anything, valueobject.KindJob).Return(jobs, nil).Once()
	api.On("ListApplications", mock.Anything, valueobject.KindSpontaneous).Return(spontaneous, nil).Once()
	api.On("ApplicationStats", mock.Anything).Return(&models.ApplicationStats{}, nil).Once()
}

func toastTitles(sess *ConsoleSession) []string {
	var out []string
	for _, t := range sess.Toasts.List() {
		out = append(out, t.Title)
	}
	return out
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
