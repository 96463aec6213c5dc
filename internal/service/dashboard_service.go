package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ignatzorin/agency-site/internal/apiclient"
	"github.com/ignatzorin/agency-site/internal/domain/valueobject"
	"github.com/ignatzorin/agency-site/internal/listing"
	"github.com/ignatzorin/agency-site/internal/logger"
	"github.com/ignatzorin/agency-site/internal/models"
	"github.com/ignatzorin/agency-site/internal/notify"
)

// ApplicationsAPI: вызовы внешнего API, нужные панели откликов.
type ApplicationsAPI interface {
	ListApplications(ctx context.Context, kind valueobject.ApplicationKind) ([]models.Application, error)
	ApplicationStats(ctx context.Context) (*models.ApplicationStats, error)
	UpdateApplicationStatus(ctx context.Context, kind valueobject.ApplicationKind, id, status string) error
	DeleteApplication(ctx context.Context, kind valueobject.ApplicationKind, id string) error
}

// ViewQuery: изменения представления из строки запроса. nil означает «не передано».
type ViewQuery struct {
	Tab    *string
	Search *string
	Status *string
	Days   *string
	Job    *string
	Page   *int
}

// JobOption: вакансия для фильтра по вакансии.
type JobOption struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ApplicationsView: ответ консоли по откликам.
type ApplicationsView struct {
	Tab           valueobject.ApplicationKind      `json:"tab"`
	Criteria      listing.Criteria                 `json:"criteria"`
	Page          listing.Page[models.Application] `json:"page"`
	Statuses      []string                         `json:"statuses"`
	Jobs          []JobOption                      `json:"jobs"`
	Detail        *DetailDialog                    `json:"detail,omitempty"`
	PendingDelete *DeleteTarget                    `json:"pendingDelete,omitempty"`
	Toasts        []notify.Toast                   `json:"toasts"`
	RefreshedAt   time.Time                        `json:"refreshedAt"`
}

// DashboardStats: агрегаты и график за 30 дней.
type DashboardStats struct {
	Stats    *models.ApplicationStats `json:"stats"`
	Timeline []models.TimelinePoint   `json:"timeline"`
}

// MutationResult: итог изменения через консоль. При отказе API состояние сессии
// не меняется, а причина показывается уведомлением.
type MutationResult struct {
	Applied bool          `json:"applied"`
	Toast   *notify.Toast `json:"toast,omitempty"`
}

// DashboardService: панель откликов: загрузка, фильтры, страницы и смена статуса.
type DashboardService struct {
	api   ApplicationsAPI
	audit *AuditService
	now   func() time.Time
}

// NewDashboardService создаёт сервис панели откликов.
func NewDashboardService(api ApplicationsAPI, audit *AuditService) *DashboardService {
	return &DashboardService{api: api, audit: audit, now: time.Now}
}

// Applications применяет изменения фильтров и возвращает текущую страницу.
func (s *DashboardService) Applications(ctx context.Context, sess *ConsoleSession, q ViewQuery) (*ApplicationsView, error) {
	sess.Lock()
	defer sess.Unlock()

	if err := applyViewQuery(sess.appsView, q, true); err != nil {
		return nil, err
	}
	s.ensureLoadedLocked(ctx, sess)
	return s.viewLocked(sess), nil
}

// Refresh перечитывает обе коллекции откликов и их статистику по кнопке «Refresh».
// Сообщения сюда не входят: их страница запрашивается при каждом GET /contacts.
func (s *DashboardService) Refresh(ctx context.Context, sess *ConsoleSession) *MutationResult {
	sess.Lock()
	defer sess.Unlock()

	if err := s.refetchLocked(ctx, sess); err != nil {
		return &MutationResult{Toast: toastPtr(sess.Toasts.Add("Error", "Failed to fetch applications data", notify.VariantDanger))}
	}
	t := sess.Toasts.Add("Data refreshed", "Applications data has been updated successfully.", notify.VariantSuccess)
	return &MutationResult{Applied: true, Toast: &t}
}

// Stats возвращает агрегаты API и график по загруженным откликам.
func (s *DashboardService) Stats(ctx context.Context, sess *ConsoleSession) *DashboardStats {
	sess.Lock()
	defer sess.Unlock()

	s.ensureLoadedLocked(ctx, sess)

	stats := sess.appStats
	if stats == nil {
		stats = &models.ApplicationStats{}
	}
	return &DashboardStats{
		Stats: stats,
		Timeline: BuildTimeline(
			sess.applications[valueobject.KindJob],
			sess.applications[valueobject.KindSpontaneous],
			s.now(), TimelineDays,
		),
	}
}

// UpdateStatus меняет статус отклика. Статус проверяется по словарю вида отклика;
// после успеха коллекции и статистика перечитываются целиком.
func (s *DashboardService) UpdateStatus(ctx context.Context, sess *ConsoleSession, kind valueobject.ApplicationKind, id, status string) (*MutationResult, error) {
	if err := valueobject.ValidateApplicationStatus(kind, status); err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	return s.updateStatusLocked(ctx, sess, kind, id, status), nil
}

// Filtered возвращает все отклики текущей вкладки, прошедшие фильтры (для выгрузки).
func (s *DashboardService) Filtered(ctx context.Context, sess *ConsoleSession) (valueobject.ApplicationKind, listing.Criteria, []models.Application) {
	sess.Lock()
	defer sess.Unlock()

	s.ensureLoadedLocked(ctx, sess)
	kind := valueobject.ApplicationKind(sess.appsView.Tab)
	criteria := sess.appsView.Criteria
	return kind, criteria, listing.Filter(sess.applications[kind], criteria, s.now())
}

func (s *DashboardService) updateStatusLocked(ctx context.Context, sess *ConsoleSession, kind valueobject.ApplicationKind, id, status string) *MutationResult {
	if err := s.api.UpdateApplicationStatus(ctx, kind, id, status); err != nil {
		logger.ForSession("dashboard", sess.ID, sess.Username).WithError(err).WithField("kind", kind).WithField("id", id).Warn("application status update failed")
		s.audit.Record(ctx, sess, models.AuditApplicationStatusUpdate, TargetKind(kind), id, status, false)
		msg := apiclient.UserMessage(err, "Failed to update application status")
		return &MutationResult{Toast: toastPtr(sess.Toasts.Add("Error", msg, notify.VariantDanger))}
	}

	s.audit.Record(ctx, sess, models.AuditApplicationStatusUpdate, TargetKind(kind), id, status, true)
	t := sess.Toasts.Add("Status updated", fmt.Sprintf("Application status changed to %s", status), notify.VariantSuccess)

	if err := s.refetchLocked(ctx, sess); err != nil {
		sess.Toasts.Add("Error", "Failed to fetch applications data", notify.VariantDanger)
	}
	return &MutationResult{Applied: true, Toast: &t}
}

func (s *DashboardService) deleteLocked(ctx context.Context, sess *ConsoleSession, kind valueobject.ApplicationKind, id string) *MutationResult {
	if err := s.api.DeleteApplication(ctx, kind, id); err != nil {
		logger.ForSession("dashboard", sess.ID, sess.Username).WithError(err).WithField("kind", kind).WithField("id", id).Warn("application delete failed")
		s.audit.Record(ctx, sess, models.AuditApplicationDelete, TargetKind(kind), id, "", false)
		msg := apiclient.UserMessage(err, "Failed to delete application")
		return &MutationResult{Toast: toastPtr(sess.Toasts.Add("Error", msg, notify.VariantDanger))}
	}

	s.audit.Record(ctx, sess, models.AuditApplicationDelete, TargetKind(kind), id, "", true)
	t := sess.Toasts.Add("Application deleted", "The application has been permanently deleted", notify.VariantSuccess)

	if err := s.refetchLocked(ctx, sess); err != nil {
		sess.Toasts.Add("Error", "Failed to fetch applications data", notify.VariantDanger)
	}
	return &MutationResult{Applied: true, Toast: &t}
}

// ensureLoadedLocked загружает данные при первом обращении сессии.
func (s *DashboardService) ensureLoadedLocked(ctx context.Context, sess *ConsoleSession) {
	if !sess.applicationsAt.IsZero() {
		return
	}
	if err := s.refetchLocked(ctx, sess); err != nil {
		sess.Toasts.Add("Error", "Failed to fetch applications data", notify.VariantDanger)
	}
}

// refetchLocked перечитывает обе коллекции и статистику. При ошибке состояние
// сессии остаётся прежним.
func (s *DashboardService) refetchLocked(ctx context.Context, sess *ConsoleSession) error {
	var (
		jobs        []models.Application
		spontaneous []models.Application
		stats       *models.ApplicationStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		jobs, err = s.api.ListApplications(gctx, valueobject.KindJob)
		return err
	})
	g.Go(func() (err error) {
		spontaneous, err = s.api.ListApplications(gctx, valueobject.KindSpontaneous)
		return err
	})
	g.Go(func() (err error) {
		stats, err = s.api.ApplicationStats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.ForSession("dashboard", sess.ID, sess.Username).WithError(err).Warn("applications fetch failed")
		return err
	}

	sess.applications[valueobject.KindJob] = jobs
	sess.applications[valueobject.KindSpontaneous] = spontaneous
	sess.appStats = stats
	sess.applicationsAt = s.now()
	return nil
}

func (s *DashboardService) viewLocked(sess *ConsoleSession) *ApplicationsView {
	kind := valueobject.ApplicationKind(sess.appsView.Tab)
	filtered := listing.Filter(sess.applications[kind], sess.appsView.Criteria, s.now())

	sess.appsView.Clamp(listing.TotalPages(len(filtered), sess.appsView.PageSize))
	page := listing.Paginate(filtered, sess.appsView.Page, sess.appsView.PageSize)

	view := &ApplicationsView{
		Tab:         kind,
		Criteria:    sess.appsView.Criteria,
		Page:        page,
		Statuses:    statusVocabulary(kind),
		Jobs:        jobOptions(sess.applications[valueobject.KindJob]),
		Toasts:      sess.Toasts.List(),
		RefreshedAt: sess.applicationsAt,
	}
	if sess.detail != nil {
		d := *sess.detail
		view.Detail = &d
	}
	if sess.pendingDelete != nil {
		t := *sess.pendingDelete
		view.PendingDelete = &t
	}
	return view
}

// applyViewQuery применяет изменения к представлению. Если вместе с фильтром
// пришла страница, побеждает сброс на первую страницу.
func applyViewQuery(v *listing.View, q ViewQuery, withTabs bool) error {
	changed := false

	if q.Tab != nil && withTabs {
		kind, err := valueobject.NewApplicationKind(*q.Tab)
		if err != nil {
			return err
		}
		changed = v.SetTab(string(kind)) || changed
	}
	if q.Search != nil {
		changed = v.SetQuery(*q.Search) || changed
	}
	if q.Status != nil {
		changed = v.SetStatus(*q.Status) || changed
	}
	if q.Days != nil {
		c, err := v.SetDateRange(*q.Days)
		if err != nil {
			return err
		}
		changed = c || changed
	}
	if q.Job != nil && withTabs {
		changed = v.SetCategory(*q.Job) || changed
	}
	if q.Page != nil && !changed {
		v.SetPage(*q.Page)
	}
	return nil
}

func statusVocabulary(kind valueobject.ApplicationKind) []string {
	var out []string
	switch kind {
	case valueobject.KindJob:
		for _, st := range valueobject.JobStatuses {
			out = append(out, string(st))
		}
	case valueobject.KindSpontaneous:
		for _, st := range valueobject.SpontaneousStatuses {
			out = append(out, string(st))
		}
	}
	return out
}

func jobOptions(apps []models.Application) []JobOption {
	seen := make(map[string]bool)
	out := []JobOption{}
	for _, app := range apps {
		job, ok := app.(*models.JobApplication)
		if !ok || job.JobID == "" || seen[string(job.JobID)] {
			continue
		}
		seen[string(job.JobID)] = true
		title := strings.TrimSpace(job.JobTitle)
		if title == "" {
			title = "Job #" + string(job.JobID)
		}
		out = append(out, JobOption{ID: string(job.JobID), Title: title})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

func toastPtr(t notify.Toast) *notify.Toast {
	return &t
}
