package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ignatzorin/agency-site/internal/apiclient"
	"github.com/ignatzorin/agency-site/internal/domain/valueobject"
	"github.com/ignatzorin/agency-site/internal/logger"
	"github.com/ignatzorin/agency-site/internal/models"
	"github.com/ignatzorin/agency-site/internal/notify"
)

// ContactsAPI: вызовы внешнего API, нужные панели сообщений.
type ContactsAPI interface {
	ListContacts(ctx context.Context, q apiclient.ContactQuery) (*apiclient.ContactPage, error)
	ContactStats(ctx context.Context) (*models.ContactStats, error)
	GetContact(ctx context.Context, id string) (*models.Contact, error)
	UpdateContactStatus(ctx context.Context, id, status string) error
	DeleteContact(ctx context.Context, id string) error
}

// ContactsView: страница сообщений в консоли. Фильтрует и режет на страницы сам API.
type ContactsView struct {
	Criteria      ContactCriteria      `json:"criteria"`
	Items         []*models.Contact    `json:"items"`
	Pagination    apiclient.Pagination `json:"pagination"`
	Stats         *models.ContactStats `json:"stats"`
	Statuses      []string             `json:"statuses"`
	Detail        *DetailDialog        `json:"detail,omitempty"`
	PendingDelete *DeleteTarget        `json:"pendingDelete,omitempty"`
	Toasts        []notify.Toast       `json:"toasts"`
}

// ContactCriteria: фильтры панели сообщений.
type ContactCriteria struct {
	Search    string `json:"search"`
	Status    string `json:"status"`
	DateRange string `json:"dateRange"`
}

// ContactAdminService: панель сообщений из формы обратной связи.
type ContactAdminService struct {
	api   ContactsAPI
	audit *AuditService
}

// NewContactAdminService создаёт сервис панели сообщений.
func NewContactAdminService(api ContactsAPI, audit *AuditService) *ContactAdminService {
	return &ContactAdminService{api: api, audit: audit}
}

// Contacts применяет фильтры и загружает нужную страницу. Страница запрашивается
// заново при каждом обращении, поэтому номер страницы уходит в API как есть.
func (s *ContactAdminService) Contacts(ctx context.Context, sess *ConsoleSession, q ViewQuery) (*ContactsView, error) {
	sess.Lock()
	defer sess.Unlock()

	if err := applyViewQuery(sess.contactsView, q, false); err != nil {
		return nil, err
	}
	if err := s.refetchLocked(ctx, sess); err != nil {
		sess.Toasts.Add("Error", "Failed to fetch contacts data", notify.VariantDanger)
	}
	return s.viewLocked(sess), nil
}

// Contact открывает одно сообщение с проверкой модерации.
func (s *ContactAdminService) Contact(ctx context.Context, id string) (*models.Contact, error) {
	return s.api.GetContact(ctx, id)
}

// UpdateStatus меняет статус сообщения и перечитывает страницу со статистикой.
func (s *ContactAdminService) UpdateStatus(ctx context.Context, sess *ConsoleSession, id, status string) (*MutationResult, error) {
	if _, err := valueobject.NewContactStatus(status); err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	return s.updateStatusLocked(ctx, sess, id, status), nil
}

func (s *ContactAdminService) updateStatusLocked(ctx context.Context, sess *ConsoleSession, id, status string) *MutationResult {
	if err := s.api.UpdateContactStatus(ctx, id, status); err != nil {
		logger.ForSession("contacts", sess.ID, sess.Username).WithError(err).WithField("id", id).Warn("contact status update failed")
		s.audit.Record(ctx, sess, models.AuditContactStatusUpdate, TargetContact, id, status, false)
		msg := apiclient.UserMessage(err, "Failed to update contact status")
		return &MutationResult{Toast: toastPtr(sess.Toasts.Add("Error", msg, notify.VariantDanger))}
	}

	s.audit.Record(ctx, sess, models.AuditContactStatusUpdate, TargetContact, id, status, true)
	t := sess.Toasts.Add("Status updated", fmt.Sprintf("Contact status changed to %s", status), notify.VariantSuccess)

	if err := s.refetchLocked(ctx, sess); err != nil {
		sess.Toasts.Add("Error", "Failed to fetch contacts data", notify.VariantDanger)
	}
	return &MutationResult{Applied: true, Toast: &t}
}

func (s *ContactAdminService) deleteLocked(ctx context.Context, sess *ConsoleSession, id string) *MutationResult {
	if err := s.api.DeleteContact(ctx, id); err != nil {
		logger.ForSession("contacts", sess.ID, sess.Username).WithError(err).WithField("id", id).Warn("contact delete failed")
		s.audit.Record(ctx, sess, models.AuditContactDelete, TargetContact, id, "", false)
		msg := apiclient.UserMessage(err, "Failed to delete contact")
		return &MutationResult{Toast: toastPtr(sess.Toasts.Add("Error", msg, notify.VariantDanger))}
	}

	s.audit.Record(ctx, sess, models.AuditContactDelete, TargetContact, id, "", true)
	t := sess.Toasts.Add("Contact deleted", "The contact has been permanently deleted", notify.VariantSuccess)

	if err := s.refetchLocked(ctx, sess); err != nil {
		sess.Toasts.Add("Error", "Failed to fetch contacts data", notify.VariantDanger)
	}
	return &MutationResult{Applied: true, Toast: &t}
}

// refetchLocked загружает текущую страницу и статистику. Если страница после
// удаления опустела, берётся последняя существующая.
func (s *ContactAdminService) refetchLocked(ctx context.Context, sess *ConsoleSession) error {
	page, stats, err := s.fetch(ctx, sess)
	if err != nil {
		return err
	}
	if len(page.Items) == 0 && page.Pagination.Pages > 0 && sess.contactsView.Page > page.Pagination.Pages {
		sess.contactsView.Clamp(page.Pagination.Pages)
		if page, stats, err = s.fetch(ctx, sess); err != nil {
			return err
		}
	}

	sess.contacts = page.Items
	sess.contactPage = page.Pagination
	sess.contactStats = stats
	sess.contactsLoaded = true
	return nil
}

func (s *ContactAdminService) fetch(ctx context.Context, sess *ConsoleSession) (*apiclient.ContactPage, *models.ContactStats, error) {
	v := sess.contactsView
	q := apiclient.ContactQuery{
		Page:   v.Page,
		Limit:  v.PageSize,
		Status: v.Criteria.Status,
		Search: v.Criteria.Query,
		Days:   v.Criteria.DateRange,
	}

	var (
		page  *apiclient.ContactPage
		stats *models.ContactStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		page, err = s.api.ListContacts(gctx, q)
		return err
	})
	g.Go(func() (err error) {
		stats, err = s.api.ContactStats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.ForSession("contacts", sess.ID, sess.Username).WithError(err).Warn("contacts fetch failed")
		return nil, nil, err
	}
	return page, stats, nil
}

func (s *ContactAdminService) viewLocked(sess *ConsoleSession) *ContactsView {
	v := sess.contactsView
	view := &ContactsView{
		Criteria: ContactCriteria{
			Search:    v.Criteria.Query,
			Status:    v.Criteria.Status,
			DateRange: v.Criteria.DateRange,
		},
		Items:      sess.contacts,
		Pagination: sess.contactPage,
		Stats:      sess.contactStats,
		Toasts:     sess.Toasts.List(),
	}
	if view.Items == nil {
		view.Items = []*models.Contact{}
	}
	if view.Stats == nil {
		view.Stats = &models.ContactStats{ByStatus: map[string]int{}}
	}
	if view.Pagination.Page == 0 {
		view.Pagination.Page = v.Page
		view.Pagination.Limit = v.PageSize
	}
	for _, st := range valueobject.ContactStatuses {
		view.Statuses = append(view.Statuses, string(st))
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
