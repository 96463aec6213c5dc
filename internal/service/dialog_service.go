package service

import (
	"context"
	"time"

	"github.com/ignatzorin/agency-site/internal/apiclient"
	"github.com/ignatzorin/agency-site/internal/domain/valueobject"
	"github.com/ignatzorin/agency-site/internal/models"
	"github.com/ignatzorin/agency-site/internal/pkg/apperror"
)

// DialogService ведёт карточку записи и подтверждение удаления.
// В сессии одновременно открыто не больше одной карточки и одного подтверждения.
type DialogService struct {
	dashboard *DashboardService
	contacts  *ContactAdminService
	now       func() time.Time
}

// NewDialogService создаёт сервис диалогов.
func NewDialogService(dashboard *DashboardService, contacts *ContactAdminService) *DialogService {
	return &DialogService{dashboard: dashboard, contacts: contacts, now: time.Now}
}

// OpenDetail снимает копию записи в карточку. Сообщение всегда читается из API
// по id, вместе с результатом модерации. Перечитывание коллекций снимок не меняет.
func (s *DialogService) OpenDetail(ctx context.Context, sess *ConsoleSession, kind TargetKind, id string) (*DetailDialog, error) {
	sess.Lock()
	defer sess.Unlock()

	dialog := &DetailDialog{Kind: kind, OpenedAt: s.now()}

	if appKind, ok := kind.ApplicationKind(); ok {
		s.dashboard.ensureLoadedLocked(ctx, sess)
		app := sess.findApplication(appKind, id)
		if app == nil {
			return nil, apperror.ErrApplicationNotFound
		}
		dialog.Application = snapshotApplication(app)
	} else if kind == TargetContact {
		contact, err := s.contacts.Contact(ctx, id)
		if err != nil {
			if apiclient.IsNotFound(err) {
				return nil, apperror.ErrContactNotFound
			}
			return nil, apperror.Wrap(err, apperror.ErrCodeUpstream, apiclient.UserMessage(err, "Failed to fetch contact"))
		}
		dialog.Contact = contact
	} else {
		return nil, apperror.Validation("unknown record type " + string(kind))
	}

	sess.detail = dialog
	d := *dialog
	return &d, nil
}

// CloseDetail закрывает карточку. Закрытие без открытой карточки не ошибка.
func (s *DialogService) CloseDetail(sess *ConsoleSession) {
	sess.Lock()
	sess.detail = nil
	sess.Unlock()
}

// AdvanceFromDetail закрывает карточку и переводит запись в следующий статус.
// Статус берётся из снимка в карточке, версия записи не сверяется.
func (s *DialogService) AdvanceFromDetail(ctx context.Context, sess *ConsoleSession) (*MutationResult, error) {
	sess.Lock()
	defer sess.Unlock()

	dialog := sess.detail
	if dialog == nil {
		return nil, apperror.ErrNoDialog
	}
	sess.detail = nil

	if dialog.Contact != nil {
		next := dialog.Contact.Status.Advance()
		return s.contacts.updateStatusLocked(ctx, sess, dialog.Contact.ID, string(next)), nil
	}

	app := dialog.Application
	next := NextStatus(app)
	return s.dashboard.updateStatusLocked(ctx, sess, app.Kind(), app.Base().ID, next), nil
}

// RequestDelete открывает подтверждение удаления.
func (s *DialogService) RequestDelete(ctx context.Context, sess *ConsoleSession, kind TargetKind, id string) (*DeleteTarget, error) {
	sess.Lock()
	defer sess.Unlock()

	target := &DeleteTarget{Kind: kind, ID: id}

	if appKind, ok := kind.ApplicationKind(); ok {
		s.dashboard.ensureLoadedLocked(ctx, sess)
		app := sess.findApplication(appKind, id)
		if app == nil {
			return nil, apperror.ErrApplicationNotFound
		}
		target.Label = app.Base().ApplicantName
	} else if kind == TargetContact {
		contact := sess.findContact(id)
		if contact == nil && sess.detail != nil && sess.detail.Contact != nil && sess.detail.Contact.ID == id {
			contact = sess.detail.Contact
		}
		if contact == nil {
			return nil, apperror.ErrContactNotFound
		}
		target.Label = contact.Name
	} else {
		return nil, apperror.Validation("unknown record type " + string(kind))
	}

	sess.pendingDelete = target
	t := *target
	return &t, nil
}

// CancelDelete закрывает подтверждение, коллекции не меняются.
func (s *DialogService) CancelDelete(sess *ConsoleSession) {
	sess.Lock()
	sess.pendingDelete = nil
	sess.Unlock()
}

// ConfirmDelete удаляет запись через API. При отказе подтверждение остаётся открытым.
func (s *DialogService) ConfirmDelete(ctx context.Context, sess *ConsoleSession) (*MutationResult, error) {
	sess.Lock()
	defer sess.Unlock()

	target := sess.pendingDelete
	if target == nil {
		return nil, apperror.ErrNoDialog
	}

	var res *MutationResult
	if appKind, ok := target.Kind.ApplicationKind(); ok {
		res = s.dashboard.deleteLocked(ctx, sess, appKind, target.ID)
	} else {
		res = s.contacts.deleteLocked(ctx, sess, target.ID)
	}
	if !res.Applied {
		return res, nil
	}

	sess.pendingDelete = nil
	if sess.detail != nil && sess.detail.Kind == target.Kind && sess.detail.ID() == target.ID {
		sess.detail = nil
	}
	return res, nil
}

func snapshotApplication(app models.Application) models.Application {
	switch a := app.(type) {
	case *models.JobApplication:
		cp := *a
		return &cp
	case *models.SpontaneousApplication:
		cp := *a
		return &cp
	}
	return app
}

// NextStatus: статус, в который карточка переводит отклик.
func NextStatus(app models.Application) string {
	switch a := app.(type) {
	case *models.JobApplication:
		return string(a.Status.Advance())
	case *models.SpontaneousApplication:
		return string(a.Status.Advance())
	}
	return string(valueobject.JobStatusReviewed)
}
