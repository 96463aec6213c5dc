package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/agency-site/internal/logger"
	"github.com/ignatzorin/agency-site/internal/models"
	"github.com/ignatzorin/agency-site/internal/pkg/apperror"
	"github.com/ignatzorin/agency-site/internal/repository"
	"github.com/ignatzorin/agency-site/internal/repository/common"
)

// AuditRepository описывает хранилище журнала действий.
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.AuditEntry, error)
	List(ctx context.Context, f repository.AuditFilter) ([]models.AuditEntry, error)
}

// AuditService пишет журнал действий администратора. Без репозитория ничего не делает.
type AuditService struct {
	repo AuditRepository
}

// NewAuditService создаёт сервис журнала. repo может быть nil.
func NewAuditService(repo AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Enabled сообщает, подключено ли хранилище.
func (s *AuditService) Enabled() bool {
	return s != nil && s.repo != nil
}

// Record сохраняет запись. Ошибка записи только логируется: журнал не должен
// ломать действие администратора.
func (s *AuditService) Record(ctx context.Context, sess *ConsoleSession, action string, targetKind TargetKind, targetID, details string, succeeded bool) {
	if !s.Enabled() {
		return
	}

	entry := &models.AuditEntry{
		Action:     action,
		TargetKind: string(targetKind),
		TargetID:   targetID,
		Details:    details,
		Succeeded:  succeeded,
	}
	if sess != nil {
		entry.SessionID = sess.ID
		entry.Actor = sess.Username
	}

	// запись не отменяется вместе с запросом клиента
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()

	if err := s.repo.Create(writeCtx, entry); err != nil {
		logger.WithComponent("audit").WithError(err).WithField("action", action).Error("failed to write audit entry")
	}
}

// List возвращает последние записи журнала.
func (s *AuditService) List(ctx context.Context, f repository.AuditFilter) ([]models.AuditEntry, error) {
	if !s.Enabled() {
		return []models.AuditEntry{}, nil
	}
	return s.repo.List(ctx, f)
}

// Entry возвращает одну запись журнала.
func (s *AuditService) Entry(ctx context.Context, id uuid.UUID) (*models.AuditEntry, error) {
	if !s.Enabled() {
		return nil, apperror.ErrAuditEntryNotFound
	}
	entry, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return nil, apperror.ErrAuditEntryNotFound
	}
	return entry, err
}
