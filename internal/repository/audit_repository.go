package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/agency-site/internal/models"
	"github.com/ignatzorin/agency-site/internal/repository/common"
)

const (
	defaultAuditPage = 50
	maxAuditPage     = 200
)

// AuditFilter: параметры выборки журнала.
type AuditFilter struct {
	TargetKind string
	TargetID   string
	Action     string
	Limit      int
	Offset     int
}

// AuditRepository хранит журнал действий администратора.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository создаёт экземпляр репозитория.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create сохраняет запись. ID и время создания заполняются, если пусты.
func (r *AuditRepository) Create(ctx context.Context, entry *models.AuditEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	query := `
		INSERT INTO audit_log (id, session_id, actor, action, target_kind, target_id, details, succeeded)
		VALUES (:id, :session_id, :actor, :action, :target_kind, :target_id, :details, :succeeded)
		RETURNING created_at
	`
	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("audit repository: prepare create %w", err)
	}
	defer stmt.Close()

	if err := stmt.QueryRowxContext(ctx, entry).Scan(&entry.CreatedAt); err != nil {
		return fmt.Errorf("audit repository: create %w", err)
	}
	return nil
}

// GetByID возвращает запись по идентификатору.
func (r *AuditRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AuditEntry, error) {
	return common.GetByID[models.AuditEntry](ctx, r.db, "audit_log", id, common.ErrNotFound)
}

// List возвращает записи, новые первыми.
func (r *AuditRepository) List(ctx context.Context, f AuditFilter) ([]models.AuditEntry, error) {
	query, args := listQuery(f)

	entries := []models.AuditEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("audit repository: list %w", err)
	}
	return entries, nil
}

// listQuery собирает SELECT с фильтрами. LIMIT и OFFSET нумеруются после условий WHERE.
func listQuery(f AuditFilter) (string, []interface{}) {
	var where common.Where
	if f.TargetKind != "" {
		where.Add("target_kind", f.TargetKind)
	}
	if f.TargetID != "" {
		where.Add("target_id", f.TargetID)
	}
	if f.Action != "" {
		where.Add("action", f.Action)
	}

	limit := f.Limit
	if limit <= 0 || limit > maxAuditPage {
		limit = defaultAuditPage
	}

	query := "SELECT * FROM audit_log" + where.SQL() +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", where.Next(), where.Next()+1)
	return query, append(where.Args(), limit, max(f.Offset, 0))
}
