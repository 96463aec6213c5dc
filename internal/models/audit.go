package models

import (
	"time"

	"github.com/google/uuid"
)

// Действия администратора, которые попадают в журнал.
const (
	AuditLogin                   = "login"
	AuditLogout                  = "logout"
	AuditApplicationStatusUpdate = "application.status"
	AuditApplicationDelete       = "application.delete"
	AuditContactStatusUpdate     = "contact.status"
	AuditContactDelete           = "contact.delete"
	AuditExport                  = "applications.export"
)

// AuditEntry: запись журнала действий администратора.
type AuditEntry struct {
	ID         uuid.UUID `db:"id" json:"id"`
	SessionID  string    `db:"session_id" json:"sessionId"`
	Actor      string    `db:"actor" json:"actor"`
	Action     string    `db:"action" json:"action"`
	TargetKind string    `db:"target_kind" json:"targetKind,omitempty"`
	TargetID   string    `db:"target_id" json:"targetId,omitempty"`
	Details    string    `db:"details" json:"details,omitempty"`
	Succeeded  bool      `db:"succeeded" json:"succeeded"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
