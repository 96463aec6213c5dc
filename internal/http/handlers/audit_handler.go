package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/agency-site/internal/interface/http/response"
	"github.com/ignatzorin/agency-site/internal/pkg/apperror"
	"github.com/ignatzorin/agency-site/internal/repository"
	"github.com/ignatzorin/agency-site/internal/service"
)

// AuditHandler отдаёт журнал действий администраторов.
type AuditHandler struct {
	audit *service.AuditService
}

func NewAuditHandler(audit *service.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List обрабатывает GET /api/admin/audit.
func (h *AuditHandler) List(c *gin.Context) {
	f := repository.AuditFilter{
		TargetKind: c.Query("targetKind"),
		TargetID:   c.Query("targetId"),
		Action:     c.Query("action"),
		Limit:      parseIntQuery(c, "limit", 50),
		Offset:     parseIntQuery(c, "offset", 0),
	}

	entries, err := h.audit.List(c.Request.Context(), f)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, gin.H{
		"enabled": h.audit.Enabled(),
		"entries": entries,
	})
}

// Get обрабатывает GET /api/admin/audit/:id.
func (h *AuditHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid audit entry id"))
		return
	}

	entry, err := h.audit.Entry(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, entry)
}
