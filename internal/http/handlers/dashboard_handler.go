package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/agency-site/internal/domain/valueobject"
	"github.com/ignatzorin/agency-site/internal/interface/http/response"
	"github.com/ignatzorin/agency-site/internal/service"
)

// DashboardHandler: панель откликов в консоли.
type DashboardHandler struct {
	dashboard *service.DashboardService
	export    *service.ExportService
}

func NewDashboardHandler(dashboard *service.DashboardService, export *service.ExportService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, export: export}
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// mutationResponse: итог изменения и уведомления сессии после него.
type mutationResponse struct {
	*service.MutationResult
	Toasts any `json:"toasts"`
}

// Applications обрабатывает GET /api/admin/applications.
func (h *DashboardHandler) Applications(c *gin.Context) {
	sess, err := currentSession(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	q, err := viewQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.dashboard.Applications(c.Request.Context(), sess, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, view, response.Pagination{
		Total: view.Page.Total,
		Page:  view.Page.Page,
		Limit: view.Page.PageSize,
		Pages: view.Page.TotalPages,
	})
}

// Stats обрабатывает GET /api/admin/applications/stats.
func (h *DashboardHandler) Stats(c *gin.Context) {
	sess, err := currentSession(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, h.dashboard.Stats(c.Request.Context(), sess))
}

// Refresh обрабатывает POST /api/admin/refresh.
func (h *DashboardHandler) Refresh(c *gin.Context) {
	sess, err := currentSession(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	res := h.dashboard.Refresh(c.Request.Context(), sess)
	response.Success(c, mutationResponse{MutationResult: res, Toasts: sess.Toasts.List()})
}

// UpdateStatus обрабатывает PATCH /api/admin/applications/:kind/:id/status.
func (h *DashboardHandler) UpdateStatus(c *gin.Context) {
	sess, err := currentSession(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	kind, err := valueobject.NewApplicationKind(c.Param("kind"))
	if err != nil {
		response.Error(c, err)
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "status is required")
		return
	}

	res, err := h.dashboard.UpdateStatus(c.Request.Context(), sess, kind, c.Param("id"), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, mutationResponse{MutationResult: res, Toasts: sess.Toasts.List()})
}

// Export обрабатывает GET /api/admin/applications/export.
func (h *DashboardHandler) Export(c *gin.Context) {
	sess, err := currentSession(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	file, err := h.export.Applications(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	c.Data(http.StatusOK, service.XLSXContentType, file.Data)
}
