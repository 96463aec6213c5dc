package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/agency-site/internal/domain/valueobject"
	"github.com/ignatzorin/agency-site/internal/interface/http/response"
	"github.com/ignatzorin/agency-site/internal/service"
)

// DialogHandler: карточка записи и подтверждение удаления.
type DialogHandler struct {
	dialogs *service.DialogService
}

func NewDialogHandler(dialogs *service.DialogService) *DialogHandler {
	return &DialogHandler{dialogs: dialogs}
}

// applicationTarget читает вид отклика из пути.
func applicationTarget(c *gin.Context) (service.TargetKind, error) {
	kind, err := valueobject.NewApplicationKind(c.Param("kind"))
	if err != nil {
		return "", err
	}
	return service.TargetKind(kind), nil
}

// OpenApplication обрабатывает POST /api/admin/applications/:kind/:id/detail.
func (h *DialogHandler) OpenApplication(c *gin.Context) {
	kind, err := applicationTarget(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.open(c, kind)
}

// OpenContact обрабатывает POST /api/admin/contacts/:id/detail.
func (h *DialogHandler) OpenContact(c *gin.Context) {
	h.open(c, service.TargetContact)
}

func (h *DialogHandler) open(c *gin.Context, kind service.TargetKind) {
	sess, err := currentSession(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	dialog, err := h.dialogs.OpenDetail(c.Request.Context(), sess, kind, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dialog)
}

// Close обрабатывает DELETE /api/admin/detail.
func (h *DialogHandler) Close(c *gin.Context) {
	sess, err := currentSession(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dialogs.CloseDetail(sess)
	response.Success(c, gin.H{"closed": true})
}

// Advance обрабатывает POST /api/admin/detail/advance.
func (h *DialogHandler) Advance(c *gin.Context) {
	sess, err := currentSession(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	res, err := h.dialogs.AdvanceFromDetail(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, mutationResponse{MutationResult: res, Toasts: sess.Toasts.List()})
}

// RequestApplicationDelete обрабатывает POST /api/admin/applications/:kind/:id/delete.
func (h *DialogHandler) RequestApplicationDelete(c *gin.Context) {
	kind, err := applicationTarget(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.requestDelete(c, kind)
}

// RequestContactDelete обрабатывает POST /api/admin/contacts/:id/delete.
func (h *DialogHandler) RequestContactDelete(c *gin.Context) {
	h.requestDelete(c, service.TargetContact)
}

func (h *DialogHandler) requestDelete(c *gin.Context, kind service.TargetKind) {
	sess, err := currentSession(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	target, err := h.dialogs.RequestDelete(c.Request.Context(), sess, kind, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, target)
}

// ConfirmDelete обрабатывает POST /api/admin/delete/confirm.
func (h *DialogHandler) ConfirmDelete(c *gin.Context) {
	sess, err := currentSession(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	res, err := h.dialogs.ConfirmDelete(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, mutationResponse{MutationResult: res, Toasts: sess.Toasts.List()})
}

// CancelDelete обрабатывает DELETE /api/admin/delete.
func (h *DialogHandler) CancelDelete(c *gin.Context) {
	sess, err := currentSession(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dialogs.CancelDelete(sess)
	response.Success(c, gin.H{"cancelled": true})
}
