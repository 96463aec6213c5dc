package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/agency-site/internal/interface/http/response"
	"github.com/ignatzorin/agency-site/internal/pkg/apperror"
)

// ToastHandler отдаёт и закрывает уведомления консоли.
type ToastHandler struct{}

func NewToastHandler() *ToastHandler {
	return &ToastHandler{}
}

// List обрабатывает GET /api/admin/toasts.
func (h *ToastHandler) List(c *gin.Context) {
	sess, err := currentSession(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, sess.Toasts.List())
}

// Dismiss обрабатывает DELETE /api/admin/toasts/:id.
func (h *ToastHandler) Dismiss(c *gin.Context) {
	sess, err := currentSession(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !sess.Toasts.Remove(c.Param("id")) {
		response.Error(c, apperror.New(apperror.ErrCodeNotFound, "toast not found"))
		return
	}
	response.Success(c, sess.Toasts.List())
}
