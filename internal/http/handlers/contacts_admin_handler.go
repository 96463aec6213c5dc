package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/agency-site/internal/apiclient"
	"github.com/ignatzorin/agency-site/internal/interface/http/response"
	"github.com/ignatzorin/agency-site/internal/pkg/apperror"
	"github.com/ignatzorin/agency-site/internal/service"
)

// ContactsAdminHandler: панель сообщений в консоли.
type ContactsAdminHandler struct {
	contacts *service.ContactAdminService
}

func NewContactsAdminHandler(contacts *service.ContactAdminService) *ContactsAdminHandler {
	return &ContactsAdminHandler{contacts: contacts}
}

// List обрабатывает GET /api/admin/contacts.
func (h *ContactsAdminHandler) List(c *gin.Context) {
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

	view, err := h.contacts.Contacts(c.Request.Context(), sess, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, view, response.Pagination(view.Pagination))
}

// Stats обрабатывает GET /api/admin/contacts/stats.
func (h *ContactsAdminHandler) Stats(c *gin.Context) {
	sess, err := currentSession(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.contacts.Contacts(c.Request.Context(), sess, service.ViewQuery{})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view.Stats)
}

// Get обрабатывает GET /api/admin/contacts/:id.
func (h *ContactsAdminHandler) Get(c *gin.Context) {
	contact, err := h.contacts.Contact(c.Request.Context(), c.Param("id"))
	if err != nil {
		if apiclient.IsNotFound(err) {
			response.Error(c, apperror.ErrContactNotFound)
			return
		}
		response.Error(c, apperror.Wrap(err, apperror.ErrCodeUpstream, apiclient.UserMessage(err, "Failed to fetch contact")))
		return
	}
	response.Success(c, contact)
}

// UpdateStatus обрабатывает PATCH /api/admin/contacts/:id/status.
func (h *ContactsAdminHandler) UpdateStatus(c *gin.Context) {
	sess, err := currentSession(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "status is required")
		return
	}

	res, err := h.contacts.UpdateStatus(c.Request.Context(), sess, c.Param("id"), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, mutationResponse{MutationResult: res, Toasts: sess.Toasts.List()})
}
