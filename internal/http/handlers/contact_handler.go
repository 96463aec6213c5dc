package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/agency-site/internal/interface/http/response"
	"github.com/ignatzorin/agency-site/internal/models"
	"github.com/ignatzorin/agency-site/internal/service"
)

// ContactSubmitter принимает сообщение из формы обратной связи.
type ContactSubmitter interface {
	Submit(ctx context.Context, in models.ContactInput) (*service.Receipt, error)
}

// ContactHandler: публичная форма обратной связи.
type ContactHandler struct {
	form ContactSubmitter
}

func NewContactHandler(form ContactSubmitter) *ContactHandler {
	return &ContactHandler{form: form}
}

// Submit обрабатывает POST /api/contact.
func (h *ContactHandler) Submit(c *gin.Context) {
	var in models.ContactInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "Please fill in all required fields.")
		return
	}

	receipt, err := h.form.Submit(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, receipt)
}
