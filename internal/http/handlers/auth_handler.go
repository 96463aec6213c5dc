package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/agency-site/internal/interface/http/response"
	"github.com/ignatzorin/agency-site/internal/service"
)

// AuthHandler: вход и выход администратора.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login обрабатывает POST /api/admin/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "username and password are required")
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// Logout обрабатывает POST /api/admin/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	sess, err := currentSession(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.auth.Logout(c.Request.Context(), sess)
	response.Success(c, gin.H{"loggedOut": true})
}

// Me обрабатывает GET /api/admin/me.
func (h *AuthHandler) Me(c *gin.Context) {
	sess, err := currentSession(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"sessionId": sess.ID,
		"username":  sess.Username,
		"expiresAt": sess.ExpiresAt,
	})
}
