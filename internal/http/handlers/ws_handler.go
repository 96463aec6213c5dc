package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ignatzorin/agency-site/internal/interface/http/response"
	"github.com/ignatzorin/agency-site/internal/logger"
	"github.com/ignatzorin/agency-site/internal/ws"
)

// WSHandler отвечает за установку WebSocket соединений консоли.
type WSHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

// NewWSHandler создаёт новый хэндлер. Пустой allowedOrigins разрешает любой origin.
func NewWSHandler(hub *ws.Hub, allowedOrigins []string) *WSHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowed) == 0 || allowed["*"] || allowed[origin]
			},
		},
	}
}

// Handle обслуживает GET /api/admin/ws?token=... Сессию уже проверил AuthMiddleware.
func (h *WSHandler) Handle(c *gin.Context) {
	sess, err := currentSession(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade сам ответил клиенту
		logger.WithComponent("ws").WithError(err).Warn("websocket upgrade failed")
		return
	}

	client := ws.NewClient(conn, h.hub, sess.ID)
	h.hub.Register(client)

	client.Run(c.Request.Context())
}
