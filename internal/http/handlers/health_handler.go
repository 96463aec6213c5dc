package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// Pinger: проверка доступности внешнего API.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler предоставляет endpoint для проверки здоровья сервиса.
type HealthHandler struct {
	db       *sqlx.DB
	upstream Pinger
}

// NewHealthHandler создаёт новый health handler. db может быть nil: журнал действий выключен.
func NewHealthHandler(db *sqlx.DB, upstream Pinger) *HealthHandler {
	return &HealthHandler{db: db, upstream: upstream}
}

// HealthResponse представляет ответ health check.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Health обрабатывает GET /health. Недоступный внешний API только понижает
// статус до degraded: публичный каталог работает и без него.
func (h *HealthHandler) Health(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			checks["database"] = "unhealthy: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "healthy"
		}
	} else {
		checks["database"] = "disabled"
	}

	if h.upstream != nil {
		if err := h.upstream.Ping(ctx); err != nil {
			checks["api"] = "unreachable"
			if status == "healthy" {
				status = "degraded"
			}
		} else {
			checks["api"] = "healthy"
		}
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Checks:    checks,
	})
}
