package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/agency-site/internal/http/middleware"
	"github.com/ignatzorin/agency-site/internal/pkg/apperror"
	"github.com/ignatzorin/agency-site/internal/service"
)

// currentSession извлекает сессию консоли из контекста.
func currentSession(c *gin.Context) (*service.ConsoleSession, error) {
	raw, exists := c.Get(middleware.ContextSessionKey)
	if !exists {
		return nil, apperror.ErrUnauthorized
	}

	sess, ok := raw.(*service.ConsoleSession)
	if !ok || sess == nil {
		return nil, apperror.ErrUnauthorized
	}

	return sess, nil
}

// optionalQuery возвращает указатель на значение, если параметр передан.
func optionalQuery(c *gin.Context, key string) *string {
	if v, ok := c.GetQuery(key); ok {
		return &v
	}
	return nil
}

// viewQuery читает фильтры консоли из строки запроса.
func viewQuery(c *gin.Context) (service.ViewQuery, error) {
	q := service.ViewQuery{
		Tab:    optionalQuery(c, "tab"),
		Search: optionalQuery(c, "search"),
		Status: optionalQuery(c, "status"),
		Days:   optionalQuery(c, "days"),
		Job:    optionalQuery(c, "job"),
	}
	if raw, ok := c.GetQuery("page"); ok {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return q, apperror.Validation("page must be a number")
		}
		q.Page = &page
	}
	return q, nil
}

// intParam разбирает числовой параметр пути.
func intParam(c *gin.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v <= 0 {
		return 0, apperror.Validation("parameter " + name + " must be a positive number")
	}
	return v, nil
}

// parseIntQuery читает целое из строки запроса с запасным значением.
func parseIntQuery(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}
