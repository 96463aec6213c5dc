package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/agency-site/internal/interface/http/response"
	"github.com/ignatzorin/agency-site/internal/logger"
	"github.com/ignatzorin/agency-site/internal/pkg/apperror"
)

// ErrorHandler обрабатывает ошибки, добавленные через c.Error, если handler
// сам не ответил. AppError уходит клиенту как есть, остальное маскируется.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		fields := logrus.Fields{
			"error":  err.Error(),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.HTTPStatus < 500 {
			logger.L().WithFields(fields).Warn("Request error")
		} else {
			logger.L().WithFields(fields).Error("Request error")
		}

		response.Error(c, err)
	}
}
