// Package response формирует единый JSON-конверт ответов сервиса.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/agency-site/internal/pkg/apperror"
)

type Response struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Error      *ErrorInfo  `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Pagination повторяет поля пагинации внешнего API.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

func Paginated(c *gin.Context, data interface{}, p Pagination) {
	c.JSON(http.StatusOK, Response{
		Success:    true,
		Data:       data,
		Pagination: &p,
	})
}

// Error отдаёт AppError как есть, остальные ошибки маскирует.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, Response{
			Success: false,
			Error: &ErrorInfo{
				Code:    string(appErr.Code),
				Message: appErr.Message,
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    string(apperror.ErrCodeInternal),
			Message: "internal server error",
		},
	})
}

func BadRequest(c *gin.Context, message string) {
	abortWith(c, http.StatusBadRequest, apperror.ErrCodeBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	abortWith(c, http.StatusNotFound, apperror.ErrCodeNotFound, message)
}

func Unauthorized(c *gin.Context, message string) {
	abortWith(c, http.StatusUnauthorized, apperror.ErrCodeUnauthorized, message)
}

// TooManyRequests: ответ ограничителя частоты.
func TooManyRequests(c *gin.Context, message string) {
	abortWith(c, http.StatusTooManyRequests, "RATE_LIMITED", message)
}

func abortWith(c *gin.Context, status int, code apperror.ErrorCode, message string) {
	c.AbortWithStatusJSON(status, Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    string(code),
			Message: message,
		},
	})
}
