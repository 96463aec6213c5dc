package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ignatzorin/agency-site/internal/pkg/apperror"
)

// ErrDecode: тело ответа не удалось разобрать.
var ErrDecode = errors.New("apiclient: malformed response body")

// FieldError: ошибка валидации поля от API (express-validator).
type FieldError struct {
	Msg   string `json:"msg"`
	Path  string `json:"path,omitempty"`
	Param string `json:"param,omitempty"`
}

// APIError: API ответил, но запрос не выполнен: success=false или HTTP-статус >= 400.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []FieldError
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if len(e.Errors) > 0 {
		msg += ": " + e.joinFieldErrors()
	}
	return fmt.Sprintf("apiclient: api error %d: %s", e.StatusCode, msg)
}

func (e *APIError) joinFieldErrors() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		if m := strings.TrimSpace(fe.Msg); m != "" {
			parts = append(parts, m)
		}
	}
	return strings.Join(parts, " ")
}

// IsNotFound сообщает, что API вернул 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// UserMessage превращает ошибку в одну строку для уведомления: сначала ошибки полей
// через пробел, затем message от API, затем fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if joined := apiErr.joinFieldErrors(); joined != "" {
			return joined
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Code == apperror.ErrCodeValidation {
		return appErr.Message
	}
	return fallback
}
