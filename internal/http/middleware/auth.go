package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/agency-site/internal/interface/http/response"
	"github.com/ignatzorin/agency-site/internal/service"
)

// Context ключи для gin.Context.
const (
	ContextSessionKey = "consoleSession"
	ContextTokenKey   = "sessionToken"
)

// SessionAuthenticator находит сессию консоли по токену.
type SessionAuthenticator interface {
	Authenticate(token string) (*service.ConsoleSession, error)
}

// AuthMiddleware пускает только с действующим токеном консоли. Токен берётся из
// заголовка Authorization, а для WebSocket ещё и из параметра ?token=.
func AuthMiddleware(auth SessionAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			response.Unauthorized(c, "authorization required")
			return
		}

		sess, err := auth.Authenticate(raw)
		if err != nil {
			response.Unauthorized(c, "session expired, please log in again")
			return
		}

		c.Set(ContextSessionKey, sess)
		c.Set(ContextTokenKey, raw)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return strings.TrimSpace(c.Query("token"))
}
