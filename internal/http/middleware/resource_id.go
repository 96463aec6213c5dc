package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/agency-site/internal/interface/http/response"
)

// resourceIDPattern покрывает ObjectID внешнего API, UUID и числовые id каталога.
var resourceIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ResourceIDValidator проверяет параметр пути до обращения к внешнему API.
// Использование: admin.PATCH("/contacts/:id/status", ResourceIDValidator("id"), h.UpdateStatus)
func ResourceIDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param(paramName)
		if id == "" {
			response.BadRequest(c, "parameter "+paramName+" is required")
			return
		}
		if !resourceIDPattern.MatchString(id) {
			response.BadRequest(c, "parameter "+paramName+" is not a valid identifier")
			return
		}
		c.Next()
	}
}
