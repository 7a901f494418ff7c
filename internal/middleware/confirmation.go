// confirmation.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const ConfirmHeader = "X-Confirm"

// RequireConfirmation corta el request si el cliente no confirmó la
// operación destructiva con "X-Confirm: true".
func RequireConfirmation(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.EqualFold(strings.TrimSpace(c.GetHeader(ConfirmHeader)), "true") {
			c.JSON(http.StatusPreconditionRequired, gin.H{
				"error":   "confirmation required",
				"message": message,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
