package middleware

import (
	"net/http"
	"time"

	"busbooking/internal/domain"

	"github.com/gin-gonic/gin"
)

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// RequireRoles gates an endpoint on a capability set. Each route declares
// the roles it accepts and this single middleware evaluates membership,
// instead of one bespoke predicate per role combination.
func RequireRoles(allowed ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success":   false,
				"message":   "authentication required",
				"timestamp": timestamp(),
			})
			return
		}
		if !domain.RoleIn(p.Role, allowed) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success":   false,
				"message":   "insufficient role",
				"timestamp": timestamp(),
			})
			return
		}
		c.Next()
	}
}
