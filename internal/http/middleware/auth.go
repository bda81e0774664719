package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"busbooking/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const principalKey = "principal"

// Authenticate verifies the Bearer token and attaches the Principal to the
// context. Handlers and services downstream never re-derive identity.
func Authenticate(secret string) gin.HandlerFunc {
	secretBytes := []byte(secret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success":   false,
				"message":   "missing bearer token",
				"timestamp": timestamp(),
			})
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return secretBytes, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success":   false,
				"message":   "invalid or expired token",
				"timestamp": timestamp(),
			})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success":   false,
				"message":   "invalid token claims",
				"timestamp": timestamp(),
			})
			return
		}

		userID, _ := claims["user_id"].(float64)
		roleStr, _ := claims["role"].(string)
		role, ok := domain.ParseRole(roleStr)
		if userID <= 0 || !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success":   false,
				"message":   "invalid token claims",
				"timestamp": timestamp(),
			})
			return
		}

		p := domain.Principal{UserID: int64(userID), Role: role}
		if sr, _ := claims["subrole"].(string); sr != "" {
			if parsed, ok := domain.ParseSubrole(sr); ok {
				p.Subrole = parsed
			}
		}

		c.Set(principalKey, p)
		c.Next()
	}
}

// GetPrincipal returns the authenticated caller, if any.
func GetPrincipal(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}
