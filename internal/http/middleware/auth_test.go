package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"busbooking/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func authedEngine(roles ...domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", Authenticate(testSecret), RequireRoles(roles...), func(c *gin.Context) {
		p, _ := GetPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"userId": p.UserID, "role": string(p.Role)})
	})
	return r
}

func TestAuthenticateMissingToken(t *testing.T) {
	r := authedEngine(domain.Everyone...)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthenticateBadToken(t *testing.T) {
	r := authedEngine(domain.Everyone...)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	r := authedEngine(domain.Everyone...)
	token := signToken(t, jwt.MapClaims{
		"user_id": 5,
		"role":    "customer",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthenticateValidToken(t *testing.T) {
	r := authedEngine(domain.Everyone...)
	token := signToken(t, jwt.MapClaims{
		"user_id": 5,
		"role":    "customer",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
}

func TestRequireRolesForbidden(t *testing.T) {
	r := authedEngine(domain.CatalogManagers...)
	token := signToken(t, jwt.MapClaims{
		"user_id": 5,
		"role":    "customer",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestRequireRolesAllowed(t *testing.T) {
	r := authedEngine(domain.CatalogManagers...)
	token := signToken(t, jwt.MapClaims{
		"user_id": 2,
		"role":    "bus-owner",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestRequireRolesNoPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// RequireRoles without Authenticate in front: no principal in context.
	r.GET("/x", RequireRoles(domain.Everyone...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
