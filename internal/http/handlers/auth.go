package handlers

import (
	"net/http"
	"time"

	intconfig "busbooking/internal/config"
	"busbooking/internal/http/middleware"
	"busbooking/internal/repositories"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	// Identifier is an email or phone number.
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Login issues a JWT for a valid email/phone + password pair.
func Login(cfg intconfig.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if !BindJSONOrError(c, &req) {
			return
		}
		if req.Identifier == "" || req.Password == "" {
			respondError(c, http.StatusBadRequest, "identifier and password required", nil)
			return
		}

		user, err := repositories.UserRepository{}.GetByLogin(req.Identifier)
		if err != nil {
			// Same message for unknown user and bad password.
			respondError(c, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			respondError(c, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}

		claims := jwt.MapClaims{
			"user_id": user.ID,
			"role":    string(user.Role),
			"exp":     time.Now().Add(cfg.TokenTTL).Unix(),
		}
		if user.Subrole != nil {
			claims["subrole"] = string(*user.Subrole)
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

		signed, err := token.SignedString([]byte(cfg.JWTSecret))
		if err != nil {
			RespondDomainError(c, err)
			return
		}

		respondOK(c, "login successful", gin.H{"token": signed, "user": user})
	}
}

// Register is customer self-signup; staff accounts go through /users.
func Register(c *gin.Context) {
	var req services.CreateUserInput
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.UserService{RequestID: middleware.GetRequestID(c)}
	user, err := svc.Register(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondCreated(c, "registration successful", user)
}
