package handlers

import (
	"net/http"

	"busbooking/internal/domain"
	"busbooking/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RespondDomainError maps the error taxonomy onto HTTP statuses. Validation
// and state errors are client mistakes (400), conflicts 409, and anything
// unclassified is logged and returned as a generic 500.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation failed", err)
	case domain.IsState(err):
		respondError(c, http.StatusBadRequest, "invalid state transition", err)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "authentication required", err)
	case domain.IsForbidden(err):
		respondError(c, http.StatusForbidden, "access denied", err)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "resource not found", err)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err)
	default:
		logrus.WithFields(logrus.Fields{
			"request_id": middleware.GetRequestID(c),
			"path":       c.Request.URL.Path,
		}).WithError(err).Error("unhandled error")
		respondError(c, http.StatusInternalServerError, "something went wrong", err)
	}
}
