package handlers

import (
	"net/http"

	intconfig "busbooking/internal/config"

	"github.com/gin-gonic/gin"
)

// Health is the liveness probe.
func Health(c *gin.Context) {
	respondOK(c, "ok", gin.H{"status": "up"})
}

// DBCheck pings the database so deploys can verify connectivity.
func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(); err != nil {
		respondError(c, http.StatusServiceUnavailable, "database unreachable", err)
		return
	}
	respondOK(c, "ok", gin.H{"database": "up"})
}
