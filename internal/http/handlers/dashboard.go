package handlers

import (
	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	"busbooking/internal/http/middleware"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

func statsService(cfg intconfig.BookingConfig) services.StatsService {
	return services.StatsService{CommissionRate: cfg.CommissionRate}
}

// AdminDashboard returns the master-admin overview tiles.
func AdminDashboard(cfg intconfig.BookingConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := statsService(cfg).AdminDashboard()
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		respondOK(c, "dashboard fetched", out)
	}
}

// OwnerDashboard scopes the overview to the caller's fleet.
func OwnerDashboard(cfg intconfig.BookingConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := middleware.GetPrincipal(c)

		out, err := statsService(cfg).OwnerDashboard(principal.UserID)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		respondOK(c, "dashboard fetched", out)
	}
}

// BookingManDashboard reports an agent's own volume and commission.
func BookingManDashboard(cfg intconfig.BookingConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := middleware.GetPrincipal(c)

		out, err := statsService(cfg).BookingManDashboard(principal.UserID)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		respondOK(c, "dashboard fetched", out)
	}
}

// GetBookingAnalytics buckets booking volume, seats and revenue by period
// within the caller's scope. Cancelled bookings are excluded.
func GetBookingAnalytics(cfg intconfig.BookingConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := middleware.GetPrincipal(c)

		period, ok := domain.ParsePeriod(c.Query("period"))
		if !ok {
			RespondDomainError(c, domain.ValidationError{Field: "period", Msg: "must be daily, weekly, monthly or yearly"})
			return
		}
		rng := domain.DateRange{From: c.Query("from"), To: c.Query("to")}

		buckets, err := statsService(cfg).BookingStats(principal, rng, period)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		respondOK(c, "analytics fetched", gin.H{"period": string(period), "buckets": buckets})
	}
}
