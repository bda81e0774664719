package http

import (
	"time"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	"busbooking/internal/http/handlers"
	"busbooking/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// NewRouter assembles the middleware chain and the route table. Role
// requirements live here as capability sets; handlers only enforce
// ownership-level checks.
func NewRouter(cfg *intconfig.Config, rdb *redis.Client) *gin.Engine {
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())

	limit, window := 0, cfg.RateLimit.Window
	if cfg.RateLimit.Enabled {
		limit = cfg.RateLimit.Limit
	}
	r.Use(middleware.RateLimit(rdb, limit, window))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"success":   false,
			"message":   "route not found",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := r.Group("/api")

	api.GET("/health", handlers.Health)
	api.GET("/db-check", handlers.DBCheck)

	auth := api.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login(cfg.Auth))
	}

	authed := api.Group("")
	authed.Use(middleware.Authenticate(cfg.Auth.JWTSecret))

	users := authed.Group("/users")
	users.Use(middleware.RequireRoles(domain.UserManagers...))
	{
		users.POST("", handlers.CreateUser)
		users.GET("", handlers.GetUsers)
		users.GET("/:id", handlers.GetUserByID)
		users.PUT("/:id", handlers.UpdateUser)
		users.DELETE("/:id", handlers.DeleteUser)
	}

	buses := authed.Group("/buses")
	{
		buses.GET("", middleware.RequireRoles(domain.Everyone...), handlers.GetBuses)
		buses.GET("/:id", middleware.RequireRoles(domain.Everyone...), handlers.GetBusByID)
		buses.POST("", middleware.RequireRoles(domain.CatalogManagers...), handlers.CreateBus)
		buses.PUT("/:id", middleware.RequireRoles(domain.CatalogManagers...), handlers.UpdateBus)
		buses.DELETE("/:id", middleware.RequireRoles(domain.CatalogManagers...), handlers.DeleteBus)
	}

	routes := authed.Group("/routes")
	{
		routes.GET("", middleware.RequireRoles(domain.Everyone...), handlers.GetRoutes)
		routes.GET("/:id", middleware.RequireRoles(domain.Everyone...), handlers.GetRouteByID)
		routes.POST("", middleware.RequireRoles(domain.CatalogManagers...), handlers.CreateRoute)
		routes.PUT("/:id", middleware.RequireRoles(domain.CatalogManagers...), handlers.UpdateRoute)
		routes.DELETE("/:id", middleware.RequireRoles(domain.CatalogManagers...), handlers.DeleteRoute)
	}

	trips := authed.Group("/trips")
	{
		trips.GET("", middleware.RequireRoles(domain.Everyone...), handlers.GetTrips)
		trips.GET("/:id", middleware.RequireRoles(domain.Everyone...), handlers.GetTripByID)
		trips.GET("/:id/seats", middleware.RequireRoles(domain.Everyone...), handlers.GetTripSeats)
		trips.POST("", middleware.RequireRoles(domain.CatalogManagers...), handlers.CreateTrip)
		trips.PUT("/:id", middleware.RequireRoles(domain.CatalogManagers...), handlers.UpdateTrip)
		trips.PUT("/:id/status", middleware.RequireRoles(domain.CatalogManagers...), handlers.UpdateTripStatus)
		trips.DELETE("/:id", middleware.RequireRoles(domain.CatalogManagers...), handlers.DeleteTrip)
	}

	bookings := authed.Group("/bookings")
	{
		bookings.POST("", middleware.RequireRoles(domain.BookingCreators...), handlers.CreateBooking(cfg.Booking))
		bookings.GET("", middleware.RequireRoles(domain.Everyone...), handlers.GetBookings)
		bookings.GET("/:id", middleware.RequireRoles(domain.Everyone...), handlers.GetBookingByID(cfg.Booking))
		bookings.GET("/:id/ticket", middleware.RequireRoles(domain.Everyone...), handlers.GetETicket)
		bookings.PUT("/:id/cancel", middleware.RequireRoles(domain.Everyone...), handlers.CancelBooking(cfg.Booking))
		bookings.PUT("/:id/status", middleware.RequireRoles(domain.BookingManagers...), handlers.UpdateBookingStatus(cfg.Booking))
	}

	expenses := authed.Group("/expenses")
	{
		expenses.POST("", middleware.RequireRoles(domain.ExpenseSubmitters...), handlers.CreateExpense)
		expenses.GET("", middleware.RequireRoles(domain.AnyStaff...), handlers.GetExpenses)
		expenses.GET("/:id", middleware.RequireRoles(domain.AnyStaff...), handlers.GetExpenseByID)
		expenses.PUT("/:id/approve", middleware.RequireRoles(domain.ExpenseReviewers...), handlers.ApproveExpense)
		expenses.PUT("/:id/reject", middleware.RequireRoles(domain.ExpenseReviewers...), handlers.RejectExpense)
	}

	dashboard := authed.Group("/dashboard")
	{
		dashboard.GET("/admin", middleware.RequireRoles(domain.RoleMasterAdmin), handlers.AdminDashboard(cfg.Booking))
		dashboard.GET("/owner", middleware.RequireRoles(domain.RoleBusOwner, domain.RoleBusAdmin), handlers.OwnerDashboard(cfg.Booking))
		dashboard.GET("/booking-man", middleware.RequireRoles(domain.RoleBookingMan), handlers.BookingManDashboard(cfg.Booking))
	}

	analytics := authed.Group("/analytics")
	analytics.Use(middleware.RequireRoles(domain.Everyone...))
	{
		analytics.GET("/bookings", handlers.GetBookingAnalytics(cfg.Booking))
	}

	return r
}
