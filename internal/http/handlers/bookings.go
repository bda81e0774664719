package handlers

import (
	"strconv"
	"strings"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	"busbooking/internal/http/middleware"
	"busbooking/internal/repositories"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context, cfg intconfig.BookingConfig) services.BookingService {
	return services.BookingService{
		RequestID:   middleware.GetRequestID(c),
		AutoConfirm: cfg.AutoConfirm,
	}
}

// CreateBooking reserves seats and records the booking in one transaction.
func CreateBooking(cfg intconfig.BookingConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := middleware.GetPrincipal(c)

		var req services.CreateBookingInput
		if !BindJSONOrError(c, &req) {
			return
		}

		booking, err := bookingService(c, cfg).Create(principal, req)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		respondCreated(c, "booking created", booking)
	}
}

// GetBookings lists bookings in the caller's scope: customers and booking
// staff see their own, owners see their fleet, master-admin sees all.
func GetBookings(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	page := parsePage(c)

	filter := repositories.BookingFilter{
		DateRange: domain.DateRange{From: c.Query("from"), To: c.Query("to")},
	}
	filter.TripID, _ = strconv.ParseInt(c.Query("tripId"), 10, 64)
	if status, ok := domain.ParseBookingStatus(c.Query("status")); ok && c.Query("status") != "" {
		filter.Status = status
	}

	switch principal.Role {
	case domain.RoleMasterAdmin:
		filter.UserID, _ = strconv.ParseInt(c.Query("userId"), 10, 64)
	case domain.RoleBusOwner, domain.RoleBusAdmin:
		filter.OwnerID = principal.UserID
	default:
		filter.UserID = principal.UserID
	}

	bookings, total, err := repositories.BookingRepository{}.List(filter, page)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, "bookings fetched", listPayload("bookings", bookings, NewPageMeta(page, total)))
}

// GetBookingByID accepts a numeric id or a reference code in the path.
func GetBookingByID(cfg intconfig.BookingConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := middleware.GetPrincipal(c)
		param := strings.TrimSpace(c.Param("id"))

		if id, err := strconv.ParseInt(param, 10, 64); err == nil && id > 0 {
			booking, err := bookingService(c, cfg).Get(principal, id)
			if err != nil {
				RespondDomainError(c, err)
				return
			}
			respondOK(c, "booking fetched", booking)
			return
		}

		booking, err := repositories.BookingRepository{}.GetByReference(param)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		if !domain.Elevated(principal.Role) && booking.UserID != principal.UserID {
			RespondDomainError(c, domain.ForbiddenError{Msg: "booking belongs to another user"})
			return
		}
		respondOK(c, "booking fetched", booking)
	}
}

// CancelBooking reverses the reservation; the seat release and status flip
// happen atomically in the service.
func CancelBooking(cfg intconfig.BookingConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		principal, _ := middleware.GetPrincipal(c)

		var req services.CancelInput
		if c.Request.Body != nil && c.Request.ContentLength > 0 {
			if !BindJSONOrError(c, &req) {
				return
			}
		}

		booking, err := bookingService(c, cfg).Cancel(principal, id, req)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		respondOK(c, "booking cancelled", booking)
	}
}

type bookingStatusRequest struct {
	Status string `json:"bookingStatus"`
}

// UpdateBookingStatus applies the booking state machine; arbitrary status
// writes are rejected with a state error.
func UpdateBookingStatus(cfg intconfig.BookingConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		principal, _ := middleware.GetPrincipal(c)

		var req bookingStatusRequest
		if !BindJSONOrError(c, &req) {
			return
		}

		booking, err := bookingService(c, cfg).UpdateStatus(principal, id, req.Status)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		respondOK(c, "booking status updated", booking)
	}
}
