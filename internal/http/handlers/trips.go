package handlers

import (
	"net/http"
	"strconv"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"

	"github.com/gin-gonic/gin"
)

type tripRequest struct {
	BusID         int64  `json:"busId"`
	RouteID       int64  `json:"routeId"`
	DepartureTime string `json:"departureTime"` // "YYYY-MM-DD HH:MM:SS"
	ArrivalTime   string `json:"arrivalTime"`
	Fare          int64  `json:"fare"`
}

func CreateTrip(c *gin.Context) {
	var req tripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Fare <= 0 {
		respondError(c, http.StatusBadRequest, "fare must be positive", nil)
		return
	}

	departure, err := utils.ParseDateTime(req.DepartureTime)
	if err != nil {
		respondError(c, http.StatusBadRequest, "departureTime must be YYYY-MM-DD HH:MM:SS", err)
		return
	}
	arrival, err := utils.ParseDateTime(req.ArrivalTime)
	if err != nil {
		respondError(c, http.StatusBadRequest, "arrivalTime must be YYYY-MM-DD HH:MM:SS", err)
		return
	}
	if !arrival.After(departure) {
		respondError(c, http.StatusBadRequest, "arrivalTime must be after departureTime", nil)
		return
	}

	bus, err := repositories.BusRepository{}.GetByID(req.BusID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if _, err := (repositories.RouteRepository{}).GetByID(req.RouteID); err != nil {
		RespondDomainError(c, err)
		return
	}

	trip := models.Trip{
		BusID:         req.BusID,
		RouteID:       req.RouteID,
		DepartureTime: departure,
		ArrivalTime:   arrival,
		Fare:          req.Fare,
		TotalSeats:    bus.TotalSeats,
	}
	if err := (repositories.TripRepository{}).Create(&trip); err != nil {
		RespondDomainError(c, err)
		return
	}

	created, err := repositories.TripRepository{}.GetByID(trip.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondCreated(c, "trip created", created)
}

func GetTrips(c *gin.Context) {
	page := parsePage(c)

	filter := repositories.TripFilter{Date: c.Query("date")}
	filter.BusID, _ = strconv.ParseInt(c.Query("busId"), 10, 64)
	filter.RouteID, _ = strconv.ParseInt(c.Query("routeId"), 10, 64)
	if status, ok := domain.ParseTripStatus(c.Query("status")); ok && c.Query("status") != "" {
		filter.Status = status
	}

	trips, total, err := repositories.TripRepository{}.List(filter, page)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, "trips fetched", listPayload("trips", trips, NewPageMeta(page, total)))
}

func GetTripByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	trip, err := repositories.TripRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, "trip fetched", trip)
}

// GetTripSeats returns currently held seat numbers for the seat map.
func GetTripSeats(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	repo := repositories.TripRepository{}
	trip, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	booked, err := repo.BookedSeatNumbers(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, "trip seats fetched", gin.H{
		"totalSeats":     trip.TotalSeats,
		"availableSeats": trip.AvailableSeats,
		"bookedSeats":    booked,
	})
}

func UpdateTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req tripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Fare <= 0 {
		respondError(c, http.StatusBadRequest, "fare must be positive", nil)
		return
	}
	departure, err := utils.ParseDateTime(req.DepartureTime)
	if err != nil {
		respondError(c, http.StatusBadRequest, "departureTime must be YYYY-MM-DD HH:MM:SS", err)
		return
	}
	arrival, err := utils.ParseDateTime(req.ArrivalTime)
	if err != nil {
		respondError(c, http.StatusBadRequest, "arrivalTime must be YYYY-MM-DD HH:MM:SS", err)
		return
	}

	trip, err := repositories.TripRepository{}.Update(models.Trip{
		ID:            id,
		DepartureTime: departure,
		ArrivalTime:   arrival,
		Fare:          req.Fare,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, "trip updated", trip)
}

type tripStatusRequest struct {
	Status string `json:"status"`
}

// UpdateTripStatus moves the trip through its lifecycle
// (scheduled -> departed -> completed, cancellable while scheduled).
func UpdateTripStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req tripStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	next, valid := domain.ParseTripStatus(req.Status)
	if !valid {
		respondError(c, http.StatusBadRequest, "unknown trip status", nil)
		return
	}

	trip, err := repositories.TripRepository{}.UpdateStatus(id, next)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, "trip status updated", trip)
}

// DeleteTrip does not cascade to bookings.
func DeleteTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := (repositories.TripRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, "trip deleted", nil)
}
