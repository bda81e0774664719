package handlers

import (
	"net/http"
	"strconv"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/http/middleware"
	"busbooking/internal/repositories"

	"github.com/gin-gonic/gin"
)

type busRequest struct {
	Name               string `json:"name"`
	RegistrationNumber string `json:"registrationNumber"`
	BusType            string `json:"busType"`
	TotalSeats         int    `json:"totalSeats"`
}

func (r busRequest) validate() (string, bool) {
	if r.Name == "" {
		return "name required", false
	}
	if r.RegistrationNumber == "" {
		return "registrationNumber required", false
	}
	if r.TotalSeats < 1 || r.TotalSeats > 100 {
		return "totalSeats must be 1..100", false
	}
	return "", true
}

func CreateBus(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	var req busRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if msg, ok := req.validate(); !ok {
		respondError(c, http.StatusBadRequest, msg, nil)
		return
	}

	bus := models.Bus{
		OwnerID:            principal.UserID,
		Name:               req.Name,
		RegistrationNumber: req.RegistrationNumber,
		BusType:            req.BusType,
		TotalSeats:         req.TotalSeats,
		AvailableSeats:     req.TotalSeats,
	}
	if err := (repositories.BusRepository{}).Create(&bus); err != nil {
		RespondDomainError(c, err)
		return
	}

	created, err := repositories.BusRepository{}.GetByID(bus.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondCreated(c, "bus created", created)
}

func GetBuses(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	page := parsePage(c)

	ownerID, _ := strconv.ParseInt(c.Query("ownerId"), 10, 64)
	// Owners and their admins are pinned to their own fleet.
	if principal.Role == domain.RoleBusOwner || principal.Role == domain.RoleBusAdmin {
		ownerID = principal.UserID
	}

	buses, total, err := repositories.BusRepository{}.List(ownerID, page)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, "buses fetched", listPayload("buses", buses, NewPageMeta(page, total)))
}

func GetBusByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	bus, err := repositories.BusRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, "bus fetched", bus)
}

func UpdateBus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	principal, _ := middleware.GetPrincipal(c)

	var req busRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if msg, ok := req.validate(); !ok {
		respondError(c, http.StatusBadRequest, msg, nil)
		return
	}

	repo := repositories.BusRepository{}
	existing, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if principal.Role != domain.RoleMasterAdmin && existing.OwnerID != principal.UserID {
		respondError(c, http.StatusForbidden, "bus belongs to another owner", nil)
		return
	}

	existing.Name = req.Name
	existing.RegistrationNumber = req.RegistrationNumber
	existing.BusType = req.BusType
	if req.TotalSeats != existing.TotalSeats {
		// Keep the availability invariant when capacity changes.
		existing.AvailableSeats += req.TotalSeats - existing.TotalSeats
		if existing.AvailableSeats < 0 {
			existing.AvailableSeats = 0
		}
		existing.TotalSeats = req.TotalSeats
		if existing.AvailableSeats > existing.TotalSeats {
			existing.AvailableSeats = existing.TotalSeats
		}
	}

	bus, err := repo.Update(existing)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, "bus updated", bus)
}

// DeleteBus does not cascade; trips and bookings keep their references.
func DeleteBus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	principal, _ := middleware.GetPrincipal(c)

	repo := repositories.BusRepository{}
	existing, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if principal.Role != domain.RoleMasterAdmin && existing.OwnerID != principal.UserID {
		respondError(c, http.StatusForbidden, "bus belongs to another owner", nil)
		return
	}

	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, "bus deleted", nil)
}
