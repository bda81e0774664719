package handlers

import (
	"net/http"

	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"

	"github.com/gin-gonic/gin"
)

type routeRequest struct {
	Name            string        `json:"name"`
	Origin          string        `json:"origin"`
	Destination     string        `json:"destination"`
	Stops           []models.Stop `json:"stops"`
	DistanceKM      float64       `json:"distanceKm"`
	DurationMinutes int           `json:"durationMinutes"`
}

func (r routeRequest) validate() (string, bool) {
	if r.Name == "" {
		return "name required", false
	}
	if r.Origin == "" || r.Destination == "" {
		return "origin and destination required", false
	}
	if r.Origin == r.Destination {
		return "origin and destination must differ", false
	}
	return "", true
}

func CreateRoute(c *gin.Context) {
	var req routeRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if msg, ok := req.validate(); !ok {
		respondError(c, http.StatusBadRequest, msg, nil)
		return
	}

	route := models.Route{
		Name:            req.Name,
		Origin:          req.Origin,
		Destination:     req.Destination,
		Stops:           req.Stops,
		DistanceKM:      req.DistanceKM,
		DurationMinutes: req.DurationMinutes,
	}
	if err := (repositories.RouteRepository{}).Create(&route); err != nil {
		RespondDomainError(c, err)
		return
	}

	created, err := repositories.RouteRepository{}.GetByID(route.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondCreated(c, "route created", created)
}

func GetRoutes(c *gin.Context) {
	page := parsePage(c)
	routes, total, err := repositories.RouteRepository{}.List(page)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, "routes fetched", listPayload("routes", routes, NewPageMeta(page, total)))
}

func GetRouteByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	route, err := repositories.RouteRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, "route fetched", route)
}

func UpdateRoute(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req routeRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if msg, ok := req.validate(); !ok {
		respondError(c, http.StatusBadRequest, msg, nil)
		return
	}

	route, err := repositories.RouteRepository{}.Update(models.Route{
		ID:              id,
		Name:            req.Name,
		Origin:          req.Origin,
		Destination:     req.Destination,
		Stops:           req.Stops,
		DistanceKM:      req.DistanceKM,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, "route updated", route)
}

// DeleteRoute does not cascade to trips.
func DeleteRoute(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := (repositories.RouteRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, "route deleted", nil)
}
