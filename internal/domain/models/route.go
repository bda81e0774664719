package models

import "time"

// Stop is one geographic point on a route, in boarding order.
type Stop struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// Route holds no capacity; trips do.
type Route struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	Stops           []Stop    `json:"stops"`
	DistanceKM      float64   `json:"distanceKm"`
	DurationMinutes int       `json:"durationMinutes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
