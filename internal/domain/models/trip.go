package models

import (
	"time"

	"busbooking/internal/domain"
)

// Trip is one scheduled departure of a bus along a route. It carries its own
// seat counters, independent of the bus's static totals. TotalBookings
// counts actively booked seats, so cancellation subtracts the seat count it
// releases.
type Trip struct {
	ID             int64             `json:"id"`
	BusID          int64             `json:"busId"`
	RouteID        int64             `json:"routeId"`
	DepartureTime  time.Time         `json:"departureTime"`
	ArrivalTime    time.Time         `json:"arrivalTime"`
	Fare           int64             `json:"fare"`
	TotalSeats     int               `json:"totalSeats"`
	AvailableSeats int               `json:"availableSeats"`
	TotalBookings  int               `json:"totalBookings"`
	Status         domain.TripStatus `json:"status"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`

	// Display-only joins; zero-valued when the referenced row was deleted.
	BusName   string `json:"busName,omitempty"`
	RouteName string `json:"routeName,omitempty"`
}
