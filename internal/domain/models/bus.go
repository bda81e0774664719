package models

import "time"

// Bus is an operator-owned vehicle. AvailableSeats here is the static fleet
// figure; per-departure availability lives on Trip.
type Bus struct {
	ID                 int64     `json:"id"`
	OwnerID            int64     `json:"ownerId"`
	Name               string    `json:"name"`
	RegistrationNumber string    `json:"registrationNumber"`
	BusType            string    `json:"busType"`
	TotalSeats         int       `json:"totalSeats"`
	AvailableSeats     int       `json:"availableSeats"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
