package models

import (
	"time"

	"busbooking/internal/domain"
)

// SeatAssignment is one (seat number, passenger) pair inside a booking.
// Rows live in booking_seats under UNIQUE(trip_id, seat_number); the row is
// deleted when the booking is cancelled so the index only covers active
// holds.
type SeatAssignment struct {
	ID              int64  `json:"id,omitempty"`
	BookingID       int64  `json:"-"`
	TripID          int64  `json:"-"`
	SeatNumber      int    `json:"seatNumber"`
	PassengerName   string `json:"passengerName"`
	PassengerAge    int    `json:"passengerAge"`
	PassengerGender string `json:"passengerGender"`
	PassengerPhone  string `json:"passengerPhone"`
}

// Booking is the transactional core entity.
type Booking struct {
	ID            int64                `json:"id"`
	Reference     string               `json:"reference"`
	UserID        int64                `json:"userId"`
	TripID        int64                `json:"tripId"`
	BusID         int64                `json:"busId"`
	RouteID       int64                `json:"routeId"`
	Seats         []SeatAssignment     `json:"seats"`
	SeatCount     int                  `json:"seatCount"`
	Status        domain.BookingStatus `json:"bookingStatus"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
	PaymentMethod string               `json:"paymentMethod"`
	BoardingPoint string               `json:"boardingPoint"`
	DroppingPoint string               `json:"droppingPoint"`
	TotalAmount   int64                `json:"totalAmount"`

	CancellationReason *string    `json:"cancellationReason,omitempty"`
	RefundAmount       *int64     `json:"refundAmount,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancelledBy        *int64     `json:"cancelledBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
