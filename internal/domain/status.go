package domain

import "strings"

// BookingStatus lifecycle: pending -> confirmed -> completed, with
// cancellation allowed from pending or confirmed. The transition table below
// is the single authority; nothing else writes booking_status.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

var bookingTransitions = map[BookingStatus]map[BookingStatus]bool{
	BookingPending:   {BookingConfirmed: true, BookingCancelled: true},
	BookingConfirmed: {BookingCompleted: true, BookingCancelled: true},
	BookingCancelled: {},
	BookingCompleted: {},
}

func ParseBookingStatus(s string) (BookingStatus, bool) {
	st := BookingStatus(strings.ToLower(strings.TrimSpace(s)))
	_, ok := bookingTransitions[st]
	return st, ok
}

// CanTransitionTo consults the booking state machine.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return bookingTransitions[s][next]
}

// Terminal statuses accept no further transitions.
func (s BookingStatus) Terminal() bool {
	return len(bookingTransitions[s]) == 0
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// TripStatus lifecycle: scheduled -> departed -> completed, cancellable
// while scheduled. Bookings are only accepted on scheduled trips.
type TripStatus string

const (
	TripScheduled TripStatus = "scheduled"
	TripDeparted  TripStatus = "departed"
	TripCompleted TripStatus = "completed"
	TripCancelled TripStatus = "cancelled"
)

var tripTransitions = map[TripStatus]map[TripStatus]bool{
	TripScheduled: {TripDeparted: true, TripCancelled: true},
	TripDeparted:  {TripCompleted: true},
	TripCompleted: {},
	TripCancelled: {},
}

func ParseTripStatus(s string) (TripStatus, bool) {
	st := TripStatus(strings.ToLower(strings.TrimSpace(s)))
	_, ok := tripTransitions[st]
	return st, ok
}

func (s TripStatus) CanTransitionTo(next TripStatus) bool {
	return tripTransitions[s][next]
}

func (s TripStatus) Bookable() bool {
	return s == TripScheduled
}

// ExpenseStatus approval workflow. Only pending expenses may be reviewed.
type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "pending"
	ExpenseApproved ExpenseStatus = "approved"
	ExpenseRejected ExpenseStatus = "rejected"
)

// Period buckets for analytics grouping.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

func ParsePeriod(s string) (Period, bool) {
	if strings.TrimSpace(s) == "" {
		return PeriodDaily, true
	}
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return p, true
	}
	return "", false
}
