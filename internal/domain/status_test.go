package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingTransitions(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		allowed  bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingCancelled, true},
		{BookingPending, BookingCompleted, false},
		{BookingConfirmed, BookingCompleted, true},
		{BookingConfirmed, BookingCancelled, true},
		{BookingConfirmed, BookingPending, false},
		{BookingCancelled, BookingPending, false},
		{BookingCancelled, BookingConfirmed, false},
		{BookingCompleted, BookingPending, false},
		{BookingCompleted, BookingCancelled, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestBookingTerminalStates(t *testing.T) {
	assert.False(t, BookingPending.Terminal())
	assert.False(t, BookingConfirmed.Terminal())
	assert.True(t, BookingCancelled.Terminal())
	assert.True(t, BookingCompleted.Terminal())
}

func TestParseBookingStatus(t *testing.T) {
	st, ok := ParseBookingStatus("  Confirmed ")
	assert.True(t, ok)
	assert.Equal(t, BookingConfirmed, st)

	_, ok = ParseBookingStatus("shipped")
	assert.False(t, ok)
}

func TestTripTransitions(t *testing.T) {
	cases := []struct {
		from, to TripStatus
		allowed  bool
	}{
		{TripScheduled, TripDeparted, true},
		{TripScheduled, TripCancelled, true},
		{TripScheduled, TripCompleted, false},
		{TripDeparted, TripCompleted, true},
		{TripDeparted, TripCancelled, false},
		{TripCompleted, TripScheduled, false},
		{TripCancelled, TripScheduled, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestTripBookable(t *testing.T) {
	assert.True(t, TripScheduled.Bookable())
	assert.False(t, TripDeparted.Bookable())
	assert.False(t, TripCompleted.Bookable())
	assert.False(t, TripCancelled.Bookable())
}

func TestParsePeriod(t *testing.T) {
	p, ok := ParsePeriod("")
	assert.True(t, ok)
	assert.Equal(t, PeriodDaily, p, "empty period defaults to daily")

	p, ok = ParsePeriod("Monthly")
	assert.True(t, ok)
	assert.Equal(t, PeriodMonthly, p)

	_, ok = ParsePeriod("hourly")
	assert.False(t, ok)
}
