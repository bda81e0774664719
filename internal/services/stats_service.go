package services

import (
	"database/sql"
	"math"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	"busbooking/internal/repositories"
)

// StatsService shapes the read-only dashboards and the analytics endpoint.
// It never writes.
type StatsService struct {
	StatsRepo repositories.StatsRepository
	DB        *sql.DB

	// CommissionRate is the booking-man share of confirmed revenue.
	CommissionRate float64
}

func (s StatsService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s StatsService) stats() repositories.StatsRepository {
	if s.StatsRepo.DB != nil {
		return s.StatsRepo
	}
	return repositories.StatsRepository{DB: s.db()}
}

// BookingStats scopes the aggregation by the caller's role: customers and
// booking staff see their own bookings, owners see their fleet, master-admin
// sees everything.
func (s StatsService) BookingStats(principal domain.Principal, rng domain.DateRange, period domain.Period) ([]repositories.BookingBucket, error) {
	scope := scopeFor(principal)
	return s.stats().BookingStats(scope, rng, period)
}

func scopeFor(p domain.Principal) repositories.StatsScope {
	switch p.Role {
	case domain.RoleMasterAdmin:
		return repositories.StatsScope{}
	case domain.RoleBusOwner, domain.RoleBusAdmin:
		return repositories.StatsScope{OwnerID: p.UserID}
	default:
		return repositories.StatsScope{UserID: p.UserID}
	}
}

// AdminDashboard is the master-admin landing payload.
type AdminDashboard struct {
	UsersByRole     map[string]int64 `json:"usersByRole"`
	Buses           int64            `json:"buses"`
	Routes          int64            `json:"routes"`
	Trips           int64            `json:"trips"`
	Bookings        int64            `json:"bookings"`
	SeatsSold       int64            `json:"seatsSold"`
	Revenue         int64            `json:"revenue"`
	PendingExpenses int64            `json:"pendingExpenses"`
}

func (s StatsService) AdminDashboard() (AdminDashboard, error) {
	var out AdminDashboard
	var err error

	if out.UsersByRole, err = s.stats().CountUsersByRole(); err != nil {
		return AdminDashboard{}, err
	}
	if out.Buses, err = s.stats().CountRows("buses", 0); err != nil {
		return AdminDashboard{}, err
	}
	if out.Routes, err = s.stats().CountRows("routes", 0); err != nil {
		return AdminDashboard{}, err
	}
	if out.Trips, err = s.stats().CountRows("trips", 0); err != nil {
		return AdminDashboard{}, err
	}
	totals, err := s.stats().BookingTotals(repositories.StatsScope{}, nil)
	if err != nil {
		return AdminDashboard{}, err
	}
	out.Bookings, out.SeatsSold, out.Revenue = totals.Bookings, totals.Seats, totals.Revenue

	if out.PendingExpenses, err = s.stats().PendingExpenses(0); err != nil {
		return AdminDashboard{}, err
	}
	return out, nil
}

// OwnerDashboard scopes the same tiles to one bus owner.
type OwnerDashboard struct {
	Buses           int64 `json:"buses"`
	Trips           int64 `json:"trips"`
	Bookings        int64 `json:"bookings"`
	SeatsSold       int64 `json:"seatsSold"`
	Revenue         int64 `json:"revenue"`
	PendingExpenses int64 `json:"pendingExpenses"`
}

func (s StatsService) OwnerDashboard(ownerID int64) (OwnerDashboard, error) {
	var out OwnerDashboard
	var err error

	if out.Buses, err = s.stats().CountRows("buses", ownerID); err != nil {
		return OwnerDashboard{}, err
	}
	if out.Trips, err = s.stats().CountRows("trips", ownerID); err != nil {
		return OwnerDashboard{}, err
	}
	totals, err := s.stats().BookingTotals(repositories.StatsScope{OwnerID: ownerID}, nil)
	if err != nil {
		return OwnerDashboard{}, err
	}
	out.Bookings, out.SeatsSold, out.Revenue = totals.Bookings, totals.Seats, totals.Revenue

	if out.PendingExpenses, err = s.stats().PendingExpenses(ownerID); err != nil {
		return OwnerDashboard{}, err
	}
	return out, nil
}

// BookingManDashboard reports a booking agent's own volume plus commission
// on confirmed revenue. The rate is configuration, not a business constant;
// product has not confirmed the 5% default.
type BookingManDashboard struct {
	Bookings         int64   `json:"bookings"`
	SeatsSold        int64   `json:"seatsSold"`
	Revenue          int64   `json:"revenue"`
	ConfirmedRevenue int64   `json:"confirmedRevenue"`
	CommissionRate   float64 `json:"commissionRate"`
	Commission       int64   `json:"commission"`
}

func (s StatsService) BookingManDashboard(userID int64) (BookingManDashboard, error) {
	scope := repositories.StatsScope{UserID: userID}

	all, err := s.stats().BookingTotals(scope, nil)
	if err != nil {
		return BookingManDashboard{}, err
	}
	confirmed, err := s.stats().BookingTotals(scope, []domain.BookingStatus{domain.BookingConfirmed, domain.BookingCompleted})
	if err != nil {
		return BookingManDashboard{}, err
	}

	rate := s.CommissionRate
	if rate <= 0 {
		rate = 0.05
	}
	return BookingManDashboard{
		Bookings:         all.Bookings,
		SeatsSold:        all.Seats,
		Revenue:          all.Revenue,
		ConfirmedRevenue: confirmed.Revenue,
		CommissionRate:   rate,
		Commission:       int64(math.Round(float64(confirmed.Revenue) * rate)),
	}, nil
}
