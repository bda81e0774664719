package services

import (
	"testing"

	"busbooking/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestBookingStatsEmptyRange(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings bk").
		WillReturnRows(sqlmock.NewRows([]string{"bucket", "count", "seats", "revenue"}))

	svc := StatsService{DB: db}
	buckets, err := svc.BookingStats(domain.Principal{UserID: 1, Role: domain.RoleCustomer},
		domain.DateRange{}, domain.PeriodDaily)
	if err != nil {
		t.Fatalf("stats error: %v", err)
	}
	if len(buckets) != 0 {
		t.Fatalf("want no buckets, got %d", len(buckets))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingStatsScoping(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// Owner scope joins buses and filters by owner_id.
	mock.ExpectQuery("LEFT JOIN buses bu").
		WithArgs("cancelled", int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"bucket", "count", "seats", "revenue"}).
			AddRow("2026-08", 3, 7, 2100))

	svc := StatsService{DB: db}
	buckets, err := svc.BookingStats(domain.Principal{UserID: 5, Role: domain.RoleBusOwner},
		domain.DateRange{}, domain.PeriodMonthly)
	if err != nil {
		t.Fatalf("stats error: %v", err)
	}
	if len(buckets) != 1 || buckets[0].Revenue != 2100 {
		t.Fatalf("unexpected buckets: %+v", buckets)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingManDashboardCommission(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// All bookings, then confirmed+completed only.
	mock.ExpectQuery("SELECT COUNT\\(\\*\\), COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"count", "seats", "revenue"}).AddRow(10, 25, 10000))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\), COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"count", "seats", "revenue"}).AddRow(8, 20, 8000))

	svc := StatsService{DB: db, CommissionRate: 0.1}
	out, err := svc.BookingManDashboard(7)
	if err != nil {
		t.Fatalf("dashboard error: %v", err)
	}
	if out.ConfirmedRevenue != 8000 {
		t.Errorf("confirmed revenue = %d", out.ConfirmedRevenue)
	}
	if out.Commission != 800 {
		t.Errorf("commission = %d, want 800 at 10%%", out.Commission)
	}
}

func TestBookingManDashboardDefaultRate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\), COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"count", "seats", "revenue"}).AddRow(0, 0, 0))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\), COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"count", "seats", "revenue"}).AddRow(0, 0, 0))

	svc := StatsService{DB: db}
	out, err := svc.BookingManDashboard(7)
	if err != nil {
		t.Fatalf("dashboard error: %v", err)
	}
	if out.CommissionRate != 0.05 {
		t.Errorf("rate = %v, want default 0.05", out.CommissionRate)
	}
	if out.Commission != 0 {
		t.Errorf("commission = %d, want 0 on zero revenue", out.Commission)
	}
}
