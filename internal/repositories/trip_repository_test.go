package repositories

import (
	"testing"
	"time"

	"busbooking/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func tripRow(status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "bus_id", "route_id", "departure_time", "arrival_time", "fare",
		"total_seats", "available_seats", "total_bookings", "status",
		"created_at", "updated_at", "bus_name", "route_name",
	}).AddRow(7, 2, 3, time.Now(), time.Now().Add(6*time.Hour), 300,
		40, 38, 2, status, time.Now(), time.Now(), "Green Line 1", "Dhaka-Rajshahi")
}

func TestTripUpdateStatusTransition(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trips t").
		WithArgs(int64(7)).
		WillReturnRows(tripRow("scheduled"))
	mock.ExpectExec("UPDATE trips SET status").
		WithArgs("departed", int64(7), "scheduled").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM trips t").
		WithArgs(int64(7)).
		WillReturnRows(tripRow("departed"))

	repo := TripRepository{DB: db}
	trip, err := repo.UpdateStatus(7, domain.TripDeparted)
	if err != nil {
		t.Fatalf("update status error: %v", err)
	}
	if trip.Status != domain.TripDeparted {
		t.Errorf("status = %s, want departed", trip.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripUpdateStatusIllegal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trips t").
		WillReturnRows(tripRow("completed"))

	repo := TripRepository{DB: db}
	if _, err := repo.UpdateStatus(7, domain.TripDeparted); !domain.IsState(err) {
		t.Fatalf("want state error, got %v", err)
	}
}

func TestTripUpdateStatusConcurrentChange(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trips t").
		WillReturnRows(tripRow("scheduled"))
	// Someone else moved the trip between read and write.
	mock.ExpectExec("UPDATE trips SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := TripRepository{DB: db}
	if _, err := repo.UpdateStatus(7, domain.TripCancelled); !domain.IsConflict(err) {
		t.Fatalf("want conflict error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
