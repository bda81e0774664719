package repositories

import (
	"database/sql"
	"strings"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
)

type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Joins tolerate deleted buses/routes (hard deletes do not cascade), so the
// display names fall back to empty strings.
const tripSelect = `
	SELECT t.id, t.bus_id, t.route_id, t.departure_time, t.arrival_time, t.fare,
	       t.total_seats, t.available_seats, t.total_bookings, t.status,
	       t.created_at, t.updated_at,
	       COALESCE(b.name, ''), COALESCE(r.name, '')
	FROM trips t
	LEFT JOIN buses b ON b.id = t.bus_id
	LEFT JOIN routes r ON r.id = t.route_id`

func scanTrip(row interface{ Scan(...any) error }) (models.Trip, error) {
	var t models.Trip
	err := row.Scan(&t.ID, &t.BusID, &t.RouteID, &t.DepartureTime, &t.ArrivalTime, &t.Fare,
		&t.TotalSeats, &t.AvailableSeats, &t.TotalBookings, &t.Status,
		&t.CreatedAt, &t.UpdatedAt, &t.BusName, &t.RouteName)
	return t, err
}

// Create seeds the trip counters: all seats available, nothing booked.
func (r TripRepository) Create(t *models.Trip) error {
	res, err := r.db().Exec(`
		INSERT INTO trips (bus_id, route_id, departure_time, arrival_time, fare, total_seats, available_seats, total_bookings, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, NOW(), NOW())
	`, t.BusID, t.RouteID, t.DepartureTime, t.ArrivalTime, t.Fare, t.TotalSeats, t.TotalSeats, string(domain.TripScheduled))
	if err != nil {
		return domain.InternalError{Err: err}
	}
	t.ID, _ = res.LastInsertId()
	t.AvailableSeats = t.TotalSeats
	t.TotalBookings = 0
	t.Status = domain.TripScheduled
	return nil
}

func (r TripRepository) GetByID(id int64) (models.Trip, error) {
	t, err := scanTrip(r.db().QueryRow(tripSelect+` WHERE t.id = ?`, id))
	if err == sql.ErrNoRows {
		return models.Trip{}, domain.NotFoundError{Resource: "trip"}
	}
	if err != nil {
		return models.Trip{}, domain.InternalError{Err: err}
	}
	return t, nil
}

type TripFilter struct {
	BusID   int64
	RouteID int64
	OwnerID int64 // scopes to trips on buses owned by this user
	Status  domain.TripStatus
	Date    string // departure calendar day, YYYY-MM-DD
}

func (r TripRepository) List(f TripFilter, p domain.PageParams) ([]models.Trip, int, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.BusID > 0 {
		where = append(where, "t.bus_id = ?")
		args = append(args, f.BusID)
	}
	if f.RouteID > 0 {
		where = append(where, "t.route_id = ?")
		args = append(args, f.RouteID)
	}
	if f.OwnerID > 0 {
		where = append(where, "b.owner_id = ?")
		args = append(args, f.OwnerID)
	}
	if f.Status != "" {
		where = append(where, "t.status = ?")
		args = append(args, string(f.Status))
	}
	if f.Date != "" {
		where = append(where, "DATE(t.departure_time) = ?")
		args = append(args, f.Date)
	}
	cond := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM trips t LEFT JOIN buses b ON b.id = t.bus_id WHERE ` + cond
	if err := r.db().QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}

	rows, err := r.db().Query(tripSelect+` WHERE `+cond+` ORDER BY t.departure_time ASC LIMIT ? OFFSET ?`,
		append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := make([]models.Trip, 0, p.Limit)
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, domain.InternalError{Err: err}
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	return out, total, nil
}

// Update only touches schedule fields; seat counters belong to the booking
// transaction and status has its own state machine.
func (r TripRepository) Update(t models.Trip) (models.Trip, error) {
	_, err := r.db().Exec(`
		UPDATE trips SET departure_time = ?, arrival_time = ?, fare = ?, updated_at = NOW()
		WHERE id = ?
	`, t.DepartureTime, t.ArrivalTime, t.Fare, t.ID)
	if err != nil {
		return models.Trip{}, domain.InternalError{Err: err}
	}
	return r.GetByID(t.ID)
}

// UpdateStatus enforces the trip state machine inside a conditional write so
// concurrent transitions cannot race.
func (r TripRepository) UpdateStatus(id int64, next domain.TripStatus) (models.Trip, error) {
	current, err := r.GetByID(id)
	if err != nil {
		return models.Trip{}, err
	}
	if !current.Status.CanTransitionTo(next) {
		return models.Trip{}, domain.StateError{Resource: "trip", Msg: "cannot move from " + string(current.Status) + " to " + string(next)}
	}
	res, err := r.db().Exec(`UPDATE trips SET status = ?, updated_at = NOW() WHERE id = ? AND status = ?`,
		string(next), id, string(current.Status))
	if err != nil {
		return models.Trip{}, domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Trip{}, domain.ConflictError{Resource: "trip", Msg: "status changed concurrently, retry"}
	}
	return r.GetByID(id)
}

// Delete does not cascade to bookings.
func (r TripRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

// BookedSeatNumbers lists active seat holds for a trip, for seat-map
// endpoints. Cancelled bookings release their rows, so no status filter is
// needed here.
func (r TripRepository) BookedSeatNumbers(tripID int64) ([]int, error) {
	rows, err := r.db().Query(`SELECT seat_number FROM booking_seats WHERE trip_id = ? ORDER BY seat_number ASC`, tripID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []int{}
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}
