package repositories

import (
	"database/sql"
	"strings"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
)

// BookingRepository reads bookings and their seat assignments. All writes go
// through the booking service's transactions so seat bookkeeping and status
// never drift apart.
type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `id, reference, user_id, trip_id, bus_id, route_id, seat_count,
	booking_status, payment_status, payment_method, boarding_point, dropping_point, total_amount,
	cancellation_reason, refund_amount, cancelled_at, cancelled_by, created_at, updated_at`

const bookingColumnsAliased = `bk.id, bk.reference, bk.user_id, bk.trip_id, bk.bus_id, bk.route_id, bk.seat_count,
	bk.booking_status, bk.payment_status, bk.payment_method, bk.boarding_point, bk.dropping_point, bk.total_amount,
	bk.cancellation_reason, bk.refund_amount, bk.cancelled_at, bk.cancelled_by, bk.created_at, bk.updated_at`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var (
		b           models.Booking
		reason      sql.NullString
		refund      sql.NullInt64
		cancelledAt sql.NullTime
		cancelledBy sql.NullInt64
	)
	err := row.Scan(&b.ID, &b.Reference, &b.UserID, &b.TripID, &b.BusID, &b.RouteID, &b.SeatCount,
		&b.Status, &b.PaymentStatus, &b.PaymentMethod, &b.BoardingPoint, &b.DroppingPoint, &b.TotalAmount,
		&reason, &refund, &cancelledAt, &cancelledBy, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return models.Booking{}, err
	}
	if reason.Valid {
		b.CancellationReason = &reason.String
	}
	if refund.Valid {
		b.RefundAmount = &refund.Int64
	}
	if cancelledAt.Valid {
		b.CancelledAt = &cancelledAt.Time
	}
	if cancelledBy.Valid {
		b.CancelledBy = &cancelledBy.Int64
	}
	return b, nil
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	b, err := scanBooking(r.db().QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	seats, err := r.ListSeats(id)
	if err != nil {
		return models.Booking{}, err
	}
	b.Seats = seats
	return b, nil
}

func (r BookingRepository) GetByReference(ref string) (models.Booking, error) {
	b, err := scanBooking(r.db().QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE reference = ?`, strings.TrimSpace(ref)))
	if err == sql.ErrNoRows {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	seats, err := r.ListSeats(b.ID)
	if err != nil {
		return models.Booking{}, err
	}
	b.Seats = seats
	return b, nil
}

// ListSeats returns the live seat assignments. Cancelled bookings have none;
// their passenger details go with the released rows, an accepted trade for
// keeping UNIQUE(trip_id, seat_number) authoritative.
func (r BookingRepository) ListSeats(bookingID int64) ([]models.SeatAssignment, error) {
	rows, err := r.db().Query(`
		SELECT id, booking_id, trip_id, seat_number, passenger_name, passenger_age, passenger_gender, passenger_phone
		FROM booking_seats WHERE booking_id = ? ORDER BY seat_number ASC
	`, bookingID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.SeatAssignment{}
	for rows.Next() {
		var s models.SeatAssignment
		if err := rows.Scan(&s.ID, &s.BookingID, &s.TripID, &s.SeatNumber,
			&s.PassengerName, &s.PassengerAge, &s.PassengerGender, &s.PassengerPhone); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

type BookingFilter struct {
	UserID  int64
	TripID  int64
	OwnerID int64 // scopes to bookings on buses owned by this user
	Status  domain.BookingStatus
	domain.DateRange
}

func (r BookingRepository) List(f BookingFilter, p domain.PageParams) ([]models.Booking, int, error) {
	where := []string{"1=1"}
	args := []any{}
	join := ""
	if f.UserID > 0 {
		where = append(where, "bk.user_id = ?")
		args = append(args, f.UserID)
	}
	if f.TripID > 0 {
		where = append(where, "bk.trip_id = ?")
		args = append(args, f.TripID)
	}
	if f.OwnerID > 0 {
		join = " LEFT JOIN buses bu ON bu.id = bk.bus_id"
		where = append(where, "bu.owner_id = ?")
		args = append(args, f.OwnerID)
	}
	if f.Status != "" {
		where = append(where, "bk.booking_status = ?")
		args = append(args, string(f.Status))
	}
	if f.From != "" {
		where = append(where, "bk.created_at >= ?")
		args = append(args, f.From)
	}
	if f.To != "" {
		where = append(where, "bk.created_at <= ?")
		args = append(args, f.To)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM bookings bk`+join+` WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}

	rows, err := r.db().Query(`SELECT `+bookingColumnsAliased+` FROM bookings bk`+join+` WHERE `+cond+` ORDER BY bk.id DESC LIMIT ? OFFSET ?`,
		append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := make([]models.Booking, 0, p.Limit)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, domain.InternalError{Err: err}
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	return out, total, nil
}
