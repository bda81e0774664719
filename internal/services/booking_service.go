package services

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"time"

	intconfig "busbooking/internal/config"
	intdb "busbooking/internal/db"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"
)

// BookingService owns the only multi-entity invariant in the system: booked
// seats on a trip are never double-sold, and the trip's seat counters always
// match the sum of active bookings. Both sides of every mutation run in one
// SQL transaction; the UNIQUE(trip_id, seat_number) index backs up the
// conditional counter update so a lost race surfaces as a conflict, not a
// double sale.
type BookingService struct {
	BookingRepo repositories.BookingRepository
	TripRepo    repositories.TripRepository
	DB          *sql.DB
	RequestID   string

	// AutoConfirm starts bookings as confirmed instead of pending.
	AutoConfirm bool

	// GenerateRef overrides reference generation in tests.
	GenerateRef func() string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s BookingService) ref() string {
	if s.GenerateRef != nil {
		return s.GenerateRef()
	}
	return NewBookingReference(time.Now())
}

const referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewBookingReference builds a short human-readable code such as
// BK-20260826-7QK3NX. Ambiguous characters are excluded from the suffix.
func NewBookingReference(now time.Time) string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// time-derived suffix rather than panicking mid-request.
		return fmt.Sprintf("BK-%s-%06d", now.Format("20060102"), now.UnixNano()%1000000)
	}
	for i, b := range buf {
		buf[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return fmt.Sprintf("BK-%s-%s", now.Format("20060102"), string(buf))
}

// CreateBookingInput mirrors the booking creation request body.
type CreateBookingInput struct {
	TripID        int64                   `json:"trip"`
	Seats         []models.SeatAssignment `json:"seats"`
	BoardingPoint string                  `json:"boardingPoint"`
	DroppingPoint string                  `json:"droppingPoint"`
	PaymentMethod string                  `json:"paymentMethod"`
}

func validateCreateInput(in CreateBookingInput) error {
	if in.TripID <= 0 {
		return domain.ValidationError{Field: "trip", Msg: "trip id required"}
	}
	if len(in.Seats) == 0 {
		return domain.ValidationError{Field: "seats", Msg: "at least one seat required"}
	}
	if in.BoardingPoint == "" {
		return domain.ValidationError{Field: "boardingPoint", Msg: "required"}
	}
	if in.DroppingPoint == "" {
		return domain.ValidationError{Field: "droppingPoint", Msg: "required"}
	}
	seen := map[int]bool{}
	for _, seat := range in.Seats {
		if seat.SeatNumber <= 0 {
			return domain.ValidationError{Field: "seats", Msg: "seat numbers must be positive"}
		}
		if seen[seat.SeatNumber] {
			return domain.ValidationError{Field: "seats", Msg: fmt.Sprintf("seat %d listed twice", seat.SeatNumber)}
		}
		seen[seat.SeatNumber] = true
		if seat.PassengerName == "" {
			return domain.ValidationError{Field: "seats", Msg: fmt.Sprintf("seat %d missing passenger name", seat.SeatNumber)}
		}
		if seat.PassengerAge < 1 || seat.PassengerAge > 120 {
			return domain.ValidationError{Field: "seats", Msg: fmt.Sprintf("seat %d passenger age out of range", seat.SeatNumber)}
		}
		if !utils.IsMobile(seat.PassengerPhone) {
			return domain.ValidationError{Field: "seats", Msg: fmt.Sprintf("seat %d passenger phone invalid", seat.SeatNumber)}
		}
		if utils.NormalizeGender(seat.PassengerGender) == "" {
			return domain.ValidationError{Field: "seats", Msg: fmt.Sprintf("seat %d passenger gender invalid", seat.SeatNumber)}
		}
	}
	return nil
}

// Create reserves the requested seats and records the booking atomically.
// Either the trip counters move and the booking exists, or neither.
func (s BookingService) Create(principal domain.Principal, in CreateBookingInput) (models.Booking, error) {
	if err := validateCreateInput(in); err != nil {
		return models.Booking{}, err
	}
	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}
	seatCount := len(in.Seats)

	tx, err := s.db().Begin()
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var (
		fare      int64
		busID     int64
		routeID   int64
		status    string
		available int
	)
	err = tx.QueryRow(`SELECT fare, bus_id, route_id, status, available_seats FROM trips WHERE id = ?`, in.TripID).
		Scan(&fare, &busID, &routeID, &status, &available)
	if err == sql.ErrNoRows {
		return models.Booking{}, domain.NotFoundError{Resource: "trip"}
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if !domain.TripStatus(status).Bookable() {
		return models.Booking{}, domain.StateError{Resource: "trip", Msg: "not open for booking"}
	}

	// Conditional decrement: fails atomically when availability moved
	// between the read above and here.
	res, err := tx.Exec(`
		UPDATE trips SET available_seats = available_seats - ?, total_bookings = total_bookings + ?, updated_at = NOW()
		WHERE id = ? AND status = ? AND available_seats >= ?
	`, seatCount, seatCount, in.TripID, string(domain.TripScheduled), seatCount)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Booking{}, domain.ConflictError{Resource: "trip", Msg: "not enough seats available"}
	}

	initialStatus := domain.BookingPending
	if s.AutoConfirm {
		initialStatus = domain.BookingConfirmed
	}
	totalAmount := fare * int64(seatCount)

	insertBooking := func(ref string) (int64, error) {
		res, err := tx.Exec(`
			INSERT INTO bookings (reference, user_id, trip_id, bus_id, route_id, seat_count,
				booking_status, payment_status, payment_method, boarding_point, dropping_point, total_amount,
				created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
		`, ref, principal.UserID, in.TripID, busID, routeID, seatCount,
			string(initialStatus), string(domain.PaymentPending), paymentMethod,
			in.BoardingPoint, in.DroppingPoint, totalAmount)
		if err != nil {
			return 0, err
		}
		id, _ := res.LastInsertId()
		return id, nil
	}

	reference := s.ref()
	bookingID, err := insertBooking(reference)
	if intdb.IsDuplicateKey(err) {
		// Reference collision: regenerate once, never surface to the caller.
		reference = s.ref()
		bookingID, err = insertBooking(reference)
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	for _, seat := range in.Seats {
		_, err := tx.Exec(`
			INSERT INTO booking_seats (booking_id, trip_id, seat_number, passenger_name, passenger_age, passenger_gender, passenger_phone, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, NOW())
		`, bookingID, in.TripID, seat.SeatNumber, seat.PassengerName, seat.PassengerAge,
			utils.NormalizeGender(seat.PassengerGender), seat.PassengerPhone)
		if err != nil {
			if intdb.IsDuplicateKey(err) {
				return models.Booking{}, domain.ConflictError{
					Resource: "seat",
					Msg:      fmt.Sprintf("seat %d is already booked on this trip", seat.SeatNumber),
					Err:      err,
				}
			}
			return models.Booking{}, domain.InternalError{Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	committed = true

	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("booking_id=%d reference=%s trip_id=%d seats=%d", bookingID, reference, in.TripID, seatCount))

	now := time.Now()
	seats := make([]models.SeatAssignment, 0, seatCount)
	for _, seat := range in.Seats {
		seat.BookingID = bookingID
		seat.TripID = in.TripID
		seat.PassengerGender = utils.NormalizeGender(seat.PassengerGender)
		seats = append(seats, seat)
	}
	return models.Booking{
		ID:            bookingID,
		Reference:     reference,
		UserID:        principal.UserID,
		TripID:        in.TripID,
		BusID:         busID,
		RouteID:       routeID,
		Seats:         seats,
		SeatCount:     seatCount,
		Status:        initialStatus,
		PaymentStatus: domain.PaymentPending,
		PaymentMethod: paymentMethod,
		BoardingPoint: in.BoardingPoint,
		DroppingPoint: in.DroppingPoint,
		TotalAmount:   totalAmount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// CancelInput carries the optional cancellation metadata.
type CancelInput struct {
	Reason       string `json:"cancellationReason"`
	RefundAmount *int64 `json:"refundAmount"`
}

// Cancel reverses a booking: status flips to cancelled, payment to refunded,
// seat rows are released and the trip counters restored, all in one
// transaction. Cancelling twice returns a StateError, never a silent no-op.
func (s BookingService) Cancel(principal domain.Principal, bookingID int64, in CancelInput) (models.Booking, error) {
	if bookingID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "invalid booking id"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var (
		status      string
		userID      int64
		tripID      int64
		seatCount   int
		totalAmount int64
	)
	err = tx.QueryRow(`
		SELECT booking_status, user_id, trip_id, seat_count, total_amount
		FROM bookings WHERE id = ? FOR UPDATE
	`, bookingID).Scan(&status, &userID, &tripID, &seatCount, &totalAmount)
	if err == sql.ErrNoRows {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	if !domain.Elevated(principal.Role) && userID != principal.UserID {
		return models.Booking{}, domain.ForbiddenError{Msg: "booking belongs to another user"}
	}

	current := domain.BookingStatus(status)
	if current == domain.BookingCancelled {
		return models.Booking{}, domain.StateError{Resource: "booking", Msg: "already cancelled"}
	}
	if !current.CanTransitionTo(domain.BookingCancelled) {
		return models.Booking{}, domain.StateError{Resource: "booking", Msg: "cannot cancel a " + status + " booking"}
	}

	refund := totalAmount
	if in.RefundAmount != nil {
		if *in.RefundAmount < 0 || *in.RefundAmount > totalAmount {
			return models.Booking{}, domain.ValidationError{Field: "refundAmount", Msg: "must be between 0 and the booking total"}
		}
		refund = *in.RefundAmount
	}

	_, err = tx.Exec(`
		UPDATE bookings SET booking_status = ?, payment_status = ?, cancellation_reason = ?, refund_amount = ?,
			cancelled_at = NOW(), cancelled_by = ?, updated_at = NOW()
		WHERE id = ?
	`, string(domain.BookingCancelled), string(domain.PaymentRefunded),
		intdb.NullIfEmpty(in.Reason), refund, principal.UserID, bookingID)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	if _, err := tx.Exec(`DELETE FROM booking_seats WHERE booking_id = ?`, bookingID); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	// Clamps keep 0 <= available_seats <= total_seats even against
	// historical rows with drifted counters.
	_, err = tx.Exec(`
		UPDATE trips SET available_seats = LEAST(available_seats + ?, total_seats),
			total_bookings = GREATEST(total_bookings - ?, 0), updated_at = NOW()
		WHERE id = ?
	`, seatCount, seatCount, tripID)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	committed = true

	utils.LogEvent(s.RequestID, "booking", "cancel",
		fmt.Sprintf("booking_id=%d trip_id=%d seats_released=%d refund=%d", bookingID, tripID, seatCount, refund))

	return s.bookings().GetByID(bookingID)
}

// UpdateStatus applies the booking state machine to an explicit transition
// request. Transitions into cancelled take the full cancellation path so the
// seat bookkeeping can never be skipped.
func (s BookingService) UpdateStatus(principal domain.Principal, bookingID int64, nextRaw string) (models.Booking, error) {
	next, ok := domain.ParseBookingStatus(nextRaw)
	if !ok {
		return models.Booking{}, domain.ValidationError{Field: "bookingStatus", Msg: "unknown status"}
	}
	if next == domain.BookingCancelled {
		return s.Cancel(principal, bookingID, CancelInput{Reason: "cancelled via status update"})
	}
	if next == domain.BookingPending {
		return models.Booking{}, domain.StateError{Resource: "booking", Msg: "cannot move a booking back to pending"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var status string
	err = tx.QueryRow(`SELECT booking_status FROM bookings WHERE id = ? FOR UPDATE`, bookingID).Scan(&status)
	if err == sql.ErrNoRows {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	current := domain.BookingStatus(status)
	if !current.CanTransitionTo(next) {
		return models.Booking{}, domain.StateError{Resource: "booking", Msg: "cannot move from " + status + " to " + string(next)}
	}

	if _, err := tx.Exec(`UPDATE bookings SET booking_status = ?, updated_at = NOW() WHERE id = ?`,
		string(next), bookingID); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	committed = true

	utils.LogEvent(s.RequestID, "booking", "update_status",
		fmt.Sprintf("booking_id=%d from=%s to=%s", bookingID, status, string(next)))

	return s.bookings().GetByID(bookingID)
}

// Get returns a booking, enforcing customer ownership.
func (s BookingService) Get(principal domain.Principal, bookingID int64) (models.Booking, error) {
	b, err := s.bookings().GetByID(bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if !domain.Elevated(principal.Role) && b.UserID != principal.UserID {
		return models.Booking{}, domain.ForbiddenError{Msg: "booking belongs to another user"}
	}
	return b, nil
}
