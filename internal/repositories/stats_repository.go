package repositories

import (
	"database/sql"
	"strings"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
)

// StatsRepository runs the read-only aggregations behind dashboards and
// analytics. Every SUM is wrapped in COALESCE so an empty result set yields
// zero, keeping downstream arithmetic total.
type StatsRepository struct {
	DB *sql.DB
}

func (r StatsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// BookingBucket is one analytics row: counts and revenue grouped by period.
type BookingBucket struct {
	Bucket   string `json:"bucket"`
	Bookings int64  `json:"bookings"`
	Seats    int64  `json:"seats"`
	Revenue  int64  `json:"revenue"`
}

func bucketExpr(period domain.Period) string {
	switch period {
	case domain.PeriodWeekly:
		return "DATE_FORMAT(bk.created_at, '%x-W%v')"
	case domain.PeriodMonthly:
		return "DATE_FORMAT(bk.created_at, '%Y-%m')"
	case domain.PeriodYearly:
		return "DATE_FORMAT(bk.created_at, '%Y')"
	default:
		return "DATE_FORMAT(bk.created_at, '%Y-%m-%d')"
	}
}

// StatsScope restricts aggregation to a role's slice of the data. Zero
// values mean unscoped.
type StatsScope struct {
	OwnerID int64 // bookings on buses owned by this user
	UserID  int64 // bookings created by this user
}

// BookingStats groups non-cancelled bookings by period bucket. Missing date
// bounds default to all time.
func (r StatsRepository) BookingStats(scope StatsScope, rng domain.DateRange, period domain.Period) ([]BookingBucket, error) {
	where := []string{"bk.booking_status != ?"}
	args := []any{string(domain.BookingCancelled)}
	join := ""
	if scope.OwnerID > 0 {
		join = " LEFT JOIN buses bu ON bu.id = bk.bus_id"
		where = append(where, "bu.owner_id = ?")
		args = append(args, scope.OwnerID)
	}
	if scope.UserID > 0 {
		where = append(where, "bk.user_id = ?")
		args = append(args, scope.UserID)
	}
	if rng.From != "" {
		where = append(where, "bk.created_at >= ?")
		args = append(args, rng.From)
	}
	if rng.To != "" {
		where = append(where, "bk.created_at <= ?")
		args = append(args, rng.To)
	}

	expr := bucketExpr(period)
	query := `
		SELECT ` + expr + ` AS bucket,
		       COUNT(*),
		       COALESCE(SUM(bk.seat_count), 0),
		       COALESCE(SUM(bk.total_amount), 0)
		FROM bookings bk` + join + `
		WHERE ` + strings.Join(where, " AND ") + `
		GROUP BY bucket
		ORDER BY bucket ASC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []BookingBucket{}
	for rows.Next() {
		var b BookingBucket
		if err := rows.Scan(&b.Bucket, &b.Bookings, &b.Seats, &b.Revenue); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// BookingTotals returns count/seats/revenue over non-cancelled bookings in
// scope. Zero rows means zero totals, never an error.
func (r StatsRepository) BookingTotals(scope StatsScope, statuses []domain.BookingStatus) (BookingBucket, error) {
	where := []string{"1=1"}
	args := []any{}
	join := ""
	if len(statuses) > 0 {
		ph := make([]string, len(statuses))
		for i, s := range statuses {
			ph[i] = "?"
			args = append(args, string(s))
		}
		where = append(where, "bk.booking_status IN ("+strings.Join(ph, ",")+")")
	} else {
		where = append(where, "bk.booking_status != ?")
		args = append(args, string(domain.BookingCancelled))
	}
	if scope.OwnerID > 0 {
		join = " LEFT JOIN buses bu ON bu.id = bk.bus_id"
		where = append(where, "bu.owner_id = ?")
		args = append(args, scope.OwnerID)
	}
	if scope.UserID > 0 {
		where = append(where, "bk.user_id = ?")
		args = append(args, scope.UserID)
	}

	var b BookingBucket
	b.Bucket = "total"
	err := r.db().QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(bk.seat_count), 0), COALESCE(SUM(bk.total_amount), 0)
		FROM bookings bk`+join+`
		WHERE `+strings.Join(where, " AND "),
		args...).Scan(&b.Bookings, &b.Seats, &b.Revenue)
	if err != nil {
		return BookingBucket{}, domain.InternalError{Err: err}
	}
	return b, nil
}

// CountUsersByRole powers the master-admin dashboard.
func (r StatsRepository) CountUsersByRole() (map[string]int64, error) {
	rows, err := r.db().Query(`SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := map[string]int64{}
	for rows.Next() {
		var role string
		var n int64
		if err := rows.Scan(&role, &n); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out[role] = n
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// CountRows is the generic COUNT(*) used for dashboard tiles.
func (r StatsRepository) CountRows(table string, ownerID int64) (int64, error) {
	var (
		n   int64
		err error
	)
	switch table {
	case "buses":
		if ownerID > 0 {
			err = r.db().QueryRow(`SELECT COUNT(*) FROM buses WHERE owner_id = ?`, ownerID).Scan(&n)
		} else {
			err = r.db().QueryRow(`SELECT COUNT(*) FROM buses`).Scan(&n)
		}
	case "routes":
		err = r.db().QueryRow(`SELECT COUNT(*) FROM routes`).Scan(&n)
	case "trips":
		if ownerID > 0 {
			err = r.db().QueryRow(`SELECT COUNT(*) FROM trips t LEFT JOIN buses b ON b.id = t.bus_id WHERE b.owner_id = ?`, ownerID).Scan(&n)
		} else {
			err = r.db().QueryRow(`SELECT COUNT(*) FROM trips`).Scan(&n)
		}
	default:
		return 0, domain.ValidationError{Field: "table", Msg: "unsupported count target"}
	}
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return n, nil
}

// PendingExpenses counts expenses awaiting review, optionally owner-scoped.
func (r StatsRepository) PendingExpenses(ownerID int64) (int64, error) {
	var n int64
	var err error
	if ownerID > 0 {
		err = r.db().QueryRow(`
			SELECT COUNT(*) FROM expenses e LEFT JOIN buses b ON b.id = e.bus_id
			WHERE e.status = ? AND b.owner_id = ?`, string(domain.ExpensePending), ownerID).Scan(&n)
	} else {
		err = r.db().QueryRow(`SELECT COUNT(*) FROM expenses WHERE status = ?`, string(domain.ExpensePending)).Scan(&n)
	}
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return n, nil
}
