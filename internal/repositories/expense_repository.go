package repositories

import (
	"database/sql"
	"strings"

	intconfig "busbooking/internal/config"
	intdb "busbooking/internal/db"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
)

type ExpenseRepository struct {
	DB *sql.DB
}

func (r ExpenseRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const expenseColumns = `id, bus_id, trip_id, category, amount, description, submitted_by, status,
	reviewed_by, reviewed_at, review_note, created_at, updated_at`

func scanExpense(row interface{ Scan(...any) error }) (models.Expense, error) {
	var (
		e          models.Expense
		tripID     sql.NullInt64
		reviewedBy sql.NullInt64
		reviewedAt sql.NullTime
		note       sql.NullString
	)
	err := row.Scan(&e.ID, &e.BusID, &tripID, &e.Category, &e.Amount, &e.Description, &e.SubmittedBy, &e.Status,
		&reviewedBy, &reviewedAt, &note, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return models.Expense{}, err
	}
	if tripID.Valid {
		e.TripID = &tripID.Int64
	}
	if reviewedBy.Valid {
		e.ReviewedBy = &reviewedBy.Int64
	}
	if reviewedAt.Valid {
		e.ReviewedAt = &reviewedAt.Time
	}
	if note.Valid {
		e.ReviewNote = note.String
	}
	return e, nil
}

func (r ExpenseRepository) Create(e *models.Expense) error {
	var tripID any
	if e.TripID != nil {
		tripID = *e.TripID
	}
	res, err := r.db().Exec(`
		INSERT INTO expenses (bus_id, trip_id, category, amount, description, submitted_by, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, e.BusID, tripID, e.Category, e.Amount, intdb.NullIfEmpty(e.Description), e.SubmittedBy, string(domain.ExpensePending))
	if err != nil {
		return domain.InternalError{Err: err}
	}
	e.ID, _ = res.LastInsertId()
	e.Status = domain.ExpensePending
	return nil
}

func (r ExpenseRepository) GetByID(id int64) (models.Expense, error) {
	e, err := scanExpense(r.db().QueryRow(`SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return models.Expense{}, domain.NotFoundError{Resource: "expense"}
	}
	if err != nil {
		return models.Expense{}, domain.InternalError{Err: err}
	}
	return e, nil
}

type ExpenseFilter struct {
	BusID       int64
	TripID      int64
	OwnerID     int64 // scopes to expenses on buses owned by this user
	SubmittedBy int64
	Status      domain.ExpenseStatus
}

func (r ExpenseRepository) List(f ExpenseFilter, p domain.PageParams) ([]models.Expense, int, error) {
	where := []string{"1=1"}
	args := []any{}
	join := ""
	if f.BusID > 0 {
		where = append(where, "e.bus_id = ?")
		args = append(args, f.BusID)
	}
	if f.TripID > 0 {
		where = append(where, "e.trip_id = ?")
		args = append(args, f.TripID)
	}
	if f.OwnerID > 0 {
		join = " LEFT JOIN buses b ON b.id = e.bus_id"
		where = append(where, "b.owner_id = ?")
		args = append(args, f.OwnerID)
	}
	if f.SubmittedBy > 0 {
		where = append(where, "e.submitted_by = ?")
		args = append(args, f.SubmittedBy)
	}
	if f.Status != "" {
		where = append(where, "e.status = ?")
		args = append(args, string(f.Status))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM expenses e`+join+` WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}

	rows, err := r.db().Query(`SELECT `+expenseColumnsAliased+` FROM expenses e`+join+` WHERE `+cond+` ORDER BY e.id DESC LIMIT ? OFFSET ?`,
		append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := make([]models.Expense, 0, p.Limit)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, 0, domain.InternalError{Err: err}
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	return out, total, nil
}

const expenseColumnsAliased = `e.id, e.bus_id, e.trip_id, e.category, e.amount, e.description, e.submitted_by, e.status,
	e.reviewed_by, e.reviewed_at, e.review_note, e.created_at, e.updated_at`

// Review flips a pending expense to approved or rejected. The status guard
// in the WHERE clause makes concurrent double-reviews lose cleanly.
func (r ExpenseRepository) Review(id int64, next domain.ExpenseStatus, reviewerID int64, note string) (models.Expense, error) {
	if next != domain.ExpenseApproved && next != domain.ExpenseRejected {
		return models.Expense{}, domain.ValidationError{Field: "status", Msg: "must be approved or rejected"}
	}
	res, err := r.db().Exec(`
		UPDATE expenses SET status = ?, reviewed_by = ?, reviewed_at = NOW(), review_note = ?, updated_at = NOW()
		WHERE id = ? AND status = ?
	`, string(next), reviewerID, intdb.NullIfEmpty(note), id, string(domain.ExpensePending))
	if err != nil {
		return models.Expense{}, domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either missing or already reviewed; read back to tell which.
		e, getErr := r.GetByID(id)
		if getErr != nil {
			return models.Expense{}, getErr
		}
		return models.Expense{}, domain.StateError{Resource: "expense", Msg: "already " + string(e.Status)}
	}
	return r.GetByID(id)
}
