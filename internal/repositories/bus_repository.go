package repositories

import (
	"database/sql"
	"strings"

	intconfig "busbooking/internal/config"
	intdb "busbooking/internal/db"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
)

type BusRepository struct {
	DB *sql.DB
}

func (r BusRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const busColumns = `id, owner_id, name, registration_number, bus_type, total_seats, available_seats, created_at, updated_at`

func scanBus(row interface{ Scan(...any) error }) (models.Bus, error) {
	var b models.Bus
	err := row.Scan(&b.ID, &b.OwnerID, &b.Name, &b.RegistrationNumber, &b.BusType,
		&b.TotalSeats, &b.AvailableSeats, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r BusRepository) Create(b *models.Bus) error {
	res, err := r.db().Exec(`
		INSERT INTO buses (owner_id, name, registration_number, bus_type, total_seats, available_seats, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, b.OwnerID, b.Name, b.RegistrationNumber, b.BusType, b.TotalSeats, b.AvailableSeats)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return domain.ConflictError{Resource: "bus", Msg: "registration number already exists", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	b.ID, _ = res.LastInsertId()
	return nil
}

func (r BusRepository) GetByID(id int64) (models.Bus, error) {
	b, err := scanBus(r.db().QueryRow(`SELECT `+busColumns+` FROM buses WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return models.Bus{}, domain.NotFoundError{Resource: "bus"}
	}
	if err != nil {
		return models.Bus{}, domain.InternalError{Err: err}
	}
	return b, nil
}

func (r BusRepository) List(ownerID int64, p domain.PageParams) ([]models.Bus, int, error) {
	where := []string{"1=1"}
	args := []any{}
	if ownerID > 0 {
		where = append(where, "owner_id = ?")
		args = append(args, ownerID)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM buses WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}

	rows, err := r.db().Query(`SELECT `+busColumns+` FROM buses WHERE `+cond+` ORDER BY id DESC LIMIT ? OFFSET ?`,
		append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := make([]models.Bus, 0, p.Limit)
	for rows.Next() {
		b, err := scanBus(rows)
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

func (r BusRepository) Update(b models.Bus) (models.Bus, error) {
	if b.AvailableSeats < 0 || b.AvailableSeats > b.TotalSeats {
		return models.Bus{}, domain.ValidationError{Field: "availableSeats", Msg: "must be between 0 and totalSeats"}
	}
	_, err := r.db().Exec(`
		UPDATE buses SET name = ?, registration_number = ?, bus_type = ?, total_seats = ?, available_seats = ?, updated_at = NOW()
		WHERE id = ?
	`, b.Name, b.RegistrationNumber, b.BusType, b.TotalSeats, b.AvailableSeats, b.ID)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return models.Bus{}, domain.ConflictError{Resource: "bus", Msg: "registration number already exists", Err: err}
		}
		return models.Bus{}, domain.InternalError{Err: err}
	}
	return r.GetByID(b.ID)
}

// Delete does not cascade to trips or bookings.
func (r BusRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM buses WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "bus"}
	}
	return nil
}
