package repositories

import (
	"database/sql"
	"strings"

	intconfig "busbooking/internal/config"
	intdb "busbooking/internal/db"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userColumns = `id, name, email, phone, password_hash, role, subrole, created_by, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var (
		u       models.User
		subrole sql.NullString
		creator sql.NullInt64
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &subrole, &creator, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return models.User{}, err
	}
	if subrole.Valid {
		sr := domain.Subrole(subrole.String)
		u.Subrole = &sr
	}
	if creator.Valid {
		u.CreatedBy = &creator.Int64
	}
	return u, nil
}

func (r UserRepository) Create(u *models.User) error {
	var subrole any
	if u.Subrole != nil {
		subrole = string(*u.Subrole)
	}
	var createdBy any
	if u.CreatedBy != nil {
		createdBy = *u.CreatedBy
	}
	res, err := r.db().Exec(`
		INSERT INTO users (name, email, phone, password_hash, role, subrole, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, u.Name, u.Email, u.Phone, u.PasswordHash, string(u.Role), subrole, createdBy)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return domain.ConflictError{Resource: "user", Msg: "email or phone already registered", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	u.ID, _ = res.LastInsertId()
	return nil
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}
	return u, nil
}

// GetByLogin resolves a login identifier against email or phone.
func (r UserRepository) GetByLogin(identifier string) (models.User, error) {
	identifier = strings.TrimSpace(identifier)
	row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ? OR phone = ?`, identifier, identifier)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}
	return u, nil
}

type UserFilter struct {
	Role      domain.Role
	CreatedBy int64 // restricts to accounts provisioned by this user
}

func (r UserRepository) List(f UserFilter, p domain.PageParams) ([]models.User, int, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.Role != "" {
		where = append(where, "role = ?")
		args = append(args, string(f.Role))
	}
	if f.CreatedBy > 0 {
		where = append(where, "created_by = ?")
		args = append(args, f.CreatedBy)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM users WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}

	rows, err := r.db().Query(`SELECT `+userColumns+` FROM users WHERE `+cond+` ORDER BY id DESC LIMIT ? OFFSET ?`,
		append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := make([]models.User, 0, p.Limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, domain.InternalError{Err: err}
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	return out, total, nil
}

func (r UserRepository) Update(id int64, name, phone string) (models.User, error) {
	_, err := r.db().Exec(`UPDATE users SET name = ?, phone = ?, updated_at = NOW() WHERE id = ?`, name, phone, id)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return models.User{}, domain.ConflictError{Resource: "user", Msg: "phone already registered", Err: err}
		}
		return models.User{}, domain.InternalError{Err: err}
	}
	return r.GetByID(id)
}

// Delete is a hard delete and deliberately does not cascade; references from
// bookings and expenses are tolerated as orphans.
func (r UserRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}
