package repositories

import (
	"database/sql"
	"encoding/json"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
)

type RouteRepository struct {
	DB *sql.DB
}

func (r RouteRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const routeColumns = `id, name, origin, destination, stops, distance_km, duration_minutes, created_at, updated_at`

func scanRoute(row interface{ Scan(...any) error }) (models.Route, error) {
	var (
		rt    models.Route
		stops sql.NullString
	)
	err := row.Scan(&rt.ID, &rt.Name, &rt.Origin, &rt.Destination, &stops,
		&rt.DistanceKM, &rt.DurationMinutes, &rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		return models.Route{}, err
	}
	rt.Stops = []models.Stop{}
	if stops.Valid && stops.String != "" {
		// tolerate malformed stop JSON from older rows
		_ = json.Unmarshal([]byte(stops.String), &rt.Stops)
	}
	return rt, nil
}

func (r RouteRepository) Create(rt *models.Route) error {
	stops, err := json.Marshal(rt.Stops)
	if err != nil {
		return domain.ValidationError{Field: "stops", Msg: "not serializable", Err: err}
	}
	res, err := r.db().Exec(`
		INSERT INTO routes (name, origin, destination, stops, distance_km, duration_minutes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, rt.Name, rt.Origin, rt.Destination, string(stops), rt.DistanceKM, rt.DurationMinutes)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	rt.ID, _ = res.LastInsertId()
	return nil
}

func (r RouteRepository) GetByID(id int64) (models.Route, error) {
	rt, err := scanRoute(r.db().QueryRow(`SELECT `+routeColumns+` FROM routes WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return models.Route{}, domain.NotFoundError{Resource: "route"}
	}
	if err != nil {
		return models.Route{}, domain.InternalError{Err: err}
	}
	return rt, nil
}

func (r RouteRepository) List(p domain.PageParams) ([]models.Route, int, error) {
	var total int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM routes`).Scan(&total); err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}

	rows, err := r.db().Query(`SELECT `+routeColumns+` FROM routes ORDER BY id DESC LIMIT ? OFFSET ?`, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := make([]models.Route, 0, p.Limit)
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, 0, domain.InternalError{Err: err}
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	return out, total, nil
}

func (r RouteRepository) Update(rt models.Route) (models.Route, error) {
	stops, err := json.Marshal(rt.Stops)
	if err != nil {
		return models.Route{}, domain.ValidationError{Field: "stops", Msg: "not serializable", Err: err}
	}
	_, err = r.db().Exec(`
		UPDATE routes SET name = ?, origin = ?, destination = ?, stops = ?, distance_km = ?, duration_minutes = ?, updated_at = NOW()
		WHERE id = ?
	`, rt.Name, rt.Origin, rt.Destination, string(stops), rt.DistanceKM, rt.DurationMinutes, rt.ID)
	if err != nil {
		return models.Route{}, domain.InternalError{Err: err}
	}
	return r.GetByID(rt.ID)
}

// Delete does not cascade to trips.
func (r RouteRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM routes WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "route"}
	}
	return nil
}
