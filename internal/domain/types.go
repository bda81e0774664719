package domain

// ID is used across domain entities.
type ID = int64

// Principal is the authenticated caller attached to every request by the
// auth middleware. Services never re-derive identity; they stamp audit
// fields from this.
type Principal struct {
	UserID  int64   `json:"userId"`
	Role    Role    `json:"role"`
	Subrole Subrole `json:"subrole,omitempty"`
}

// PageParams carries normalized pagination input.
type PageParams struct {
	Page  int
	Limit int
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// NormalizePage clamps page/limit to the documented bounds
// (page >= 1, limit 1..100, defaults 1 and 10).
func NormalizePage(page, limit int) PageParams {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return PageParams{Page: page, Limit: limit}
}

// DateRange is an optional, inclusive created-at filter. Zero values mean
// unbounded ("all time").
type DateRange struct {
	From string
	To   string
}
