package models

import (
	"time"

	"busbooking/internal/domain"
)

// User is an account anywhere in the operator hierarchy. CreatedBy points at
// the account that provisioned this one (nil for master-admin seeds and
// self-registered customers).
type User struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	PasswordHash string          `json:"-"`
	Role         domain.Role     `json:"role"`
	Subrole      *domain.Subrole `json:"subrole,omitempty"`
	CreatedBy    *int64          `json:"createdBy,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
