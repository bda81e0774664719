package services

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// UserService enforces the creation hierarchy: every account is provisioned
// by an account of strictly higher rank, except customers who self-register.
type UserService struct {
	UserRepo  repositories.UserRepository
	DB        *sql.DB
	RequestID string
}

func (s UserService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s UserService) users() repositories.UserRepository {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	return repositories.UserRepository{DB: s.db()}
}

// CreateUserInput is the admin provisioning body.
type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Subrole  string `json:"subrole"`
}

func (s UserService) validate(in CreateUserInput) (domain.Role, *domain.Subrole, error) {
	if strings.TrimSpace(in.Name) == "" {
		return "", nil, domain.ValidationError{Field: "name", Msg: "required"}
	}
	if !strings.Contains(in.Email, "@") {
		return "", nil, domain.ValidationError{Field: "email", Msg: "invalid email"}
	}
	if !utils.IsMobile(in.Phone) {
		return "", nil, domain.ValidationError{Field: "phone", Msg: "invalid mobile number"}
	}
	if len(in.Password) < 8 {
		return "", nil, domain.ValidationError{Field: "password", Msg: "must be at least 8 characters"}
	}
	role, ok := domain.ParseRole(in.Role)
	if !ok {
		return "", nil, domain.ValidationError{Field: "role", Msg: "unknown role"}
	}

	var subrole *domain.Subrole
	if domain.RequiresSubrole(role) {
		sr, ok := domain.ParseSubrole(in.Subrole)
		if !ok {
			return "", nil, domain.ValidationError{Field: "subrole", Msg: "driver or helper required for bus employees"}
		}
		subrole = &sr
	} else if strings.TrimSpace(in.Subrole) != "" {
		return "", nil, domain.ValidationError{Field: "subrole", Msg: "only bus employees carry a subrole"}
	}
	return role, subrole, nil
}

// Create provisions an account below the creator in the hierarchy.
func (s UserService) Create(principal domain.Principal, in CreateUserInput) (models.User, error) {
	role, subrole, err := s.validate(in)
	if err != nil {
		return models.User{}, err
	}
	if !domain.CanCreate(principal.Role, role) {
		return models.User{}, domain.ForbiddenError{Msg: fmt.Sprintf("a %s cannot create %s accounts", principal.Role, role)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "failed to hash password", Err: err}
	}

	creator := principal.UserID
	u := models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: string(hash),
		Role:         role,
		Subrole:      subrole,
		CreatedBy:    &creator,
	}
	if err := s.users().Create(&u); err != nil {
		return models.User{}, err
	}

	utils.LogEvent(s.RequestID, "user", "create",
		fmt.Sprintf("user_id=%d role=%s created_by=%d", u.ID, string(role), creator))
	return s.users().GetByID(u.ID)
}

// Register is the customer self-signup path.
func (s UserService) Register(in CreateUserInput) (models.User, error) {
	in.Role = string(domain.RoleCustomer)
	in.Subrole = ""
	role, _, err := s.validate(in)
	if err != nil {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "failed to hash password", Err: err}
	}

	u := models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users().Create(&u); err != nil {
		return models.User{}, err
	}

	utils.LogEvent(s.RequestID, "user", "register", fmt.Sprintf("user_id=%d", u.ID))
	return s.users().GetByID(u.ID)
}
