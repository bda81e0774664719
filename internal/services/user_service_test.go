package services

import (
	"testing"
	"time"

	"busbooking/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func validUserInput() CreateUserInput {
	return CreateUserInput{
		Name:     "Test User",
		Email:    "test@example.com",
		Phone:    "01712345678",
		Password: "secret-pass",
		Role:     "customer",
	}
}

func TestCreateUserValidation(t *testing.T) {
	svc := UserService{}
	principal := domain.Principal{UserID: 1, Role: domain.RoleMasterAdmin}

	cases := []struct {
		name   string
		mutate func(*CreateUserInput)
	}{
		{"blank name", func(in *CreateUserInput) { in.Name = "  " }},
		{"bad email", func(in *CreateUserInput) { in.Email = "not-an-email" }},
		{"bad phone", func(in *CreateUserInput) { in.Phone = "12345" }},
		{"short password", func(in *CreateUserInput) { in.Password = "short" }},
		{"unknown role", func(in *CreateUserInput) { in.Role = "wizard" }},
		{"employee without subrole", func(in *CreateUserInput) { in.Role = "bus-employee" }},
		{"subrole on non-employee", func(in *CreateUserInput) { in.Subrole = "driver" }},
	}
	for _, tc := range cases {
		in := validUserInput()
		tc.mutate(&in)
		if _, err := svc.Create(principal, in); !domain.IsValidation(err) {
			t.Errorf("%s: want validation error, got %v", tc.name, err)
		}
	}
}

func TestCreateUserHierarchyEnforced(t *testing.T) {
	svc := UserService{}

	in := validUserInput()
	in.Role = "bus-owner"
	// bus-owner cannot create a peer
	_, err := svc.Create(domain.Principal{UserID: 2, Role: domain.RoleBusOwner}, in)
	if !domain.IsForbidden(err) {
		t.Fatalf("want forbidden error, got %v", err)
	}

	in.Role = "master-admin"
	_, err = svc.Create(domain.Principal{UserID: 2, Role: domain.RoleBusOwner}, in)
	if !domain.IsForbidden(err) {
		t.Fatalf("want forbidden error for upward creation, got %v", err)
	}
}

func TestRegisterForcesCustomerRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectQuery("FROM users WHERE id = ").
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "email", "phone", "password_hash", "role", "subrole", "created_by",
			"created_at", "updated_at",
		}).AddRow(12, "Test User", "test@example.com", "01712345678", "$2a$10$hash",
			"customer", nil, nil, time.Now(), time.Now()))

	svc := UserService{DB: db}
	in := validUserInput()
	in.Role = "master-admin" // ignored on the self-signup path
	u, err := svc.Register(in)
	if err != nil {
		t.Fatalf("register error: %v", err)
	}
	if u.Role != domain.RoleCustomer {
		t.Errorf("role = %s, want customer", u.Role)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
