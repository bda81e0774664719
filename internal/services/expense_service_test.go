package services

import (
	"testing"
	"time"

	"busbooking/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func expenseRow(status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "bus_id", "trip_id", "category", "amount", "description", "submitted_by", "status",
		"reviewed_by", "reviewed_at", "review_note", "created_at", "updated_at",
	}).AddRow(3, 2, nil, "fuel", 5000, "diesel refill", 4, status, nil, nil, nil, time.Now(), time.Now())
}

func TestSubmitExpenseValidation(t *testing.T) {
	svc := ExpenseService{}
	principal := domain.Principal{UserID: 4, Role: domain.RoleBusEmployee}

	cases := []struct {
		name string
		in   SubmitExpenseInput
	}{
		{"missing bus", SubmitExpenseInput{Category: "fuel", Amount: 100}},
		{"missing category", SubmitExpenseInput{BusID: 2, Amount: 100}},
		{"zero amount", SubmitExpenseInput{BusID: 2, Category: "fuel"}},
		{"negative amount", SubmitExpenseInput{BusID: 2, Category: "fuel", Amount: -1}},
	}
	for _, tc := range cases {
		if _, err := svc.Submit(principal, tc.in); !domain.IsValidation(err) {
			t.Errorf("%s: want validation error, got %v", tc.name, err)
		}
	}
}

func TestSubmitExpenseSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM buses WHERE id = ").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "owner_id", "name", "registration_number", "bus_type",
			"total_seats", "available_seats", "created_at", "updated_at",
		}).AddRow(2, 1, "Green Line 1", "DHK-1234", "ac", 40, 40, time.Now(), time.Now()))
	mock.ExpectExec("INSERT INTO expenses").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectQuery("FROM expenses WHERE id = ").
		WithArgs(int64(3)).
		WillReturnRows(expenseRow("pending"))

	svc := ExpenseService{DB: db}
	e, err := svc.Submit(domain.Principal{UserID: 4, Role: domain.RoleBusEmployee},
		SubmitExpenseInput{BusID: 2, Category: "fuel", Amount: 5000, Description: "diesel refill"})
	if err != nil {
		t.Fatalf("submit error: %v", err)
	}
	if e.Status != domain.ExpensePending {
		t.Errorf("status = %s, want pending", e.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReviewExpenseApprove(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE expenses SET status").
		WithArgs("approved", int64(1), "looks right", int64(3), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM expenses WHERE id = ").
		WithArgs(int64(3)).
		WillReturnRows(expenseRow("approved"))

	svc := ExpenseService{DB: db}
	e, err := svc.Review(domain.Principal{UserID: 1, Role: domain.RoleBusOwner}, 3, true, "looks right")
	if err != nil {
		t.Fatalf("review error: %v", err)
	}
	if e.Status != domain.ExpenseApproved {
		t.Errorf("status = %s, want approved", e.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReviewExpenseAlreadyReviewed(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// Status guard loses: zero rows, read-back reveals the prior decision.
	mock.ExpectExec("UPDATE expenses SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM expenses WHERE id = ").
		WillReturnRows(expenseRow("rejected"))

	svc := ExpenseService{DB: db}
	_, err = svc.Review(domain.Principal{UserID: 1, Role: domain.RoleBusOwner}, 3, true, "")
	if !domain.IsState(err) {
		t.Fatalf("want state error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
