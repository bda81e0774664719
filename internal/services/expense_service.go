package services

import (
	"database/sql"
	"fmt"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"
)

// ExpenseService runs the submit/approve/reject workflow for cost records.
type ExpenseService struct {
	ExpenseRepo repositories.ExpenseRepository
	BusRepo     repositories.BusRepository
	DB          *sql.DB
	RequestID   string
}

func (s ExpenseService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s ExpenseService) expenses() repositories.ExpenseRepository {
	if s.ExpenseRepo.DB != nil {
		return s.ExpenseRepo
	}
	return repositories.ExpenseRepository{DB: s.db()}
}

func (s ExpenseService) buses() repositories.BusRepository {
	if s.BusRepo.DB != nil {
		return s.BusRepo
	}
	return repositories.BusRepository{DB: s.db()}
}

// SubmitExpenseInput mirrors the expense creation body.
type SubmitExpenseInput struct {
	BusID       int64  `json:"busId"`
	TripID      *int64 `json:"tripId"`
	Category    string `json:"category"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

func (s ExpenseService) Submit(principal domain.Principal, in SubmitExpenseInput) (models.Expense, error) {
	if in.BusID <= 0 {
		return models.Expense{}, domain.ValidationError{Field: "busId", Msg: "required"}
	}
	if in.Category == "" {
		return models.Expense{}, domain.ValidationError{Field: "category", Msg: "required"}
	}
	if in.Amount <= 0 {
		return models.Expense{}, domain.ValidationError{Field: "amount", Msg: "must be positive"}
	}
	if _, err := s.buses().GetByID(in.BusID); err != nil {
		return models.Expense{}, err
	}

	e := models.Expense{
		BusID:       in.BusID,
		TripID:      in.TripID,
		Category:    in.Category,
		Amount:      in.Amount,
		Description: in.Description,
		SubmittedBy: principal.UserID,
	}
	if err := s.expenses().Create(&e); err != nil {
		return models.Expense{}, err
	}

	utils.LogEvent(s.RequestID, "expense", "submit",
		fmt.Sprintf("expense_id=%d bus_id=%d amount=%d", e.ID, e.BusID, e.Amount))
	return s.expenses().GetByID(e.ID)
}

// Review approves or rejects a pending expense, stamping the reviewer.
func (s ExpenseService) Review(principal domain.Principal, expenseID int64, approve bool, note string) (models.Expense, error) {
	if expenseID <= 0 {
		return models.Expense{}, domain.ValidationError{Field: "id", Msg: "invalid expense id"}
	}
	next := domain.ExpenseRejected
	if approve {
		next = domain.ExpenseApproved
	}
	e, err := s.expenses().Review(expenseID, next, principal.UserID, note)
	if err != nil {
		return models.Expense{}, err
	}
	utils.LogEvent(s.RequestID, "expense", "review",
		fmt.Sprintf("expense_id=%d status=%s reviewer=%d", expenseID, string(next), principal.UserID))
	return e, nil
}
