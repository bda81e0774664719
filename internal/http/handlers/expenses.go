package handlers

import (
	"strconv"

	"busbooking/internal/domain"
	"busbooking/internal/http/middleware"
	"busbooking/internal/repositories"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

func expenseService(c *gin.Context) services.ExpenseService {
	return services.ExpenseService{RequestID: middleware.GetRequestID(c)}
}

// CreateExpense records a pending operating cost against a bus.
func CreateExpense(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	var req services.SubmitExpenseInput
	if !BindJSONOrError(c, &req) {
		return
	}

	expense, err := expenseService(c).Submit(principal, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondCreated(c, "expense submitted", expense)
}

// GetExpenses lists expenses; owners and bus admins are pinned to their own
// fleet, submitters without review rights only see what they filed.
func GetExpenses(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	page := parsePage(c)

	filter := repositories.ExpenseFilter{}
	filter.BusID, _ = strconv.ParseInt(c.Query("busId"), 10, 64)
	filter.TripID, _ = strconv.ParseInt(c.Query("tripId"), 10, 64)
	if s := c.Query("status"); s != "" {
		filter.Status = domain.ExpenseStatus(s)
	}

	switch principal.Role {
	case domain.RoleMasterAdmin:
	case domain.RoleBusOwner, domain.RoleBusAdmin:
		filter.OwnerID = principal.UserID
	default:
		filter.SubmittedBy = principal.UserID
	}

	expenses, total, err := repositories.ExpenseRepository{}.List(filter, page)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, "expenses fetched", listPayload("expenses", expenses, NewPageMeta(page, total)))
}

// GetExpenseByID returns a single expense within the caller's scope.
func GetExpenseByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	principal, _ := middleware.GetPrincipal(c)

	expense, err := repositories.ExpenseRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !domain.RoleIn(principal.Role, domain.ExpenseReviewers) && expense.SubmittedBy != principal.UserID {
		RespondDomainError(c, domain.ForbiddenError{Msg: "expense belongs to another user"})
		return
	}
	respondOK(c, "expense fetched", expense)
}

type expenseReviewRequest struct {
	Note string `json:"note"`
}

// ApproveExpense flips a pending expense to approved.
func ApproveExpense(c *gin.Context) {
	reviewExpense(c, true)
}

// RejectExpense flips a pending expense to rejected.
func RejectExpense(c *gin.Context) {
	reviewExpense(c, false)
}

func reviewExpense(c *gin.Context, approve bool) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	principal, _ := middleware.GetPrincipal(c)

	var req expenseReviewRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if !BindJSONOrError(c, &req) {
			return
		}
	}

	expense, err := expenseService(c).Review(principal, id, approve, req.Note)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	msg := "expense rejected"
	if approve {
		msg = "expense approved"
	}
	respondOK(c, msg, expense)
}
