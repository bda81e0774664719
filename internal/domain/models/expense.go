package models

import (
	"time"

	"busbooking/internal/domain"
)

// Expense is a cost record against a bus (optionally a specific trip) with a
// pending/approved/rejected review workflow.
type Expense struct {
	ID          int64                `json:"id"`
	BusID       int64                `json:"busId"`
	TripID      *int64               `json:"tripId,omitempty"`
	Category    string               `json:"category"`
	Amount      int64                `json:"amount"`
	Description string               `json:"description"`
	SubmittedBy int64                `json:"submittedBy"`
	Status      domain.ExpenseStatus `json:"status"`
	ReviewedBy  *int64               `json:"reviewedBy,omitempty"`
	ReviewedAt  *time.Time           `json:"reviewedAt,omitempty"`
	ReviewNote  string               `json:"reviewNote,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}
