package dto

import (
	"time"

	"github.com/spec-kit/expense-service/internal/domain"
)

// ExpenseRequest payload for expense create/update. Date accepts RFC 3339 or
// a plain YYYY-MM-DD; when empty the server uses the current time.
type ExpenseRequest struct {
	CategoryID  int64   `json:"category_id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
}

// ExpenseResponse is the public view of an expense.
type ExpenseResponse struct {
	ID          int64     `json:"id"`
	CategoryID  int64     `json:"category_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewExpenseResponse maps the domain model.
func NewExpenseResponse(expense *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          expense.ID,
		CategoryID:  expense.CategoryID,
		Description: expense.Description,
		Amount:      expense.Amount,
		Date:        expense.Date,
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
}
