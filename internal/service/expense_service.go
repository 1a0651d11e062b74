package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/expense-service/internal/domain"
	"github.com/spec-kit/expense-service/internal/events"
	"github.com/spec-kit/expense-service/internal/repository"
	apperrors "github.com/spec-kit/expense-service/pkg/util"
)

// ExpenseInput describes expense create/update payloads. The owner is never
// part of the input; it always comes from the authenticated principal.
type ExpenseInput struct {
	CategoryID  int64
	Description string
	Amount      float64
	Date        *time.Time
}

// ExpenseService coordinates owner-scoped expense workflows and the cached
// per-category summary.
type ExpenseService struct {
	expenses   repository.ExpenseRepository
	categories repository.CategoryRepository
	cache      SummaryCache
	dispatcher events.Dispatcher
}

// NewExpenseService constructs the service.
func NewExpenseService(expenses repository.ExpenseRepository, categories repository.CategoryRepository, cache SummaryCache, dispatcher events.Dispatcher) *ExpenseService {
	return &ExpenseService{expenses: expenses, categories: categories, cache: cache, dispatcher: dispatcher}
}

// Create records an expense for the principal. The referenced category must
// belong to the same account.
func (s *ExpenseService) Create(ctx context.Context, ownerID int64, input ExpenseInput) (*domain.Expense, error) {
	if input.Amount <= 0 {
		return nil, apperrors.NewValidationError("amount must be positive", nil)
	}
	if err := s.requireOwnedCategory(ctx, ownerID, input.CategoryID); err != nil {
		return nil, err
	}

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	expense := &domain.Expense{
		OwnerID:     ownerID,
		CategoryID:  input.CategoryID,
		Description: strings.TrimSpace(input.Description),
		Amount:      input.Amount,
		Date:        date,
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventExpenseCreated, ownerID, expense.ID)
	return expense, nil
}

// List returns the principal's expenses, newest first.
func (s *ExpenseService) List(ctx context.Context, ownerID int64, filter repository.ExpenseFilter) ([]domain.Expense, error) {
	return s.expenses.ListByOwner(ctx, ownerID, filter)
}

// Get fetches one owned expense.
func (s *ExpenseService) Get(ctx context.Context, ownerID, id int64) (*domain.Expense, error) {
	return s.getOwned(ctx, ownerID, id)
}

// Update modifies an owned expense, re-checking category ownership when the
// category changes.
func (s *ExpenseService) Update(ctx context.Context, ownerID, id int64, input ExpenseInput) (*domain.Expense, error) {
	if input.Amount <= 0 {
		return nil, apperrors.NewValidationError("amount must be positive", nil)
	}

	expense, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwnedCategory(ctx, ownerID, input.CategoryID); err != nil {
		return nil, err
	}

	expense.CategoryID = input.CategoryID
	expense.Description = strings.TrimSpace(input.Description)
	expense.Amount = input.Amount
	if input.Date != nil {
		expense.Date = *input.Date
	}

	if err := s.expenses.Update(ctx, expense); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventExpenseUpdated, ownerID, expense.ID)
	return expense, nil
}

// Delete removes an owned expense.
func (s *ExpenseService) Delete(ctx context.Context, ownerID, id int64) error {
	if _, err := s.getOwned(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.expenses.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, events.EventExpenseDeleted, ownerID, id)
	return nil
}

// Summary returns the principal's per-category totals with percentages and
// the grand total, served from cache when fresh.
func (s *ExpenseService) Summary(ctx context.Context, ownerID int64) (*domain.ExpenseSummary, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, ownerID); ok {
			return cached, nil
		}
	}

	rows, err := s.expenses.SummarizeByCategory(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summary := &domain.ExpenseSummary{Categories: rows}
	for _, row := range rows {
		summary.Total += row.Total
	}
	if summary.Total > 0 {
		for i := range summary.Categories {
			summary.Categories[i].Percentage = summary.Categories[i].Total / summary.Total * 100
		}
	}

	if s.cache != nil {
		s.cache.Set(ctx, ownerID, summary)
	}
	return summary, nil
}

// getOwned fetches by id and enforces ownership; absence and foreign
// ownership are indistinguishable to the caller.
func (s *ExpenseService) getOwned(ctx context.Context, ownerID, id int64) (*domain.Expense, error) {
	expense, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if expense.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return expense, nil
}

func (s *ExpenseService) requireOwnedCategory(ctx context.Context, ownerID, categoryID int64) error {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if category.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	return nil
}

func (s *ExpenseService) publish(ctx context.Context, eventType events.EventType, ownerID, resourceID int64) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:       eventType,
		OwnerID:    ownerID,
		ResourceID: resourceID,
		OccurredAt: time.Now(),
	})
}
