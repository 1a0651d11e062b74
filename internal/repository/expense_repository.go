package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/expense-service/internal/domain"
)

// ExpenseFilter narrows owner-scoped expense listings.
type ExpenseFilter struct {
	CategoryID *int64
	DateFrom   *time.Time
	DateTo     *time.Time
	Limit      int
	Offset     int
}

// ExpenseRepository encapsulates expense persistence.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Expense, error)
	ListByOwner(ctx context.Context, ownerID int64, filter ExpenseFilter) ([]domain.Expense, error)
	SummarizeByCategory(ctx context.Context, ownerID int64) ([]domain.CategorySummary, error)
}

type expenseRepository struct {
	pool PgxPool
}

// NewExpenseRepository instantiates the repository.
func NewExpenseRepository(pool PgxPool) ExpenseRepository {
	return &expenseRepository{pool: pool}
}

func (r *expenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	const query = `
        INSERT INTO expenses (owner_id, category_id, description, amount, date)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		expense.OwnerID,
		expense.CategoryID,
		expense.Description,
		expense.Amount,
		expense.Date,
	).Scan(&expense.ID, &expense.CreatedAt, &expense.UpdatedAt)
}

func (r *expenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	const query = `
        UPDATE expenses SET category_id=$1, description=$2, amount=$3, date=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		expense.CategoryID,
		expense.Description,
		expense.Amount,
		expense.Date,
		expense.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *expenseRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM expenses WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *expenseRepository) GetByID(ctx context.Context, id int64) (*domain.Expense, error) {
	const query = `
        SELECT id, owner_id, category_id, description, amount, date, created_at, updated_at
        FROM expenses WHERE id=$1`

	var expense domain.Expense
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&expense.ID,
		&expense.OwnerID,
		&expense.CategoryID,
		&expense.Description,
		&expense.Amount,
		&expense.Date,
		&expense.CreatedAt,
		&expense.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) ListByOwner(ctx context.Context, ownerID int64, filter ExpenseFilter) ([]domain.Expense, error) {
	query := `
        SELECT id, owner_id, category_id, description, amount, date, created_at, updated_at
        FROM expenses WHERE owner_id=$1`
	args := []any{ownerID}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += ` AND category_id=$` + strconv.Itoa(len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += ` AND date >= $` + strconv.Itoa(len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += ` AND date <= $` + strconv.Itoa(len(args))
	}

	query += ` ORDER BY date DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var expense domain.Expense
		if err := rows.Scan(
			&expense.ID,
			&expense.OwnerID,
			&expense.CategoryID,
			&expense.Description,
			&expense.Amount,
			&expense.Date,
			&expense.CreatedAt,
			&expense.UpdatedAt,
		); err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

// SummarizeByCategory aggregates an owner's spending per category, largest
// total first.
func (r *expenseRepository) SummarizeByCategory(ctx context.Context, ownerID int64) ([]domain.CategorySummary, error) {
	const query = `
        SELECT c.name, SUM(e.amount), COUNT(e.id)
        FROM expenses e JOIN categories c ON c.id = e.category_id
        WHERE e.owner_id=$1
        GROUP BY c.name
        ORDER BY SUM(e.amount) DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []domain.CategorySummary
	for rows.Next() {
		var summary domain.CategorySummary
		if err := rows.Scan(&summary.CategoryName, &summary.Total, &summary.Count); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}
