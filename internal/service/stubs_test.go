package service

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/expense-service/internal/domain"
	"github.com/spec-kit/expense-service/internal/events"
	"github.com/spec-kit/expense-service/internal/repository"
)

type memUserRepo struct {
	seq   int64
	users map[int64]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domain.ErrEmailRegistered
		}
	}
	r.seq++
	user.ID = r.seq
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memCategoryRepo struct {
	seq        int64
	categories map[int64]*domain.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: make(map[int64]*domain.Category)}
}

func (r *memCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	r.seq++
	category.ID = r.seq
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *memCategoryRepo) Update(_ context.Context, category *domain.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *memCategoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.categories[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.categories, id)
	return nil
}

func (r *memCategoryRepo) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	if category, ok := r.categories[id]; ok {
		copied := *category
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *memCategoryRepo) ListByOwner(_ context.Context, ownerID int64) ([]domain.Category, error) {
	var out []domain.Category
	for _, category := range r.categories {
		if category.OwnerID == ownerID {
			out = append(out, *category)
		}
	}
	return out, nil
}

type memExpenseRepo struct {
	seq       int64
	expenses  map[int64]*domain.Expense
	summaries []domain.CategorySummary
}

func newMemExpenseRepo() *memExpenseRepo {
	return &memExpenseRepo{expenses: make(map[int64]*domain.Expense)}
}

func (r *memExpenseRepo) Create(_ context.Context, expense *domain.Expense) error {
	r.seq++
	expense.ID = r.seq
	stored := *expense
	r.expenses[expense.ID] = &stored
	return nil
}

func (r *memExpenseRepo) Update(_ context.Context, expense *domain.Expense) error {
	if _, ok := r.expenses[expense.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *expense
	r.expenses[expense.ID] = &stored
	return nil
}

func (r *memExpenseRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.expenses[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.expenses, id)
	return nil
}

func (r *memExpenseRepo) GetByID(_ context.Context, id int64) (*domain.Expense, error) {
	if expense, ok := r.expenses[id]; ok {
		copied := *expense
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *memExpenseRepo) ListByOwner(_ context.Context, ownerID int64, _ repository.ExpenseFilter) ([]domain.Expense, error) {
	var out []domain.Expense
	for _, expense := range r.expenses {
		if expense.OwnerID == ownerID {
			out = append(out, *expense)
		}
	}
	return out, nil
}

func (r *memExpenseRepo) SummarizeByCategory(_ context.Context, _ int64) ([]domain.CategorySummary, error) {
	return r.summaries, nil
}

type memSummaryCache struct {
	mu          sync.Mutex
	entries     map[int64]*domain.ExpenseSummary
	invalidated []int64
}

func newMemSummaryCache() *memSummaryCache {
	return &memSummaryCache{entries: make(map[int64]*domain.ExpenseSummary)}
}

func (c *memSummaryCache) Get(_ context.Context, ownerID int64) (*domain.ExpenseSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	summary, ok := c.entries[ownerID]
	return summary, ok
}

func (c *memSummaryCache) Set(_ context.Context, ownerID int64, summary *domain.ExpenseSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[ownerID] = summary
}

func (c *memSummaryCache) Invalidate(_ context.Context, ownerID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, ownerID)
	c.invalidated = append(c.invalidated, ownerID)
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}
