package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/expense-service/internal/domain"
)

func TestCategoryRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	repo := NewCategoryRepository(mock)
	ctx := context.Background()
	now := time.Now()

	category := &domain.Category{OwnerID: 7, Name: "Food", Description: "groceries"}

	mock.ExpectQuery(`INSERT INTO categories \(owner_id, name, description\)`).
		WithArgs(category.OwnerID, category.Name, category.Description).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(3), now, now))
	require.NoError(t, repo.Create(ctx, category))
	require.Equal(t, int64(3), category.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_Update(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	repo := NewCategoryRepository(mock)
	ctx := context.Background()

	category := &domain.Category{ID: 3, Name: "Food", Description: "groceries"}

	mock.ExpectExec(`UPDATE categories SET name=\$1, description=\$2, updated_at=NOW\(\)`).
		WithArgs(category.Name, category.Description, category.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, repo.Update(ctx, category))

	mock.ExpectExec(`UPDATE categories SET name=\$1, description=\$2, updated_at=NOW\(\)`).
		WithArgs(category.Name, category.Description, category.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	require.ErrorIs(t, repo.Update(ctx, category), pgx.ErrNoRows)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_Delete(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	repo := NewCategoryRepository(mock)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM categories WHERE id=\$1`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, repo.Delete(ctx, 3))

	mock.ExpectExec(`DELETE FROM categories WHERE id=\$1`).
		WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.ErrorIs(t, repo.Delete(ctx, 4), pgx.ErrNoRows)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_GetByID(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	repo := NewCategoryRepository(mock)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(`FROM categories WHERE id=\$1`).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "owner_id", "name", "description", "created_at", "updated_at"}).
			AddRow(int64(3), int64(7), "Food", "groceries", now, now))
	category, err := repo.GetByID(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, int64(7), category.OwnerID)

	mock.ExpectQuery(`FROM categories WHERE id=\$1`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)
	_, err = repo.GetByID(ctx, 99)
	require.ErrorIs(t, err, pgx.ErrNoRows)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_ListByOwner(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	repo := NewCategoryRepository(mock)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(`FROM categories WHERE owner_id=\$1`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "owner_id", "name", "description", "created_at", "updated_at"}).
			AddRow(int64(1), int64(7), "Food", "", now, now).
			AddRow(int64(2), int64(7), "Travel", "", now, now))
	categories, err := repo.ListByOwner(ctx, 7)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	require.Equal(t, "Food", categories[0].Name)
	require.Equal(t, "Travel", categories[1].Name)

	mock.ExpectQuery(`FROM categories WHERE owner_id=\$1`).
		WithArgs(int64(8)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "owner_id", "name", "description", "created_at", "updated_at"}))
	categories, err = repo.ListByOwner(ctx, 8)
	require.NoError(t, err)
	require.Empty(t, categories)

	require.NoError(t, mock.ExpectationsWereMet())
}
