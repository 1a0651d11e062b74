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

// CategoryInput describes category create/update payloads.
type CategoryInput struct {
	Name        string
	Description string
}

// CategoryService coordinates owner-scoped category workflows. A category
// that exists but belongs to another account is reported exactly like a
// missing one.
type CategoryService struct {
	categories repository.CategoryRepository
	dispatcher events.Dispatcher
}

// NewCategoryService constructs the service.
func NewCategoryService(categories repository.CategoryRepository, dispatcher events.Dispatcher) *CategoryService {
	return &CategoryService{categories: categories, dispatcher: dispatcher}
}

// Create adds a category owned by the principal.
func (s *CategoryService) Create(ctx context.Context, ownerID int64, input CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}

	category := &domain.Category{
		OwnerID:     ownerID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// List returns all categories owned by the principal.
func (s *CategoryService) List(ctx context.Context, ownerID int64) ([]domain.Category, error) {
	return s.categories.ListByOwner(ctx, ownerID)
}

// Get fetches one owned category.
func (s *CategoryService) Get(ctx context.Context, ownerID, id int64) (*domain.Category, error) {
	return s.getOwned(ctx, ownerID, id)
}

// Update modifies an owned category.
func (s *CategoryService) Update(ctx context.Context, ownerID, id int64, input CategoryInput) (*domain.Category, error) {
	category, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		category.Name = name
	}
	category.Description = strings.TrimSpace(input.Description)

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}

	// Summaries embed category names, so a rename must reach the cache too.
	s.publish(ctx, events.EventCategoryUpdated, ownerID, id)
	return category, nil
}

// Delete removes an owned category and signals dependents.
func (s *CategoryService) Delete(ctx context.Context, ownerID, id int64) error {
	if _, err := s.getOwned(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, events.EventCategoryDeleted, ownerID, id)
	return nil
}

// getOwned fetches by id and enforces ownership. Missing rows and rows owned
// by someone else collapse into the same outcome.
func (s *CategoryService) getOwned(ctx context.Context, ownerID, id int64) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if category.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return category, nil
}

func (s *CategoryService) publish(ctx context.Context, eventType events.EventType, ownerID, resourceID int64) {
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
