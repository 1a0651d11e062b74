package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/expense-service/internal/domain"
	"github.com/spec-kit/expense-service/internal/events"
)

type recordingCache struct {
	invalidated []int64
}

func (c *recordingCache) Get(context.Context, int64) (*domain.ExpenseSummary, bool) {
	return nil, false
}

func (c *recordingCache) Set(context.Context, int64, *domain.ExpenseSummary) {}

func (c *recordingCache) Invalidate(_ context.Context, ownerID int64) {
	c.invalidated = append(c.invalidated, ownerID)
}

func TestCacheWorkerInvalidatesOnMutations(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	cache := &recordingCache{}
	StartCacheWorker(dispatcher, cache)

	for _, eventType := range []events.EventType{
		events.EventExpenseCreated,
		events.EventExpenseUpdated,
		events.EventExpenseDeleted,
		events.EventCategoryUpdated,
		events.EventCategoryDeleted,
	} {
		err := dispatcher.Publish(context.Background(), events.Event{Type: eventType, OwnerID: 7})
		require.NoError(t, err)
	}

	assert.Equal(t, []int64{7, 7, 7, 7, 7}, cache.invalidated)
}

func TestCacheWorkerIgnoresUnrelatedEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	cache := &recordingCache{}
	StartCacheWorker(dispatcher, cache)

	err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventUserRegistered, OwnerID: 7})
	require.NoError(t, err)

	assert.Empty(t, cache.invalidated)
}
