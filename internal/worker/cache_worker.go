package worker

import (
	"context"

	"github.com/spec-kit/expense-service/internal/events"
	"github.com/spec-kit/expense-service/internal/service"
)

// StartCacheWorker subscribes the summary cache to every event that can
// change an owner's totals, so stale chart data never outlives a mutation.
func StartCacheWorker(dispatcher events.Dispatcher, cache service.SummaryCache) {
	if dispatcher == nil || cache == nil {
		return
	}

	invalidate := func(ctx context.Context, event events.Event) error {
		cache.Invalidate(ctx, event.OwnerID)
		return nil
	}

	dispatcher.Subscribe(events.EventExpenseCreated, invalidate)
	dispatcher.Subscribe(events.EventExpenseUpdated, invalidate)
	dispatcher.Subscribe(events.EventExpenseDeleted, invalidate)
	dispatcher.Subscribe(events.EventCategoryUpdated, invalidate)
	dispatcher.Subscribe(events.EventCategoryDeleted, invalidate)
}
