package events

import "time"

// EventType enumerates domain events published by the services.
type EventType string

const (
	EventExpenseCreated  EventType = "expense.created"
	EventExpenseUpdated  EventType = "expense.updated"
	EventExpenseDeleted  EventType = "expense.deleted"
	EventCategoryUpdated EventType = "category.updated"
	EventCategoryDeleted EventType = "category.deleted"
	EventUserRegistered  EventType = "user.registered"
)

// Event carries what changed and for whom. OwnerID scopes downstream
// reactions (cache invalidation) to a single account.
type Event struct {
	Type       EventType
	OwnerID    int64
	ResourceID int64
	OccurredAt time.Time
}
