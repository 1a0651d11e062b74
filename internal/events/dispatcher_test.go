package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherInvokesAllSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var calls []string
	dispatcher.Subscribe(EventExpenseCreated, func(context.Context, Event) error {
		calls = append(calls, "first")
		return nil
	})
	dispatcher.Subscribe(EventExpenseCreated, func(context.Context, Event) error {
		calls = append(calls, "second")
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventExpenseCreated, OwnerID: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestDispatcherHandlerErrorDoesNotStopOthers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var reached bool
	dispatcher.Subscribe(EventExpenseDeleted, func(context.Context, Event) error {
		return errors.New("boom")
	})
	dispatcher.Subscribe(EventExpenseDeleted, func(context.Context, Event) error {
		reached = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventExpenseDeleted})
	require.NoError(t, err)
	assert.True(t, reached)
}

func TestDispatcherUnknownEventNoSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	err := dispatcher.Publish(context.Background(), Event{Type: EventUserRegistered})
	require.NoError(t, err)
}
