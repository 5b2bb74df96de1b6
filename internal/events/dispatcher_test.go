package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())

	var got []string
	d.Subscribe(EventPositionPublished, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.ID)
		return nil
	})
	d.Subscribe(EventPositionPublished, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.ID)
		return nil
	})
	d.Subscribe(EventPositionClosed, func(_ context.Context, e Event) error {
		got = append(got, "other")
		return nil
	})

	err := d.Publish(context.Background(), Event{ID: "ev-1", Type: EventPositionPublished})
	require.NoError(t, err)
	assert.Equal(t, []string{"first:ev-1", "second:ev-1"}, got)
}

func TestPublishLogsFailingHandlerAndContinues(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	d := NewInMemoryDispatcher(zap.New(core))

	secondRan := false
	d.Subscribe(EventResumeStatusChanged, func(context.Context, Event) error {
		return errors.New("delivery broken")
	})
	d.Subscribe(EventResumeStatusChanged, func(context.Context, Event) error {
		secondRan = true
		return nil
	})

	err := d.Publish(context.Background(), Event{ID: "ev-2", Type: EventResumeStatusChanged, ResourceID: 9})
	require.NoError(t, err)

	assert.True(t, secondRan)
	entries := logs.FilterMessage("event handler failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "ev-2", entries[0].ContextMap()["event_id"])
}

func TestPublishWithoutSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventPositionClosed}))
}
