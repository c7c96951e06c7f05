package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestChannelEventEmitterDeliversToAllSubscribers(t *testing.T) {
	e := NewChannelEventEmitter()
	defer e.Close()

	ch1, cancel1 := e.Subscribe(context.Background())
	defer cancel1()
	ch2, cancel2 := e.Subscribe(context.Background())
	defer cancel2()

	require.NoError(t, e.Emit(context.Background(), Event{Type: EventNodeSelected}))

	ev1 := <-ch1
	ev2 := <-ch2
	assert.Equal(t, EventNodeSelected, ev1.Type)
	assert.Equal(t, EventNodeSelected, ev2.Type)
	assert.False(t, ev1.Timestamp.IsZero(), "emitter stamps events without a timestamp")
}

func TestChannelEventEmitterDropsWhenFull(t *testing.T) {
	e := NewChannelEventEmitter(WithBufferSize(1))
	defer e.Close()

	ch, cancel := e.Subscribe(context.Background())
	defer cancel()

	require.NoError(t, e.Emit(context.Background(), Event{Type: EventNodeSelected}))
	require.NoError(t, e.Emit(context.Background(), Event{Type: EventNodeExpanded}))

	ev := <-ch
	assert.Equal(t, EventNodeSelected, ev.Type)
	select {
	case extra := <-ch:
		t.Fatalf("expected second event to be dropped, got %s", extra.Type)
	default:
	}
}

func TestChannelEventEmitterUnsubscribe(t *testing.T) {
	e := NewChannelEventEmitter()
	defer e.Close()

	ch, cancel := e.Subscribe(context.Background())
	cancel()
	cancel() // idempotent

	_, open := <-ch
	assert.False(t, open, "cancel closes the subscriber channel")

	require.NoError(t, e.Emit(context.Background(), Event{Type: EventNodeSelected}))
}

func TestChannelEventEmitterClose(t *testing.T) {
	e := NewChannelEventEmitter()

	ch, cancel := e.Subscribe(context.Background())
	defer cancel()

	require.NoError(t, e.Close())
	require.NoError(t, e.Close())

	_, open := <-ch
	assert.False(t, open)
	assert.Error(t, e.Emit(context.Background(), Event{Type: EventNodeSelected}))

	// Subscribing after close yields an already-closed channel.
	late, lateCancel := e.Subscribe(context.Background())
	defer lateCancel()
	_, open = <-late
	assert.False(t, open)
}

func TestEngineEmitsLifecycleEvents(t *testing.T) {
	e := New()
	defer e.Close()

	events, cancel := e.Events().Subscribe(context.Background())
	defer cancel()

	var execLog []string
	_, err := e.RunLazy(context.Background(), logisticsDomain(t, &execLog),
		initialDockState(), sequenceTodos(), Options{})
	require.NoError(t, err)

	seen := map[EventType]int{}
	for drained := false; !drained; {
		select {
		case ev := <-events:
			seen[ev.Type]++
			assert.False(t, ev.SessionID.IsZero())
		default:
			drained = true
		}
	}
	assert.Equal(t, 3, seen[EventActionExecuted])
	assert.Equal(t, 1, seen[EventPlanCompleted])
	assert.GreaterOrEqual(t, seen[EventNodeSelected], 3)
}
