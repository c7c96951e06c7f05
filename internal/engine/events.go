package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/types"
)

// EventType identifies the type of refinement event.
type EventType string

const (
	// EventNodeSelected indicates the loop picked a node to resolve.
	EventNodeSelected EventType = "engine.node_selected"

	// EventMethodTried indicates a decomposition method was attempted.
	EventMethodTried EventType = "engine.method_tried"

	// EventNodeExpanded indicates a method produced children for a node.
	EventNodeExpanded EventType = "engine.node_expanded"

	// EventActionExecuted indicates a primitive action ran successfully.
	EventActionExecuted EventType = "engine.action_executed"

	// EventActionBlacklisted indicates an action failure created a
	// blacklist entry.
	EventActionBlacklisted EventType = "engine.action_blacklisted"

	// EventNodeFailed indicates a node transitioned to Failed.
	EventNodeFailed EventType = "engine.node_failed"

	// EventBacktrack indicates the engine backtracked to an ancestor
	// with an untried alternative.
	EventBacktrack EventType = "engine.backtrack"

	// EventVerifyFailed indicates a verification node found its goal
	// not established.
	EventVerifyFailed EventType = "engine.verify_failed"

	// EventPlanCompleted indicates the search succeeded.
	EventPlanCompleted EventType = "engine.plan_completed"

	// EventPlanFailed indicates the search exhausted all alternatives.
	EventPlanFailed EventType = "engine.plan_failed"
)

// String returns the string representation of the event type.
func (t EventType) String() string {
	return string(t)
}

// Event is one refinement lifecycle event. Events enable real-time
// monitoring of planning decisions without attaching a debugger.
type Event struct {
	// Type identifies the event type.
	Type EventType `json:"type"`

	// SessionID is the planning session the event belongs to.
	SessionID types.ID `json:"session_id"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Payload contains type-specific event data.
	Payload map[string]any `json:"payload,omitempty"`
}

// EventEmitter publishes refinement events to subscribers.
// Implementations must be thread-safe and support multiple concurrent
// subscribers.
type EventEmitter interface {
	// Emit publishes an event to all subscribers. Emit must be
	// non-blocking; it never waits for subscribers to consume.
	Emit(ctx context.Context, event Event) error

	// Subscribe creates a new subscription, returning a receive channel
	// and a cleanup function. The cleanup function must be called to
	// prevent resource leaks.
	Subscribe(ctx context.Context) (<-chan Event, func())

	// Close shuts down the emitter and all subscriptions.
	Close() error
}

// ChannelEventEmitter implements EventEmitter using buffered channels.
// Slow consumers whose channels are full have events dropped rather
// than blocking the refinement loop.
type ChannelEventEmitter struct {
	mu          sync.RWMutex
	subscribers map[string]chan Event
	bufferSize  int
	closed      bool
	nextSub     int
}

// EmitterOption is a functional option for ChannelEventEmitter.
type EmitterOption func(*ChannelEventEmitter)

// WithBufferSize sets the buffer size for subscriber channels.
// Default is 128.
func WithBufferSize(size int) EmitterOption {
	return func(e *ChannelEventEmitter) {
		if size > 0 {
			e.bufferSize = size
		}
	}
}

// NewChannelEventEmitter creates an emitter with optional configuration.
func NewChannelEventEmitter(opts ...EmitterOption) *ChannelEventEmitter {
	e := &ChannelEventEmitter{
		subscribers: make(map[string]chan Event),
		bufferSize:  128,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit publishes an event to all subscribers, dropping it for any
// subscriber whose channel is full.
func (e *ChannelEventEmitter) Emit(ctx context.Context, event Event) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.closed {
		return fmt.Errorf("event emitter is closed")
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	for _, ch := range e.subscribers {
		select {
		case ch <- event:
		default:
			// Slow consumer; drop rather than stall the loop.
		}
	}
	return nil
}

// Subscribe registers a new subscriber channel. The returned cleanup
// function removes the subscription and closes the channel.
func (e *ChannelEventEmitter) Subscribe(ctx context.Context) (<-chan Event, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ch := make(chan Event, e.bufferSize)
	if e.closed {
		close(ch)
		return ch, func() {}
	}

	key := fmt.Sprintf("sub-%d", e.nextSub)
	e.nextSub++
	e.subscribers[key] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			if _, ok := e.subscribers[key]; ok {
				delete(e.subscribers, key)
				close(ch)
			}
		})
	}
	return ch, cancel
}

// Close shuts down the emitter and closes all subscriber channels.
func (e *ChannelEventEmitter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	for key, ch := range e.subscribers {
		delete(e.subscribers, key)
		close(ch)
	}
	return nil
}
