// Package events provides the structured dispatch event channel. The
// dispatch layer emits one event per attempted operation; sinks (audit
// store, metrics, plain logging) subscribe without the core knowing about
// any particular observability mechanism.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/artpar/schedclient/domain/variant"
	"github.com/artpar/schedclient/ports"
)

// Outcome classifies how a dispatch ended.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeDenied   Outcome = "denied"   // capability check failed, no remote call
	OutcomeRemote   Outcome = "remote"   // remote-protocol failure
	OutcomeProperty Outcome = "property" // local attribute/property failure
	OutcomeError    Outcome = "error"    // any other failure
)

// Event is one observed dispatch, successful or not.
type Event struct {
	// ID correlates the event with log lines and audit rows.
	ID string

	Operation string
	Variant   variant.Variant
	Args      ports.Args

	Outcome Outcome
	Err     error // nil when Outcome is OutcomeOK
	At      time.Time
}

// Handler is a function that processes an event.
type Handler func(ctx context.Context, e Event) error

// Bus is a synchronous publish/subscribe channel for dispatch events.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   zerolog.Logger
}

// NewBus creates a new event bus.
func NewBus(logger zerolog.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Subscribe registers a handler for an operation name, or "*" for all
// dispatches.
func (b *Bus) Subscribe(operation string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[operation] = append(b.handlers[operation], h)
}

// Publish delivers an event to all matching handlers, synchronously and in
// registration order. Handler errors are logged and do not stop delivery:
// a broken sink must never turn a successful dispatch into a failed one.
func (b *Bus) Publish(ctx context.Context, e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	matched := append([]Handler{}, b.handlers[e.Operation]...)
	matched = append(matched, b.handlers["*"]...)

	for _, h := range matched {
		if err := h(ctx, e); err != nil {
			b.logger.Error().
				Err(err).
				Str("dispatch_id", e.ID).
				Str("operation", e.Operation).
				Msg("dispatch event handler error")
		}
	}
}

// HasSubscribers checks if any handler would receive events for an
// operation.
func (b *Bus) HasSubscribers(operation string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[operation]) > 0 || len(b.handlers["*"]) > 0
}
