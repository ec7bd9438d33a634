package event

import (
	"context"
	"sync"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
	"go.uber.org/zap"
)

// wildcardType is the subscription key for handlers that receive every event.
const wildcardType = "*"

// InMemoryEventBus is a synchronous in-process EventBus. Handlers run in the
// caller's goroutine; a failing handler is logged and does not block the rest.
type InMemoryEventBus struct {
	mu            sync.RWMutex
	subscriptions map[string][]shared.EventHandler
	logger        *zap.Logger
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		subscriptions: make(map[string][]shared.EventHandler),
		logger:        logger,
	}
}

// Publish delivers each event to every handler subscribed to its type,
// plus any wildcard handlers. Handler errors and panics are logged, never
// propagated, so an aggregate's side effects cannot fail its transaction.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, ev := range events {
		for _, h := range b.handlersFor(ev.EventType()) {
			if err := b.deliver(ctx, h, ev); err != nil {
				b.logger.Error("event handler failed",
					zap.String("event_type", ev.EventType()),
					zap.String("event_id", ev.EventID().String()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// Subscribe registers a handler for the given event types. When no types are
// passed the handler's own EventTypes() is consulted; an empty result there
// subscribes it to all events.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	if len(eventTypes) == 0 {
		eventTypes = []string{wildcardType}
	}

	b.mu.Lock()
	for _, t := range eventTypes {
		b.subscriptions[t] = append(b.subscriptions[t], handler)
	}
	b.mu.Unlock()

	b.logger.Debug("handler subscribed", zap.Strings("event_types", eventTypes))
}

// Unsubscribe removes a handler from every event type it was registered for.
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.mu.Lock()
	for t, hs := range b.subscriptions {
		kept := hs[:0]
		for _, h := range hs {
			if h != handler {
				kept = append(kept, h)
			}
		}
		if len(kept) == 0 {
			delete(b.subscriptions, t)
		} else {
			b.subscriptions[t] = kept
		}
	}
	b.mu.Unlock()

	b.logger.Debug("handler unsubscribed")
}

// Start is a no-op for the synchronous bus; it exists to satisfy EventBus.
func (b *InMemoryEventBus) Start(ctx context.Context) error {
	b.logger.Info("event bus started")
	return nil
}

// Stop is a no-op for the synchronous bus.
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.logger.Info("event bus stopped")
	return nil
}

// handlersFor snapshots the handlers for an event type plus the wildcards,
// so delivery happens outside the lock.
func (b *InMemoryEventBus) handlersFor(eventType string) []shared.EventHandler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	typed := b.subscriptions[eventType]
	wild := b.subscriptions[wildcardType]
	if len(typed) == 0 && len(wild) == 0 {
		return nil
	}
	out := make([]shared.EventHandler, 0, len(typed)+len(wild))
	out = append(out, typed...)
	return append(out, wild...)
}

// deliver invokes a single handler, converting a panic into a logged error.
func (b *InMemoryEventBus) deliver(ctx context.Context, handler shared.EventHandler, ev shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				zap.String("event_type", ev.EventType()),
				zap.Any("panic", r),
			)
		}
	}()
	return handler.Handle(ctx, ev)
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
