package shared

import "context"

// EventHandler reacts to published domain events.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes lists the event types this handler wants. An empty slice
	// subscribes it to everything.
	EventTypes() []string
}

// EventPublisher is the write side of the event bus. Aggregates' recorded
// events go through here after their transaction commits.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber is the read side of the event bus.
type EventSubscriber interface {
	// Subscribe registers a handler. With no explicit types the handler's
	// own EventTypes decides what it receives.
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus combines both sides plus lifecycle control for implementations
// with background workers.
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
