package event

import "context"

// Handler is the interface for event handlers.
type Handler interface {
	// Handle processes an event.
	// The event parameter is type-erased; handlers should type-assert.
	Handle(ctx context.Context, event any) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, event any) error

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, event any) error {
	return f(ctx, event)
}

// PayloadFunc handles the payload of an Event[T].
type PayloadFunc[T any] func(ctx context.Context, payload T) error

// AsHandler converts a PayloadFunc to a generic Handler.
// Events whose payload is not a T are skipped.
func AsHandler[T any](fn PayloadFunc[T]) Handler {
	return HandlerFunc(func(ctx context.Context, event any) error {
		if e, ok := event.(Event[T]); ok {
			return fn(ctx, e.Payload)
		}
		return nil
	})
}

// Stats contains event bus statistics.
type Stats struct {
	// EventsPublished is the number of events that reached at least one handler.
	EventsPublished uint64

	// EventsDelivered is the number of successful handler executions.
	EventsDelivered uint64

	// HandlerErrors is the number of handlers that returned errors.
	HandlerErrors uint64

	// HandlerPanics is the number of handlers that panicked.
	HandlerPanics uint64

	// ActiveSubscribers is the current number of active subscriptions.
	ActiveSubscribers int
}

// ErrorHandler is called when a handler returns an error or panics.
// The error is a *HandlerError or a *PanicError.
type ErrorHandler func(event any, err error)
