package event

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/google/uuid"

	"github.com/dshills/storefront/internal/event/topic"
)

// Bus is the central event bus interface.
type Bus interface {
	// Publish delivers an event synchronously to every matching subscription.
	// The event must implement TopicProvider (every Event[T] does).
	Publish(ctx context.Context, event any) error

	// Subscribe registers a handler for an exact topic or a wildcard pattern.
	Subscribe(topicPattern topic.Topic, handler Handler) (Subscription, error)

	// SubscribeFunc is Subscribe for a function handler.
	SubscribeFunc(topicPattern topic.Topic, fn HandlerFunc) (Subscription, error)

	// Unsubscribe cancels and removes a subscription.
	Unsubscribe(sub Subscription) error

	// Close cancels every subscription and rejects further use.
	Close()

	// Stats returns current bus statistics.
	Stats() Stats
}

type bus struct {
	registry *Registry
	config   busConfig
	closed   bool
	nextSeq  uint64

	eventsPublished uint64
	eventsDelivered uint64
	handlerErrors   uint64
	handlerPanics   uint64
}

// NewBus creates a new event bus with the given options.
func NewBus(opts ...BusOption) Bus {
	config := defaultBusConfig()
	for _, opt := range opts {
		opt(&config)
	}

	return &bus{
		registry: NewRegistry(),
		config:   config,
	}
}

// Publish sends an event to its subscribers and returns once every handler ran.
// Handler failures do not stop the dispatch and are not returned; they go to
// the configured ErrorHandler.
func (b *bus) Publish(ctx context.Context, event any) error {
	if b.closed {
		return ErrBusClosed
	}

	tp, ok := event.(TopicProvider)
	if !ok {
		return ErrInvalidEvent
	}
	eventTopic := tp.EventTopic()
	if !eventTopic.IsValid() || eventTopic.IsWildcard() {
		return ErrInvalidEvent
	}

	subs := b.registry.MatchActive(eventTopic)
	if len(subs) == 0 {
		return nil
	}

	b.eventsPublished++

	for _, sub := range subs {
		if err := b.dispatch(ctx, sub, eventTopic, event); err != nil {
			b.config.errorHandler(event, err)
			continue
		}
		b.eventsDelivered++
	}

	return nil
}

// dispatch runs one handler, turning a panic into a *PanicError.
func (b *bus) dispatch(ctx context.Context, sub *subscription, eventTopic topic.Topic, event any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics++
			err = &PanicError{
				SubscriptionID: sub.ID(),
				Topic:          eventTopic.String(),
				Value:          r,
				Stack:          string(debug.Stack()),
			}
		}
	}()

	if herr := sub.handler.Handle(ctx, event); herr != nil {
		b.handlerErrors++
		return &HandlerError{
			SubscriptionID: sub.ID(),
			Topic:          eventTopic.String(),
			Err:            herr,
		}
	}
	return nil
}

// Subscribe creates a new subscription for the given topic pattern.
func (b *bus) Subscribe(topicPattern topic.Topic, handler Handler) (Subscription, error) {
	if b.closed {
		return nil, ErrBusClosed
	}
	if handler == nil {
		return nil, ErrNilHandler
	}
	if !topicPattern.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTopic, topicPattern)
	}

	b.nextSeq++
	sub := newSubscription(uuid.NewString(), b.nextSeq, topicPattern, handler)
	b.registry.Add(sub)
	return sub, nil
}

// SubscribeFunc is a convenience method for subscribing with a function handler.
func (b *bus) SubscribeFunc(topicPattern topic.Topic, fn HandlerFunc) (Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return b.Subscribe(topicPattern, fn)
}

// Unsubscribe removes a subscription. A dispatch already in progress still
// delivers to it.
func (b *bus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}

	sub.Cancel()
	if !b.registry.Remove(sub.ID()) {
		return ErrSubscriptionNotFound
	}
	return nil
}

// Close cancels every subscription. Close is idempotent.
func (b *bus) Close() {
	if b.closed {
		return
	}
	b.closed = true
	b.registry.Clear()
}

// Stats returns current bus statistics.
func (b *bus) Stats() Stats {
	return Stats{
		EventsPublished:   b.eventsPublished,
		EventsDelivered:   b.eventsDelivered,
		HandlerErrors:     b.handlerErrors,
		HandlerPanics:     b.handlerPanics,
		ActiveSubscribers: b.registry.CountActive(),
	}
}

// SubscribePayload subscribes a handler that receives the payload of Event[T]
// directly. Events on the topic whose payload is not a T are skipped.
func SubscribePayload[T any](b Bus, topicPattern topic.Topic, fn PayloadFunc[T]) (Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return b.Subscribe(topicPattern, AsHandler(fn))
}

// PublishPayload wraps payload in an Event[T] and publishes it.
func PublishPayload[T any](ctx context.Context, b Bus, eventType topic.Topic, payload T, source string) error {
	return b.Publish(ctx, NewEvent(eventType, payload, source))
}
