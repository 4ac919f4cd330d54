package event

import "github.com/dshills/storefront/internal/event/topic"

// SubscriptionState represents the state of a subscription.
type SubscriptionState int32

const (
	// SubscriptionStateActive means the subscription is receiving events.
	SubscriptionStateActive SubscriptionState = iota

	// SubscriptionStatePaused means the subscription is temporarily not receiving events.
	SubscriptionStatePaused

	// SubscriptionStateCancelled means the subscription has been permanently cancelled.
	SubscriptionStateCancelled
)

// String returns a human-readable state name.
func (s SubscriptionState) String() string {
	switch s {
	case SubscriptionStateActive:
		return "active"
	case SubscriptionStatePaused:
		return "paused"
	case SubscriptionStateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Subscription represents an event subscription.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() string

	// Topic returns the subscribed topic pattern.
	Topic() topic.Topic

	// State returns the current subscription state.
	State() SubscriptionState

	// IsActive returns true if the subscription can receive events.
	IsActive() bool

	// Pause temporarily stops event delivery to this subscription.
	Pause()

	// Resume restarts event delivery after a pause.
	Resume()

	// Cancel permanently cancels the subscription.
	Cancel()
}

type subscription struct {
	id      string
	seq     uint64 // registration order
	topic   topic.Topic
	handler Handler
	state   SubscriptionState
}

func newSubscription(id string, seq uint64, t topic.Topic, h Handler) *subscription {
	return &subscription{
		id:      id,
		seq:     seq,
		topic:   t,
		handler: h,
		state:   SubscriptionStateActive,
	}
}

func (s *subscription) ID() string {
	return s.id
}

func (s *subscription) Topic() topic.Topic {
	return s.topic
}

func (s *subscription) State() SubscriptionState {
	return s.state
}

func (s *subscription) IsActive() bool {
	return s.state == SubscriptionStateActive
}

func (s *subscription) IsCancelled() bool {
	return s.state == SubscriptionStateCancelled
}

// Pause only affects an active subscription.
func (s *subscription) Pause() {
	if s.state == SubscriptionStateActive {
		s.state = SubscriptionStatePaused
	}
}

// Resume only affects a paused subscription.
func (s *subscription) Resume() {
	if s.state == SubscriptionStatePaused {
		s.state = SubscriptionStateActive
	}
}

func (s *subscription) Cancel() {
	s.state = SubscriptionStateCancelled
}
