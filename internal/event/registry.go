package event

import (
	"slices"

	"github.com/dshills/storefront/internal/event/topic"
)

// Registry manages subscriptions organized by topic pattern.
// Matches are returned in registration order.
type Registry struct {
	subs    map[topic.Topic][]*subscription
	byID    map[string]*subscription
	matcher *topic.Matcher
}

// NewRegistry creates a new subscription registry.
func NewRegistry() *Registry {
	return &Registry{
		subs:    make(map[topic.Topic][]*subscription),
		byID:    make(map[string]*subscription),
		matcher: topic.NewMatcher(),
	}
}

// Add adds a subscription for its topic pattern.
func (r *Registry) Add(sub *subscription) {
	pattern := sub.Topic()
	r.subs[pattern] = append(r.subs[pattern], sub)
	r.byID[sub.ID()] = sub
	r.matcher.Add(pattern)
}

// Remove removes a subscription by ID.
func (r *Registry) Remove(subID string) bool {
	sub, exists := r.byID[subID]
	if !exists {
		return false
	}

	pattern := sub.Topic()
	subs := r.subs[pattern]
	for i, s := range subs {
		if s.ID() == subID {
			// Copy so a snapshot taken by an in-flight Publish is untouched.
			r.subs[pattern] = slices.Concat(subs[:i], subs[i+1:])
			break
		}
	}

	if len(r.subs[pattern]) == 0 {
		delete(r.subs, pattern)
		r.matcher.Remove(pattern)
	}

	delete(r.byID, subID)
	return true
}

// Get returns a subscription by ID.
func (r *Registry) Get(subID string) (*subscription, bool) {
	sub, exists := r.byID[subID]
	return sub, exists
}

// MatchActive returns the active subscriptions whose pattern matches the
// event topic, in registration order across all patterns. The returned slice
// is a fresh copy.
func (r *Registry) MatchActive(eventTopic topic.Topic) []*subscription {
	patterns := r.matcher.Match(eventTopic)
	if len(patterns) == 0 {
		return nil
	}

	var result []*subscription
	for _, pattern := range patterns {
		for _, sub := range r.subs[pattern] {
			if sub.IsActive() {
				result = append(result, sub)
			}
		}
	}

	slices.SortFunc(result, func(a, b *subscription) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		default:
			return 0
		}
	})
	return result
}

// Count returns the total number of subscriptions.
func (r *Registry) Count() int {
	return len(r.byID)
}

// CountActive returns the number of active subscriptions.
func (r *Registry) CountActive() int {
	count := 0
	for _, sub := range r.byID {
		if sub.IsActive() {
			count++
		}
	}
	return count
}

// Topics returns all topic patterns with subscriptions.
func (r *Registry) Topics() []topic.Topic {
	return r.matcher.Patterns()
}

// Clear cancels and removes all subscriptions.
func (r *Registry) Clear() {
	for _, sub := range r.byID {
		sub.Cancel()
	}
	r.subs = make(map[topic.Topic][]*subscription)
	r.byID = make(map[string]*subscription)
	r.matcher.Clear()
}
