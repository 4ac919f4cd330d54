// Package event provides the storefront's publish/subscribe hub.
//
// Every cross-component effect in the storefront travels through the bus:
// views publish intents, the state store publishes change notifications and
// the orchestrator subscribes to both. No component holds a reference to
// another component's internals.
//
// # Event Topics
//
// Events use hierarchical topics with dot notation:
//
//	catalog.changed          - the catalog was replaced
//	basket.product.added     - the user asked to add a product
//	input.contacts.email     - the email field of the contacts form was edited
//	errors.delivery.changed  - the delivery error mapping was recomputed
//
// # Wildcard Patterns
//
// Subscriptions accept a family of topics:
//
//	input.contacts.*  - any contacts form field
//	basket.**         - anything under basket
//
// # Delivery
//
// Publish is synchronous. Handlers run in the publisher's goroutine in the
// order they subscribed, across all matching patterns. The list of handlers
// is taken when Publish starts, so a handler that subscribes or unsubscribes
// does not change the dispatch already in progress. A failing or panicking
// handler is reported through the configured hooks and the remaining
// handlers still run.
//
// There is no queue and no cycle detection: a handler must not publish the
// topic it is handling.
//
// # Typed Payloads
//
//	sub, err := event.SubscribePayload(bus, events.TopicCardSelected,
//	    func(ctx context.Context, p events.CardSelected) error {
//	        return store.SetPreview(&p.Product)
//	    })
//
//	err = event.PublishPayload(ctx, bus, events.TopicCardSelected,
//	    events.CardSelected{Product: product}, "page")
//
// # Concurrency
//
// A Bus is not safe for concurrent use. The application confines it to the
// event loop goroutine; background work hands results back to the loop
// before publishing.
package event
