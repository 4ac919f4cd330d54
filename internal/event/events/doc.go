// Package events defines strongly-typed event payloads for the storefront
// event bus.
//
// Each event type has a corresponding topic constant and payload struct. Events are
// grouped by the part of the storefront they describe:
//
//   - Catalog events: catalog loaded or failed, card and preview selection
//   - Basket events: add and remove intents, basket changes
//   - Order events: checkout steps, field input, validation errors, submission
//   - UI events: modal and success panel lifecycle, quit
//
// # Usage
//
// Events are typically published with event.PublishPayload:
//
//	event.PublishPayload(ctx, bus, events.TopicProductAdded,
//	    events.ProductAdded{Product: p, Origin: events.OriginPreview},
//	    "preview")
//
// # Wildcard Subscriptions
//
// Field input topics form one family per form, so a single subscription
// observes every field of a form:
//
//	event.SubscribePayload(bus, events.TopicContactsInputAll,
//	    func(ctx context.Context, e events.FieldChanged) error {
//	        return store.SetField(e.Field, e.Value)
//	    })
package events
