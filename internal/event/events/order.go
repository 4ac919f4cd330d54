package events

import (
	"github.com/dshills/storefront/internal/event/topic"
	"github.com/dshills/storefront/internal/shop"
)

// Form identifies a checkout form.
type Form string

const (
	// FormDelivery is the payment and address step.
	FormDelivery Form = "delivery"

	// FormContacts is the email and phone step.
	FormContacts Form = "contacts"
)

// Order event topics.
const (
	// TopicOrderOpened is the intent to start checkout.
	TopicOrderOpened topic.Topic = "order.opened"

	// TopicDeliveryInput is the family of delivery field changes.
	// Concrete topics are TopicDeliveryInput.Child(field).
	TopicDeliveryInput topic.Topic = "input.delivery"

	// TopicDeliveryInputAll matches every delivery field change.
	TopicDeliveryInputAll topic.Topic = "input.delivery.*"

	// TopicContactsInput is the family of contact field changes.
	TopicContactsInput topic.Topic = "input.contacts"

	// TopicContactsInputAll matches every contact field change.
	TopicContactsInputAll topic.Topic = "input.contacts.*"

	// TopicDeliveryErrorsChanged carries the delivery error mapping after a
	// delivery validation pass.
	TopicDeliveryErrorsChanged topic.Topic = "errors.delivery.changed"

	// TopicContactsErrorsChanged carries the contacts error mapping after a
	// contacts validation pass.
	TopicContactsErrorsChanged topic.Topic = "errors.contacts.changed"

	// TopicOrderSubmit is the intent to leave the delivery step.
	TopicOrderSubmit topic.Topic = "order.submit"

	// TopicContactsSubmit is the intent to place the order.
	TopicContactsSubmit topic.Topic = "contacts.submit"

	// TopicOrderCompleted is published when the order API accepted the order.
	TopicOrderCompleted topic.Topic = "order.completed"

	// TopicOrderFailed is published when the submission failed.
	TopicOrderFailed topic.Topic = "order.failed"
)

// InputTopic returns the field change topic for a form field,
// e.g. "input.contacts.email".
func InputTopic(form Form, field shop.Field) topic.Topic {
	return topic.Join("input", string(form), string(field))
}

// FieldChanged is a user edit of one order field.
type FieldChanged struct {
	Form  Form
	Field shop.Field
	Value string
}

// ErrorsChanged carries the complete error mapping of a form.
// An empty mapping means the form is valid.
type ErrorsChanged struct {
	Form   Form
	Errors shop.FormErrors
}

// OrderOpened has no fields.
type OrderOpened struct{}

// OrderSubmit has no fields.
type OrderSubmit struct{}

// ContactsSubmit has no fields.
type ContactsSubmit struct{}

// OrderCompleted carries the order API result.
type OrderCompleted struct {
	Result shop.OrderResult
}

// OrderFailed carries the submission error.
type OrderFailed struct {
	Err error
}
