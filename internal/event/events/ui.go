package events

import "github.com/dshills/storefront/internal/event/topic"

// UI event topics.
const (
	// TopicModalOpened is published when the modal host shows content.
	TopicModalOpened topic.Topic = "modal.opened"

	// TopicModalClosed is published when the modal host is dismissed.
	TopicModalClosed topic.Topic = "modal.closed"

	// TopicSuccessClosed is the intent to dismiss the success panel.
	TopicSuccessClosed topic.Topic = "success.closed"

	// TopicQuitRequested is the intent to leave the application.
	TopicQuitRequested topic.Topic = "app.quit"
)

// ModalOpened has no fields.
type ModalOpened struct{}

// ModalClosed has no fields.
type ModalClosed struct{}

// SuccessClosed has no fields.
type SuccessClosed struct{}

// QuitRequested has no fields.
type QuitRequested struct{}
