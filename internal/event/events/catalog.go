package events

import (
	"github.com/dshills/storefront/internal/event/topic"
	"github.com/dshills/storefront/internal/shop"
)

// Catalog event topics.
const (
	// TopicCatalogChanged is published when the catalog is replaced.
	TopicCatalogChanged topic.Topic = "catalog.changed"

	// TopicCatalogFailed is published when loading the catalog fails.
	TopicCatalogFailed topic.Topic = "catalog.failed"

	// TopicCardSelected is published when the user picks a catalog card.
	TopicCardSelected topic.Topic = "card.selected"

	// TopicPreviewChanged is published when the preview selection changes.
	TopicPreviewChanged topic.Topic = "preview.changed"
)

// CatalogChanged carries the new catalog.
type CatalogChanged struct {
	// Products is a copy of the catalog in display order.
	Products []shop.Product
}

// CatalogFailed reports a failed catalog load.
type CatalogFailed struct {
	Err error
}

// CardSelected is the intent to preview a product.
type CardSelected struct {
	Product shop.Product
}

// PreviewChanged carries the previewed product, or nil when the preview
// was cleared.
type PreviewChanged struct {
	Product *shop.Product
}
