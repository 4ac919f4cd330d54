package events

import (
	"github.com/dshills/storefront/internal/event/topic"
	"github.com/dshills/storefront/internal/shop"
)

// Basket event topics.
const (
	// TopicProductAdded is the intent to put a product into the basket.
	TopicProductAdded topic.Topic = "basket.product.added"

	// TopicProductRemoved is the intent to take a product out of the basket.
	TopicProductRemoved topic.Topic = "basket.product.removed"

	// TopicBasketOpened is the intent to show the basket.
	TopicBasketOpened topic.Topic = "basket.opened"

	// TopicBasketChanged is published after every basket mutation, including
	// no-op adds and removes.
	TopicBasketChanged topic.Topic = "basket.changed"
)

// Origin identifies the view a basket intent came from.
type Origin string

const (
	// OriginPreview is the product preview overlay.
	OriginPreview Origin = "preview"

	// OriginBasket is the basket panel.
	OriginBasket Origin = "basket"
)

// ProductAdded is the intent to add a product.
type ProductAdded struct {
	Product shop.Product
	Origin  Origin
}

// ProductRemoved is the intent to remove a product.
type ProductRemoved struct {
	Product shop.Product
	Origin  Origin
}

// BasketOpened has no fields.
type BasketOpened struct{}

// BasketChanged has no fields; subscribers read the store.
type BasketChanged struct{}
