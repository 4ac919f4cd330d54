// Package state holds the storefront's single mutable application state.
//
// The Store owns the catalog, the basket, the order draft, the preview
// selection and both form error mappings. Every mutation that other parts
// of the application care about is followed by an event on the bus;
// subscribers pull the data they need back out through the query methods.
//
// A Store is not safe for concurrent use. All calls are expected on the
// event loop goroutine.
package state

import (
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/dshills/storefront/internal/event"
	"github.com/dshills/storefront/internal/event/events"
	"github.com/dshills/storefront/internal/shop"
	"github.com/dshills/storefront/internal/validate"
)

const source = "state"

// Store is the application state.
type Store struct {
	bus event.Bus

	catalog []shop.Product
	basket  []shop.Product
	order   shop.Order
	preview *shop.Product

	deliveryErrors shop.FormErrors
	contactErrors  shop.FormErrors
}

// New creates an empty store publishing on bus.
func New(bus event.Bus) *Store {
	return &Store{
		bus:            bus,
		order:          shop.NewOrder(),
		deliveryErrors: shop.FormErrors{},
		contactErrors:  shop.FormErrors{},
	}
}

// AddToBasket appends p unless a product with the same ID is already in the
// basket. basket.changed is published either way.
func (s *Store) AddToBasket(ctx context.Context, p shop.Product) error {
	if !s.InBasket(p.ID) {
		s.basket = append(s.basket, p)
	}
	return s.publishBasketChanged(ctx)
}

// RemoveFromBasket removes the product with the given ID if present.
// basket.changed is published either way.
func (s *Store) RemoveFromBasket(ctx context.Context, id string) error {
	s.basket = slices.DeleteFunc(s.basket, func(p shop.Product) bool {
		return p.ID == id
	})
	return s.publishBasketChanged(ctx)
}

// ClearBasket empties the basket and resets the order draft.
func (s *Store) ClearBasket(ctx context.Context) error {
	s.basket = nil
	s.ResetOrder()
	return s.publishBasketChanged(ctx)
}

func (s *Store) publishBasketChanged(ctx context.Context) error {
	return event.PublishPayload(ctx, s.bus, events.TopicBasketChanged, events.BasketChanged{}, source)
}

// SetCatalog replaces the catalog.
func (s *Store) SetCatalog(ctx context.Context, products []shop.Product) error {
	s.catalog = slices.Clone(products)
	return event.PublishPayload(ctx, s.bus, events.TopicCatalogChanged,
		events.CatalogChanged{Products: s.Catalog()}, source)
}

// SetPreview selects p for preview, or clears the selection when p is nil.
func (s *Store) SetPreview(ctx context.Context, p *shop.Product) error {
	var payload events.PreviewChanged
	if p == nil {
		s.preview = nil
	} else {
		selected := *p
		s.preview = &selected
		copied := selected
		payload.Product = &copied
	}
	return event.PublishPayload(ctx, s.bus, events.TopicPreviewChanged, payload, source)
}

// SetField writes one order field and re-runs the validation pass of the
// form that owns it.
func (s *Store) SetField(ctx context.Context, field shop.Field, value string) error {
	switch field {
	case shop.FieldPayment:
		return s.SetPayment(ctx, shop.PaymentMethod(value))
	case shop.FieldAddress:
		return s.SetAddress(ctx, value)
	case shop.FieldEmail:
		return s.SetEmail(ctx, value)
	case shop.FieldPhone:
		return s.SetPhone(ctx, value)
	default:
		return fmt.Errorf("%w: %q", shop.ErrUnknownField, field)
	}
}

// SetPayment sets the payment method and validates the delivery form.
func (s *Store) SetPayment(ctx context.Context, m shop.PaymentMethod) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %q", shop.ErrInvalidPayment, m)
	}
	s.order.Payment = m
	return s.ValidateDelivery(ctx)
}

// SetAddress sets the delivery address and validates the delivery form.
func (s *Store) SetAddress(ctx context.Context, address string) error {
	s.order.Address = address
	return s.ValidateDelivery(ctx)
}

// SetEmail sets the email and validates the contacts form.
func (s *Store) SetEmail(ctx context.Context, email string) error {
	s.order.Email = email
	return s.ValidateContacts(ctx)
}

// SetPhone sets the phone and validates the contacts form.
func (s *Store) SetPhone(ctx context.Context, phone string) error {
	s.order.Phone = phone
	return s.ValidateContacts(ctx)
}

// ValidateDelivery recomputes the delivery error mapping from the draft and
// publishes it.
func (s *Store) ValidateDelivery(ctx context.Context) error {
	s.deliveryErrors = validate.Delivery(s.order.Payment, s.order.Address)
	return event.PublishPayload(ctx, s.bus, events.TopicDeliveryErrorsChanged,
		events.ErrorsChanged{Form: events.FormDelivery, Errors: s.DeliveryErrors()}, source)
}

// ValidateContacts recomputes the contacts error mapping from the draft and
// publishes it.
func (s *Store) ValidateContacts(ctx context.Context) error {
	s.contactErrors = validate.Contacts(s.order.Email, s.order.Phone)
	return event.PublishPayload(ctx, s.bus, events.TopicContactsErrorsChanged,
		events.ErrorsChanged{Form: events.FormContacts, Errors: s.ContactErrors()}, source)
}

// ResetOrder restores an empty order draft paying by card and clears both
// error mappings. Nothing is published.
func (s *Store) ResetOrder() {
	s.order = shop.NewOrder()
	s.deliveryErrors = shop.FormErrors{}
	s.contactErrors = shop.FormErrors{}
}

// PrepareOrderForSubmission fills the draft's items and total from the
// current basket and returns a copy ready to send.
func (s *Store) PrepareOrderForSubmission() shop.Order {
	s.order = shop.BuildOrder(s.basket, s.order.Contacts(), s.order.Delivery())
	return s.order.Clone()
}

// Catalog returns a copy of the catalog.
func (s *Store) Catalog() []shop.Product {
	return cloneProducts(s.catalog)
}

// Product returns the catalog product with the given ID.
func (s *Store) Product(id string) (shop.Product, bool) {
	i := slices.IndexFunc(s.catalog, func(p shop.Product) bool {
		return p.ID == id
	})
	if i < 0 {
		return shop.Product{}, false
	}
	return s.catalog[i], true
}

// Basket returns a copy of the basket in insertion order.
func (s *Store) Basket() []shop.Product {
	return cloneProducts(s.basket)
}

// InBasket reports whether a product with the given ID is in the basket.
func (s *Store) InBasket(id string) bool {
	return slices.ContainsFunc(s.basket, func(p shop.Product) bool {
		return p.ID == id
	})
}

// BasketCount returns the number of products in the basket.
func (s *Store) BasketCount() int {
	return len(s.basket)
}

// Total returns the sum of the basket's prices.
func (s *Store) Total() decimal.Decimal {
	return shop.Total(s.basket)
}

// Order returns a copy of the order draft.
func (s *Store) Order() shop.Order {
	return s.order.Clone()
}

// Preview returns the previewed product.
func (s *Store) Preview() (shop.Product, bool) {
	if s.preview == nil {
		return shop.Product{}, false
	}
	return *s.preview, true
}

// DeliveryErrors returns a copy of the delivery error mapping.
func (s *Store) DeliveryErrors() shop.FormErrors {
	return s.deliveryErrors.Clone()
}

// ContactErrors returns a copy of the contacts error mapping.
func (s *Store) ContactErrors() shop.FormErrors {
	return s.contactErrors.Clone()
}

func cloneProducts(products []shop.Product) []shop.Product {
	if products == nil {
		return []shop.Product{}
	}
	return slices.Clone(products)
}
