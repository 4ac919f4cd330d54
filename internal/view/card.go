package view

import (
	"context"

	"github.com/dshills/storefront/internal/event"
	"github.com/dshills/storefront/internal/event/events"
	"github.com/dshills/storefront/internal/renderer"
	"github.com/dshills/storefront/internal/renderer/backend"
	"github.com/dshills/storefront/internal/shop"
)

// Preview button labels.
const (
	LabelAddToBasket = "Add to basket"
	LabelRemove      = "Remove"
	LabelUnavailable = "Unavailable"
)

// PreviewCard shows one product with its add/remove button.
type PreviewCard struct {
	base
	format *Formatter

	product  shop.Product
	inBasket bool
}

// NewPreviewCard creates an empty preview card.
func NewPreviewCard(bus event.Bus, theme *Theme, format *Formatter) *PreviewCard {
	if format == nil {
		format = DefaultFormatter()
	}
	return &PreviewCard{base: newBase(bus, theme, "preview"), format: format}
}

// SetProduct sets the displayed product.
func (v *PreviewCard) SetProduct(p shop.Product) {
	v.product = p
}

// SetInBasket switches the button between add and remove.
func (v *PreviewCard) SetInBasket(in bool) {
	v.inBasket = in
}

// Product returns the displayed product.
func (v *PreviewCard) Product() shop.Product {
	return v.product
}

// ButtonLabel returns the current button text.
func (v *PreviewCard) ButtonLabel() string {
	switch {
	case !v.product.Purchasable():
		return LabelUnavailable
	case v.inBasket:
		return LabelRemove
	default:
		return LabelAddToBasket
	}
}

// ButtonEnabled reports whether Enter does anything.
func (v *PreviewCard) ButtonEnabled() bool {
	return v.product.Purchasable()
}

// Draw implements renderer.Drawable.
func (v *PreviewCard) Draw(c *renderer.Canvas) {
	area := c.Bounds()
	if area.IsEmpty() {
		return
	}

	y := area.Top
	c.TextFit(area.Left, y, area.Width(), " "+v.product.Category+" ", v.theme.Category(v.product.Category))
	y += 2
	c.TextFit(area.Left, y, area.Width(), v.product.Title, v.theme.Title)
	y += 2

	for _, line := range renderer.Wrap(v.product.Description, area.Width()) {
		if y >= area.Bottom-3 {
			break
		}
		c.Text(area.Left, y, line, v.theme.Text)
		y++
	}

	bottom := area.Bottom - 2
	style := v.theme.Button
	if !v.ButtonEnabled() {
		style = v.theme.ButtonDisabled
	}
	button(c, area.Left, bottom, v.ButtonLabel(), style)
	c.TextRight(area, bottom, v.format.Price(v.product.Price), v.theme.Title)
}

// HandleKey publishes the add or remove intent on Enter.
func (v *PreviewCard) HandleKey(ctx context.Context, ev backend.Event) (bool, error) {
	if !isKey(ev, backend.KeyEnter) {
		return false, nil
	}
	if !v.ButtonEnabled() {
		return true, nil
	}
	if v.inBasket {
		return true, publish(ctx, v.base, events.TopicProductRemoved,
			events.ProductRemoved{Product: v.product, Origin: events.OriginPreview})
	}
	return true, publish(ctx, v.base, events.TopicProductAdded,
		events.ProductAdded{Product: v.product, Origin: events.OriginPreview})
}
