package view

import (
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/dshills/storefront/internal/event"
	"github.com/dshills/storefront/internal/event/events"
	"github.com/dshills/storefront/internal/renderer"
	"github.com/dshills/storefront/internal/renderer/backend"
	"github.com/dshills/storefront/internal/renderer/core"
	"github.com/dshills/storefront/internal/shop"
)

// LabelCheckout is the basket's submit button.
const LabelCheckout = "Checkout"

// Basket lists the basket contents with a total and a checkout button.
type Basket struct {
	base
	format *Formatter

	items  []shop.Product
	total  decimal.Decimal
	cursor int
}

// NewBasket creates an empty basket view.
func NewBasket(bus event.Bus, theme *Theme, format *Formatter) *Basket {
	if format == nil {
		format = DefaultFormatter()
	}
	return &Basket{base: newBase(bus, theme, "basket"), format: format}
}

// SetItems replaces the listed products.
func (v *Basket) SetItems(items []shop.Product) {
	v.items = slices.Clone(items)
	v.cursor = min(v.cursor, max(len(v.items)-1, 0))
}

// SetTotal sets the displayed total.
func (v *Basket) SetTotal(total decimal.Decimal) {
	v.total = total
}

// Items returns the listed products.
func (v *Basket) Items() []shop.Product {
	return slices.Clone(v.items)
}

// Total returns the displayed total.
func (v *Basket) Total() decimal.Decimal {
	return v.total
}

// CheckoutEnabled reports whether the checkout button is active.
func (v *Basket) CheckoutEnabled() bool {
	return len(v.items) > 0
}

// Draw implements renderer.Drawable.
func (v *Basket) Draw(c *renderer.Canvas) {
	area := c.Bounds()
	if area.IsEmpty() {
		return
	}

	if len(v.items) == 0 {
		c.Text(area.Left, area.Top, "The basket is empty", v.theme.Muted)
	}

	listBottom := area.Bottom - 3
	first := max(v.cursor-(listBottom-area.Top)+1, 0)
	for i := first; i < len(v.items); i++ {
		y := area.Top + i - first
		if y >= listBottom {
			break
		}
		style := v.theme.Text
		if i == v.cursor {
			style = v.theme.Selected
			c.Fill(core.RectFromSize(y, area.Left, 1, area.Width()), style)
		}
		price := v.format.Price(v.items[i].Price)
		c.TextFit(area.Left, y, area.Width()-core.StringWidth(price)-1, fmt.Sprintf("%d. %s", i+1, v.items[i].Title), style)
		c.TextRight(area, y, price, style)
	}

	bottom := area.Bottom - 2
	style := v.theme.Button
	if !v.CheckoutEnabled() {
		style = v.theme.ButtonDisabled
	}
	w := button(c, area.Left, bottom, LabelCheckout, style)
	c.TextFit(area.Left+w+2, bottom, area.Width()-w-2, "d remove", v.theme.Muted)
	c.TextRight(area, bottom, v.format.Amount(v.total), v.theme.Title)
}

// HandleKey implements Component.
func (v *Basket) HandleKey(ctx context.Context, ev backend.Event) (bool, error) {
	switch {
	case isKey(ev, backend.KeyUp):
		v.cursor = max(v.cursor-1, 0)
	case isKey(ev, backend.KeyDown):
		v.cursor = min(v.cursor+1, max(len(v.items)-1, 0))
	case isRune(ev, 'd'), isKey(ev, backend.KeyDelete):
		if len(v.items) == 0 {
			return true, nil
		}
		return true, publish(ctx, v.base, events.TopicProductRemoved,
			events.ProductRemoved{Product: v.items[v.cursor], Origin: events.OriginBasket})
	case isKey(ev, backend.KeyEnter):
		if !v.CheckoutEnabled() {
			return true, nil
		}
		return true, publish(ctx, v.base, events.TopicOrderOpened, events.OrderOpened{})
	default:
		return false, nil
	}
	return true, nil
}
