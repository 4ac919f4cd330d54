package view

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dshills/storefront/internal/event"
	"github.com/dshills/storefront/internal/event/events"
	"github.com/dshills/storefront/internal/renderer"
	"github.com/dshills/storefront/internal/renderer/backend"
)

// LabelNewPurchases dismisses the success panel.
const LabelNewPurchases = "New purchases"

// SuccessPanel confirms a placed order.
type SuccessPanel struct {
	base
	format *Formatter
	total  decimal.Decimal
}

// NewSuccessPanel creates the success panel.
func NewSuccessPanel(bus event.Bus, theme *Theme, format *Formatter) *SuccessPanel {
	if format == nil {
		format = DefaultFormatter()
	}
	return &SuccessPanel{base: newBase(bus, theme, "success"), format: format}
}

// SetTotal sets the charged amount.
func (v *SuccessPanel) SetTotal(total decimal.Decimal) {
	v.total = total
}

// Total returns the charged amount.
func (v *SuccessPanel) Total() decimal.Decimal {
	return v.total
}

// Message returns the confirmation line.
func (v *SuccessPanel) Message() string {
	return "Charged " + v.format.Amount(v.total)
}

// Draw implements renderer.Drawable.
func (v *SuccessPanel) Draw(c *renderer.Canvas) {
	area := c.Bounds()
	if area.IsEmpty() {
		return
	}
	mid := area.Top + area.Height()/3
	c.TextCenter(area, mid, "✓ Order placed", v.theme.Accent)
	c.TextCenter(area, mid+2, v.Message(), v.theme.Text)
	c.TextCenter(area, area.Bottom-1, "[ "+LabelNewPurchases+" ]", v.theme.Button)
}

// HandleKey publishes success.closed on Enter or Esc.
func (v *SuccessPanel) HandleKey(ctx context.Context, ev backend.Event) (bool, error) {
	if !isKey(ev, backend.KeyEnter) && !isKey(ev, backend.KeyEscape) {
		return false, nil
	}
	return true, publish(ctx, v.base, events.TopicSuccessClosed, events.SuccessClosed{})
}
