package view

import (
	"context"
	"slices"

	"github.com/dshills/storefront/internal/event"
	"github.com/dshills/storefront/internal/event/events"
	"github.com/dshills/storefront/internal/renderer"
	"github.com/dshills/storefront/internal/renderer/backend"
	"github.com/dshills/storefront/internal/shop"
)

// LabelNext is the delivery form's submit button.
const LabelNext = "Next"

// paymentLabels are the button captions of the payment controls.
var paymentLabels = map[shop.PaymentMethod]string{
	shop.PaymentCard: "Online",
	shop.PaymentCash: "On delivery",
}

const (
	deliveryFocusPayment = iota
	deliveryFocusAddress
)

// DeliveryForm collects the payment method and the delivery address.
type DeliveryForm struct {
	base
	formState

	payment shop.PaymentMethod
	address string
	focus   int
}

// NewDeliveryForm creates the delivery form with card highlighted.
func NewDeliveryForm(bus event.Bus, theme *Theme) *DeliveryForm {
	return &DeliveryForm{
		base:    newBase(bus, theme, "delivery"),
		payment: shop.DefaultPayment,
		focus:   deliveryFocusPayment,
	}
}

// SetPayment highlights exactly the control of m.
func (v *DeliveryForm) SetPayment(m shop.PaymentMethod) {
	v.payment = m
}

// SetAddress echoes the address field.
func (v *DeliveryForm) SetAddress(address string) {
	v.address = address
}

// Payment returns the highlighted method.
func (v *DeliveryForm) Payment() shop.PaymentMethod {
	return v.payment
}

// ActiveControls returns the highlighted payment controls. It always holds
// exactly one method.
func (v *DeliveryForm) ActiveControls() []shop.PaymentMethod {
	var active []shop.PaymentMethod
	for _, m := range shop.PaymentMethods() {
		if m == v.payment {
			active = append(active, m)
		}
	}
	return active
}

// Address returns the echoed address.
func (v *DeliveryForm) Address() string {
	return v.address
}

// Reset moves input focus back to the payment row.
func (v *DeliveryForm) Reset() {
	v.focus = deliveryFocusPayment
}

// Draw implements renderer.Drawable.
func (v *DeliveryForm) Draw(c *renderer.Canvas) {
	area := c.Bounds()
	if area.IsEmpty() {
		return
	}

	c.Text(area.Left, area.Top, "Payment method", v.theme.Muted)
	x := area.Left
	for _, m := range shop.PaymentMethods() {
		style := v.theme.Text
		if m == v.payment {
			style = v.theme.Selected
		}
		if v.focus == deliveryFocusPayment && m == v.payment {
			style = style.Underline()
		}
		x += button(c, x, area.Top+1, paymentLabels[m], style) + 2
	}

	drawInput(c, v.theme, area.Left, area.Top+3, area.Width(), "Delivery address", v.address, v.focus == deliveryFocusAddress)
	drawFooter(c, v.theme, v.formState, LabelNext)
}

// HandleKey implements Component.
func (v *DeliveryForm) HandleKey(ctx context.Context, ev backend.Event) (bool, error) {
	switch {
	case isKey(ev, backend.KeyTab), isKey(ev, backend.KeyBacktab),
		isKey(ev, backend.KeyUp), isKey(ev, backend.KeyDown):
		v.focus = 1 - v.focus
		return true, nil
	case isKey(ev, backend.KeyEnter):
		if !v.valid {
			return true, nil
		}
		return true, publish(ctx, v.base, events.TopicOrderSubmit, events.OrderSubmit{})
	}

	if v.focus == deliveryFocusPayment {
		methods := shop.PaymentMethods()
		switch {
		case isKey(ev, backend.KeyLeft), isRune(ev, '1'):
			return true, v.selectPayment(ctx, methods[0])
		case isKey(ev, backend.KeyRight), isRune(ev, '2'):
			return true, v.selectPayment(ctx, methods[1])
		case isRune(ev, ' '):
			i := (slices.Index(methods, v.payment) + 1) % len(methods)
			return true, v.selectPayment(ctx, methods[i])
		}
		return false, nil
	}

	value, changed, handled := editText(v.address, ev)
	if !changed {
		return handled, nil
	}
	v.address = value
	return true, publish(ctx, v.base, events.InputTopic(events.FormDelivery, shop.FieldAddress),
		events.FieldChanged{Form: events.FormDelivery, Field: shop.FieldAddress, Value: value})
}

// selectPayment highlights m and publishes the choice, even when m is
// already selected.
func (v *DeliveryForm) selectPayment(ctx context.Context, m shop.PaymentMethod) error {
	v.payment = m
	return publish(ctx, v.base, events.InputTopic(events.FormDelivery, shop.FieldPayment),
		events.FieldChanged{Form: events.FormDelivery, Field: shop.FieldPayment, Value: string(m)})
}
