package view

import (
	"context"

	"github.com/dshills/storefront/internal/event"
	"github.com/dshills/storefront/internal/event/events"
	"github.com/dshills/storefront/internal/renderer"
	"github.com/dshills/storefront/internal/renderer/backend"
	"github.com/dshills/storefront/internal/shop"
)

// Contacts form button labels.
const (
	LabelPay     = "Pay"
	LabelPending = "Sending…"
)

// ContactsForm collects the email and phone.
type ContactsForm struct {
	base
	formState

	email string
	phone string
	focus shop.Field
	busy  bool
}

// NewContactsForm creates the contacts form with focus on email.
func NewContactsForm(bus event.Bus, theme *Theme) *ContactsForm {
	return &ContactsForm{
		base:  newBase(bus, theme, "contacts"),
		focus: shop.FieldEmail,
	}
}

// SetEmail echoes the email field.
func (v *ContactsForm) SetEmail(email string) {
	v.email = email
}

// SetPhone echoes the phone field.
func (v *ContactsForm) SetPhone(phone string) {
	v.phone = phone
}

// SetBusy marks a submission as pending; the button stays disabled until
// cleared.
func (v *ContactsForm) SetBusy(busy bool) {
	v.busy = busy
}

// Email returns the echoed email.
func (v *ContactsForm) Email() string {
	return v.email
}

// Phone returns the echoed phone.
func (v *ContactsForm) Phone() string {
	return v.phone
}

// Busy reports whether a submission is pending.
func (v *ContactsForm) Busy() bool {
	return v.busy
}

// SubmitEnabled reports whether Enter submits.
func (v *ContactsForm) SubmitEnabled() bool {
	return v.valid && !v.busy
}

// Reset moves focus back to the email field.
func (v *ContactsForm) Reset() {
	v.focus = shop.FieldEmail
}

// Draw implements renderer.Drawable.
func (v *ContactsForm) Draw(c *renderer.Canvas) {
	area := c.Bounds()
	if area.IsEmpty() {
		return
	}

	y := drawInput(c, v.theme, area.Left, area.Top, area.Width(), "Email", v.email, v.focus == shop.FieldEmail)
	drawInput(c, v.theme, area.Left, y, area.Width(), "Phone", v.phone, v.focus == shop.FieldPhone)

	state := v.formState
	state.valid = v.SubmitEnabled()
	label := LabelPay
	if v.busy {
		label = LabelPending
	}
	drawFooter(c, v.theme, state, label)
}

// HandleKey implements Component.
func (v *ContactsForm) HandleKey(ctx context.Context, ev backend.Event) (bool, error) {
	switch {
	case isKey(ev, backend.KeyTab), isKey(ev, backend.KeyBacktab),
		isKey(ev, backend.KeyUp), isKey(ev, backend.KeyDown):
		if v.focus == shop.FieldEmail {
			v.focus = shop.FieldPhone
		} else {
			v.focus = shop.FieldEmail
		}
		return true, nil
	case isKey(ev, backend.KeyEnter):
		if !v.SubmitEnabled() {
			return true, nil
		}
		return true, publish(ctx, v.base, events.TopicContactsSubmit, events.ContactsSubmit{})
	}

	if v.busy {
		// Fields are frozen while the order is in flight.
		_, _, handled := editText("", ev)
		return handled, nil
	}

	current := v.email
	if v.focus == shop.FieldPhone {
		current = v.phone
	}
	value, changed, handled := editText(current, ev)
	if !changed {
		return handled, nil
	}
	if v.focus == shop.FieldPhone {
		v.phone = value
	} else {
		v.email = value
	}
	return true, publish(ctx, v.base, events.InputTopic(events.FormContacts, v.focus),
		events.FieldChanged{Form: events.FormContacts, Field: v.focus, Value: value})
}
