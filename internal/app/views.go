package app

import (
	"github.com/dshills/storefront/internal/event"
	"github.com/dshills/storefront/internal/renderer"
	"github.com/dshills/storefront/internal/view"
)

// Views is the set of view components the orchestrator drives.
type Views struct {
	Page     *view.Page
	Modal    *view.Modal
	Preview  *view.PreviewCard
	Basket   *view.Basket
	Delivery *view.DeliveryForm
	Contacts *view.ContactsForm
	Success  *view.SuccessPanel
}

// NewViews creates every view on bus. Nil theme or format select the
// defaults.
func NewViews(bus event.Bus, theme *view.Theme, format *view.Formatter) *Views {
	return &Views{
		Page:     view.NewPage(bus, theme, format),
		Modal:    view.NewModal(bus, theme),
		Preview:  view.NewPreviewCard(bus, theme, format),
		Basket:   view.NewBasket(bus, theme, format),
		Delivery: view.NewDeliveryForm(bus, theme),
		Contacts: view.NewContactsForm(bus, theme),
		Success:  view.NewSuccessPanel(bus, theme, format),
	}
}

// Layers returns the draw order: page below, modal on top.
func (v *Views) Layers() []renderer.Drawable {
	return []renderer.Drawable{v.Page, v.Modal}
}

// Focused returns the component that receives keys.
func (v *Views) Focused() view.Component {
	if v.Modal.IsOpen() {
		return v.Modal
	}
	return v.Page
}
