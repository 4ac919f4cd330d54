package view

import (
	"context"

	"github.com/dshills/storefront/internal/event"
	"github.com/dshills/storefront/internal/event/events"
	"github.com/dshills/storefront/internal/renderer"
	"github.com/dshills/storefront/internal/renderer/backend"
)

// Modal dimensions, clipped to the screen.
const (
	modalWidth  = 64
	modalHeight = 20
)

// Modal hosts one component at a time above the page.
type Modal struct {
	base
	title   string
	content Component
	open    bool
}

// NewModal creates a closed modal host.
func NewModal(bus event.Bus, theme *Theme) *Modal {
	return &Modal{base: newBase(bus, theme, "modal")}
}

// Open shows content and publishes modal.opened. Opening an open modal
// replaces its content.
func (m *Modal) Open(ctx context.Context, title string, content Component) error {
	m.title = title
	m.content = content
	m.open = true
	return publish(ctx, m.base, events.TopicModalOpened, events.ModalOpened{})
}

// Close hides the modal. modal.closed is published only if it was open.
func (m *Modal) Close(ctx context.Context) error {
	if !m.open {
		return nil
	}
	m.open = false
	m.content = nil
	m.title = ""
	return publish(ctx, m.base, events.TopicModalClosed, events.ModalClosed{})
}

// IsOpen reports whether the modal is shown.
func (m *Modal) IsOpen() bool {
	return m.open
}

// Content returns the hosted component, or nil when closed.
func (m *Modal) Content() Component {
	return m.content
}

// Title returns the current title.
func (m *Modal) Title() string {
	return m.title
}

// Draw implements renderer.Drawable.
func (m *Modal) Draw(c *renderer.Canvas) {
	if !m.open {
		return
	}
	area := c.Bounds().Center(modalHeight, modalWidth)
	inner := c.Box(area, m.title, m.theme.Border, m.theme.Text)
	if inner.IsEmpty() {
		return
	}
	c.TextRight(inner, inner.Bottom-1, "Esc close", m.theme.Muted)
	if m.content != nil {
		m.content.Draw(c.Sub(inner.Inset(0, 1, 1, 1)))
	}
}

// HandleKey gives the key to the content first; an unhandled Esc closes
// the modal.
func (m *Modal) HandleKey(ctx context.Context, ev backend.Event) (bool, error) {
	if !m.open {
		return false, nil
	}
	if m.content != nil {
		handled, err := m.content.HandleKey(ctx, ev)
		if handled || err != nil {
			return handled, err
		}
	}
	if isKey(ev, backend.KeyEscape) {
		return true, m.Close(ctx)
	}
	// The page underneath is locked.
	return true, nil
}
