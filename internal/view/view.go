package view

import (
	"context"

	"github.com/dshills/storefront/internal/event"
	"github.com/dshills/storefront/internal/event/topic"
	"github.com/dshills/storefront/internal/renderer"
	"github.com/dshills/storefront/internal/renderer/backend"
	"github.com/dshills/storefront/internal/renderer/core"
)

// Component is a view that draws itself and turns keys into intents.
type Component interface {
	renderer.Drawable

	// HandleKey processes a key event and reports whether it was consumed.
	HandleKey(ctx context.Context, ev backend.Event) (bool, error)
}

// base holds what every view needs to publish and draw.
type base struct {
	bus    event.Bus
	theme  *Theme
	source string
}

func newBase(bus event.Bus, theme *Theme, source string) base {
	if theme == nil {
		theme = DefaultTheme()
	}
	return base{bus: bus, theme: theme, source: source}
}

func publish[T any](ctx context.Context, b base, t topic.Topic, payload T) error {
	return event.PublishPayload(ctx, b.bus, t, payload, b.source)
}

func isKey(ev backend.Event, k backend.Key) bool {
	return ev.Type == backend.EventKey && ev.Key == k
}

func isRune(ev backend.Event, r rune) bool {
	return ev.Type == backend.EventKey && ev.Key == backend.KeyRune && ev.Rune == r
}

// button draws a bracketed label and returns its width.
func button(c *renderer.Canvas, x, y int, label string, style core.Style) int {
	return c.Text(x, y, "[ "+label+" ]", style)
}
