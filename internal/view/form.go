package view

import (
	"strings"

	"github.com/dshills/storefront/internal/renderer"
	"github.com/dshills/storefront/internal/renderer/backend"
	"github.com/dshills/storefront/internal/renderer/core"
)

// formState is the validity and error text shared by both checkout forms.
type formState struct {
	valid  bool
	errors string
}

// SetValid enables or disables the submit button.
func (f *formState) SetValid(valid bool) {
	f.valid = valid
}

// SetErrors sets the joined error text.
func (f *formState) SetErrors(errors string) {
	f.errors = errors
}

// Valid reports whether the submit button is enabled.
func (f *formState) Valid() bool {
	return f.valid
}

// Errors returns the joined error text.
func (f *formState) Errors() string {
	return f.errors
}

// editText applies a key to a text value. It reports whether the value
// changed; keys it does not understand leave handled false.
func editText(value string, ev backend.Event) (string, bool, bool) {
	switch {
	case ev.Type != backend.EventKey:
		return value, false, false
	case ev.Key == backend.KeyRune && ev.Mod&(backend.ModCtrl|backend.ModAlt) == 0:
		return value + string(ev.Rune), true, true
	case ev.Key == backend.KeyBackspace:
		if value == "" {
			return value, false, true
		}
		return dropLastGrapheme(value), true, true
	default:
		return value, false, false
	}
}

func dropLastGrapheme(s string) string {
	last := 0
	pos := 0
	core.Graphemes(s, func(cluster string, _ int) bool {
		last = pos
		pos += len(cluster)
		return true
	})
	return s[:last]
}

// drawInput draws a labeled single-line input and returns the next free row.
func drawInput(c *renderer.Canvas, theme *Theme, x, y, width int, label, value string, focused bool) int {
	c.TextFit(x, y, width, label, theme.Muted)

	style := theme.Text
	border := theme.Border
	if focused {
		border = theme.Focus
	}
	c.Text(x, y+1, "›", border)

	shown := value
	if w := core.StringWidth(value); w > width-3 {
		// Keep the end of long values visible.
		shown = "…" + strings.TrimLeft(tail(value, width-4), " ")
	}
	n := c.Text(x+2, y+1, shown, style)
	if focused {
		c.Text(x+2+n, y+1, "▏", theme.Focus)
	}
	return y + 3
}

// tail returns the last width cells of s.
func tail(s string, width int) string {
	var clusters []string
	core.Graphemes(s, func(cluster string, _ int) bool {
		clusters = append(clusters, cluster)
		return true
	})
	used := 0
	i := len(clusters)
	for i > 0 {
		w := core.StringWidth(clusters[i-1])
		if used+w > width {
			break
		}
		used += w
		i--
	}
	return strings.Join(clusters[i:], "")
}

// drawFooter draws the error text and the submit button.
func drawFooter(c *renderer.Canvas, theme *Theme, state formState, label string) {
	area := c.Bounds()
	if state.errors != "" {
		for i, line := range renderer.Wrap(state.errors, area.Width()) {
			y := area.Bottom - 4 + i
			if y >= area.Bottom-2 {
				break
			}
			c.Text(area.Left, y, line, theme.Error)
		}
	}
	style := theme.Button
	if !state.valid {
		style = theme.ButtonDisabled
	}
	button(c, area.Left, area.Bottom-1, label, style)
}
