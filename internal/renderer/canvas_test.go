package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/storefront/internal/renderer/backend"
	"github.com/dshills/storefront/internal/renderer/core"
)

func newTestCanvas(t *testing.T, w, h int) (*Canvas, *backend.NullBackend) {
	t.Helper()
	be := backend.NewNullBackend(w, h)
	require.NoError(t, be.Init())
	return NewCanvas(be), be
}

func TestCanvas_TextClipping(t *testing.T) {
	c, be := newTestCanvas(t, 20, 3)
	style := core.DefaultStyle()

	sub := c.Sub(core.RectFromSize(0, 2, 3, 5))
	n := sub.Text(0, 1, "storefront", style)

	assert.Equal(t, 7, n)
	assert.Equal(t, "  orefr", be.Row(1))
	assert.Equal(t, 0, sub.Text(0, 5, "x", style))
}

func TestCanvas_WideText(t *testing.T) {
	c, be := newTestCanvas(t, 5, 1)

	n := c.Text(0, 0, "日本語", core.DefaultStyle())

	assert.Equal(t, 4, n, "third wide rune does not fit")
	assert.Equal(t, "日本", be.Row(0))
	assert.True(t, be.GetCell(1, 0).IsContinuation())
}

func TestCanvas_TextAlignment(t *testing.T) {
	c, be := newTestCanvas(t, 11, 2)
	r := core.RectFromSize(0, 0, 2, 11)

	c.TextRight(r, 0, "end", core.DefaultStyle())
	c.TextCenter(r, 1, "mid", core.DefaultStyle())

	assert.Equal(t, "        end", be.Row(0))
	assert.Equal(t, "    mid", be.Row(1))
}

func TestCanvas_Box(t *testing.T) {
	c, be := newTestCanvas(t, 12, 4)
	style := core.DefaultStyle()

	inner := c.Box(core.RectFromSize(0, 0, 4, 12), "Cart", style, style)

	assert.Equal(t, core.Rect{Top: 1, Left: 1, Bottom: 3, Right: 11}, inner)
	assert.Equal(t, "┌─ Cart ───┐", be.Row(0))
	assert.Equal(t, "│          │", be.Row(1))
	assert.Equal(t, "└──────────┘", be.Row(3))

	assert.Equal(t, core.Rect{}, c.Box(core.RectFromSize(0, 0, 1, 1), "", style, style))
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  []string
	}{
		{"fits", "one two", 10, []string{"one two"}},
		{"breaks", "one two three", 8, []string{"one two", "three"}},
		{"long word", "abcdefghij", 4, []string{"abc…"}},
		{"paragraphs", "a\nb", 5, []string{"a", "b"}},
		{"zero width", "a", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.in, tt.width))
		})
	}
}

func TestRenderer_DrawsLayersInOrder(t *testing.T) {
	be := backend.NewNullBackend(10, 1)
	require.NoError(t, be.Init())
	r := New(be)

	r.SetLayers(
		DrawFunc(func(c *Canvas) { c.Text(0, 0, "aaaa", core.DefaultStyle()) }),
		nil,
		DrawFunc(func(c *Canvas) { c.Text(2, 0, "bb", core.DefaultStyle()) }),
	)
	r.Render()

	assert.Equal(t, "aabb", be.Row(0))
	assert.Equal(t, uint64(1), r.Frames())

	r.SetLayers()
	r.Render()
	assert.Equal(t, "", be.Row(0))
}
