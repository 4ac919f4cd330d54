package renderer

import (
	"strings"

	"github.com/dshills/storefront/internal/renderer/backend"
	"github.com/dshills/storefront/internal/renderer/core"
)

// Box drawing characters.
const (
	boxHorizontal  = "─"
	boxVertical    = "│"
	boxTopLeft     = "┌"
	boxTopRight    = "┐"
	boxBottomLeft  = "└"
	boxBottomRight = "┘"
)

// Canvas draws onto a backend within a clip rectangle. Coordinates are
// absolute screen cells; anything outside the clip is dropped.
type Canvas struct {
	backend backend.Backend
	clip    core.Rect
}

// NewCanvas returns a canvas covering the whole backend.
func NewCanvas(b backend.Backend) *Canvas {
	w, h := b.Size()
	return &Canvas{backend: b, clip: core.RectFromSize(0, 0, h, w)}
}

// Bounds returns the clip rectangle.
func (c *Canvas) Bounds() core.Rect {
	return c.clip
}

// Sub returns a canvas clipped to r within the current clip.
func (c *Canvas) Sub(r core.Rect) *Canvas {
	return &Canvas{backend: c.backend, clip: c.clip.Intersection(r)}
}

// Fill paints r with blanks in the given style.
func (c *Canvas) Fill(r core.Rect, style core.Style) {
	r = c.clip.Intersection(r)
	if r.IsEmpty() {
		return
	}
	c.backend.Fill(r, core.NewStyledCell(" ", style))
}

// Set draws a single grapheme.
func (c *Canvas) Set(x, y int, grapheme string, style core.Style) {
	if c.clip.Contains(x, y) {
		c.backend.SetCell(x, y, core.NewStyledCell(grapheme, style))
	}
}

// Text draws s starting at (x, y) and returns the number of cells used.
// Graphemes that would cross the clip edge are not drawn.
func (c *Canvas) Text(x, y int, s string, style core.Style) int {
	if y < c.clip.Top || y >= c.clip.Bottom {
		return 0
	}

	col := x
	core.Graphemes(s, func(cluster string, width int) bool {
		if width == 0 {
			return true
		}
		if col+width > c.clip.Right {
			return false
		}
		if col >= c.clip.Left {
			c.backend.SetCell(col, y, core.Cell{Grapheme: cluster, Width: width, Style: style})
			for i := 1; i < width; i++ {
				c.backend.SetCell(col+i, y, core.ContinuationCell(style))
			}
		}
		col += width
		return true
	})
	return col - x
}

// TextFit draws s truncated to width cells.
func (c *Canvas) TextFit(x, y, width int, s string, style core.Style) int {
	return c.Text(x, y, core.Truncate(s, width), style)
}

// TextRight draws s so that it ends at the right edge of r on row y.
func (c *Canvas) TextRight(r core.Rect, y int, s string, style core.Style) {
	s = core.Truncate(s, r.Width())
	c.Text(r.Right-core.StringWidth(s), y, s, style)
}

// TextCenter draws s centered horizontally in r on row y.
func (c *Canvas) TextCenter(r core.Rect, y int, s string, style core.Style) {
	s = core.Truncate(s, r.Width())
	c.Text(r.Left+(r.Width()-core.StringWidth(s))/2, y, s, style)
}

// HLine draws a horizontal rule across r on row y.
func (c *Canvas) HLine(r core.Rect, y int, style core.Style) {
	for x := r.Left; x < r.Right; x++ {
		c.Set(x, y, boxHorizontal, style)
	}
}

// Box draws a border around r with an optional title and clears its inside.
// It returns the inner rectangle.
func (c *Canvas) Box(r core.Rect, title string, border, fill core.Style) core.Rect {
	if r.Width() < 2 || r.Height() < 2 {
		return core.Rect{}
	}

	inner := r.Inset(1, 1, 1, 1)
	c.Fill(inner, fill)

	c.Set(r.Left, r.Top, boxTopLeft, border)
	c.Set(r.Right-1, r.Top, boxTopRight, border)
	c.Set(r.Left, r.Bottom-1, boxBottomLeft, border)
	c.Set(r.Right-1, r.Bottom-1, boxBottomRight, border)
	for x := r.Left + 1; x < r.Right-1; x++ {
		c.Set(x, r.Top, boxHorizontal, border)
		c.Set(x, r.Bottom-1, boxHorizontal, border)
	}
	for y := r.Top + 1; y < r.Bottom-1; y++ {
		c.Set(r.Left, y, boxVertical, border)
		c.Set(r.Right-1, y, boxVertical, border)
	}

	if title != "" && r.Width() > 4 {
		c.TextFit(r.Left+2, r.Top, r.Width()-4, " "+title+" ", border.Bold())
	}
	return inner
}

// Wrap splits s into lines of at most width cells, breaking on spaces.
// Words longer than width are truncated.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	for _, para := range strings.Split(s, "\n") {
		var line strings.Builder
		lineWidth := 0
		for _, word := range strings.Fields(para) {
			word = core.Truncate(word, width)
			w := core.StringWidth(word)
			switch {
			case lineWidth == 0:
				line.WriteString(word)
				lineWidth = w
			case lineWidth+1+w <= width:
				line.WriteString(" ")
				line.WriteString(word)
				lineWidth += 1 + w
			default:
				lines = append(lines, line.String())
				line.Reset()
				line.WriteString(word)
				lineWidth = w
			}
		}
		lines = append(lines, line.String())
	}
	return lines
}
