// Package core provides the cell, style and geometry types shared by the
// rendering backends and the storefront views.
package core

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Attribute represents text attributes like bold, italic, etc.
type Attribute uint16

// Text attributes.
const (
	AttrNone Attribute = 0
	AttrBold Attribute = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrReverse
	AttrStrikethrough
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Color is a terminal color: either the terminal default or 24-bit RGB.
type Color struct {
	R, G, B uint8
	Default bool
}

// ColorDefault uses the terminal's default color.
var ColorDefault = Color{Default: true}

// ColorFromRGB creates a color from RGB values.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromHex parses "#rrggbb" or "#rgb".
func ColorFromHex(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return ColorDefault, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return fromColorful(c), nil
}

// MustColorFromHex is ColorFromHex for literals known to be valid.
func MustColorFromHex(hex string) Color {
	c, err := ColorFromHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// IsDefault returns true if this is the default terminal color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Hex returns the color as "#rrggbb", or "default".
func (c Color) Hex() string {
	if c.Default {
		return "default"
	}
	return c.colorful().Hex()
}

// Blend mixes c toward other by amount (0 keeps c, 1 gives other), in Lab
// space. Default colors are returned unchanged.
func (c Color) Blend(other Color, amount float64) Color {
	if c.Default || other.Default || amount <= 0 {
		return c
	}
	if amount >= 1 {
		return other
	}
	return fromColorful(c.colorful().BlendLab(other.colorful(), amount))
}

// Darken returns the color moved toward black by amount.
func (c Color) Darken(amount float64) Color {
	return c.Blend(ColorFromRGB(0, 0, 0), amount)
}

// Style combines foreground, background and attributes.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns the terminal default style.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

// NewStyle returns a style with the given foreground.
func NewStyle(fg Color) Style {
	return Style{Foreground: fg, Background: ColorDefault}
}

// WithForeground returns a copy with a new foreground.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns a copy with a new background.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// Bold returns a copy with bold set.
func (s Style) Bold() Style {
	s.Attributes = s.Attributes.With(AttrBold)
	return s
}

// Dim returns a copy with dim set.
func (s Style) Dim() Style {
	s.Attributes = s.Attributes.With(AttrDim)
	return s
}

// Reverse returns a copy with reverse video set.
func (s Style) Reverse() Style {
	s.Attributes = s.Attributes.With(AttrReverse)
	return s
}

// Underline returns a copy with underline set.
func (s Style) Underline() Style {
	s.Attributes = s.Attributes.With(AttrUnderline)
	return s
}

// Cell is one terminal cell. A wide grapheme occupies its cell plus
// Width-1 continuation cells.
type Cell struct {
	// Grapheme is the user-perceived character drawn in the cell.
	Grapheme string

	// Width is the display width (0 for continuation cells).
	Width int

	Style Style
}

// EmptyCell returns a blank cell in the default style.
func EmptyCell() Cell {
	return Cell{Grapheme: " ", Width: 1, Style: DefaultStyle()}
}

// NewStyledCell returns a cell holding a single grapheme.
func NewStyledCell(grapheme string, style Style) Cell {
	return Cell{Grapheme: grapheme, Width: StringWidth(grapheme), Style: style}
}

// ContinuationCell returns the placeholder following a wide grapheme.
func ContinuationCell(style Style) Cell {
	return Cell{Width: 0, Style: style}
}

// IsContinuation reports whether c is the tail of a wide grapheme.
func (c Cell) IsContinuation() bool {
	return c.Width == 0
}

// StringWidth returns the display width of s in terminal cells.
func StringWidth(s string) int {
	return uniseg.StringWidth(s)
}

// Graphemes calls fn for every grapheme cluster of s with its width,
// stopping early when fn returns false.
func Graphemes(s string, fn func(cluster string, width int) bool) {
	state := -1
	for len(s) > 0 {
		var cluster string
		var width int
		cluster, s, width, state = uniseg.FirstGraphemeClusterInString(s, state)
		if !fn(cluster, width) {
			return
		}
	}
}

// Truncate shortens s to at most width cells, ending with "…" when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if StringWidth(s) <= width {
		return s
	}

	var out []byte
	used := 0
	Graphemes(s, func(cluster string, w int) bool {
		if used+w > width-1 {
			return false
		}
		out = append(out, cluster...)
		used += w
		return true
	})
	return string(out) + "…"
}

// Rect is a screen rectangle; Bottom and Right are exclusive.
type Rect struct {
	Top, Left, Bottom, Right int
}

// RectFromSize creates a rect from its origin and size.
func RectFromSize(top, left, height, width int) Rect {
	return Rect{Top: top, Left: left, Bottom: top + height, Right: left + width}
}

// Width returns the width of the rect.
func (r Rect) Width() int {
	return max(r.Right-r.Left, 0)
}

// Height returns the height of the rect.
func (r Rect) Height() int {
	return max(r.Bottom-r.Top, 0)
}

// IsEmpty returns true if the rect has no area.
func (r Rect) IsEmpty() bool {
	return r.Width() == 0 || r.Height() == 0
}

// Contains reports whether the cell at (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Intersection returns the overlap of two rects.
func (r Rect) Intersection(other Rect) Rect {
	out := Rect{
		Top:    max(r.Top, other.Top),
		Left:   max(r.Left, other.Left),
		Bottom: min(r.Bottom, other.Bottom),
		Right:  min(r.Right, other.Right),
	}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// Inset shrinks the rect by the given margins.
func (r Rect) Inset(top, right, bottom, left int) Rect {
	return Rect{
		Top:    r.Top + top,
		Left:   r.Left + left,
		Bottom: r.Bottom - bottom,
		Right:  r.Right - right,
	}
}

// Center returns a rect of the given size centered in r, clipped to r.
func (r Rect) Center(height, width int) Rect {
	height = min(height, r.Height())
	width = min(width, r.Width())
	top := r.Top + (r.Height()-height)/2
	left := r.Left + (r.Width()-width)/2
	return RectFromSize(top, left, height, width)
}
