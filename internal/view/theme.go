package view

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dshills/storefront/internal/renderer/core"
)

// Theme holds the styles views draw with.
type Theme struct {
	Text           core.Style
	Muted          core.Style
	Title          core.Style
	Accent         core.Style
	Error          core.Style
	Border         core.Style
	Focus          core.Style
	Selected       core.Style
	Button         core.Style
	ButtonDisabled core.Style

	categories map[string]core.Color
	fallback   core.Color
	lockDim    float64
}

// DefaultCategoryColors maps product categories to chip colors.
var DefaultCategoryColors = map[string]string{
	"soft-skill": "#83fa9d",
	"hard-skill": "#faa083",
	"other":      "#b894ff",
	"additional": "#8ad3ff",
	"button":     "#fad883",
}

// DefaultAccent is the accent color of the default theme.
const DefaultAccent = "#5f8dd3"

// DefaultTheme returns the built-in theme.
func DefaultTheme() *Theme {
	t, err := NewTheme(DefaultAccent, DefaultCategoryColors)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTheme builds a theme from hex colors. Category names are matched
// case-insensitively.
func NewTheme(accent string, categories map[string]string) (*Theme, error) {
	accentColor, err := core.ColorFromHex(accent)
	if err != nil {
		return nil, fmt.Errorf("accent: %w", err)
	}

	white := core.ColorFromRGB(235, 235, 235)
	grey := core.ColorFromRGB(140, 140, 140)
	red := core.MustColorFromHex("#ff6b6b")

	t := &Theme{
		Text:           core.NewStyle(white),
		Muted:          core.NewStyle(grey),
		Title:          core.NewStyle(white).Bold(),
		Accent:         core.NewStyle(accentColor).Bold(),
		Error:          core.NewStyle(red),
		Border:         core.NewStyle(grey),
		Focus:          core.NewStyle(accentColor),
		Selected:       core.NewStyle(white).WithBackground(accentColor.Darken(0.4)).Bold(),
		Button:         core.NewStyle(accentColor).Bold().Reverse(),
		ButtonDisabled: core.NewStyle(grey).Dim(),
		categories:     make(map[string]core.Color, len(categories)),
		fallback:       accentColor,
		lockDim:        0.55,
	}

	for name, hex := range categories {
		c, err := core.ColorFromHex(hex)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", name, err)
		}
		t.categories[strings.ToLower(name)] = c
	}
	return t, nil
}

// Category returns the chip style for a product category.
func (t *Theme) Category(name string) core.Style {
	c, ok := t.categories[strings.ToLower(name)]
	if !ok {
		c = t.fallback
	}
	return core.NewStyle(core.ColorFromRGB(20, 20, 20)).WithBackground(c)
}

// Categories returns the configured category names, sorted.
func (t *Theme) Categories() []string {
	return slices.Sorted(maps.Keys(t.categories))
}

// Locked returns s dimmed for content behind an open modal.
func (t *Theme) Locked(s core.Style) core.Style {
	s.Foreground = s.Foreground.Darken(t.lockDim)
	s.Background = s.Background.Darken(t.lockDim)
	return s
}
