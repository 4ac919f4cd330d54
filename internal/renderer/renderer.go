package renderer

import (
	"github.com/dshills/storefront/internal/renderer/backend"
	"github.com/dshills/storefront/internal/renderer/core"
)

// Drawable is anything that can draw itself onto a canvas.
type Drawable interface {
	Draw(c *Canvas)
}

// DrawFunc adapts a function to Drawable.
type DrawFunc func(c *Canvas)

// Draw implements Drawable.
func (f DrawFunc) Draw(c *Canvas) {
	f(c)
}

// Renderer redraws a root drawable on demand.
type Renderer struct {
	backend backend.Backend
	layers  []Drawable
	frames  uint64
}

// New creates a renderer on the given backend.
func New(b backend.Backend) *Renderer {
	return &Renderer{backend: b}
}

// Backend returns the underlying backend.
func (r *Renderer) Backend() backend.Backend {
	return r.backend
}

// SetLayers replaces the drawables, drawn bottom to top.
func (r *Renderer) SetLayers(layers ...Drawable) {
	r.layers = layers
}

// Render clears the screen, draws every layer and flushes.
func (r *Renderer) Render() {
	r.backend.HideCursor()
	canvas := NewCanvas(r.backend)
	r.backend.Fill(canvas.Bounds(), core.EmptyCell())
	for _, layer := range r.layers {
		if layer != nil {
			layer.Draw(canvas)
		}
	}
	r.backend.Show()
	r.frames++
}

// Frames returns the number of frames rendered.
func (r *Renderer) Frames() uint64 {
	return r.frames
}
