// Package renderer draws the storefront onto a terminal backend.
//
// The renderer follows a layered design:
//
//	┌─────────────────────────────────────────┐
//	│      Renderer (frame loop facade)       │
//	├─────────────────────────────────────────┤
//	│   Canvas (clipping, text, boxes)        │
//	├─────────────────────────────────────────┤
//	│           Backend Abstraction           │
//	├─────────────────────────────────────────┤
//	│  Terminal (tcell) │ NullBackend (tests) │
//	└─────────────────────────────────────────┘
//
// Usage:
//
//	be, _ := backend.NewTerminal()
//	r := renderer.New(be)
//	r.SetLayers(page, modal)
//	r.Render()
package renderer
