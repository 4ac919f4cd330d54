package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/dshills/storefront/internal/renderer/backend"
)

// eventLoop is the main application loop. It owns the bus, store and
// views: every event, key or posted function, is handled here.
func (app *Application) eventLoop(ctx context.Context) error {
	app.renderer.Render()

	for !app.quit {
		ev := app.backend.PollEvent()
		if err := app.handleBackendEvent(ctx, ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			app.log.Error("handle event", zap.Error(err))
		}
		if app.quit {
			break
		}
		app.renderer.Render()
	}
	return nil
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ctx context.Context, ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKeyEvent(ctx, ev)
	case backend.EventInterrupt:
		runPosted(ev)
		return nil
	case backend.EventResize:
		app.log.Debug("resize", zap.Int("width", ev.Width), zap.Int("height", ev.Height))
		return nil
	default:
		return nil
	}
}

// handleKeyEvent gives the key to the focused component. Ctrl+C always
// quits.
func (app *Application) handleKeyEvent(ctx context.Context, ev backend.Event) error {
	if ev.Key == backend.KeyCtrlC {
		return ErrQuit
	}
	handled, err := app.views.Focused().HandleKey(ctx, ev)
	if err != nil {
		return err
	}
	if !handled {
		app.log.Debug("unhandled key", zap.Int("key", int(ev.Key)), zap.String("rune", string(ev.Rune)))
	}
	return nil
}
