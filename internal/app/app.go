package app

import (
	"context"
	"maps"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/dshills/storefront/internal/api"
	"github.com/dshills/storefront/internal/config"
	"github.com/dshills/storefront/internal/event"
	"github.com/dshills/storefront/internal/event/events"
	"github.com/dshills/storefront/internal/renderer"
	"github.com/dshills/storefront/internal/renderer/backend"
	"github.com/dshills/storefront/internal/state"
	"github.com/dshills/storefront/internal/view"
)

// Options configures the application.
type Options struct {
	// Config is the resolved configuration. Nil uses config.Default().
	Config *config.Config

	// Backend is the terminal surface. Required.
	Backend backend.Backend

	// Logger receives application logs. Nil discards them.
	Logger *zap.Logger

	// Catalog and Orders override the HTTP client, mainly for tests.
	Catalog api.CatalogSource
	Orders  api.OrderSink
}

// Application is the central coordinator for all storefront components.
// It manages component lifecycles, wiring, and the main event loop.
type Application struct {
	cfg     *config.Config
	log     *zap.Logger
	backend backend.Backend

	bus          event.Bus
	store        *state.Store
	views        *Views
	orchestrator *Orchestrator
	metrics      *Metrics
	scheduler    *loopScheduler
	renderer     *renderer.Renderer

	running atomic.Bool
	quit    bool
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	if opts.Backend == nil {
		return nil, &InitError{Component: "backend", Err: ErrNoBackend}
	}

	app := &Application{
		cfg:     opts.Config,
		log:     opts.Logger,
		backend: opts.Backend,
	}
	if app.cfg == nil {
		app.cfg = config.Default()
	}
	if app.log == nil {
		app.log = zap.NewNop()
	}

	if err := app.bootstrap(opts); err != nil {
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap(opts Options) error {
	// 1. Event Bus - messaging foundation
	app.bus = event.NewBus(event.WithErrorHandler(app.handlerFailed))

	// 2. Presentation settings
	categories := maps.Clone(view.DefaultCategoryColors)
	maps.Copy(categories, app.cfg.Display.Categories)
	theme, err := view.NewTheme(app.cfg.Display.Accent, categories)
	if err != nil {
		return &InitError{Component: "theme", Err: err}
	}
	format, err := view.NewFormatter(app.cfg.Display.Locale, app.cfg.Display.Currency)
	if err != nil {
		return &InitError{Component: "formatter", Err: err}
	}

	// 3. State and views
	app.store = state.New(app.bus)
	app.views = NewViews(app.bus, theme, format)

	// 4. Remote shop
	source, sink := opts.Catalog, opts.Orders
	if source == nil || sink == nil {
		client := api.New(app.cfg.APIConfig())
		if source == nil {
			source = client
		}
		if sink == nil {
			sink = client
		}
	}

	// 5. Orchestrator
	app.scheduler = newLoopScheduler(app.backend, func(err error) {
		app.log.Warn("post to event loop", zap.Error(err))
	})
	app.orchestrator = NewOrchestrator(OrchestratorConfig{
		Bus:       app.bus,
		Store:     app.store,
		Views:     app.views,
		Catalog:   source,
		Orders:    sink,
		Scheduler: app.scheduler,
		Logger:    app.log,
	})

	// 6. Metrics
	app.metrics = NewMetrics(app.store.BasketCount)
	if _, err := app.metrics.Observe(app.bus); err != nil {
		return &InitError{Component: "metrics", Err: err}
	}

	// 7. Quit intent
	if _, err := event.SubscribePayload(app.bus, events.TopicQuitRequested, func(context.Context, events.QuitRequested) error {
		app.quit = true
		return nil
	}); err != nil {
		return &InitError{Component: "quit handler", Err: err}
	}
	return nil
}

// handlerFailed logs bus handler errors and panics.
func (app *Application) handlerFailed(ev any, err error) {
	fields := []zap.Field{zap.Error(err)}
	if tp, ok := ev.(event.TopicProvider); ok {
		fields = append(fields, zap.Stringer("topic", tp.EventTopic()))
	}
	app.log.Error("event handler failed", fields...)
	if app.metrics != nil {
		app.metrics.HandlerFailed(err)
	}
}

// Run starts the application main loop.
// Blocks until quit is requested or ctx is cancelled.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	app.renderer = renderer.New(app.backend)
	app.renderer.SetLayers(app.views.Layers()...)

	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		app.scheduler.Wait()
	}()

	if addr := app.cfg.Metrics.Addr; addr != "" {
		if err := app.metrics.Serve(ctx, addr, app.log); err != nil {
			return err
		}
	}

	if err := app.orchestrator.Start(ctx); err != nil {
		return &InitError{Component: "orchestrator", Err: err}
	}
	defer app.orchestrator.Stop()

	go func() {
		<-ctx.Done()
		app.scheduler.Post(func() { app.quit = true })
	}()

	app.log.Info("storefront started", zap.String("api", app.cfg.API.URL))
	app.orchestrator.LoadCatalog()

	err := app.eventLoop(ctx)
	app.log.Info("storefront stopped", zap.Uint64("frames", app.renderer.Frames()))
	return err
}

// Post runs fn on the event loop.
func (app *Application) Post(fn func()) {
	app.scheduler.Post(fn)
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// EventBus returns the event bus.
func (app *Application) EventBus() event.Bus {
	return app.bus
}

// Store returns the state store. Only touch it from the event loop.
func (app *Application) Store() *state.Store {
	return app.store
}

// Views returns the view components.
func (app *Application) Views() *Views {
	return app.views
}

// Orchestrator returns the orchestrator.
func (app *Application) Orchestrator() *Orchestrator {
	return app.orchestrator
}

// Metrics returns the metrics collectors.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}
