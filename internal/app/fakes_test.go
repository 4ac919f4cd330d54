package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/storefront/internal/event"
	"github.com/dshills/storefront/internal/renderer/backend"
	"github.com/dshills/storefront/internal/shop"
	"github.com/dshills/storefront/internal/state"
	"github.com/dshills/storefront/internal/view"
)

var errShopDown = errors.New("shop is down")

func testProducts() []shop.Product {
	return []shop.Product{
		{ID: "p1", Title: "Frontend bootcamp", Category: "soft-skill", Price: shop.PriceFromInt(750)},
		{ID: "p2", Title: "Secret mantra", Category: "other", Price: shop.Priceless},
		{ID: "p3", Title: "Debugger", Category: "hard-skill", Price: shop.PriceFromInt(12500)},
	}
}

type fakeSource struct {
	products []shop.Product
	err      error
	calls    int
}

func (f *fakeSource) FetchProducts(context.Context) ([]shop.Product, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

type fakeSink struct {
	mu     sync.Mutex
	orders []shop.Order
	err    error
}

func (f *fakeSink) SubmitOrder(_ context.Context, order shop.Order) (shop.OrderResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, order)
	if f.err != nil {
		return shop.OrderResult{}, f.err
	}
	return shop.OrderResult{ID: "order-1", Total: order.Total}, nil
}

func (f *fakeSink) submitted() []shop.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]shop.Order(nil), f.orders...)
}

type harness struct {
	t      *testing.T
	ctx    context.Context
	bus    event.Bus
	store  *state.Store
	views  *Views
	orch   *Orchestrator
	source *fakeSource
	sink   *fakeSink
}

func newHarness(t *testing.T, sched Scheduler) *harness {
	t.Helper()
	bus := event.NewBus(event.WithErrorHandler(func(ev any, err error) {
		t.Errorf("handler failed: %v", err)
	}))
	return newHarnessWith(t, bus, state.New(bus), sched)
}

// newHarnessOn wires an inline orchestrator onto an existing bus and store.
func newHarnessOn(t *testing.T, bus event.Bus, store *state.Store) *harness {
	t.Helper()
	return newHarnessWith(t, bus, store, InlineScheduler{})
}

func newHarnessWith(t *testing.T, bus event.Bus, store *state.Store, sched Scheduler) *harness {
	t.Helper()
	h := &harness{
		t:      t,
		ctx:    context.Background(),
		bus:    bus,
		store:  store,
		source: &fakeSource{products: testProducts()},
		sink:   &fakeSink{},
	}
	h.views = NewViews(h.bus, nil, nil)
	h.orch = NewOrchestrator(OrchestratorConfig{
		Bus:       h.bus,
		Store:     h.store,
		Views:     h.views,
		Catalog:   h.source,
		Orders:    h.sink,
		Scheduler: sched,
	})
	require.NoError(t, h.orch.Start(h.ctx))
	t.Cleanup(h.orch.Stop)
	return h
}

// press routes keys the way the event loop does.
func (h *harness) press(evs ...backend.Event) {
	h.t.Helper()
	for _, ev := range evs {
		_, err := h.views.Focused().HandleKey(h.ctx, ev)
		require.NoError(h.t, err)
	}
}

func (h *harness) typeText(s string) {
	h.t.Helper()
	for _, r := range s {
		h.press(backend.RuneEvent(r))
	}
}

func (h *harness) content() view.Component {
	return h.views.Modal.Content()
}

func key(k backend.Key) backend.Event {
	return backend.KeyEvent(k)
}
