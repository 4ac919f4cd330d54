package view

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/storefront/internal/event"
	"github.com/dshills/storefront/internal/event/events"
	"github.com/dshills/storefront/internal/renderer/backend"
	"github.com/dshills/storefront/internal/shop"
)

func testCatalog() []shop.Product {
	return []shop.Product{
		{ID: "p1", Title: "Frontend bootcamp", Category: "soft-skill", Price: shop.PriceFromInt(750)},
		{ID: "p2", Title: "Secret mantra", Category: "other", Price: shop.Priceless},
		{ID: "p3", Title: "Debugger", Category: "hard-skill", Price: shop.PriceFromInt(12500)},
	}
}

func TestPage_Draw(t *testing.T) {
	bus, _ := newRecordingBus(t)
	page := NewPage(bus, nil, nil)
	page.SetCatalog(testCatalog())
	page.SetCounter(2)
	page.SetStatus("catalog unavailable")

	be := draw(t, page, 100, 20)

	assert.Contains(t, be.Row(0), "STOREFRONT")
	assert.Contains(t, be.Row(0), "Basket: 2")
	assert.True(t, be.Contains("Frontend bootcamp"))
	assert.True(t, be.Contains("750 synapses"))
	assert.True(t, be.Contains(PricelessLabel))
	assert.True(t, be.Contains("12,500 synapses"))
	assert.True(t, be.Contains("catalog unavailable"))
}

func TestPage_DrawEmptyCatalog(t *testing.T) {
	bus, _ := newRecordingBus(t)
	page := NewPage(bus, nil, nil)

	be := draw(t, page, 60, 10)
	assert.True(t, be.Contains("Loading catalog"))
}

func TestPage_LockedDimsText(t *testing.T) {
	bus, _ := newRecordingBus(t)
	page := NewPage(bus, nil, nil)
	page.SetCatalog(testCatalog())

	open := draw(t, page, 100, 20)
	page.SetLocked(true)
	locked := draw(t, page, 100, 20)

	x, y, ok := open.FindText("STOREFRONT")
	require.True(t, ok)
	assert.True(t, page.Locked())
	assert.NotEqual(t, open.GetCell(x, y).Style, locked.GetCell(x, y).Style)
}

func TestPage_Keys(t *testing.T) {
	bus, rec := newRecordingBus(t)
	page := NewPage(bus, nil, nil)
	page.SetCatalog(testCatalog())
	draw(t, page, 100, 20)

	press(t, page, backend.KeyEvent(backend.KeyRight), backend.KeyEvent(backend.KeyRight), backend.KeyEvent(backend.KeyRight))
	assert.Equal(t, 2, page.Cursor())

	press(t, page, backend.KeyEvent(backend.KeyLeft), backend.KeyEvent(backend.KeyEnter))
	require.Equal(t, events.TopicCardSelected, rec.topics[len(rec.topics)-1])
	selected := rec.last().(event.Event[events.CardSelected])
	assert.Equal(t, "p2", selected.Payload.Product.ID)

	press(t, page, backend.RuneEvent('b'))
	assert.Equal(t, events.TopicBasketOpened, rec.topics[len(rec.topics)-1])

	press(t, page, backend.RuneEvent('q'))
	assert.Equal(t, events.TopicQuitRequested, rec.topics[len(rec.topics)-1])

	handled, err := page.HandleKey(context.Background(), backend.RuneEvent('z'))
	require.NoError(t, err)
	assert.False(t, handled)
}

func TestPage_SetCatalogClampsCursor(t *testing.T) {
	bus, _ := newRecordingBus(t)
	page := NewPage(bus, nil, nil)
	page.SetCatalog(testCatalog())
	draw(t, page, 100, 20)
	press(t, page, backend.KeyEvent(backend.KeyRight), backend.KeyEvent(backend.KeyRight))

	page.SetCatalog(testCatalog()[:1])
	assert.Equal(t, 0, page.Cursor())
	assert.Len(t, page.Catalog(), 1)
}
