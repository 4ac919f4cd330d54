package view

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/storefront/internal/event"
	"github.com/dshills/storefront/internal/event/events"
	"github.com/dshills/storefront/internal/renderer/backend"
)

func TestBasket_Draw(t *testing.T) {
	bus, _ := newRecordingBus(t)
	basket := NewBasket(bus, nil, nil)
	basket.SetItems(testCatalog())
	basket.SetTotal(decimal.NewFromInt(13250))

	be := draw(t, basket, 60, 10)
	assert.True(t, be.Contains("1. Frontend bootcamp"))
	assert.True(t, be.Contains("3. Debugger"))
	assert.True(t, be.Contains("13,250 synapses"))
	assert.True(t, be.Contains("[ Checkout ]"))
}

func TestBasket_RemoveSelected(t *testing.T) {
	bus, rec := newRecordingBus(t)
	basket := NewBasket(bus, nil, nil)
	basket.SetItems(testCatalog())

	press(t, basket, backend.KeyEvent(backend.KeyDown), backend.RuneEvent('d'))

	removed := rec.last().(event.Event[events.ProductRemoved])
	assert.Equal(t, "p2", removed.Payload.Product.ID)
	assert.Equal(t, events.OriginBasket, removed.Payload.Origin)

	basket.SetItems(testCatalog()[:1])
	press(t, basket, backend.KeyEvent(backend.KeyDelete))
	removed = rec.last().(event.Event[events.ProductRemoved])
	assert.Equal(t, "p1", removed.Payload.Product.ID)
}

func TestBasket_CheckoutDisabledWhenEmpty(t *testing.T) {
	bus, rec := newRecordingBus(t)
	basket := NewBasket(bus, nil, nil)

	handled, err := basket.HandleKey(context.Background(), backend.KeyEvent(backend.KeyEnter))
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Empty(t, rec.events)
	assert.False(t, basket.CheckoutEnabled())

	press(t, basket, backend.RuneEvent('d'))
	assert.Empty(t, rec.events)

	basket.SetItems(testCatalog())
	press(t, basket, backend.KeyEvent(backend.KeyEnter))
	assert.Equal(t, events.TopicOrderOpened, rec.topics[len(rec.topics)-1])
}
