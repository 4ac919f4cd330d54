package view

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/storefront/internal/event"
	"github.com/dshills/storefront/internal/event/topic"
	"github.com/dshills/storefront/internal/renderer"
	"github.com/dshills/storefront/internal/renderer/backend"
)

type published struct {
	topics []topic.Topic
	events []any
}

func newRecordingBus(t *testing.T) (event.Bus, *published) {
	t.Helper()
	bus := event.NewBus()
	rec := &published{}
	_, err := bus.SubscribeFunc("**", func(_ context.Context, ev any) error {
		rec.topics = append(rec.topics, ev.(event.TopicProvider).EventTopic())
		rec.events = append(rec.events, ev)
		return nil
	})
	require.NoError(t, err)
	return bus, rec
}

func (p *published) last() any {
	if len(p.events) == 0 {
		return nil
	}
	return p.events[len(p.events)-1]
}

func draw(t *testing.T, d renderer.Drawable, w, h int) *backend.NullBackend {
	t.Helper()
	be := backend.NewNullBackend(w, h)
	require.NoError(t, be.Init())
	d.Draw(renderer.NewCanvas(be))
	return be
}

func press(t *testing.T, c Component, evs ...backend.Event) {
	t.Helper()
	for _, ev := range evs {
		_, err := c.HandleKey(context.Background(), ev)
		require.NoError(t, err)
	}
}

func typeText(t *testing.T, c Component, s string) {
	t.Helper()
	for _, r := range s {
		press(t, c, backend.RuneEvent(r))
	}
}
