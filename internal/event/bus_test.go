package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/storefront/internal/event/topic"
)

type testPayload struct {
	Value int
}

func TestBus_DeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	var order []string

	record := func(name string) HandlerFunc {
		return func(context.Context, any) error {
			order = append(order, name)
			return nil
		}
	}

	_, err := bus.SubscribeFunc("basket.changed", record("exact-1"))
	require.NoError(t, err)
	_, err = bus.SubscribeFunc("basket.*", record("wildcard"))
	require.NoError(t, err)
	_, err = bus.SubscribeFunc("**", record("all"))
	require.NoError(t, err)
	_, err = bus.SubscribeFunc("basket.changed", record("exact-2"))
	require.NoError(t, err)

	require.NoError(t, PublishPayload(context.Background(), bus, "basket.changed", testPayload{}, "test"))
	assert.Equal(t, []string{"exact-1", "wildcard", "all", "exact-2"}, order)
}

func TestBus_WildcardFamily(t *testing.T) {
	bus := NewBus()
	var fields []string

	_, err := bus.Subscribe("input.contacts.*", HandlerFunc(func(_ context.Context, ev any) error {
		fields = append(fields, ev.(TopicProvider).EventTopic().Base())
		return nil
	}))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, PublishPayload(ctx, bus, "input.contacts.email", "a@b.c", "test"))
	require.NoError(t, PublishPayload(ctx, bus, "input.contacts.phone", "+7999", "test"))
	require.NoError(t, PublishPayload(ctx, bus, "input.delivery.address", "Main St", "test"))

	assert.Equal(t, []string{"email", "phone"}, fields)
}

func TestBus_SnapshotAtDispatchStart(t *testing.T) {
	bus := NewBus()
	calls := map[string]int{}

	var second Subscription
	_, err := bus.SubscribeFunc("modal.closed", func(context.Context, any) error {
		calls["first"]++
		if second != nil {
			require.NoError(t, bus.Unsubscribe(second))
			second = nil
		}
		_, err := bus.SubscribeFunc("modal.closed", func(context.Context, any) error {
			calls["late"]++
			return nil
		})
		return err
	})
	require.NoError(t, err)

	second, err = bus.SubscribeFunc("modal.closed", func(context.Context, any) error {
		calls["second"]++
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, PublishPayload(context.Background(), bus, "modal.closed", struct{}{}, "test"))

	assert.Equal(t, 1, calls["first"])
	assert.Equal(t, 1, calls["second"], "removed mid-dispatch still receives the in-flight event")
	assert.Equal(t, 0, calls["late"], "added mid-dispatch does not receive the in-flight event")

	require.NoError(t, PublishPayload(context.Background(), bus, "modal.closed", struct{}{}, "test"))
	assert.Equal(t, 1, calls["second"])
	assert.Equal(t, 1, calls["late"])
}

func TestBus_HandlerFailuresAreIsolated(t *testing.T) {
	var reported []error
	bus := NewBus(WithErrorHandler(func(_ any, err error) {
		reported = append(reported, err)
	}))

	boom := errors.New("boom")
	reached := false

	_, err := bus.SubscribeFunc("order.submit", func(context.Context, any) error {
		return boom
	})
	require.NoError(t, err)
	_, err = bus.SubscribeFunc("order.submit", func(context.Context, any) error {
		panic("bad handler")
	})
	require.NoError(t, err)
	_, err = bus.SubscribeFunc("order.submit", func(context.Context, any) error {
		reached = true
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, PublishPayload(context.Background(), bus, "order.submit", struct{}{}, "test"))

	assert.True(t, reached)
	require.Len(t, reported, 2)
	assert.ErrorIs(t, reported[0], boom)

	var herr *HandlerError
	require.ErrorAs(t, reported[0], &herr)
	assert.Equal(t, "order.submit", herr.Topic)

	assert.ErrorIs(t, reported[1], ErrHandlerPanic)
	var perr *PanicError
	require.ErrorAs(t, reported[1], &perr)
	assert.Equal(t, "bad handler", perr.Value)
	assert.NotEmpty(t, perr.Stack)

	stats := bus.Stats()
	assert.Equal(t, uint64(1), stats.EventsPublished)
	assert.Equal(t, uint64(1), stats.EventsDelivered)
	assert.Equal(t, uint64(1), stats.HandlerErrors)
	assert.Equal(t, uint64(1), stats.HandlerPanics)
	assert.Equal(t, 3, stats.ActiveSubscribers)
}

func TestSubscribePayload_SkipsOtherPayloadTypes(t *testing.T) {
	bus := NewBus()
	var got []int

	_, err := SubscribePayload(bus, "catalog.changed", func(_ context.Context, p testPayload) error {
		got = append(got, p.Value)
		return nil
	})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, PublishPayload(ctx, bus, "catalog.changed", testPayload{Value: 7}, "test"))
	require.NoError(t, PublishPayload(ctx, bus, "catalog.changed", "not a payload", "test"))

	assert.Equal(t, []int{7}, got)
}

func TestBus_PausedSubscriptionIsSkipped(t *testing.T) {
	bus := NewBus()
	count := 0

	sub, err := bus.SubscribeFunc("basket.opened", func(context.Context, any) error {
		count++
		return nil
	})
	require.NoError(t, err)

	sub.Pause()
	require.NoError(t, PublishPayload(context.Background(), bus, "basket.opened", struct{}{}, "test"))
	assert.Equal(t, 0, count)
	assert.Equal(t, SubscriptionStatePaused, sub.State())

	sub.Resume()
	require.NoError(t, PublishPayload(context.Background(), bus, "basket.opened", struct{}{}, "test"))
	assert.Equal(t, 1, count)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	sub, err := bus.SubscribeFunc("success.closed", func(context.Context, any) error { return nil })
	require.NoError(t, err)

	require.NoError(t, bus.Unsubscribe(sub))
	assert.Equal(t, SubscriptionStateCancelled, sub.State())
	assert.ErrorIs(t, bus.Unsubscribe(sub), ErrSubscriptionNotFound)
	assert.ErrorIs(t, bus.Unsubscribe(nil), ErrInvalidSubscription)
	assert.Equal(t, 0, bus.Stats().ActiveSubscribers)
}

func TestBus_RejectsInvalidInput(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	_, err := bus.Subscribe("basket.changed", nil)
	assert.ErrorIs(t, err, ErrNilHandler)

	_, err = bus.SubscribeFunc("basket..changed", func(context.Context, any) error { return nil })
	assert.ErrorIs(t, err, ErrInvalidTopic)

	assert.ErrorIs(t, bus.Publish(ctx, "no topic"), ErrInvalidEvent)
	assert.ErrorIs(t, bus.Publish(ctx, NewEvent[int]("basket.*", 1, "test")), ErrInvalidEvent)
}

func TestBus_Close(t *testing.T) {
	bus := NewBus()
	sub, err := bus.SubscribeFunc("catalog.failed", func(context.Context, any) error { return nil })
	require.NoError(t, err)

	bus.Close()
	bus.Close()

	assert.Equal(t, SubscriptionStateCancelled, sub.State())
	assert.ErrorIs(t, PublishPayload(context.Background(), bus, "catalog.failed", 1, "test"), ErrBusClosed)

	_, err = bus.SubscribeFunc("catalog.failed", func(context.Context, any) error { return nil })
	assert.ErrorIs(t, err, ErrBusClosed)
}

func TestNewEvent_Metadata(t *testing.T) {
	ev := NewEvent(topic.Topic("order.completed"), testPayload{Value: 1}, "app")

	assert.Equal(t, topic.Topic("order.completed"), ev.EventTopic())
	assert.Equal(t, "app", ev.EventMetadata().Source)
	assert.NotEmpty(t, ev.Metadata.ID)
	assert.False(t, ev.Metadata.Timestamp.IsZero())

	other := NewEvent(topic.Topic("order.completed"), testPayload{}, "app")
	assert.NotEqual(t, ev.Metadata.ID, other.Metadata.ID)
}
