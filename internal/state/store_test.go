package state

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/storefront/internal/event"
	"github.com/dshills/storefront/internal/event/events"
	"github.com/dshills/storefront/internal/event/topic"
	"github.com/dshills/storefront/internal/shop"
	"github.com/dshills/storefront/internal/validate"
)

// recorder collects every event published on a bus.
type recorder struct {
	topics []topic.Topic
	events []any
}

func newTestStore(t *testing.T) (*Store, *recorder) {
	t.Helper()
	bus := event.NewBus()
	rec := &recorder{}
	_, err := bus.SubscribeFunc("**", func(_ context.Context, ev any) error {
		rec.topics = append(rec.topics, ev.(event.TopicProvider).EventTopic())
		rec.events = append(rec.events, ev)
		return nil
	})
	require.NoError(t, err)
	return New(bus), rec
}

func (r *recorder) count(t topic.Topic) int {
	n := 0
	for _, got := range r.topics {
		if got == t {
			n++
		}
	}
	return n
}

func (r *recorder) lastErrors(form events.Form) shop.FormErrors {
	for i := len(r.events) - 1; i >= 0; i-- {
		if ev, ok := r.events[i].(event.Event[events.ErrorsChanged]); ok && ev.Payload.Form == form {
			return ev.Payload.Errors
		}
	}
	return nil
}

func product(id string, price int64) shop.Product {
	return shop.Product{ID: id, Title: "Product " + id, Price: shop.PriceFromInt(price)}
}

func TestStore_AddToBasketIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, rec := newTestStore(t)

	require.NoError(t, s.AddToBasket(ctx, product("a", 100)))
	require.NoError(t, s.AddToBasket(ctx, product("a", 100)))

	assert.Equal(t, 1, s.BasketCount())
	assert.True(t, s.InBasket("a"))
	assert.Equal(t, 2, rec.count(events.TopicBasketChanged))
}

func TestStore_RemoveMissingStillPublishes(t *testing.T) {
	ctx := context.Background()
	s, rec := newTestStore(t)

	require.NoError(t, s.RemoveFromBasket(ctx, "missing"))

	assert.Equal(t, 0, s.BasketCount())
	assert.Equal(t, 1, rec.count(events.TopicBasketChanged))
}

func TestStore_TotalTracksBasket(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	free := shop.Product{ID: "free", Price: shop.Priceless}
	steps := []func(){
		func() { require.NoError(t, s.AddToBasket(ctx, product("a", 100))) },
		func() { require.NoError(t, s.AddToBasket(ctx, product("b", 250))) },
		func() { require.NoError(t, s.AddToBasket(ctx, free)) },
		func() { require.NoError(t, s.RemoveFromBasket(ctx, "a")) },
		func() { require.NoError(t, s.AddToBasket(ctx, product("c", 5))) },
		func() { require.NoError(t, s.ClearBasket(ctx)) },
	}

	for i, step := range steps {
		step()
		want := decimal.Zero
		for _, p := range s.Basket() {
			want = want.Add(p.Price.Amount())
		}
		assert.True(t, want.Equal(s.Total()), "step %d: want %s got %s", i, want, s.Total())
	}
}

func TestStore_BasketKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, s.AddToBasket(ctx, product(id, 1)))
	}
	require.NoError(t, s.RemoveFromBasket(ctx, "a"))

	var ids []string
	for _, p := range s.Basket() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"c", "b"}, ids)
}

func TestStore_ClearBasketResetsOrder(t *testing.T) {
	ctx := context.Background()
	s, rec := newTestStore(t)

	require.NoError(t, s.AddToBasket(ctx, product("a", 100)))
	require.NoError(t, s.SetPayment(ctx, shop.PaymentCash))
	require.NoError(t, s.SetAddress(ctx, ""))
	require.NoError(t, s.SetEmail(ctx, "bad"))
	require.NoError(t, s.SetPhone(ctx, "+12345678901"))
	s.PrepareOrderForSubmission()
	require.NotEmpty(t, s.DeliveryErrors())
	require.NotEmpty(t, s.ContactErrors())

	before := rec.count(events.TopicBasketChanged)
	require.NoError(t, s.ClearBasket(ctx))

	order := s.Order()
	assert.Equal(t, shop.PaymentCard, order.Payment)
	assert.Empty(t, order.Email)
	assert.Empty(t, order.Phone)
	assert.Empty(t, order.Address)
	assert.Empty(t, order.Items)
	assert.True(t, order.Total.IsZero())
	assert.Empty(t, s.DeliveryErrors())
	assert.Empty(t, s.ContactErrors())
	assert.Equal(t, 0, s.BasketCount())
	assert.Equal(t, before+1, rec.count(events.TopicBasketChanged))
}

func TestStore_ContactValidation(t *testing.T) {
	ctx := context.Background()
	s, rec := newTestStore(t)

	require.NoError(t, s.SetEmail(ctx, "a@b.co"))
	assert.Equal(t, shop.FormErrors{shop.FieldPhone: validate.MsgPhoneRequired}, s.ContactErrors())

	require.NoError(t, s.SetPhone(ctx, "+12345678901"))
	assert.Empty(t, s.ContactErrors())
	assert.Equal(t, shop.FormErrors{}, rec.lastErrors(events.FormContacts))

	require.NoError(t, s.SetEmail(ctx, "bad"))
	assert.Equal(t, shop.FormErrors{shop.FieldEmail: validate.MsgEmailFormat}, s.ContactErrors())

	require.NoError(t, s.SetEmail(ctx, "a@b.co"))
	require.NoError(t, s.SetPhone(ctx, "123"))
	assert.Equal(t, shop.FormErrors{shop.FieldPhone: validate.MsgPhoneFormat}, rec.lastErrors(events.FormContacts))
	assert.Equal(t, 5, rec.count(events.TopicContactsErrorsChanged))
	assert.Equal(t, 0, rec.count(events.TopicDeliveryErrorsChanged))
}

func TestStore_DeliveryValidation(t *testing.T) {
	ctx := context.Background()
	s, rec := newTestStore(t)

	require.NoError(t, s.SetPayment(ctx, shop.PaymentCash))
	assert.Equal(t, shop.FormErrors{shop.FieldAddress: validate.MsgAddressRequired}, s.DeliveryErrors())

	require.NoError(t, s.SetAddress(ctx, "1 Main St"))
	assert.Empty(t, s.DeliveryErrors())
	assert.Equal(t, shop.FormErrors{}, rec.lastErrors(events.FormDelivery))
	assert.Equal(t, 0, rec.count(events.TopicContactsErrorsChanged))
}

func TestStore_SetPaymentTwicePublishesTwice(t *testing.T) {
	ctx := context.Background()
	s, rec := newTestStore(t)

	require.NoError(t, s.SetPayment(ctx, shop.PaymentCash))
	require.NoError(t, s.SetPayment(ctx, shop.PaymentCash))

	assert.Equal(t, shop.PaymentCash, s.Order().Payment)
	assert.Equal(t, 2, rec.count(events.TopicDeliveryErrorsChanged))
}

func TestStore_SetField(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.SetField(ctx, shop.FieldPayment, "cash"))
	require.NoError(t, s.SetField(ctx, shop.FieldAddress, "Elm St"))
	require.NoError(t, s.SetField(ctx, shop.FieldEmail, "a@b.co"))
	require.NoError(t, s.SetField(ctx, shop.FieldPhone, "+12345678901"))

	order := s.Order()
	assert.Equal(t, shop.PaymentCash, order.Payment)
	assert.Equal(t, "Elm St", order.Address)
	assert.Equal(t, "a@b.co", order.Email)
	assert.Equal(t, "+12345678901", order.Phone)

	assert.ErrorIs(t, s.SetField(ctx, shop.Field("total"), "1"), shop.ErrUnknownField)
	assert.ErrorIs(t, s.SetField(ctx, shop.FieldPayment, "crypto"), shop.ErrInvalidPayment)
	assert.Equal(t, shop.PaymentCash, s.Order().Payment)
}

func TestStore_PrepareOrderForSubmission(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.AddToBasket(ctx, product("x", 300)))
	require.NoError(t, s.AddToBasket(ctx, product("y", 200)))
	require.NoError(t, s.SetAddress(ctx, "1 Main St"))
	require.NoError(t, s.SetEmail(ctx, "a@b.co"))

	order := s.PrepareOrderForSubmission()
	assert.Equal(t, []string{"x", "y"}, order.Items)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "1 Main St", order.Address)
	assert.Equal(t, "a@b.co", order.Email)
	assert.Equal(t, shop.PaymentCard, order.Payment)

	order.Items[0] = "mutated"
	assert.Equal(t, "x", s.Order().Items[0])
}

func TestStore_SetCatalog(t *testing.T) {
	ctx := context.Background()
	s, rec := newTestStore(t)

	products := []shop.Product{product("a", 1), product("b", 2)}
	require.NoError(t, s.SetCatalog(ctx, products))
	products[0].Title = "mutated"

	assert.Equal(t, "Product a", s.Catalog()[0].Title)
	got, ok := s.Product("b")
	require.True(t, ok)
	assert.Equal(t, "b", got.ID)
	_, ok = s.Product("zzz")
	assert.False(t, ok)

	require.Equal(t, 1, rec.count(events.TopicCatalogChanged))
	ev := rec.events[0].(event.Event[events.CatalogChanged])
	assert.Len(t, ev.Payload.Products, 2)
}

func TestStore_SetPreview(t *testing.T) {
	ctx := context.Background()
	s, rec := newTestStore(t)

	p := product("a", 1)
	require.NoError(t, s.SetPreview(ctx, &p))
	got, ok := s.Preview()
	require.True(t, ok)
	assert.Equal(t, "a", got.ID)

	require.NoError(t, s.SetPreview(ctx, nil))
	_, ok = s.Preview()
	assert.False(t, ok)

	require.Equal(t, 2, rec.count(events.TopicPreviewChanged))
	first := rec.events[0].(event.Event[events.PreviewChanged])
	require.NotNil(t, first.Payload.Product)
	assert.Equal(t, "a", first.Payload.Product.ID)
	second := rec.events[1].(event.Event[events.PreviewChanged])
	assert.Nil(t, second.Payload.Product)
}

func TestStore_ResetOrderPublishesNothing(t *testing.T) {
	s, rec := newTestStore(t)

	s.ResetOrder()

	assert.Empty(t, rec.topics)
	assert.Equal(t, shop.NewOrder(), s.Order())
}
