package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/storefront/internal/api"
	"github.com/dshills/storefront/internal/event"
	"github.com/dshills/storefront/internal/event/events"
	"github.com/dshills/storefront/internal/event/topic"
	"github.com/dshills/storefront/internal/shop"
	"github.com/dshills/storefront/internal/state"
)

// Stage is the checkout state machine position.
type Stage uint8

const (
	StageBrowsing Stage = iota
	StagePreviewing
	StageBasket
	StageDelivery
	StageContacts
	StageSubmitting
	StageSuccess
)

func (s Stage) String() string {
	switch s {
	case StageBrowsing:
		return "browsing"
	case StagePreviewing:
		return "previewing"
	case StageBasket:
		return "basket"
	case StageDelivery:
		return "delivery"
	case StageContacts:
		return "contacts"
	case StageSubmitting:
		return "submitting"
	case StageSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Modal titles.
const (
	titlePreview  = "Product"
	titleBasket   = "Basket"
	titleDelivery = "Delivery"
	titleContacts = "Contacts"
	titleSuccess  = "Order placed"
)

// ErrSubmissionPending is logged when a second submit arrives while one is
// in flight.
var ErrSubmissionPending = errors.New("order submission already pending")

// OrchestratorConfig holds the orchestrator's collaborators.
type OrchestratorConfig struct {
	Bus       event.Bus
	Store     *state.Store
	Views     *Views
	Catalog   api.CatalogSource
	Orders    api.OrderSink
	Scheduler Scheduler
	Logger    *zap.Logger
}

// Orchestrator connects intents to store mutations and store changes to
// view setters. It is the only component that references both.
type Orchestrator struct {
	bus    event.Bus
	store  *state.Store
	views  *Views
	source api.CatalogSource
	sink   api.OrderSink
	sched  Scheduler
	log    *zap.Logger

	// ctx outlives individual dispatches; background results publish on it.
	ctx  context.Context
	subs []event.Subscription

	stage      Stage
	submitting bool
}

// NewOrchestrator creates an orchestrator. Call Start to wire it.
func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	sched := cfg.Scheduler
	if sched == nil {
		sched = InlineScheduler{}
	}
	return &Orchestrator{
		bus:    cfg.Bus,
		store:  cfg.Store,
		views:  cfg.Views,
		source: cfg.Catalog,
		sink:   cfg.Orders,
		sched:  sched,
		log:    log.Named("orchestrator"),
		ctx:    context.Background(),
	}
}

// Stage returns the current checkout stage.
func (o *Orchestrator) Stage() Stage {
	return o.stage
}

// Submitting reports whether an order submission is in flight.
func (o *Orchestrator) Submitting() bool {
	return o.submitting
}

// enter moves to s. The stage stays StageSubmitting until the in-flight
// order resolves.
func (o *Orchestrator) enter(s Stage) {
	if o.submitting {
		s = StageSubmitting
	}
	o.stage = s
}

// Start registers every subscription. ctx is used for events published
// from background results and for in-flight requests.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.ctx = ctx

	wiring := []struct {
		pattern topic.Topic
		handler event.Handler
	}{
		{events.TopicCatalogChanged, event.AsHandler(o.onCatalogChanged)},
		{events.TopicCatalogFailed, event.AsHandler(o.onCatalogFailed)},
		{events.TopicCardSelected, event.AsHandler(o.onCardSelected)},
		{events.TopicPreviewChanged, event.AsHandler(o.onPreviewChanged)},
		{events.TopicProductAdded, event.AsHandler(o.onProductAdded)},
		{events.TopicProductRemoved, event.AsHandler(o.onProductRemoved)},
		{events.TopicBasketChanged, event.AsHandler(o.onBasketChanged)},
		{events.TopicBasketOpened, event.AsHandler(o.onBasketOpened)},
		{events.TopicOrderOpened, event.AsHandler(o.onOrderOpened)},
		{events.TopicDeliveryInputAll, event.AsHandler(o.onFieldChanged)},
		{events.TopicDeliveryErrorsChanged, event.AsHandler(o.onDeliveryErrors)},
		{events.TopicOrderSubmit, event.AsHandler(o.onOrderSubmit)},
		{events.TopicContactsInputAll, event.AsHandler(o.onFieldChanged)},
		{events.TopicContactsErrorsChanged, event.AsHandler(o.onContactsErrors)},
		{events.TopicContactsSubmit, event.AsHandler(o.onContactsSubmit)},
		{events.TopicOrderCompleted, event.AsHandler(o.onOrderCompleted)},
		{events.TopicOrderFailed, event.AsHandler(o.onOrderFailed)},
		{events.TopicSuccessClosed, event.AsHandler(o.onSuccessClosed)},
		{events.TopicModalOpened, event.AsHandler(o.onModalOpened)},
		{events.TopicModalClosed, event.AsHandler(o.onModalClosed)},
	}

	for _, w := range wiring {
		sub, err := o.bus.Subscribe(w.pattern, w.handler)
		if err != nil {
			o.Stop()
			return fmt.Errorf("subscribe %s: %w", w.pattern, err)
		}
		o.subs = append(o.subs, sub)
	}
	return nil
}

// Stop removes every subscription.
func (o *Orchestrator) Stop() {
	for _, sub := range o.subs {
		_ = o.bus.Unsubscribe(sub)
	}
	o.subs = nil
}

// LoadCatalog fetches the catalog in the background. The result arrives as
// catalog.changed (through the store) or catalog.failed.
func (o *Orchestrator) LoadCatalog() {
	o.sched.Go(func() {
		products, err := o.source.FetchProducts(o.ctx)
		o.sched.Post(func() {
			if err != nil {
				publishResult(o, events.TopicCatalogFailed, events.CatalogFailed{Err: err})
				return
			}
			if err := o.store.SetCatalog(o.ctx, products); err != nil {
				o.log.Error("set catalog", zap.Error(err))
			}
		})
	})
}

// publishResult re-publishes a background result from the event loop.
func publishResult[T any](o *Orchestrator, t topic.Topic, payload T) {
	if err := event.PublishPayload(o.ctx, o.bus, t, payload, "orchestrator"); err != nil {
		o.log.Error("publish", zap.Stringer("topic", t), zap.Error(err))
	}
}

func (o *Orchestrator) onCatalogChanged(_ context.Context, p events.CatalogChanged) error {
	o.views.Page.SetCatalog(p.Products)
	o.views.Page.SetCounter(o.store.BasketCount())
	o.views.Page.SetStatus("")
	o.log.Info("catalog loaded", zap.Int("products", len(p.Products)))
	return nil
}

func (o *Orchestrator) onCatalogFailed(_ context.Context, p events.CatalogFailed) error {
	o.views.Page.SetStatus("Catalog unavailable: " + p.Err.Error())
	o.log.Error("catalog load failed", zap.Error(NewOperationError("load catalog", "", p.Err)))
	return nil
}

func (o *Orchestrator) onCardSelected(ctx context.Context, p events.CardSelected) error {
	product := p.Product
	return o.store.SetPreview(ctx, &product)
}

func (o *Orchestrator) onPreviewChanged(ctx context.Context, p events.PreviewChanged) error {
	if p.Product == nil {
		return o.views.Modal.Close(ctx)
	}
	o.views.Preview.SetProduct(*p.Product)
	o.views.Preview.SetInBasket(o.store.InBasket(p.Product.ID))
	if err := o.views.Modal.Open(ctx, titlePreview, o.views.Preview); err != nil {
		return err
	}
	o.enter(StagePreviewing)
	return nil
}

func (o *Orchestrator) onProductAdded(ctx context.Context, p events.ProductAdded) error {
	if err := o.store.AddToBasket(ctx, p.Product); err != nil {
		return err
	}
	if p.Origin == events.OriginPreview {
		return o.views.Modal.Close(ctx)
	}
	return nil
}

func (o *Orchestrator) onProductRemoved(ctx context.Context, p events.ProductRemoved) error {
	if err := o.store.RemoveFromBasket(ctx, p.Product.ID); err != nil {
		return err
	}
	if p.Origin == events.OriginPreview {
		return o.views.Modal.Close(ctx)
	}
	return nil
}

func (o *Orchestrator) onBasketChanged(context.Context, events.BasketChanged) error {
	o.views.Page.SetCounter(o.store.BasketCount())
	o.views.Basket.SetItems(o.store.Basket())
	o.views.Basket.SetTotal(o.store.Total())
	if p, ok := o.store.Preview(); ok {
		o.views.Preview.SetInBasket(o.store.InBasket(p.ID))
	}
	return nil
}

func (o *Orchestrator) onBasketOpened(ctx context.Context, _ events.BasketOpened) error {
	o.views.Basket.SetItems(o.store.Basket())
	o.views.Basket.SetTotal(o.store.Total())
	if err := o.views.Modal.Open(ctx, titleBasket, o.views.Basket); err != nil {
		return err
	}
	o.enter(StageBasket)
	return nil
}

func (o *Orchestrator) onOrderOpened(ctx context.Context, _ events.OrderOpened) error {
	if err := o.store.SetPayment(ctx, shop.DefaultPayment); err != nil {
		return err
	}
	draft := o.store.Order()
	o.views.Delivery.SetPayment(draft.Payment)
	o.views.Delivery.SetAddress(draft.Address)
	o.views.Delivery.Reset()
	if err := o.views.Modal.Open(ctx, titleDelivery, o.views.Delivery); err != nil {
		return err
	}
	o.enter(StageDelivery)
	return nil
}

func (o *Orchestrator) onFieldChanged(ctx context.Context, p events.FieldChanged) error {
	return o.store.SetField(ctx, p.Field, p.Value)
}

func (o *Orchestrator) onDeliveryErrors(_ context.Context, p events.ErrorsChanged) error {
	o.views.Delivery.SetValid(p.Errors.Valid())
	o.views.Delivery.SetErrors(p.Errors.Join(shop.FieldPayment, shop.FieldAddress))
	return nil
}

func (o *Orchestrator) onOrderSubmit(ctx context.Context, _ events.OrderSubmit) error {
	if err := o.store.ValidateContacts(ctx); err != nil {
		return err
	}
	draft := o.store.Order()
	o.views.Contacts.SetEmail(draft.Email)
	o.views.Contacts.SetPhone(draft.Phone)
	o.views.Contacts.SetBusy(o.submitting)
	o.views.Contacts.Reset()
	if err := o.views.Modal.Open(ctx, titleContacts, o.views.Contacts); err != nil {
		return err
	}
	o.enter(StageContacts)
	return nil
}

func (o *Orchestrator) onContactsErrors(_ context.Context, p events.ErrorsChanged) error {
	o.views.Contacts.SetValid(p.Errors.Valid())
	o.views.Contacts.SetErrors(p.Errors.Join(shop.FieldPhone, shop.FieldEmail))
	return nil
}

func (o *Orchestrator) onContactsSubmit(context.Context, events.ContactsSubmit) error {
	if o.submitting {
		o.log.Warn("submit ignored", zap.Error(ErrSubmissionPending))
		return nil
	}
	o.submitting = true
	o.views.Contacts.SetBusy(true)
	o.stage = StageSubmitting

	order := o.store.PrepareOrderForSubmission()
	o.log.Info("submitting order",
		zap.Int("items", len(order.Items)),
		zap.Stringer("total", order.Total),
		zap.Stringer("payment", order.Payment))

	o.sched.Go(func() {
		result, err := o.sink.SubmitOrder(o.ctx, order)
		o.sched.Post(func() {
			if err != nil {
				publishResult(o, events.TopicOrderFailed, events.OrderFailed{Err: err})
				return
			}
			publishResult(o, events.TopicOrderCompleted, events.OrderCompleted{Result: result})
		})
	})
	return nil
}

func (o *Orchestrator) onOrderCompleted(ctx context.Context, p events.OrderCompleted) error {
	o.submitting = false
	o.log.Info("order placed", zap.String("id", p.Result.ID), zap.Stringer("total", p.Result.Total))

	o.views.Contacts.SetBusy(false)
	o.views.Success.SetTotal(p.Result.Total)
	if err := o.store.ClearBasket(ctx); err != nil {
		return err
	}

	draft := o.store.Order()
	o.views.Delivery.SetPayment(draft.Payment)
	o.views.Delivery.SetAddress(draft.Address)
	o.views.Delivery.SetValid(false)
	o.views.Delivery.SetErrors("")
	o.views.Contacts.SetEmail(draft.Email)
	o.views.Contacts.SetPhone(draft.Phone)
	o.views.Contacts.SetValid(false)
	o.views.Contacts.SetErrors("")

	if err := o.views.Modal.Open(ctx, titleSuccess, o.views.Success); err != nil {
		return err
	}
	o.stage = StageSuccess
	return nil
}

func (o *Orchestrator) onOrderFailed(_ context.Context, p events.OrderFailed) error {
	o.submitting = false
	o.log.Error("order failed", zap.Error(NewOperationError("submit order", "", p.Err)))

	o.views.Contacts.SetBusy(false)
	o.views.Contacts.SetErrors("Order failed: " + p.Err.Error())
	if o.views.Modal.IsOpen() && o.views.Modal.Content() == o.views.Contacts {
		o.stage = StageContacts
	} else {
		o.stage = StageBrowsing
	}
	return nil
}

func (o *Orchestrator) onSuccessClosed(ctx context.Context, _ events.SuccessClosed) error {
	if err := o.views.Modal.Close(ctx); err != nil {
		return err
	}
	o.stage = StageBrowsing
	return nil
}

func (o *Orchestrator) onModalOpened(context.Context, events.ModalOpened) error {
	o.views.Page.SetLocked(true)
	return nil
}

func (o *Orchestrator) onModalClosed(ctx context.Context, _ events.ModalClosed) error {
	o.views.Page.SetLocked(false)
	o.enter(StageBrowsing)
	if _, ok := o.store.Preview(); ok {
		return o.store.SetPreview(ctx, nil)
	}
	return nil
}
