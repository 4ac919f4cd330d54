package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dshills/storefront/internal/event"
	"github.com/dshills/storefront/internal/event/events"
)

const metricsNamespace = "storefront"

// Metrics counts storefront activity in a private Prometheus registry.
type Metrics struct {
	registry *prometheus.Registry

	basketMutations *prometheus.CounterVec
	basketItems     prometheus.Gauge
	catalogLoads    *prometheus.CounterVec
	orders          *prometheus.CounterVec
	handlerFailures *prometheus.CounterVec

	basketCount func() int
}

// NewMetrics creates the collectors. basketCount is read on basket.changed.
func NewMetrics(basketCount func() int) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		basketMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "basket",
			Name:      "mutations_total",
			Help:      "Basket add and remove intents.",
		}, []string{"op"}),
		basketItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "basket",
			Name:      "items",
			Help:      "Products currently in the basket.",
		}),
		catalogLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "catalog",
			Name:      "loads_total",
			Help:      "Catalog loads by result.",
		}, []string{"result"}),
		orders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "orders",
			Name:      "submitted_total",
			Help:      "Order submissions by result.",
		}, []string{"result"}),
		handlerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "bus",
			Name:      "handler_failures_total",
			Help:      "Event handlers that returned an error or panicked.",
		}, []string{"kind"}),
		basketCount: basketCount,
	}

	m.registry.MustRegister(
		m.basketMutations,
		m.basketItems,
		m.catalogLoads,
		m.orders,
		m.handlerFailures,
		prometheus.NewGoCollector(),
	)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe subscribes the counters to the bus.
func (m *Metrics) Observe(bus event.Bus) ([]event.Subscription, error) {
	var subs []event.Subscription
	add := func(sub event.Subscription, err error) error {
		if err != nil {
			return err
		}
		subs = append(subs, sub)
		return nil
	}

	err := errors.Join(
		add(event.SubscribePayload(bus, events.TopicProductAdded, func(context.Context, events.ProductAdded) error {
			m.basketMutations.WithLabelValues("add").Inc()
			return nil
		})),
		add(event.SubscribePayload(bus, events.TopicProductRemoved, func(context.Context, events.ProductRemoved) error {
			m.basketMutations.WithLabelValues("remove").Inc()
			return nil
		})),
		add(event.SubscribePayload(bus, events.TopicBasketChanged, func(context.Context, events.BasketChanged) error {
			if m.basketCount != nil {
				m.basketItems.Set(float64(m.basketCount()))
			}
			return nil
		})),
		add(event.SubscribePayload(bus, events.TopicCatalogChanged, func(context.Context, events.CatalogChanged) error {
			m.catalogLoads.WithLabelValues("ok").Inc()
			return nil
		})),
		add(event.SubscribePayload(bus, events.TopicCatalogFailed, func(context.Context, events.CatalogFailed) error {
			m.catalogLoads.WithLabelValues("error").Inc()
			return nil
		})),
		add(event.SubscribePayload(bus, events.TopicOrderCompleted, func(context.Context, events.OrderCompleted) error {
			m.orders.WithLabelValues("ok").Inc()
			return nil
		})),
		add(event.SubscribePayload(bus, events.TopicOrderFailed, func(context.Context, events.OrderFailed) error {
			m.orders.WithLabelValues("error").Inc()
			return nil
		})),
	)
	if err != nil {
		for _, sub := range subs {
			_ = bus.Unsubscribe(sub)
		}
		return nil, err
	}
	return subs, nil
}

// HandlerFailed counts a bus handler failure.
func (m *Metrics) HandlerFailed(err error) {
	kind := "error"
	if errors.Is(err, event.ErrHandlerPanic) {
		kind = "panic"
	}
	m.handlerFailures.WithLabelValues(kind).Inc()
}

// Handler returns an HTTP handler exposing the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled. It returns once
// the listener is bound.
func (m *Metrics) Serve(ctx context.Context, addr string, log *zap.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return &InitError{Component: "metrics server", Err: err}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("metrics listening", zap.String("addr", ln.Addr().String()))
	return nil
}
