// Package metrics exposes the prometheus counters tracked by the order core.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type OrderMetrics struct {
	OrdersCreated   prometheus.Counter
	OrdersCancelled prometheus.Counter
	OrdersModified  prometheus.Counter
	StockConflicts  prometheus.Counter
}

func NewOrderMetrics() *OrderMetrics {
	m := &OrderMetrics{
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "minishop",
			Name:      "orders_created_total",
			Help:      "Total number of orders created.",
		}),
		OrdersCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "minishop",
			Name:      "orders_cancelled_total",
			Help:      "Total number of orders cancelled.",
		}),
		OrdersModified: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "minishop",
			Name:      "orders_modified_total",
			Help:      "Total number of order modifications.",
		}),
		StockConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "minishop",
			Name:      "stock_conflicts_total",
			Help:      "Operations rejected because requested quantity exceeded stock.",
		}),
	}
	prometheus.MustRegister(m.OrdersCreated, m.OrdersCancelled, m.OrdersModified, m.StockConflicts)
	return m
}

// The Inc helpers are nil-safe so services can run without metrics in tests.

func (m *OrderMetrics) IncCreated() {
	if m != nil {
		m.OrdersCreated.Inc()
	}
}

func (m *OrderMetrics) IncCancelled() {
	if m != nil {
		m.OrdersCancelled.Inc()
	}
}

func (m *OrderMetrics) IncModified() {
	if m != nil {
		m.OrdersModified.Inc()
	}
}

func (m *OrderMetrics) IncStockConflict() {
	if m != nil {
		m.StockConflicts.Inc()
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
