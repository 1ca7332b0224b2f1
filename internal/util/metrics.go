package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CartAddsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_adds_total",
		Help: "Total number of add-to-cart operations applied",
	})

	CartQtyChangesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_qty_changes_total",
		Help: "Total number of line quantity changes applied",
	})

	CartRemovalsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_removals_total",
		Help: "Total number of line items removed from the cart",
	})

	CartClearsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_clears_total",
		Help: "Total number of explicit cart clears",
	})

	CartSaveFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_save_failures_total",
		Help: "Total number of failed cart snapshot writes",
	})

	CatalogLoadFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_load_failures_total",
		Help: "Total number of failed catalog loads",
	})

	CheckoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkouts_total",
		Help: "Total number of successful checkouts",
	})

	CheckoutFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failures_total",
		Help: "Total number of rejected checkout attempts",
	}, []string{"reason"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
