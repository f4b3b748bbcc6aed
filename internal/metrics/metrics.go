package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the marketplace
type Metrics struct {
	registry *prometheus.Registry

	BidsSubmitted        *prometheus.CounterVec
	BidStatusChanges     *prometheus.CounterVec
	AuctionsCreated      prometheus.Counter
	DealsCreated         prometheus.Counter
	DealTransitions      *prometheus.CounterVec
	OperationFailures    *prometheus.CounterVec
	ReconciliationTasks  prometheus.Counter
	EventDeliveryFailure *prometheus.CounterVec
	RequestDuration      *prometheus.HistogramVec
}

// New creates the metrics on a private registry, so several instances can
// coexist in one process.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		BidsSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "diamond_exchange_bids_submitted_total",
			Help: "Bids accepted for processing, by target kind",
		}, []string{"target"}),
		BidStatusChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "diamond_exchange_bid_status_changes_total",
			Help: "Bid status transitions, by target kind and new status",
		}, []string{"target", "status"}),
		AuctionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "diamond_exchange_auctions_created_total",
			Help: "Auctions created",
		}),
		DealsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "diamond_exchange_deals_created_total",
			Help: "Deals materialized from accepted bids",
		}),
		DealTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "diamond_exchange_deal_transitions_total",
			Help: "Successful deal status transitions, by target status",
		}, []string{"status"}),
		OperationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "diamond_exchange_operation_failures_total",
			Help: "Failed engine operations, by operation and error code",
		}, []string{"operation", "code"}),
		ReconciliationTasks: factory.NewCounter(prometheus.CounterOpts{
			Name: "diamond_exchange_reconciliation_tasks_total",
			Help: "Compensations that could not be applied",
		}),
		EventDeliveryFailure: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "diamond_exchange_event_delivery_failures_total",
			Help: "Failed event deliveries, by publisher",
		}, []string{"publisher"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "diamond_exchange_http_request_duration_seconds",
			Help:    "HTTP request latency, by method, route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// Registry exposes the underlying registry for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Failure counts a failed operation. A nil receiver is a no-op so engines can
// run without metrics.
func (m *Metrics) Failure(operation, code string) {
	if m == nil {
		return
	}
	m.OperationFailures.WithLabelValues(operation, code).Inc()
}

// BidSubmitted counts a stored bid
func (m *Metrics) BidSubmitted(target string) {
	if m == nil {
		return
	}
	m.BidsSubmitted.WithLabelValues(target).Inc()
}

// BidStatusChanged counts a bid leaving SUBMITTED
func (m *Metrics) BidStatusChanged(target, status string) {
	if m == nil {
		return
	}
	m.BidStatusChanges.WithLabelValues(target, status).Inc()
}

// AuctionCreated counts a new auction
func (m *Metrics) AuctionCreated() {
	if m == nil {
		return
	}
	m.AuctionsCreated.Inc()
}

// DealCreated counts a new deal
func (m *Metrics) DealCreated() {
	if m == nil {
		return
	}
	m.DealsCreated.Inc()
}

// DealTransitioned counts a deal status change
func (m *Metrics) DealTransitioned(status string) {
	if m == nil {
		return
	}
	m.DealTransitions.WithLabelValues(status).Inc()
}

// ReconciliationRecorded counts a failed compensation
func (m *Metrics) ReconciliationRecorded() {
	if m == nil {
		return
	}
	m.ReconciliationTasks.Inc()
}

// DeliveryFailed counts a failed event delivery
func (m *Metrics) DeliveryFailed(publisher string) {
	if m == nil {
		return
	}
	m.EventDeliveryFailure.WithLabelValues(publisher).Inc()
}

// RequestObserved records one served HTTP request. route is the matched
// pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) RequestObserved(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
