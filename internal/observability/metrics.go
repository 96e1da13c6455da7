package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RentalsStarted   = promauto.NewCounter(prometheus.CounterOpts{Namespace: "scootrapid", Name: "rentals_started_total", Help: "Total rentals started"})
	RentalsCompleted = promauto.NewCounter(prometheus.CounterOpts{Namespace: "scootrapid", Name: "rentals_completed_total", Help: "Total rentals completed"})
	RentalsCancelled = promauto.NewCounter(prometheus.CounterOpts{Namespace: "scootrapid", Name: "rentals_cancelled_total", Help: "Total rentals cancelled"})
	RentalsOverdue   = promauto.NewCounter(prometheus.CounterOpts{Namespace: "scootrapid", Name: "rentals_overdue_total", Help: "Total rentals flagged overdue by the sweep"})

	ScootersAvailable = promauto.NewGauge(prometheus.GaugeOpts{Namespace: "scootrapid", Name: "scooters_available", Help: "Rentable scooters observed by the last availability query"})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "scootrapid", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "scootrapid",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
