package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	backfillTotal    *prometheus.CounterVec
	backfillDuration *prometheus.HistogramVec
	backfillInFlight prometheus.Gauge
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	backfillTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assistant",
			Subsystem: "worker",
			Name:      "summary_backfill_total",
			Help:      "Total summary backfill attempts by status.",
		},
		[]string{"service", "status"},
	)
	backfillDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "assistant",
			Subsystem: "worker",
			Name:      "summary_backfill_duration_seconds",
			Help:      "Summary backfill duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	backfillInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "assistant",
			Subsystem: "worker",
			Name:      "summary_backfill_in_flight",
			Help:      "Number of in-flight summary backfills.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	registry.MustRegister(backfillTotal, backfillDuration, backfillInFlight)

	return &WorkerMetrics{
		registry:         registry,
		backfillTotal:    backfillTotal,
		backfillDuration: backfillDuration,
		backfillInFlight: backfillInFlight,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartBackfill() {
	m.backfillInFlight.Inc()
}

func (m *WorkerMetrics) FinishBackfill(service string, duration time.Duration, err error) {
	m.backfillInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.backfillTotal.WithLabelValues(service, status).Inc()
	m.backfillDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}
