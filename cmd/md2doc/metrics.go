package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// metrics holds the conversion collectors exposed on /metrics.
type metrics struct {
	conversions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// newMetrics registers the collectors on reg, along with the Go runtime
// and process collectors.
func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "md2doc_conversions_total",
				Help: "Conversions by format, producing tier and outcome.",
			},
			[]string{"format", "tier", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "md2doc_conversion_duration_seconds",
				Help:    "Wall time of conversions, including every attempted tier.",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"format"},
		),
	}
	reg.MustRegister(
		m.conversions,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// observe records one conversion. tier is empty on failure.
func (m *metrics) observe(format, tier string, err error, elapsed time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
		tier = "none"
	}
	m.conversions.WithLabelValues(format, tier, status).Inc()
	m.duration.WithLabelValues(format).Observe(elapsed.Seconds())
}
