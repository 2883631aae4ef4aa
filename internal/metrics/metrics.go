// Package metrics defines the Prometheus instrumentation surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all Prometheus metrics for the API.
type Registry struct {
	// HTTP metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Business metrics
	RegistrationsTotal    prometheus.Counter
	ClubDecisionsTotal    prometheus.CounterVec
	ReportGenerationTotal prometheus.CounterVec
	ReportGenDuration     prometheus.Histogram
}

// NewRegistry initializes and returns a Registry with all metrics registered
// on the default gatherer.
func NewRegistry() *Registry {
	return &Registry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clubsphere_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "clubsphere_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "clubsphere_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		RegistrationsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "clubsphere_event_registrations_total",
				Help: "Total event registrations created",
			},
		),
		ClubDecisionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clubsphere_club_decisions_total",
				Help: "Total club approval decisions by outcome",
			},
			[]string{"outcome"},
		),
		ReportGenerationTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clubsphere_report_generation_total",
				Help: "Total event report generation attempts by result",
			},
			[]string{"result"},
		),
		ReportGenDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "clubsphere_report_generation_duration_seconds",
				Help:    "Event report generation time in seconds",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
		),
	}
}
