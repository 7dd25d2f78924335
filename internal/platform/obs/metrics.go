package obs

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the service's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	geocodeResolutions *prometheus.CounterVec
	routeResolutions   *prometheus.CounterVec
	providerRequests   *prometheus.CounterVec
	estimateDuration   prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		geocodeResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "freight_geocode_resolutions_total",
			Help: "Location resolutions by the strategy that produced them.",
		}, []string{"strategy"}),
		routeResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "freight_route_resolutions_total",
			Help: "Route resolutions by source (provider or fallback).",
		}, []string{"source"}),
		providerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "freight_provider_requests_total",
			Help: "Outbound map provider calls by provider and outcome.",
		}, []string{"provider", "outcome"}),
		estimateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "freight_estimate_duration_seconds",
			Help:    "End-to-end estimate latency.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}),
	}

	reg.MustRegister(m.geocodeResolutions, m.routeResolutions, m.providerRequests, m.estimateDuration)
	return m
}

func (m *Metrics) GeocodeResolved(strategy string) {
	if m == nil {
		return
	}
	m.geocodeResolutions.WithLabelValues(strategy).Inc()
}

func (m *Metrics) RouteResolved(source string) {
	if m == nil {
		return
	}
	m.routeResolutions.WithLabelValues(source).Inc()
}

func (m *Metrics) ProviderRequest(provider, outcome string) {
	if m == nil {
		return
	}
	m.providerRequests.WithLabelValues(provider, outcome).Inc()
}

func (m *Metrics) ObserveEstimate(seconds float64) {
	if m == nil {
		return
	}
	m.estimateDuration.Observe(seconds)
}
