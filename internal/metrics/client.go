// Package metrics instruments the API client transport with Prometheus
// collectors. Each client owns a private registry: the CLI makes a single
// request per run, so nothing is exported over HTTP; the gathered values are
// only surfaced in debug output.
package metrics

import (
	"net/http"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	requestsMetric = "devkit_client_requests_total"
	durationMetric = "devkit_client_request_duration_seconds"
	inFlightMetric = "devkit_client_requests_in_flight"
)

// ClientMetrics holds the collectors for one API client.
type ClientMetrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// RequestSummary aggregates completed requests per method and status code.
type RequestSummary struct {
	Method  string
	Code    string
	Count   uint64
	Seconds float64
}

// NewClientMetrics creates collectors registered in a fresh registry.
func NewClientMetrics() *ClientMetrics {
	m := &ClientMetrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: requestsMetric,
				Help: "Total number of API requests by status code and method",
			},
			[]string{"code", "method"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    durationMetric,
				Help:    "Duration of API requests in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"code", "method"},
		),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: inFlightMetric,
			Help: "Number of API requests currently in flight",
		}),
	}
	m.registry.MustRegister(m.requests, m.duration, m.inFlight)
	return m
}

// Registry exposes the underlying registry.
func (m *ClientMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// InstrumentRoundTripper wraps next so every request is counted and timed.
func (m *ClientMetrics) InstrumentRoundTripper(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperInFlight(m.inFlight,
		promhttp.InstrumentRoundTripperCounter(m.requests,
			promhttp.InstrumentRoundTripperDuration(m.duration, next),
		),
	)
}

// Summary gathers the registry into per method/code totals, sorted by
// method then code. Requests that failed at the transport level are not
// counted by promhttp and therefore never appear here.
func (m *ClientMetrics) Summary() ([]RequestSummary, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}

	byKey := map[string]*RequestSummary{}
	get := func(method, code string) *RequestSummary {
		key := method + " " + code
		s, ok := byKey[key]
		if !ok {
			s = &RequestSummary{Method: method, Code: code}
			byKey[key] = s
		}
		return s
	}

	for _, mf := range families {
		switch mf.GetName() {
		case requestsMetric:
			for _, metric := range mf.GetMetric() {
				method, code := labels(metric.GetLabel())
				get(method, code).Count = uint64(metric.GetCounter().GetValue())
			}
		case durationMetric:
			for _, metric := range mf.GetMetric() {
				method, code := labels(metric.GetLabel())
				get(method, code).Seconds = metric.GetHistogram().GetSampleSum()
			}
		}
	}

	out := make([]RequestSummary, 0, len(byKey))
	for _, s := range byKey {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Method != out[j].Method {
			return out[i].Method < out[j].Method
		}
		return out[i].Code < out[j].Code
	})
	return out, nil
}

type labelPair interface {
	GetName() string
	GetValue() string
}

func labels[L labelPair](pairs []L) (method, code string) {
	for _, lp := range pairs {
		switch lp.GetName() {
		case "method":
			method = strings.ToUpper(lp.GetValue())
		case "code":
			code = lp.GetValue()
		}
	}
	return method, code
}
