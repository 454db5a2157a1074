package fetch

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes used as the "outcome" label.
const (
	outcomeOK           = "ok"
	outcomeNotFound     = "not_found"
	outcomeServerError  = "server_error"
	outcomeClientError  = "client_error"
	outcomeNetworkError = "network_error"
	outcomeTooLarge     = "too_large"
)

// Metrics holds the transport counters. A nil *Metrics records nothing.
type Metrics struct {
	requests  *prometheus.CounterVec
	duration  prometheus.Histogram
	bytes     prometheus.Counter
	cacheHits prometheus.Counter
	retries   prometheus.Counter
}

// NewMetrics registers the transport metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "neocc",
			Subsystem: "fetch",
			Name:      "requests_total",
			Help:      "HTTP requests sent to the portal, by outcome.",
		}, []string{"outcome"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "neocc",
			Subsystem: "fetch",
			Name:      "request_duration_seconds",
			Help:      "Time to first byte plus body download.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		bytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: "neocc",
			Subsystem: "fetch",
			Name:      "response_bytes_total",
			Help:      "Bytes of accepted response bodies.",
		}),
		cacheHits: f.NewCounter(prometheus.CounterOpts{
			Namespace: "neocc",
			Subsystem: "fetch",
			Name:      "cache_hits_total",
			Help:      "Documents served from the local cache.",
		}),
		retries: f.NewCounter(prometheus.CounterOpts{
			Namespace: "neocc",
			Subsystem: "query",
			Name:      "retries_total",
			Help:      "Queries retried after a transient server error.",
		}),
	}
}

func outcomeFor(code int) string {
	switch {
	case code == http.StatusNotFound:
		return outcomeNotFound
	case code >= 500:
		return outcomeServerError
	default:
		return outcomeClientError
	}
}

func (m *Metrics) observe(outcome string, elapsed time.Duration, size int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
	if size > 0 && outcome == outcomeOK {
		m.bytes.Add(float64(size))
	}
}

func (m *Metrics) cacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

// Retry records one retried query.
func (m *Metrics) Retry() {
	if m == nil {
		return
	}
	m.retries.Inc()
}

// WriteTextfile writes every metric gathered by g to path in the
// node_exporter textfile format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
