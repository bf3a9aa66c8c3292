package tokenkey

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultSuccess = "success"
	resultError   = "error"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tokenkey_requests_total",
				Help: "Total number of token key requests",
			},
			[]string{"transport", "result"}, // result: success, error
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tokenkey_request_duration_seconds",
				Help:    "Duration of token key requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"transport", "result"},
		),
	}
	for _, c := range []prometheus.Collector{m.requests, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *metrics) observe(transport, result string, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(transport, result).Inc()
	m.duration.WithLabelValues(transport, result).Observe(d.Seconds())
}
