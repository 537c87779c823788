package query

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records query activity. A nil *Metrics records nothing.
type Metrics struct {
	Fetches       *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec
	CacheLookups  *prometheus.CounterVec
}

// NewMetrics registers the query metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Fetches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "supporthub_query_fetches_total",
			Help: "Remote fetches per query, by outcome",
		}, []string{"query", "outcome"}),
		FetchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "supporthub_query_fetch_duration_seconds",
			Help:    "Duration of remote fetches per query",
			Buckets: prometheus.DefBuckets,
		}, []string{"query"}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "supporthub_query_cache_lookups_total",
			Help: "Cache lookups per query, by result (hit, stale, miss)",
		}, []string{"query", "result"}),
	}
}

func (m *Metrics) fetched(query, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.Fetches.WithLabelValues(query, outcome).Inc()
	m.FetchDuration.WithLabelValues(query).Observe(seconds)
}

func (m *Metrics) lookup(query, result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(query, result).Inc()
}
