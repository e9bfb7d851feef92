package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Upstream Metrics
var (
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUpstreamRequestsTotal,
			Help: HelpTextUpstreamRequestsTotal,
		},
		[]string{LabelProvider, LabelOutcome},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameUpstreamRequestDuration,
			Help:    HelpTextUpstreamRequestDuration,
			Buckets: UpstreamLatencyBuckets,
		},
		[]string{LabelProvider},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCacheLookupsTotal,
			Help: HelpTextCacheLookupsTotal,
		},
		[]string{LabelCache, LabelResult},
	)
)

// Lookup Metrics
var (
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSearchesTotal,
			Help: HelpTextSearchesTotal,
		},
		[]string{LabelOutcome},
	)

	SearchBackendResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameSearchBackendResults,
			Help:    HelpTextSearchBackendResults,
			Buckets: ResultCountBuckets,
		},
		[]string{LabelBackend},
	)

	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameResolutionsTotal,
			Help: HelpTextResolutionsTotal,
		},
		[]string{LabelOutcome},
	)

	EnrichmentDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameEnrichmentDuration,
			Help:    HelpTextEnrichmentDuration,
			Buckets: UpstreamLatencyBuckets,
		},
	)

	StaleResultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStaleResultsTotal,
			Help: HelpTextStaleResultsTotal,
		},
		[]string{LabelOperation},
	)

	PriceDegradedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePriceDegradedTotal,
			Help: HelpTextPriceDegradedTotal,
		},
	)
)
