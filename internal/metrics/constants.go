package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Upstream provider metric names
const (
	MetricNameUpstreamRequestsTotal   = "upstream_requests_total"
	MetricNameUpstreamRequestDuration = "upstream_request_duration_seconds"
	MetricNameCacheLookupsTotal       = "cache_lookups_total"
)

// Lookup metric names
const (
	MetricNameSearchesTotal        = "searches_total"
	MetricNameSearchBackendResults = "search_backend_results"
	MetricNameResolutionsTotal     = "recipe_resolutions_total"
	MetricNameEnrichmentDuration   = "recipe_enrichment_duration_seconds"
	MetricNameStaleResultsTotal    = "stale_results_discarded_total"
	MetricNamePriceDegradedTotal   = "price_degraded_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextUpstreamRequestsTotal   = "Total number of upstream provider calls by outcome"
	HelpTextUpstreamRequestDuration = "Upstream provider call latency in seconds"
	HelpTextCacheLookupsTotal       = "Provider cache lookups by result"

	HelpTextSearchesTotal        = "Total number of item searches by outcome"
	HelpTextSearchBackendResults = "Number of records returned per search backend call"
	HelpTextResolutionsTotal     = "Total number of recipe cost resolutions by outcome"
	HelpTextEnrichmentDuration   = "Time spent resolving sub-recipes after the top level was ready"
	HelpTextStaleResultsTotal    = "Results discarded because a newer request superseded them"
	HelpTextPriceDegradedTotal   = "Price lookups that degraded to no market data"
)

// ============================================================================
// Labels
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelProvider  = "provider"
	LabelOutcome   = "outcome"
	LabelBackend   = "backend"
	LabelCache     = "cache"
	LabelResult    = "result"
	LabelOperation = "operation"
)

// Outcome label values
const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeTimeout  = "timeout"
	OutcomeNotFound = "not_found"
	OutcomePartial  = "partial"
	OutcomeRecipe   = "recipe"
	OutcomeNoRecipe = "no_recipe"

	CacheHit  = "hit"
	CacheMiss = "miss"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// UpstreamLatencyBuckets covers provider calls up to the search timeout
var UpstreamLatencyBuckets = []float64{.05, .1, .25, .5, 1, 2, 4, 8, 12, 15}

// ResultCountBuckets covers page-capped search result sizes
var ResultCountBuckets = []float64{0, 1, 5, 10, 25, 50, 100, 250, 500}
