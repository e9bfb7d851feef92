package naming

import "time"

// ============================================================================
// Provider
// ============================================================================

// ProviderName labels metrics and logs for the name service
const ProviderName = "names"

// PathItemNameFmt is the name service lookup path; the locale travels as ?lang=
const PathItemNameFmt = "/api/items/%d"

// QueryParamLang carries the BCP 47 locale tag
const QueryParamLang = "lang"

// ============================================================================
// Defaults
// ============================================================================

const (
	// DefaultConcurrency bounds in-flight lookups per ResolveAll call
	DefaultConcurrency = 8

	DefaultCacheSize = 4096
	DefaultCacheTTL  = 30 * time.Minute
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgResolveFailed   = "Name resolution failed, using provider name"
	LogMsgNoStrategyMatch = "Name response matched no parser strategy"
	LogMsgResolveAll      = "Resolving ingredient names"
	LogMsgResolved        = "Name resolved"
)
