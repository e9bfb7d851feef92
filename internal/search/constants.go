package search

import "time"

// ============================================================================
// Backends
// ============================================================================

const (
	// BackendPrimary is the localized full-text service for the primary locale
	BackendPrimary = "primary"

	// BackendSecondary is the generic game-data search service
	BackendSecondary = "secondary"
)

const (
	PriorityPrimary   = 100
	PrioritySecondary = 10
)

// MaxPages is the hard cap on pages fetched by a paged backend
const MaxPages = 5

// DefaultBackendTimeout bounds one backend's whole search, pagination included
const DefaultBackendTimeout = 15 * time.Second

// ============================================================================
// Wire format
// ============================================================================

const (
	PathPagedSearch  = "/api/search"
	PathSingleSearch = "/search"

	QueryParamQuery    = "q"
	QueryParamPage     = "page"
	QueryParamLocale   = "lang"

	QueryParamString   = "string"
	QueryParamIndexes  = "indexes"
	QueryParamLanguage = "language"
	QueryParamColumns  = "columns"
	QueryParamLimit    = "limit"
	IndexItem          = "Item"
	SingleSearchLimit  = "100"
	SingleSearchColumn = "ID,Name,Icon,LevelItem,Rarity,ClassJobCategory.Name,ItemSearchCategory.Name"
)

// CategoryAll selects every category in FilterByCategory
const CategoryAll = "all"

// ============================================================================
// Log messages
// ============================================================================

const (
	LogMsgSearchStarted    = "Search started"
	LogMsgSearchCompleted  = "Search completed"
	LogMsgBackendFailed    = "Search backend failed"
	LogMsgPartialFailure   = "Search returned partial results"
	LogMsgPageFailed       = "Search page failed, keeping earlier pages"
	LogMsgRecordDropped    = "Dropped unparseable search record"
	LogMsgUnknownShape     = "Search response matched no parser strategy"
	LogMsgStaleSearch      = "Discarding superseded search results"
	LogMsgNoBackendForLang = "No search backend supports language"
)

// ============================================================================
// Error / warning messages
// ============================================================================

const (
	ErrMsgBackendFmt   = "%s search failed: %w"
	ErrMsgNoBackendFmt = "no search backend supports language %q: %w"
	ErrMsgEmptyQuery   = "search query is empty"
	WarnMsgBackendFmt  = "%s search unavailable: %s"
	WarnMsgBackendTimeout ="%s search timed out"
)
