package config

import "time"

// Environment variable names
const (
	EnvPort              = "PORT"
	EnvLogLevel          = "LOG_LEVEL"
	EnvLogFormat         = "LOG_FORMAT"
	EnvLogDir            = "LOG_DIR"
	EnvEnvironment       = "ENVIRONMENT"
	EnvVersion           = "VERSION"
	EnvPriceAPIURL       = "PRICE_API_URL"
	EnvItemAPIURL        = "ITEM_API_URL"
	EnvSearchAPIURL      = "SEARCH_API_URL"
	EnvNameAPIURL        = "NAME_API_URL"
	EnvSearchTimeout     = "SEARCH_TIMEOUT"
	EnvLookupTimeout     = "LOOKUP_TIMEOUT"
	EnvRecipeDepth       = "RECIPE_DEPTH"
	EnvMaxSearchPages    = "MAX_SEARCH_PAGES"
	EnvNameConcurrency   = "NAME_CONCURRENCY"
	EnvUpstreamRPS       = "UPSTREAM_RPS"
	EnvUpstreamBurst     = "UPSTREAM_BURST"
	EnvCacheTTL          = "CACHE_TTL"
	EnvCacheSize         = "CACHE_SIZE"
	EnvDefaultServer     = "DEFAULT_SERVER"
	EnvDefaultDatacenter = "DEFAULT_DATACENTER"
	EnvDefaultLanguage   = "DEFAULT_LANGUAGE"
	EnvSchemaVersion     = "ENV_SCHEMA_VERSION"
)

// Defaults
const (
	DefaultPort            = 8080
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultLogDir          = "logs"
	DefaultEnvironment     = "dev"
	DefaultVersion         = "dev"
	DefaultPriceAPIURL     = "https://universalis.app"
	DefaultItemAPIURL      = "https://xivapi.com"
	DefaultSearchAPIURL    = "http://localhost:8787"
	DefaultSearchTimeout   = 15 * time.Second
	DefaultLookupTimeout   = 10 * time.Second
	DefaultRecipeDepth     = 1
	DefaultMaxSearchPages  = 5
	DefaultNameConcurrency = 8
	DefaultUpstreamRPS     = 10.0
	DefaultUpstreamBurst   = 20
	DefaultCacheTTL        = 10 * time.Minute
	DefaultCacheSize       = 2048
	DefaultDatacenter      = "陸行鳥"
	DefaultLanguage        = "auto"
)
