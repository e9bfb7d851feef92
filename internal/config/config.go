package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	LogLevel    string `validate:"oneof=debug info warn warning error DEBUG INFO WARN ERROR"`
	LogFormat   string `validate:"oneof=json text"`
	LogDir      string
	Environment string
	Version     string
	ServiceName string

	// Upstream providers
	PriceAPIURL  string `validate:"required,url"`
	ItemAPIURL   string `validate:"required,url"`
	SearchAPIURL string `validate:"required,url"`
	NameAPIURL   string `validate:"required,url"`

	SearchTimeout time.Duration `validate:"gt=0"`
	LookupTimeout time.Duration `validate:"gt=0"`

	// Resolution tuning
	RecipeDepth     int     `validate:"min=0,max=4"`
	MaxSearchPages  int     `validate:"min=1,max=20"`
	NameConcurrency int     `validate:"min=1"`
	UpstreamRPS     float64 `validate:"gt=0"`
	UpstreamBurst   int     `validate:"min=1"`
	CacheTTL        time.Duration
	CacheSize       int `validate:"min=1"`

	// Initial app state
	DefaultServer     string
	DefaultDatacenter string
	DefaultLanguage   string `validate:"oneof=auto en ja de fr"`
}

var configValidator = validator.New()

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:          getEnv(EnvLogLevel, DefaultLogLevel),
		LogFormat:         getEnv(EnvLogFormat, DefaultLogFormat),
		LogDir:            getEnv(EnvLogDir, DefaultLogDir),
		Environment:       getEnv(EnvEnvironment, DefaultEnvironment),
		Version:           getEnv(EnvVersion, DefaultVersion),
		ServiceName:       "xiv-market",
		PriceAPIURL:       getEnv(EnvPriceAPIURL, DefaultPriceAPIURL),
		ItemAPIURL:        getEnv(EnvItemAPIURL, DefaultItemAPIURL),
		SearchAPIURL:      getEnv(EnvSearchAPIURL, DefaultSearchAPIURL),
		DefaultServer:     getEnv(EnvDefaultServer, ""),
		DefaultDatacenter: getEnv(EnvDefaultDatacenter, DefaultDatacenter),
		DefaultLanguage:   getEnv(EnvDefaultLanguage, DefaultLanguage),
	}

	cfg.NameAPIURL = getEnv(EnvNameAPIURL, cfg.SearchAPIURL)

	var err error
	if cfg.Port, err = parseInt(EnvPort, DefaultPort); err != nil {
		return nil, err
	}
	if cfg.RecipeDepth, err = parseInt(EnvRecipeDepth, DefaultRecipeDepth); err != nil {
		return nil, err
	}
	if cfg.MaxSearchPages, err = parseInt(EnvMaxSearchPages, DefaultMaxSearchPages); err != nil {
		return nil, err
	}
	if cfg.NameConcurrency, err = parseInt(EnvNameConcurrency, DefaultNameConcurrency); err != nil {
		return nil, err
	}
	if cfg.UpstreamBurst, err = parseInt(EnvUpstreamBurst, DefaultUpstreamBurst); err != nil {
		return nil, err
	}
	if cfg.CacheSize, err = parseInt(EnvCacheSize, DefaultCacheSize); err != nil {
		return nil, err
	}
	if cfg.SearchTimeout, err = parseDuration(EnvSearchTimeout, DefaultSearchTimeout); err != nil {
		return nil, err
	}
	if cfg.LookupTimeout, err = parseDuration(EnvLookupTimeout, DefaultLookupTimeout); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = parseDuration(EnvCacheTTL, DefaultCacheTTL); err != nil {
		return nil, err
	}

	rps := getEnv(EnvUpstreamRPS, "")
	cfg.UpstreamRPS = DefaultUpstreamRPS
	if rps != "" {
		if cfg.UpstreamRPS, err = strconv.ParseFloat(rps, 64); err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", EnvUpstreamRPS, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt returns the integer value of key, or defaultValue when unset or invalid
func getEnvAsInt(key string, defaultValue int) int {
	v, err := parseInt(key, defaultValue)
	if err != nil {
		return defaultValue
	}
	return v
}

func parseInt(key string, defaultValue int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// parseDuration accepts Go durations ("12s") or a bare number of seconds
func parseDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue, nil
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}
