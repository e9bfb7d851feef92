package bootstrap

import (
	"log/slog"
	"strings"

	"github.com/osse101/XIVMarket_Go/internal/appstate"
	"github.com/osse101/XIVMarket_Go/internal/config"
	"github.com/osse101/XIVMarket_Go/internal/crafting"
	"github.com/osse101/XIVMarket_Go/internal/item"
	"github.com/osse101/XIVMarket_Go/internal/naming"
	"github.com/osse101/XIVMarket_Go/internal/price"
	"github.com/osse101/XIVMarket_Go/internal/search"
	"github.com/osse101/XIVMarket_Go/internal/upstream"
)

// Services is the wired provider and engine graph shared by the server and CLI
type Services struct {
	State    *appstate.State
	Prices   price.Provider
	Items    item.Provider
	Names    naming.Resolver
	Search   search.Service
	Crafting crafting.Service
}

// BuildServices creates one rate-limited client per upstream and wires the
// providers, search backends and the cost resolver on top of them.
func BuildServices(cfg *config.Config) *Services {
	newClient := func(provider, baseURL string, searchCall bool) *upstream.Client {
		timeout := cfg.LookupTimeout
		if searchCall {
			timeout = cfg.SearchTimeout
		}
		return upstream.NewClient(upstream.Options{
			Provider: provider,
			BaseURL:  baseURL,
			Timeout:  timeout,
			RPS:      cfg.UpstreamRPS,
			Burst:    cfg.UpstreamBurst,
		})
	}

	state := appstate.New(appstate.Snapshot{
		Server:     cfg.DefaultServer,
		Datacenter: cfg.DefaultDatacenter,
		Language:   appstate.ParseLanguage(cfg.DefaultLanguage),
	})

	prices := price.NewService(newClient(price.ProviderName, cfg.PriceAPIURL, false), cfg.CacheTTL)
	items := item.NewService(newClient(item.ProviderName, cfg.ItemAPIURL, false), item.CacheConfig{
		Size: cfg.CacheSize,
		TTL:  cfg.CacheTTL,
	})
	names := naming.NewResolver(newClient(naming.ProviderName, cfg.NameAPIURL, false), naming.Options{
		Concurrency: cfg.NameConcurrency,
		CacheSize:   cfg.CacheSize,
		CacheTTL:    cfg.CacheTTL,
	})

	aggregator := search.NewAggregator(search.Options{
		Timeout: cfg.SearchTimeout,
		State:   state,
		Names:   names,
	},
		search.NewPagedBackend(newClient(ClientNameSearchPrimary, cfg.SearchAPIURL, true), cfg.MaxSearchPages),
		search.NewSingleShotBackend(newClient(ClientNameSearchSecondary, cfg.ItemAPIURL, true)),
	)

	resolver := crafting.NewService(crafting.Deps{
		Items:  items,
		Prices: prices,
		Names:  names,
		State:  state,
	}, crafting.Config{
		Depth: crafting.ExplicitDepth(cfg.RecipeDepth),
	})

	slog.Info(LogMsgServicesReady,
		"server", cfg.DefaultServer,
		"datacenter", cfg.DefaultDatacenter,
		"language", strings.ToLower(cfg.DefaultLanguage))

	return &Services{
		State:    state,
		Prices:   prices,
		Items:    items,
		Names:    names,
		Search:   aggregator,
		Crafting: resolver,
	}
}
