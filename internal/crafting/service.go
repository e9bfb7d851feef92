// Package crafting resolves an item into a costed recipe tree.
//
// Resolution is two-phase: Resolve returns as soon as the top-level recipe
// is costed, and the sub-recipe enrichment completes in the background.
// Every resolution carries a generation token; an enrichment that finishes
// after a newer resolution started is discarded.
package crafting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/XIVMarket_Go/internal/appstate"
	"github.com/osse101/XIVMarket_Go/internal/domain"
	"github.com/osse101/XIVMarket_Go/internal/item"
	"github.com/osse101/XIVMarket_Go/internal/logger"
	"github.com/osse101/XIVMarket_Go/internal/metrics"
	"github.com/osse101/XIVMarket_Go/internal/naming"
	"github.com/osse101/XIVMarket_Go/internal/price"
)

// Options selects what to resolve against. Zero values are taken from the app state snapshot.
type Options struct {
	Server   string
	Language domain.Language
	// Depth is the number of sub-recipe levels to expand. 0 uses the configured default,
	// TopLevelOnly disables expansion.
	Depth int
}

// Overview is an item's detail with its current market quote.
type Overview struct {
	Item   domain.Item        `json:"item"`
	Price  *domain.PriceQuote `json:"price,omitempty"`
	Server string             `json:"server,omitempty"`
}

// Service defines the crafting cost operations
type Service interface {
	// Resolve returns after the top-level recipe is costed.
	Resolve(ctx context.Context, itemID int, opts Options) (*Resolution, error)
	// ResolveTree blocks until the whole tree is resolved.
	ResolveTree(ctx context.Context, itemID int, opts Options) (*domain.Resolution, error)
	Overview(ctx context.Context, itemID int, opts Options) (*Overview, error)
}

// Deps are the providers a resolver reads from. Names and State are optional.
type Deps struct {
	Items  item.Provider
	Prices price.Provider
	Names  naming.Resolver
	State  *appstate.State
}

// Config tunes a resolver
type Config struct {
	Depth         int
	Concurrency   int
	EnrichTimeout time.Duration
}

type service struct {
	items  item.Provider
	prices price.Provider
	names  naming.Resolver
	state  *appstate.State

	depth         int
	concurrency   int
	enrichTimeout time.Duration
}

// NewService creates a resolver. cfg.Depth follows the Options.Depth convention.
func NewService(deps Deps, cfg Config) Service {
	switch {
	case cfg.Depth == 0:
		cfg.Depth = DefaultDepth
	case cfg.Depth < 0:
		cfg.Depth = 0
	case cfg.Depth > MaxDepth:
		cfg.Depth = MaxDepth
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.EnrichTimeout <= 0 {
		cfg.EnrichTimeout = DefaultEnrichTimeout
	}
	state := deps.State
	if state == nil {
		state = appstate.New(appstate.Snapshot{})
	}
	return &service{
		items:         deps.Items,
		prices:        deps.Prices,
		names:         deps.Names,
		state:         state,
		depth:         cfg.Depth,
		concurrency:   cfg.Concurrency,
		enrichTimeout: cfg.EnrichTimeout,
	}
}

// request is the per-call view of Options after the snapshot is applied.
type request struct {
	server string
	lang   domain.Language
	depth  int
}

func (s *service) request(opts Options) request {
	snap := s.state.Snapshot()
	r := request{server: opts.Server, lang: opts.Language, depth: opts.Depth}
	if r.server == "" {
		r.server = snap.Server
	}
	if r.lang == "" {
		r.lang = snap.Language
	}
	switch {
	case r.depth == 0:
		r.depth = s.depth
	case r.depth < 0:
		r.depth = 0
	case r.depth > MaxDepth:
		r.depth = MaxDepth
	}
	return r
}

// ExplicitDepth maps a user-supplied depth where 0 means "no expansion" onto Options.Depth.
func ExplicitDepth(n int) int {
	if n <= 0 {
		return TopLevelOnly
	}
	return n
}

// Resolve costs the top-level recipe and starts enrichment in the background.
// Enrichment outlives ctx's cancellation but not the resolver's enrich timeout.
func (s *service) Resolve(ctx context.Context, itemID int, opts Options) (*Resolution, error) {
	if itemID <= 0 {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidItemID, domain.ErrInvalidInput)
	}
	req := s.request(opts)
	gen := s.state.Generations.Next(appstate.KindResolve)
	ctx = logger.WithGeneration(ctx, gen)
	log := logger.FromContext(ctx)
	log.Info(LogMsgResolveStarted, "itemID", itemID, "server", req.server, "language", req.lang, "depth", req.depth)

	top, err := s.resolveTop(ctx, itemID, req)
	if err != nil {
		metrics.ResolutionsTotal.WithLabelValues(outcomeLabel(err)).Inc()
		return nil, err
	}
	top.Generation = gen
	metrics.ResolutionsTotal.WithLabelValues(string(top.Kind)).Inc()

	res := newResolution(top)
	if top.Kind == domain.OutcomeNoRecipe || req.depth == 0 || len(top.Recipe.Ingredients) == 0 {
		res.complete(markEnriched(top), nil)
		return res, nil
	}
	log.Info(LogMsgTopLevelReady, "itemID", itemID, "total", top.Recipe.TotalCost, "ingredients", len(top.Recipe.Ingredients))

	ectx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.enrichTimeout)
	go func() {
		defer cancel()
		start := time.Now()
		enriched := cloneResolution(top)
		s.enrich(ectx, enriched.Recipe, req, req.depth, map[int]bool{itemID: true})
		enriched.Enriched = true
		metrics.EnrichmentDuration.Observe(time.Since(start).Seconds())

		if latest := s.state.Generations.Current(appstate.KindResolve); latest != gen {
			log.Info(LogMsgStaleEnrichment, "itemID", itemID, "latest", latest)
			metrics.StaleResultsTotal.WithLabelValues(StaleOperation).Inc()
			res.complete(nil, fmt.Errorf(ErrMsgStaleGeneration, gen, latest, domain.ErrStaleGeneration))
			return
		}
		log.Info(LogMsgEnriched, "itemID", itemID, "duration", time.Since(start))
		res.complete(enriched, nil)
	}()
	return res, nil
}

// ResolveTree resolves synchronously. It is not subject to generation tokens.
func (s *service) ResolveTree(ctx context.Context, itemID int, opts Options) (*domain.Resolution, error) {
	if itemID <= 0 {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidItemID, domain.ErrInvalidInput)
	}
	req := s.request(opts)
	top, err := s.resolveTop(ctx, itemID, req)
	if err != nil {
		metrics.ResolutionsTotal.WithLabelValues(outcomeLabel(err)).Inc()
		return nil, err
	}
	metrics.ResolutionsTotal.WithLabelValues(string(top.Kind)).Inc()
	if top.Kind == domain.OutcomeRecipe && req.depth > 0 {
		s.enrich(ctx, top.Recipe, req, req.depth, map[int]bool{itemID: true})
	}
	top.Enriched = true
	return top, nil
}

// Overview returns the item and, when a server is selected, its market quote.
// A failed price lookup leaves Price nil.
func (s *service) Overview(ctx context.Context, itemID int, opts Options) (*Overview, error) {
	if itemID <= 0 {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidItemID, domain.ErrInvalidInput)
	}
	req := s.request(opts)
	it, err := s.item(ctx, itemID, req.lang)
	if err != nil {
		return nil, err
	}
	return &Overview{Item: *it, Price: price.SafePrice(ctx, s.prices, itemID, req.server), Server: req.server}, nil
}

// resolveTop runs steps one to three for the requested item.
func (s *service) resolveTop(ctx context.Context, itemID int, req request) (*domain.Resolution, error) {
	it, err := s.item(ctx, itemID, req.lang)
	if err != nil {
		return nil, err
	}

	cost, err := s.costRecipe(ctx, it, req)
	if errors.Is(err, domain.ErrNoRecipe) {
		logger.FromContext(ctx).Info(LogMsgNoRecipe, "itemID", itemID, "reason", err)
		return &domain.Resolution{
			Kind:  domain.OutcomeNoRecipe,
			Item:  *it,
			Price: price.SafePrice(ctx, s.prices, itemID, req.server),
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.Resolution{Kind: domain.OutcomeRecipe, Item: *it, Recipe: cost}, nil
}

// item fetches the item and localizes its name when the language needs it.
func (s *service) item(ctx context.Context, itemID int, lang domain.Language) (*domain.Item, error) {
	it, err := s.items.GetItem(ctx, itemID, lang)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetItemFmt, itemID, err)
	}
	if s.names != nil && lang.NeedsTranslation() {
		if name, ok := s.names.ResolveName(ctx, itemID, lang); ok {
			it.Name = name
		}
	}
	return it, nil
}

func outcomeLabel(err error) string {
	switch {
	case domain.IsTimeout(err):
		return metrics.OutcomeTimeout
	case errors.Is(err, domain.ErrItemNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
