package item

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/tidwall/gjson"

	"github.com/osse101/XIVMarket_Go/internal/domain"
	"github.com/osse101/XIVMarket_Go/internal/logger"
	"github.com/osse101/XIVMarket_Go/internal/metrics"
	"github.com/osse101/XIVMarket_Go/internal/upstream"
)

// Provider is the item and recipe metadata contract.
type Provider interface {
	// GetItem fails with domain.ErrItemNotFound when the id is unknown.
	GetItem(ctx context.Context, itemID int, lang domain.Language) (*domain.Item, error)
	// GetRecipesForItem keeps provider order; an empty slice means the item is not craftable.
	GetRecipesForItem(ctx context.Context, itemID int) ([]domain.RecipeSummary, error)
	GetRecipeDetail(ctx context.Context, recipeID int, lang domain.Language) (*domain.RecipeDetail, error)
}

// CacheConfig sizes the provider caches
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

type service struct {
	client *upstream.Client

	items   *expirable.LRU[string, domain.Item]
	recipes *expirable.LRU[int, []domain.RecipeSummary]
	details *expirable.LRU[string, domain.RecipeDetail]
}

// NewService creates an item provider backed by client.
func NewService(client *upstream.Client, cfg CacheConfig) Provider {
	if cfg.Size <= 0 {
		cfg.Size = DefaultCacheSize
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultCacheTTL
	}
	return &service{
		client:  client,
		items:   expirable.NewLRU[string, domain.Item](cfg.Size, nil, cfg.TTL),
		recipes: expirable.NewLRU[int, []domain.RecipeSummary](cfg.Size, nil, cfg.TTL),
		details: expirable.NewLRU[string, domain.RecipeDetail](cfg.Size, nil, cfg.TTL),
	}
}

func cacheKey(id int, lang domain.Language) string {
	return strconv.Itoa(id) + ":" + lang.ProviderCode()
}

func (s *service) GetItem(ctx context.Context, itemID int, lang domain.Language) (*domain.Item, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgGetItemCalled, "itemID", itemID, "lang", lang)

	key := cacheKey(itemID, lang)
	if it, ok := s.items.Get(key); ok {
		metrics.CacheLookupsTotal.WithLabelValues(cacheNameItems, metrics.CacheHit).Inc()
		return &it, nil
	}
	metrics.CacheLookupsTotal.WithLabelValues(cacheNameItems, metrics.CacheMiss).Inc()

	body, err := s.client.GetRaw(ctx, fmt.Sprintf(PathItemFmt, itemID), nil)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetItemFmt, itemID, err)
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf(ErrMsgGetItemFmt, itemID, domain.ErrMalformedResponse)
	}

	it := parseItem(body, lang)
	if it.ID <= 0 {
		return nil, fmt.Errorf(ErrMsgGetItemFmt, itemID, fmt.Errorf(ErrMsgMissingIDFmt, itemID, domain.ErrItemNotFound))
	}
	s.items.Add(key, it)
	return &it, nil
}

func (s *service) GetRecipesForItem(ctx context.Context, itemID int) ([]domain.RecipeSummary, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgGetRecipesCalled, "itemID", itemID)

	if list, ok := s.recipes.Get(itemID); ok {
		metrics.CacheLookupsTotal.WithLabelValues(cacheNameRecipes, metrics.CacheHit).Inc()
		return append([]domain.RecipeSummary(nil), list...), nil
	}
	metrics.CacheLookupsTotal.WithLabelValues(cacheNameRecipes, metrics.CacheMiss).Inc()

	query := url.Values{
		"indexes": {RecipeIndex},
		"filters": {fmt.Sprintf(RecipeFilterFmt, itemID)},
		"columns": {RecipeSearchColumns},
	}
	body, err := s.client.GetRaw(ctx, PathSearch, query)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetRecipesFmt, itemID, err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf(ErrMsgGetRecipesFmt, itemID, domain.ErrMalformedResponse)
	}

	list := parseRecipeList(body, itemID)
	if len(list) == 0 {
		log.Info(LogMsgRecipeListEmpty, "itemID", itemID)
	}
	s.recipes.Add(itemID, list)
	return append([]domain.RecipeSummary(nil), list...), nil
}

func (s *service) GetRecipeDetail(ctx context.Context, recipeID int, lang domain.Language) (*domain.RecipeDetail, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgGetDetailCalled, "recipeID", recipeID, "lang", lang)

	key := cacheKey(recipeID, lang)
	if d, ok := s.details.Get(key); ok {
		metrics.CacheLookupsTotal.WithLabelValues(cacheNameDetails, metrics.CacheHit).Inc()
		return &d, nil
	}
	metrics.CacheLookupsTotal.WithLabelValues(cacheNameDetails, metrics.CacheMiss).Inc()

	body, err := s.client.GetRaw(ctx, fmt.Sprintf(PathRecipeFmt, recipeID), nil)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetDetailFmt, recipeID, err)
	}

	d := parseRecipeDetail(body, lang)
	if d.ID <= 0 {
		return nil, fmt.Errorf(ErrMsgGetDetailFmt, recipeID, fmt.Errorf(ErrMsgMissingIDFmt, recipeID, domain.ErrMalformedResponse))
	}
	s.details.Add(key, d)
	return &d, nil
}
