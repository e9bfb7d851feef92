package naming

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/osse101/XIVMarket_Go/internal/domain"
	"github.com/osse101/XIVMarket_Go/internal/logger"
	"github.com/osse101/XIVMarket_Go/internal/upstream"
)

// Resolver maps item ids to localized display names.
type Resolver interface {
	// ResolveName returns false when no localized name could be found.
	ResolveName(ctx context.Context, itemID int, lang domain.Language) (string, bool)

	// ResolveAll resolves ids in parallel. Ids that fail keep their fallback name.
	ResolveAll(ctx context.Context, ids []int, lang domain.Language, fallback map[int]string) map[int]string

	// Register records a name already known to be localized (e.g. from a search hit).
	Register(itemID int, lang domain.Language, name string)
}

// Options configures a Resolver
type Options struct {
	Concurrency int
	CacheSize   int
	CacheTTL    time.Duration
}

type resolver struct {
	client      *upstream.Client
	concurrency int
	names       *expirable.LRU[string, string]
}

// NewResolver creates a resolver backed by the name service client.
func NewResolver(client *upstream.Client, opts Options) Resolver {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	return &resolver{
		client:      client,
		concurrency: opts.Concurrency,
		names:       expirable.NewLRU[string, string](opts.CacheSize, nil, opts.CacheTTL),
	}
}

// LocaleTag maps a display language to the locale tag sent to the name service.
func LocaleTag(lang domain.Language) language.Tag {
	if lang.IsPrimary() {
		return language.MustParse(domain.PrimaryLocaleTag)
	}
	tag, err := language.Parse(string(lang))
	if err != nil {
		return language.English
	}
	return tag
}

func nameKey(itemID int, lang domain.Language) string {
	return strconv.Itoa(itemID) + ":" + LocaleTag(lang).String()
}

func (r *resolver) Register(itemID int, lang domain.Language, name string) {
	if itemID <= 0 || name == "" {
		return
	}
	r.names.Add(nameKey(itemID, lang), name)
}

func (r *resolver) ResolveName(ctx context.Context, itemID int, lang domain.Language) (string, bool) {
	key := nameKey(itemID, lang)
	if name, ok := r.names.Get(key); ok {
		return name, true
	}

	tag := LocaleTag(lang)
	body, err := r.client.GetRaw(ctx, fmt.Sprintf(PathItemNameFmt, itemID), url.Values{QueryParamLang: {tag.String()}})
	if err != nil {
		logger.FromContext(ctx).Debug(LogMsgResolveFailed, "itemID", itemID, "lang", tag.String(), "error", err)
		return "", false
	}

	base, _ := tag.Base()
	name, strategyName, ok := extractName(body, base.String())
	if !ok {
		logger.FromContext(ctx).Warn(LogMsgNoStrategyMatch, "itemID", itemID, "lang", tag.String())
		return "", false
	}
	logger.FromContext(ctx).Debug(LogMsgResolved, "itemID", itemID, "strategy", strategyName)

	r.names.Add(key, name)
	return name, true
}

func (r *resolver) ResolveAll(ctx context.Context, ids []int, lang domain.Language, fallback map[int]string) map[int]string {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgResolveAll, "count", len(ids), "lang", lang)

	out := make(map[int]string, len(ids))
	for _, id := range ids {
		out[id] = fallback[id]
	}

	resolved := make([]string, len(ids))
	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			if name, ok := r.ResolveName(ctx, id, lang); ok {
				resolved[i] = name
			} else {
				log.Info(LogMsgResolveFailed, "itemID", id)
			}
			// individual failures never cancel siblings
			return nil
		})
	}
	_ = g.Wait()

	for i, id := range ids {
		if resolved[i] != "" {
			out[id] = resolved[i]
		}
	}
	return out
}
