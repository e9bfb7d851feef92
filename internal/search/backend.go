package search

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/osse101/XIVMarket_Go/internal/domain"
	"github.com/osse101/XIVMarket_Go/internal/logger"
	"github.com/osse101/XIVMarket_Go/internal/metrics"
	"github.com/osse101/XIVMarket_Go/internal/upstream"
)

// Backend is one item-search source.
type Backend interface {
	Name() string
	// Priority decides merge order; the higher value wins on id conflicts.
	Priority() int
	Supports(lang domain.Language) bool
	Search(ctx context.Context, query string, lang domain.Language) ([]domain.ItemSummary, error)
}

// PagedBackend pages through the primary localized full-text service.
type PagedBackend struct {
	client   *upstream.Client
	maxPages int
}

// NewPagedBackend creates the primary backend. maxPages is clamped to [1, MaxPages].
func NewPagedBackend(client *upstream.Client, maxPages int) *PagedBackend {
	if maxPages <= 0 || maxPages > MaxPages {
		maxPages = MaxPages
	}
	return &PagedBackend{client: client, maxPages: maxPages}
}

func (b *PagedBackend) Name() string  { return BackendPrimary }
func (b *PagedBackend) Priority() int { return PriorityPrimary }

// Supports reports true only for the primary locale.
func (b *PagedBackend) Supports(lang domain.Language) bool { return lang.IsPrimary() }

// Search fetches pages until one comes back empty or the page cap is hit.
// A failure after the first page keeps what was already accumulated.
func (b *PagedBackend) Search(ctx context.Context, query string, lang domain.Language) ([]domain.ItemSummary, error) {
	log := logger.FromContext(ctx)

	seen := make(map[int]struct{})
	var out []domain.ItemSummary

	for page := 0; page < b.maxPages; page++ {
		q := url.Values{}
		q.Set(QueryParamQuery, query)
		q.Set(QueryParamPage, strconv.Itoa(page))
		q.Set(QueryParamLocale, domain.PrimaryLocaleTag)

		items, err := b.fetch(ctx, q, lang)
		if err != nil {
			if page == 0 {
				return nil, fmt.Errorf(ErrMsgBackendFmt, b.Name(), err)
			}
			log.Warn(LogMsgPageFailed, "backend", b.Name(), "page", page, "error", err)
			break
		}
		if len(items) == 0 {
			break
		}
		for _, it := range items {
			if _, dup := seen[it.ID]; dup {
				continue
			}
			seen[it.ID] = struct{}{}
			out = append(out, it)
		}
	}

	metrics.SearchBackendResults.WithLabelValues(b.Name()).Observe(float64(len(out)))
	return out, nil
}

func (b *PagedBackend) fetch(ctx context.Context, q url.Values, lang domain.Language) ([]domain.ItemSummary, error) {
	body, err := b.client.GetRaw(ctx, PathPagedSearch, q)
	if err != nil {
		return nil, err
	}
	return decode(ctx, body, lang, b.Name())
}

// SingleShotBackend queries the generic game-data search index once.
type SingleShotBackend struct {
	client *upstream.Client
}

// NewSingleShotBackend creates the secondary backend.
func NewSingleShotBackend(client *upstream.Client) *SingleShotBackend {
	return &SingleShotBackend{client: client}
}

func (b *SingleShotBackend) Name() string  { return BackendSecondary }
func (b *SingleShotBackend) Priority() int { return PrioritySecondary }

// Supports reports true for every language; the primary locale is served with English names.
func (b *SingleShotBackend) Supports(domain.Language) bool { return true }

func (b *SingleShotBackend) Search(ctx context.Context, query string, lang domain.Language) ([]domain.ItemSummary, error) {
	q := url.Values{}
	q.Set(QueryParamString, query)
	q.Set(QueryParamIndexes, IndexItem)
	q.Set(QueryParamLanguage, lang.ProviderCode())
	q.Set(QueryParamColumns, SingleSearchColumn)
	q.Set(QueryParamLimit, SingleSearchLimit)

	body, err := b.client.GetRaw(ctx, PathSingleSearch, q)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBackendFmt, b.Name(), err)
	}
	items, err := decode(ctx, body, lang, b.Name())
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBackendFmt, b.Name(), err)
	}
	metrics.SearchBackendResults.WithLabelValues(b.Name()).Observe(float64(len(items)))
	return dedup(items), nil
}

func decode(ctx context.Context, body []byte, lang domain.Language, source string) ([]domain.ItemSummary, error) {
	log := logger.FromContext(ctx)

	res, ok := parseResults(body, lang, source)
	if !ok {
		log.Warn(LogMsgUnknownShape, "backend", source, "bytes", len(body))
		return nil, domain.ErrMalformedResponse
	}
	if res.dropped > 0 {
		log.Debug(LogMsgRecordDropped, "backend", source, "shape", res.shape, "dropped", res.dropped)
	}
	return res.items, nil
}

func dedup(items []domain.ItemSummary) []domain.ItemSummary {
	seen := make(map[int]struct{}, len(items))
	out := items[:0]
	for _, it := range items {
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	return out
}
