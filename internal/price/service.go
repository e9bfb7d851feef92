package price

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/osse101/XIVMarket_Go/internal/domain"
	"github.com/osse101/XIVMarket_Go/internal/logger"
	"github.com/osse101/XIVMarket_Go/internal/metrics"
	"github.com/osse101/XIVMarket_Go/internal/upstream"
	"github.com/osse101/XIVMarket_Go/internal/utils"
)

// Provider is the market data contract used by the resolver and the presentation bridge.
type Provider interface {
	// GetPrice returns nil, nil when the provider has no market data for the item.
	GetPrice(ctx context.Context, itemID int, server string) (*domain.PriceQuote, error)
	// GetAggregatedPrices values every id in one round trip (chunked past MaxAggregatedIDs).
	// When a chunk fails the prices of the other chunks are still returned with an error
	// wrapping domain.ErrPriceUnavailable.
	GetAggregatedPrices(ctx context.Context, itemIDs []int, server string) (map[int]domain.UnitPrice, error)
	ListDatacenters(ctx context.Context) ([]domain.Datacenter, error)
	ListWorlds(ctx context.Context, datacenter string) ([]domain.World, error)
}

type service struct {
	client   *upstream.Client
	listings *cache.Cache
}

// NewService creates a market data provider backed by client.
// Datacenter and world listings are cached for listingTTL.
func NewService(client *upstream.Client, listingTTL time.Duration) Provider {
	if listingTTL <= 0 {
		listingTTL = DefaultListingTTL
	}
	return &service{
		client:   client,
		listings: cache.New(listingTTL, 2*listingTTL),
	}
}

func (s *service) GetPrice(ctx context.Context, itemID int, server string) (*domain.PriceQuote, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgGetPriceCalled, "itemID", itemID, "server", server)

	if server == "" {
		return nil, fmt.Errorf(ErrMsgGetPriceFmt, itemID, server, domain.ErrNoServerSelected)
	}

	var resp singleResponse
	path := fmt.Sprintf(PathSinglePriceFmt, url.PathEscape(server), itemID)
	if err := s.client.GetJSON(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf(ErrMsgGetPriceFmt, itemID, server, err)
	}

	quote := &domain.PriceQuote{
		ItemID: itemID,
		Server: server,
		NQ: domain.QualityPrice{
			Min: roundedPtr(resp.MinPriceNQ),
			Avg: roundedPtr(resp.AveragePriceNQ),
		},
		HQ: domain.QualityPrice{
			Min: roundedPtr(resp.MinPriceHQ),
			Avg: roundedPtr(resp.AveragePriceHQ),
		},
	}
	if !quote.HasData() {
		log.Info(LogMsgNoMarketData, "itemID", itemID, "server", server)
		return nil, nil
	}
	if resp.LastUploadTime != nil && *resp.LastUploadTime > 0 {
		ts := utils.MillisToSeconds(*resp.LastUploadTime)
		quote.UpdatedAt = &ts
	}
	return quote, nil
}

func (s *service) GetAggregatedPrices(ctx context.Context, itemIDs []int, server string) (map[int]domain.UnitPrice, error) {
	log := logger.FromContext(ctx)
	ids := uniqueSorted(itemIDs)
	log.Debug(LogMsgAggregatedCalled, "count", len(ids), "server", server)

	if server == "" {
		return nil, fmt.Errorf(ErrMsgAggregatedFmt, server, domain.ErrNoServerSelected)
	}

	out := make(map[int]domain.UnitPrice, len(ids))
	var failed []error
	for start := 0; start < len(ids); start += MaxAggregatedIDs {
		end := start + MaxAggregatedIDs
		if end > len(ids) {
			end = len(ids)
		}

		var resp aggregatedResponse
		path := fmt.Sprintf(PathAggregatedFmt, url.PathEscape(server), joinIDs(ids[start:end]))
		if err := s.client.GetJSON(ctx, path, nil, &resp); err != nil {
			log.Warn(LogMsgChunkFailed, "server", server, "first", ids[start], "count", end-start, "error", err)
			failed = append(failed, err)
			continue
		}
		if len(resp.FailedItems) > 0 {
			log.Warn(LogMsgFailedItems, "server", server, "failed", resp.FailedItems)
		}
		for _, r := range resp.Results {
			out[r.ItemID] = unitPriceOf(r)
		}
	}
	if len(failed) > 0 {
		return out, fmt.Errorf(ErrMsgAggregatedFmt, server, errors.Join(append([]error{domain.ErrPriceUnavailable}, failed...)...))
	}
	return out, nil
}

func (s *service) ListDatacenters(ctx context.Context) ([]domain.Datacenter, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgListDataCenters)

	if cached, ok := s.listings.Get(cacheKeyDataCenters); ok {
		metrics.CacheLookupsTotal.WithLabelValues(cacheKeyDataCenters, metrics.CacheHit).Inc()
		return cached.([]domain.Datacenter), nil
	}
	metrics.CacheLookupsTotal.WithLabelValues(cacheKeyDataCenters, metrics.CacheMiss).Inc()

	var resp []dataCenterResponse
	if err := s.client.GetJSON(ctx, PathDataCenters, nil, &resp); err != nil {
		return nil, fmt.Errorf(ErrMsgDataCentersFmt, err)
	}

	dcs := make([]domain.Datacenter, 0, len(resp))
	for _, dc := range resp {
		dcs = append(dcs, domain.Datacenter{Name: dc.Name, Region: dc.Region, Worlds: dc.Worlds})
	}
	s.listings.SetDefault(cacheKeyDataCenters, dcs)
	return dcs, nil
}

func (s *service) ListWorlds(ctx context.Context, datacenter string) ([]domain.World, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgListWorlds, "datacenter", datacenter)

	dcs, err := s.ListDatacenters(ctx)
	if err != nil {
		return nil, err
	}

	var members []int
	found := false
	for _, dc := range dcs {
		if strings.EqualFold(dc.Name, datacenter) {
			members, found = dc.Worlds, true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf(ErrMsgUnknownDCFmt, datacenter, domain.ErrUnknownDatacenter)
	}

	all, err := s.allWorlds(ctx)
	if err != nil {
		return nil, err
	}

	worlds := make([]domain.World, 0, len(members))
	for _, id := range members {
		if name, ok := all[id]; ok {
			worlds = append(worlds, domain.World{ID: id, Name: name})
		}
	}
	sort.Slice(worlds, func(i, j int) bool { return worlds[i].Name < worlds[j].Name })
	return worlds, nil
}

func (s *service) allWorlds(ctx context.Context) (map[int]string, error) {
	if cached, ok := s.listings.Get(cacheKeyWorlds); ok {
		metrics.CacheLookupsTotal.WithLabelValues(cacheKeyWorlds, metrics.CacheHit).Inc()
		return cached.(map[int]string), nil
	}
	metrics.CacheLookupsTotal.WithLabelValues(cacheKeyWorlds, metrics.CacheMiss).Inc()

	var resp []worldResponse
	if err := s.client.GetJSON(ctx, PathWorlds, nil, &resp); err != nil {
		return nil, fmt.Errorf(ErrMsgWorldsFmt, err)
	}
	byID := make(map[int]string, len(resp))
	for _, w := range resp {
		byID[w.ID] = w.Name
	}
	s.listings.SetDefault(cacheKeyWorlds, byID)
	return byID, nil
}

// unitPriceOf applies the valuation order: lowest listing, then average sale, then 0.
func unitPriceOf(r aggregatedResult) domain.UnitPrice {
	var up domain.UnitPrice
	if p := r.NQ.MinListing.price(); p != nil {
		up.Price = utils.RoundPrice(*p)
	} else if p := r.NQ.AverageSalePrice.price(); p != nil {
		up.Price = utils.RoundPrice(*p)
	}

	var latest int64
	for _, w := range r.WorldUploadTimes {
		if w.Timestamp > latest {
			latest = w.Timestamp
		}
	}
	if latest == 0 {
		for _, q := range []aggregatedQuality{r.NQ, r.HQ} {
			if ts := q.RecentPurchase.timestamp(); ts != nil && *ts > latest {
				latest = *ts
			}
		}
	}
	if latest > 0 {
		secs := utils.MillisToSeconds(latest)
		up.Timestamp = &secs
	}
	return up
}

// SafeAggregated never fails. On a provider failure it keeps whatever prices
// arrived and reports degraded; missing ids must be treated as unknown.
func SafeAggregated(ctx context.Context, p Provider, itemIDs []int, server string) (prices map[int]domain.UnitPrice, degraded bool) {
	if server == "" || len(itemIDs) == 0 {
		return map[int]domain.UnitPrice{}, server == ""
	}
	prices, err := p.GetAggregatedPrices(ctx, itemIDs, server)
	if prices == nil {
		prices = map[int]domain.UnitPrice{}
	}
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgPriceDegraded, "server", server, "error", err, "kept", len(prices), "timeout", domain.IsTimeout(err))
		metrics.PriceDegradedTotal.Inc()
		return prices, true
	}
	return prices, false
}

// SafePrice degrades any provider failure to "no market data".
func SafePrice(ctx context.Context, p Provider, itemID int, server string) *domain.PriceQuote {
	if server == "" {
		return nil
	}
	quote, err := p.GetPrice(ctx, itemID, server)
	if err != nil {
		if !errors.Is(err, domain.ErrItemNotFound) {
			metrics.PriceDegradedTotal.Inc()
		}
		logger.FromContext(ctx).Warn(LogMsgPriceDegraded, "itemID", itemID, "server", server, "error", err)
		return nil
	}
	return quote
}

func roundedPtr(v *float64) *int64 {
	if v == nil || *v <= 0 {
		return nil
	}
	r := utils.RoundPrice(*v)
	return &r
}

func uniqueSorted(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
