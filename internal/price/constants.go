package price

import "time"

// ProviderName labels metrics and logs for the market data provider
const ProviderName = "universalis"

// Endpoint paths
const (
	PathSinglePriceFmt = "/api/v2/%s/%d"
	PathAggregatedFmt  = "/api/v2/aggregated/%s/%s"
	PathDataCenters    = "/api/v2/data-centers"
	PathWorlds         = "/api/v2/worlds"
)

// MaxAggregatedIDs is the most item ids the aggregated endpoint accepts per call
const MaxAggregatedIDs = 100

// Cache keys and lifetimes for the datacenter/world listing
const (
	cacheKeyDataCenters = "data-centers"
	cacheKeyWorlds      = "worlds"

	DefaultListingTTL = 6 * time.Hour
)

// Log messages
const (
	LogMsgGetPriceCalled   = "GetPrice called"
	LogMsgAggregatedCalled = "GetAggregatedPrices called"
	LogMsgNoMarketData     = "No market data for item"
	LogMsgPriceDegraded    = "Price lookup degraded to no market data"
	LogMsgFailedItems      = "Provider reported failed items"
	LogMsgChunkFailed      = "Aggregated price chunk failed"
	LogMsgListDataCenters  = "ListDatacenters called"
	LogMsgListWorlds       = "ListWorlds called"
)

// Error message formats
const (
	ErrMsgGetPriceFmt    = "failed to get price for item %d on %s: %w"
	ErrMsgAggregatedFmt  = "failed to get aggregated prices on %s: %w"
	ErrMsgDataCentersFmt = "failed to list datacenters: %w"
	ErrMsgWorldsFmt      = "failed to list worlds: %w"
	ErrMsgUnknownDCFmt   = "datacenter %q: %w"
)
