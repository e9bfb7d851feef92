package price

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/XIVMarket_Go/internal/domain"
	"github.com/osse101/XIVMarket_Go/internal/upstream"
)

func newTestService(t *testing.T, mux *http.ServeMux) Provider {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	client := upstream.NewClient(upstream.Options{Provider: ProviderName, BaseURL: srv.URL, Timeout: time.Second, RPS: 1000, Burst: 1000})
	return NewService(client, time.Minute)
}

func TestGetPrice(t *testing.T) {
	t.Run("normalizes and rounds all four fields", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v2/Gungnir/5057", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"itemID":5057,"worldName":"Gungnir","lastUploadTime":1700000000123,
				"minPriceNQ":120,"minPriceHQ":180,"averagePriceNQ":130.5,"averagePriceHQ":199.4}`))
		})
		svc := newTestService(t, mux)

		quote, err := svc.GetPrice(context.Background(), 5057, "Gungnir")

		require.NoError(t, err)
		require.NotNil(t, quote)
		assert.Equal(t, int64(120), *quote.NQ.Min)
		assert.Equal(t, int64(131), *quote.NQ.Avg)
		assert.Equal(t, int64(180), *quote.HQ.Min)
		assert.Equal(t, int64(199), *quote.HQ.Avg)
		require.NotNil(t, quote.UpdatedAt)
		assert.Equal(t, int64(1700000000), *quote.UpdatedAt)
		assert.Equal(t, "Gungnir", quote.Server)
	})

	t.Run("absent when all four fields are missing", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v2/Gungnir/5057", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"itemID":5057,"lastUploadTime":0}`))
		})
		svc := newTestService(t, mux)

		quote, err := svc.GetPrice(context.Background(), 5057, "Gungnir")

		require.NoError(t, err)
		assert.Nil(t, quote)
	})

	t.Run("escapes localized server names", func(t *testing.T) {
		var gotPath string
		mux := http.NewServeMux()
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_, _ = w.Write([]byte(`{"minPriceNQ":1}`))
		})
		svc := newTestService(t, mux)

		_, err := svc.GetPrice(context.Background(), 2, "伊弗利特")

		require.NoError(t, err)
		assert.Equal(t, "/api/v2/伊弗利特/2", gotPath)
	})

	t.Run("requires a server", func(t *testing.T) {
		svc := newTestService(t, http.NewServeMux())

		_, err := svc.GetPrice(context.Background(), 1, "")

		assert.True(t, errors.Is(err, domain.ErrNoServerSelected))
	})
}

func TestGetAggregatedPrices(t *testing.T) {
	mux := http.NewServeMux()
	var gotPath string
	mux.HandleFunc("/api/v2/aggregated/Gungnir/", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"results":[
			{"itemId":100,"nq":{"minListing":{"world":{"price":120},"dc":{"price":99}},"averageSalePrice":{"world":{"price":140}}},
			 "worldUploadTimes":[{"worldId":1,"timestamp":1700000000000},{"worldId":2,"timestamp":1700000500000}]},
			{"itemId":200,"nq":{"averageSalePrice":{"world":{"price":74.6}},"recentPurchase":{"world":{"price":70,"timestamp":1690000000000}}}},
			{"itemId":300,"nq":{},"hq":{"minListing":{"world":{"price":500}}}}
		],"failedItems":[400]}`))
	})
	svc := newTestService(t, mux)

	prices, err := svc.GetAggregatedPrices(context.Background(), []int{300, 100, 200, 100, 400}, "Gungnir")

	require.NoError(t, err)
	assert.Equal(t, "/api/v2/aggregated/Gungnir/100,200,300,400", gotPath, "ids are deduplicated and sorted")

	require.Contains(t, prices, 100)
	assert.Equal(t, int64(120), prices[100].Price, "lowest listing wins")
	require.NotNil(t, prices[100].Timestamp)
	assert.Equal(t, int64(1700000500), *prices[100].Timestamp, "latest world upload time")

	assert.Equal(t, int64(75), prices[200].Price, "falls back to rounded average sale")
	require.NotNil(t, prices[200].Timestamp)
	assert.Equal(t, int64(1690000000), *prices[200].Timestamp, "falls back to recent purchase")

	assert.Equal(t, int64(0), prices[300].Price, "no NQ listing or sale means zero")
	assert.Nil(t, prices[300].Timestamp)

	assert.NotContains(t, prices, 400)
}

func TestGetAggregatedPrices_Chunks(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/aggregated/Gungnir/", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"results":[]}`))
	})
	svc := newTestService(t, mux)

	ids := make([]int, MaxAggregatedIDs+5)
	for i := range ids {
		ids[i] = i + 1
	}
	_, err := svc.GetAggregatedPrices(context.Background(), ids, "Gungnir")

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGetAggregatedPrices_FailedChunkKeepsOthers(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/aggregated/Gungnir/", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if !strings.HasPrefix(r.URL.Path, "/api/v2/aggregated/Gungnir/1,") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"results":[{"itemId":1,"nq":{"minListing":{"world":{"price":40}}}}]}`))
	})
	svc := newTestService(t, mux)

	ids := make([]int, MaxAggregatedIDs+50)
	for i := range ids {
		ids[i] = i + 1
	}
	prices, err := svc.GetAggregatedPrices(context.Background(), ids, "Gungnir")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPriceUnavailable)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Equal(t, int32(2), calls.Load(), "a failed chunk does not stop the others")
	require.Contains(t, prices, 1)
	assert.Equal(t, int64(40), prices[1].Price)

	kept, degraded := SafeAggregated(context.Background(), svc, ids, "Gungnir")
	assert.True(t, degraded)
	assert.Contains(t, kept, 1)
}

func TestSafeAggregated(t *testing.T) {
	t.Run("failure degrades to empty map", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		svc := newTestService(t, mux)

		prices, degraded := SafeAggregated(context.Background(), svc, []int{1, 2}, "Gungnir")

		assert.True(t, degraded)
		assert.Empty(t, prices)
	})

	t.Run("no server means no call", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
			t.Fatal("provider must not be called without a server")
		})
		svc := newTestService(t, mux)

		prices, _ := SafeAggregated(context.Background(), svc, []int{1}, "")

		assert.Empty(t, prices)
	})
}

func TestSafePrice_DegradesOnTimeout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	client := upstream.NewClient(upstream.Options{Provider: ProviderName, BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	svc := NewService(client, time.Minute)

	assert.Nil(t, SafePrice(context.Background(), svc, 5057, "Gungnir"))
}

func TestListWorlds(t *testing.T) {
	var dcCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc(PathDataCenters, func(w http.ResponseWriter, _ *http.Request) {
		dcCalls.Add(1)
		_, _ = w.Write([]byte(`[{"name":"陸行鳥","region":"繁中服","worlds":[4030,4028,4029]},{"name":"Elemental","region":"Japan","worlds":[45]}]`))
	})
	mux.HandleFunc(PathWorlds, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":4028,"name":"伊弗利特"},{"id":4029,"name":"迦樓羅"},{"id":4030,"name":"利維坦"},{"id":45,"name":"Carbuncle"}]`))
	})
	svc := newTestService(t, mux)
	ctx := context.Background()

	dcs, err := svc.ListDatacenters(ctx)
	require.NoError(t, err)
	assert.Len(t, dcs, 2)

	worlds, err := svc.ListWorlds(ctx, "陸行鳥")
	require.NoError(t, err)
	require.Len(t, worlds, 3)
	for _, w := range worlds {
		assert.Contains(t, []int{4028, 4029, 4030}, w.ID)
	}

	_, err = svc.ListWorlds(ctx, "Nowhere")
	assert.True(t, errors.Is(err, domain.ErrUnknownDatacenter))

	assert.Equal(t, int32(1), dcCalls.Load(), "datacenter listing is cached")
}
