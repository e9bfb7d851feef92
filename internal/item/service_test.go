package item

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/XIVMarket_Go/internal/domain"
	"github.com/osse101/XIVMarket_Go/internal/upstream"
)

const bronzeIngotJSON = `{
	"ID": 5057,
	"Name": "Bronze Ingot",
	"Name_ja": "ブロンズインゴット",
	"LevelItem": 5,
	"Rarity": 1,
	"CanBeHq": 1,
	"Icon": "/i/020000/020801.png",
	"ClassJobCategory": null,
	"ItemSearchCategory": {"Name": "Metal", "Name_ja": "金属材"}
}`

const bronzeRecipeJSON = `{
	"ID": 33,
	"ClassJob": {"Abbreviation": "BSM"},
	"RecipeLevelTable": {"ClassJobLevel": 5, "Difficulty": 40, "Durability": 60},
	"AmountResult": 3,
	"ItemResult": {"ID": 5057, "Name": "Bronze Ingot"},
	"ItemIngredient0": {"ID": 100, "Name": "Copper Ore", "Icon": "/i/021000/021001.png"},
	"AmountIngredient0": 6,
	"ItemIngredient1": {"ID": 200, "Name": "Tin Ore"},
	"AmountIngredient1": 2,
	"ItemIngredient2": {"ID": 300, "Name": "Unused"},
	"AmountIngredient2": 0,
	"ItemIngredient3": null,
	"AmountIngredient3": 4,
	"ItemIngredient8": {"ID": 2, "Name": "Fire Shard"},
	"AmountIngredient8": 1
}`

type fakeProvider struct {
	calls atomic.Int32
	srv   *httptest.Server
}

func newFakeProvider(t *testing.T) *fakeProvider {
	t.Helper()
	f := &fakeProvider{}
	mux := http.NewServeMux()
	mux.HandleFunc("/Item/5057", func(w http.ResponseWriter, _ *http.Request) {
		f.calls.Add(1)
		_, _ = w.Write([]byte(bronzeIngotJSON))
	})
	mux.HandleFunc("/Item/1", func(w http.ResponseWriter, _ *http.Request) {
		f.calls.Add(1)
		_, _ = w.Write([]byte(`{"ID": 1, "Name": "Gil"}`))
	})
	mux.HandleFunc("/Recipe/33", func(w http.ResponseWriter, _ *http.Request) {
		f.calls.Add(1)
		_, _ = w.Write([]byte(bronzeRecipeJSON))
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		assert.Equal(t, RecipeIndex, r.URL.Query().Get("indexes"))
		switch r.URL.Query().Get("filters") {
		case fmt.Sprintf(RecipeFilterFmt, 5057):
			_, _ = w.Write([]byte(`{"Results":[{"ID":33,"ItemResult":{"ID":5057}},{"ID":34,"ItemResult":{"ID":5057}}]}`))
		default:
			_, _ = w.Write([]byte(`{"Results":[]}`))
		}
	})
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeProvider) service() Provider {
	client := upstream.NewClient(upstream.Options{Provider: ProviderName, BaseURL: f.srv.URL, Timeout: time.Second, RPS: 1000, Burst: 1000})
	return NewService(client, CacheConfig{Size: 16, TTL: time.Minute})
}

func TestGetItem(t *testing.T) {
	f := newFakeProvider(t)
	svc := f.service()
	ctx := context.Background()

	t.Run("parses english item", func(t *testing.T) {
		it, err := svc.GetItem(ctx, 5057, domain.LanguageEnglish)

		require.NoError(t, err)
		assert.Equal(t, 5057, it.ID)
		assert.Equal(t, "Bronze Ingot", it.Name)
		assert.Equal(t, "Metal", it.Category)
		assert.Equal(t, 5, it.Level)
		assert.True(t, it.CanBeHQ)
		assert.Equal(t, "https://xivapi.com/i/020000/020801.png", it.IconURL())
	})

	t.Run("uses localized field", func(t *testing.T) {
		it, err := svc.GetItem(ctx, 5057, domain.LanguageJapanese)

		require.NoError(t, err)
		assert.Equal(t, "ブロンズインゴット", it.Name)
		assert.Equal(t, "金属材", it.Category)
	})

	t.Run("caches per language", func(t *testing.T) {
		before := f.calls.Load()
		_, err := svc.GetItem(ctx, 5057, domain.LanguageEnglish)
		require.NoError(t, err)
		_, err = svc.GetItem(ctx, 5057, domain.LanguageJapanese)
		require.NoError(t, err)
		assert.Equal(t, before, f.calls.Load())
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := svc.GetItem(ctx, 999999, domain.LanguageEnglish)

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrItemNotFound))
	})
}

func TestGetRecipesForItem(t *testing.T) {
	f := newFakeProvider(t)
	svc := f.service()
	ctx := context.Background()

	list, err := svc.GetRecipesForItem(ctx, 5057)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 33, list[0].ID, "provider order is kept")

	empty, err := svc.GetRecipesForItem(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetRecipeDetail(t *testing.T) {
	f := newFakeProvider(t)
	svc := f.service()

	d, err := svc.GetRecipeDetail(context.Background(), 33, domain.LanguageEnglish)

	require.NoError(t, err)
	assert.Equal(t, "BSM", d.Job)
	assert.Equal(t, 5, d.Level)
	assert.Equal(t, 40, d.Difficulty)
	assert.Equal(t, 60, d.Durability)
	assert.Equal(t, 3, d.Yield)
	assert.Equal(t, 5057, d.ResultItemID)

	ings := d.Ingredients()
	require.Len(t, ings, 3)
	assert.Equal(t, domain.SlotIngredient{ItemID: 100, Name: "Copper Ore", Icon: "/i/021000/021001.png", Amount: 6}, ings[0])
	assert.Equal(t, 200, ings[1].ItemID)
	assert.Equal(t, 2, ings[2].ItemID, "slot 8 is scanned")
}

func TestParseRecipeDetail_MissingYield(t *testing.T) {
	d := parseRecipeDetail([]byte(`{"ID": 9, "ItemIngredient0": {"ID": 5}, "AmountIngredient0": 1}`), domain.LanguageEnglish)

	assert.Equal(t, 0, d.Yield)
	assert.Equal(t, 1, d.EffectiveYield())
	assert.Len(t, d.Ingredients(), 1)
}
