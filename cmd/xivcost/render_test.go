package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/XIVMarket_Go/internal/domain"
	"github.com/osse101/XIVMarket_Go/internal/search"
)

func bronzeResolution() *domain.Resolution {
	return &domain.Resolution{
		Kind: domain.OutcomeRecipe,
		Item: domain.Item{ID: 5057, Name: "Bronze Ingot"},
		Recipe: &domain.RecipeCost{
			Job:        "Blacksmith",
			Level:      1,
			ResultItem: domain.ItemRef{ID: 5057, Name: "Bronze Ingot"},
			Yield:      3,
			Server:     "Gungnir",
			Ingredients: []domain.Ingredient{
				{ItemID: 200, Name: "Tin Ore", Quantity: 2, UnitPrice: 75, TotalCost: 150, HasPrice: true},
				{ItemID: 100, Name: "Copper Ore", Quantity: 6, UnitPrice: 1200, TotalCost: 7200, HasPrice: true,
					Saving: &domain.Saving{MarketCost: 7200, CraftCost: 7000, Amount: 200}},
			},
			TotalCost:   7350,
			CostPerUnit: 2450,
		},
	}
}

func TestPrinter_ResolutionUsesThousandsSeparators(t *testing.T) {
	var buf bytes.Buffer
	pr := newTablePrinter(&buf, domain.LanguageEnglish)

	pr.resolution(bronzeResolution())

	out := buf.String()
	assert.NoError(t, pr.err)
	assert.Contains(t, out, "[ok] Recipe costed on Gungnir")
	assert.Contains(t, out, "Bronze Ingot (#5057)")
	assert.Contains(t, out, "Total 7,350 gil, 2,450 gil per unit")
	assert.Contains(t, out, "craft it to save 200 gil")
	// Most expensive ingredient first
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Copper Ore")), bytes.Index(buf.Bytes(), []byte("Tin Ore")))
}

func TestPrinter_GermanGrouping(t *testing.T) {
	var buf bytes.Buffer
	pr := newTablePrinter(&buf, domain.LanguageGerman)

	pr.resolution(bronzeResolution())

	assert.Contains(t, buf.String(), "Total 7.350 gil")
}

func TestPrinter_NoRecipe(t *testing.T) {
	low := int64(1500)
	tests := []struct {
		name string
		res  *domain.Resolution
		want string
	}{
		{
			name: "with price",
			res: &domain.Resolution{Kind: domain.OutcomeNoRecipe, Item: domain.Item{ID: 5, Name: "Ore"},
				Price: &domain.PriceQuote{Server: "Gungnir", NQ: domain.QualityPrice{Min: &low}}},
			want: "min 1,500  avg -",
		},
		{
			name: "without price",
			res:  &domain.Resolution{Kind: domain.OutcomeNoRecipe, Item: domain.Item{ID: 5, Name: "Ore"}},
			want: "[info] This item cannot be crafted\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			pr := newTablePrinter(&buf, domain.LanguageEnglish)
			pr.resolution(tt.res)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestPrinter_SearchResults(t *testing.T) {
	var buf bytes.Buffer
	pr := newTablePrinter(&buf, domain.LanguageAuto)

	res := &search.Result{
		Items:      []domain.ItemSummary{{ID: 5057, Name: "青銅錠", Category: "鍛造"}},
		Categories: []domain.CategoryCount{{Category: "鍛造", Count: 1}},
		Partial:    true,
		Warnings:   []string{"secondary search timed out"},
	}
	pr.searchResults(res, res.Items)

	out := buf.String()
	assert.Contains(t, out, "[warn] Found 1 items, some sources were unavailable")
	assert.Contains(t, out, "[warn] secondary search timed out")
	assert.Contains(t, out, "青銅錠")
	assert.Contains(t, out, "鍛造 (1)")
}

func TestPrinter_Prices(t *testing.T) {
	var buf bytes.Buffer
	pr := newTablePrinter(&buf, domain.LanguageEnglish)

	pr.prices("Gungnir", []int{1, 2}, map[int]domain.UnitPrice{1: {Price: 12000}}, false)

	out := buf.String()
	assert.Contains(t, out, "12,000 gil")
	assert.Regexp(t, `\n\s+2\s+-\n`, out)
	assert.Contains(t, out, "       1")
}
