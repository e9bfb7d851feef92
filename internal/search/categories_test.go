package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/XIVMarket_Go/internal/domain"
)

func sampleItems() []domain.ItemSummary {
	return []domain.ItemSummary{
		{ID: 1, Category: "鍛造"},
		{ID: 2, Category: "雕金"},
		{ID: 3, Category: "鍛造"},
		{ID: 4, Category: domain.UncategorizedLabel},
		{ID: 5},
	}
}

func TestCategories(t *testing.T) {
	got := Categories(sampleItems())
	assert.Equal(t, []domain.CategoryCount{{Category: "鍛造", Count: 2}, {Category: "雕金", Count: 1}}, got)
	assert.Empty(t, Categories(nil))
}

func TestFilterByCategory(t *testing.T) {
	items := sampleItems()
	assert.Len(t, FilterByCategory(items, CategoryAll), 5)
	assert.Len(t, FilterByCategory(items, ""), 5)

	got := FilterByCategory(items, "鍛造")
	assert.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)

	assert.Empty(t, FilterByCategory(items, "none"))
}
