package search

import (
	"sort"

	"github.com/osse101/XIVMarket_Go/internal/domain"
)

// Categories counts items per category, most common first, ties broken by name.
// Empty and uncategorized entries are not listed.
func Categories(items []domain.ItemSummary) []domain.CategoryCount {
	counts := make(map[string]int)
	for _, it := range items {
		if it.Category == "" || it.Category == domain.UncategorizedLabel {
			continue
		}
		counts[it.Category]++
	}

	out := make([]domain.CategoryCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, domain.CategoryCount{Category: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// FilterByCategory keeps items of one category. CategoryAll or "" keeps everything.
func FilterByCategory(items []domain.ItemSummary, category string) []domain.ItemSummary {
	if category == "" || category == CategoryAll {
		return items
	}
	out := make([]domain.ItemSummary, 0, len(items))
	for _, it := range items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}
