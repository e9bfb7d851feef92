package search

import (
	"github.com/tidwall/gjson"

	"github.com/osse101/XIVMarket_Go/internal/domain"
)

// shape locates the record array in one response layout. ok is false when the layout is not its own.
type shape struct {
	name    string
	records func(root gjson.Result) ([]gjson.Result, bool)
}

func envelope(name string, paths ...string) shape {
	return shape{
		name: name,
		records: func(root gjson.Result) ([]gjson.Result, bool) {
			for _, p := range paths {
				if v := root.Get(p); v.IsArray() {
					return v.Array(), true
				}
			}
			return nil, false
		},
	}
}

var bareArray = shape{
	name: "array",
	records: func(root gjson.Result) ([]gjson.Result, bool) {
		if !root.IsArray() {
			return nil, false
		}
		return root.Array(), true
	},
}

// shapes are tried in order; the first match wins.
var shapes = []shape{
	envelope("items", "items", "Items"),
	envelope("results", "results", "Results"),
	envelope("data", "data", "data.items", "data.results"),
	bareArray,
}

// parsed is the outcome of parsing one response body.
type parsed struct {
	shape   string
	items   []domain.ItemSummary
	dropped int
}

// parseResults normalizes a search response. ok is false when no shape matched.
func parseResults(body []byte, lang domain.Language, source string) (parsed, bool) {
	if !gjson.ValidBytes(body) {
		return parsed{}, false
	}
	root := gjson.ParseBytes(body)
	for _, s := range shapes {
		records, ok := s.records(root)
		if !ok {
			continue
		}
		out := parsed{shape: s.name, items: make([]domain.ItemSummary, 0, len(records))}
		for _, r := range records {
			item, ok := parseRecord(r, lang, source)
			if !ok {
				out.dropped++
				continue
			}
			out.items = append(out.items, item)
		}
		return out, true
	}
	return parsed{}, false
}

func first(r gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if v := r.Get(p); v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

func parseRecord(r gjson.Result, lang domain.Language, source string) (domain.ItemSummary, bool) {
	if !r.IsObject() {
		return domain.ItemSummary{}, false
	}
	id := first(r, "id", "ID", "item_id", "itemId")
	if id.Type != gjson.Number && id.Type != gjson.String {
		return domain.ItemSummary{}, false
	}
	code := lang.ProviderCode()
	name := first(r, "name", "Name_"+code, "Name", "name_"+code).String()
	if id.Int() <= 0 || name == "" {
		return domain.ItemSummary{}, false
	}

	return domain.ItemSummary{
		ID:       int(id.Int()),
		Name:     name,
		Category: first(r, "category", "ClassJobCategory.Name", "ItemSearchCategory.Name").String(),
		Level:    int(first(r, "level", "LevelItem", "LevelEquip").Int()),
		Rarity:   int(first(r, "rarity", "Rarity").Int()),
		Icon:     first(r, "icon", "Icon").String(),
		Source:   source,
	}, true
}
