package item

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/osse101/XIVMarket_Go/internal/domain"
)

// localized reads "<field>_<code>" and falls back to the bare field.
func localized(obj gjson.Result, field, code string) string {
	if code != "" && code != string(domain.LanguageEnglish) {
		if v := obj.Get(field + "_" + code).String(); v != "" {
			return v
		}
	}
	return obj.Get(field).String()
}

func parseItem(body []byte, lang domain.Language) domain.Item {
	root := gjson.ParseBytes(body)
	code := lang.ProviderCode()

	category := localized(root.Get("ClassJobCategory"), "Name", code)
	if category == "" {
		category = localized(root.Get("ItemSearchCategory"), "Name", code)
	}

	return domain.Item{
		ID:       int(root.Get("ID").Int()),
		Name:     localized(root, "Name", code),
		Category: strings.TrimSpace(category),
		Level:    int(root.Get("LevelItem").Int()),
		Rarity:   int(root.Get("Rarity").Int()),
		// CanBeHq arrives as 0/1 or a bool depending on the endpoint version
		CanBeHQ: root.Get("CanBeHq").Bool(),
		Icon:    root.Get("Icon").String(),
	}
}

func parseRecipeList(body []byte, itemID int) []domain.RecipeSummary {
	var out []domain.RecipeSummary
	gjson.GetBytes(body, "Results").ForEach(func(_, value gjson.Result) bool {
		id := int(value.Get("ID").Int())
		if id <= 0 {
			return true
		}
		result := int(value.Get("ItemResult.ID").Int())
		if result != 0 && result != itemID {
			// filter mismatch, not ours
			return true
		}
		out = append(out, domain.RecipeSummary{ID: id, ItemID: itemID})
		return true
	})
	return out
}

func parseRecipeDetail(body []byte, lang domain.Language) domain.RecipeDetail {
	root := gjson.ParseBytes(body)
	code := lang.ProviderCode()

	detail := domain.RecipeDetail{
		ID:             int(root.Get("ID").Int()),
		Job:            root.Get("ClassJob.Abbreviation").String(),
		Level:          int(root.Get("RecipeLevelTable.ClassJobLevel").Int()),
		Difficulty:     int(root.Get("RecipeLevelTable.Difficulty").Int()),
		Durability:     int(root.Get("RecipeLevelTable.Durability").Int()),
		Yield:          int(root.Get("AmountResult").Int()),
		ResultItemID:   int(root.Get("ItemResult.ID").Int()),
		ResultItemName: localized(root.Get("ItemResult"), "Name", code),
	}

	for i := 0; i < domain.RecipeSlotCount; i++ {
		idx := strconv.Itoa(i)
		ing := root.Get("ItemIngredient" + idx)
		slot := domain.Slot{Amount: int(root.Get("AmountIngredient" + idx).Int())}
		if id := ing.Get("ID").Int(); id > 0 {
			v := int(id)
			slot.ItemID = &v
			slot.ItemName = localized(ing, "Name", code)
			slot.Icon = ing.Get("Icon").String()
		} else if id := root.Get("ItemIngredient" + idx + "TargetID").Int(); id > 0 && !ing.IsObject() {
			v := int(id)
			slot.ItemID = &v
		}
		detail.Slots[i] = slot
	}
	return detail
}
