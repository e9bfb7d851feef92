package domain

// IconHost is prepended to relative icon paths returned by the game-data provider.
const IconHost = "https://xivapi.com"

// UncategorizedLabel is what the primary search service reports for items without a job category.
const UncategorizedLabel = "未分類"

// Item is the metadata of a single tradeable item in one display language.
// Names are language dependent, so an Item is only valid for the language it was fetched in.
type Item struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Level    int    `json:"level"`
	Rarity   int    `json:"rarity"`
	CanBeHQ  bool   `json:"can_be_hq"`
	Icon     string `json:"icon,omitempty"`
}

// IconURL returns the absolute icon URL, or "" when the item has no icon.
func (i Item) IconURL() string {
	return IconURL(i.Icon)
}

// IconURL joins a provider icon path onto IconHost.
func IconURL(icon string) string {
	if icon == "" {
		return ""
	}
	if len(icon) > 4 && icon[:4] == "http" {
		return icon
	}
	return IconHost + icon
}

// ItemSummary is a normalized search hit.
type ItemSummary struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Level    int    `json:"level,omitempty"`
	Rarity   int    `json:"rarity,omitempty"`
	Icon     string `json:"icon,omitempty"`
	Source   string `json:"source,omitempty"`
}

// CategoryCount is one entry of the job/category breakdown of a search result.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}
