package domain

// RecipeSlotCount is the fixed number of ingredient slots in a recipe.
const RecipeSlotCount = 10

// RecipeSummary identifies a recipe producing an item.
type RecipeSummary struct {
	ID     int `json:"id"`
	ItemID int `json:"item_id"`
}

// Slot is one ingredient slot of a recipe. A slot with a nil ItemID or a zero Amount is unused.
type Slot struct {
	ItemID   *int   `json:"item_id,omitempty"`
	ItemName string `json:"item_name,omitempty"`
	Icon     string `json:"icon,omitempty"`
	Amount   int    `json:"amount"`
}

// SlotIngredient is a used slot after the ten-slot scan.
type SlotIngredient struct {
	ItemID int
	Name   string
	Icon   string
	Amount int
}

// RecipeDetail is the full provider view of a recipe.
type RecipeDetail struct {
	ID             int                   `json:"id"`
	Job            string                `json:"job"`
	Level          int                   `json:"level"`
	Difficulty     int                   `json:"difficulty"`
	Durability     int                   `json:"durability"`
	Yield          int                   `json:"yield"`
	ResultItemID   int                   `json:"result_item_id"`
	ResultItemName string                `json:"result_item_name"`
	Slots          [RecipeSlotCount]Slot `json:"slots"`
}

// Ingredients scans the ten slots in order and returns the used ones.
func (r *RecipeDetail) Ingredients() []SlotIngredient {
	out := make([]SlotIngredient, 0, RecipeSlotCount)
	for _, s := range r.Slots {
		if s.ItemID == nil || *s.ItemID <= 0 || s.Amount <= 0 {
			continue
		}
		out = append(out, SlotIngredient{
			ItemID: *s.ItemID,
			Name:   s.ItemName,
			Icon:   s.Icon,
			Amount: s.Amount,
		})
	}
	return out
}

// EffectiveYield guards against a zero or missing yield.
func (r *RecipeDetail) EffectiveYield() int {
	if r.Yield <= 0 {
		return 1
	}
	return r.Yield
}

// ItemRef is a lightweight reference to an item.
type ItemRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Saving compares buying an ingredient against crafting it from its own recipe.
// A positive Amount means crafting is cheaper.
type Saving struct {
	MarketCost int64 `json:"market_cost"`
	CraftCost  int64 `json:"craft_cost"`
	Amount     int64 `json:"amount"`
}

// Ingredient is one costed line of a recipe.
type Ingredient struct {
	ItemID         int         `json:"item_id"`
	Name           string      `json:"name"`
	Icon           string      `json:"icon,omitempty"`
	Quantity       int         `json:"quantity"`
	UnitPrice      int64       `json:"unit_price"`
	TotalCost      int64       `json:"total_cost"`
	HasPrice       bool        `json:"has_price"`
	PriceTimestamp *int64      `json:"price_timestamp,omitempty"`
	SubRecipe      *RecipeCost `json:"sub_recipe,omitempty"`
	Saving         *Saving     `json:"saving,omitempty"`
}

// RecipeCost is a costed recipe tree node.
type RecipeCost struct {
	RecipeID      int          `json:"recipe_id"`
	Job           string       `json:"job"`
	Level         int          `json:"level"`
	Difficulty    int          `json:"difficulty"`
	Durability    int          `json:"durability"`
	ResultItem    ItemRef      `json:"result_item"`
	Yield         int          `json:"yield"`
	Ingredients   []Ingredient `json:"ingredients"`
	TotalCost     int64        `json:"total_cost"`
	CostPerUnit   int64        `json:"cost_per_unit"`
	Server        string       `json:"server,omitempty"`
	PriceDegraded bool         `json:"price_degraded,omitempty"`
}

// OutcomeKind distinguishes a costed recipe from a non-craftable item.
type OutcomeKind string

const (
	OutcomeRecipe   OutcomeKind = "recipe"
	OutcomeNoRecipe OutcomeKind = "no_recipe"
)

// Resolution is the result of resolving one item.
// For OutcomeNoRecipe, Price may carry a bare market quote.
type Resolution struct {
	Kind       OutcomeKind `json:"kind"`
	Item       Item        `json:"item"`
	Recipe     *RecipeCost `json:"recipe,omitempty"`
	Price      *PriceQuote `json:"price,omitempty"`
	Generation uint64      `json:"generation"`
	Enriched   bool        `json:"enriched"`
}
