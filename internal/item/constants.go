package item

import "time"

// ProviderName labels metrics and logs for the game-data provider
const ProviderName = "xivapi"

// ==================== Endpoints ====================

const (
	PathItemFmt   = "/Item/%d"
	PathRecipeFmt = "/Recipe/%d"
	PathSearch    = "/search"

	// RecipeIndex and the filter select recipes by their result item
	RecipeIndex         = "Recipe"
	RecipeFilterFmt     = "ItemResult.ID=%d"
	RecipeSearchColumns = "ID,ItemResult.ID"
)

// ==================== Cache ====================

const (
	DefaultCacheSize = 2048
	DefaultCacheTTL  = 10 * time.Minute

	cacheNameItems   = "items"
	cacheNameRecipes = "recipe_lists"
	cacheNameDetails = "recipe_details"
)

// ==================== Log Messages ====================

const (
	LogMsgGetItemCalled    = "GetItem called"
	LogMsgGetRecipesCalled = "GetRecipesForItem called"
	LogMsgGetDetailCalled  = "GetRecipeDetail called"
	LogMsgRecipeListEmpty  = "Item has no recipes"
)

// ==================== Error Messages ====================

const (
	ErrMsgGetItemFmt    = "failed to get item %d: %w"
	ErrMsgGetRecipesFmt = "failed to list recipes for item %d: %w"
	ErrMsgGetDetailFmt  = "failed to get recipe %d: %w"
	ErrMsgMissingIDFmt  = "response for %d has no ID: %w"
)
