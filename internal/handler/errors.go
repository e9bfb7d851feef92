package handler

// Generic HTTP error messages for client responses.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidItemID         = "Invalid item id"
	ErrMsgInvalidItemList       = "Invalid item list"
	ErrMsgTooManyItems          = "Too many items, at most %d per request"
)

// Status lines returned alongside data
const (
	MsgSearchResultsFmt  = "Found %d items"
	MsgSearchNoResults   = "No items found"
	MsgSearchPartialFmt  = "Found %d items, some sources were unavailable"
	MsgSearchFilteredFmt = "Showing %d of %d items in %s"
	MsgRecipeCostedFmt   = "Recipe costed on %s, sub-recipes are loading"
	MsgRecipeNoServer    = "Select a server to see ingredient prices"
	MsgRecipeDegraded    = "Prices are unavailable, costs are shown as 0"
	MsgNoRecipe          = "This item cannot be crafted"
	MsgNoRecipeWithPrice = "This item cannot be crafted, showing its market price"
	MsgNoPriceData       = "No market data for this item"
	MsgNoRecipesForItem  = "No recipes produce this item"
	MsgStateUpdated      = "Preferences saved"
	MsgServerClearedFmt  = "Datacenter changed to %s, please pick a server"
	MsgPricesDegraded    = "Prices are unavailable right now"
	MsgWorldsForDCFmt    = "%d worlds in %s"
)

// Query parameters
const (
	QueryParamQuery      = "q"
	QueryParamLanguage   = "lang"
	QueryParamCategory   = "category"
	QueryParamWorld      = "world"
	QueryParamItems      = "items"
	QueryParamDepth      = "depth"
	QueryParamDatacenter = "datacenter"

	URLParamItemID = "id"
)

// MaxPriceItems bounds the ids accepted by the bulk price endpoint
const MaxPriceItems = 100
