package crafting

import "time"

// ==================== Depth ====================

const (
	// DefaultDepth is the number of sub-recipe levels expanded below the top recipe
	DefaultDepth = 1

	// MaxDepth bounds caller-supplied depths
	MaxDepth = 4

	// TopLevelOnly requests no sub-recipe expansion
	TopLevelOnly = -1
)

// ==================== Enrichment ====================

const (
	// DefaultConcurrency bounds concurrent sub-resolutions per recipe level
	DefaultConcurrency = 6

	// DefaultEnrichTimeout bounds phase two once the caller has its top-level result
	DefaultEnrichTimeout = 60 * time.Second
)

// StaleOperation labels discarded enrichments in metrics
const StaleOperation = "resolve"

// ==================== Log Messages ====================

const (
	LogMsgResolveStarted   = "Resolving item"
	LogMsgTopLevelReady    = "Top-level recipe costed"
	LogMsgNoRecipe         = "Item has no recipe"
	LogMsgEnriched         = "Sub-recipes resolved"
	LogMsgSubRecipeFailure = "Sub-recipe resolution failed"
	LogMsgCycleSkipped     = "Ingredient already on the resolution path, not expanded"
	LogMsgStaleEnrichment  = "Discarding superseded enrichment"
	LogMsgPriceDegraded    = "Bulk prices unavailable, costing with 0"
	LogMsgMultipleRecipes  = "Item has several recipes, using the first"
)

// ==================== Error Messages ====================

const (
	ErrMsgGetItemFmt      = "failed to get item %d: %w"
	ErrMsgGetRecipesFmt   = "failed to list recipes for item %d: %w"
	ErrMsgGetRecipeFmt    = "failed to get recipe %d: %w"
	ErrMsgNoRecipeFmt     = "item %d: %w"
	ErrMsgInvalidItemID   = "item id must be positive"
	ErrMsgSubResolveFmt   = "sub-recipe for item %d: %w"
	ErrMsgStaleGeneration = "resolution %d was superseded by %d: %w"
)
