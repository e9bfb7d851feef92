package crafting

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/XIVMarket_Go/internal/domain"
	"github.com/osse101/XIVMarket_Go/internal/logger"
	"github.com/osse101/XIVMarket_Go/internal/price"
	"github.com/osse101/XIVMarket_Go/internal/utils"
)

// costRecipe prices the first recipe of it. It returns domain.ErrNoRecipe when the item is not craftable.
func (s *service) costRecipe(ctx context.Context, it *domain.Item, req request) (*domain.RecipeCost, error) {
	log := logger.FromContext(ctx)

	recipes, err := s.items.GetRecipesForItem(ctx, it.ID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetRecipesFmt, it.ID, err)
	}
	if len(recipes) == 0 {
		return nil, fmt.Errorf(ErrMsgNoRecipeFmt, it.ID, domain.ErrNoRecipe)
	}
	if len(recipes) > 1 {
		log.Debug(LogMsgMultipleRecipes, "itemID", it.ID, "recipes", len(recipes), "recipeID", recipes[0].ID)
	}

	detail, err := s.items.GetRecipeDetail(ctx, recipes[0].ID, req.lang)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetRecipeFmt, recipes[0].ID, err)
	}

	slots := detail.Ingredients()
	names := s.localize(ctx, slots, req.lang)

	cost := &domain.RecipeCost{
		RecipeID:    detail.ID,
		Job:         detail.Job,
		Level:       detail.Level,
		Difficulty:  detail.Difficulty,
		Durability:  detail.Durability,
		ResultItem:  domain.ItemRef{ID: it.ID, Name: it.Name},
		Yield:       detail.EffectiveYield(),
		Ingredients: make([]domain.Ingredient, 0, len(slots)),
		Server:      req.server,
	}
	for _, sl := range slots {
		cost.Ingredients = append(cost.Ingredients, domain.Ingredient{
			ItemID:   sl.ItemID,
			Name:     names[sl.ItemID],
			Icon:     domain.IconURL(sl.Icon),
			Quantity: sl.Amount,
		})
	}

	if req.server != "" && len(slots) > 0 {
		ids := make([]int, 0, len(slots))
		for _, sl := range slots {
			ids = append(ids, sl.ItemID)
		}
		prices, degraded := price.SafeAggregated(ctx, s.prices, ids, req.server)
		if degraded {
			log.Warn(LogMsgPriceDegraded, "recipeID", detail.ID, "server", req.server)
		}
		cost.PriceDegraded = degraded
		applyPrices(cost, prices)
	}
	return cost, nil
}

// localize returns display names per ingredient id, falling back to the provider's names.
func (s *service) localize(ctx context.Context, slots []domain.SlotIngredient, lang domain.Language) map[int]string {
	fallback := make(map[int]string, len(slots))
	ids := make([]int, 0, len(slots))
	for _, sl := range slots {
		if _, dup := fallback[sl.ItemID]; !dup {
			ids = append(ids, sl.ItemID)
		}
		fallback[sl.ItemID] = sl.Name
	}
	if s.names == nil || !lang.NeedsTranslation() || len(ids) == 0 {
		return fallback
	}
	return s.names.ResolveAll(ctx, ids, lang, fallback)
}

// applyPrices fills unit and total prices and recomputes the recipe totals.
func applyPrices(cost *domain.RecipeCost, prices map[int]domain.UnitPrice) {
	for i := range cost.Ingredients {
		ing := &cost.Ingredients[i]
		up, ok := prices[ing.ItemID]
		ing.HasPrice = ok && up.Price > 0
		ing.UnitPrice = up.Price
		ing.PriceTimestamp = up.Timestamp
		ing.TotalCost = utils.MulRound(ing.UnitPrice, ing.Quantity)
	}
	recompute(cost)
}

// recompute keeps TotalCost equal to the sum of the ingredient totals.
func recompute(cost *domain.RecipeCost) {
	var total int64
	for _, ing := range cost.Ingredients {
		total += ing.TotalCost
	}
	cost.TotalCost = total
	cost.CostPerUnit = utils.DivRound(total, cost.Yield)
}

// enrich attaches sub-recipes to every ingredient not already on path, depth levels deep.
// Failures only affect the ingredient they happened on.
func (s *service) enrich(ctx context.Context, cost *domain.RecipeCost, req request, depth int, path map[int]bool) {
	if depth <= 0 || len(cost.Ingredients) == 0 {
		return
	}
	log := logger.FromContext(ctx)

	subs := make([]*domain.RecipeCost, len(cost.Ingredients))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, ing := range cost.Ingredients {
		if path[ing.ItemID] {
			log.Debug(LogMsgCycleSkipped, "itemID", ing.ItemID, "recipeID", cost.RecipeID)
			continue
		}
		i, ing := i, ing
		g.Go(func() error {
			sub, err := s.subRecipe(ctx, ing.ItemID, req, depth-1, withItem(path, ing.ItemID))
			if err != nil {
				err = fmt.Errorf(ErrMsgSubResolveFmt, ing.ItemID, errors.Join(domain.ErrSubRecipeFailure, err))
				log.Warn(LogMsgSubRecipeFailure, "itemID", ing.ItemID, "error", err)
				return nil
			}
			subs[i] = sub
			return nil
		})
	}
	_ = g.Wait()

	for i, sub := range subs {
		if sub == nil {
			continue
		}
		ing := &cost.Ingredients[i]
		ing.SubRecipe = sub
		if req.server != "" {
			ing.Saving = saving(*ing)
		}
	}
}

// subRecipe runs steps one to three rooted at an ingredient, then expands it further.
// A nil result with a nil error means the ingredient is not craftable.
func (s *service) subRecipe(ctx context.Context, itemID int, req request, depth int, path map[int]bool) (*domain.RecipeCost, error) {
	it, err := s.item(ctx, itemID, req.lang)
	if err != nil {
		return nil, err
	}
	cost, err := s.costRecipe(ctx, it, req)
	if errors.Is(err, domain.ErrNoRecipe) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.enrich(ctx, cost, req, depth, path)
	return cost, nil
}

// saving compares buying qty units against crafting them at the sub-recipe's unit cost.
func saving(ing domain.Ingredient) *domain.Saving {
	craft := utils.MulRound(ing.SubRecipe.CostPerUnit, ing.Quantity)
	return &domain.Saving{
		MarketCost: ing.TotalCost,
		CraftCost:  craft,
		Amount:     ing.TotalCost - craft,
	}
}

func withItem(path map[int]bool, itemID int) map[int]bool {
	next := make(map[int]bool, len(path)+1)
	for id := range path {
		next[id] = true
	}
	next[itemID] = true
	return next
}
