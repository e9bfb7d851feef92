package crafting

import (
	"context"
	"sync"

	"github.com/osse101/XIVMarket_Go/internal/domain"
)

// Resolution is the handle returned by Resolve.
type Resolution struct {
	top *domain.Resolution

	once     sync.Once
	done     chan struct{}
	updates  chan *domain.Resolution
	enriched *domain.Resolution
	err      error
}

func newResolution(top *domain.Resolution) *Resolution {
	return &Resolution{
		top:     top,
		done:    make(chan struct{}),
		updates: make(chan *domain.Resolution, 1),
	}
}

// Top is the phase-one result: the top-level recipe costed, no sub-recipes.
func (r *Resolution) Top() *domain.Resolution {
	return r.top
}

// Generation is the token this resolution was issued.
func (r *Resolution) Generation() uint64 {
	return r.top.Generation
}

// Enriched delivers the fully resolved tree once and is then closed.
// It is closed without a value when the enrichment was superseded.
func (r *Resolution) Enriched() <-chan *domain.Resolution {
	return r.updates
}

// Wait blocks until enrichment finishes or ctx is done.
// It returns domain.ErrStaleGeneration when a newer resolution started first.
func (r *Resolution) Wait(ctx context.Context) (*domain.Resolution, error) {
	select {
	case <-r.done:
		return r.enriched, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (r *Resolution) complete(enriched *domain.Resolution, err error) {
	r.once.Do(func() {
		r.enriched, r.err = enriched, err
		if enriched != nil {
			r.updates <- enriched
		}
		close(r.updates)
		close(r.done)
	})
}

func markEnriched(res *domain.Resolution) *domain.Resolution {
	cp := cloneResolution(res)
	cp.Enriched = true
	return cp
}

func cloneResolution(res *domain.Resolution) *domain.Resolution {
	cp := *res
	cp.Recipe = cloneCost(res.Recipe)
	if res.Price != nil {
		p := *res.Price
		cp.Price = &p
	}
	return &cp
}

func cloneCost(c *domain.RecipeCost) *domain.RecipeCost {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Ingredients = make([]domain.Ingredient, len(c.Ingredients))
	for i, ing := range c.Ingredients {
		ing.SubRecipe = cloneCost(ing.SubRecipe)
		if ing.Saving != nil {
			s := *ing.Saving
			ing.Saving = &s
		}
		cp.Ingredients[i] = ing
	}
	return &cp
}
