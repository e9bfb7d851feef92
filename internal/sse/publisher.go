package sse

import (
	"context"
	"errors"

	"github.com/osse101/XIVMarket_Go/internal/appstate"
	"github.com/osse101/XIVMarket_Go/internal/crafting"
	"github.com/osse101/XIVMarket_Go/internal/domain"
	"github.com/osse101/XIVMarket_Go/internal/logger"
	"github.com/osse101/XIVMarket_Go/internal/search"
)

// Publisher turns service results into hub events
type Publisher struct {
	hub *Hub
}

// NewPublisher creates a publisher for hub
func NewPublisher(hub *Hub) *Publisher {
	return &Publisher{hub: hub}
}

// WatchResolution waits for res to enrich in the background and publishes the outcome.
// The returned channel is closed once the event was published.
func (p *Publisher) WatchResolution(ctx context.Context, res *crafting.Resolution) <-chan struct{} {
	done := make(chan struct{})
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), EnrichWaitTimeout)

	go func() {
		defer close(done)
		defer cancel()

		enriched, err := res.Wait(ctx)
		switch {
		case err == nil:
			p.hub.Broadcast(EventTypeCraftEnriched, CraftEnrichedPayload{Generation: enriched.Generation, Resolution: enriched})
		case errors.Is(err, domain.ErrStaleGeneration):
			p.hub.Broadcast(EventTypeCraftStale, CraftStalePayload{Generation: res.Generation(), ItemID: res.Top().Item.ID})
		default:
			logger.FromContext(ctx).Warn(LogMsgWatchFailed, "generation", res.Generation(), "error", err)
		}
	}()
	return done
}

// SearchCompleted publishes a search summary
func (p *Publisher) SearchCompleted(res *search.Result) {
	p.hub.Broadcast(EventTypeSearchCompleted, SearchCompletedPayload{
		Generation: res.Generation,
		Query:      res.Query,
		Language:   res.Language,
		Count:      len(res.Items),
		Partial:    res.Partial,
		Stale:      res.Stale,
		Warnings:   res.Warnings,
	})
}

// StateChanged publishes the new app state
func (p *Publisher) StateChanged(snap appstate.Snapshot) {
	p.hub.Broadcast(EventTypeStateChanged, StateChangedPayload{State: snap})
}
