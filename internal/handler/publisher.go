package handler

import (
	"context"

	"github.com/osse101/XIVMarket_Go/internal/appstate"
	"github.com/osse101/XIVMarket_Go/internal/crafting"
	"github.com/osse101/XIVMarket_Go/internal/domain"
	"github.com/osse101/XIVMarket_Go/internal/search"
)

// EventPublisher pushes results that finish after the response was sent
type EventPublisher interface {
	WatchResolution(ctx context.Context, res *crafting.Resolution) <-chan struct{}
	SearchCompleted(res *search.Result)
	StateChanged(snap appstate.Snapshot)
}

func message(level domain.MessageLevel, text string) *domain.Message {
	return &domain.Message{Level: level, Text: text}
}
