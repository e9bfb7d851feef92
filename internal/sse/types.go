package sse

import (
	"github.com/osse101/XIVMarket_Go/internal/appstate"
	"github.com/osse101/XIVMarket_Go/internal/domain"
)

// CraftEnrichedPayload is the phase-two tree of a resolution
type CraftEnrichedPayload struct {
	Generation uint64             `json:"generation"`
	Resolution *domain.Resolution `json:"resolution"`
}

// CraftStalePayload names a resolution whose enrichment was discarded
type CraftStalePayload struct {
	Generation uint64 `json:"generation"`
	ItemID     int    `json:"item_id"`
}

// SearchCompletedPayload summarizes a finished search
type SearchCompletedPayload struct {
	Generation uint64          `json:"generation"`
	Query      string          `json:"query"`
	Language   domain.Language `json:"language"`
	Count      int             `json:"count"`
	Partial    bool            `json:"partial"`
	Stale      bool            `json:"stale"`
	Warnings   []string        `json:"warnings,omitempty"`
}

// StateChangedPayload is the app state after a change
type StateChangedPayload struct {
	State appstate.Snapshot `json:"state"`
}
