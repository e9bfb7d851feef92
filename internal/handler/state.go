package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/osse101/XIVMarket_Go/internal/appstate"
	"github.com/osse101/XIVMarket_Go/internal/domain"
	"github.com/osse101/XIVMarket_Go/internal/price"
)

// StateRequest updates the selection. Omitted fields are left unchanged.
type StateRequest struct {
	Datacenter *string `json:"datacenter" validate:"omitempty,max=64"`
	Server     *string `json:"server" validate:"omitempty,world"`
	Language   *string `json:"language" validate:"omitempty,language"`
}

// HandleGetState returns the current selection
func HandleGetState(state *appstate.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondData(w, state.Snapshot(), nil)
	}
}

// HandleUpdateState applies a StateRequest. A datacenter must be known to the price provider.
func HandleUpdateState(state *appstate.State, prices price.Provider, events EventPublisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StateRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update state"); err != nil {
			return
		}

		before := state.Snapshot()
		if req.Datacenter != nil {
			dc := strings.TrimSpace(*req.Datacenter)
			if dc != "" {
				if err := checkDatacenter(r, prices, dc); err != nil {
					respondServiceError(w, r, "Update state", err)
					return
				}
			}
			state.SetDatacenter(dc)
		}
		if req.Server != nil {
			state.SetServer(strings.TrimSpace(*req.Server))
		}
		if req.Language != nil {
			state.SetLanguage(domain.Language(strings.ToLower(*req.Language)))
		}

		after := state.Snapshot()
		events.StateChanged(after)

		msg := message(domain.MessageSuccess, MsgStateUpdated)
		if before.Server != "" && after.Server == "" && after.Datacenter != before.Datacenter {
			msg = message(domain.MessageInfo, fmt.Sprintf(MsgServerClearedFmt, after.Datacenter))
		}
		respondData(w, after, msg)
	}
}

// checkDatacenter rejects names the provider does not list. A failed lookup does not block the update.
func checkDatacenter(r *http.Request, prices price.Provider, name string) error {
	dcs, err := prices.ListDatacenters(r.Context())
	if err != nil {
		return nil
	}
	for _, dc := range dcs {
		if strings.EqualFold(dc.Name, name) {
			return nil
		}
	}
	return fmt.Errorf("datacenter %q: %w", name, domain.ErrUnknownDatacenter)
}
