package handler

import (
	"fmt"
	"net/http"

	"github.com/osse101/XIVMarket_Go/internal/appstate"
	"github.com/osse101/XIVMarket_Go/internal/domain"
	"github.com/osse101/XIVMarket_Go/internal/logger"
	"github.com/osse101/XIVMarket_Go/internal/price"
)

// PricesResponse is the bulk price lookup result
type PricesResponse struct {
	Server   string                   `json:"server"`
	Prices   map[int]domain.UnitPrice `json:"prices"`
	Degraded bool                     `json:"degraded"`
}

// HandleListDatacenters lists the market datacenters
func HandleListDatacenters(prices price.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dcs, err := prices.ListDatacenters(r.Context())
		if err != nil {
			respondServiceError(w, r, "List datacenters", err)
			return
		}
		respondData(w, dcs, nil)
	}
}

// HandleListWorlds lists the worlds of ?datacenter=, defaulting to the selected one
func HandleListWorlds(prices price.Provider, state *appstate.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dc := GetOptionalQueryParam(r, QueryParamDatacenter, state.Snapshot().Datacenter)
		if dc == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, QueryParamDatacenter))
			return
		}

		worlds, err := prices.ListWorlds(r.Context(), dc)
		if err != nil {
			respondServiceError(w, r, "List worlds", err)
			return
		}
		respondData(w, worlds, message(domain.MessageInfo, fmt.Sprintf(MsgWorldsForDCFmt, len(worlds), dc)))
	}
}

// HandleQueryPrices returns unit prices for ?items=1,2,3 on ?world= (or the selected server).
// Provider failures degrade to an empty price map.
func HandleQueryPrices(prices price.Provider, state *appstate.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		world := GetOptionalQueryParam(r, QueryParamWorld, state.Snapshot().Server)
		if world == "" {
			respondServiceError(w, r, "Query prices", domain.ErrNoServerSelected)
			return
		}
		raw, ok := GetQueryParam(r, w, QueryParamItems)
		if !ok {
			return
		}
		ids, err := parseIDList(raw)
		if err != nil || len(ids) == 0 {
			log.Warn("Invalid item list", "items", raw, "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidItemList)
			return
		}
		if len(ids) > MaxPriceItems {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgTooManyItems, MaxPriceItems))
			return
		}

		result, degraded := price.SafeAggregated(r.Context(), prices, ids, world)
		var msg *domain.Message
		if degraded {
			msg = message(domain.MessageWarning, MsgPricesDegraded)
		}
		respondData(w, PricesResponse{Server: world, Prices: result, Degraded: degraded}, msg)
	}
}
