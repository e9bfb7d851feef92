package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/osse101/XIVMarket_Go/internal/crafting"
	"github.com/osse101/XIVMarket_Go/internal/domain"
	"github.com/osse101/XIVMarket_Go/internal/item"
	"github.com/osse101/XIVMarket_Go/internal/logger"
)

// CostQuery are the accepted resolution parameters
type CostQuery struct {
	World    string `validate:"world"`
	Depth    int    `validate:"min=0,max=4"`
	Language string `validate:"language"`
}

// CostResponse is the phase-one result. The enriched tree follows on the event stream.
type CostResponse struct {
	Resolution *domain.Resolution `json:"resolution"`
	Generation uint64             `json:"generation"`
	Enriching  bool               `json:"enriching"`
}

// HandleItemOverview returns item detail and its market price on ?world=
func HandleItemOverview(svc crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := getItemID(r, w)
		if !ok {
			return
		}
		q := CostQuery{
			World:    GetOptionalQueryParam(r, QueryParamWorld, ""),
			Language: strings.ToLower(GetOptionalQueryParam(r, QueryParamLanguage, "")),
		}
		if err := validateRequest(w, q); err != nil {
			return
		}

		ov, err := svc.Overview(r.Context(), id, crafting.Options{Server: q.World, Language: domain.Language(q.Language)})
		if err != nil {
			respondServiceError(w, r, "Item overview", err)
			return
		}
		var msg *domain.Message
		if ov.Server != "" && !ov.Price.HasData() {
			msg = message(domain.MessageInfo, MsgNoPriceData)
		}
		respondData(w, ov, msg)
	}
}

// HandleItemRecipes lists the recipes producing an item
func HandleItemRecipes(items item.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := getItemID(r, w)
		if !ok {
			return
		}
		recipes, err := items.GetRecipesForItem(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "List recipes", err)
			return
		}
		var msg *domain.Message
		if len(recipes) == 0 {
			msg = message(domain.MessageInfo, MsgNoRecipesForItem)
		}
		respondData(w, recipes, msg)
	}
}

// HandleItemCost resolves an item's recipe cost. The response carries the top-level recipe;
// sub-recipes are published as craft.enriched once resolved.
func HandleItemCost(svc crafting.Service, events EventPublisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		id, ok := getItemID(r, w)
		if !ok {
			return
		}
		rawDepth := GetOptionalQueryParam(r, QueryParamDepth, "")
		depth, err := parseOptionalInt(rawDepth, 0)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
			return
		}
		q := CostQuery{
			World:    GetOptionalQueryParam(r, QueryParamWorld, ""),
			Depth:    depth,
			Language: strings.ToLower(GetOptionalQueryParam(r, QueryParamLanguage, "")),
		}
		if err := validateRequest(w, q); err != nil {
			return
		}

		opts := crafting.Options{Server: q.World, Language: domain.Language(q.Language)}
		if rawDepth != "" {
			opts.Depth = crafting.ExplicitDepth(q.Depth)
		}

		res, err := svc.Resolve(r.Context(), id, opts)
		if err != nil {
			respondServiceError(w, r, "Resolve cost", err)
			return
		}
		events.WatchResolution(r.Context(), res)

		top := res.Top()
		log.Info("Cost resolved", "itemID", id, "kind", top.Kind, "generation", top.Generation)
		respondData(w, CostResponse{
			Resolution: top,
			Generation: top.Generation,
			Enriching:  top.Kind == domain.OutcomeRecipe,
		}, costMessage(top))
	}
}

func costMessage(top *domain.Resolution) *domain.Message {
	if top.Kind == domain.OutcomeNoRecipe {
		if top.Price.HasData() {
			return message(domain.MessageInfo, MsgNoRecipeWithPrice)
		}
		return message(domain.MessageInfo, MsgNoRecipe)
	}
	switch {
	case top.Recipe.Server == "":
		return message(domain.MessageWarning, MsgRecipeNoServer)
	case top.Recipe.PriceDegraded:
		return message(domain.MessageWarning, MsgRecipeDegraded)
	default:
		return message(domain.MessageSuccess, fmt.Sprintf(MsgRecipeCostedFmt, top.Recipe.Server))
	}
}
