package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/osse101/XIVMarket_Go/internal/appstate"
	"github.com/osse101/XIVMarket_Go/internal/domain"
	"github.com/osse101/XIVMarket_Go/internal/search"
)

// SearchQuery are the accepted search parameters
type SearchQuery struct {
	Query    string `validate:"required,max=100"`
	Language string `validate:"language"`
	Category string `validate:"max=64"`
}

// SearchResponse is the search result after the category filter
type SearchResponse struct {
	Items      []domain.ItemSummary   `json:"items"`
	Total      int                    `json:"total"`
	Categories []domain.CategoryCount `json:"categories"`
	Partial    bool                   `json:"partial"`
	Warnings   []string               `json:"warnings,omitempty"`
	Generation uint64                 `json:"generation"`
	Stale      bool                   `json:"stale"`
}

// HandleSearch searches items by name across the configured backends
func HandleSearch(svc search.Service, state *appstate.State, events EventPublisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := SearchQuery{
			Query:    GetOptionalQueryParam(r, QueryParamQuery, ""),
			Language: strings.ToLower(GetOptionalQueryParam(r, QueryParamLanguage, "")),
			Category: GetOptionalQueryParam(r, QueryParamCategory, search.CategoryAll),
		}
		if err := validateRequest(w, q); err != nil {
			return
		}
		lang := domain.Language(q.Language)
		if lang == "" {
			lang = state.Snapshot().Language
		}

		res, err := svc.Search(r.Context(), q.Query, lang)
		if err != nil {
			respondServiceError(w, r, "Search", err)
			return
		}
		events.SearchCompleted(res)

		items := search.FilterByCategory(res.Items, q.Category)
		respondData(w, SearchResponse{
			Items:      items,
			Total:      len(res.Items),
			Categories: res.Categories,
			Partial:    res.Partial,
			Warnings:   res.Warnings,
			Generation: res.Generation,
			Stale:      res.Stale,
		}, searchMessage(res, len(items), q.Category))
	}
}

func searchMessage(res *search.Result, shown int, category string) *domain.Message {
	switch {
	case len(res.Items) == 0:
		return message(domain.MessageWarning, MsgSearchNoResults)
	case res.Partial:
		return message(domain.MessageWarning, fmt.Sprintf(MsgSearchPartialFmt, len(res.Items)))
	case category != search.CategoryAll && category != "":
		return message(domain.MessageInfo, fmt.Sprintf(MsgSearchFilteredFmt, shown, len(res.Items), category))
	default:
		return message(domain.MessageSuccess, fmt.Sprintf(MsgSearchResultsFmt, len(res.Items)))
	}
}
