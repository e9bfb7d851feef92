// Package search fans a text query out to the configured item-search
// backends and merges their results into one id-sorted list.
package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/XIVMarket_Go/internal/appstate"
	"github.com/osse101/XIVMarket_Go/internal/domain"
	"github.com/osse101/XIVMarket_Go/internal/logger"
	"github.com/osse101/XIVMarket_Go/internal/metrics"
)

// Result is a merged search outcome.
type Result struct {
	Query      string                 `json:"query"`
	Language   domain.Language        `json:"language"`
	Items      []domain.ItemSummary   `json:"items"`
	Categories []domain.CategoryCount `json:"categories"`
	Warnings   []string               `json:"warnings,omitempty"`
	Partial    bool                   `json:"partial"`
	Generation uint64                 `json:"generation"`
	// Stale is set when a newer search started before this one finished.
	Stale bool `json:"stale"`
}

// NameSink receives localized names seen in search hits.
type NameSink interface {
	Register(itemID int, lang domain.Language, name string)
}

// Service searches items by name.
type Service interface {
	Search(ctx context.Context, query string, lang domain.Language) (*Result, error)
}

// Options configures an Aggregator.
type Options struct {
	Timeout time.Duration
	State   *appstate.State
	Names   NameSink
}

// Aggregator is the multi-backend Service.
type Aggregator struct {
	backends []Backend
	timeout  time.Duration
	state    *appstate.State
	names    NameSink
}

type backendResult struct {
	backend Backend
	items   []domain.ItemSummary
	err     error
}

// NewAggregator creates an aggregator over backends, ordered by descending priority.
func NewAggregator(opts Options, backends ...Backend) *Aggregator {
	sorted := append([]Backend(nil), backends...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority() > sorted[j].Priority() })
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultBackendTimeout
	}
	return &Aggregator{backends: sorted, timeout: opts.Timeout, state: opts.State, names: opts.Names}
}

// Search queries every backend that applies to lang concurrently and merges the hits.
// It fails only when every backend failed.
func (a *Aggregator) Search(ctx context.Context, query string, lang domain.Language) (*Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%s: %w", ErrMsgEmptyQuery, domain.ErrInvalidInput)
	}

	var gen uint64
	if a.state != nil {
		gen = a.state.Generations.Next(appstate.KindSearch)
		ctx = logger.WithGeneration(ctx, gen)
	}
	log := logger.FromContext(ctx)

	selected := a.backendsFor(lang)
	if len(selected) == 0 {
		log.Warn(LogMsgNoBackendForLang, "language", lang)
		metrics.SearchesTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf(ErrMsgNoBackendFmt, lang, domain.ErrTotalSearchFailure)
	}
	log.Info(LogMsgSearchStarted, "query", query, "language", lang, "backends", len(selected))

	results := make([]backendResult, len(selected))
	var g errgroup.Group
	for i, b := range selected {
		i, b := i, b
		g.Go(func() error {
			bctx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()
			items, err := b.Search(bctx, query, lang)
			results[i] = backendResult{backend: b, items: items, err: err}
			return nil
		})
	}
	_ = g.Wait()

	res := &Result{Query: query, Language: lang, Generation: gen}
	var errs []error
	for _, r := range results {
		if r.err == nil {
			continue
		}
		log.Warn(LogMsgBackendFailed, "backend", r.backend.Name(), "error", r.err)
		errs = append(errs, r.err)
		res.Warnings = append(res.Warnings, warning(r.backend.Name(), r.err))
	}

	if len(errs) == len(results) {
		metrics.SearchesTotal.WithLabelValues(outcomeOf(errs)).Inc()
		return nil, errors.Join(append([]error{domain.ErrTotalSearchFailure}, errs...)...)
	}
	if len(errs) > 0 {
		res.Partial = true
		log.Warn(LogMsgPartialFailure, "error", errors.Join(domain.ErrPartialSearchFailure, errors.Join(errs...)))
		metrics.SearchesTotal.WithLabelValues(metrics.OutcomePartial).Inc()
	} else {
		metrics.SearchesTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	}

	res.Items = merge(results...)
	res.Categories = Categories(res.Items)
	a.register(res.Items, lang)

	if a.state != nil {
		if a.state.Generations.IsCurrent(appstate.KindSearch, gen) {
			a.state.SetLastResults(res.Items)
		} else {
			res.Stale = true
			log.Info(LogMsgStaleSearch, "query", query)
			metrics.StaleResultsTotal.WithLabelValues(string(appstate.KindSearch)).Inc()
		}
	}

	log.Info(LogMsgSearchCompleted, "query", query, "results", len(res.Items), "partial", res.Partial)
	return res, nil
}

// backendsFor picks every supporting backend for the primary locale and
// only the highest-priority supporting backend otherwise.
func (a *Aggregator) backendsFor(lang domain.Language) []Backend {
	var out []Backend
	for _, b := range a.backends {
		if !b.Supports(lang) {
			continue
		}
		out = append(out, b)
		if !lang.IsPrimary() {
			break
		}
	}
	return out
}

// register feeds primary-locale names from the primary backend to the name cache.
func (a *Aggregator) register(items []domain.ItemSummary, lang domain.Language) {
	if a.names == nil || !lang.IsPrimary() {
		return
	}
	for _, it := range items {
		if it.Source == BackendPrimary {
			a.names.Register(it.ID, lang, it.Name)
		}
	}
}

// merge combines backend results given in descending priority.
// An id already present is never overwritten. Output is sorted by ascending id.
func merge(results ...backendResult) []domain.ItemSummary {
	byID := make(map[int]domain.ItemSummary)
	for _, r := range results {
		if r.err != nil {
			continue
		}
		for _, it := range r.items {
			if _, exists := byID[it.ID]; exists {
				continue
			}
			byID[it.ID] = it
		}
	}

	out := make([]domain.ItemSummary, 0, len(byID))
	for _, it := range byID {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func warning(backend string, err error) string {
	if domain.IsTimeout(err) {
		return fmt.Sprintf(WarnMsgBackendTimeout, backend)
	}
	return fmt.Sprintf(WarnMsgBackendFmt, backend, err.Error())
}

func outcomeOf(errs []error) string {
	for _, err := range errs {
		if !domain.IsTimeout(err) {
			return metrics.OutcomeError
		}
	}
	return metrics.OutcomeTimeout
}
