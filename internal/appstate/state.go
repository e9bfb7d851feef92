// Package appstate holds the process-wide selection (server, datacenter,
// language) and the generation counters used to discard superseded results.
package appstate

import (
	"sync"

	"github.com/osse101/XIVMarket_Go/internal/domain"
)

// Snapshot is an immutable copy of the selection taken at the start of an operation.
type Snapshot struct {
	Server     string          `json:"server"`
	Datacenter string          `json:"datacenter"`
	Language   domain.Language `json:"language"`
}

// State is the single-writer, many-reader application state.
type State struct {
	mu          sync.RWMutex
	server      string
	datacenter  string
	lang        domain.Language
	lastResults []domain.ItemSummary

	Generations *Generations
}

// New creates a State seeded with initial preferences.
func New(initial Snapshot) *State {
	lang := initial.Language
	if lang == "" {
		lang = domain.LanguageAuto
	}
	return &State{
		server:      initial.Server,
		datacenter:  initial.Datacenter,
		lang:        lang,
		Generations: NewGenerations(),
	}
}

// Snapshot returns the current selection.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Server: s.server, Datacenter: s.datacenter, Language: s.lang}
}

// SetServer selects a world.
func (s *State) SetServer(server string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.server = server
}

// SetDatacenter selects a datacenter. Changing it clears the server, which belongs to the old one.
func (s *State) SetDatacenter(dc string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dc != s.datacenter {
		s.server = ""
	}
	s.datacenter = dc
}

// SetLanguage selects the display language.
func (s *State) SetLanguage(lang domain.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lang = lang
}

// SetLastResults stores the latest search results.
func (s *State) SetLastResults(items []domain.ItemSummary) {
	cp := append([]domain.ItemSummary(nil), items...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastResults = cp
}

// LastResults returns a copy of the latest search results.
func (s *State) LastResults() []domain.ItemSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ItemSummary(nil), s.lastResults...)
}
