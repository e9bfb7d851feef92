package appstate

import "sync"

// Kind names an operation family whose results supersede each other.
type Kind string

const (
	KindSearch  Kind = "search"
	KindResolve Kind = "resolve"
)

// Generations hands out monotonically increasing tokens per Kind.
// Only the most recently issued token of a Kind is current.
type Generations struct {
	mu      sync.Mutex
	current map[Kind]uint64
}

// NewGenerations creates an empty token source.
func NewGenerations() *Generations {
	return &Generations{current: make(map[Kind]uint64)}
}

// Next issues a new token, making every earlier token of kind stale.
func (g *Generations) Next(kind Kind) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current[kind]++
	return g.current[kind]
}

// IsCurrent reports whether token is still the latest for kind.
func (g *Generations) IsCurrent(kind Kind, token uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current[kind] == token
}

// Current returns the latest token for kind (0 when none was issued).
func (g *Generations) Current(kind Kind) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current[kind]
}
