package crafting

import (
	"context"
	"errors"
	"sync"

	"github.com/osse101/XIVMarket_Go/internal/domain"
)

// MockItems is a thread-safe in-memory item.Provider with error injection.
type MockItems struct {
	sync.RWMutex
	items   map[int]*domain.Item
	recipes map[int][]domain.RecipeSummary
	details map[int]*domain.RecipeDetail

	// Error injection for testing
	itemErrors   map[int]error
	recipeErrors map[int]error

	// gates block GetRecipesForItem for an item until closed
	gates map[int]chan struct{}

	recipeCalls map[int]int
}

func NewMockItems() *MockItems {
	return &MockItems{
		items:        make(map[int]*domain.Item),
		recipes:      make(map[int][]domain.RecipeSummary),
		details:      make(map[int]*domain.RecipeDetail),
		itemErrors:   make(map[int]error),
		recipeErrors: make(map[int]error),
		gates:        make(map[int]chan struct{}),
		recipeCalls:  make(map[int]int),
	}
}

func (m *MockItems) AddItem(id int, name string) {
	m.Lock()
	defer m.Unlock()
	m.items[id] = &domain.Item{ID: id, Name: name, Icon: "/i/" + name + ".png"}
}

// AddRecipe registers recipeID as the first recipe producing itemID.
// ingredients alternate item id and amount.
func (m *MockItems) AddRecipe(itemID, recipeID, yield int, ingredients ...int) {
	m.Lock()
	defer m.Unlock()
	d := &domain.RecipeDetail{ID: recipeID, Job: "Blacksmith", Level: 10, Yield: yield, ResultItemID: itemID}
	for i := 0; i+1 < len(ingredients); i += 2 {
		id := ingredients[i]
		name := ""
		if it, ok := m.items[id]; ok {
			name = it.Name
		}
		d.Slots[i/2] = domain.Slot{ItemID: &id, ItemName: name, Amount: ingredients[i+1]}
	}
	m.details[recipeID] = d
	m.recipes[itemID] = append(m.recipes[itemID], domain.RecipeSummary{ID: recipeID, ItemID: itemID})
}

func (m *MockItems) FailItem(id int, err error) {
	m.Lock()
	defer m.Unlock()
	m.itemErrors[id] = err
}

func (m *MockItems) FailRecipes(id int, err error) {
	m.Lock()
	defer m.Unlock()
	m.recipeErrors[id] = err
}

func (m *MockItems) Gate(id int) chan struct{} {
	m.Lock()
	defer m.Unlock()
	g := make(chan struct{})
	m.gates[id] = g
	return g
}

func (m *MockItems) RecipeCalls(id int) int {
	m.RLock()
	defer m.RUnlock()
	return m.recipeCalls[id]
}

func (m *MockItems) GetItem(ctx context.Context, itemID int, lang domain.Language) (*domain.Item, error) {
	m.RLock()
	defer m.RUnlock()
	if err := m.itemErrors[itemID]; err != nil {
		return nil, err
	}
	it, ok := m.items[itemID]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	cp := *it
	return &cp, nil
}

func (m *MockItems) GetRecipesForItem(ctx context.Context, itemID int) ([]domain.RecipeSummary, error) {
	m.Lock()
	m.recipeCalls[itemID]++
	gate := m.gates[itemID]
	m.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.RLock()
	defer m.RUnlock()
	if err := m.recipeErrors[itemID]; err != nil {
		return nil, err
	}
	return append([]domain.RecipeSummary(nil), m.recipes[itemID]...), nil
}

func (m *MockItems) GetRecipeDetail(ctx context.Context, recipeID int, lang domain.Language) (*domain.RecipeDetail, error) {
	m.RLock()
	defer m.RUnlock()
	d, ok := m.details[recipeID]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	cp := *d
	return &cp, nil
}

// MockPrices is an in-memory price.Provider.
type MockPrices struct {
	sync.RWMutex
	unit   map[int]int64
	quotes map[int]*domain.PriceQuote

	shouldFailAggregated bool
	aggregatedCalls      int
	lastServer           string
}

func NewMockPrices() *MockPrices {
	return &MockPrices{unit: make(map[int]int64), quotes: make(map[int]*domain.PriceQuote)}
}

func (m *MockPrices) SetUnit(id int, price int64) {
	m.Lock()
	defer m.Unlock()
	m.unit[id] = price
}

func (m *MockPrices) SetQuote(id int, min int64) {
	m.Lock()
	defer m.Unlock()
	m.quotes[id] = &domain.PriceQuote{ItemID: id, NQ: domain.QualityPrice{Min: &min}}
}

func (m *MockPrices) GetPrice(ctx context.Context, itemID int, server string) (*domain.PriceQuote, error) {
	m.RLock()
	defer m.RUnlock()
	q, ok := m.quotes[itemID]
	if !ok {
		return nil, nil
	}
	cp := *q
	cp.Server = server
	return &cp, nil
}

func (m *MockPrices) GetAggregatedPrices(ctx context.Context, itemIDs []int, server string) (map[int]domain.UnitPrice, error) {
	m.Lock()
	defer m.Unlock()
	m.aggregatedCalls++
	m.lastServer = server
	if m.shouldFailAggregated {
		return nil, errors.Join(domain.ErrUpstream, errors.New("connection reset"))
	}
	out := make(map[int]domain.UnitPrice, len(itemIDs))
	for _, id := range itemIDs {
		ts := int64(1700000000)
		out[id] = domain.UnitPrice{Price: m.unit[id], Timestamp: &ts}
	}
	return out, nil
}

func (m *MockPrices) ListDatacenters(ctx context.Context) ([]domain.Datacenter, error) {
	return nil, nil
}

func (m *MockPrices) ListWorlds(ctx context.Context, datacenter string) ([]domain.World, error) {
	return nil, nil
}

// MockNames localizes names by table lookup.
type MockNames struct {
	sync.Mutex
	names map[int]string
	calls int
}

func (m *MockNames) ResolveName(ctx context.Context, itemID int, lang domain.Language) (string, bool) {
	m.Lock()
	defer m.Unlock()
	m.calls++
	n, ok := m.names[itemID]
	return n, ok
}

func (m *MockNames) ResolveAll(ctx context.Context, ids []int, lang domain.Language, fallback map[int]string) map[int]string {
	out := make(map[int]string, len(ids))
	for _, id := range ids {
		if n, ok := m.ResolveName(ctx, id, lang); ok {
			out[id] = n
			continue
		}
		out[id] = fallback[id]
	}
	return out
}

func (m *MockNames) Register(itemID int, lang domain.Language, name string) {}
