package geocode

import (
	"context"
	"fmt"
	"shop-delivery-service/internal/domain"
	"sync"
)

// MockGeocoder resolves addresses from a fixed table and counts calls.
type MockGeocoder struct {
	mu    sync.Mutex
	m     map[string]domain.Location
	calls int
}

func NewMockGeocoder(m map[string]domain.Location) *MockGeocoder {
	return &MockGeocoder{m: m}
}

func (g *MockGeocoder) Geocode(ctx context.Context, address string) (domain.Location, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++

	if err := ctx.Err(); err != nil {
		return domain.Location{}, err
	}

	loc, ok := g.m[address]
	if !ok {
		return domain.Location{}, fmt.Errorf("mock geocode %q: %w", address, ErrNoResult)
	}
	return loc, nil
}

func (g *MockGeocoder) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}
