package maps

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"freight-estimate-service/internal/domain"
	"freight-estimate-service/internal/ports"
)

// MockGeocoder answers from a fixed query -> coordinate table and records
// every query it receives. Queries listed in Fail return an error.
type MockGeocoder struct {
	mu      sync.Mutex
	results map[string]domain.Coordinate
	fail    map[string]bool
	calls   []string
}

func NewMockGeocoder(results map[string]domain.Coordinate, fail ...string) *MockGeocoder {
	m := &MockGeocoder{results: results, fail: make(map[string]bool, len(fail))}
	for _, f := range fail {
		m.fail[f] = true
	}
	return m
}

func (m *MockGeocoder) Geocode(ctx context.Context, query string) ([]domain.Coordinate, error) {
	m.mu.Lock()
	m.calls = append(m.calls, query)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.fail[query] {
		return nil, fmt.Errorf("mock geocoder: forced failure for %q", query)
	}

	c, ok := m.results[query]
	if !ok {
		return []domain.Coordinate{}, nil
	}
	return []domain.Coordinate{c}, nil
}

// Calls returns the queries received so far, in order.
func (m *MockGeocoder) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// MockRouter replays scripted responses, one per call. When the script is
// exhausted the last entry repeats.
type MockRouter struct {
	mu     sync.Mutex
	script []MockRouteResponse
	calls  int
}

type MockRouteResponse struct {
	Route ports.ProviderRoute
	Err   error
}

func NewMockRouter(script ...MockRouteResponse) *MockRouter {
	return &MockRouter{script: script}
}

func (m *MockRouter) Route(ctx context.Context, origin, destination domain.Coordinate) (ports.ProviderRoute, error) {
	m.mu.Lock()
	idx := m.calls
	m.calls++
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return ports.ProviderRoute{}, err
	}
	if len(m.script) == 0 {
		return ports.ProviderRoute{}, errors.New("mock router: no scripted responses")
	}
	if idx >= len(m.script) {
		idx = len(m.script) - 1
	}

	r := m.script[idx]
	return r.Route, r.Err
}

// Calls returns the number of Route invocations.
func (m *MockRouter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
