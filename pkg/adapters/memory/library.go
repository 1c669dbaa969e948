package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/algoscope/pkg/domain"
)

// Library implements ports.ScenarioLibrary over a fixed set of scenarios.
type Library struct {
	scenarios map[string]domain.Scenario
}

// NewLibrary creates a library from domain objects. IDs must be unique and non-empty.
func NewLibrary(scenarios ...domain.Scenario) (*Library, error) {
	data := make(map[string]domain.Scenario, len(scenarios))
	for _, s := range scenarios {
		if s.ID == "" {
			return nil, fmt.Errorf("scenario missing ID")
		}
		if _, dup := data[s.ID]; dup {
			return nil, fmt.Errorf("duplicate scenario %q", s.ID)
		}
		s.Input = s.Input.Clone()
		data[s.ID] = s
	}
	return &Library{scenarios: data}, nil
}

// Get returns a copy of the scenario.
func (l *Library) Get(ctx context.Context, id string) (*domain.Scenario, error) {
	s, ok := l.scenarios[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrScenarioNotFound, id)
	}
	s.Input = s.Input.Clone()
	return &s, nil
}

// List returns all scenarios ordered by ID.
func (l *Library) List(ctx context.Context) ([]domain.Scenario, error) {
	out := make([]domain.Scenario, 0, len(l.scenarios))
	for _, s := range l.scenarios {
		s.Input = s.Input.Clone()
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b domain.Scenario) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}
