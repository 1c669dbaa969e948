package ports

import (
	"context"

	"github.com/aretw0/algoscope/pkg/domain"
)

// ScenarioLibrary serves named algorithm inputs.
type ScenarioLibrary interface {
	// Get returns the scenario or domain.ErrScenarioNotFound.
	Get(ctx context.Context, id string) (*domain.Scenario, error)

	// List returns every scenario ordered by ID.
	List(ctx context.Context) ([]domain.Scenario, error)
}
