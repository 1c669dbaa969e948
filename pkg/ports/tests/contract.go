package tests

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/algoscope/pkg/domain"
	"github.com/aretw0/algoscope/pkg/ports"
)

// ScenarioLibraryContractTest is a reusable test suite that verifies if an adapter
// complies with ports.ScenarioLibrary. want holds the scenarios the library was seeded with.
func ScenarioLibraryContractTest(t *testing.T, lib ports.ScenarioLibrary, want map[string]domain.Scenario) {
	t.Helper()
	ctx := context.Background()

	t.Run("Get_Success", func(t *testing.T) {
		for id, expected := range want {
			got, err := lib.Get(ctx, id)
			require.NoError(t, err, id)
			assert.Equal(t, id, got.ID)
			assert.Equal(t, expected.Algorithm, got.Algorithm)
			assert.Equal(t, expected.Input.Array, got.Input.Array)
			assert.Equal(t, expected.Input.Start, got.Input.Start)
			assert.Equal(t, expected.Input.Graph.IDs(), got.Input.Graph.IDs())
			assert.Equal(t, expected.Input.Graph.Edges, got.Input.Graph.Edges)
		}
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		_, err := lib.Get(ctx, "non-existent-scenario")
		assert.ErrorIs(t, err, domain.ErrScenarioNotFound)
	})

	t.Run("List", func(t *testing.T) {
		list, err := lib.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, len(want))
		ids := make([]string, len(list))
		for i, s := range list {
			ids[i] = s.ID
			_, ok := want[s.ID]
			assert.True(t, ok, "unexpected scenario %s", s.ID)
		}
		assert.True(t, slices.IsSorted(ids), "list is ordered by id")
	})
}
