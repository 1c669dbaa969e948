package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/algoscope/pkg/domain"
)

// RunWorkspaceStoreContract runs a suite of tests to verify that a WorkspaceStore
// implementation adheres to the defined interface contract.
func RunWorkspaceStoreContract(t *testing.T, store WorkspaceStore) {
	ctx := context.Background()
	id := "contract-test-ws-" + time.Now().Format("20060102150405")

	sample := func(id string) *domain.Workspace {
		ws := domain.NewWorkspace(id)
		ws.Algorithm = "dijkstra"
		ws.Mode = "LINK_EDGE"
		ws.Pending = "1"
		ws.NextID = 4
		ws.Input.Start = "1"
		ws.Input.Array = []float64{3, 1, 2}
		ws.Input.Graph = domain.Graph{
			Nodes: []domain.Node{{ID: "1", Label: "1", X: 10, Y: 20}, {ID: "2", Label: "2"}, {ID: "3", Label: "3"}},
			Edges: []domain.Edge{{U: "1", V: "2", Weight: 2.5}, {U: "2", V: "3", Weight: -1, Directed: true}},
		}
		return ws
	}

	t.Run("Save and Load", func(t *testing.T) {
		ws := sample(id)
		require.NoError(t, store.Save(ctx, ws), "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, ws.ID, loaded.ID)
		assert.Equal(t, ws.Algorithm, loaded.Algorithm)
		assert.Equal(t, ws.Mode, loaded.Mode)
		assert.Equal(t, ws.Pending, loaded.Pending)
		assert.Equal(t, ws.NextID, loaded.NextID)
		assert.Equal(t, ws.Input, loaded.Input)
	})

	t.Run("Isolation", func(t *testing.T) {
		ws := sample(id)
		require.NoError(t, store.Save(ctx, ws))
		ws.Input.Graph.Nodes[0].ID = "mutated"

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "1", loaded.Input.Graph.Nodes[0].ID)

		loaded.Input.Graph.Edges[0].Weight = 99
		again, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 2.5, again.Input.Graph.Edges[0].Weight)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrWorkspaceNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sample(id)))
		require.NoError(t, store.Delete(ctx, id), "Delete should not return error")

		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrWorkspaceNotFound, "Load after Delete should return ErrWorkspaceNotFound")
		assert.NoError(t, store.Delete(ctx, id), "Delete is idempotent")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		require.NoError(t, store.Save(ctx, sample(id1)))
		require.NoError(t, store.Save(ctx, sample(id2)))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
