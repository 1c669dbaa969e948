package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/algoscope/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_Validate(t *testing.T) {
	g := domain.Graph{
		Nodes: []domain.Node{{ID: "a"}, {ID: "b"}},
		Edges: []domain.Edge{
			{U: "a", V: "b"},
			{U: "a", V: "zz"},
			{U: "yy", V: "b"},
		},
	}

	issues := g.Validate()
	require.Len(t, issues, 2)
	assert.Equal(t, 1, issues[0].Index)
	assert.Equal(t, "zz", issues[0].Missing)
	assert.Equal(t, "yy", issues[1].Missing)
}

func TestInput_CloneIsolated(t *testing.T) {
	in := domain.Input{
		Array: []float64{3, 1, 2},
		Graph: domain.Graph{
			Nodes: []domain.Node{{ID: "a"}},
			Edges: []domain.Edge{{U: "a", V: "a", Weight: 1}},
		},
	}
	c := in.Clone()
	in.Array[0] = 99
	in.Graph.Nodes[0].ID = "mutated"
	in.Graph.Edges[0].Weight = 42

	assert.Equal(t, []float64{3, 1, 2}, c.Array)
	assert.Equal(t, "a", c.Graph.Nodes[0].ID)
	assert.Equal(t, 1.0, c.Graph.Edges[0].Weight)
}

func TestDistance_JSON(t *testing.T) {
	in := map[string]domain.Distance{"a": 0, "b": 2.5, "c": domain.Inf()}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":0,"b":2.5,"c":"Infinity"}`, string(data))

	var out map[string]domain.Distance
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, out["c"].IsInf())
	assert.Equal(t, domain.Distance(2.5), out["b"])
}

func TestStep_CloneIsDeep(t *testing.T) {
	s := domain.Step{
		Array: &domain.ArrayState{Values: []float64{1, 2}, Buckets: [][]float64{{1}}},
		Graph: &domain.GraphState{
			Visited:   []string{"a"},
			Distances: map[string]domain.Distance{"a": 0},
		},
	}
	c := s.Clone()
	s.Array.Values[0] = 9
	s.Array.Buckets[0][0] = 9
	s.Graph.Visited[0] = "z"
	s.Graph.Distances["a"] = 5

	assert.Equal(t, 1.0, c.Array.Values[0])
	assert.Equal(t, 1.0, c.Array.Buckets[0][0])
	assert.Equal(t, "a", c.Graph.Visited[0])
	assert.Equal(t, domain.Distance(0), c.Graph.Distances["a"])
}
