package algorithms

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/algoscope/pkg/domain"
)

func collect(t *testing.T, seq iter.Seq[domain.Step]) []domain.Step {
	t.Helper()
	var out []domain.Step
	for s := range seq {
		out = append(out, s)
		require.Less(t, len(out), 100000, "sequence does not terminate")
	}
	return out
}

func run(t *testing.T, gen Generator, in domain.Input) []domain.Step {
	t.Helper()
	seq, err := gen(in)
	require.NoError(t, err)
	return collect(t, seq)
}

func last(steps []domain.Step) domain.Step { return steps[len(steps)-1] }

func graphOf(edges []domain.Edge, ids ...string) domain.Graph {
	g := domain.Graph{Edges: edges}
	for i, id := range ids {
		g.Nodes = append(g.Nodes, domain.Node{ID: id, Label: id, X: float64(i * 10)})
	}
	return g
}

func e(u, v string, w float64) domain.Edge { return domain.Edge{U: u, V: v, Weight: w} }

func d(u, v string, w float64) domain.Edge { return domain.Edge{U: u, V: v, Weight: w, Directed: true} }

// requireWellFormed checks the sequence contract shared by every generator.
func requireWellFormed(t *testing.T, name string, steps []domain.Step) {
	t.Helper()
	require.NotEmpty(t, steps)
	require.Equal(t, domain.KindInit, steps[0].Kind)
	for i, s := range steps {
		require.Equal(t, i, s.Seq)
		require.Equal(t, name, s.Algorithm)
		require.Equal(t, i == len(steps)-1, s.Terminal, "step %d terminal flag", i)
	}
	require.NotEmpty(t, last(steps).Outcome)
}
