package algorithms

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/algoscope/pkg/domain"
)

var graphGenerators = map[string]Generator{
	"bfs":            BFS,
	"dfs":            DFS,
	"dijkstra":       Dijkstra,
	"bellman-ford":   BellmanFord,
	"floyd-warshall": FloydWarshall,
	"kruskal":        Kruskal,
	"prim":           Prim,
	"topological":    TopologicalSort,
	"kosaraju":       Kosaraju,
	"coloring":       GreedyColoring,
}

func diamond() domain.Graph {
	return graphOf([]domain.Edge{e("1", "2", 1), e("1", "3", 1), e("2", "4", 1), e("3", "4", 1)}, "1", "2", "3", "4")
}

func TestGraph_EmptyInput(t *testing.T) {
	for name, gen := range graphGenerators {
		t.Run(name, func(t *testing.T) {
			steps := run(t, gen, domain.Input{})
			require.Len(t, steps, 2)
			requireWellFormed(t, name, steps)
		})
	}

	t.Run("astar", func(t *testing.T) {
		steps := run(t, AStar, domain.Input{Goal: "Z"})
		require.Len(t, steps, 2)
		requireWellFormed(t, "astar", steps)
		assert.Equal(t, domain.OutcomeUnreachable, last(steps).Outcome)
	})
}

func TestGraph_RestartableAndDeterministic(t *testing.T) {
	for name, gen := range graphGenerators {
		t.Run(name, func(t *testing.T) {
			seq, err := gen(domain.Input{Graph: diamond(), Start: "1"})
			require.NoError(t, err)
			first := collect(t, seq)
			requireWellFormed(t, name, first)
			assert.Equal(t, first, collect(t, seq))

			again := run(t, gen, domain.Input{Graph: diamond(), Start: "1"})
			assert.Equal(t, first, again)
		})
	}
}

func TestGraph_SkipsMalformedEdges(t *testing.T) {
	g := diamond()
	g.Edges = append(g.Edges, e("1", "Z", 3))
	for name, gen := range graphGenerators {
		t.Run(name, func(t *testing.T) {
			steps := run(t, gen, domain.Input{Graph: g, Start: "1"})
			requireWellFormed(t, name, steps)
			require.Len(t, steps[0].Warnings, 1)
			assert.Contains(t, steps[0].Warnings[0], "Z")
			for _, s := range steps[1:] {
				assert.Empty(t, s.Warnings)
			}
		})
	}
}

func TestGraph_InputIsSnapshotted(t *testing.T) {
	g := diamond()
	seq, err := BFS(domain.Input{Graph: g, Start: "1"})
	require.NoError(t, err)
	g.Nodes[3].ID = "changed"
	g.Edges[0].V = "changed"

	final := last(collect(t, seq))
	assert.ElementsMatch(t, []string{"1", "2", "3", "4"}, final.Graph.Visited)
}

func TestGraph_StartNotFound(t *testing.T) {
	for _, gen := range []Generator{BFS, DFS, Dijkstra, BellmanFord, Prim, AStar} {
		_, err := gen(domain.Input{Graph: diamond(), Start: "nope", Goal: "4"})
		require.ErrorIs(t, err, domain.ErrStartNotFound)
	}
}

func TestBFS_Scenario(t *testing.T) {
	steps := run(t, BFS, domain.Input{Graph: diamond(), Start: "1"})
	final := last(steps)
	assert.Equal(t, []string{"1", "2", "3", "4"}, final.Graph.Order)
	assert.Equal(t, 1, final.Graph.ComponentsFound)
	assert.Equal(t, domain.OutcomeCompleted, final.Outcome)
}

func TestTraversal_ContinuesIntoOtherComponents(t *testing.T) {
	g := graphOf([]domain.Edge{e("A", "B", 1), e("C", "D", 1)}, "A", "B", "C", "D", "E")
	for _, gen := range []Generator{BFS, DFS} {
		final := last(run(t, gen, domain.Input{Graph: g, Start: "C"}))
		assert.Equal(t, 3, final.Graph.ComponentsFound)
		assert.Equal(t, "C", final.Graph.Order[0])
		assert.ElementsMatch(t, []string{"A", "B", "C", "D", "E"}, final.Graph.Order)
	}
}

func TestDFS_GoesDeepFirst(t *testing.T) {
	g := graphOf([]domain.Edge{e("A", "B", 1), e("A", "C", 1), e("B", "D", 1)}, "A", "B", "C", "D")
	final := last(run(t, DFS, domain.Input{Graph: g, Start: "A"}))
	assert.Equal(t, []string{"A", "B", "D", "C"}, final.Graph.Order)
}

func TestTraversal_RespectsDirection(t *testing.T) {
	g := graphOf([]domain.Edge{d("B", "A", 1)}, "A", "B")
	final := last(run(t, BFS, domain.Input{Graph: g, Start: "A"}))
	assert.Equal(t, 2, final.Graph.ComponentsFound)
}

func TestBellmanFord_Scenario(t *testing.T) {
	g := graphOf([]domain.Edge{
		d("A", "B", 6), d("A", "C", 7), d("B", "C", 8),
		d("B", "D", -4), d("C", "D", 9), d("C", "B", -3),
	}, "A", "B", "C", "D")
	steps := run(t, BellmanFord, domain.Input{Graph: g, Start: "A"})
	requireWellFormed(t, "bellman-ford", steps)

	final := last(steps)
	assert.Equal(t, domain.OutcomeCompleted, final.Outcome)
	assert.False(t, final.Graph.HasNegativeCycle)
	assert.Equal(t, map[string]domain.Distance{"A": 0, "B": 4, "C": 7, "D": 0}, final.Graph.Distances)
	assert.Equal(t, map[string]string{"B": "C", "C": "A", "D": "B"}, final.Graph.Predecessors)
}

func TestBellmanFord_NegativeCycle(t *testing.T) {
	g := graphOf([]domain.Edge{d("A", "B", 1), d("B", "C", -2), d("C", "B", 1)}, "A", "B", "C")
	steps := run(t, BellmanFord, domain.Input{Graph: g, Start: "A"})
	final := last(steps)
	assert.Equal(t, domain.OutcomeNegativeCycle, final.Outcome)
	assert.True(t, final.Graph.HasNegativeCycle)
	for _, s := range steps {
		assert.NotEqual(t, domain.KindComplete, s.Kind)
	}
}

func TestDijkstra_MatchesBellmanFord(t *testing.T) {
	g := graphOf([]domain.Edge{
		e("A", "B", 4), e("A", "C", 1), e("C", "B", 2), e("B", "D", 5), e("C", "D", 8),
	}, "A", "B", "C", "D", "E")
	in := domain.Input{Graph: g, Start: "A"}

	dj := last(run(t, Dijkstra, in))
	bf := last(run(t, BellmanFord, in))
	assert.Equal(t, bf.Graph.Distances, dj.Graph.Distances)
	assert.Equal(t, domain.Distance(3), dj.Graph.Distances["B"])
	assert.True(t, dj.Graph.Distances["E"].IsInf())
	assert.Equal(t, []string{"A", "C", "B", "D"}, dj.Graph.Settled)
}

func TestDijkstra_StepsPerSettleAndRelax(t *testing.T) {
	g := graphOf([]domain.Edge{d("A", "B", 1), d("A", "C", 4), d("B", "C", 1)}, "A", "B", "C")
	steps := run(t, Dijkstra, domain.Input{Graph: g, Start: "A"})
	var settles, relaxes int
	for _, s := range steps {
		switch s.Kind {
		case domain.KindSettle:
			settles++
		case domain.KindRelax:
			relaxes++
		}
	}
	assert.Equal(t, 3, settles)
	assert.Equal(t, 3, relaxes)
}

func TestFloydWarshall_TriangleInequality(t *testing.T) {
	g := graphOf([]domain.Edge{
		d("A", "B", 3), d("B", "C", -1), d("A", "C", 5), e("C", "D", 2), d("D", "A", 7), d("A", "B", 9),
	}, "A", "B", "C", "D")
	steps := run(t, FloydWarshall, domain.Input{Graph: g})
	requireWellFormed(t, "floyd-warshall", steps)

	final := last(steps)
	require.Equal(t, domain.OutcomeCompleted, final.Outcome)
	dist := final.Matrix.Dist
	n := len(dist)
	for k := range n {
		for i := range n {
			for j := range n {
				if dist[i][k].IsInf() || dist[k][j].IsInf() {
					continue
				}
				assert.LessOrEqual(t, float64(dist[i][j]), float64(dist[i][k]+dist[k][j]))
			}
		}
	}
	assert.Equal(t, domain.Distance(2), dist[0][2])
	assert.Equal(t, "B", final.Matrix.Next[0][2])
	// 1 init + n phase + n*n row + n*n*n cell + terminal
	assert.Len(t, steps, 1+n+n*n+n*n*n+1)
}

func TestFloydWarshall_NegativeCycle(t *testing.T) {
	g := graphOf([]domain.Edge{d("A", "B", 1), d("B", "A", -3)}, "A", "B")
	final := last(run(t, FloydWarshall, domain.Input{Graph: g}))
	assert.Equal(t, domain.OutcomeNegativeCycle, final.Outcome)
	assert.True(t, final.Matrix.HasNegativeCycle)
}

func TestMinimumSpanningTrees(t *testing.T) {
	g := graphOf([]domain.Edge{
		e("A", "B", 1), e("B", "C", 2), e("A", "C", 3), e("C", "D", 4), e("E", "F", 6),
	}, "A", "B", "C", "D", "E", "F")
	for name, gen := range map[string]Generator{"kruskal": Kruskal, "prim": Prim} {
		t.Run(name, func(t *testing.T) {
			steps := run(t, gen, domain.Input{Graph: g, Start: "A"})
			requireWellFormed(t, name, steps)
			final := last(steps)
			assert.Len(t, final.Graph.TreeEdges, 4)
			assert.Equal(t, 13.0, final.Graph.TotalWeight)

			var rejected int
			for _, s := range steps {
				if s.Kind == domain.KindReject {
					rejected++
				}
			}
			assert.Positive(t, rejected, "A–C closes a cycle")
		})
	}
}

func TestKruskal_UnionFindParents(t *testing.T) {
	g := graphOf([]domain.Edge{e("A", "B", 1), e("C", "D", 1)}, "A", "B", "C", "D")
	final := last(run(t, Kruskal, domain.Input{Graph: g}))
	p := final.Graph.Parent
	assert.Equal(t, p["A"], p["B"])
	assert.Equal(t, p["C"], p["D"])
	assert.NotEqual(t, p["A"], p["C"])
}

func TestTopologicalSort(t *testing.T) {
	edges := []domain.Edge{e("shirt", "tie", 1), e("tie", "jacket", 1), e("pants", "shoes", 1), e("pants", "jacket", 1)}
	g := graphOf(edges, "shirt", "pants", "tie", "shoes", "jacket")
	final := last(run(t, TopologicalSort, domain.Input{Graph: g}))
	require.Equal(t, domain.OutcomeCompleted, final.Outcome)
	require.Len(t, final.Graph.Order, 5)
	for _, ed := range edges {
		assert.Less(t, slices.Index(final.Graph.Order, ed.U), slices.Index(final.Graph.Order, ed.V), "%s before %s", ed.U, ed.V)
	}
}

func TestTopologicalSort_Cycle(t *testing.T) {
	g := graphOf([]domain.Edge{e("A", "B", 1), e("B", "C", 1), e("C", "B", 1)}, "A", "B", "C")
	final := last(run(t, TopologicalSort, domain.Input{Graph: g}))
	assert.Equal(t, domain.OutcomeCycleDetected, final.Outcome)
	assert.True(t, final.Graph.HasCycle)
	assert.Equal(t, []string{"A"}, final.Graph.Order)
}

func TestKosaraju(t *testing.T) {
	g := graphOf([]domain.Edge{
		e("A", "B", 1), e("B", "C", 1), e("C", "A", 1), e("C", "D", 1), e("D", "E", 1), e("E", "D", 1), e("F", "E", 1),
	}, "A", "B", "C", "D", "E", "F")
	final := last(run(t, Kosaraju, domain.Input{Graph: g}))
	require.Equal(t, 3, final.Graph.ComponentsFound)

	var got [][]string
	for _, c := range final.Graph.Components {
		c = slices.Clone(c)
		slices.Sort(c)
		got = append(got, c)
	}
	assert.ElementsMatch(t, [][]string{{"A", "B", "C"}, {"D", "E"}, {"F"}}, got)
}

func TestKosaraju_ComponentStepsListTheirRoot(t *testing.T) {
	g := graphOf([]domain.Edge{e("A", "B", 1), e("B", "A", 1), e("C", "A", 1)}, "A", "B", "C")
	steps := run(t, Kosaraju, domain.Input{Graph: g})

	roots := 0
	for _, s := range steps {
		if s.Kind != domain.KindComponent {
			continue
		}
		roots++
		require.NotEmpty(t, s.Graph.Components)
		current := s.Graph.Components[len(s.Graph.Components)-1]
		assert.Equal(t, []string{s.Graph.Active}, current, "a new component starts with its root: %s", s.Description)
	}
	assert.Equal(t, 2, roots)
}

func TestGreedyColoring(t *testing.T) {
	g := graphOf([]domain.Edge{e("A", "B", 1), e("B", "C", 1), e("C", "A", 1), e("C", "D", 1)}, "A", "B", "C", "D")
	final := last(run(t, GreedyColoring, domain.Input{Graph: g}))
	assert.Equal(t, map[string]int{"A": 0, "B": 1, "C": 2, "D": 0}, final.Graph.Colors)
	assert.Equal(t, 3, final.Graph.ColorCount)
	for _, ed := range g.Edges {
		assert.NotEqual(t, final.Graph.Colors[ed.U], final.Graph.Colors[ed.V])
	}
}

func TestAStar(t *testing.T) {
	g := domain.Graph{
		Nodes: []domain.Node{
			{ID: "S", X: 0, Y: 0}, {ID: "A", X: 1, Y: 0}, {ID: "B", X: 0, Y: 1}, {ID: "G", X: 2, Y: 0}, {ID: "X", X: 9, Y: 9},
		},
		Edges: []domain.Edge{e("S", "A", 1), e("A", "G", 1), e("S", "B", 1), e("B", "G", 5)},
	}
	for _, h := range []string{"", domain.HeuristicEuclidean, domain.HeuristicManhattan, domain.HeuristicZero} {
		steps := run(t, AStar, domain.Input{Graph: g, Start: "S", Goal: "G", Heuristic: h})
		requireWellFormed(t, "astar", steps)
		final := last(steps)
		assert.Equal(t, domain.OutcomeFound, final.Outcome)
		assert.Equal(t, []string{"S", "A", "G"}, final.Graph.Path)
		assert.Equal(t, domain.Distance(2), final.Graph.GScore["G"])
	}

	final := last(run(t, AStar, domain.Input{Graph: g, Start: "S", Goal: "X"}))
	assert.Equal(t, domain.OutcomeUnreachable, final.Outcome)
	assert.Empty(t, final.Graph.Path)
}

func TestAStar_Errors(t *testing.T) {
	_, err := AStar(domain.Input{Graph: diamond(), Start: "1", Goal: "9"})
	require.ErrorIs(t, err, domain.ErrGoalNotFound)

	_, err = AStar(domain.Input{Graph: diamond(), Start: "1", Goal: "4", Heuristic: "chebyshev"})
	require.ErrorIs(t, err, domain.ErrUnknownHeuristic)
}
