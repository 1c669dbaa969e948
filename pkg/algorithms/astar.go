package algorithms

import (
	"fmt"
	"iter"
	"math"

	"github.com/aretw0/algoscope/pkg/domain"
)

type heuristic func(a, b domain.Node) float64

var heuristics = map[string]heuristic{
	domain.HeuristicEuclidean: func(a, b domain.Node) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) },
	domain.HeuristicManhattan: func(a, b domain.Node) float64 { return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y) },
	domain.HeuristicZero:      func(domain.Node, domain.Node) float64 { return 0 },
}

// AStar searches from start to goal, expanding the open node with the lowest
// f = g + h where h is measured between node positions. An empty heuristic
// name selects euclidean. An empty graph yields an init step and an
// unreachable terminal step.
func AStar(in domain.Input) (iter.Seq[domain.Step], error) {
	if len(in.Graph.Nodes) == 0 {
		return emptySearch(in.Graph), nil
	}
	start, err := resolveStart(in.Graph, in.Start)
	if err != nil {
		return nil, fmt.Errorf("astar: %w", err)
	}
	if !in.Graph.HasNode(in.Goal) {
		return nil, fmt.Errorf("astar: %q: %w", in.Goal, domain.ErrGoalNotFound)
	}
	name := in.Heuristic
	if name == "" {
		name = domain.HeuristicEuclidean
	}
	h, ok := heuristics[name]
	if !ok {
		return nil, fmt.Errorf("astar: %q: %w", name, domain.ErrUnknownHeuristic)
	}
	v := newView(in.Graph, asDeclared)
	s, goal := v.idx[start], v.idx[in.Goal]
	return func(yield func(domain.Step) bool) {
		e := newEmitter("astar", yield)
		g := infinities(v.size())
		f := infinities(v.size())
		pred := minusOnes(v.size())
		closed := make([]bool, v.size())
		var closedOrder []string
		open := &pqueue{}
		score := func(d []domain.Distance) map[string]domain.Distance {
			m := make(map[string]domain.Distance)
			for i, x := range d {
				if !x.IsInf() {
					m[v.ids[i]] = x
				}
			}
			return m
		}
		step := func(kind domain.StepKind, desc string, active int, edge *domain.Edge) domain.Step {
			gs := &domain.GraphState{
				ActiveEdge:   edge,
				Open:         open.members(v.ids, closed),
				Closed:       cloneSlice(closedOrder),
				GScore:       score(g),
				FScore:       score(f),
				Predecessors: v.predecessorMap(pred),
			}
			if active >= 0 {
				gs.Active = v.ids[active]
			}
			return domain.Step{Kind: kind, Description: desc, Graph: gs}
		}

		g[s] = 0
		f[s] = domain.Distance(h(v.nodes[s], v.nodes[goal]))
		open.push(pqItem{node: s, priority: f[s]})
		st := step(domain.KindInit, fmt.Sprintf("Searching %q → %q with the %s heuristic", start, in.Goal, name), -1, nil)
		st.Warnings = cloneSlice(v.warnings)
		if !e.emit(st) {
			return
		}

		for open.len() > 0 {
			u := open.pop().node
			if closed[u] {
				continue
			}
			if u == goal {
				st := step(domain.KindFinish, fmt.Sprintf("Reached %q with cost %s", in.Goal, g[u]), u, nil)
				st.Graph.Path = v.path(pred, goal)
				st.Terminal = true
				st.Outcome = domain.OutcomeFound
				e.emit(st)
				return
			}
			closed[u] = true
			closedOrder = append(closedOrder, v.ids[u])
			if !e.emit(step(domain.KindVisit, fmt.Sprintf("Expand %q (g=%s, f=%s)", v.ids[u], g[u], f[u]), u, nil)) {
				return
			}
			for _, a := range v.out[u] {
				w := a.to
				if closed[w] {
					continue
				}
				tentative := g[u] + domain.Distance(a.weight)
				desc := fmt.Sprintf("Neighbor %q: g=%s is no better than %s", v.ids[w], tentative, g[w])
				kind := domain.KindCheck
				if tentative < g[w] {
					g[w] = tentative
					f[w] = tentative + domain.Distance(h(v.nodes[w], v.nodes[goal]))
					pred[w] = u
					open.push(pqItem{node: w, priority: f[w]})
					desc = fmt.Sprintf("Neighbor %q: g=%s, f=%s", v.ids[w], g[w], f[w])
					kind = domain.KindRelax
				}
				if !e.emit(step(kind, desc, u, v.activeEdge(a))) {
					return
				}
			}
		}

		st = step(domain.KindFinish, fmt.Sprintf("Open set exhausted: %q is unreachable", in.Goal), -1, nil)
		st.Terminal = true
		st.Outcome = domain.OutcomeUnreachable
		e.emit(st)
	}, nil
}

func emptySearch(g domain.Graph) iter.Seq[domain.Step] {
	v := newView(g, asDeclared)
	return func(yield func(domain.Step) bool) {
		e := newEmitter("astar", yield)
		st := domain.Step{Kind: domain.KindInit, Description: "Nothing to search: the graph is empty", Graph: &domain.GraphState{}}
		st.Warnings = cloneSlice(v.warnings)
		if !e.emit(st) {
			return
		}
		e.emit(domain.Step{
			Kind:        domain.KindComplete,
			Description: "No path: the graph is empty",
			Terminal:    true,
			Outcome:     domain.OutcomeUnreachable,
			Graph:       &domain.GraphState{},
		})
	}
}
