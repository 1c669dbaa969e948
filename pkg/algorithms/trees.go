package algorithms

import (
	"fmt"
	"iter"
	"slices"

	"github.com/aretw0/algoscope/pkg/domain"
)

// forest is a union-find over node indices.
type forest struct {
	parent []int
	rank   []int
}

func newForest(n int) *forest {
	f := &forest{parent: make([]int, n), rank: make([]int, n)}
	for i := range f.parent {
		f.parent[i] = i
	}
	return f
}

func (f *forest) find(x int) int {
	for f.parent[x] != x {
		f.parent[x] = f.parent[f.parent[x]]
		x = f.parent[x]
	}
	return x
}

// union merges the sets of a and b. It reports false when they already share a root.
func (f *forest) union(a, b int) bool {
	ra, rb := f.find(a), f.find(b)
	if ra == rb {
		return false
	}
	switch {
	case f.rank[ra] < f.rank[rb]:
		ra, rb = rb, ra
	case f.rank[ra] == f.rank[rb]:
		f.rank[ra]++
	}
	f.parent[rb] = ra
	return true
}

type spanning struct {
	*emitter
	v     *view
	tree  []domain.Edge
	total float64
}

func (s *spanning) step(kind domain.StepKind, desc string, active int, edge *domain.Edge) domain.Step {
	gs := &domain.GraphState{
		ActiveEdge:  edge,
		TreeEdges:   cloneSlice(s.tree),
		TotalWeight: s.total,
	}
	if active >= 0 {
		gs.Active = s.v.ids[active]
	}
	return domain.Step{Kind: kind, Description: desc, Graph: gs}
}

func (s *spanning) accept(a arc) {
	s.tree = append(s.tree, domain.Edge{U: s.v.ids[a.from], V: s.v.ids[a.to], Weight: a.weight})
	s.total += a.weight
}

func (s *spanning) complete() bool {
	st := s.step(domain.KindComplete, fmt.Sprintf("Spanning forest has %d edges, total weight %g", len(s.tree), s.total), -1, nil)
	st.Terminal = true
	st.Outcome = domain.OutcomeCompleted
	return s.emit(st)
}

// Kruskal considers edges by ascending weight, accepting those that join two
// different union-find sets. Disconnected graphs produce a spanning forest.
func Kruskal(in domain.Input) (iter.Seq[domain.Step], error) {
	v := newView(in.Graph, forceUndirected)
	order := make([]arc, 0, len(v.edges))
	for _, e := range v.edges {
		order = append(order, arc{from: v.idx[e.U], to: v.idx[e.V], weight: e.Weight, edge: e})
	}
	slices.SortStableFunc(order, func(a, b arc) int {
		switch {
		case a.weight < b.weight:
			return -1
		case a.weight > b.weight:
			return 1
		}
		return 0
	})
	return func(yield func(domain.Step) bool) {
		s := &spanning{emitter: newEmitter("kruskal", yield), v: v}
		uf := newForest(v.size())
		parents := func() map[string]string {
			m := make(map[string]string, v.size())
			for i, id := range v.ids {
				m[id] = v.ids[uf.find(i)]
			}
			return m
		}

		st := s.step(domain.KindInit, fmt.Sprintf("%d edges sorted by weight; every node is its own set", len(order)), -1, nil)
		st.Graph.Parent = parents()
		st.Warnings = cloneSlice(v.warnings)
		if !s.emit(st) {
			return
		}

		for _, a := range order {
			if len(s.tree) >= v.size()-1 {
				break
			}
			u, w := v.ids[a.from], v.ids[a.to]
			st := s.step(domain.KindConsider, fmt.Sprintf("Edge %s–%s (%g): find(%s)=%s, find(%s)=%s", u, w, a.weight,
				u, v.ids[uf.find(a.from)], w, v.ids[uf.find(a.to)]), a.from, v.activeEdge(a))
			st.Graph.Parent = parents()
			if !s.emit(st) {
				return
			}
			if uf.union(a.from, a.to) {
				s.accept(a)
				st = s.step(domain.KindAccept, fmt.Sprintf("Edge %s–%s joins two sets", u, w), a.from, v.activeEdge(a))
			} else {
				st = s.step(domain.KindReject, fmt.Sprintf("Edge %s–%s would close a cycle", u, w), a.from, v.activeEdge(a))
			}
			st.Graph.Parent = parents()
			if !s.emit(st) {
				return
			}
		}

		st = s.step(domain.KindComplete, fmt.Sprintf("Spanning forest has %d edges, total weight %g", len(s.tree), s.total), -1, nil)
		st.Graph.Parent = parents()
		st.Terminal = true
		st.Outcome = domain.OutcomeCompleted
		s.emit(st)
	}, nil
}

// Prim grows a tree from the start node, always taking the lightest arc that
// leaves it. When the frontier empties it restarts from the next node not yet
// in the tree, so disconnected graphs also yield a spanning forest.
func Prim(in domain.Input) (iter.Seq[domain.Step], error) {
	start, err := resolveStart(in.Graph, in.Start)
	if err != nil {
		return nil, fmt.Errorf("prim: %w", err)
	}
	v := newView(in.Graph, forceUndirected)
	return func(yield func(domain.Step) bool) {
		s := &spanning{emitter: newEmitter("prim", yield), v: v}
		inTree := make([]bool, v.size())
		var visited []string
		with := func(st domain.Step, q *pqueue) domain.Step {
			st.Graph.Visited = cloneSlice(visited)
			if q != nil {
				st.Graph.Frontier = q.members(v.ids, inTree)
			}
			return st
		}

		st := s.step(domain.KindInit, fmt.Sprintf("Growing a minimum spanning tree from %q", start), -1, nil)
		st.Warnings = cloneSlice(v.warnings)
		if !s.emit(st) {
			return
		}

		for _, root := range v.roots(start) {
			if inTree[root] {
				continue
			}
			inTree[root] = true
			visited = append(visited, v.ids[root])
			q := &pqueue{}
			for _, a := range v.out[root] {
				q.push(pqItem{node: a.to, priority: domain.Distance(a.weight), arc: a})
			}
			if !s.emit(with(s.step(domain.KindComponent, fmt.Sprintf("Tree grows from %q", v.ids[root]), root, nil), q)) {
				return
			}
			for q.len() > 0 {
				it := q.pop()
				a := it.arc
				u, w := v.ids[a.from], v.ids[a.to]
				if inTree[a.to] {
					if !s.emit(with(s.step(domain.KindReject, fmt.Sprintf("Edge %s–%s (%g): %s already in tree", u, w, a.weight, w), a.from, v.activeEdge(a)), q)) {
						return
					}
					continue
				}
				inTree[a.to] = true
				visited = append(visited, w)
				s.accept(a)
				for _, next := range v.out[a.to] {
					if !inTree[next.to] {
						q.push(pqItem{node: next.to, priority: domain.Distance(next.weight), arc: next})
					}
				}
				if !s.emit(with(s.step(domain.KindAccept, fmt.Sprintf("Edge %s–%s (%g) is the lightest crossing edge", u, w, a.weight), a.to, v.activeEdge(a)), q)) {
					return
				}
			}
		}

		s.complete()
	}, nil
}
