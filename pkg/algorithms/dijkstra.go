package algorithms

import (
	"fmt"
	"iter"

	"github.com/aretw0/algoscope/pkg/domain"
)

// Dijkstra settles nodes in order of tentative distance, emitting one step per
// settled node and one per relaxation attempt.
//
// Negative weights are not detected: results are undefined for them, route such
// graphs to BellmanFord instead. Unreachable nodes keep an infinite distance.
func Dijkstra(in domain.Input) (iter.Seq[domain.Step], error) {
	start, err := resolveStart(in.Graph, in.Start)
	if err != nil {
		return nil, fmt.Errorf("dijkstra: %w", err)
	}
	v := newView(in.Graph, asDeclared)
	return func(yield func(domain.Step) bool) {
		p := newPaths("dijkstra", v, start, yield)
		q := &pqueue{}
		if s, ok := v.idx[start]; ok {
			q.push(pqItem{node: s, priority: 0})
		}

		st := p.step(domain.KindInit, fmt.Sprintf("Distances start at ∞ except %q = 0", start), -1, nil)
		st.Graph.Frontier = q.members(v.ids, p.settled)
		st.Warnings = cloneSlice(v.warnings)
		if !p.emit(st) {
			return
		}

		for q.len() > 0 {
			it := q.pop()
			u := it.node
			if p.settled[u] {
				continue
			}
			p.settled[u] = true
			p.order = append(p.order, v.ids[u])
			st := p.step(domain.KindSettle, fmt.Sprintf("Settled %q at distance %s", v.ids[u], p.dist[u]), u, nil)
			st.Graph.Frontier = q.members(v.ids, p.settled)
			if !p.emit(st) {
				return
			}

			for _, a := range v.out[u] {
				before := p.dist[a.to]
				improved := p.relax(a)
				desc := fmt.Sprintf("Edge %q→%q (%g): %s stays", v.ids[u], v.ids[a.to], a.weight, before)
				if improved {
					q.push(pqItem{node: a.to, priority: p.dist[a.to]})
					desc = fmt.Sprintf("Edge %q→%q (%g): %s improved to %s", v.ids[u], v.ids[a.to], a.weight, before, p.dist[a.to])
				}
				st := p.step(domain.KindRelax, desc, u, v.activeEdge(a))
				st.Graph.Frontier = q.members(v.ids, p.settled)
				if !p.emit(st) {
					return
				}
			}
		}

		st = p.step(domain.KindComplete, fmt.Sprintf("Settled %d of %d nodes", len(p.order), v.size()), -1, nil)
		st.Terminal = true
		st.Outcome = domain.OutcomeCompleted
		p.emit(st)
	}, nil
}
