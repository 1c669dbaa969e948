package algorithms

import (
	"github.com/aretw0/algoscope/pkg/domain"
)

// paths holds single-source shortest path bookkeeping.
type paths struct {
	*emitter
	v       *view
	dist    []domain.Distance
	pred    []int
	settled []bool
	order   []string
}

func newPaths(name string, v *view, start string, yield func(domain.Step) bool) *paths {
	p := &paths{
		emitter: newEmitter(name, yield),
		v:       v,
		dist:    infinities(v.size()),
		pred:    minusOnes(v.size()),
		settled: make([]bool, v.size()),
	}
	if s, ok := v.idx[start]; ok {
		p.dist[s] = 0
	}
	return p
}

func (p *paths) step(kind domain.StepKind, desc string, active int, edge *domain.Edge) domain.Step {
	gs := &domain.GraphState{
		ActiveEdge:   edge,
		Distances:    p.v.distanceMap(p.dist),
		Predecessors: p.v.predecessorMap(p.pred),
		Settled:      cloneSlice(p.order),
	}
	if active >= 0 {
		gs.Active = p.v.ids[active]
	}
	return domain.Step{Kind: kind, Description: desc, Graph: gs}
}

// relax tries to improve dist[a.to] through a. Unreachable sources never relax.
func (p *paths) relax(a arc) bool {
	if p.dist[a.from].IsInf() {
		return false
	}
	nd := p.dist[a.from] + domain.Distance(a.weight)
	if nd < p.dist[a.to] {
		p.dist[a.to] = nd
		p.pred[a.to] = a.from
		return true
	}
	return false
}
