package algorithms

import (
	"fmt"
	"iter"

	"github.com/aretw0/algoscope/pkg/domain"
)

// BellmanFord runs V-1 relaxation passes over every arc in input order, then one
// detection pass. If any arc still relaxes during detection, the run ends with a
// terminal step flagged HasNegativeCycle and no completion step.
func BellmanFord(in domain.Input) (iter.Seq[domain.Step], error) {
	start, err := resolveStart(in.Graph, in.Start)
	if err != nil {
		return nil, fmt.Errorf("bellman-ford: %w", err)
	}
	v := newView(in.Graph, asDeclared)
	return func(yield func(domain.Step) bool) {
		p := newPaths("bellman-ford", v, start, yield)
		st := p.step(domain.KindInit, fmt.Sprintf("Distances start at ∞ except %q = 0; %d passes over %d arcs", start, max(v.size()-1, 0), len(v.arcs)), -1, nil)
		st.Warnings = cloneSlice(v.warnings)
		if !p.emit(st) {
			return
		}

		for pass := 1; pass < v.size(); pass++ {
			st := p.step(domain.KindPhase, fmt.Sprintf("Pass %d of %d", pass, v.size()-1), -1, nil)
			st.Graph.Pass = pass
			if !p.emit(st) {
				return
			}
			for _, a := range v.arcs {
				before := p.dist[a.to]
				desc := fmt.Sprintf("Edge %q→%q (%g): %s stays", v.ids[a.from], v.ids[a.to], a.weight, before)
				if p.relax(a) {
					desc = fmt.Sprintf("Edge %q→%q (%g): %s improved to %s", v.ids[a.from], v.ids[a.to], a.weight, before, p.dist[a.to])
				}
				st := p.step(domain.KindRelax, desc, a.from, v.activeEdge(a))
				st.Graph.Pass = pass
				if !p.emit(st) {
					return
				}
			}
		}

		if v.size() == 0 {
			st = p.step(domain.KindComplete, "Empty graph", -1, nil)
			st.Terminal = true
			st.Outcome = domain.OutcomeCompleted
			p.emit(st)
			return
		}

		detect := v.size()
		st = p.step(domain.KindPhase, "Checking for negative cycles", -1, nil)
		st.Graph.Pass = detect
		if !p.emit(st) {
			return
		}
		for _, a := range v.arcs {
			relaxes := !p.dist[a.from].IsInf() && p.dist[a.from]+domain.Distance(a.weight) < p.dist[a.to]
			if relaxes {
				st := p.step(domain.KindFinish, fmt.Sprintf("Edge %q→%q still relaxes: negative cycle detected", v.ids[a.from], v.ids[a.to]), a.from, v.activeEdge(a))
				st.Graph.Pass = detect
				st.Graph.HasNegativeCycle = true
				st.Terminal = true
				st.Outcome = domain.OutcomeNegativeCycle
				p.emit(st)
				return
			}
			st := p.step(domain.KindCheck, fmt.Sprintf("Edge %q→%q is stable", v.ids[a.from], v.ids[a.to]), a.from, v.activeEdge(a))
			st.Graph.Pass = detect
			if !p.emit(st) {
				return
			}
		}

		st = p.step(domain.KindComplete, "No negative cycle; distances are final", -1, nil)
		st.Terminal = true
		st.Outcome = domain.OutcomeCompleted
		p.emit(st)
	}, nil
}
