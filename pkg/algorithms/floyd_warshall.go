package algorithms

import (
	"fmt"
	"iter"

	"github.com/aretw0/algoscope/pkg/domain"
)

type matrix struct {
	*emitter
	v    *view
	dist [][]domain.Distance
	next [][]string
}

func (m *matrix) step(kind domain.StepKind, desc string, k, i, j int) domain.Step {
	return domain.Step{Kind: kind, Description: desc, Matrix: &domain.MatrixState{
		Nodes: cloneSlice(m.v.ids),
		Dist:  cloneNested(m.dist),
		Next:  cloneNested(m.next),
		K:     k,
		I:     i,
		J:     j,
	}}
}

// FloydWarshall computes all-pairs shortest paths over the n×n distance matrix.
// Parallel arcs keep the lightest weight. A negative diagonal entry after the
// last round ends the run with the negative_cycle outcome.
func FloydWarshall(in domain.Input) (iter.Seq[domain.Step], error) {
	v := newView(in.Graph, asDeclared)
	return func(yield func(domain.Step) bool) {
		n := v.size()
		m := &matrix{emitter: newEmitter("floyd-warshall", yield), v: v}
		m.dist = make([][]domain.Distance, n)
		m.next = make([][]string, n)
		for i := range n {
			m.dist[i] = infinities(n)
			m.dist[i][i] = 0
			m.next[i] = make([]string, n)
			m.next[i][i] = v.ids[i]
		}
		for _, a := range v.arcs {
			w := domain.Distance(a.weight)
			if w < m.dist[a.from][a.to] {
				m.dist[a.from][a.to] = w
				m.next[a.from][a.to] = v.ids[a.to]
			}
		}

		st := m.step(domain.KindInit, fmt.Sprintf("Initial %d×%d distance matrix from %d arcs", n, n, len(v.arcs)), -1, -1, -1)
		st.Warnings = cloneSlice(v.warnings)
		if !m.emit(st) {
			return
		}

		for k := range n {
			if !m.emit(m.step(domain.KindPhase, fmt.Sprintf("Intermediate node %q", v.ids[k]), k, -1, -1)) {
				return
			}
			for i := range n {
				if !m.emit(m.step(domain.KindVisit, fmt.Sprintf("Routes from %q through %q", v.ids[i], v.ids[k]), k, i, -1)) {
					return
				}
				for j := range n {
					ik, kj, ij := m.dist[i][k], m.dist[k][j], m.dist[i][j]
					updated := !ik.IsInf() && !kj.IsInf() && ik+kj < ij
					desc := fmt.Sprintf("dist[%s][%s] = %s; via %s: %s + %s", v.ids[i], v.ids[j], ij, v.ids[k], ik, kj)
					if updated {
						m.dist[i][j] = ik + kj
						m.next[i][j] = m.next[i][k]
						desc = fmt.Sprintf("dist[%s][%s] improved from %s to %s via %s", v.ids[i], v.ids[j], ij, m.dist[i][j], v.ids[k])
					}
					st := m.step(domain.KindCompare, desc, k, i, j)
					st.Matrix.Updated = updated
					if !m.emit(st) {
						return
					}
				}
			}
		}

		for i := range n {
			if m.dist[i][i] < 0 {
				st := m.step(domain.KindFinish, fmt.Sprintf("dist[%s][%s] = %s: negative cycle detected", v.ids[i], v.ids[i], m.dist[i][i]), -1, i, i)
				st.Matrix.HasNegativeCycle = true
				st.Terminal = true
				st.Outcome = domain.OutcomeNegativeCycle
				m.emit(st)
				return
			}
		}
		st = m.step(domain.KindComplete, "All-pairs distances are final", -1, -1, -1)
		st.Terminal = true
		st.Outcome = domain.OutcomeCompleted
		m.emit(st)
	}, nil
}
