package algorithms

import (
	"fmt"

	"github.com/aretw0/algoscope/pkg/domain"
)

// orientation controls how edges become arcs.
type orientation int

const (
	// asDeclared follows Edge.Directed: directed edges give one arc, others two.
	asDeclared orientation = iota
	// forceDirected turns every edge into a single u->v arc.
	forceDirected
	// forceUndirected turns every edge into arcs in both directions.
	forceUndirected
)

type arc struct {
	from, to int
	weight   float64
	edge     domain.Edge
}

// view is an indexed, read-only projection of a graph snapshot.
type view struct {
	ids      []string
	nodes    []domain.Node
	idx      map[string]int
	out      [][]arc
	in       [][]arc
	arcs     []arc
	edges    []domain.Edge
	warnings []string
}

func newView(g domain.Graph, o orientation) *view {
	v := &view{
		ids:   g.IDs(),
		nodes: cloneSlice(g.Nodes),
		idx:   g.Index(),
		out:   make([][]arc, len(g.Nodes)),
		in:    make([][]arc, len(g.Nodes)),
	}
	for _, issue := range g.Validate() {
		v.warnings = append(v.warnings, "skipped "+issue.String())
	}
	for _, e := range g.Edges {
		u, okU := v.idx[e.U]
		w, okV := v.idx[e.V]
		if !okU || !okV {
			continue
		}
		v.edges = append(v.edges, e)
		v.add(arc{from: u, to: w, weight: e.Weight, edge: e})
		if o == forceUndirected || (o == asDeclared && !e.Directed) {
			v.add(arc{from: w, to: u, weight: e.Weight, edge: e})
		}
	}
	return v
}

func (v *view) add(a arc) {
	v.arcs = append(v.arcs, a)
	v.out[a.from] = append(v.out[a.from], a)
	v.in[a.to] = append(v.in[a.to], a)
}

func (v *view) size() int { return len(v.ids) }

// names maps indices to IDs.
func (v *view) names(indices []int) []string {
	out := make([]string, len(indices))
	for i, n := range indices {
		out[i] = v.ids[n]
	}
	return out
}

// activeEdge returns a copy of the arc as a directed edge for rendering.
func (v *view) activeEdge(a arc) *domain.Edge {
	return &domain.Edge{U: v.ids[a.from], V: v.ids[a.to], Weight: a.weight, Directed: a.edge.Directed}
}

// resolve finds the start node. An empty id selects the first node.
func resolveStart(g domain.Graph, id string) (string, error) {
	if len(g.Nodes) == 0 {
		return "", nil
	}
	if id == "" {
		return g.Nodes[0].ID, nil
	}
	if !g.HasNode(id) {
		return "", fmt.Errorf("%q: %w", id, domain.ErrStartNotFound)
	}
	return id, nil
}

// roots lists start first and then every other node in insertion order.
func (v *view) roots(start string) []int {
	order := make([]int, 0, v.size())
	s, ok := v.idx[start]
	if ok {
		order = append(order, s)
	}
	for i := range v.ids {
		if !ok || i != s {
			order = append(order, i)
		}
	}
	return order
}

func (v *view) distanceMap(dist []domain.Distance) map[string]domain.Distance {
	m := make(map[string]domain.Distance, len(dist))
	for i, d := range dist {
		m[v.ids[i]] = d
	}
	return m
}

func (v *view) predecessorMap(pred []int) map[string]string {
	m := make(map[string]string)
	for i, p := range pred {
		if p >= 0 {
			m[v.ids[i]] = v.ids[p]
		}
	}
	return m
}

// path walks predecessors back from target.
func (v *view) path(pred []int, target int) []string {
	var rev []string
	for n := target; n >= 0; n = pred[n] {
		rev = append(rev, v.ids[n])
		if len(rev) > len(pred) {
			break
		}
	}
	out := make([]string, len(rev))
	for i := range rev {
		out[i] = rev[len(rev)-1-i]
	}
	return out
}

func infinities(n int) []domain.Distance {
	d := make([]domain.Distance, n)
	for i := range d {
		d[i] = domain.Inf()
	}
	return d
}

func minusOnes(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = -1
	}
	return p
}

func selected(flags []bool, ids []string) []string {
	out := []string{}
	for i, ok := range flags {
		if ok {
			out = append(out, ids[i])
		}
	}
	return out
}
