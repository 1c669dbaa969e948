package domain

import "fmt"

// Node is a vertex of the graph under edit.
// X and Y are rendering positions; algorithms only use them for A* heuristics.
type Node struct {
	ID    string  `json:"id" yaml:"id"`
	Label string  `json:"label,omitempty" yaml:"label,omitempty"`
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
}

// Edge connects two nodes by ID.
// Unweighted algorithms ignore Weight. Undirected edges are traversed both ways.
type Edge struct {
	U        string  `json:"u" yaml:"u"`
	V        string  `json:"v" yaml:"v"`
	Weight   float64 `json:"weight" yaml:"weight"`
	Directed bool    `json:"directed,omitempty" yaml:"directed,omitempty"`
}

// String returns a compact "u-v(w)" or "u->v(w)" representation.
func (e Edge) String() string {
	arrow := "-"
	if e.Directed {
		arrow = "->"
	}
	return fmt.Sprintf("%s%s%s(%g)", e.U, arrow, e.V, e.Weight)
}

// Graph is an ordered collection of nodes and edges.
// Node order is the display and iteration order for every algorithm.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// EdgeIssue describes an edge that references a node that does not exist.
type EdgeIssue struct {
	Index   int    `json:"index"`
	Edge    Edge   `json:"edge"`
	Missing string `json:"missing"`
}

func (i EdgeIssue) String() string {
	return fmt.Sprintf("edge #%d %s references unknown node %q", i.Index, i.Edge, i.Missing)
}

// Clone returns a copy that shares no backing arrays with g.
func (g Graph) Clone() Graph {
	c := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: make([]Edge, len(g.Edges)),
	}
	copy(c.Nodes, g.Nodes)
	copy(c.Edges, g.Edges)
	return c
}

// Index maps node IDs to their position in Nodes.
func (g Graph) Index() map[string]int {
	idx := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		idx[n.ID] = i
	}
	return idx
}

// HasNode reports whether a node with the given ID exists.
func (g Graph) HasNode(id string) bool {
	for _, n := range g.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

// Node returns the node with the given ID.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Validate lists the edges whose endpoints are not part of the graph.
// Generators skip these edges; callers decide whether to surface them.
func (g Graph) Validate() []EdgeIssue {
	idx := g.Index()
	var issues []EdgeIssue
	for i, e := range g.Edges {
		if _, ok := idx[e.U]; !ok {
			issues = append(issues, EdgeIssue{Index: i, Edge: e, Missing: e.U})
			continue
		}
		if _, ok := idx[e.V]; !ok {
			issues = append(issues, EdgeIssue{Index: i, Edge: e, Missing: e.V})
		}
	}
	return issues
}

// IDs returns node IDs in insertion order.
func (g Graph) IDs() []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}
