package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/algoscope/pkg/domain"
)

// Builder assembles a domain.Input.
type Builder struct {
	order []string
	nodes map[string]*NodeBuilder
	in    domain.Input
}

// New creates an empty builder.
func New() *Builder {
	return &Builder{nodes: make(map[string]*NodeBuilder)}
}

// Node adds a node, or returns the existing builder when the ID is already known.
func (b *Builder) Node(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{node: domain.Node{ID: id, Label: id}, builder: b}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Nodes adds several bare nodes.
func (b *Builder) Nodes(ids ...string) *Builder {
	for _, id := range ids {
		b.Node(id)
	}
	return b
}

// Edge adds an undirected weighted edge. Endpoints are created on demand.
func (b *Builder) Edge(u, v string, weight float64) *Builder {
	return b.edge(u, v, weight, false)
}

// Arc adds a directed weighted edge from u to v.
func (b *Builder) Arc(u, v string, weight float64) *Builder {
	return b.edge(u, v, weight, true)
}

func (b *Builder) edge(u, v string, weight float64, directed bool) *Builder {
	b.Node(u)
	b.Node(v)
	b.in.Graph.Edges = append(b.in.Graph.Edges, domain.Edge{U: u, V: v, Weight: weight, Directed: directed})
	return b
}

// Array sets the array input of sorting and searching algorithms.
func (b *Builder) Array(values ...float64) *Builder {
	b.in.Array = append([]float64(nil), values...)
	return b
}

// Target sets the value searched for.
func (b *Builder) Target(v float64) *Builder {
	b.in.Target = v
	return b
}

// Start sets the source node.
func (b *Builder) Start(id string) *Builder {
	b.in.Start = id
	return b
}

// Goal sets the destination node of A*.
func (b *Builder) Goal(id string) *Builder {
	b.in.Goal = id
	return b
}

// Heuristic selects the A* heuristic by name.
func (b *Builder) Heuristic(name string) *Builder {
	b.in.Heuristic = name
	return b
}

// Build returns the assembled input. Start and goal must name existing nodes.
func (b *Builder) Build() (domain.Input, error) {
	in := b.in
	in.Graph.Nodes = make([]domain.Node, 0, len(b.order))
	for _, id := range b.order {
		in.Graph.Nodes = append(in.Graph.Nodes, b.nodes[id].node)
	}
	if in.Graph.Edges == nil {
		in.Graph.Edges = []domain.Edge{}
	}

	var errs []error
	for _, id := range b.order {
		if id == "" {
			errs = append(errs, errors.New("node with empty id"))
		}
	}
	if in.Start != "" && !in.Graph.HasNode(in.Start) {
		errs = append(errs, fmt.Errorf("start %q: %w", in.Start, domain.ErrStartNotFound))
	}
	if in.Goal != "" && !in.Graph.HasNode(in.Goal) {
		errs = append(errs, fmt.Errorf("goal %q: %w", in.Goal, domain.ErrGoalNotFound))
	}
	if err := errors.Join(errs...); err != nil {
		return domain.Input{}, fmt.Errorf("failed to build input: %w", err)
	}
	return in.Clone(), nil
}

// MustBuild is Build for fixed inputs; it panics on error.
func (b *Builder) MustBuild() domain.Input {
	in, err := b.Build()
	if err != nil {
		panic(err)
	}
	return in
}
