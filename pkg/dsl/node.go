package dsl

import "github.com/aretw0/algoscope/pkg/domain"

// NodeBuilder configures one node.
type NodeBuilder struct {
	node    domain.Node
	builder *Builder
}

// Label sets the display label. It defaults to the ID.
func (n *NodeBuilder) Label(label string) *NodeBuilder {
	n.node.Label = label
	return n
}

// At sets the canvas position, which A* heuristics measure.
func (n *NodeBuilder) At(x, y float64) *NodeBuilder {
	n.node.X = x
	n.node.Y = y
	return n
}

// Then returns to the graph builder.
func (n *NodeBuilder) Then() *Builder {
	return n.builder
}

// Build returns the underlying domain.Node.
func (n *NodeBuilder) Build() domain.Node {
	return n.node
}
