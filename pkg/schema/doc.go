/*
Package schema decodes algorithm input documents written in YAML or JSON.

A document names an algorithm and carries either an array or a graph:

	algorithm: dijkstra
	start: A
	nodes: [A, B, {id: C, x: 120, y: 40}]
	edges:
	  - {from: A, to: B, weight: 4}
	  - [B, C, 1]

Edge endpoints accept the aliases u/v, from/to and source/target, and an edge may
be written as a [u, v, weight] list. All forms normalize to one domain.Edge.
Nodes may be omitted, in which case they are inferred from the edges.
*/
package schema
