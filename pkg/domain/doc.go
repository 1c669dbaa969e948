/*
Package domain contains the core data model of the algorithm visualizer.

It defines the inputs that step generators consume (Graph, Node, Edge, Input) and the
Step snapshots they produce. The package is kept pure and free of I/O, persistence or
rendering concerns, following Hexagonal Architecture principles.

# Key Entities

  - Graph: an immutable snapshot of nodes (insertion order = iteration order) and edges.
  - Input: the bound input of one run (array, target, graph, start and goal nodes).
  - Step: a self-contained, independently renderable snapshot of algorithm progress.
  - Distance: a float64 with an explicit "Infinity" JSON encoding.
*/
package domain
