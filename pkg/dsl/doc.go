/*
Package dsl builds algorithm inputs in Go instead of YAML or JSON documents.

It is mostly used by tests, examples and programs that generate graphs:

	in, err := dsl.New().
		Node("A").At(0, 0).Then().
		Node("B").At(3, 4).Then().
		Edge("A", "B", 5).
		Start("A").
		Goal("B").
		Build()

Nodes keep the order they were first mentioned in, which is the iteration
order every algorithm uses.
*/
package dsl
