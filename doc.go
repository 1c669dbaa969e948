/*
Package algoscope turns classic algorithms into step-by-step, replayable visualizations.

Every algorithm is a pure step generator: bound to an input (an array or a graph), it
yields immutable snapshots describing what the algorithm is doing right now (which
elements are compared, which node is settled, which edge is rejected). A playback driver
paces those steps over time, and renderers (terminal bars, Mermaid diagrams, an SSE
stream) turn them into pictures.

# Architecture

  - pkg/algorithms: one generator per algorithm (searching, sorting, graph).
  - pkg/registry: the name to generator catalogue with metadata.
  - pkg/playback: start, pause, resume, cancel, reset and speed control.
  - pkg/editor: the click-driven graph editor (add node, link edge, set start, delete).
  - pkg/schema: YAML/JSON input documents with edge alias normalization.
  - pkg/adapters: memory/redis workspace stores, loam scenarios, HTTP and MCP servers.

# Usage

	lab := algoscope.New()

	in := domain.Input{Array: []float64{5, 3, 8, 1}}
	seq, err := lab.Steps(ctx, "bubble", in)
	if err != nil {
		log.Fatal(err)
	}
	for step := range seq {
		fmt.Println(step.Seq, step.Kind, step.Description)
	}

For paced playback, create a driver and subscribe to it:

	d := lab.NewDriver(playback.WithSpeed("2x"))
	d.Subscribe(func(s domain.Step) { render(s) })
	_ = lab.Play(ctx, d, "dijkstra", graphInput)
	d.Wait()
*/
package algoscope
