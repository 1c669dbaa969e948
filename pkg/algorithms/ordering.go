package algorithms

import (
	"fmt"
	"iter"
	"slices"

	"github.com/aretw0/algoscope/pkg/domain"
)

// TopologicalSort runs Kahn's algorithm treating every edge as u→v. Nodes with
// zero in-degree are dequeued in insertion order. When nodes remain after the
// queue drains the graph has a cycle and the run ends with cycle_detected.
func TopologicalSort(in domain.Input) (iter.Seq[domain.Step], error) {
	v := newView(in.Graph, forceDirected)
	return func(yield func(domain.Step) bool) {
		e := newEmitter("topological", yield)
		deg := make([]int, v.size())
		for _, a := range v.arcs {
			deg[a.to]++
		}
		var order []string
		var queue []int
		for i := range deg {
			if deg[i] == 0 {
				queue = append(queue, i)
			}
		}
		step := func(kind domain.StepKind, desc string, active int, edge *domain.Edge) domain.Step {
			gs := &domain.GraphState{
				ActiveEdge: edge,
				Frontier:   v.names(queue),
				Order:      cloneSlice(order),
				InDegree:   make(map[string]int, len(deg)),
			}
			for i, d := range deg {
				gs.InDegree[v.ids[i]] = d
			}
			if active >= 0 {
				gs.Active = v.ids[active]
			}
			return domain.Step{Kind: kind, Description: desc, Graph: gs}
		}

		st := step(domain.KindInit, fmt.Sprintf("%d node(s) start with in-degree 0", len(queue)), -1, nil)
		st.Warnings = cloneSlice(v.warnings)
		if !e.emit(st) {
			return
		}

		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			order = append(order, v.ids[u])
			if !e.emit(step(domain.KindVisit, fmt.Sprintf("Output %q (position %d)", v.ids[u], len(order)), u, nil)) {
				return
			}
			for _, a := range v.out[u] {
				deg[a.to]--
				desc := fmt.Sprintf("In-degree of %q drops to %d", v.ids[a.to], deg[a.to])
				kind := domain.KindCheck
				if deg[a.to] == 0 {
					queue = append(queue, a.to)
					desc = fmt.Sprintf("In-degree of %q drops to 0; enqueued", v.ids[a.to])
					kind = domain.KindDiscover
				}
				if !e.emit(step(kind, desc, u, v.activeEdge(a))) {
					return
				}
			}
		}

		if len(order) < v.size() {
			st := step(domain.KindFinish, fmt.Sprintf("Only %d of %d nodes ordered: cycle detected", len(order), v.size()), -1, nil)
			st.Graph.HasCycle = true
			st.Terminal = true
			st.Outcome = domain.OutcomeCycleDetected
			e.emit(st)
			return
		}
		st = step(domain.KindComplete, fmt.Sprintf("Topological order of %d nodes", len(order)), -1, nil)
		st.Terminal = true
		st.Outcome = domain.OutcomeCompleted
		e.emit(st)
	}, nil
}

// Kosaraju finds strongly connected components in two passes: a DFS recording
// finish order, then a DFS over the transposed graph in reverse finish order.
// Every edge is treated as u→v.
func Kosaraju(in domain.Input) (iter.Seq[domain.Step], error) {
	v := newView(in.Graph, forceDirected)
	return func(yield func(domain.Step) bool) {
		e := newEmitter("kosaraju", yield)
		visited := make([]bool, v.size())
		var finished []string
		var components [][]string
		step := func(kind domain.StepKind, desc string, active int, pass int) domain.Step {
			gs := &domain.GraphState{
				Visited:         selected(visited, v.ids),
				Order:           cloneSlice(finished),
				Components:      cloneNested(components),
				ComponentsFound: len(components),
				Pass:            pass,
			}
			if active >= 0 {
				gs.Active = v.ids[active]
			}
			return domain.Step{Kind: kind, Description: desc, Graph: gs}
		}

		st := step(domain.KindInit, fmt.Sprintf("Finding strongly connected components of %d nodes", v.size()), -1, 0)
		st.Warnings = cloneSlice(v.warnings)
		if !e.emit(st) {
			return
		}
		if v.size() > 0 && !e.emit(step(domain.KindPhase, "Pass 1: record finish order", -1, 1)) {
			return
		}

		type frame struct{ node, next int }
		var finish []int
		for root := range v.ids {
			if visited[root] {
				continue
			}
			visited[root] = true
			if !e.emit(step(domain.KindVisit, fmt.Sprintf("Visit %q", v.ids[root]), root, 1)) {
				return
			}
			stack := []frame{{node: root}}
			for len(stack) > 0 {
				top := &stack[len(stack)-1]
				if top.next < len(v.out[top.node]) {
					w := v.out[top.node][top.next].to
					top.next++
					if !visited[w] {
						visited[w] = true
						stack = append(stack, frame{node: w})
						if !e.emit(step(domain.KindVisit, fmt.Sprintf("Visit %q", v.ids[w]), w, 1)) {
							return
						}
					}
					continue
				}
				n := top.node
				stack = stack[:len(stack)-1]
				finish = append(finish, n)
				finished = append(finished, v.ids[n])
				if !e.emit(step(domain.KindFinish, fmt.Sprintf("Finish %q", v.ids[n]), n, 1)) {
					return
				}
			}
		}

		clear(visited)
		if v.size() > 0 && !e.emit(step(domain.KindPhase, "Pass 2: DFS on the transposed graph in reverse finish order", -1, 2)) {
			return
		}
		for _, root := range slices.Backward(finish) {
			if visited[root] {
				continue
			}
			visited[root] = true
			members := []string{v.ids[root]}
			components = append(components, cloneSlice(members))
			if !e.emit(step(domain.KindComponent, fmt.Sprintf("Component #%d starts at %q", len(components), v.ids[root]), root, 2)) {
				return
			}
			stack := []int{root}
			for len(stack) > 0 {
				n := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for _, a := range v.in[n] {
					if visited[a.from] {
						continue
					}
					visited[a.from] = true
					members = append(members, v.ids[a.from])
					stack = append(stack, a.from)
					components[len(components)-1] = cloneSlice(members)
					if !e.emit(step(domain.KindVisit, fmt.Sprintf("%q joins component #%d", v.ids[a.from], len(components)), a.from, 2)) {
						return
					}
				}
			}
			components[len(components)-1] = members
		}

		st = step(domain.KindComplete, fmt.Sprintf("%d strongly connected component(s)", len(components)), -1, 0)
		st.Terminal = true
		st.Outcome = domain.OutcomeCompleted
		e.emit(st)
	}, nil
}

// GreedyColoring assigns each node, in insertion order, the smallest color
// index not used by an already colored neighbor. Edges are treated as undirected.
func GreedyColoring(in domain.Input) (iter.Seq[domain.Step], error) {
	v := newView(in.Graph, forceUndirected)
	return func(yield func(domain.Step) bool) {
		e := newEmitter("coloring", yield)
		colors := make(map[string]int, v.size())
		count := 0
		step := func(kind domain.StepKind, desc string, active int) domain.Step {
			gs := &domain.GraphState{Colors: cloneMap(colors), ColorCount: count}
			if active >= 0 {
				gs.Active = v.ids[active]
			}
			return domain.Step{Kind: kind, Description: desc, Graph: gs}
		}

		st := step(domain.KindInit, fmt.Sprintf("Coloring %d nodes greedily", v.size()), -1)
		st.Warnings = cloneSlice(v.warnings)
		if !e.emit(st) {
			return
		}
		for n, id := range v.ids {
			used := make(map[int]bool)
			for _, a := range v.out[n] {
				if c, ok := colors[v.ids[a.to]]; ok {
					used[c] = true
				}
			}
			c := 0
			for used[c] {
				c++
			}
			colors[id] = c
			count = max(count, c+1)
			if !e.emit(step(domain.KindColor, fmt.Sprintf("%q gets color %d (%d neighbor color(s) in use)", id, c, len(used)), n)) {
				return
			}
		}

		st = step(domain.KindComplete, fmt.Sprintf("Graph colored with %d color(s)", count), -1)
		st.Terminal = true
		st.Outcome = domain.OutcomeCompleted
		e.emit(st)
	}, nil
}
