package algorithms

import (
	"fmt"
	"iter"

	"github.com/aretw0/algoscope/pkg/domain"
)

// traversal holds the shared bookkeeping of BFS and DFS.
type traversal struct {
	*emitter
	v          *view
	visited    []bool
	visitOrder []string
	order      []string
	components int
}

func (t *traversal) step(kind domain.StepKind, desc string, active int, edge *domain.Edge, frontier []int) domain.Step {
	gs := &domain.GraphState{
		ActiveEdge:      edge,
		Visited:         cloneSlice(t.visitOrder),
		Frontier:        t.v.names(frontier),
		Order:           cloneSlice(t.order),
		ComponentsFound: t.components,
	}
	if active >= 0 {
		gs.Active = t.v.ids[active]
	}
	return domain.Step{Kind: kind, Description: desc, Graph: gs}
}

func (t *traversal) mark(n int) {
	t.visited[n] = true
	t.visitOrder = append(t.visitOrder, t.v.ids[n])
}

func (t *traversal) init(start string) bool {
	st := t.step(domain.KindInit, fmt.Sprintf("Traversing %d nodes from %q", t.v.size(), start), -1, nil, nil)
	st.Warnings = cloneSlice(t.v.warnings)
	return t.emit(st)
}

func (t *traversal) complete() bool {
	st := t.step(domain.KindComplete, fmt.Sprintf("Visited %d nodes in %d component(s)", len(t.order), t.components), -1, nil, nil)
	st.Terminal = true
	st.Outcome = domain.OutcomeCompleted
	return t.emit(st)
}

func newTraversal(name string, in domain.Input) (*view, string, error) {
	start, err := resolveStart(in.Graph, in.Start)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", name, err)
	}
	return newView(in.Graph, asDeclared), start, nil
}

// BFS visits nodes level by level from the start node using a FIFO frontier.
// When the queue drains it continues with the next unvisited node in insertion order,
// counting every new root in ComponentsFound.
func BFS(in domain.Input) (iter.Seq[domain.Step], error) {
	v, start, err := newTraversal("bfs", in)
	if err != nil {
		return nil, err
	}
	return func(yield func(domain.Step) bool) {
		t := &traversal{emitter: newEmitter("bfs", yield), v: v, visited: make([]bool, v.size())}
		if !t.init(start) {
			return
		}
		for _, root := range v.roots(start) {
			if t.visited[root] {
				continue
			}
			t.components++
			t.mark(root)
			queue := []int{root}
			if !t.emit(t.step(domain.KindComponent, fmt.Sprintf("Component #%d starts at %q", t.components, v.ids[root]), root, nil, queue)) {
				return
			}
			for len(queue) > 0 {
				u := queue[0]
				queue = queue[1:]
				t.order = append(t.order, v.ids[u])
				if !t.emit(t.step(domain.KindVisit, fmt.Sprintf("Dequeued %q", v.ids[u]), u, nil, queue)) {
					return
				}
				for _, a := range v.out[u] {
					if t.visited[a.to] {
						continue
					}
					t.mark(a.to)
					queue = append(queue, a.to)
					desc := fmt.Sprintf("Discovered %q from %q", v.ids[a.to], v.ids[u])
					if !t.emit(t.step(domain.KindDiscover, desc, u, v.activeEdge(a), queue)) {
						return
					}
				}
			}
		}
		t.complete()
	}, nil
}

// DFS explores as deep as possible using an explicit LIFO frontier.
// Neighbors are pushed in reverse so the first declared neighbor is explored first.
// Like BFS it continues into every remaining component.
func DFS(in domain.Input) (iter.Seq[domain.Step], error) {
	v, start, err := newTraversal("dfs", in)
	if err != nil {
		return nil, err
	}
	return func(yield func(domain.Step) bool) {
		t := &traversal{emitter: newEmitter("dfs", yield), v: v, visited: make([]bool, v.size())}
		if !t.init(start) {
			return
		}
		for _, root := range v.roots(start) {
			if t.visited[root] {
				continue
			}
			t.components++
			stack := []int{root}
			if !t.emit(t.step(domain.KindComponent, fmt.Sprintf("Component #%d starts at %q", t.components, v.ids[root]), root, nil, stack)) {
				return
			}
			for len(stack) > 0 {
				u := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if t.visited[u] {
					continue
				}
				t.mark(u)
				t.order = append(t.order, v.ids[u])
				if !t.emit(t.step(domain.KindVisit, fmt.Sprintf("Visiting %q", v.ids[u]), u, nil, stack)) {
					return
				}
				var pending []int
				for _, a := range v.out[u] {
					if t.visited[a.to] {
						continue
					}
					pending = append(pending, a.to)
					desc := fmt.Sprintf("Discovered %q from %q", v.ids[a.to], v.ids[u])
					if !t.emit(t.step(domain.KindDiscover, desc, u, v.activeEdge(a), stack)) {
						return
					}
				}
				for i := len(pending) - 1; i >= 0; i-- {
					stack = append(stack, pending[i])
				}
			}
		}
		t.complete()
	}, nil
}
