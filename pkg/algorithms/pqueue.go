package algorithms

import (
	"container/heap"
	"slices"

	"github.com/aretw0/algoscope/pkg/domain"
)

// pqItem orders by priority, then by insertion sequence so ties are deterministic.
type pqItem struct {
	node     int
	priority domain.Distance
	seq      int
	arc      arc
}

type pqItems []pqItem

func (p pqItems) Len() int { return len(p) }
func (p pqItems) Less(i, j int) bool {
	if p[i].priority != p[j].priority {
		return p[i].priority < p[j].priority
	}
	return p[i].seq < p[j].seq
}
func (p pqItems) Swap(i, j int) { p[i], p[j] = p[j], p[i] }
func (p *pqItems) Push(x any)   { *p = append(*p, x.(pqItem)) }
func (p *pqItems) Pop() any {
	old := *p
	n := len(old)
	it := old[n-1]
	*p = old[:n-1]
	return it
}

// pqueue is a min-priority queue with lazy deletion.
type pqueue struct {
	items pqItems
	seq   int
}

func (q *pqueue) push(it pqItem) {
	it.seq = q.seq
	q.seq++
	heap.Push(&q.items, it)
}

func (q *pqueue) pop() pqItem { return heap.Pop(&q.items).(pqItem) }

func (q *pqueue) len() int { return q.items.Len() }

// members lists distinct nodes currently queued in priority order, skipping done ones.
func (q *pqueue) members(ids []string, done []bool) []string {
	sorted := slices.Clone(q.items)
	slices.SortFunc(sorted, func(a, b pqItem) int {
		switch {
		case a.priority < b.priority:
			return -1
		case a.priority > b.priority:
			return 1
		}
		return a.seq - b.seq
	})
	seen := make(map[int]bool)
	out := []string{}
	for _, it := range sorted {
		if seen[it.node] || (done != nil && done[it.node]) {
			continue
		}
		seen[it.node] = true
		out = append(out, ids[it.node])
	}
	return out
}
