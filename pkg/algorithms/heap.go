package algorithms

import (
	"iter"

	"github.com/aretw0/algoscope/pkg/domain"
)

// HeapSort builds a max-heap in place and repeatedly moves the root behind the heap.
func HeapSort(in domain.Input) (iter.Seq[domain.Step], error) {
	values := cloneSlice(in.Array)
	return func(yield func(domain.Step) bool) {
		s := newSorter("heap", values, yield)
		if !s.init() {
			return
		}
		n := len(s.a)
		for i := n/2 - 1; i >= 0; i-- {
			if !siftDown(s, i, n) {
				return
			}
		}
		for end := n - 1; end > 0; end-- {
			if !s.swap(0, end) {
				return
			}
			s.final[end] = true
			if !siftDown(s, 0, end) {
				return
			}
		}
		s.complete()
	}, nil
}

func siftDown(s *sorter, i, size int) bool {
	for {
		largest := i
		l, r := 2*i+1, 2*i+2
		if l < size {
			if !s.compare(l, largest) {
				return false
			}
			if s.a[l] > s.a[largest] {
				largest = l
			}
		}
		if r < size {
			if !s.compare(r, largest) {
				return false
			}
			if s.a[r] > s.a[largest] {
				largest = r
			}
		}
		if largest == i {
			return true
		}
		if !s.swap(i, largest) {
			return false
		}
		i = largest
	}
}
