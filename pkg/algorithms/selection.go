package algorithms

import (
	"iter"

	"github.com/aretw0/algoscope/pkg/domain"
)

// SelectionSort selects the minimum of the unsorted suffix and swaps it into place.
func SelectionSort(in domain.Input) (iter.Seq[domain.Step], error) {
	values := cloneSlice(in.Array)
	return func(yield func(domain.Step) bool) {
		s := newSorter("selection", values, yield)
		if !s.init() {
			return
		}
		n := len(s.a)
		for i := 0; i < n-1; i++ {
			minIdx := i
			for j := i + 1; j < n; j++ {
				if !s.compare(minIdx, j) {
					return
				}
				if s.a[j] < s.a[minIdx] {
					minIdx = j
				}
			}
			if minIdx != i {
				if !s.swap(i, minIdx) {
					return
				}
			}
			s.final[i] = true
		}
		s.complete()
	}, nil
}
