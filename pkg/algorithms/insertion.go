package algorithms

import (
	"iter"

	"github.com/aretw0/algoscope/pkg/domain"
)

// InsertionSort grows a sorted prefix, sinking each new element by adjacent swaps.
func InsertionSort(in domain.Input) (iter.Seq[domain.Step], error) {
	values := cloneSlice(in.Array)
	return func(yield func(domain.Step) bool) {
		s := newSorter("insertion", values, yield)
		if !s.init() {
			return
		}
		for i := 1; i < len(s.a); i++ {
			for j := i; j > 0; j-- {
				if !s.compare(j-1, j) {
					return
				}
				if s.a[j-1] <= s.a[j] {
					break
				}
				if !s.swap(j-1, j) {
					return
				}
			}
		}
		s.complete()
	}, nil
}
