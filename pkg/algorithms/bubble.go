package algorithms

import (
	"iter"

	"github.com/aretw0/algoscope/pkg/domain"
)

// BubbleSort repeatedly compares adjacent elements and swaps them when out of order.
// After pass i the last i+1 elements are final.
func BubbleSort(in domain.Input) (iter.Seq[domain.Step], error) {
	values := cloneSlice(in.Array)
	return func(yield func(domain.Step) bool) {
		s := newSorter("bubble", values, yield)
		if !s.init() {
			return
		}
		n := len(s.a)
		for i := 0; i < n-1; i++ {
			for j := 0; j < n-1-i; j++ {
				if !s.compare(j, j+1) {
					return
				}
				if s.a[j] > s.a[j+1] {
					if !s.swap(j, j+1) {
						return
					}
				}
			}
			s.final[n-1-i] = true
		}
		s.complete()
	}, nil
}
