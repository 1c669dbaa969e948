package algorithms

import (
	"fmt"
	"iter"

	"github.com/aretw0/algoscope/pkg/domain"
)

// QuickSort uses Lomuto partitioning with the last element of the range as pivot.
// The low partition is sorted before the high partition.
func QuickSort(in domain.Input) (iter.Seq[domain.Step], error) {
	values := cloneSlice(in.Array)
	return func(yield func(domain.Step) bool) {
		s := newSorter("quick", values, yield)
		if !s.init() {
			return
		}
		if !quickSort(s, 0, len(s.a)-1) {
			return
		}
		s.complete()
	}, nil
}

func quickSort(s *sorter, lo, hi int) bool {
	if lo > hi {
		return true
	}
	if lo == hi {
		s.final[lo] = true
		return true
	}
	p, ok := partition(s, lo, hi)
	if !ok {
		return false
	}
	return quickSort(s, lo, p-1) && quickSort(s, p+1, hi)
}

func partition(s *sorter, lo, hi int) (int, bool) {
	pivot := s.a[hi]
	st := s.snapshot(domain.KindPivot, fmt.Sprintf("Partitioning [%d..%d] around pivot %g", lo, hi, pivot), nil, nil)
	st.Array.Pivot = hi
	if !s.emit(st) {
		return 0, false
	}

	i := lo - 1
	for j := lo; j < hi; j++ {
		if !s.compare(j, hi) {
			return 0, false
		}
		if s.a[j] < pivot {
			i++
			if !s.swap(i, j) {
				return 0, false
			}
		}
	}
	if !s.swap(i+1, hi) {
		return 0, false
	}
	s.final[i+1] = true
	return i + 1, true
}
