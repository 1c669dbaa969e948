package algorithms

import (
	"iter"

	"github.com/aretw0/algoscope/pkg/domain"
)

// MergeSort is a top-down merge sort. Each merge copies both halves into temporary
// buffers and emits one step per comparison and one per placement.
func MergeSort(in domain.Input) (iter.Seq[domain.Step], error) {
	values := cloneSlice(in.Array)
	return func(yield func(domain.Step) bool) {
		s := newSorter("merge", values, yield)
		if !s.init() {
			return
		}
		if !mergeSort(s, 0, len(s.a)-1) {
			return
		}
		s.complete()
	}, nil
}

func mergeSort(s *sorter, lo, hi int) bool {
	if lo >= hi {
		return true
	}
	mid := lo + (hi-lo)/2
	if !mergeSort(s, lo, mid) || !mergeSort(s, mid+1, hi) {
		return false
	}
	return merge(s, lo, mid, hi)
}

func merge(s *sorter, lo, mid, hi int) bool {
	left := cloneSlice(s.a[lo : mid+1])
	right := cloneSlice(s.a[mid+1 : hi+1])

	i, j, k := 0, 0, lo
	for i < len(left) && j < len(right) {
		if !s.compareValues(lo+i, mid+1+j, left[i], right[j]) {
			return false
		}
		var v float64
		if left[i] <= right[j] {
			v = left[i]
			i++
		} else {
			v = right[j]
			j++
		}
		if !s.place(k, v) {
			return false
		}
		k++
	}
	for ; i < len(left); i++ {
		if !s.place(k, left[i]) {
			return false
		}
		k++
	}
	for ; j < len(right); j++ {
		if !s.place(k, right[j]) {
			return false
		}
		k++
	}
	return true
}
