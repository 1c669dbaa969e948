package algorithms

import (
	"fmt"

	"github.com/aretw0/algoscope/pkg/domain"
)

// sorter holds the working copy of a comparison sort and renders its snapshots.
type sorter struct {
	*emitter
	a        []float64
	final    []bool
	counters domain.Counters
}

func newSorter(name string, values []float64, yield func(domain.Step) bool) *sorter {
	return &sorter{
		emitter: newEmitter(name, yield),
		a:       cloneSlice(values),
		final:   make([]bool, len(values)),
	}
}

func (s *sorter) snapshot(kind domain.StepKind, desc string, compared, swapped []int) domain.Step {
	sorted := make([]int, 0, len(s.final))
	for i, ok := range s.final {
		if ok {
			sorted = append(sorted, i)
		}
	}
	return domain.Step{
		Kind:        kind,
		Description: desc,
		Array: &domain.ArrayState{
			Values:   cloneSlice(s.a),
			Compared: compared,
			Swapped:  swapped,
			Sorted:   sorted,
			Pivot:    -1,
			Bucket:   -1,
			Counters: s.counters,
		},
	}
}

func (s *sorter) init() bool {
	return s.emit(s.snapshot(domain.KindInit, fmt.Sprintf("Starting with %d elements", len(s.a)), nil, nil))
}

// compare counts and announces a comparison of a[i] and a[j].
func (s *sorter) compare(i, j int) bool {
	return s.compareValues(i, j, s.a[i], s.a[j])
}

// compareValues is compare for algorithms that hold the operands outside the array.
func (s *sorter) compareValues(i, j int, x, y float64) bool {
	s.counters.Comparisons++
	desc := fmt.Sprintf("Comparing a[%d]=%g with a[%d]=%g", i, x, j, y)
	return s.emit(s.snapshot(domain.KindCompare, desc, []int{i, j}, nil))
}

// swap exchanges a[i] and a[j] and announces it.
func (s *sorter) swap(i, j int) bool {
	s.a[i], s.a[j] = s.a[j], s.a[i]
	s.counters.Swaps++
	desc := fmt.Sprintf("Swapping a[%d] and a[%d]", i, j)
	return s.emit(s.snapshot(domain.KindSwap, desc, nil, []int{i, j}))
}

// place writes v at index k and announces it. Writes are counted as swaps.
func (s *sorter) place(k int, v float64) bool {
	s.a[k] = v
	s.counters.Swaps++
	desc := fmt.Sprintf("Placing %g at index %d", v, k)
	return s.emit(s.snapshot(domain.KindPlace, desc, nil, []int{k}))
}

func (s *sorter) complete() bool {
	for i := range s.final {
		s.final[i] = true
	}
	st := s.snapshot(domain.KindComplete, fmt.Sprintf("Sorted after %d comparisons and %d swaps",
		s.counters.Comparisons, s.counters.Swaps), nil, nil)
	st.Terminal = true
	st.Outcome = domain.OutcomeCompleted
	return s.emit(st)
}
