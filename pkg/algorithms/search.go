package algorithms

import (
	"fmt"
	"iter"

	"github.com/aretw0/algoscope/pkg/domain"
)

// searchState renders searching snapshots.
type searchState struct {
	*emitter
	a                      []float64
	target                 float64
	low, mid, high, cur, f int
}

func (s *searchState) step(kind domain.StepKind, desc string) domain.Step {
	return domain.Step{
		Kind:        kind,
		Description: desc,
		Search: &domain.SearchState{
			Values:     cloneSlice(s.a),
			Target:     s.target,
			Low:        s.low,
			Mid:        s.mid,
			High:       s.high,
			Current:    s.cur,
			FoundIndex: s.f,
		},
	}
}

func (s *searchState) finish() bool {
	st := s.step(domain.KindComplete, fmt.Sprintf("%g not found", s.target))
	st.Terminal = true
	st.Outcome = domain.OutcomeNotFound
	if s.f >= 0 {
		st.Description = fmt.Sprintf("%g found at index %d", s.target, s.f)
		st.Outcome = domain.OutcomeFound
	}
	return s.emit(st)
}

// LinearSearch scans every index. When the target occurs more than once the
// reported index is the last match, not the first.
func LinearSearch(in domain.Input) (iter.Seq[domain.Step], error) {
	values := cloneSlice(in.Array)
	target := in.Target
	return func(yield func(domain.Step) bool) {
		s := &searchState{emitter: newEmitter("linear", yield), a: values, target: target,
			low: 0, high: len(values) - 1, mid: -1, cur: -1, f: -1}
		if !s.emit(s.step(domain.KindInit, fmt.Sprintf("Searching for %g in %d elements", target, len(values)))) {
			return
		}
		for i, v := range s.a {
			s.cur = i
			desc := fmt.Sprintf("a[%d]=%g does not match", i, v)
			if v == target {
				s.f = i
				desc = fmt.Sprintf("a[%d]=%g matches", i, v)
			}
			if !s.emit(s.step(domain.KindCompare, desc)) {
				return
			}
		}
		s.finish()
	}, nil
}

// BinarySearch narrows [low, high] around mid until the target is found or the
// range is empty. After a match it keeps narrowing until low == high so the range
// visibly collapses onto the found index.
// The input must be sorted in non-decreasing order.
func BinarySearch(in domain.Input) (iter.Seq[domain.Step], error) {
	for i := 1; i < len(in.Array); i++ {
		if in.Array[i-1] > in.Array[i] {
			return nil, fmt.Errorf("binary search: a[%d]=%g > a[%d]=%g: %w", i-1, in.Array[i-1], i, in.Array[i], domain.ErrUnsortedInput)
		}
	}
	values := cloneSlice(in.Array)
	target := in.Target
	return func(yield func(domain.Step) bool) {
		s := &searchState{emitter: newEmitter("binary", yield), a: values, target: target,
			low: 0, high: len(values) - 1, mid: -1, cur: -1, f: -1}
		if !s.emit(s.step(domain.KindInit, fmt.Sprintf("Searching for %g in %d sorted elements", target, len(values)))) {
			return
		}

		for s.low <= s.high {
			s.mid = s.low + (s.high-s.low)/2
			s.cur = s.mid
			desc := fmt.Sprintf("Checking mid=%d (a[mid]=%g) in [%d..%d]", s.mid, s.a[s.mid], s.low, s.high)
			if !s.emit(s.step(domain.KindCompare, desc)) {
				return
			}
			if s.a[s.mid] == target {
				s.f = s.mid
				if !s.emit(s.step(domain.KindAccept, fmt.Sprintf("Found %g at index %d", target, s.mid))) {
					return
				}
				break
			}
			if s.a[s.mid] < target {
				s.low = s.mid + 1
			} else {
				s.high = s.mid - 1
			}
		}

		// Collapse the range onto the match. low <= f <= high holds throughout.
		for s.f >= 0 && s.low < s.high {
			s.mid = s.low + (s.high-s.low)/2
			if s.mid < s.f {
				s.low = s.mid + 1
			} else {
				s.high = s.mid
			}
			s.cur = s.mid
			desc := fmt.Sprintf("Narrowing to [%d..%d]", s.low, s.high)
			if !s.emit(s.step(domain.KindCompare, desc)) {
				return
			}
		}
		s.finish()
	}, nil
}
