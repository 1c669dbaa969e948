package algorithms

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/aretw0/algoscope/pkg/domain"
)

const (
	bucketCount = 5
	bucketWidth = 20
	bucketMax   = bucketCount * bucketWidth
)

// BucketSort scatters values into five fixed buckets ([0-19], [20-39], ... [80-99]),
// sorts every non-empty bucket and gathers them back in bucket order.
// Values outside [0, 100) are rejected with domain.ErrValueOutOfRange.
func BucketSort(in domain.Input) (iter.Seq[domain.Step], error) {
	for i, v := range in.Array {
		if math.IsNaN(v) || v < 0 || v >= bucketMax {
			return nil, fmt.Errorf("bucket sort: a[%d]=%g outside [0, %d): %w", i, v, bucketMax, domain.ErrValueOutOfRange)
		}
	}
	values := cloneSlice(in.Array)
	return func(yield func(domain.Step) bool) {
		b := &bucketRun{sorter: newSorter("bucket", values, yield), buckets: make([][]float64, bucketCount)}
		for i := range b.buckets {
			b.buckets[i] = []float64{}
		}
		if !b.emitBucket(domain.KindInit, fmt.Sprintf("Starting with %d elements and %d buckets", len(b.a), bucketCount), "", -1, nil) {
			return
		}
		if len(b.a) == 0 {
			b.complete()
			return
		}

		if !b.emitBucket(domain.KindPhase, "Scatter phase: distributing elements into buckets", domain.PhaseScatter, -1, nil) {
			return
		}
		for i, v := range b.a {
			idx := int(math.Floor(v / bucketWidth))
			b.buckets[idx] = append(b.buckets[idx], v)
			desc := fmt.Sprintf("Moving %g into bucket %d [%d-%d]", v, idx, idx*bucketWidth, idx*bucketWidth+bucketWidth-1)
			if !b.emitBucket(domain.KindBucket, desc, domain.PhaseScatter, idx, []int{i}) {
				return
			}
		}

		if !b.emitBucket(domain.KindPhase, "Sort phase: sorting each bucket", domain.PhaseSort, -1, nil) {
			return
		}
		for idx := range b.buckets {
			if len(b.buckets[idx]) == 0 {
				continue
			}
			slices.Sort(b.buckets[idx])
			b.counters.Comparisons += len(b.buckets[idx]) - 1
			desc := fmt.Sprintf("Sorted bucket %d: %v", idx, b.buckets[idx])
			if !b.emitBucket(domain.KindBucket, desc, domain.PhaseSort, idx, nil) {
				return
			}
		}

		if !b.emitBucket(domain.KindPhase, "Gather phase: concatenating buckets", domain.PhaseGather, -1, nil) {
			return
		}
		k := 0
		for idx, bucket := range b.buckets {
			for _, v := range bucket {
				b.a[k] = v
				b.counters.Swaps++
				b.final[k] = true
				desc := fmt.Sprintf("Gathering %g from bucket %d into index %d", v, idx, k)
				if !b.emitBucket(domain.KindPlace, desc, domain.PhaseGather, idx, []int{k}) {
					return
				}
				k++
			}
		}

		st := b.snapshot(domain.KindComplete, "Bucket sort complete", nil, nil)
		st.Array.Phase = domain.PhaseGather
		st.Array.Buckets = cloneNested(b.buckets)
		st.Terminal = true
		st.Outcome = domain.OutcomeCompleted
		b.emit(st)
	}, nil
}

type bucketRun struct {
	*sorter
	buckets [][]float64
}

func (b *bucketRun) emitBucket(kind domain.StepKind, desc, phase string, bucket int, touched []int) bool {
	st := b.snapshot(kind, desc, nil, touched)
	st.Array.Phase = phase
	st.Array.Bucket = bucket
	st.Array.Buckets = cloneNested(b.buckets)
	return b.emit(st)
}
