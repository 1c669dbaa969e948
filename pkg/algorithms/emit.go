package algorithms

import (
	"iter"

	"github.com/aretw0/algoscope/pkg/domain"
)

// Generator binds an input and returns the step sequence for one run.
type Generator func(in domain.Input) (iter.Seq[domain.Step], error)

// emitter numbers steps and stamps them with the algorithm name.
// A new emitter is created for every range over a sequence.
type emitter struct {
	name  string
	seq   int
	yield func(domain.Step) bool
}

func newEmitter(name string, yield func(domain.Step) bool) *emitter {
	return &emitter{name: name, yield: yield}
}

func (e *emitter) emit(s domain.Step) bool {
	s.Seq = e.seq
	s.Algorithm = e.name
	e.seq++
	return e.yield(s)
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	c := make([]T, len(s))
	copy(c, s)
	return c
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	c := make(map[K]V, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func cloneNested[T any](s [][]T) [][]T {
	if s == nil {
		return nil
	}
	c := make([][]T, len(s))
	for i := range s {
		c[i] = cloneSlice(s[i])
	}
	return c
}
