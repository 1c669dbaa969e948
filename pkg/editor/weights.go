package editor

import "math/rand/v2"

// WeightPolicy yields the weight for each new edge.
type WeightPolicy func() float64

// FixedWeight gives every edge the same weight.
func FixedWeight(w float64) WeightPolicy {
	return func() float64 { return w }
}

// RandomWeight draws integer weights uniformly from [min, max] with a seeded source,
// so a given seed always yields the same sequence.
func RandomWeight(seed uint64, min, max int) WeightPolicy {
	if max < min {
		min, max = max, min
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return func() float64 {
		return float64(min + r.IntN(max-min+1))
	}
}
