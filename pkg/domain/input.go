package domain

// Heuristic names accepted by A*.
const (
	HeuristicEuclidean = "euclidean"
	HeuristicManhattan = "manhattan"
	HeuristicZero      = "zero"
)

// Input is the immutable data a generator is bound to for one run.
// Each algorithm reads only the fields it needs.
type Input struct {
	Array     []float64 `json:"array,omitempty" yaml:"array,omitempty"`
	Target    float64   `json:"target,omitempty" yaml:"target,omitempty"`
	Graph     Graph     `json:"graph" yaml:"graph"`
	Start     string    `json:"start,omitempty" yaml:"start,omitempty"`
	Goal      string    `json:"goal,omitempty" yaml:"goal,omitempty"`
	Heuristic string    `json:"heuristic,omitempty" yaml:"heuristic,omitempty"`
}

// Clone deep-copies the input so later mutation by the caller cannot leak into a run.
func (in Input) Clone() Input {
	c := in
	if in.Array != nil {
		c.Array = make([]float64, len(in.Array))
		copy(c.Array, in.Array)
	}
	c.Graph = in.Graph.Clone()
	return c
}
