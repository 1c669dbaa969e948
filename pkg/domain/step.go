package domain

import "maps"

// StepKind names the action a step illustrates.
type StepKind string

const (
	KindInit      StepKind = "init"
	KindCompare   StepKind = "compare"
	KindSwap      StepKind = "swap"
	KindPlace     StepKind = "place"
	KindPivot     StepKind = "pivot"
	KindPhase     StepKind = "phase"
	KindBucket    StepKind = "bucket"
	KindVisit     StepKind = "visit"
	KindDiscover  StepKind = "discover"
	KindSettle    StepKind = "settle"
	KindRelax     StepKind = "relax"
	KindCheck     StepKind = "check"
	KindConsider  StepKind = "consider"
	KindAccept    StepKind = "accept"
	KindReject    StepKind = "reject"
	KindColor     StepKind = "color"
	KindFinish    StepKind = "finish"
	KindComponent StepKind = "component"
	KindComplete  StepKind = "complete"
)

// Outcome qualifies a terminal step.
// Renderers must treat anything other than OutcomeCompleted/OutcomeFound as a distinct ending.
type Outcome string

const (
	OutcomeCompleted     Outcome = "completed"
	OutcomeFound         Outcome = "found"
	OutcomeNotFound      Outcome = "not_found"
	OutcomeNegativeCycle Outcome = "negative_cycle"
	OutcomeCycleDetected Outcome = "cycle_detected"
	OutcomeUnreachable   Outcome = "unreachable"
)

// Bucket sort phases.
const (
	PhaseScatter = "SCATTER"
	PhaseSort    = "SORT"
	PhaseGather  = "GATHER"
)

// Step is one immutable snapshot of algorithm progress.
// Exactly one of the family payloads is set; all of them own their memory.
type Step struct {
	Seq         int      `json:"seq"`
	Algorithm   string   `json:"algorithm"`
	Kind        StepKind `json:"kind"`
	Description string   `json:"description"`
	Terminal    bool     `json:"terminal,omitempty"`
	Outcome     Outcome  `json:"outcome,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`

	Array  *ArrayState  `json:"array,omitempty"`
	Search *SearchState `json:"search,omitempty"`
	Graph  *GraphState  `json:"graph,omitempty"`
	Matrix *MatrixState `json:"matrix,omitempty"`
}

// Counters tracks the work done by a comparison sort.
type Counters struct {
	Comparisons int `json:"comparisons"`
	Swaps       int `json:"swaps"`
}

// ArrayState is the payload of sorting steps.
type ArrayState struct {
	Values   []float64   `json:"values"`
	Compared []int       `json:"compared,omitempty"`
	Swapped  []int       `json:"swapped,omitempty"`
	Sorted   []int       `json:"sorted,omitempty"`
	Pivot    int         `json:"pivot"`
	Phase    string      `json:"phase,omitempty"`
	Buckets  [][]float64 `json:"buckets,omitempty"`
	Bucket   int         `json:"bucket"`
	Counters Counters    `json:"counters"`
}

// SearchState is the payload of searching steps.
type SearchState struct {
	Values     []float64 `json:"values"`
	Target     float64   `json:"target"`
	Low        int       `json:"low"`
	Mid        int       `json:"mid"`
	High       int       `json:"high"`
	Current    int       `json:"current"`
	FoundIndex int       `json:"found_index"`
}

// GraphState is the payload of traversal, path, tree and ordering steps.
// Fields not meaningful for an algorithm are left empty.
type GraphState struct {
	Active           string              `json:"active,omitempty"`
	ActiveEdge       *Edge               `json:"active_edge,omitempty"`
	Visited          []string            `json:"visited,omitempty"`
	Frontier         []string            `json:"frontier,omitempty"`
	Order            []string            `json:"order,omitempty"`
	ComponentsFound  int                 `json:"components_found,omitempty"`
	Distances        map[string]Distance `json:"distances,omitempty"`
	Predecessors     map[string]string   `json:"predecessors,omitempty"`
	Settled          []string            `json:"settled,omitempty"`
	Pass             int                 `json:"pass,omitempty"`
	HasNegativeCycle bool                `json:"has_negative_cycle,omitempty"`
	HasCycle         bool                `json:"has_cycle,omitempty"`
	TreeEdges        []Edge              `json:"tree_edges,omitempty"`
	TotalWeight      float64             `json:"total_weight,omitempty"`
	Parent           map[string]string   `json:"parent,omitempty"`
	Components       [][]string          `json:"components,omitempty"`
	Colors           map[string]int      `json:"colors,omitempty"`
	ColorCount       int                 `json:"color_count,omitempty"`
	Open             []string            `json:"open,omitempty"`
	Closed           []string            `json:"closed,omitempty"`
	GScore           map[string]Distance `json:"g_score,omitempty"`
	FScore           map[string]Distance `json:"f_score,omitempty"`
	InDegree         map[string]int      `json:"in_degree,omitempty"`
	Path             []string            `json:"path,omitempty"`
}

// MatrixState is the payload of Floyd-Warshall steps.
// K, I and J are -1 when not applicable.
type MatrixState struct {
	Nodes            []string     `json:"nodes"`
	Dist             [][]Distance `json:"dist"`
	Next             [][]string   `json:"next"`
	K                int          `json:"k"`
	I                int          `json:"i"`
	J                int          `json:"j"`
	Updated          bool         `json:"updated,omitempty"`
	HasNegativeCycle bool         `json:"has_negative_cycle,omitempty"`
}

// Clone returns a deep copy of the step.
func (s Step) Clone() Step {
	c := s
	c.Warnings = cloneSlice(s.Warnings)
	if s.Array != nil {
		a := *s.Array
		a.Values = cloneSlice(s.Array.Values)
		a.Compared = cloneSlice(s.Array.Compared)
		a.Swapped = cloneSlice(s.Array.Swapped)
		a.Sorted = cloneSlice(s.Array.Sorted)
		a.Buckets = cloneNested(s.Array.Buckets)
		c.Array = &a
	}
	if s.Search != nil {
		q := *s.Search
		q.Values = cloneSlice(s.Search.Values)
		c.Search = &q
	}
	if s.Graph != nil {
		g := *s.Graph
		if s.Graph.ActiveEdge != nil {
			e := *s.Graph.ActiveEdge
			g.ActiveEdge = &e
		}
		g.Visited = cloneSlice(s.Graph.Visited)
		g.Frontier = cloneSlice(s.Graph.Frontier)
		g.Order = cloneSlice(s.Graph.Order)
		g.Distances = maps.Clone(s.Graph.Distances)
		g.Predecessors = maps.Clone(s.Graph.Predecessors)
		g.Settled = cloneSlice(s.Graph.Settled)
		g.TreeEdges = cloneSlice(s.Graph.TreeEdges)
		g.Parent = maps.Clone(s.Graph.Parent)
		g.Components = cloneNested(s.Graph.Components)
		g.Colors = maps.Clone(s.Graph.Colors)
		g.Open = cloneSlice(s.Graph.Open)
		g.Closed = cloneSlice(s.Graph.Closed)
		g.GScore = maps.Clone(s.Graph.GScore)
		g.FScore = maps.Clone(s.Graph.FScore)
		g.InDegree = maps.Clone(s.Graph.InDegree)
		g.Path = cloneSlice(s.Graph.Path)
		c.Graph = &g
	}
	if s.Matrix != nil {
		m := *s.Matrix
		m.Nodes = cloneSlice(s.Matrix.Nodes)
		m.Dist = cloneNested(s.Matrix.Dist)
		m.Next = cloneNested(s.Matrix.Next)
		c.Matrix = &m
	}
	return c
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	c := make([]T, len(s))
	copy(c, s)
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
