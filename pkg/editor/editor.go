package editor

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"sync"

	"github.com/aretw0/algoscope/pkg/domain"
)

// Effect describes the outcome of one interaction.
type Effect struct {
	Action  Action       `json:"action"`
	Node    *domain.Node `json:"node,omitempty"`
	Edge    *domain.Edge `json:"edge,omitempty"`
	Pending string       `json:"pending,omitempty"`
	Start   string       `json:"start,omitempty"`
	Removed int          `json:"removed_edges,omitempty"`
}

// Editor owns the graph and array being edited.
type Editor struct {
	gate     func() bool
	weight   WeightPolicy
	directed bool

	mu      sync.Mutex
	mode    Mode
	graph   domain.Graph
	start   string
	array   []float64
	nextID  int
	pending string
}

// Option configures an Editor.
type Option func(*Editor)

// WithGate sets the lock check. While it returns true every mutation fails with ErrEditingLocked.
func WithGate(locked func() bool) Option {
	return func(e *Editor) { e.gate = locked }
}

// WithWeights sets the policy for new edge weights. The default is FixedWeight(1).
func WithWeights(p WeightPolicy) Option {
	return func(e *Editor) {
		if p != nil {
			e.weight = p
		}
	}
}

// WithDirected makes new edges directed.
func WithDirected(directed bool) Option {
	return func(e *Editor) { e.directed = directed }
}

// New creates an empty editor in ADD_NODE mode.
func New(opts ...Option) *Editor {
	e := &Editor{
		gate:   func() bool { return false },
		weight: FixedWeight(1),
		mode:   ModeAddNode,
		graph:  domain.Graph{Nodes: []domain.Node{}, Edges: []domain.Edge{}},
		nextID: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FromWorkspace restores an editor from a saved workspace.
func FromWorkspace(ws *domain.Workspace, opts ...Option) (*Editor, error) {
	e := New(opts...)
	if ws.Mode != "" {
		m, err := ParseMode(ws.Mode)
		if err != nil {
			return nil, err
		}
		e.mode = m
	}
	e.graph = ws.Input.Graph.Clone()
	e.start = ws.Input.Start
	e.array = slices.Clone(ws.Input.Array)
	e.nextID = max(ws.NextID, 1, nextFree(e.graph))
	if e.graph.HasNode(ws.Pending) {
		e.pending = ws.Pending
	}
	return e, nil
}

// Workspace captures the editor state for persistence.
func (e *Editor) Workspace(id string) *domain.Workspace {
	e.mu.Lock()
	defer e.mu.Unlock()
	return &domain.Workspace{
		ID:      id,
		Mode:    string(e.mode),
		Input:   e.inputLocked(),
		NextID:  e.nextID,
		Pending: e.pending,
	}
}

func (e *Editor) locked() error {
	if e.gate() {
		return ErrEditingLocked
	}
	return nil
}

// SetMode switches the interaction and clears any pending link source.
// Switching is allowed during a run since it does not touch the input.
func (e *Editor) SetMode(m Mode) error {
	if _, err := ParseMode(string(m)); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = m
	e.pending = ""
	return nil
}

// Mode returns the active interaction.
func (e *Editor) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Pending returns the recorded link source, if any.
func (e *Editor) Pending() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending
}

// ClickCanvas handles a click on empty space. In ADD_NODE mode it creates a node
// at (x, y) with the next unused id.
func (e *Editor) ClickCanvas(x, y float64) (Effect, error) {
	if err := e.locked(); err != nil {
		return Effect{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode != ModeAddNode {
		return Effect{}, fmt.Errorf("canvas click in %s: %w", e.mode, ErrWrongMode)
	}
	id := strconv.Itoa(e.nextID)
	e.nextID++
	n := domain.Node{ID: id, Label: id, X: x, Y: y}
	e.graph.Nodes = append(e.graph.Nodes, n)
	return Effect{Action: ActionNodeAdded, Node: &n}, nil
}

// ClickNode handles a click on an existing node according to the active mode.
func (e *Editor) ClickNode(id string) (Effect, error) {
	if err := e.locked(); err != nil {
		return Effect{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.graph.HasNode(id) {
		return Effect{}, fmt.Errorf("%q: %w", id, ErrNodeNotFound)
	}
	switch e.mode {
	case ModeLinkEdge:
		return e.link(id)
	case ModeSetStart:
		e.start = id
		return Effect{Action: ActionStartSet, Start: id}, nil
	case ModeDelete:
		return e.remove(id), nil
	}
	return Effect{}, fmt.Errorf("node click in %s: %w", e.mode, ErrWrongMode)
}

func (e *Editor) link(id string) (Effect, error) {
	if e.pending == "" {
		e.pending = id
		return Effect{Action: ActionPendingSet, Pending: id}, nil
	}
	src := e.pending
	e.pending = ""
	if src == id {
		return Effect{Action: ActionPendingCleared}, nil
	}
	for _, ed := range e.graph.Edges {
		if (ed.U == src && ed.V == id) || (ed.U == id && ed.V == src) {
			return Effect{}, fmt.Errorf("%s–%s: %w", src, id, ErrDuplicateEdge)
		}
	}
	ed := domain.Edge{U: src, V: id, Weight: e.weight(), Directed: e.directed}
	e.graph.Edges = append(e.graph.Edges, ed)
	return Effect{Action: ActionEdgeAdded, Edge: &ed}, nil
}

func (e *Editor) remove(id string) Effect {
	e.graph.Nodes = slices.DeleteFunc(e.graph.Nodes, func(n domain.Node) bool { return n.ID == id })
	before := len(e.graph.Edges)
	e.graph.Edges = slices.DeleteFunc(e.graph.Edges, func(ed domain.Edge) bool { return ed.U == id || ed.V == id })
	if e.pending == id {
		e.pending = ""
	}
	if e.start == id {
		e.start = ""
		if len(e.graph.Nodes) > 0 {
			e.start = e.graph.Nodes[0].ID
		}
	}
	return Effect{Action: ActionNodeDeleted, Start: e.start, Removed: before - len(e.graph.Edges)}
}

// Start returns the designated start node, or "" when none is set.
func (e *Editor) Start() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.start
}

// Graph returns a snapshot of the edited graph.
func (e *Editor) Graph() domain.Graph {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.Clone()
}

// Array returns a copy of the edited array.
func (e *Editor) Array() []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.array)
}

// Input returns a snapshot suitable for binding a generator.
func (e *Editor) Input() domain.Input {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inputLocked()
}

func (e *Editor) inputLocked() domain.Input {
	return domain.Input{Array: slices.Clone(e.array), Graph: e.graph.Clone(), Start: e.start}
}

// Load replaces the graph, keeping the id counter ahead of every numeric id in g.
// A start that is not in g is cleared.
func (e *Editor) Load(g domain.Graph, start string) error {
	if err := e.locked(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.graph = g.Clone()
	if e.graph.Nodes == nil {
		e.graph.Nodes = []domain.Node{}
	}
	if e.graph.Edges == nil {
		e.graph.Edges = []domain.Edge{}
	}
	e.start = ""
	if g.HasNode(start) {
		e.start = start
	}
	e.pending = ""
	e.nextID = max(e.nextID, nextFree(e.graph))
	return nil
}

// Clear removes every node and edge. Ids already handed out are not reused.
func (e *Editor) Clear() error {
	if err := e.locked(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.graph = domain.Graph{Nodes: []domain.Node{}, Edges: []domain.Edge{}}
	e.start = ""
	e.pending = ""
	return nil
}

// SetArray replaces the array input.
func (e *Editor) SetArray(values []float64) error {
	if err := e.locked(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.array = slices.Clone(values)
	return nil
}

// RandomArray replaces the array with n integers drawn from [0, 100) using seed.
func (e *Editor) RandomArray(n int, seed uint64) ([]float64, error) {
	if err := e.locked(); err != nil {
		return nil, err
	}
	r := rand.New(rand.NewPCG(seed, seed+1))
	values := make([]float64, max(n, 0))
	for i := range values {
		values[i] = float64(r.IntN(100))
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.array = slices.Clone(values)
	return values, nil
}

// nextFree returns one past the largest numeric node id in g.
func nextFree(g domain.Graph) int {
	next := 1
	for _, n := range g.Nodes {
		if v, err := strconv.Atoi(n.ID); err == nil && v >= next {
			next = v + 1
		}
	}
	return next
}
