package registry

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"sync"

	"github.com/aretw0/algoscope/internal/logging"
	"github.com/aretw0/algoscope/pkg/algorithms"
	"github.com/aretw0/algoscope/pkg/domain"
)

// Family groups algorithms by the kind of input they consume.
type Family string

const (
	FamilySearch  Family = "search"
	FamilySorting Family = "sorting"
	FamilyGraph   Family = "graph"
)

// Entry describes one registered algorithm.
type Entry struct {
	Name         string               `json:"name"`
	Family       Family               `json:"family"`
	Title        string               `json:"title"`
	Summary      string               `json:"summary"`
	NeedsWeights bool                 `json:"needs_weights,omitempty"`
	NeedsStart   bool                 `json:"needs_start,omitempty"`
	NeedsGoal    bool                 `json:"needs_goal,omitempty"`
	Generator    algorithms.Generator `json:"-"`
}

// Registry manages the available algorithms.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
	logger  *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used to report skipped edges.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry creates a new empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[string]Entry),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds an algorithm to the registry.
// If an algorithm with the same name exists, it is overwritten.
func (r *Registry) Register(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.Name] = e
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return Entry{}, fmt.Errorf("%q: %w", name, domain.ErrUnknownAlgorithm)
	}
	return e, nil
}

// Entries lists registered algorithms ordered by family, then name.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Entry) int {
		if a.Family != b.Family {
			return familyRank(a.Family) - familyRank(b.Family)
		}
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	return out
}

func familyRank(f Family) int {
	switch f {
	case FamilySearch:
		return 0
	case FamilySorting:
		return 1
	case FamilyGraph:
		return 2
	}
	return 3
}

// Generate looks up an algorithm and binds it to the input.
// Structural input errors are returned before any step exists.
func (r *Registry) Generate(ctx context.Context, name string, in domain.Input) (iter.Seq[domain.Step], error) {
	e, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	if e.Family == FamilyGraph {
		for _, issue := range in.Graph.Validate() {
			r.logger.WarnContext(ctx, "skipping malformed edge",
				"algorithm", name, "index", issue.Index, "edge", issue.Edge.String(), "missing", issue.Missing)
		}
	}
	seq, err := e.Generator(in.Clone())
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", name, err)
	}
	return seq, nil
}
