package loam

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"

	"github.com/aretw0/algoscope/pkg/domain"
	"github.com/aretw0/algoscope/pkg/schema"
)

// Library adapts a Loam vault to ports.ScenarioLibrary.
// Each document is one scenario: the frontmatter (or JSON/YAML body) is an input
// document, and a markdown body becomes the description when none is set.
type Library struct {
	Repo core.Repository
}

// New wraps an initialized repository.
func New(repo core.Repository) *Library {
	return &Library{Repo: repo}
}

// Open initializes a read-only, strict Loam vault at dir.
// Strict mode keeps numbers as json.Number so weights and coordinates decode exactly.
func Open(dir string) (*Library, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(repo), nil
}

// Get loads one scenario by normalized ID (file name without extension).
func (l *Library) Get(ctx context.Context, id string) (*domain.Scenario, error) {
	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrScenarioNotFound, id)
		}
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}
	return toScenario(id, doc.Metadata, doc.Content)
}

// List returns every scenario in the vault ordered by ID.
func (l *Library) List(ctx context.Context) ([]domain.Scenario, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string, len(docs))
	out := make([]domain.Scenario, 0, len(docs))
	for _, doc := range docs {
		id := trimExtension(doc.ID)
		if existing, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existing, doc.ID)
		}
		seen[id] = doc.ID

		s, err := toScenario(id, doc.Metadata, doc.Content)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	slices.SortFunc(out, func(a, b domain.Scenario) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

func toScenario(id string, meta map[string]any, body string) (*domain.Scenario, error) {
	doc, err := schema.Decode(meta)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", id, err)
	}
	in, err := doc.Input()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", id, err)
	}

	desc := doc.Description
	if desc == "" {
		desc = strings.TrimSpace(body)
	}
	title := doc.Title
	if title == "" {
		title = id
	}
	return &domain.Scenario{
		ID:          id,
		Title:       title,
		Description: desc,
		Algorithm:   doc.Algorithm,
		Speed:       doc.Speed,
		Input:       in,
	}, nil
}

func isNotFound(err error) bool {
	if errors.Is(err, fs.ErrNotExist) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "not found") || strings.Contains(msg, "no such file")
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
