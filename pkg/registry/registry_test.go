package registry

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/algoscope/internal/logging"
	"github.com/aretw0/algoscope/pkg/domain"
)

func TestDefault_RegistersCatalogue(t *testing.T) {
	r := Default()
	entries := r.Entries()
	require.Len(t, entries, len(Names()))
	assert.Equal(t, FamilySearch, entries[0].Family)
	assert.Equal(t, FamilyGraph, entries[len(entries)-1].Family)
	for _, e := range entries {
		assert.NotNil(t, e.Generator, e.Name)
		assert.NotEmpty(t, e.Summary, e.Name)
	}
}

func TestGenerate_UnknownAlgorithm(t *testing.T) {
	_, err := Default().Generate(context.Background(), "bogo", domain.Input{})
	require.ErrorIs(t, err, domain.ErrUnknownAlgorithm)
}

func TestGenerate_WrapsInputErrors(t *testing.T) {
	_, err := Default().Generate(context.Background(), "bucket", domain.Input{Array: []float64{120}})
	require.ErrorIs(t, err, domain.ErrValueOutOfRange)
	assert.Contains(t, err.Error(), "generate bucket")
}

func TestGenerate_LogsSkippedEdges(t *testing.T) {
	var buf bytes.Buffer
	r := Default(WithLogger(logging.NewWriter(&buf, slog.LevelDebug)))
	in := domain.Input{Graph: domain.Graph{
		Nodes: []domain.Node{{ID: "A"}},
		Edges: []domain.Edge{{U: "A", V: "B", Weight: 1}},
	}}
	seq, err := r.Generate(context.Background(), "bfs", in)
	require.NoError(t, err)
	for range seq {
	}
	assert.Contains(t, buf.String(), "skipping malformed edge")
	assert.Contains(t, buf.String(), "missing=B")
}

func TestGenerate_ClonesInput(t *testing.T) {
	in := domain.Input{Array: []float64{3, 1, 2}}
	seq, err := Default().Generate(context.Background(), "insertion", in)
	require.NoError(t, err)
	in.Array[0] = 99

	var first domain.Step
	for s := range seq {
		first = s
		break
	}
	assert.Equal(t, []float64{3, 1, 2}, first.Array.Values)
}

func TestRegister_Overwrites(t *testing.T) {
	r := NewRegistry()
	r.Register(Entry{Name: "x", Title: "one"})
	r.Register(Entry{Name: "x", Title: "two"})
	e, err := r.Lookup("x")
	require.NoError(t, err)
	assert.Equal(t, "two", e.Title)
}
