package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/algoscope/pkg/registry"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "none.yaml")))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestListJSON(t *testing.T) {
	out, err := execute(t, "list", "--json")
	require.NoError(t, err)

	var entries []registry.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Len(t, entries, len(registry.Names()))
}

func TestRunNoDelay(t *testing.T) {
	input := filepath.Join(t.TempDir(), "in.yaml")
	require.NoError(t, os.WriteFile(input, []byte("algorithm: selection\narray: [2, 1]\n"), 0o644))

	out, err := execute(t, "run", "--input", input, "--no-delay", "--json")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[len(lines)-1], `"terminal":true`)
}

func TestGraphCommand(t *testing.T) {
	input := filepath.Join(t.TempDir(), "g.yaml")
	require.NoError(t, os.WriteFile(input, []byte("start: A\nedges:\n  - [A, B, 3]\n"), 0o644))

	out, err := execute(t, "graph", "--input", input)
	require.NoError(t, err)
	assert.Contains(t, out, `A -- "3" --- B`)
}

func TestNeeds(t *testing.T) {
	assert.Equal(t, "-", needs(registry.Entry{}))
	assert.Equal(t, "start,goal,weights", needs(registry.Entry{NeedsStart: true, NeedsGoal: true, NeedsWeights: true}))
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("algorithm: bfs\nnodes: [A, B]\nedges:\n  - [A, B]\n"), 0o644))
	out, err := execute(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "Input is valid")

	dangling := filepath.Join(dir, "dangling.yaml")
	require.NoError(t, os.WriteFile(dangling, []byte("nodes: [A]\nedges:\n  - [A, Z]\n"), 0o644))
	out, err = execute(t, "validate", dangling)
	assert.ErrorContains(t, err, "dangling edges")
	assert.Contains(t, out, `edges[0].v: unknown node "Z"`)

	unsorted := filepath.Join(dir, "unsorted.yaml")
	require.NoError(t, os.WriteFile(unsorted, []byte("algorithm: binary\narray: [3, 1]\ntarget: 1\n"), 0o644))
	_, err = execute(t, "validate", unsorted)
	assert.ErrorContains(t, err, "not sorted")
}
