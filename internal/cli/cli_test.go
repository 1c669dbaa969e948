package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/algoscope"
	"github.com/aretw0/algoscope/pkg/domain"
)

const bfDoc = `
title: Negative edge
algorithm: bellman-ford
start: A
edges:
  - [A, B, 4]
  - {from: A, to: C, weight: 2}
  - {source: C, target: B, weight: -3}
  - {u: B, v: D, weight: 1}
directed: true
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExecute_Text(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bf.yaml", bfDoc)
	var out bytes.Buffer

	err := Execute(context.Background(), algoscope.New(), RunOptions{
		Input:   InputOptions{Path: path},
		NoDelay: true,
		Profile: termenv.Ascii,
	}, &out)
	require.NoError(t, err)

	text := out.String()
	assert.True(t, strings.HasPrefix(text, ">>> Negative edge (bellman-ford)"))
	assert.Contains(t, text, "init")
	assert.Contains(t, text, "dist")
	assert.Contains(t, text, ">>> Finished: completed")
}

func TestExecute_JSONLines(t *testing.T) {
	path := writeFile(t, t.TempDir(), "arr.yaml", "array: [3, 1, 2]\n")
	var out bytes.Buffer

	err := Execute(context.Background(), algoscope.New(), RunOptions{
		Algorithm: "selection",
		Input:     InputOptions{Path: path},
		JSON:      true,
		NoDelay:   true,
	}, &out)
	require.NoError(t, err)

	var steps []domain.Step
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var s domain.Step
		require.NoError(t, json.Unmarshal(sc.Bytes(), &s))
		steps = append(steps, s)
	}
	require.NotEmpty(t, steps)
	for i, s := range steps {
		assert.Equal(t, i, s.Seq)
		assert.Equal(t, "selection", s.Algorithm)
	}
	last := steps[len(steps)-1]
	assert.True(t, last.Terminal)
	assert.Equal(t, []float64{1, 2, 3}, last.Array.Values)
}

func TestExecute_Errors(t *testing.T) {
	dir := t.TempDir()
	noAlgo := writeFile(t, dir, "plain.yaml", "array: [1]\n")
	lab := algoscope.New()
	ctx := context.Background()

	err := Execute(ctx, lab, RunOptions{NoDelay: true}, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrNoInput)

	err = Execute(ctx, lab, RunOptions{Input: InputOptions{Path: noAlgo}, NoDelay: true}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "no algorithm")

	err = Execute(ctx, lab, RunOptions{Algorithm: "bubble", Speed: "9x", Input: InputOptions{Path: noAlgo}}, &bytes.Buffer{})
	assert.Error(t, err)

	err = Execute(ctx, lab, RunOptions{Algorithm: "nope", Input: InputOptions{Path: noAlgo}, NoDelay: true}, &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrUnknownAlgorithm)

	_, err = ResolveInput(ctx, InputOptions{Path: noAlgo, ScenarioID: "x"})
	assert.Error(t, err)
}

func TestExecute_Cancelled(t *testing.T) {
	path := writeFile(t, t.TempDir(), "arr.yaml", "algorithm: bubble\narray: [3, 1, 2]\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := Execute(ctx, algoscope.New(), RunOptions{Input: InputOptions{Path: path}, NoDelay: true, Profile: termenv.Ascii}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Interrupted after 0 steps.")
}

func TestResolveInput_Scenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sorting.md", "---\ntitle: Sorting\nalgorithm: quick\nspeed: 2x\narray: [9, 4, 7]\n---\nQuick sort demo.\n")

	src, err := ResolveInput(context.Background(), InputOptions{ScenarioID: "sorting", ScenarioDir: dir})
	require.NoError(t, err)
	assert.Equal(t, "quick", src.Algorithm)
	assert.Equal(t, "2x", src.Speed)
	assert.Equal(t, []float64{9, 4, 7}, src.Input.Array)

	_, err = ResolveInput(context.Background(), InputOptions{ScenarioID: "missing", ScenarioDir: dir})
	assert.ErrorIs(t, err, domain.ErrScenarioNotFound)
}

func TestRenderGraph(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bf.yaml", bfDoc)
	lab := algoscope.New()

	plain, err := RenderGraph(context.Background(), lab, GraphOptions{Input: InputOptions{Path: path}})
	require.NoError(t, err)
	assert.Contains(t, plain, `A(("A"))`)
	assert.NotContains(t, plain, "class ")

	overlaid, err := RenderGraph(context.Background(), lab, GraphOptions{Input: InputOptions{Path: path}, Algorithm: "bfs", Step: -1})
	require.NoError(t, err)
	assert.Regexp(t, `class D (visited|current);`, overlaid)

	first, err := RenderGraph(context.Background(), lab, GraphOptions{Input: InputOptions{Path: path}, Algorithm: "dijkstra", Step: 0})
	require.NoError(t, err)
	assert.Contains(t, first, "A <br/> 0")
}

func TestTextRenderer_Matrix(t *testing.T) {
	var out bytes.Buffer
	r := NewTextRenderer(&out, termenv.Ascii)
	require.NoError(t, r.Render(domain.Step{
		Kind: domain.KindCompare,
		Matrix: &domain.MatrixState{
			Nodes: []string{"A", "B"},
			Dist:  [][]domain.Distance{{0, 1}, {domain.Inf(), 0}},
			K:     0, I: 1, J: 0,
		},
	}))
	assert.Contains(t, out.String(), "[∞]")
}

func TestColorProfile_NonTerminal(t *testing.T) {
	assert.Equal(t, termenv.Ascii, ColorProfile(&bytes.Buffer{}))
	assert.False(t, IsTerminal(&bytes.Buffer{}))
	assert.Equal(t, 80, TerminalWidth(&bytes.Buffer{}, 80))
}
