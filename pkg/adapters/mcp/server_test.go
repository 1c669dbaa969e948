package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/algoscope"
	"github.com/aretw0/algoscope/pkg/adapters/memory"
	"github.com/aretw0/algoscope/pkg/domain"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	lib, err := memory.NewLibrary(domain.Scenario{
		ID:        "path",
		Algorithm: "dijkstra",
		Input: domain.Input{
			Start: "A",
			Graph: domain.Graph{
				Nodes: []domain.Node{{ID: "A"}, {ID: "B"}, {ID: "C"}},
				Edges: []domain.Edge{{U: "A", V: "B", Weight: 1}, {U: "B", V: "C", Weight: 2}},
			},
		},
	})
	require.NoError(t, err)
	return NewServer(algoscope.New(), lib, nil)
}

func TestServer_ListsTools(t *testing.T) {
	s := newTestServer(t)

	msg := s.mcpServer.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var resp struct {
		Result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(raw, &resp))

	var names []string
	for _, tool := range resp.Result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"list_algorithms", "describe_algorithm", "generate_steps", "render_mermaid"}, names)
}

func TestGenerateSteps(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	t.Run("Input document", func(t *testing.T) {
		got, err := s.handleGenerateSteps(ctx, mcp.CallToolRequest{}, map[string]interface{}{
			"algorithm": "bubble",
			"input":     "array: [3, 1, 2]",
		})
		require.NoError(t, err)
		assert.Equal(t, "bubble", got.Algorithm)
		assert.False(t, got.Truncated)
		require.NotEmpty(t, got.Steps)
		assert.Equal(t, []float64{1, 2, 3}, got.Steps[len(got.Steps)-1].Array.Values)
	})

	t.Run("Algorithm from document", func(t *testing.T) {
		got, err := s.handleGenerateSteps(ctx, mcp.CallToolRequest{}, map[string]interface{}{
			"input": `{"algorithm":"linear","array":[4,5],"target":5}`,
			"limit": float64(1),
		})
		require.NoError(t, err)
		assert.Equal(t, "linear", got.Algorithm)
		assert.True(t, got.Truncated)
		assert.Len(t, got.Steps, 1)
	})

	t.Run("Scenario", func(t *testing.T) {
		got, err := s.handleGenerateSteps(ctx, mcp.CallToolRequest{}, map[string]interface{}{"scenario": "path"})
		require.NoError(t, err)
		assert.Equal(t, "dijkstra", got.Algorithm)
		assert.True(t, got.Steps[len(got.Steps)-1].Terminal)
	})

	t.Run("Errors", func(t *testing.T) {
		_, err := s.handleGenerateSteps(ctx, mcp.CallToolRequest{}, map[string]interface{}{})
		assert.Error(t, err)

		_, err = s.handleGenerateSteps(ctx, mcp.CallToolRequest{}, map[string]interface{}{"input": "array: [1]"})
		assert.ErrorContains(t, err, "algorithm is required")

		_, err = s.handleGenerateSteps(ctx, mcp.CallToolRequest{}, map[string]interface{}{"scenario": "missing"})
		assert.ErrorIs(t, err, domain.ErrScenarioNotFound)

		_, err = s.handleGenerateSteps(ctx, mcp.CallToolRequest{}, map[string]interface{}{"algorithm": "bogo", "input": "array: [1]"})
		assert.ErrorIs(t, err, domain.ErrUnknownAlgorithm)
	})
}

func TestRenderMermaid(t *testing.T) {
	s := newTestServer(t)
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"scenario": "path", "step": float64(2)}

	res, err := s.handleRenderMermaid(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "graph LR")
	assert.Contains(t, text.Text, `A -- "1" --- B`)

	req.Params.Arguments = map[string]any{}
	res, err = s.handleRenderMermaid(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
