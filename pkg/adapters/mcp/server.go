package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/algoscope"
	"github.com/aretw0/algoscope/internal/logging"
	"github.com/aretw0/algoscope/internal/presentation/graph"
	"github.com/aretw0/algoscope/pkg/domain"
	"github.com/aretw0/algoscope/pkg/ports"
	"github.com/aretw0/algoscope/pkg/schema"
)

// DefaultStepLimit caps generate_steps when the caller gives no limit.
const DefaultStepLimit = 500

// StepsResponse is the structured result of generate_steps.
type StepsResponse struct {
	Algorithm string        `json:"algorithm" jsonschema_description:"The algorithm that produced the steps"`
	Steps     []domain.Step `json:"steps" jsonschema_description:"Steps in emission order"`
	Truncated bool          `json:"truncated" jsonschema_description:"True when the sequence was cut at the limit"`
}

// Server exposes the algoscope Lab as an MCP Server.
type Server struct {
	lab       *algoscope.Lab
	library   ports.ScenarioLibrary
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. library may be nil.
func NewServer(lab *algoscope.Lab, library ports.ScenarioLibrary, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		lab:       lab,
		library:   library,
		logger:    logger,
		mcpServer: server.NewMCPServer("algoscope-mcp", strings.TrimSpace(algoscope.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, Baggage, Sentry-Trace")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_algorithms
	s.mcpServer.AddTool(mcp.NewTool("list_algorithms",
		mcp.WithDescription("List every algorithm with its family and input requirements."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(s.lab.Algorithms())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: describe_algorithm
	s.mcpServer.AddTool(mcp.NewTool("describe_algorithm",
		mcp.WithDescription("Describe one algorithm in Markdown."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Algorithm name, e.g. dijkstra")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, _ := request.GetArguments()["name"].(string)
		entry, err := s.lab.Registry().Lookup(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("# %s\n\n%s\n", entry.Title, entry.Summary)), nil
	})

	// TOOL: generate_steps
	stepsTool := mcp.NewTool("generate_steps",
		mcp.WithDescription("Run an algorithm without pacing and return its steps."),
		mcp.WithString("algorithm", mcp.Description("Algorithm name (optional when the input or scenario names one)")),
		mcp.WithString("input", mcp.Description("YAML or JSON input document")),
		mcp.WithString("scenario", mcp.Description("Scenario ID to use instead of input")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of steps to return")),
		mcp.WithOutputSchema[StepsResponse](),
	)
	s.mcpServer.AddTool(stepsTool, mcp.NewStructuredToolHandler(s.handleGenerateSteps))

	// TOOL: render_mermaid
	s.mcpServer.AddTool(mcp.NewTool("render_mermaid",
		mcp.WithDescription("Render the input graph as a Mermaid flowchart, optionally overlaid with one step of an algorithm."),
		mcp.WithString("algorithm", mcp.Description("Algorithm whose state is overlaid (optional)")),
		mcp.WithString("input", mcp.Description("YAML or JSON input document")),
		mcp.WithString("scenario", mcp.Description("Scenario ID to use instead of input")),
		mcp.WithNumber("step", mcp.Description("1-based step to overlay; the last step when omitted")),
	), s.handleRenderMermaid)
}

// toolInput is the input shared by the step tools.
type toolInput struct {
	algorithm string
	input     domain.Input
}

func (s *Server) resolve(ctx context.Context, args map[string]interface{}) (toolInput, error) {
	algorithm, _ := args["algorithm"].(string)
	raw, _ := args["input"].(string)
	scenarioID, _ := args["scenario"].(string)

	switch {
	case scenarioID != "":
		if s.library == nil {
			return toolInput{}, errors.New("no scenario library configured")
		}
		sc, err := s.library.Get(ctx, scenarioID)
		if err != nil {
			return toolInput{}, err
		}
		if algorithm == "" {
			algorithm = sc.Algorithm
		}
		return toolInput{algorithm: algorithm, input: sc.Input}, nil
	case raw != "":
		doc, err := schema.Parse([]byte(raw))
		if err != nil {
			return toolInput{}, err
		}
		in, err := doc.Input()
		if err != nil {
			return toolInput{}, err
		}
		if algorithm == "" {
			algorithm = doc.Algorithm
		}
		return toolInput{algorithm: algorithm, input: in}, nil
	}
	return toolInput{}, errors.New("either input or scenario is required")
}

func intArg(args map[string]interface{}, key string, fallback int) int {
	if v, ok := args[key].(float64); ok && v >= 1 {
		return int(v)
	}
	return fallback
}

// Handler methods for structured tools

func (s *Server) handleGenerateSteps(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StepsResponse, error) {
	req, err := s.resolve(ctx, args)
	if err != nil {
		return StepsResponse{}, fmt.Errorf("invalid input: %w", err)
	}
	if req.algorithm == "" {
		return StepsResponse{}, errors.New("algorithm is required")
	}

	limit := intArg(args, "limit", DefaultStepLimit)
	steps, truncated, err := s.lab.Collect(ctx, req.algorithm, req.input, limit)
	if err != nil {
		s.logger.Warn("MCP generate_steps failed", "algorithm", req.algorithm, "error", err)
		return StepsResponse{}, fmt.Errorf("generate failed: %w", err)
	}
	return StepsResponse{Algorithm: req.algorithm, Steps: steps, Truncated: truncated}, nil
}

func (s *Server) handleRenderMermaid(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	req, err := s.resolve(ctx, args)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid input: %v", err)), nil
	}

	overlay := &graph.Overlay{Start: req.input.Start, Goal: req.input.Goal}
	if req.algorithm != "" {
		steps, _, err := s.lab.Collect(ctx, req.algorithm, req.input, intArg(args, "step", 0))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("generate failed: %v", err)), nil
		}
		if len(steps) > 0 {
			if o := graph.FromStep(req.input, steps[len(steps)-1]); o != nil {
				overlay = o
			}
		}
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(req.input.Graph, overlay)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: algoscope://algorithms
	s.mcpServer.AddResource(mcp.NewResource("algoscope://algorithms", "Algorithm Catalogue",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.lab.Algorithms())
		if err != nil {
			return nil, fmt.Errorf("failed to encode catalogue: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "algoscope://algorithms",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})

	if s.library == nil {
		return
	}
	// EXPOSE: algoscope://scenarios
	s.mcpServer.AddResource(mcp.NewResource("algoscope://scenarios", "Scenario Library",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		list, err := s.library.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list scenarios: %w", err)
		}
		jsonBytes, err := json.Marshal(list)
		if err != nil {
			return nil, fmt.Errorf("failed to encode scenarios: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "algoscope://scenarios",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
