package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/algoscope"
	"github.com/aretw0/algoscope/internal/logging"
	"github.com/aretw0/algoscope/pkg/domain"
	"github.com/aretw0/algoscope/pkg/editor"
	"github.com/aretw0/algoscope/pkg/playback"
	"github.com/aretw0/algoscope/pkg/ports"
	"github.com/aretw0/algoscope/pkg/schema"
	"github.com/aretw0/algoscope/pkg/session"
)

//go:embed openapi.yaml
var rawSpec []byte

// maxBodyBytes caps request documents.
const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("bad request")

// GetSwagger parses the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	return openapi3.NewLoader().LoadFromData(rawSpec)
}

// Server exposes a Lab, its playback driver and the workspace editor over HTTP.
type Server struct {
	Lab        *algoscope.Lab
	Driver     *playback.Driver
	Workspaces *session.Manager
	Scenarios  ports.ScenarioLibrary

	gatherer  prometheus.Gatherer
	logger    *slog.Logger
	baseCtx   context.Context
	stepLimit int
}

// Option configures the Server.
type Option func(*Server)

// WithDriver shares an existing driver instead of creating one from the Lab.
func WithDriver(d *playback.Driver) Option {
	return func(s *Server) { s.Driver = d }
}

// WithWorkspaces enables the /workspaces routes.
func WithWorkspaces(m *session.Manager) Option {
	return func(s *Server) { s.Workspaces = m }
}

// WithScenarios enables the /scenarios routes and scenario runs.
func WithScenarios(lib ports.ScenarioLibrary) Option {
	return func(s *Server) { s.Scenarios = lib }
}

// WithMetrics serves g on /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithBaseContext bounds every run started through the API. Runs outlive the
// request that started them, so they cannot use the request context.
func WithBaseContext(ctx context.Context) Option {
	return func(s *Server) { s.baseCtx = ctx }
}

// WithStepLimit caps the number of steps returned by the steps endpoint.
func WithStepLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.stepLimit = n
		}
	}
}

// NewServer builds a Server for lab.
func NewServer(lab *algoscope.Lab, opts ...Option) *Server {
	s := &Server{
		Lab:       lab,
		logger:    logging.NewNop(),
		baseCtx:   context.Background(),
		stepLimit: 10000,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Driver == nil {
		s.Driver = lab.NewDriver()
	}
	return s
}

// NewHandler creates a new HTTP handler for the lab.
func NewHandler(lab *algoscope.Lab, opts ...Option) http.Handler {
	return NewServer(lab, opts...).Routes()
}

// Routes returns the router wrapped with CORS headers.
func (s *Server) Routes() http.Handler {
	return enableCORS(s.router())
}

func (s *Server) router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Get("/algorithms", s.ListAlgorithms)
	r.Get("/algorithms/{name}", s.GetAlgorithm)
	r.Post("/algorithms/{name}/steps", s.GenerateSteps)
	r.Post("/algorithms/{name}/mermaid", s.RenderMermaid)

	if s.Scenarios != nil {
		r.Get("/scenarios", s.ListScenarios)
		r.Get("/scenarios/{id}", s.GetScenario)
	}

	r.Route("/runs", func(r chi.Router) {
		r.Get("/", s.GetRun)
		r.Post("/", s.StartRun)
		r.Post("/pause", s.PauseRun)
		r.Post("/resume", s.ResumeRun)
		r.Post("/cancel", s.CancelRun)
		r.Post("/reset", s.ResetRun)
		r.Post("/restart", s.RestartRun)
		r.Get("/speed", s.ListSpeeds)
		r.Put("/speed", s.SetSpeed)
		r.Get("/events", s.SubscribeEvents)
	})

	if s.Workspaces != nil {
		r.Route("/workspaces", func(r chi.Router) {
			r.Get("/", s.ListWorkspaces)
			r.Get("/{id}", s.GetWorkspace)
			r.Put("/{id}", s.PutWorkspace)
			r.Delete("/{id}", s.DeleteWorkspace)
			r.Post("/{id}/mode", s.SetMode)
			r.Post("/{id}/canvas", s.ClickCanvas)
			r.Post("/{id}/nodes/{node}", s.ClickNode)
			r.Post("/{id}/run", s.RunWorkspace)
		})
	}

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Algoscope API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "algoscope-http",
		"version":     strings.TrimSpace(algoscope.Version),
		"api_version": apiVersion,
	})
}

// -- Helpers --

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	var inputErr *schema.InputError
	switch {
	case errors.Is(err, domain.ErrUnknownAlgorithm),
		errors.Is(err, domain.ErrWorkspaceNotFound),
		errors.Is(err, domain.ErrScenarioNotFound),
		errors.Is(err, editor.ErrNodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRunInProgress),
		errors.Is(err, playback.ErrNothingToRestart),
		errors.Is(err, editor.ErrDuplicateEdge),
		errors.Is(err, editor.ErrWrongMode):
		return http.StatusConflict
	case errors.Is(err, editor.ErrEditingLocked):
		return http.StatusLocked
	case errors.Is(err, errBadRequest),
		errors.Is(err, domain.ErrStartNotFound),
		errors.Is(err, domain.ErrGoalNotFound),
		errors.Is(err, domain.ErrValueOutOfRange),
		errors.Is(err, domain.ErrUnsortedInput),
		errors.Is(err, domain.ErrUnknownHeuristic),
		errors.Is(err, playback.ErrUnknownSpeed),
		errors.Is(err, editor.ErrUnknownMode),
		errors.As(err, &inputErr):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("invalid request body: %v: %w", err, errBadRequest)
}

// readDocument parses the body as a YAML or JSON input document.
func readDocument(r *http.Request) (*schema.Document, domain.Input, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, domain.Input{}, fmt.Errorf("read body: %v: %w", err, errBadRequest)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		data = []byte("{}")
	}
	doc, err := schema.Parse(data)
	if err != nil {
		return nil, domain.Input{}, fmt.Errorf("%v: %w", err, errBadRequest)
	}
	in, err := doc.Input()
	if err != nil {
		return nil, domain.Input{}, err
	}
	return doc, in, nil
}

// decodeDocument converts an already decoded JSON object into an input document.
func decodeDocument(raw map[string]any) (*schema.Document, domain.Input, error) {
	if raw == nil {
		raw = map[string]any{}
	}
	doc, err := schema.Decode(raw)
	if err != nil {
		return nil, domain.Input{}, fmt.Errorf("%v: %w", err, errBadRequest)
	}
	in, err := doc.Input()
	if err != nil {
		return nil, domain.Input{}, err
	}
	return doc, in, nil
}
