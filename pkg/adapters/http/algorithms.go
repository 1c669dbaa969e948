package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/algoscope/internal/presentation/graph"
	"github.com/aretw0/algoscope/pkg/domain"
)

type stepList struct {
	Algorithm string        `json:"algorithm"`
	Truncated bool          `json:"truncated"`
	Steps     []domain.Step `json:"steps"`
}

// ListAlgorithms handles the GET /algorithms request.
func (s *Server) ListAlgorithms(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Lab.Algorithms())
}

// GetAlgorithm handles the GET /algorithms/{name} request.
func (s *Server) GetAlgorithm(w http.ResponseWriter, r *http.Request) {
	entry, err := s.Lab.Registry().Lookup(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entry)
}

// GenerateSteps handles the POST /algorithms/{name}/steps request.
// The whole sequence is materialized without pacing, up to the server step limit.
func (s *Server) GenerateSteps(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	limit, err := queryInt(r, "limit", s.stepLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	limit = min(limit, s.stepLimit)

	_, in, err := readDocument(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	steps, truncated, err := s.Lab.Collect(r.Context(), name, in, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if steps == nil {
		steps = []domain.Step{}
	}
	s.writeJSON(w, http.StatusOK, stepList{Algorithm: name, Truncated: truncated, Steps: steps})
}

// RenderMermaid handles the POST /algorithms/{name}/mermaid request.
func (s *Server) RenderMermaid(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	step, err := queryInt(r, "step", 0)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	_, in, err := readDocument(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := s.Lab.Registry().Lookup(name); err != nil {
		s.writeError(w, r, err)
		return
	}

	overlay := &graph.Overlay{Start: in.Start, Goal: in.Goal}
	if step > 0 {
		steps, _, err := s.Lab.Collect(r.Context(), name, in, step)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if len(steps) > 0 {
			if o := graph.FromStep(in, steps[len(steps)-1]); o != nil {
				overlay = o
			}
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(in.Graph, overlay))
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q: %w", key, raw, errBadRequest)
	}
	return n, nil
}
