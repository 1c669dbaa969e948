package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/algoscope/pkg/domain"
)

// streamBuffer is the per-client backlog before steps are dropped for a slow client.
const streamBuffer = 64

// SubscribeEvents handles the GET /runs/events request (SSE).
// The optional kinds parameter is a comma separated list of step kinds to forward;
// terminal steps are always forwarded.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	kinds := make(map[domain.StepKind]bool)
	if raw := r.URL.Query().Get("kinds"); raw != "" {
		for _, k := range strings.Split(raw, ",") {
			kinds[domain.StepKind(strings.TrimSpace(k))] = true
		}
	}

	steps, cancel := s.Driver.Stream(streamBuffer)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	s.logger.Info("SSE client connected", "remote", r.RemoteAddr)

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE client disconnected", "remote", r.RemoteAddr)
			return
		case step, ok := <-steps:
			if !ok {
				return
			}
			if len(kinds) > 0 && !kinds[step.Kind] && !step.Terminal {
				continue
			}
			payload, err := json.Marshal(step)
			if err != nil {
				s.logger.Error("SSE: step encode failed", "error", err)
				continue
			}
			event := "step"
			if step.Terminal {
				event = "end"
			}
			fmt.Fprintf(w, "event: %s\nid: %d\ndata: %s\n\n", event, step.Seq, payload)
			flusher.Flush()
		}
	}
}

// ListScenarios handles the GET /scenarios request.
func (s *Server) ListScenarios(w http.ResponseWriter, r *http.Request) {
	list, err := s.Scenarios.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []domain.Scenario{}
	}
	s.writeJSON(w, http.StatusOK, list)
}

// GetScenario handles the GET /scenarios/{id} request.
func (s *Server) GetScenario(w http.ResponseWriter, r *http.Request) {
	sc, err := s.Scenarios.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sc)
}
