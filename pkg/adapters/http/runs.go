package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/algoscope/pkg/domain"
	"github.com/aretw0/algoscope/pkg/playback"
)

type runRequest struct {
	Scenario  string         `json:"scenario,omitempty"`
	Algorithm string         `json:"algorithm,omitempty"`
	Speed     string         `json:"speed,omitempty"`
	Input     map[string]any `json:"input,omitempty"`
}

type runStatus struct {
	RunID     string         `json:"run_id,omitempty"`
	Running   bool           `json:"running"`
	Paused    bool           `json:"paused"`
	Published int            `json:"published"`
	Speed     playback.Speed `json:"speed"`
	Current   *domain.Step   `json:"current,omitempty"`
}

func (s *Server) status() runStatus {
	st := runStatus{
		RunID:     s.Driver.RunID(),
		Running:   s.Driver.Running(),
		Paused:    s.Driver.Paused(),
		Published: s.Driver.Published(),
		Speed:     s.Driver.Speed(),
	}
	if cur, ok := s.Driver.Current(); ok {
		st.Current = &cur
	}
	return st
}

// GetRun handles the GET /runs request.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.status())
}

// StartRun handles the POST /runs request. The body names either a scenario or an
// algorithm with its input document; explicit fields override the scenario's.
func (s *Server) StartRun(w http.ResponseWriter, r *http.Request) {
	var body runRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	algorithm, speed := body.Algorithm, body.Speed
	var in domain.Input
	switch {
	case body.Scenario != "":
		if s.Scenarios == nil {
			s.writeError(w, r, fmt.Errorf("no scenario library configured: %w", errBadRequest))
			return
		}
		sc, err := s.Scenarios.Get(r.Context(), body.Scenario)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		in = sc.Input
		if algorithm == "" {
			algorithm = sc.Algorithm
		}
		if speed == "" {
			speed = sc.Speed
		}
	default:
		doc, parsed, err := decodeDocument(body.Input)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		in = parsed
		if algorithm == "" {
			algorithm = doc.Algorithm
		}
		if speed == "" {
			speed = doc.Speed
		}
	}
	if algorithm == "" {
		s.writeError(w, r, fmt.Errorf("algorithm is required: %w", errBadRequest))
		return
	}

	s.start(w, r, algorithm, speed, in)
}

func (s *Server) start(w http.ResponseWriter, r *http.Request, algorithm, speed string, in domain.Input) {
	if s.Driver.Running() {
		s.writeError(w, r, domain.ErrRunInProgress)
		return
	}
	if err := s.Lab.PlayAt(s.baseCtx, s.Driver, algorithm, speed, in); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("run requested", "algorithm", algorithm, "run_id", s.Driver.RunID())
	s.writeJSON(w, http.StatusAccepted, s.status())
}

// PauseRun handles the POST /runs/pause request.
func (s *Server) PauseRun(w http.ResponseWriter, r *http.Request) {
	s.Driver.Pause()
	s.writeJSON(w, http.StatusOK, s.status())
}

// ResumeRun handles the POST /runs/resume request.
func (s *Server) ResumeRun(w http.ResponseWriter, r *http.Request) {
	s.Driver.Resume()
	s.writeJSON(w, http.StatusOK, s.status())
}

// CancelRun handles the POST /runs/cancel request.
func (s *Server) CancelRun(w http.ResponseWriter, r *http.Request) {
	s.Driver.Cancel()
	s.Driver.Wait()
	s.writeJSON(w, http.StatusOK, s.status())
}

// ResetRun handles the POST /runs/reset request.
func (s *Server) ResetRun(w http.ResponseWriter, r *http.Request) {
	s.Driver.Reset()
	s.writeJSON(w, http.StatusOK, s.status())
}

// RestartRun handles the POST /runs/restart request.
func (s *Server) RestartRun(w http.ResponseWriter, r *http.Request) {
	if err := s.Driver.Restart(s.baseCtx); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusAccepted, s.status())
}

// ListSpeeds handles the GET /runs/speed request.
func (s *Server) ListSpeeds(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Driver.Speeds())
}

// SetSpeed handles the PUT /runs/speed request.
func (s *Server) SetSpeed(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Label string `json:"label"`
	}
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.Driver.SetSpeed(body.Label); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.status())
}

// RunWorkspace handles the POST /workspaces/{id}/run request. The query parameter
// algorithm overrides the one stored in the workspace.
func (s *Server) RunWorkspace(w http.ResponseWriter, r *http.Request) {
	ws, err := s.Workspaces.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	algorithm := ws.Algorithm
	if q := r.URL.Query().Get("algorithm"); q != "" {
		algorithm = q
	}
	if algorithm == "" {
		s.writeError(w, r, fmt.Errorf("workspace %s has no algorithm: %w", ws.ID, errBadRequest))
		return
	}
	s.start(w, r, algorithm, r.URL.Query().Get("speed"), ws.Input)
}
