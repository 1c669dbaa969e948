package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/algoscope/pkg/domain"
	"github.com/aretw0/algoscope/pkg/editor"
)

type editResponse struct {
	Effect    *editor.Effect    `json:"effect,omitempty"`
	Workspace *domain.Workspace `json:"workspace"`
}

// editorOptions locks every workspace while the shared driver is running.
func (s *Server) editorOptions() []editor.Option {
	return []editor.Option{editor.WithGate(s.Driver.Running)}
}

// ListWorkspaces handles the GET /workspaces request.
func (s *Server) ListWorkspaces(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Workspaces.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// GetWorkspace handles the GET /workspaces/{id} request.
func (s *Server) GetWorkspace(w http.ResponseWriter, r *http.Request) {
	ws, err := s.Workspaces.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ws)
}

// PutWorkspace handles the PUT /workspaces/{id} request. The body is an input
// document that replaces the graph, array and run parameters of the workspace.
func (s *Server) PutWorkspace(w http.ResponseWriter, r *http.Request) {
	doc, in, err := readDocument(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if doc.Algorithm != "" {
		if _, err := s.Lab.Registry().Lookup(doc.Algorithm); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	ws, err := s.Workspaces.Edit(r.Context(), chi.URLParam(r, "id"), func(ws *domain.Workspace, ed *editor.Editor) error {
		if err := ed.Load(in.Graph, in.Start); err != nil {
			return err
		}
		if err := ed.SetArray(in.Array); err != nil {
			return err
		}
		ws.Algorithm = doc.Algorithm
		ws.Input.Target = in.Target
		ws.Input.Goal = in.Goal
		ws.Input.Heuristic = in.Heuristic
		return nil
	}, s.editorOptions()...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ws)
}

// DeleteWorkspace handles the DELETE /workspaces/{id} request.
func (s *Server) DeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	if err := s.Workspaces.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetMode handles the POST /workspaces/{id}/mode request.
func (s *Server) SetMode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Mode string `json:"mode"`
	}
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	mode, err := editor.ParseMode(body.Mode)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.edit(w, r, func(ed *editor.Editor) (*editor.Effect, error) {
		return nil, ed.SetMode(mode)
	})
}

// ClickCanvas handles the POST /workspaces/{id}/canvas request.
func (s *Server) ClickCanvas(w http.ResponseWriter, r *http.Request) {
	var body struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.edit(w, r, func(ed *editor.Editor) (*editor.Effect, error) {
		eff, err := ed.ClickCanvas(body.X, body.Y)
		return &eff, err
	})
}

// ClickNode handles the POST /workspaces/{id}/nodes/{node} request.
func (s *Server) ClickNode(w http.ResponseWriter, r *http.Request) {
	node := chi.URLParam(r, "node")
	s.edit(w, r, func(ed *editor.Editor) (*editor.Effect, error) {
		eff, err := ed.ClickNode(node)
		return &eff, err
	})
}

func (s *Server) edit(w http.ResponseWriter, r *http.Request, fn func(*editor.Editor) (*editor.Effect, error)) {
	var effect *editor.Effect
	ws, err := s.Workspaces.Edit(r.Context(), chi.URLParam(r, "id"), func(_ *domain.Workspace, ed *editor.Editor) error {
		eff, err := fn(ed)
		if err != nil {
			return err
		}
		effect = eff
		return nil
	}, s.editorOptions()...)
	if err != nil {
		if errors.Is(err, editor.ErrEditingLocked) {
			s.logger.Debug("edit rejected during run", "workspace_id", chi.URLParam(r, "id"))
		}
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, editResponse{Effect: effect, Workspace: ws})
}
