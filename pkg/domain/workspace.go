package domain

import "time"

// Workspace is the persisted state of the graph/array editor between sessions.
type Workspace struct {
	ID        string    `json:"id"`
	Algorithm string    `json:"algorithm,omitempty"`
	Mode      string    `json:"mode"`
	Input     Input     `json:"input"`
	NextID    int       `json:"next_id"`
	Pending   string    `json:"pending,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewWorkspace creates an empty workspace in the default editing mode.
func NewWorkspace(id string) *Workspace {
	return &Workspace{
		ID:   id,
		Mode: "ADD_NODE",
		Input: Input{
			Graph: Graph{Nodes: []Node{}, Edges: []Edge{}},
		},
		NextID: 1,
	}
}

// Snapshot returns a deep copy of the workspace.
func (w *Workspace) Snapshot() *Workspace {
	c := *w
	c.Input = w.Input.Clone()
	return &c
}
