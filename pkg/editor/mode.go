package editor

import "fmt"

// Mode is the active editing interaction.
type Mode string

const (
	ModeAddNode  Mode = "ADD_NODE"
	ModeLinkEdge Mode = "LINK_EDGE"
	ModeSetStart Mode = "SET_START"
	ModeDelete   Mode = "DELETE"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeAddNode, ModeLinkEdge, ModeSetStart, ModeDelete:
		return m, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownMode)
}

// Action names what an interaction changed.
type Action string

const (
	ActionNodeAdded      Action = "node_added"
	ActionPendingSet     Action = "pending_set"
	ActionPendingCleared Action = "pending_cleared"
	ActionEdgeAdded      Action = "edge_added"
	ActionStartSet       Action = "start_set"
	ActionNodeDeleted    Action = "node_deleted"
)
