package editor

import "errors"

var (
	// ErrEditingLocked is returned for any mutation while a run is active.
	ErrEditingLocked = errors.New("editing is disabled while a run is active")
	// ErrNodeNotFound is returned when a clicked node does not exist.
	ErrNodeNotFound = errors.New("node not found")
	// ErrWrongMode is returned when an interaction does not apply to the current mode.
	ErrWrongMode = errors.New("interaction not valid in current mode")
	// ErrDuplicateEdge is returned when linking a pair that is already connected.
	ErrDuplicateEdge = errors.New("edge already exists between these nodes")
	// ErrUnknownMode is returned by SetMode for names outside the four modes.
	ErrUnknownMode = errors.New("unknown edit mode")
)
