// Package editor implements the edit-mode state machine used to build graph and
// array inputs: ADD_NODE, LINK_EDGE, SET_START and DELETE.
//
// Mutations are refused with ErrEditingLocked while the gate reports an active
// playback run, so a bound input snapshot is never edited under a run.
package editor
