package domain

import "errors"

// ErrUnknownAlgorithm is returned when an algorithm name is not registered.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// ErrStartNotFound is returned when the start node of a single-source algorithm does not exist.
var ErrStartNotFound = errors.New("start node not found")

// ErrGoalNotFound is returned when the goal node of a path search does not exist.
var ErrGoalNotFound = errors.New("goal node not found")

// ErrValueOutOfRange is returned when an array value falls outside the accepted domain
// of an algorithm (e.g. bucket sort only accepts values in [0, 100)).
var ErrValueOutOfRange = errors.New("value out of range")

// ErrUnsortedInput is returned when an algorithm requires a sorted array.
var ErrUnsortedInput = errors.New("input array is not sorted")

// ErrRunInProgress is returned when a playback run is requested while another is active.
var ErrRunInProgress = errors.New("run already in progress")

// ErrWorkspaceNotFound is returned when a workspace ID cannot be found in the store.
var ErrWorkspaceNotFound = errors.New("workspace not found")

// ErrUnknownHeuristic is returned when A* is asked for a heuristic it does not implement.
var ErrUnknownHeuristic = errors.New("unknown heuristic")
