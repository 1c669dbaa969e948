// Package playback paces a step sequence and publishes each step to subscribers.
//
// A Driver runs at most one sequence at a time. Between two steps it suspends for
// the delay of the selected speed; Pause, Cancel and speed changes are honoured at
// that boundary. Cancellation is cooperative: once observed, no further step is
// published.
package playback
