package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart EventType = "run_start"
	EventRunEnd   EventType = "run_end"
	EventStep     EventType = "step"
	EventReset    EventType = "reset"
)

// RunStatus is the way a playback run ended.
type RunStatus string

const (
	RunCompleted RunStatus = "completed"
	RunCancelled RunStatus = "cancelled"
	RunFailed    RunStatus = "failed"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
}

// RunEvent marks the start or the end of a playback run.
type RunEvent struct {
	EventBase
	Algorithm string    `json:"algorithm,omitempty"`
	Status    RunStatus `json:"status,omitempty"`
	Outcome   Outcome   `json:"outcome,omitempty"`
	Steps     int       `json:"steps"`
	Err       error     `json:"-"`
}

// StepEvent is emitted for every published step.
type StepEvent struct {
	EventBase
	Step  Step          `json:"step"`
	Delay time.Duration `json:"delay"`
}

// LifecycleHooks defines callbacks for playback observability.
type LifecycleHooks struct {
	OnRunStart func(context.Context, *RunEvent)
	OnRunEnd   func(context.Context, *RunEvent)
	OnStep     func(context.Context, *StepEvent)
	OnReset    func(context.Context, *RunEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRunStart: chain(h.OnRunStart, other.OnRunStart),
		OnRunEnd:   chain(h.OnRunEnd, other.OnRunEnd),
		OnStep:     chain(h.OnStep, other.OnStep),
		OnReset:    chain(h.OnReset, other.OnReset),
	}
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
