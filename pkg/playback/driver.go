package playback

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/algoscope/internal/logging"
	"github.com/aretw0/algoscope/pkg/domain"
)

// ErrNothingToRestart is returned by Restart when no run was ever started.
var ErrNothingToRestart = errors.New("no previous run to restart")

// Factory binds a fresh step sequence to the current input snapshot.
type Factory func() (iter.Seq[domain.Step], error)

// Subscriber receives every published step in order.
// It runs on the driver's loop goroutine and must not call Reset, Restart or Wait.
type Subscriber func(domain.Step)

// Sleeper suspends for d or until ctx is done, whichever happens first.
type Sleeper func(ctx context.Context, d time.Duration) error

// Driver paces a step sequence and publishes each step.
type Driver struct {
	logger       *slog.Logger
	hooks        domain.LifecycleHooks
	speeds       []Speed
	initialSpeed string
	sleep        Sleeper
	streamBuffer int

	mu        sync.Mutex
	speed     Speed
	baseline  *domain.Step
	current   *domain.Step
	published int
	running   bool
	paused    bool
	resume    chan struct{}
	cancel    context.CancelFunc
	done      chan struct{}
	factory   Factory
	runID     string

	subMu   sync.RWMutex
	subs    map[int]Subscriber
	nextSub int
	streams map[chan domain.Step]struct{}
}

// New creates a Driver with the default speed menu at 1x.
func New(opts ...Option) *Driver {
	d := &Driver{
		logger:       logging.NewNop(),
		speeds:       DefaultSpeeds(),
		initialSpeed: DefaultSpeedLabel,
		sleep:        sleepContext,
		streamBuffer: 16,
		subs:         make(map[int]Subscriber),
		streams:      make(map[chan domain.Step]struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	s, err := lookupSpeed(d.speeds, d.initialSpeed)
	if err != nil {
		d.logger.Warn("unknown initial speed, using first menu entry", "speed", d.initialSpeed)
		s = d.speeds[0]
		if fallback, err := lookupSpeed(d.speeds, DefaultSpeedLabel); err == nil {
			s = fallback
		}
	}
	d.speed = s
	return d
}

// Start obtains a fresh sequence from factory and begins the pull loop on its own
// goroutine. ctx bounds the lifetime of the run.
// If a run is active nothing changes and domain.ErrRunInProgress is returned.
// Factory errors are returned synchronously and no run starts.
// The run is cancellable from the moment Start claims the driver, so a Cancel or
// Reset issued while the factory is still binding ends the run before any step.
func (d *Driver) Start(ctx context.Context, factory Factory) error {
	return d.StartAt(ctx, "", factory)
}

// StartAt is Start with a speed selected for the new run. The speed is applied only
// once the run has started; an unknown label, a run in progress or a factory error
// leave the current speed untouched. An empty label keeps the current speed.
func (d *Driver) StartAt(ctx context.Context, label string, factory Factory) error {
	var speed *Speed
	if label != "" {
		s, err := lookupSpeed(d.speeds, label)
		if err != nil {
			return err
		}
		speed = &s
	}

	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return domain.ErrRunInProgress
	}
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	d.running = true
	d.paused = false
	d.resume = nil
	d.cancel = cancel
	d.done = done
	d.mu.Unlock()

	seq, err := factory()
	if err != nil {
		d.mu.Lock()
		d.running = false
		d.mu.Unlock()
		cancel()
		close(done)
		return fmt.Errorf("start run: %w", err)
	}

	d.mu.Lock()
	if speed != nil {
		d.speed = *speed
	}
	d.factory = factory
	d.published = 0
	d.runID = uuid.NewString()
	runID := d.runID
	d.mu.Unlock()

	d.logger.Info("run started", "run_id", runID)
	if d.hooks.OnRunStart != nil {
		d.hooks.OnRunStart(runCtx, &domain.RunEvent{EventBase: d.event(domain.EventRunStart, runID)})
	}
	// A cancel that landed while the factory ran is observed before the first pull.
	go d.loop(runCtx, runID, seq, done)
	return nil
}

func (d *Driver) loop(ctx context.Context, runID string, seq iter.Seq[domain.Step], done chan struct{}) {
	end := &domain.RunEvent{EventBase: d.event(domain.EventRunEnd, runID), Status: domain.RunCompleted}
	defer func() {
		if r := recover(); r != nil {
			end.Status = domain.RunFailed
			end.Err = fmt.Errorf("step sequence panicked: %v", r)
			d.logger.Error("run failed", "run_id", runID, "error", end.Err)
		}
		d.finish(ctx, end, done)
	}()

	next, stop := iter.Pull(seq)
	defer stop()

	for {
		if ctx.Err() != nil {
			end.Status = domain.RunCancelled
			return
		}
		step, ok := next()
		if !ok {
			return
		}
		if ctx.Err() != nil {
			end.Status = domain.RunCancelled
			return
		}

		delay := d.publish(ctx, runID, step)
		end.Steps++
		end.Algorithm = step.Algorithm
		end.Outcome = step.Outcome
		if step.Terminal {
			continue
		}

		if err := d.sleep(ctx, delay); err != nil {
			end.Status = domain.RunCancelled
			return
		}
		if err := d.holdWhilePaused(ctx); err != nil {
			end.Status = domain.RunCancelled
			return
		}
	}
}

// publish records step as current and fans it out. It returns the delay that
// applies to the suspension that follows.
func (d *Driver) publish(ctx context.Context, runID string, step domain.Step) time.Duration {
	d.mu.Lock()
	s := step.Clone()
	d.current = &s
	d.published++
	d.mu.Unlock()

	d.subMu.RLock()
	subs := make([]Subscriber, 0, len(d.subs))
	for i := 0; i < d.nextSub; i++ {
		if fn, ok := d.subs[i]; ok {
			subs = append(subs, fn)
		}
	}
	d.subMu.RUnlock()
	for _, fn := range subs {
		fn(step.Clone())
	}

	d.subMu.RLock()
	for ch := range d.streams {
		select {
		case ch <- step.Clone():
		default:
			d.logger.Warn("stream buffer full, dropping step", "run_id", runID, "seq", step.Seq)
		}
	}
	d.subMu.RUnlock()

	d.mu.Lock()
	delay := d.speed.Delay
	d.mu.Unlock()
	if d.hooks.OnStep != nil {
		d.hooks.OnStep(ctx, &domain.StepEvent{EventBase: d.event(domain.EventStep, runID), Step: step, Delay: delay})
	}
	return delay
}

func (d *Driver) holdWhilePaused(ctx context.Context) error {
	d.mu.Lock()
	resume := d.resume
	d.mu.Unlock()
	if resume == nil {
		return nil
	}
	select {
	case <-resume:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Driver) finish(ctx context.Context, end *domain.RunEvent, done chan struct{}) {
	d.mu.Lock()
	d.running = false
	d.paused = false
	d.resume = nil
	if d.cancel != nil {
		d.cancel()
	}
	d.mu.Unlock()

	end.Timestamp = time.Now()
	d.logger.Info("run ended", "run_id", end.RunID, "status", end.Status, "outcome", end.Outcome, "steps", end.Steps)
	if d.hooks.OnRunEnd != nil {
		d.hooks.OnRunEnd(context.WithoutCancel(ctx), end)
	}
	close(done)
}

// Pause holds the loop at the next suspension boundary. It is a no-op when idle.
func (d *Driver) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running || d.paused {
		return
	}
	d.paused = true
	d.resume = make(chan struct{})
}

// Resume releases a paused loop.
func (d *Driver) Resume() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.paused {
		return
	}
	d.paused = false
	close(d.resume)
	d.resume = nil
}

// Cancel requests cooperative cancellation of the active run.
// The loop observes it at the next boundary; no step is published afterwards.
func (d *Driver) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running && d.cancel != nil {
		d.cancel()
	}
}

// Wait blocks until the active run, if any, has exited.
func (d *Driver) Wait() {
	d.mu.Lock()
	done := d.done
	d.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Reset cancels any in-flight run and restores the published state to the baseline.
func (d *Driver) Reset() {
	d.Cancel()
	d.Wait()

	d.mu.Lock()
	d.current = nil
	if d.baseline != nil {
		b := d.baseline.Clone()
		d.current = &b
	}
	d.published = 0
	runID := d.runID
	d.mu.Unlock()

	d.logger.Debug("playback reset", "run_id", runID)
	if d.hooks.OnReset != nil {
		d.hooks.OnReset(context.Background(), &domain.RunEvent{EventBase: d.event(domain.EventReset, runID)})
	}
}

// Restart resets and starts again with the factory of the last run.
func (d *Driver) Restart(ctx context.Context) error {
	d.mu.Lock()
	factory := d.factory
	d.mu.Unlock()
	if factory == nil {
		return ErrNothingToRestart
	}
	d.Reset()
	return d.Start(ctx, factory)
}

// SetBaseline replaces the snapshot restored by Reset.
func (d *Driver) SetBaseline(step domain.Step) {
	s := step.Clone()
	d.mu.Lock()
	d.baseline = &s
	if !d.running && d.published == 0 {
		c := s.Clone()
		d.current = &c
	}
	d.mu.Unlock()
}

// SetSpeed selects a speed from the menu. It applies from the next suspension on.
func (d *Driver) SetSpeed(label string) error {
	s, err := lookupSpeed(d.speeds, label)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.speed = s
	d.mu.Unlock()
	return nil
}

// Speed returns the selected speed.
func (d *Driver) Speed() Speed {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.speed
}

// Speeds returns the speed menu.
func (d *Driver) Speeds() []Speed {
	return append([]Speed(nil), d.speeds...)
}

// Subscribe registers fn for every future step. The returned func unsubscribes.
func (d *Driver) Subscribe(fn Subscriber) func() {
	d.subMu.Lock()
	id := d.nextSub
	d.nextSub++
	d.subs[id] = fn
	d.subMu.Unlock()
	return func() {
		d.subMu.Lock()
		delete(d.subs, id)
		d.subMu.Unlock()
	}
}

// Stream returns a buffered channel receiving every future step and a func that
// closes it. Steps are dropped for a stream whose buffer is full.
func (d *Driver) Stream(buffer int) (<-chan domain.Step, func()) {
	if buffer <= 0 {
		buffer = d.streamBuffer
	}
	ch := make(chan domain.Step, buffer)
	d.subMu.Lock()
	d.streams[ch] = struct{}{}
	d.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			d.subMu.Lock()
			delete(d.streams, ch)
			close(ch)
			d.subMu.Unlock()
		})
	}
}

// Running reports whether a run is active.
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// Paused reports whether the active run is held.
func (d *Driver) Paused() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.paused
}

// Current returns the last published step, or the baseline before any step.
func (d *Driver) Current() (domain.Step, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		return domain.Step{}, false
	}
	return d.current.Clone(), true
}

// Published returns the number of steps published by the current run.
func (d *Driver) Published() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.published
}

// RunID identifies the active or most recent run.
func (d *Driver) RunID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.runID
}

func (d *Driver) event(t domain.EventType, runID string) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, RunID: runID}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
