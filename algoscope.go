package algoscope

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	"github.com/aretw0/algoscope/internal/logging"
	"github.com/aretw0/algoscope/pkg/domain"
	"github.com/aretw0/algoscope/pkg/playback"
	"github.com/aretw0/algoscope/pkg/registry"
)

// Lab is the high-level entry point for the algoscope library.
// It binds the algorithm registry to playback drivers and shares one logger
// and one set of lifecycle hooks between them.
type Lab struct {
	registry     *registry.Registry
	hooks        domain.LifecycleHooks
	logger       *slog.Logger
	playbackOpts []playback.Option
}

// Option defines a functional option for configuring the Lab.
type Option func(*Lab)

// WithLifecycleHooks registers observability hooks on every driver the Lab creates.
// Calling it twice merges the hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(l *Lab) {
		l.hooks = l.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lab) {
		l.logger = logger
	}
}

// WithRegistry replaces the built-in algorithm catalogue.
func WithRegistry(r *registry.Registry) Option {
	return func(l *Lab) {
		l.registry = r
	}
}

// WithPlaybackOptions appends driver options (speed menu, sleeper...) applied by NewDriver.
func WithPlaybackOptions(opts ...playback.Option) Option {
	return func(l *Lab) {
		l.playbackOpts = append(l.playbackOpts, opts...)
	}
}

// New initializes a Lab. Without options it serves every built-in algorithm and logs nothing.
func New(opts ...Option) *Lab {
	l := &Lab{}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = logging.NewNop()
	}
	if l.registry == nil {
		l.registry = registry.Default(registry.WithLogger(l.logger))
	}
	return l
}

// Registry exposes the algorithm catalogue.
func (l *Lab) Registry() *registry.Registry {
	return l.registry
}

// Logger returns the Lab logger.
func (l *Lab) Logger() *slog.Logger {
	return l.logger
}

// Algorithms lists the catalogue in display order.
func (l *Lab) Algorithms() []registry.Entry {
	return l.registry.Entries()
}

// Steps binds an algorithm to an input and returns its lazy step sequence.
func (l *Lab) Steps(ctx context.Context, name string, in domain.Input) (iter.Seq[domain.Step], error) {
	return l.registry.Generate(ctx, name, in)
}

// Collect materializes at most limit steps (limit <= 0 means all).
// The returned bool reports whether the sequence was cut short.
func (l *Lab) Collect(ctx context.Context, name string, in domain.Input, limit int) ([]domain.Step, bool, error) {
	seq, err := l.Steps(ctx, name, in)
	if err != nil {
		return nil, false, err
	}
	var out []domain.Step
	for s := range seq {
		if limit > 0 && len(out) == limit {
			return out, true, nil
		}
		out = append(out, s)
	}
	return out, false, nil
}

// Factory returns a playback factory for the algorithm. The input is copied now,
// so later edits of in never reach a run.
func (l *Lab) Factory(ctx context.Context, name string, in domain.Input) playback.Factory {
	snapshot := in.Clone()
	return func() (iter.Seq[domain.Step], error) {
		return l.registry.Generate(ctx, name, snapshot)
	}
}

// NewDriver creates a playback driver carrying the Lab logger, hooks and playback options.
func (l *Lab) NewDriver(opts ...playback.Option) *playback.Driver {
	all := []playback.Option{
		playback.WithLogger(l.logger),
		playback.WithHooks(l.hooks),
	}
	all = append(all, l.playbackOpts...)
	all = append(all, opts...)
	return playback.New(all...)
}

// Play starts a paced run of the algorithm on d.
func (l *Lab) Play(ctx context.Context, d *playback.Driver, name string, in domain.Input) error {
	return l.PlayAt(ctx, d, name, "", in)
}

// PlayAt is Play at the given speed label. The driver's speed only changes when
// the run actually starts.
func (l *Lab) PlayAt(ctx context.Context, d *playback.Driver, name, speed string, in domain.Input) error {
	if _, err := l.registry.Lookup(name); err != nil {
		return err
	}
	if err := d.StartAt(ctx, speed, l.Factory(ctx, name, in)); err != nil {
		return fmt.Errorf("play %s: %w", name, err)
	}
	return nil
}
