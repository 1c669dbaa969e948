package playback

import (
	"log/slog"

	"github.com/aretw0/algoscope/pkg/domain"
)

// Option defines a functional option for configuring the Driver.
type Option func(*Driver)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithHooks registers lifecycle callbacks. Multiple calls are merged in order.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(d *Driver) {
		d.hooks = d.hooks.Merge(hooks)
	}
}

// WithSpeeds replaces the speed menu. An empty menu is ignored.
func WithSpeeds(menu []Speed) Option {
	return func(d *Driver) {
		if len(menu) > 0 {
			d.speeds = append([]Speed(nil), menu...)
		}
	}
}

// WithSpeed selects the initial speed by label. Unknown labels keep the default.
func WithSpeed(label string) Option {
	return func(d *Driver) {
		d.initialSpeed = label
	}
}

// WithBaseline sets the pre-run snapshot that Reset restores.
func WithBaseline(step domain.Step) Option {
	return func(d *Driver) {
		s := step.Clone()
		d.baseline = &s
	}
}

// WithSleeper replaces the suspension primitive. Tests use it to avoid real delays.
func WithSleeper(s Sleeper) Option {
	return func(d *Driver) {
		if s != nil {
			d.sleep = s
		}
	}
}

// WithStreamBuffer sets the default channel capacity used by Stream when called with 0.
func WithStreamBuffer(n int) Option {
	return func(d *Driver) {
		if n > 0 {
			d.streamBuffer = n
		}
	}
}
