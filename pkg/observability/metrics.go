package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/algoscope/pkg/domain"
)

// Metrics holds the playback collectors.
type Metrics struct {
	Steps  *prometheus.CounterVec
	Runs   *prometheus.CounterVec
	Active prometheus.Gauge
	Delay  prometheus.Histogram
	Resets prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
// Pass prometheus.DefaultRegisterer to expose them on promhttp.Handler().
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "algoscope_steps_published_total",
				Help: "Steps published by the playback driver.",
			},
			[]string{"algorithm", "kind"},
		),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "algoscope_runs_total",
				Help: "Finished playback runs by status and terminal outcome.",
			},
			[]string{"algorithm", "status", "outcome"},
		),
		Active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "algoscope_runs_active",
			Help: "Playback runs currently in progress.",
		}),
		Delay: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "algoscope_step_delay_seconds",
			Help:    "Pacing delay applied after each step.",
			Buckets: []float64{0, 0.1, 0.2, 0.3, 0.4, 0.6, 1.2, 2.5},
		}),
		Resets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "algoscope_resets_total",
			Help: "Playback resets to the baseline state.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Steps, m.Runs, m.Active, m.Delay, m.Resets)
	}
	return m
}

// Hooks records every lifecycle event.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			m.Active.Inc()
		},
		OnRunEnd: func(ctx context.Context, e *domain.RunEvent) {
			m.Active.Dec()
			m.Runs.WithLabelValues(e.Algorithm, string(e.Status), string(e.Outcome)).Inc()
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			m.Steps.WithLabelValues(e.Step.Algorithm, string(e.Step.Kind)).Inc()
			m.Delay.Observe(e.Delay.Seconds())
		},
		OnReset: func(ctx context.Context, e *domain.RunEvent) {
			m.Resets.Inc()
		},
	}
}
