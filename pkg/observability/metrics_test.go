package observability_test

import (
	"bytes"
	"context"
	"iter"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/algoscope/pkg/algorithms"
	"github.com/aretw0/algoscope/pkg/domain"
	"github.com/aretw0/algoscope/pkg/observability"
	"github.com/aretw0/algoscope/pkg/playback"
)

func noSleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

func TestMetrics_RecordsPlaybackRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	d := playback.New(playback.WithSleeper(noSleep), playback.WithHooks(m.Hooks()))
	in := domain.Input{Array: []float64{3, 1, 2}}
	kinds := map[domain.StepKind]int{}
	d.Subscribe(func(s domain.Step) { kinds[s.Kind]++ })

	require.NoError(t, d.Start(context.Background(), func() (iter.Seq[domain.Step], error) {
		return algorithms.BubbleSort(in)
	}))
	d.Wait()
	require.Positive(t, d.Published())

	for kind, n := range kinds {
		assert.Equal(t, float64(n), testutil.ToFloat64(m.Steps.WithLabelValues("bubble", string(kind))), kind)
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("bubble", "completed", "completed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Active))

	d.Reset()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Resets))

	n, err := testutil.GatherAndCount(reg, "algoscope_step_delay_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMetrics_NilRegistererSkipsRegistration(t *testing.T) {
	m := observability.NewMetrics(nil)
	m.Hooks().OnRunStart(context.Background(), &domain.RunEvent{})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Active))
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	hooks := observability.LoggingHooks(logger).Merge(domain.LifecycleHooks{})
	ctx := context.Background()
	hooks.OnRunStart(ctx, &domain.RunEvent{EventBase: domain.EventBase{RunID: "r1"}})
	hooks.OnStep(ctx, &domain.StepEvent{EventBase: domain.EventBase{RunID: "r1"}, Step: domain.Step{Seq: 3, Kind: domain.KindRelax}})
	hooks.OnRunEnd(ctx, &domain.RunEvent{
		EventBase: domain.EventBase{RunID: "r1"},
		Algorithm: "bellman-ford",
		Status:    domain.RunCompleted,
		Outcome:   domain.OutcomeNegativeCycle,
	})

	out := buf.String()
	assert.Contains(t, out, "run_start")
	assert.Contains(t, out, "kind=relax")
	assert.Contains(t, out, "outcome=negative_cycle")
}
