package playback

import (
	"context"
	"errors"
	"iter"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/algoscope/pkg/algorithms"
	"github.com/aretw0/algoscope/pkg/domain"
)

// steps yields n steps, the last one terminal with outcome.
func steps(n int, outcome domain.Outcome) Factory {
	return func() (iter.Seq[domain.Step], error) {
		return func(yield func(domain.Step) bool) {
			for i := range n {
				s := domain.Step{Seq: i, Algorithm: "test", Kind: domain.KindVisit}
				if i == n-1 {
					s.Terminal = true
					s.Outcome = outcome
				}
				if !yield(s) {
					return
				}
			}
		}, nil
	}
}

// recorder is a thread-safe subscriber.
type recorder struct {
	mu    sync.Mutex
	steps []domain.Step
}

func (r *recorder) add(s domain.Step) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, s)
}

func (r *recorder) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.steps)
}

// delays records every requested suspension and returns at once.
type delays struct {
	mu  sync.Mutex
	got []time.Duration
}

func (d *delays) sleep(ctx context.Context, dur time.Duration) error {
	d.mu.Lock()
	d.got = append(d.got, dur)
	d.mu.Unlock()
	return ctx.Err()
}

func blockingSleeper(ctx context.Context, _ time.Duration) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestDriver_PublishesEveryStepInOrder(t *testing.T) {
	var ends []*domain.RunEvent
	d := New(WithSleeper(new(delays).sleep), WithHooks(domain.LifecycleHooks{
		OnRunEnd: func(_ context.Context, e *domain.RunEvent) { ends = append(ends, e) },
	}))
	rec := &recorder{}
	d.Subscribe(rec.add)

	require.NoError(t, d.Start(context.Background(), steps(5, domain.OutcomeCompleted)))
	d.Wait()

	require.Equal(t, 5, rec.len())
	for i, s := range rec.steps {
		assert.Equal(t, i, s.Seq)
	}
	assert.False(t, d.Running())
	assert.Equal(t, 5, d.Published())
	require.Len(t, ends, 1)
	assert.Equal(t, domain.RunCompleted, ends[0].Status)
	assert.Equal(t, domain.OutcomeCompleted, ends[0].Outcome)
	assert.Equal(t, 5, ends[0].Steps)
}

func TestDriver_CancelAfterSecondStep(t *testing.T) {
	var ends []*domain.RunEvent
	d := New(WithSleeper(new(delays).sleep), WithHooks(domain.LifecycleHooks{
		OnRunEnd: func(_ context.Context, e *domain.RunEvent) { ends = append(ends, e) },
	}))
	rec := &recorder{}
	d.Subscribe(func(s domain.Step) {
		rec.add(s)
		if rec.len() == 2 {
			d.Cancel()
		}
	})

	require.NoError(t, d.Start(context.Background(), steps(10, domain.OutcomeCompleted)))
	d.Wait()

	assert.Equal(t, 2, rec.len())
	assert.Equal(t, 2, d.Published())
	require.Len(t, ends, 1)
	assert.Equal(t, domain.RunCancelled, ends[0].Status)
}

func TestDriver_StartWhileRunning(t *testing.T) {
	d := New(WithSleeper(blockingSleeper))
	require.NoError(t, d.Start(context.Background(), steps(3, domain.OutcomeCompleted)))
	require.Eventually(t, func() bool { return d.Published() == 1 }, time.Second, time.Millisecond)

	err := d.Start(context.Background(), steps(1, domain.OutcomeCompleted))
	require.ErrorIs(t, err, domain.ErrRunInProgress)
	assert.True(t, d.Running())
	assert.Equal(t, 1, d.Published())

	d.Cancel()
	d.Wait()
	assert.False(t, d.Running())
}

func TestDriver_FactoryErrorStartsNothing(t *testing.T) {
	boom := errors.New("boom")
	d := New()
	err := d.Start(context.Background(), func() (iter.Seq[domain.Step], error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	assert.False(t, d.Running())

	waited := make(chan struct{})
	go func() { d.Wait(); close(waited) }()
	select {
	case <-waited:
	case <-time.After(time.Second):
		t.Fatal("Wait blocked after a failed start")
	}
}

func TestDriver_ResetWhileFactoryBinds(t *testing.T) {
	d := New(WithSleeper(new(delays).sleep))
	rec := &recorder{}
	d.Subscribe(rec.add)

	release := make(chan struct{})
	inner := steps(5, domain.OutcomeCompleted)
	started := make(chan error, 1)
	go func() {
		started <- d.Start(context.Background(), func() (iter.Seq[domain.Step], error) {
			<-release
			return inner()
		})
	}()
	require.Eventually(t, d.Running, time.Second, time.Millisecond)

	reset := make(chan struct{})
	go func() { d.Reset(); close(reset) }()
	// Reset must not return before the binding run is torn down.
	select {
	case <-reset:
		t.Fatal("Reset returned while the run was still binding")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-started)
	select {
	case <-reset:
	case <-time.After(time.Second):
		t.Fatal("Reset did not return")
	}

	d.Wait()
	assert.False(t, d.Running())
	assert.Zero(t, rec.len(), "no step is published after a reset")
	assert.Zero(t, d.Published())
}

func TestDriver_CancelWhileFactoryBinds(t *testing.T) {
	var ends []domain.RunStatus
	var mu sync.Mutex
	d := New(WithSleeper(new(delays).sleep), WithHooks(domain.LifecycleHooks{
		OnRunEnd: func(_ context.Context, e *domain.RunEvent) {
			mu.Lock()
			ends = append(ends, e.Status)
			mu.Unlock()
		},
	}))

	release := make(chan struct{})
	inner := steps(3, domain.OutcomeCompleted)
	started := make(chan error, 1)
	go func() {
		started <- d.Start(context.Background(), func() (iter.Seq[domain.Step], error) {
			<-release
			return inner()
		})
	}()
	require.Eventually(t, d.Running, time.Second, time.Millisecond)

	d.Cancel()
	close(release)
	require.NoError(t, <-started)
	d.Wait()

	assert.Zero(t, d.Published())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []domain.RunStatus{domain.RunCancelled}, ends)
}

func TestDriver_SpeedChangeAppliesToNextSuspension(t *testing.T) {
	rec := &delays{}
	d := New(WithSleeper(rec.sleep))
	d.Subscribe(func(s domain.Step) {
		if s.Seq == 1 {
			assert.NoError(t, d.SetSpeed("3x"))
		}
	})
	require.NoError(t, d.Start(context.Background(), steps(4, domain.OutcomeCompleted)))
	d.Wait()

	// The terminal step is not followed by a suspension.
	assert.Equal(t, []time.Duration{600 * time.Millisecond, 200 * time.Millisecond, 200 * time.Millisecond}, rec.got)
	assert.ErrorIs(t, d.SetSpeed("10x"), ErrUnknownSpeed)
}

func TestDriver_StartAtAppliesSpeedOnlyOnStart(t *testing.T) {
	boom := errors.New("boom")
	d := New(WithSleeper(blockingSleeper))
	require.Equal(t, DefaultSpeedLabel, d.Speed().Label)

	err := d.StartAt(context.Background(), "9x", steps(2, domain.OutcomeCompleted))
	require.ErrorIs(t, err, ErrUnknownSpeed)
	assert.False(t, d.Running())

	err = d.StartAt(context.Background(), "3x", func() (iter.Seq[domain.Step], error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, DefaultSpeedLabel, d.Speed().Label)

	require.NoError(t, d.StartAt(context.Background(), "2x", steps(3, domain.OutcomeCompleted)))
	assert.Equal(t, "2x", d.Speed().Label)

	err = d.StartAt(context.Background(), "3x", steps(1, domain.OutcomeCompleted))
	require.ErrorIs(t, err, domain.ErrRunInProgress)
	assert.Equal(t, "2x", d.Speed().Label)

	d.Cancel()
	d.Wait()
}

func TestDriver_ConfiguredSpeeds(t *testing.T) {
	menu := []Speed{{Label: "slow", Delay: time.Second}, {Label: "fast", Delay: time.Millisecond}}
	d := New(WithSpeeds(menu), WithSpeed("fast"))
	assert.Equal(t, "fast", d.Speed().Label)
	assert.Equal(t, menu, d.Speeds())

	d = New(WithSpeeds(menu), WithSpeed("nope"))
	assert.Equal(t, "slow", d.Speed().Label)
}

func TestDriver_PauseAndResume(t *testing.T) {
	d := New(WithSleeper(new(delays).sleep))
	d.Subscribe(func(s domain.Step) {
		if s.Seq == 0 {
			d.Pause()
		}
	})
	require.NoError(t, d.Start(context.Background(), steps(4, domain.OutcomeCompleted)))

	require.Eventually(t, d.Paused, time.Second, time.Millisecond)
	assert.Never(t, func() bool { return d.Published() > 1 }, 50*time.Millisecond, 5*time.Millisecond)

	d.Resume()
	d.Wait()
	assert.Equal(t, 4, d.Published())
	assert.False(t, d.Paused())
}

func TestDriver_CancelWhilePaused(t *testing.T) {
	d := New(WithSleeper(new(delays).sleep))
	d.Subscribe(func(domain.Step) { d.Pause() })
	require.NoError(t, d.Start(context.Background(), steps(4, domain.OutcomeCompleted)))
	require.Eventually(t, d.Paused, time.Second, time.Millisecond)

	d.Cancel()
	d.Wait()
	assert.Equal(t, 1, d.Published())
}

func TestDriver_ResetRestoresBaseline(t *testing.T) {
	baseline := domain.Step{Kind: domain.KindInit, Description: "idle"}
	var resets int
	d := New(
		WithSleeper(blockingSleeper),
		WithBaseline(baseline),
		WithHooks(domain.LifecycleHooks{OnReset: func(context.Context, *domain.RunEvent) { resets++ }}),
	)
	require.NoError(t, d.Start(context.Background(), steps(5, domain.OutcomeCompleted)))
	require.Eventually(t, func() bool { return d.Published() == 1 }, time.Second, time.Millisecond)

	d.Reset()
	assert.False(t, d.Running())
	assert.Equal(t, 0, d.Published())
	cur, ok := d.Current()
	require.True(t, ok)
	assert.Equal(t, "idle", cur.Description)
	assert.Equal(t, 1, resets)
}

func TestDriver_Restart(t *testing.T) {
	d := New(WithSleeper(new(delays).sleep))
	require.ErrorIs(t, d.Restart(context.Background()), ErrNothingToRestart)

	rec := &recorder{}
	d.Subscribe(rec.add)
	require.NoError(t, d.Start(context.Background(), steps(3, domain.OutcomeCompleted)))
	d.Wait()
	require.NoError(t, d.Restart(context.Background()))
	d.Wait()
	assert.Equal(t, 6, rec.len())
	assert.Equal(t, 3, d.Published())
}

func TestDriver_Unsubscribe(t *testing.T) {
	d := New(WithSleeper(new(delays).sleep))
	rec := &recorder{}
	unsubscribe := d.Subscribe(rec.add)
	unsubscribe()
	require.NoError(t, d.Start(context.Background(), steps(3, domain.OutcomeCompleted)))
	d.Wait()
	assert.Zero(t, rec.len())
}

func TestDriver_Stream(t *testing.T) {
	d := New(WithSleeper(new(delays).sleep))
	ch, closeStream := d.Stream(16)
	defer closeStream()
	require.NoError(t, d.Start(context.Background(), steps(3, domain.OutcomeCompleted)))
	d.Wait()

	var got []int
	for range 3 {
		got = append(got, (<-ch).Seq)
	}
	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestDriver_StreamDropsWhenFull(t *testing.T) {
	d := New(WithSleeper(new(delays).sleep))
	ch, closeStream := d.Stream(1)
	require.NoError(t, d.Start(context.Background(), steps(5, domain.OutcomeCompleted)))
	d.Wait()
	assert.Len(t, ch, 1)
	closeStream()
	closeStream()
}

func TestDriver_TerminalOutcomeReported(t *testing.T) {
	var end *domain.RunEvent
	d := New(WithSleeper(new(delays).sleep), WithHooks(domain.LifecycleHooks{
		OnRunEnd: func(_ context.Context, e *domain.RunEvent) { end = e },
	}))
	g := domain.Graph{
		Nodes: []domain.Node{{ID: "A"}, {ID: "B"}},
		Edges: []domain.Edge{{U: "A", V: "B", Weight: 1, Directed: true}, {U: "B", V: "A", Weight: -2, Directed: true}},
	}
	require.NoError(t, d.Start(context.Background(), func() (iter.Seq[domain.Step], error) {
		return algorithms.BellmanFord(domain.Input{Graph: g, Start: "A"})
	}))
	d.Wait()
	require.NotNil(t, end)
	assert.Equal(t, domain.RunCompleted, end.Status)
	assert.Equal(t, domain.OutcomeNegativeCycle, end.Outcome)
	assert.Equal(t, "bellman-ford", end.Algorithm)
}

func TestDriver_PanickingSequenceFails(t *testing.T) {
	var end *domain.RunEvent
	d := New(WithSleeper(new(delays).sleep), WithHooks(domain.LifecycleHooks{
		OnRunEnd: func(_ context.Context, e *domain.RunEvent) { end = e },
	}))
	require.NoError(t, d.Start(context.Background(), func() (iter.Seq[domain.Step], error) {
		return func(yield func(domain.Step) bool) {
			yield(domain.Step{})
			panic("bad generator")
		}, nil
	}))
	d.Wait()
	require.NotNil(t, end)
	assert.Equal(t, domain.RunFailed, end.Status)
	assert.Error(t, end.Err)
	assert.False(t, d.Running())
}
