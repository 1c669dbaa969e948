package algoscope_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/algoscope"
	"github.com/aretw0/algoscope/pkg/domain"
	"github.com/aretw0/algoscope/pkg/playback"
)

func noSleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

func TestLab_Collect(t *testing.T) {
	lab := algoscope.New()
	ctx := context.Background()
	in := domain.Input{Array: []float64{3, 1, 2}}

	all, truncated, err := lab.Collect(ctx, "insertion", in, 0)
	require.NoError(t, err)
	assert.False(t, truncated)
	require.NotEmpty(t, all)
	assert.True(t, all[len(all)-1].Terminal)

	some, truncated, err := lab.Collect(ctx, "insertion", in, 2)
	require.NoError(t, err)
	assert.True(t, truncated)
	assert.Equal(t, all[:2], some)

	exact, truncated, err := lab.Collect(ctx, "insertion", in, len(all))
	require.NoError(t, err)
	assert.False(t, truncated)
	assert.Len(t, exact, len(all))
}

func TestLab_UnknownAlgorithm(t *testing.T) {
	lab := algoscope.New()
	_, _, err := lab.Collect(context.Background(), "bogo", domain.Input{}, 0)
	assert.ErrorIs(t, err, domain.ErrUnknownAlgorithm)

	err = lab.Play(context.Background(), lab.NewDriver(), "bogo", domain.Input{})
	assert.ErrorIs(t, err, domain.ErrUnknownAlgorithm)
}

func TestLab_PlayUsesSnapshotAndHooks(t *testing.T) {
	var mu sync.Mutex
	var ends []domain.RunEvent
	lab := algoscope.New(
		algoscope.WithPlaybackOptions(playback.WithSleeper(noSleep)),
		algoscope.WithLifecycleHooks(domain.LifecycleHooks{
			OnRunEnd: func(_ context.Context, e *domain.RunEvent) {
				mu.Lock()
				defer mu.Unlock()
				ends = append(ends, *e)
			},
		}),
	)

	in := domain.Input{Array: []float64{2, 1}}
	d := lab.NewDriver()
	require.NoError(t, lab.Play(context.Background(), d, "bubble", in))
	in.Array[0] = 99
	d.Wait()

	last, ok := d.Current()
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2}, last.Array.Values)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, ends, 1)
	assert.Equal(t, "bubble", ends[0].Algorithm)
	assert.Equal(t, domain.OutcomeCompleted, ends[0].Outcome)
}

func TestLab_PlayWhileRunning(t *testing.T) {
	lab := algoscope.New()
	d := lab.NewDriver(playback.WithSleeper(func(ctx context.Context, _ time.Duration) error {
		<-ctx.Done()
		return ctx.Err()
	}))
	in := domain.Input{Array: []float64{2, 1}}
	require.NoError(t, lab.Play(context.Background(), d, "bubble", in))
	defer d.Reset()

	err := lab.Play(context.Background(), d, "bubble", in)
	assert.ErrorIs(t, err, domain.ErrRunInProgress)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, algoscope.Version)
}
