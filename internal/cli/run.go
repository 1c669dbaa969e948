package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/muesli/termenv"

	"github.com/aretw0/algoscope"
	"github.com/aretw0/algoscope/pkg/domain"
	"github.com/aretw0/algoscope/pkg/playback"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Algorithm string // overrides the document's algorithm
	Input     InputOptions
	Speed     string // overrides the document's speed
	JSON      bool
	NoDelay   bool
	Profile   termenv.Profile
}

// noDelay returns at once, honouring cancellation.
func noDelay(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// Execute plays the algorithm through a driver into the text or NDJSON renderer.
// Cancelling ctx (Ctrl+C) stops the run cooperatively and is not an error.
func Execute(ctx context.Context, lab *algoscope.Lab, opts RunOptions, out io.Writer) error {
	src, err := ResolveInput(ctx, opts.Input)
	if err != nil {
		return err
	}
	name := firstNonEmpty(opts.Algorithm, src.Algorithm)
	if name == "" {
		return errors.New("no algorithm given and the input does not declare one")
	}

	var dopts []playback.Option
	if opts.NoDelay {
		dopts = append(dopts, playback.WithSleeper(noDelay))
	}
	d := lab.NewDriver(dopts...)
	if speed := firstNonEmpty(opts.Speed, src.Speed); speed != "" {
		if err := d.SetSpeed(speed); err != nil {
			return err
		}
	}

	var r Renderer = NewTextRenderer(out, opts.Profile)
	if opts.JSON {
		r = NewJSONRenderer(out)
	}
	if !opts.JSON && src.Title != "" {
		printSystemMessage(out, "%s (%s)", src.Title, name)
	}

	var renderErr error
	d.Subscribe(func(s domain.Step) {
		if renderErr != nil {
			return
		}
		if err := r.Render(s); err != nil {
			renderErr = fmt.Errorf("render step %d: %w", s.Seq, err)
			d.Cancel()
		}
	})

	if err := lab.Play(ctx, d, name, src.Input); err != nil {
		return err
	}
	d.Wait()

	if renderErr != nil {
		return renderErr
	}
	if ctx.Err() != nil && !opts.JSON {
		printSystemMessage(out, "Interrupted after %d steps.", d.Published())
	}
	return nil
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
