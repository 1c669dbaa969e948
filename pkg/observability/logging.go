package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/algoscope/pkg/domain"
)

// LoggingHooks logs run boundaries at info and each step at debug.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.InfoContext(ctx, "run_start", "run_id", e.RunID, "algorithm", e.Algorithm)
		},
		OnRunEnd: func(ctx context.Context, e *domain.RunEvent) {
			attrs := []any{
				"run_id", e.RunID,
				"algorithm", e.Algorithm,
				"status", e.Status,
				"outcome", e.Outcome,
				"steps", e.Steps,
			}
			if e.Err != nil {
				logger.ErrorContext(ctx, "run_end", append(attrs, "err", e.Err)...)
				return
			}
			logger.InfoContext(ctx, "run_end", attrs...)
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step",
				"run_id", e.RunID,
				"seq", e.Step.Seq,
				"kind", e.Step.Kind,
				"description", e.Step.Description,
			)
		},
		OnReset: func(ctx context.Context, e *domain.RunEvent) {
			logger.InfoContext(ctx, "reset", "run_id", e.RunID)
		},
	}
}
