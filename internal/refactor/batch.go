package refactor

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"refactorkit/internal/logging"
)

// BatchItem pairs an artifact with its run outcome. Outcome is nil
// when Err is set.
type BatchItem struct {
	Artifact *SourceArtifact
	Outcome  *RunOutcome
	Err      error
}

// RunBatch executes independent pipeline runs over multiple artifacts
// concurrently, bounded by limit workers. Runs share no mutable state;
// each owns its pipeline state exclusively, so no locking is needed
// beyond the result slot assignment. Rate limiting of the model
// provider is the caller's concern.
//
// Invocation failures are recorded per item rather than cancelling the
// whole batch: one bad artifact must not sink its siblings. The only
// error returned is the context's, when the batch is cancelled.
func (p *Pipeline) RunBatch(ctx context.Context, artifacts []*SourceArtifact, cfg *PipelineConfig, limit int) ([]BatchItem, error) {
	if limit <= 0 {
		limit = 1
	}

	items := make([]BatchItem, len(artifacts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	logging.Batch("starting batch of %d artifacts with %d workers", len(artifacts), limit)

	for i, artifact := range artifacts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcome, err := p.Run(ctx, artifact, cfg)
			items[i] = BatchItem{Artifact: artifact, Outcome: outcome, Err: err}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return items, err
	}
	return items, nil
}
