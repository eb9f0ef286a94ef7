package pipeline

import (
	"context"
	"runtime"

	"github.com/couchcryptid/crash-data-etl/internal/domain"
	"golang.org/x/sync/errgroup"
)

// TransformAll normalizes a whole table with a bounded worker pool. Output
// order matches input order. workers <= 0 selects GOMAXPROCS. The only error
// is cancellation of ctx.
func TransformAll(ctx context.Context, t *RecordTransformer, records []domain.RawRecord, workers int) ([]domain.AccidentRecord, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([]domain.AccidentRecord, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, raw := range records {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = t.Normalize(gctx, raw)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
