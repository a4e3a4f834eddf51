package table

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/morsk/pkg/logging"
	"github.com/arthur-debert/morsk/pkg/word"
)

// Decoded is the outcome for one word of a batch.
type Decoded struct {
	Word    string
	Matched bool
	Result  Result
}

// DecodeMany decodes values concurrently with at most workers goroutines
// (GOMAXPROCS when workers <= 0). Results keep the input order. The first
// error, or cancellation of ctx, stops the batch.
func (t *Table) DecodeMany(ctx context.Context, values []word.Value, workers int) ([]Decoded, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	logger := logging.WithFields(map[string]interface{}{
		"component": "table.DecodeMany",
		"table":     t.Name,
		"words":     len(values),
		"workers":   workers,
	})
	done := logging.LogOperationStart(logger, "decode batch")
	defer done()

	out := make([]Decoded, len(values))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, v := range values {
		i, v := i, v
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, ok, err := t.Decode(v)
			if err != nil {
				return err
			}
			out[i] = Decoded{Word: v.String(), Matched: ok, Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug().Msg("Batch decoded")

	return out, nil
}
