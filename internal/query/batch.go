package query

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/neocc/internal/model"
	"github.com/nao1215/neocc/internal/tabs"
)

// DefaultConcurrency is the number of objects queried at once.
const DefaultConcurrency = 4

// Result is the outcome of one object of a batch.
type Result struct {
	Object string
	Tab    model.Tab
	Result model.TabResult
	Err    error
}

// Batch queries the same tab of several objects concurrently. Results keep
// the order of names. A failed object does not stop the others; its error
// is recorded in its Result. The returned error is set only when ctx is
// cancelled.
func (c *Client) Batch(
	ctx context.Context,
	names []string,
	tab model.Tab,
	opts tabs.Options,
	concurrency int,
) ([]Result, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	c.logger.Info("starting batch query",
		"objects", len(names),
		"tab", string(tab),
		"concurrency", concurrency,
	)
	start := time.Now()

	results := make([]Result, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, name := range names {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				results[i] = Result{Object: name, Tab: tab, Err: ctx.Err()}
				return ctx.Err()
			default:
			}

			res, err := c.Object(ctx, name, tab, opts)
			results[i] = Result{Object: name, Tab: tab, Result: res, Err: err}
			return nil
		})
	}

	err := g.Wait()
	c.logger.Info("batch query complete",
		"objects", len(names),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return results, err
}
