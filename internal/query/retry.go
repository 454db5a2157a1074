package query

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/nao1215/neocc/internal/fetch"
)

// withRetry runs op and, when it fails with a transient error, runs it
// once more after the retry delay. The second attempt bypasses the
// document cache so a degenerate cached payload is replaced.
func (c *Client) withRetry(ctx context.Context, logger *slog.Logger, op func(context.Context) error) error {
	attempt := 0
	operation := func() error {
		attempt++
		actx := ctx
		if attempt > 1 {
			c.metrics.Retry()
			actx = fetch.WithoutCache(ctx)
		}
		err := op(actx)
		if err == nil {
			return nil
		}
		if !fetch.IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryDelay), 1),
		ctx,
	)
	notify := func(err error, wait time.Duration) {
		logger.Warn("transient failure, retrying",
			"error", err,
			"wait", wait,
		)
	}
	return backoff.RetryNotify(operation, policy, notify)
}
