package backoff

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/ladderbot/ladderbot/pkg/clock"
)

var MaxRetries uint64 = 101

// ErrDeadlineExceeded is returned by RetryUntil when the wall-clock deadline
// passed before the operation succeeded.
var ErrDeadlineExceeded = errors.New("deadline exceeded")

func RetryGeneral(ctx context.Context, op backoff.Operation) (err error) {
	return RetryGeneralWithTimer(ctx, nil, op)
}

// RetryGeneralWithTimer is RetryGeneral with the waits driven by the given timer.
// A nil timer waits on the system clock.
func RetryGeneralWithTimer(ctx context.Context, timer backoff.Timer, op backoff.Operation) (err error) {
	err = backoff.RetryNotifyWithTimer(op, backoff.WithContext(
		backoff.WithMaxRetries(
			backoff.NewExponentialBackOff(),
			MaxRetries),
		ctx), nil, timer)
	return err
}

// RetryUntil runs op at a fixed interval until it succeeds or the deadline passes.
// The deadline is checked before every attempt, so an already expired deadline
// returns ErrDeadlineExceeded without calling op. A zero deadline never expires.
func RetryUntil(
	ctx context.Context, clk clock.Clock, interval time.Duration, deadline time.Time,
	op backoff.Operation, notify backoff.Notify,
) error {
	attempt := func() error {
		if clock.Expired(clk, deadline) {
			return backoff.Permanent(ErrDeadlineExceeded)
		}

		return op()
	}

	b := backoff.WithContext(backoff.NewConstantBackOff(interval), ctx)
	return backoff.RetryNotifyWithTimer(attempt, b, notify, clk.NewTimer())
}
