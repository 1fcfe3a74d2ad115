package backoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ladderbot/ladderbot/pkg/clock"
)

func TestRetryUntil(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("succeeds after errors", func(t *testing.T) {
		clk := clock.NewFake(start)
		calls := 0
		err := RetryUntil(context.Background(), clk, time.Second, start.Add(time.Minute), func() error {
			calls++
			if calls < 3 {
				return errors.New("api error")
			}
			return nil
		}, nil)

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, start.Add(2*time.Second), clk.Now())
	})

	t.Run("deadline in the past never calls op", func(t *testing.T) {
		clk := clock.NewFake(start)
		calls := 0
		err := RetryUntil(context.Background(), clk, time.Second, start.Add(-time.Second), func() error {
			calls++
			return nil
		}, nil)

		assert.ErrorIs(t, err, ErrDeadlineExceeded)
		assert.Equal(t, 0, calls)
	})

	t.Run("deadline reached while retrying", func(t *testing.T) {
		clk := clock.NewFake(start)
		calls := 0
		err := RetryUntil(context.Background(), clk, time.Second, start.Add(5*time.Second), func() error {
			calls++
			return errors.New("api error")
		}, nil)

		assert.ErrorIs(t, err, ErrDeadlineExceeded)
		assert.Equal(t, 5, calls)
	})
}
