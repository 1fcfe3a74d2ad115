package trader

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ladderbot/ladderbot/pkg/clock"
	"github.com/ladderbot/ladderbot/pkg/exchange/retry"
	"github.com/ladderbot/ladderbot/pkg/types"
	"github.com/ladderbot/ladderbot/pkg/util/backoff"
)

// FillConfirmer polls the entry order until it is filled.
type FillConfirmer struct {
	Gateway types.FuturesGateway
	Clock   clock.Clock

	PollInterval time.Duration

	// PartialFillGrace is how long a partially filled entry may keep filling
	// before the remainder is canceled.
	PartialFillGrace time.Duration
}

// AwaitFill polls the order until its status is in the accepted set or the deadline
// passes, in which case ErrDeadlineExceeded is returned. An empty set accepts any status.
func (c *FillConfirmer) AwaitFill(
	ctx context.Context, symbol string, orderID int64, deadline time.Time, accepted ...types.OrderStatus,
) (*types.Order, error) {
	logger := log.WithFields(logrus.Fields{"symbol": symbol, "orderID": orderID})

	var order *types.Order
	op := func() error {
		o, err := c.Gateway.QueryOrder(ctx, symbol, orderID)
		if err != nil {
			logger.WithError(err).Warn("failed to query order")
			return err
		}

		if !o.Status.In(accepted...) {
			logger.Infof("order status: %s, waiting to be %v", o.Status, accepted)
			return fmt.Errorf("order %d status %s not accepted", orderID, o.Status)
		}

		order = o
		return nil
	}

	if err := backoff.RetryUntil(ctx, c.Clock, c.PollInterval, deadline, op, nil); err != nil {
		return nil, err
	}

	return order, nil
}

// ConfirmEntry waits for the entry order to be filled or partially filled.
//
// A partially filled order gets one grace period to fill further, is fetched once
// more, and then every open order of the symbol is canceled. The executed
// quantity observed at that moment is final.
func (c *FillConfirmer) ConfirmEntry(ctx context.Context, symbol string, orderID int64, deadline time.Time) (*types.Order, error) {
	order, err := c.AwaitFill(ctx, symbol, orderID, deadline, types.OrderStatusFilled, types.OrderStatusPartiallyFilled)
	if err != nil {
		return nil, err
	}

	if order.Status != types.OrderStatusPartiallyFilled {
		return order, nil
	}

	log.Infof("%s order %d is partially filled (%f), waiting %s", symbol, orderID, order.ExecutedQuantity, c.PartialFillGrace)
	c.Clock.Sleep(c.PartialFillGrace)

	if refreshed, err := retry.QueryOrderUntilSuccessful(ctx, c.Clock, c.Gateway, symbol, orderID); err != nil {
		log.WithError(err).Warnf("failed to re-fetch %s order %d, using the last observation", symbol, orderID)
	} else {
		order = refreshed
	}

	log.Infof("cancelling all open orders for %s", symbol)
	if err := retry.CancelAllOpenOrdersUntilSuccessful(ctx, c.Clock, c.Gateway, symbol); err != nil {
		log.WithError(err).Errorf("failed to cancel the unfilled remainder of %s order %d", symbol, orderID)
	}

	return order, nil
}
