package retry

import (
	"context"

	backoff2 "github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"

	"github.com/ladderbot/ladderbot/pkg/clock"
	"github.com/ladderbot/ladderbot/pkg/types"
	"github.com/ladderbot/ladderbot/pkg/util/backoff"
)

func GeneralBackoff(ctx context.Context, clk clock.Clock, op backoff2.Operation) (err error) {
	return backoff.RetryGeneralWithTimer(ctx, clk.NewTimer(), op)
}

func QueryOrderUntilSuccessful(
	ctx context.Context, clk clock.Clock, ex types.FuturesGateway, symbol string, orderID int64,
) (o *types.Order, err error) {
	var op = func() (err2 error) {
		o, err2 = ex.QueryOrder(ctx, symbol, orderID)
		return err2
	}

	err = GeneralBackoff(ctx, clk, op)
	return o, err
}

func QueryOpenOrdersUntilSuccessful(
	ctx context.Context, clk clock.Clock, ex types.FuturesGateway, symbol string,
) (openOrders []types.Order, err error) {
	var op = func() (err2 error) {
		openOrders, err2 = ex.QueryOpenOrders(ctx, symbol)
		return err2
	}

	err = GeneralBackoff(ctx, clk, op)
	return openOrders, err
}

func CancelAllOpenOrdersUntilSuccessful(
	ctx context.Context, clk clock.Clock, ex types.FuturesGateway, symbol string,
) error {
	var op = func() (err2 error) {
		err2 = ex.CancelAllOpenOrders(ctx, symbol)
		if err2 != nil {
			log.WithError(err2).Errorf("failed to cancel %s open orders", symbol)
		}
		return err2
	}

	return GeneralBackoff(ctx, clk, op)
}
