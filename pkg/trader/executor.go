package trader

import (
	"context"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ladderbot/ladderbot/pkg/clock"
	"github.com/ladderbot/ladderbot/pkg/metrics"
	"github.com/ladderbot/ladderbot/pkg/notifier"
	"github.com/ladderbot/ladderbot/pkg/types"
	"github.com/ladderbot/ladderbot/pkg/util/backoff"
)

var log = logrus.WithField("component", "trader")

// OrderRequest is one order the executor should get accepted by the exchange.
type OrderRequest struct {
	types.SubmitOrder

	// PositionAmount is the signed position amount flattened with a reduce-only
	// market order when the quantity is zero or a submission attempt fails.
	PositionAmount float64
}

// OrderExecutor submits orders through the gateway, retrying any gateway error at a
// fixed interval until the order is accepted or the deadline passes.
//
// Type dispatch:
//   - LIMIT is sent good-till-canceled
//   - TAKE_PROFIT_MARKET is sent reduce-only
//   - STOP_MARKET is sent close-position, it carries no quantity
//   - MARKET is sent as requested
//   - any other type cancels every open order of the symbol instead of placing one
type OrderExecutor struct {
	Gateway  types.FuturesGateway
	Clock    clock.Clock
	Notifier notifier.Notifier

	RetryInterval time.Duration
}

// Submit returns ErrDeadlineExceeded when no attempt was accepted before the deadline.
// A zero deadline never expires.
//
// When the truncated quantity is zero the requested order is never sent; the
// executor flattens req.PositionAmount instead and returns that market order.
func (e *OrderExecutor) Submit(ctx context.Context, req OrderRequest, deadline time.Time) (*types.Order, error) {
	order := req.SubmitOrder
	order.Price = order.Market.RoundPrice(order.Price)
	order.StopPrice = order.Market.RoundPrice(order.StopPrice)

	switch order.Type {
	case types.OrderTypeLimit:
		order.TimeInForce = types.TimeInForceGTC

	case types.OrderTypeTakeProfitMarket:
		order.ReduceOnly = true

	case types.OrderTypeStopMarket:
		order.ClosePosition = true
		order.ReduceOnly = false
		order.Quantity = 0

	case types.OrderTypeMarket:

	default:
		return e.cancelAll(ctx, order, deadline)
	}

	if !order.ClosePosition {
		order.Quantity = order.Market.TruncateQuantity(order.Quantity)
		if order.Quantity == 0 {
			log.Infof("%s order quantity is 0, flattening position amount %f instead", order.Symbol, req.PositionAmount)
			return e.Flatten(ctx, order.Market, req.PositionAmount, deadline, "zero_quantity")
		}
	}

	logger := log.WithFields(logrus.Fields{
		"symbol":    order.Symbol,
		"orderType": order.Type,
		"side":      order.Side,
	})
	logger.Infof("submitting %s", order)

	var created *types.Order
	op := func() error {
		o, err := e.Gateway.SubmitOrder(ctx, order)
		if err != nil {
			metrics.OrderSubmitErrorsMetrics.WithLabelValues(order.Symbol, string(order.Type)).Inc()
			logger.WithError(err).Errorf("failed to submit %s", order)

			e.notify("Exception occurred: closing out all positions, symbol: %s, error: %v", order.Symbol, err)
			e.flattenOnce(ctx, order.Market, req.PositionAmount, "exception")
			return err
		}

		created = o
		return nil
	}

	if err := backoff.RetryUntil(ctx, e.Clock, e.RetryInterval, deadline, op, nil); err != nil {
		logger.WithError(err).Warnf("%s was not accepted", order)
		return nil, err
	}

	if created == nil {
		created = &types.Order{SubmitOrder: order, Status: types.OrderStatusNew}
	} else if created.Market.Symbol == "" {
		created.Market = order.Market
	}

	metrics.OrdersSubmittedMetrics.WithLabelValues(order.Symbol, string(order.Side), string(order.Type)).Inc()
	logger.Infof("order accepted: %s", created)
	return created, nil
}

// Flatten closes the signed position amount with a reduce-only market order,
// retrying until the deadline. A zero amount returns ErrNothingToFlatten.
func (e *OrderExecutor) Flatten(
	ctx context.Context, market types.Market, amount float64, deadline time.Time, reason string,
) (*types.Order, error) {
	order, ok := flattenOrder(market, amount)
	if !ok {
		return nil, ErrNothingToFlatten
	}

	var created *types.Order
	op := func() (err error) {
		created, err = e.Gateway.SubmitOrder(ctx, order)
		if err != nil {
			log.WithError(err).Errorf("failed to flatten %s position", market.Symbol)
		}
		return err
	}

	if err := backoff.RetryUntil(ctx, e.Clock, e.RetryInterval, deadline, op, nil); err != nil {
		return nil, err
	}

	metrics.FlattenOrdersMetrics.WithLabelValues(market.Symbol, reason).Inc()
	log.Infof("flattened %s position amount %f (%s): %s", market.Symbol, amount, reason, created)
	return created, nil
}

// flattenOnce is the single-attempt safety flatten issued next to a failed submission.
func (e *OrderExecutor) flattenOnce(ctx context.Context, market types.Market, amount float64, reason string) {
	order, ok := flattenOrder(market, amount)
	if !ok {
		return
	}

	if _, err := e.Gateway.SubmitOrder(ctx, order); err != nil {
		log.WithError(err).Errorf("safety flatten of %s failed", market.Symbol)
		return
	}

	metrics.FlattenOrdersMetrics.WithLabelValues(market.Symbol, reason).Inc()
}

func flattenOrder(market types.Market, amount float64) (types.SubmitOrder, bool) {
	quantity := market.TruncateQuantity(math.Abs(amount))
	if quantity == 0 {
		return types.SubmitOrder{}, false
	}

	return types.SubmitOrder{
		Symbol:     market.Symbol,
		Side:       types.DirectionFromAmount(amount).CloseSide(),
		Type:       types.OrderTypeMarket,
		Quantity:   quantity,
		Market:     market,
		ReduceOnly: true,
		Tag:        "flatten",
	}, true
}

func (e *OrderExecutor) cancelAll(ctx context.Context, order types.SubmitOrder, deadline time.Time) (*types.Order, error) {
	log.Infof("cancelling all open orders for %s", order.Symbol)

	op := func() error {
		err := e.Gateway.CancelAllOpenOrders(ctx, order.Symbol)
		if err != nil {
			log.WithError(err).Errorf("failed to cancel %s open orders", order.Symbol)
		}
		return err
	}

	if err := backoff.RetryUntil(ctx, e.Clock, e.RetryInterval, deadline, op, nil); err != nil {
		return nil, err
	}

	order.Type = types.OrderTypeCancelAll
	return &types.Order{
		SubmitOrder: order,
		Status:      types.OrderStatusCanceled,
		UpdateTime:  e.Clock.Now(),
	}, nil
}

func (e *OrderExecutor) notify(format string, args ...interface{}) {
	if e.Notifier != nil {
		e.Notifier.Notify(format, args...)
	}
}
