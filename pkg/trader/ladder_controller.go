package trader

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/ladderbot/ladderbot/pkg/clock"
	"github.com/ladderbot/ladderbot/pkg/exchange/retry"
	"github.com/ladderbot/ladderbot/pkg/metrics"
	"github.com/ladderbot/ladderbot/pkg/notifier"
	"github.com/ladderbot/ladderbot/pkg/types"
	"github.com/ladderbot/ladderbot/pkg/util"
	"github.com/ladderbot/ladderbot/pkg/util/backoff"
)

type LadderState int

const (
	LadderStateBuilding LadderState = iota
	LadderStateSupervising
	LadderStateDone
)

func (s LadderState) String() string {
	switch s {
	case LadderStateBuilding:
		return "BUILDING"
	case LadderStateSupervising:
		return "SUPERVISING"
	case LadderStateDone:
		return "DONE"
	}
	return "UNKNOWN"
}

// maxIteration bounds the supervision loop, one iteration per rung.
const maxIteration = LadderSize + 1

type LadderOptions struct {
	PollInterval time.Duration
	RungPacing   time.Duration

	// OrderTimeout bounds every ladder order submission and cancellation.
	OrderTimeout time.Duration

	// SupervisionTimeout bounds the supervision loop, zero means unbounded.
	SupervisionTimeout time.Duration

	QuoteAsset string
}

// LadderReport summarizes a concluded ladder.
type LadderReport struct {
	Fills          int
	RealizedProfit float64

	EndingBalance float64
	ProfitAndLoss float64

	// Residual is the position amount the failsafe flattened, zero when the position was flat.
	Residual float64

	// Unflattened is the position amount left open because the failsafe flatten failed.
	Unflattened float64
}

// LadderController runs the exit lifecycle of one position:
// BUILDING places the stop-loss and the take-profit rungs, SUPERVISING polls them and
// ratchets the stop as rungs fill, DONE cancels what is left and makes sure the
// position is flat.
//
// The exchange-reported position amount is the authoritative flatness signal; a
// stop-loss order can still report NEW after the position was closed by other means.
type LadderController struct {
	LadderOptions

	executor *OrderExecutor
	gateway  types.FuturesGateway
	clock    clock.Clock
	notifier notifier.Notifier

	ladder *ExitLadder
	state  LadderState

	iteration int
	position  float64
	report    LadderReport

	logger      logrus.FieldLogger
	pollLogger  *util.WarnFirstLogger
	symbolLabel string
}

func NewLadderController(executor *OrderExecutor, ladder *ExitLadder, options LadderOptions) *LadderController {
	logger := log.WithFields(logrus.Fields{
		"symbol":    ladder.Market.Symbol,
		"direction": ladder.Direction,
	})

	return &LadderController{
		LadderOptions: options,
		executor:      executor,
		gateway:       executor.Gateway,
		clock:         executor.Clock,
		notifier:      executor.Notifier,
		ladder:        ladder,
		state:         LadderStateBuilding,
		iteration:     1,
		position:      float64(ladder.Direction) * ladder.FilledQuantity,
		logger:        logger,
		pollLogger:    util.NewWarnFirstLogger(3, time.Minute, logger),
		symbolLabel:   ladder.Market.Symbol,
	}
}

func (c *LadderController) State() LadderState {
	return c.state
}

func (c *LadderController) Ladder() *ExitLadder {
	return c.ladder
}

// Run drives the ladder from BUILDING to DONE. Every path ends with cancel-all and a
// flatness check. The returned error aggregates the failures of the DONE stage.
func (c *LadderController) Run(ctx context.Context, openingBalance float64) (*LadderReport, error) {
	c.state = LadderStateBuilding
	if err := c.build(ctx); err != nil {
		c.logger.WithError(err).Error("failed to build the exit ladder")
		c.notify("Failed to place the stop-loss for %s: %v", c.symbolLabel, err)
	} else {
		c.state = LadderStateSupervising
		c.supervise(ctx)
	}

	c.state = LadderStateDone
	return c.finish(ctx, openingBalance)
}

func (c *LadderController) orderDeadline() time.Time {
	if c.OrderTimeout <= 0 {
		return time.Time{}
	}
	return c.clock.Now().Add(c.OrderTimeout)
}

// build places the stop-loss, then the rungs with a pacing delay between submissions.
// Only a stop-loss failure aborts the ladder.
func (c *LadderController) build(ctx context.Context) error {
	l := c.ladder
	side := l.Direction.CloseSide()

	c.logger.Infof("building exit ladder: entry=%f target=%f stop=%f atr=%f filled=%f",
		l.EntryPrice, l.TargetPrice, l.Stop.Price, l.ATR, l.FilledQuantity)

	stopOrder, err := c.executor.Submit(ctx, OrderRequest{
		SubmitOrder: types.SubmitOrder{
			Symbol:    l.Market.Symbol,
			Side:      side,
			Type:      types.OrderTypeStopMarket,
			StopPrice: l.Stop.Price,
			Market:    l.Market,
			Tag:       "stop-loss",
		},
		PositionAmount: c.position,
	}, c.orderDeadline())
	if err != nil {
		return err
	}
	l.Stop.Order = stopOrder

	for k := range l.Rungs {
		rung := &l.Rungs[k]

		c.clock.Sleep(c.RungPacing)

		order, err := c.executor.Submit(ctx, OrderRequest{
			SubmitOrder: types.SubmitOrder{
				Symbol:    l.Market.Symbol,
				Side:      side,
				Type:      types.OrderTypeTakeProfitMarket,
				Quantity:  rung.Quantity,
				StopPrice: rung.TargetPrice,
				Market:    l.Market,
				Tag:       "take-profit-" + strconv.Itoa(k+1),
			},
			PositionAmount: c.position,
		}, c.orderDeadline())
		if err != nil {
			c.logger.WithError(err).Errorf("take-profit rung %d was not placed", k+1)
			continue
		}

		rung.Order = order
	}

	return nil
}

func (c *LadderController) supervise(ctx context.Context) {
	var deadline time.Time
	if c.SupervisionTimeout > 0 {
		deadline = c.clock.Now().Add(c.SupervisionTimeout)
	}

	for c.iteration < maxIteration {
		if ctx.Err() != nil {
			c.logger.WithError(ctx.Err()).Warn("supervision interrupted")
			return
		}

		if clock.Expired(c.clock, deadline) {
			c.notify("Supervision timeout: exceeded %s, closing %s", c.SupervisionTimeout, c.symbolLabel)
			return
		}

		c.logger.Debugf("TP%d and SL%d positions are still open", c.iteration, c.iteration)

		stopOrder := c.queryOrder(ctx, c.ladder.Stop.Order)

		rung := c.ladder.Rung(c.iteration)
		takeProfitOrder := c.queryOrder(ctx, rung.Order)

		if positions, err := c.gateway.QueryPositions(ctx, c.symbolLabel); err != nil {
			c.pollLogger.WarnOrError(err, "failed to query %s position", c.symbolLabel)
		} else {
			c.position = positions.Amount(c.symbolLabel)
			metrics.PositionAmountMetrics.WithLabelValues(c.symbolLabel).Set(c.position)

			if c.position == 0 {
				c.logger.Info("position is flat, leaving supervision")
				return
			}
		}

		if stopOrder != nil && stopOrder.Status == types.OrderStatusFilled {
			c.logger.Info("stop-loss filled, leaving supervision")
			return
		}

		if takeProfitOrder != nil && takeProfitOrder.Status == types.OrderStatusFilled {
			c.onRungFilled(ctx, takeProfitOrder)
			c.iteration++
		}

		c.clock.Sleep(c.PollInterval)
	}
}

func (c *LadderController) queryOrder(ctx context.Context, order *types.Order) *types.Order {
	if order == nil {
		return nil
	}

	o, err := c.gateway.QueryOrder(ctx, c.symbolLabel, order.OrderID)
	if err != nil {
		c.pollLogger.WarnOrError(err, "failed to query %s order %d", c.symbolLabel, order.OrderID)
		return nil
	}

	return o
}

func (c *LadderController) onRungFilled(ctx context.Context, takeProfitOrder *types.Order) {
	l := c.ladder
	fillPrice := takeProfitOrder.FillPrice()
	profit := float64(l.Direction) * (fillPrice - l.EntryPrice) * takeProfitOrder.ExecutedQuantity

	c.report.Fills++
	c.report.RealizedProfit += profit

	metrics.LadderFillsMetrics.WithLabelValues(c.symbolLabel, strconv.Itoa(c.iteration)).Inc()
	c.notify("TP%d Profit: %s, symbol: %s", c.iteration, types.FormatMoney(c.QuoteAsset, profit), c.symbolLabel)

	c.ratchet(ctx)
}

// ratchet moves the stop-loss for the current iteration. A candidate price less
// favorable than the current stop is discarded. The previous stop is canceled before
// the new one is placed; when the cancel fails the previous stop stays in force.
func (c *LadderController) ratchet(ctx context.Context) {
	l := c.ladder

	price, ok := l.RatchetPrice(c.iteration)
	if !ok {
		return
	}

	if !l.Direction.IsMoreFavorable(price, l.Stop.Price) {
		c.logger.Infof("keeping stop-loss at %f, %f would not lock in more profit", l.Stop.Price, price)
		return
	}

	deadline := c.orderDeadline()

	if l.Stop.Order != nil {
		orderID := l.Stop.Order.OrderID
		op := func() error {
			return c.gateway.CancelOrder(ctx, c.symbolLabel, orderID)
		}

		if err := backoff.RetryUntil(ctx, c.clock, c.executor.RetryInterval, deadline, op, nil); err != nil {
			c.logger.WithError(err).Errorf("failed to cancel stop-loss order %d", orderID)
			c.notify("Failed to move stop loss (%d), symbol=%s, keeping stop_price=%s",
				c.iteration, c.symbolLabel, l.Market.FormatPrice(l.Stop.Price))
			return
		}

		l.Stop.Order = nil
	}

	order, err := c.executor.Submit(ctx, OrderRequest{
		SubmitOrder: types.SubmitOrder{
			Symbol:    c.symbolLabel,
			Side:      l.Direction.CloseSide(),
			Type:      types.OrderTypeStopMarket,
			StopPrice: price,
			Market:    l.Market,
			Tag:       "stop-loss",
		},
		PositionAmount: c.position,
	}, deadline)
	if err != nil {
		c.logger.WithError(err).Errorf("failed to place the ratcheted stop-loss at %f", price)
		c.notify("Failed to place stop loss (%d), symbol=%s, stop_price=%s",
			c.iteration, c.symbolLabel, l.Market.FormatPrice(price))
		return
	}

	l.Stop = StopLoss{Price: price, Order: order}

	metrics.StopRatchetsMetrics.WithLabelValues(c.symbolLabel).Inc()
	c.notify("Moving Stop Loss (%d), symbol=%s, new stop_price=%s",
		c.iteration, c.symbolLabel, l.Market.FormatPrice(price))
}

// finish cancels every open order, reports the balance change and flattens any residual position.
func (c *LadderController) finish(ctx context.Context, openingBalance float64) (*LadderReport, error) {
	var errs error

	c.logger.Infof("SL%d: cancelling all open orders", c.iteration)
	if err := retry.CancelAllOpenOrdersUntilSuccessful(ctx, c.clock, c.gateway, c.symbolLabel); err != nil {
		errs = multierr.Append(errs, err)
	}

	endingBalance, err := retry.QueryBalanceUntilSuccessful(ctx, c.clock, c.gateway, c.QuoteAsset)
	if err != nil {
		errs = multierr.Append(errs, err)
	} else {
		c.report.EndingBalance = endingBalance
		c.report.ProfitAndLoss = endingBalance - openingBalance

		metrics.AccountBalanceMetrics.WithLabelValues(c.QuoteAsset).Set(endingBalance)
		metrics.TradeProfitMetrics.WithLabelValues(c.symbolLabel).Set(c.report.ProfitAndLoss)
		c.notify("Total Loss/Profit: %s, symbol: %s\nEnding Balance: %s",
			types.FormatMoney(c.QuoteAsset, c.report.ProfitAndLoss), c.symbolLabel,
			types.FormatMoney(c.QuoteAsset, endingBalance))
	}

	residual, err := retry.QueryPositionAmountUntilSuccessful(ctx, c.clock, c.gateway, c.symbolLabel)
	if err != nil {
		return &c.report, multierr.Append(errs, err)
	}

	if residual != 0 {
		quantity := c.ladder.Market.FormatQuantity(residual)
		c.logger.Warnf("failsafe: residual position %s after supervision", quantity)
		c.notify("Failsafe: %s position %s still open, closing it", c.symbolLabel, quantity)

		_, err := c.executor.Flatten(ctx, c.ladder.Market, residual, c.orderDeadline(), "failsafe")
		switch {
		case err == nil:
			c.report.Residual = residual

		case errors.Is(err, ErrNothingToFlatten):
			c.logger.Warnf("residual position %s is below the quantity precision", quantity)

		default:
			c.report.Unflattened = residual
			c.logger.WithError(err).Errorf("failsafe flatten failed, %s position %s is still open", c.symbolLabel, quantity)
			c.notify("Failsafe flatten failed, symbol=%s, residual=%s", c.symbolLabel, quantity)
			errs = multierr.Append(errs, err)
		}
	}

	return &c.report, errs
}

func (c *LadderController) notify(format string, args ...interface{}) {
	if c.notifier != nil {
		c.notifier.Notify(format, args...)
	}
}
