// Package trader executes one leveraged futures trade per signal: it sizes the
// position, places and confirms the entry, then runs the exit ladder until the
// position is flat.
//
// The trader assumes at most one trade is in flight per symbol. It does not lock;
// callers acquire a per-symbol lock before ExecuteTrade and release it afterwards.
package trader

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/ladderbot/ladderbot/pkg/clock"
	"github.com/ladderbot/ladderbot/pkg/exchange/retry"
	"github.com/ladderbot/ladderbot/pkg/metrics"
	"github.com/ladderbot/ladderbot/pkg/notifier"
	"github.com/ladderbot/ladderbot/pkg/types"
)

// Journal records concluded trades.
type Journal interface {
	Insert(ctx context.Context, record types.TradeRecord) error
}

type Config struct {
	QuoteAsset string

	// EntryTimeout bounds the entry submission and its fill confirmation together.
	EntryTimeout time.Duration

	// ExitOrderTimeout bounds each ladder order submission.
	ExitOrderTimeout time.Duration

	PollInterval       time.Duration
	RetryInterval      time.Duration
	PartialFillGrace   time.Duration
	RungPacing         time.Duration
	SupervisionTimeout time.Duration

	// HighVolStrategy is the strategy tag that selects the full-size first rung.
	HighVolStrategy string
}

func DefaultConfig() Config {
	return Config{
		QuoteAsset:       "USDT",
		EntryTimeout:     250 * time.Second,
		ExitOrderTimeout: 60 * time.Second,
		PollInterval:     time.Second,
		RetryInterval:    time.Second,
		PartialFillGrace: 5 * time.Second,
		RungPacing:       time.Second,
		HighVolStrategy:  "highVol",
	}
}

type Trader struct {
	Config

	gateway  types.FuturesGateway
	clock    clock.Clock
	notifier notifier.Notifier
	journal  Journal

	idGenerator func() string

	executor  *OrderExecutor
	confirmer *FillConfirmer
}

type Option func(t *Trader)

func WithJournal(journal Journal, idGenerator func() string) Option {
	return func(t *Trader) {
		t.journal = journal
		t.idGenerator = idGenerator
	}
}

func New(gateway types.FuturesGateway, clk clock.Clock, n notifier.Notifier, config Config, options ...Option) *Trader {
	if n == nil {
		n = &notifier.NullNotifier{}
	}

	t := &Trader{
		Config:   config,
		gateway:  gateway,
		clock:    clk,
		notifier: n,
		executor: &OrderExecutor{
			Gateway:       gateway,
			Clock:         clk,
			Notifier:      n,
			RetryInterval: config.RetryInterval,
		},
		confirmer: &FillConfirmer{
			Gateway:          gateway,
			Clock:            clk,
			PollInterval:     config.PollInterval,
			PartialFillGrace: config.PartialFillGrace,
		},
	}

	for _, o := range options {
		o(t)
	}

	return t
}

// ExecuteTrade runs the whole trade and reports whether an entry was filled and
// its exit ladder concluded. Failures are alerted and logged, not returned.
func (t *Trader) ExecuteTrade(ctx context.Context, signal types.Signal) bool {
	record := types.TradeRecord{
		Symbol:     signal.Symbol,
		Side:       signal.Side,
		OrderType:  signal.OrderType,
		Strategy:   signal.Strategy,
		EntryPrice: signal.Price,
		TakeProfit: signal.TakeProfit,
		StopLoss:   signal.StopLoss,
		StartedAt:  t.clock.Now(),
	}

	outcome, err := t.executeTrade(ctx, signal, &record)
	if err != nil {
		log.WithError(err).Errorf("%s trade ended with %s", signal.Symbol, outcome)
	}

	record.Outcome = outcome
	record.EndedAt = t.clock.Now()
	metrics.TradesMetrics.WithLabelValues(signal.Symbol, signal.Strategy, string(outcome)).Inc()

	if t.journal != nil {
		if t.idGenerator != nil {
			record.ID = t.idGenerator()
		}

		if err := t.journal.Insert(ctx, record); err != nil {
			log.WithError(err).Errorf("failed to journal %s trade", signal.Symbol)
		}
	}

	return outcome == types.TradeOutcomeCompleted
}

func (t *Trader) executeTrade(ctx context.Context, signal types.Signal, record *types.TradeRecord) (types.TradeOutcome, error) {
	log.Infof("executing %s", signal)

	switch signal.OrderType {
	case types.OrderTypeLimit, types.OrderTypeMarket:
	default:
		t.notifier.Notify("Unsupported entry order type %s for %s", signal.OrderType, signal.Symbol)
		return types.TradeOutcomeRejected, errors.Errorf("unsupported entry order type %s", signal.OrderType)
	}

	var deadline time.Time
	if t.EntryTimeout > 0 {
		deadline = t.clock.Now().Add(t.EntryTimeout)
	}

	market, err := retry.QueryMarketUntilSuccessful(ctx, t.clock, t.gateway, signal.Symbol)
	if err != nil {
		return types.TradeOutcomeFailed, errors.Wrapf(err, "can not query %s market", signal.Symbol)
	}

	balance, err := retry.QueryBalanceUntilSuccessful(ctx, t.clock, t.gateway, t.QuoteAsset)
	if err != nil {
		return types.TradeOutcomeFailed, errors.Wrap(err, "can not query the opening balance")
	}
	record.OpeningBalance = balance
	metrics.AccountBalanceMetrics.WithLabelValues(t.QuoteAsset).Set(balance)

	sizing, err := SizePosition(*market, balance, signal.Percentage, signal.Price, signal.StopLoss)
	if err != nil {
		t.notifier.Notify("Can not size %s order: %v", signal.Symbol, err)
		return types.TradeOutcomeRejected, err
	}
	record.Quantity = sizing.Quantity

	log.Debugf("stopLossAmt=%.2f, maxStopLossAmt=%.2f, quantity=%f", sizing.PriceDistance, sizing.MaxRisk, sizing.Quantity)

	positionAmount, err := retry.QueryPositionAmountUntilSuccessful(ctx, t.clock, t.gateway, signal.Symbol)
	if err != nil {
		return types.TradeOutcomeFailed, errors.Wrapf(err, "can not query %s position", signal.Symbol)
	}

	entryOrder, err := t.executor.Submit(ctx, OrderRequest{
		SubmitOrder: types.SubmitOrder{
			Symbol:   signal.Symbol,
			Side:     signal.Side,
			Type:     signal.OrderType,
			Quantity: sizing.Quantity,
			Price:    signal.Price,
			Market:   *market,
			Tag:      "entry",
		},
		PositionAmount: positionAmount,
	}, deadline)

	if sizing.Quantity == 0 {
		log.Infof("%s order quantity is 0, time to exit", signal.Symbol)
		if err != nil && !errors.Is(err, ErrNothingToFlatten) {
			return types.TradeOutcomeZeroQuantity, err
		}
		return types.TradeOutcomeZeroQuantity, nil
	}

	if err != nil {
		return t.abort(ctx, *market, err)
	}

	t.notifier.Notify(
		"Create New Order for: %s\nSide: %s\nPercentage: %.2f%%\nPrice: %s\nQuantity: %s\nTake Profit: %s\nStop Loss: %s\nOpening Balance: %s\nMax Loss: %s",
		signal.Symbol, signal.Side, signal.Percentage,
		market.FormatPriceCurrency(signal.Price),
		market.FormatQuantity(sizing.Quantity),
		market.FormatPriceCurrency(signal.TakeProfit),
		market.FormatPriceCurrency(signal.StopLoss),
		types.FormatMoney(t.QuoteAsset, balance),
		types.FormatMoney(t.QuoteAsset, sizing.MaxRisk),
		&entryOrder.SubmitOrder,
	)

	filled, err := t.confirmer.ConfirmEntry(ctx, signal.Symbol, entryOrder.OrderID, deadline)
	if err != nil {
		return t.abort(ctx, *market, err)
	}

	if filled.ExecutedQuantity == 0 {
		return t.abort(ctx, *market, errors.Errorf("%s entry order %d has no executed quantity", signal.Symbol, filled.OrderID))
	}

	entryPrice := filled.FillPrice()
	record.FilledQuantity = filled.ExecutedQuantity
	record.EntryPrice = entryPrice

	ladder := NewExitLadder(*market, signal.Direction(),
		filled.ExecutedQuantity, entryPrice, signal.TakeProfit, signal.StopLoss,
		QuantityMultiplier(signal.Strategy, t.HighVolStrategy))

	controller := NewLadderController(t.executor, ladder, LadderOptions{
		PollInterval:       t.PollInterval,
		RungPacing:         t.RungPacing,
		OrderTimeout:       t.ExitOrderTimeout,
		SupervisionTimeout: t.SupervisionTimeout,
		QuoteAsset:         t.QuoteAsset,
	})

	report, err := controller.Run(ctx, balance)
	if report != nil {
		record.EndingBalance = report.EndingBalance
		record.ProfitAndLoss = report.ProfitAndLoss
		record.RealizedProfit = report.RealizedProfit
		record.LadderFills = report.Fills
	}

	if report != nil && report.Unflattened != 0 {
		return types.TradeOutcomeUnflattened, multierr.Append(err,
			errors.Errorf("%s position %s left open", signal.Symbol, market.FormatQuantity(report.Unflattened)))
	}

	if err != nil {
		log.WithError(err).Errorf("%s exit ladder concluded with errors", signal.Symbol)
	}

	return types.TradeOutcomeCompleted, nil
}

// abort is the driver's response to an entry that did not complete: cancel every
// open order, flatten whatever position exists and alert.
func (t *Trader) abort(ctx context.Context, market types.Market, cause error) (types.TradeOutcome, error) {
	outcome := types.TradeOutcomeFailed
	if errors.Is(cause, ErrDeadlineExceeded) {
		outcome = types.TradeOutcomeTimeout
		t.notifier.Notify("Order Limit Timeout: Exceeded %s", t.EntryTimeout)
	} else {
		t.notifier.Notify("Could not open %s position: %v", market.Symbol, cause)
	}

	errs := cause

	log.Infof("cancelling all open orders for %s", market.Symbol)
	if err := retry.CancelAllOpenOrdersUntilSuccessful(ctx, t.clock, t.gateway, market.Symbol); err != nil {
		errs = multierr.Append(errs, err)
	}

	amount, err := retry.QueryPositionAmountUntilSuccessful(ctx, t.clock, t.gateway, market.Symbol)
	if err != nil {
		return outcome, multierr.Append(errs, err)
	}

	var deadline time.Time
	if t.ExitOrderTimeout > 0 {
		deadline = t.clock.Now().Add(t.ExitOrderTimeout)
	}

	if _, err := t.executor.Flatten(ctx, market, amount, deadline, "abort"); err != nil && !errors.Is(err, ErrNothingToFlatten) {
		errs = multierr.Append(errs, err)
	}

	return outcome, errs
}
