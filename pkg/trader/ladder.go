package trader

import (
	"math"

	"github.com/ladderbot/ladderbot/pkg/types"
)

const (
	// LadderSize is the number of take-profit rungs.
	LadderSize = 5

	// DefaultQuantityMultiplier is the share of the filled quantity the first rung takes.
	DefaultQuantityMultiplier = 0.5

	// HighVolQuantityMultiplier is used for the high-volatility strategy.
	HighVolQuantityMultiplier = 1.0

	rungStepATR = 0.5
)

type Rung struct {
	Quantity    float64
	TargetPrice float64

	// Order is the take-profit order, nil when it was never accepted.
	Order *types.Order
}

type StopLoss struct {
	Price float64

	// Order is the live stop-loss order. There is never more than one.
	Order *types.Order
}

// ExitLadder is the exit plan of one filled entry.
//
// ATR here is the distance between the entry and the initial take-profit price. Rung k
// (1-indexed) targets take_profit + direction * ATR * 0.5 * (k-1) with a quantity of
// filled * multiplier / 2^(k-1).
type ExitLadder struct {
	Market    types.Market
	Direction types.Direction

	EntryPrice     float64
	TargetPrice    float64
	FilledQuantity float64
	ATR            float64

	// InitialStopPrice is the stop the ladder was built with; Stop.Price moves away from it.
	InitialStopPrice float64

	Rungs [LadderSize]Rung
	Stop  StopLoss
}

// NewExitLadder computes the rung prices and quantities. Quantities are truncated to the
// volume precision; a rung that truncates to zero is clamped to one quantity step.
func NewExitLadder(
	market types.Market, direction types.Direction,
	filledQuantity, entryPrice, targetPrice, stopPrice, multiplier float64,
) *ExitLadder {
	ladder := &ExitLadder{
		Market:         market,
		Direction:      direction,
		EntryPrice:     entryPrice,
		TargetPrice:    targetPrice,
		FilledQuantity: filledQuantity,
		ATR:            math.Abs(entryPrice - targetPrice),
	}
	ladder.InitialStopPrice = market.RoundPrice(stopPrice)
	ladder.Stop = StopLoss{Price: ladder.InitialStopPrice}

	for k := range ladder.Rungs {
		quantity := market.TruncateQuantity(filledQuantity * multiplier / math.Pow(2, float64(k)))
		if quantity == 0 {
			quantity = market.QuantityStep()
		}

		ladder.Rungs[k] = Rung{
			Quantity:    quantity,
			TargetPrice: market.RoundPrice(direction.Shift(targetPrice, ladder.ATR*rungStepATR*float64(k))),
		}
	}

	return ladder
}

// Rung returns the rung watched during the given 1-indexed iteration.
func (l *ExitLadder) Rung(iteration int) *Rung {
	if iteration < 1 || iteration > LadderSize {
		return nil
	}
	return &l.Rungs[iteration-1]
}

// RatchetPrice returns the stop price after the rung of the given iteration filled.
//
// The second fill jumps the stop one full ATR from the initial stop price. Every later
// fill moves it to entry + direction * ATR * 0.5 * (iteration-2), recomputed from the
// entry rather than the previous stop. The first fill does not move the stop. Callers
// drop a price that is not more favorable than the live stop.
func (l *ExitLadder) RatchetPrice(iteration int) (float64, bool) {
	switch {
	case iteration == 2:
		return l.Market.RoundPrice(l.Direction.Shift(l.InitialStopPrice, l.ATR)), true

	case iteration >= 3:
		return l.Market.RoundPrice(l.Direction.Shift(l.EntryPrice, l.ATR*rungStepATR*float64(iteration-2))), true
	}

	return 0, false
}

// QuantityMultiplier selects the first rung share for the signal strategy.
func QuantityMultiplier(strategy, highVolStrategy string) float64 {
	if len(highVolStrategy) > 0 && strategy == highVolStrategy {
		return HighVolQuantityMultiplier
	}
	return DefaultQuantityMultiplier
}
