package trader

import (
	"math"

	"github.com/ladderbot/ladderbot/pkg/types"
)

// Sizing is the result of the position sizer.
type Sizing struct {
	// MaxRisk is the quote amount lost when the stop-loss is hit.
	MaxRisk float64

	PriceDistance float64

	// RawQuantity is MaxRisk / PriceDistance before precision is applied.
	RawQuantity float64

	// Quantity is RawQuantity truncated to the market volume precision. It may be zero.
	Quantity float64
}

// SizePosition converts a risk percentage (0-100) of the balance into an order quantity,
// so that a stop-loss hit loses exactly that share of the balance.
// The quantity is truncated toward zero, never rounded up, and is never negative.
func SizePosition(market types.Market, balance, percentage, entryPrice, stopPrice float64) (Sizing, error) {
	distance := math.Abs(entryPrice - stopPrice)
	if distance == 0 || math.IsNaN(distance) {
		return Sizing{}, ErrZeroStopDistance
	}

	maxRisk := balance * (percentage / 100.0)
	raw := maxRisk / distance
	if raw < 0 || math.IsInf(raw, 0) {
		raw = 0
	}

	return Sizing{
		MaxRisk:       maxRisk,
		PriceDistance: distance,
		RawQuantity:   raw,
		Quantity:      market.TruncateQuantity(raw),
	}, nil
}
