package types

import (
	"fmt"
	"strings"
)

// SideType define side type of order
type SideType string

const (
	SideTypeBuy  = SideType("BUY")
	SideTypeSell = SideType("SELL")
)

func (side SideType) Reverse() SideType {
	switch side {
	case SideTypeBuy:
		return SideTypeSell

	case SideTypeSell:
		return SideTypeBuy
	}

	return side
}

func (side SideType) Color() string {
	if side == SideTypeBuy {
		return Green
	}

	if side == SideTypeSell {
		return Red
	}

	return "#f0f0f0"
}

func SideToColorName(side SideType) string {
	return side.Color()
}

// ParseSideType accepts the exchange tokens (BUY/SELL) and the signal aliases (long/short).
func ParseSideType(s string) (SideType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY", "LONG":
		return SideTypeBuy, nil
	case "SELL", "SHORT":
		return SideTypeSell, nil
	}

	return "", fmt.Errorf("unknown side type: %q", s)
}

// Direction is the sign multiplier of a position: +1 for long, -1 for short.
// All price deltas of the exit ladder are multiplied by it so that one algorithm
// serves both sides.
type Direction int

const (
	DirectionLong  Direction = 1
	DirectionShort Direction = -1
)

func DirectionFromSide(side SideType) Direction {
	if side == SideTypeSell {
		return DirectionShort
	}
	return DirectionLong
}

// DirectionFromAmount returns the direction of a signed position amount.
// Zero amounts are reported as long; callers check for flatness first.
func DirectionFromAmount(amount float64) Direction {
	if amount < 0 {
		return DirectionShort
	}
	return DirectionLong
}

// EntrySide is the order side that opens a position in this direction.
func (d Direction) EntrySide() SideType {
	if d == DirectionShort {
		return SideTypeSell
	}
	return SideTypeBuy
}

// CloseSide is the side of the protective and take-profit orders.
func (d Direction) CloseSide() SideType {
	return d.EntrySide().Reverse()
}

// Shift moves price by delta in the favorable direction of the position.
func (d Direction) Shift(price, delta float64) float64 {
	return price + float64(d)*delta
}

// IsMoreFavorable reports whether stop price a locks in more profit than b.
func (d Direction) IsMoreFavorable(a, b float64) bool {
	if d == DirectionShort {
		return a < b
	}
	return a > b
}

func (d Direction) String() string {
	if d == DirectionShort {
		return "short"
	}
	return "long"
}
