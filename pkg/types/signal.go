package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Signal is one external trade instruction. It is immutable once parsed.
type Signal struct {
	OrderType  OrderType `json:"type"`
	Symbol     string    `json:"symbol"`
	Side       SideType  `json:"side"`
	Price      float64   `json:"price"`
	TakeProfit float64   `json:"takeProfit"`
	StopLoss   float64   `json:"stopLoss"`
	Percentage float64   `json:"percentage"`
	Strategy   string    `json:"strategy"`
}

var requiredSignalKeys = []string{
	"type", "symbol", "side", "price", "take_profit", "stop_loss", "percentage", "strategy",
}

// ParseSignal converts the text-valued payload of the signal front end into a Signal.
// Numeric fields arrive as text and are parsed as float64.
func ParseSignal(data map[string]string) (*Signal, error) {
	for _, k := range requiredSignalKeys {
		if _, ok := data[k]; !ok {
			return nil, fmt.Errorf("signal: missing required key %q", k)
		}
	}

	side, err := ParseSideType(data["side"])
	if err != nil {
		return nil, errors.Wrap(err, "signal")
	}

	s := &Signal{
		OrderType: OrderType(strings.ToUpper(strings.TrimSpace(data["type"]))),
		Symbol:    strings.ToUpper(strings.TrimSpace(data["symbol"])),
		Side:      side,
		Strategy:  strings.TrimSpace(data["strategy"]),
	}

	fields := []struct {
		key string
		dst *float64
	}{
		{"price", &s.Price},
		{"take_profit", &s.TakeProfit},
		{"stop_loss", &s.StopLoss},
		{"percentage", &s.Percentage},
	}

	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(data[f.key]), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "signal: can not parse %s %q", f.key, data[f.key])
		}
		*f.dst = v
	}

	if len(s.Symbol) == 0 {
		return nil, errors.New("signal: empty symbol")
	}

	return s, nil
}

func (s Signal) Direction() Direction {
	return DirectionFromSide(s.Side)
}

func (s Signal) String() string {
	return fmt.Sprintf("Signal %s %s %s price=%f tp=%f sl=%f pct=%f strategy=%s",
		s.Symbol, s.OrderType, s.Side, s.Price, s.TakeProfit, s.StopLoss, s.Percentage, s.Strategy)
}
