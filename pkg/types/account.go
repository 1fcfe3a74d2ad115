package types

import "fmt"

type Balance struct {
	Asset   string  `json:"asset"`
	Balance float64 `json:"balance"`

	CrossWalletBalance float64 `json:"crossWalletBalance,omitempty"`
	AvailableBalance   float64 `json:"availableBalance,omitempty"`
}

func (b Balance) String() string {
	return fmt.Sprintf("%s: %f (available %f)", b.Asset, b.Balance, b.AvailableBalance)
}

type BalanceSlice []Balance

// Find returns the balance of the given asset, zero when the asset is not listed.
func (s BalanceSlice) Find(asset string) (Balance, bool) {
	for _, b := range s {
		if b.Asset == asset {
			return b, true
		}
	}

	return Balance{Asset: asset}, false
}

// Position is the exchange-owned signed quantity of a symbol.
// Positive amounts are long, negative amounts are short.
type Position struct {
	Symbol         string  `json:"symbol"`
	PositionAmount float64 `json:"positionAmount"`
	EntryPrice     float64 `json:"entryPrice,omitempty"`
	UnrealizedPnL  float64 `json:"unrealizedPnL,omitempty"`
}

func (p Position) IsClosed() bool {
	return p.PositionAmount == 0
}

type PositionSlice []Position

// Amount returns the signed position amount of the symbol.
// A symbol that is not listed is flat.
func (s PositionSlice) Amount(symbol string) float64 {
	for _, p := range s {
		if p.Symbol == symbol {
			return p.PositionAmount
		}
	}

	return 0
}
