package types

import "time"

type TradeOutcome string

const (
	TradeOutcomeCompleted    TradeOutcome = "completed"
	TradeOutcomeTimeout      TradeOutcome = "timeout"
	TradeOutcomeZeroQuantity TradeOutcome = "zero_quantity"
	TradeOutcomeRejected     TradeOutcome = "rejected"
	TradeOutcomeFailed       TradeOutcome = "failed"

	// TradeOutcomeUnflattened means the ladder ended with a position the failsafe could not close.
	TradeOutcomeUnflattened TradeOutcome = "unflattened"
)

// TradeRecord is the journal row of one ExecuteTrade call.
type TradeRecord struct {
	ID string `json:"id" db:"id"`

	Symbol    string    `json:"symbol" db:"symbol"`
	Side      SideType  `json:"side" db:"side"`
	OrderType OrderType `json:"orderType" db:"order_type"`
	Strategy  string    `json:"strategy" db:"strategy"`

	Quantity       float64 `json:"quantity" db:"quantity"`
	FilledQuantity float64 `json:"filledQuantity" db:"filled_quantity"`
	EntryPrice     float64 `json:"entryPrice" db:"entry_price"`
	TakeProfit     float64 `json:"takeProfit" db:"take_profit"`
	StopLoss       float64 `json:"stopLoss" db:"stop_loss"`

	OpeningBalance float64 `json:"openingBalance" db:"opening_balance"`
	EndingBalance  float64 `json:"endingBalance" db:"ending_balance"`
	ProfitAndLoss  float64 `json:"profitAndLoss" db:"profit_and_loss"`

	// RealizedProfit is the sum of the take-profit rung profits.
	RealizedProfit float64 `json:"realizedProfit" db:"realized_profit"`
	LadderFills    int     `json:"ladderFills" db:"ladder_fills"`

	Outcome TradeOutcome `json:"outcome" db:"outcome"`

	StartedAt time.Time `json:"startedAt" db:"started_at"`
	EndedAt   time.Time `json:"endedAt" db:"ended_at"`
}
