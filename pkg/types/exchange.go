package types

import "context"

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks . FuturesGateway

// FuturesGateway is the capability set of the remote derivatives exchange.
// Every call may fail with an exchange-classified error or an unclassified
// error; callers treat both the same way.
type FuturesGateway interface {
	SubmitOrder(ctx context.Context, order SubmitOrder) (*Order, error)

	CancelOrder(ctx context.Context, symbol string, orderID int64) error

	CancelAllOpenOrders(ctx context.Context, symbol string) error

	QueryOrder(ctx context.Context, symbol string, orderID int64) (*Order, error)

	QueryOpenOrders(ctx context.Context, symbol string) ([]Order, error)

	QueryAccountBalances(ctx context.Context) (BalanceSlice, error)

	QueryPositions(ctx context.Context, symbol string) (PositionSlice, error)

	QueryMarket(ctx context.Context, symbol string) (*Market, error)
}
