package retry

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/ladderbot/ladderbot/pkg/clock"
	"github.com/ladderbot/ladderbot/pkg/types"
)

// QueryBalanceUntilSuccessful returns the wallet balance of the asset.
// An asset missing from the account is reported as a zero balance.
func QueryBalanceUntilSuccessful(
	ctx context.Context, clk clock.Clock, ex types.FuturesGateway, asset string,
) (balance float64, err error) {
	var op = func() (err2 error) {
		balances, err2 := ex.QueryAccountBalances(ctx)
		if err2 != nil {
			log.WithError(err2).Errorf("failed to query account balances")
			return err2
		}

		b, ok := balances.Find(asset)
		if !ok {
			log.Warnf("asset %s not found in account balances", asset)
		}

		balance = b.Balance
		return nil
	}

	err = GeneralBackoff(ctx, clk, op)
	return balance, err
}

// QueryPositionAmountUntilSuccessful returns the signed position amount of the symbol.
func QueryPositionAmountUntilSuccessful(
	ctx context.Context, clk clock.Clock, ex types.FuturesGateway, symbol string,
) (amount float64, err error) {
	var op = func() (err2 error) {
		positions, err2 := ex.QueryPositions(ctx, symbol)
		if err2 != nil {
			log.WithError(err2).Errorf("failed to query %s position", symbol)
			return err2
		}

		amount = positions.Amount(symbol)
		return nil
	}

	err = GeneralBackoff(ctx, clk, op)
	return amount, err
}

func QueryMarketUntilSuccessful(
	ctx context.Context, clk clock.Clock, ex types.FuturesGateway, symbol string,
) (market *types.Market, err error) {
	var op = func() (err2 error) {
		market, err2 = ex.QueryMarket(ctx, symbol)
		return err2
	}

	err = GeneralBackoff(ctx, clk, op)
	return market, err
}
