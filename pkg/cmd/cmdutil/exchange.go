package cmdutil

import (
	"github.com/pkg/errors"

	"github.com/ladderbot/ladderbot/pkg/exchange/binance"
	"github.com/ladderbot/ladderbot/pkg/util"
)

// NewExchange builds the futures gateway. rateLimit uses the "10+5/1s" syntax and may be empty.
func NewExchange(key, secret, rateLimit string, testnet bool) (*binance.Exchange, error) {
	if len(key) == 0 || len(secret) == 0 {
		return nil, errors.New("binance: empty key or secret")
	}

	var options []binance.Option
	if rateLimit != "" {
		limiter, err := util.ParseRateLimitSyntax(rateLimit)
		if err != nil {
			return nil, err
		}
		options = append(options, binance.WithRequestLimiter(limiter))
	}

	if testnet {
		options = append(options, binance.WithTestnet())
	}

	return binance.New(key, secret, options...), nil
}
