package binance

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/adshao/go-binance/v2/common"
	"github.com/adshao/go-binance/v2/futures"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/ladderbot/ladderbot/pkg/types"
)

const (
	clientOrderIDPrefix = "ldr-"

	futuresTestnetBaseURL = "https://testnet.binancefuture.com"
)

var log = logrus.WithFields(logrus.Fields{
	"exchange": "binance",
})

// default limiter, binance futures allows 2400 request weight per minute
var defaultRequestLimiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 10)

func init() {
	_ = types.FuturesGateway(&Exchange{})
}

type Option func(e *Exchange)

// WithRequestLimiter replaces the default request limiter.
func WithRequestLimiter(limiter *rate.Limiter) Option {
	return func(e *Exchange) {
		e.limiter = limiter
	}
}

// WithTestnet points the client at the futures testnet.
func WithTestnet() Option {
	return func(e *Exchange) {
		e.Client.BaseURL = futuresTestnetBaseURL
	}
}

// Exchange is the USDⓈ-M futures gateway.
type Exchange struct {
	Client *futures.Client

	limiter *rate.Limiter

	marketsMu sync.Mutex
	markets   types.MarketMap
}

func New(key, secret string, options ...Option) *Exchange {
	ex := &Exchange{
		Client:  futures.NewClient(key, secret),
		limiter: defaultRequestLimiter,
	}

	for _, o := range options {
		o(ex)
	}

	return ex
}

func (e *Exchange) wait(ctx context.Context) error {
	if err := e.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "binance: request limiter wait error")
	}
	return nil
}

// IsAPIError reports whether the error was classified by the exchange.
func IsAPIError(err error) bool {
	var apiErr *common.APIError
	return errors.As(err, &apiErr)
}

func newClientOrderID(clientOrderID string) string {
	if len(clientOrderID) > 0 {
		return clientOrderID
	}

	return clientOrderIDPrefix + strings.ReplaceAll(uuid.New().String(), "-", "")
}

func (e *Exchange) SubmitOrder(ctx context.Context, order types.SubmitOrder) (*types.Order, error) {
	orderType, err := toLocalFuturesOrderType(order.Type)
	if err != nil {
		return nil, err
	}

	if err := e.wait(ctx); err != nil {
		return nil, err
	}

	req := e.Client.NewCreateOrderService().
		Symbol(order.Symbol).
		Side(toLocalFuturesSideType(order.Side)).
		Type(orderType).
		NewClientOrderID(newClientOrderID(order.ClientOrderID))

	// binance rejects quantity and reduceOnly on close-position orders
	if order.ClosePosition {
		req.ClosePosition(true)
	} else {
		req.Quantity(order.Market.FormatQuantity(order.Quantity))
		if order.ReduceOnly {
			req.ReduceOnly(true)
		}
	}

	if order.Type == types.OrderTypeLimit {
		req.Price(order.Market.FormatPrice(order.Price))

		timeInForce := order.TimeInForce
		if len(timeInForce) == 0 {
			timeInForce = types.TimeInForceGTC
		}
		req.TimeInForce(futures.TimeInForceType(timeInForce))
	}

	if order.StopPrice > 0 {
		req.StopPrice(order.Market.FormatPrice(order.StopPrice))
	}

	response, err := req.Do(ctx)
	if err != nil {
		return nil, err
	}

	log.Debugf("futures order creation response: %+v", response)

	createdOrder := toGlobalFuturesCreateOrderResponse(response)
	createdOrder.Market = order.Market
	createdOrder.Tag = order.Tag
	return createdOrder, nil
}

func (e *Exchange) CancelOrder(ctx context.Context, symbol string, orderID int64) error {
	if err := e.wait(ctx); err != nil {
		return err
	}

	_, err := e.Client.NewCancelOrderService().Symbol(symbol).OrderID(orderID).Do(ctx)
	return err
}

func (e *Exchange) CancelAllOpenOrders(ctx context.Context, symbol string) error {
	if err := e.wait(ctx); err != nil {
		return err
	}

	return e.Client.NewCancelAllOpenOrdersService().Symbol(symbol).Do(ctx)
}

func (e *Exchange) QueryOrder(ctx context.Context, symbol string, orderID int64) (*types.Order, error) {
	if err := e.wait(ctx); err != nil {
		return nil, err
	}

	order, err := e.Client.NewGetOrderService().Symbol(symbol).OrderID(orderID).Do(ctx)
	if err != nil {
		return nil, err
	}

	return toGlobalFuturesOrder(order)
}

func (e *Exchange) QueryOpenOrders(ctx context.Context, symbol string) ([]types.Order, error) {
	if err := e.wait(ctx); err != nil {
		return nil, err
	}

	orders, err := e.Client.NewListOpenOrdersService().Symbol(symbol).Do(ctx)
	if err != nil {
		return nil, err
	}

	return toGlobalFuturesOrders(orders)
}

func (e *Exchange) QueryAccountBalances(ctx context.Context) (types.BalanceSlice, error) {
	if err := e.wait(ctx); err != nil {
		return nil, err
	}

	balances, err := e.Client.NewGetBalanceService().Do(ctx)
	if err != nil {
		return nil, err
	}

	return toGlobalFuturesBalances(balances)
}

func (e *Exchange) QueryPositions(ctx context.Context, symbol string) (types.PositionSlice, error) {
	if err := e.wait(ctx); err != nil {
		return nil, err
	}

	risks, err := e.Client.NewGetPositionRiskService().Symbol(symbol).Do(ctx)
	if err != nil {
		return nil, err
	}

	return toGlobalFuturesPositions(risks)
}

// QueryMarket returns the precision of the symbol. Exchange info is fetched once
// and cached for the lifetime of the gateway.
func (e *Exchange) QueryMarket(ctx context.Context, symbol string) (*types.Market, error) {
	e.marketsMu.Lock()
	defer e.marketsMu.Unlock()

	if e.markets == nil {
		markets, err := e.queryMarkets(ctx)
		if err != nil {
			return nil, err
		}
		e.markets = markets
	}

	market, ok := e.markets[symbol]
	if !ok {
		return nil, fmt.Errorf("binance: market %s not found", symbol)
	}

	return &market, nil
}

func (e *Exchange) queryMarkets(ctx context.Context) (types.MarketMap, error) {
	log.Info("querying futures market info...")

	if err := e.wait(ctx); err != nil {
		return nil, err
	}

	exchangeInfo, err := e.Client.NewExchangeInfoService().Do(ctx)
	if err != nil {
		return nil, err
	}

	return toGlobalFuturesMarkets(exchangeInfo.Symbols), nil
}
