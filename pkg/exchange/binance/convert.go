package binance

import (
	"fmt"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/pkg/errors"

	"github.com/ladderbot/ladderbot/pkg/types"
)

func toLocalFuturesOrderType(orderType types.OrderType) (futures.OrderType, error) {
	switch orderType {

	case types.OrderTypeLimit:
		return futures.OrderTypeLimit, nil

	case types.OrderTypeStopMarket:
		return futures.OrderTypeStopMarket, nil

	case types.OrderTypeMarket:
		return futures.OrderTypeMarket, nil

	case types.OrderTypeTakeProfitMarket:
		return futures.OrderTypeTakeProfitMarket, nil
	}

	return "", fmt.Errorf("can not convert to local order, order type %s not supported", orderType)
}

func toGlobalFuturesOrderType(orderType futures.OrderType) types.OrderType {
	switch orderType {
	case futures.OrderTypeLimit:
		return types.OrderTypeLimit

	case futures.OrderTypeMarket:
		return types.OrderTypeMarket

	case futures.OrderTypeStopMarket:
		return types.OrderTypeStopMarket

	case futures.OrderTypeTakeProfitMarket:
		return types.OrderTypeTakeProfitMarket
	}

	return types.OrderType(orderType)
}

func toLocalFuturesSideType(side types.SideType) futures.SideType {
	if side == types.SideTypeSell {
		return futures.SideTypeSell
	}
	return futures.SideTypeBuy
}

func toGlobalFuturesSideType(side futures.SideType) types.SideType {
	if side == futures.SideTypeSell {
		return types.SideTypeSell
	}
	return types.SideTypeBuy
}

func toGlobalFuturesOrderStatus(status futures.OrderStatusType) types.OrderStatus {
	switch status {
	case futures.OrderStatusTypeNew:
		return types.OrderStatusNew

	case futures.OrderStatusTypePartiallyFilled:
		return types.OrderStatusPartiallyFilled

	case futures.OrderStatusTypeFilled:
		return types.OrderStatusFilled

	case futures.OrderStatusTypeCanceled:
		return types.OrderStatusCanceled

	case futures.OrderStatusTypeRejected:
		return types.OrderStatusRejected

	case futures.OrderStatusTypeExpired:
		return types.OrderStatusExpired
	}

	return types.OrderStatus(status)
}

// parseFloat accepts the empty string as zero, binance leaves unset numeric fields empty.
func parseFloat(s string) (float64, error) {
	if len(s) == 0 {
		return 0, nil
	}

	return strconv.ParseFloat(s, 64)
}

func mustParseFloat(s string) float64 {
	f, err := parseFloat(s)
	if err != nil {
		log.WithError(err).Warnf("can not parse float %q", s)
	}
	return f
}

func millisecondTime(t int64) time.Time {
	return time.Unix(0, t*int64(time.Millisecond))
}

func toGlobalFuturesOrders(futuresOrders []*futures.Order) (orders []types.Order, err error) {
	for _, futuresOrder := range futuresOrders {
		order, err := toGlobalFuturesOrder(futuresOrder)
		if err != nil {
			return orders, err
		}

		orders = append(orders, *order)
	}

	return orders, err
}

func toGlobalFuturesOrder(futuresOrder *futures.Order) (*types.Order, error) {
	if futuresOrder == nil {
		return nil, errors.New("binance: nil futures order")
	}

	return &types.Order{
		SubmitOrder: types.SubmitOrder{
			ClientOrderID: futuresOrder.ClientOrderID,
			Symbol:        futuresOrder.Symbol,
			Side:          toGlobalFuturesSideType(futuresOrder.Side),
			Type:          toGlobalFuturesOrderType(futuresOrder.Type),
			ReduceOnly:    futuresOrder.ReduceOnly,
			ClosePosition: futuresOrder.ClosePosition,
			Quantity:      mustParseFloat(futuresOrder.OrigQuantity),
			StopPrice:     mustParseFloat(futuresOrder.StopPrice),
			Price:         mustParseFloat(futuresOrder.Price),
			TimeInForce:   string(futuresOrder.TimeInForce),
		},
		OrderID:          futuresOrder.OrderID,
		Status:           toGlobalFuturesOrderStatus(futuresOrder.Status),
		ExecutedQuantity: mustParseFloat(futuresOrder.ExecutedQuantity),
		AveragePrice:     mustParseFloat(futuresOrder.AvgPrice),
		CreationTime:     millisecondTime(futuresOrder.Time),
		UpdateTime:       millisecondTime(futuresOrder.UpdateTime),
	}, nil
}

func toGlobalFuturesCreateOrderResponse(response *futures.CreateOrderResponse) *types.Order {
	return &types.Order{
		SubmitOrder: types.SubmitOrder{
			ClientOrderID: response.ClientOrderID,
			Symbol:        response.Symbol,
			Side:          toGlobalFuturesSideType(response.Side),
			Type:          toGlobalFuturesOrderType(response.Type),
			ReduceOnly:    response.ReduceOnly,
			ClosePosition: response.ClosePosition,
			Quantity:      mustParseFloat(response.OrigQuantity),
			StopPrice:     mustParseFloat(response.StopPrice),
			Price:         mustParseFloat(response.Price),
			TimeInForce:   string(response.TimeInForce),
		},
		OrderID:          response.OrderID,
		Status:           toGlobalFuturesOrderStatus(response.Status),
		ExecutedQuantity: mustParseFloat(response.ExecutedQuantity),
		AveragePrice:     mustParseFloat(response.AvgPrice),
		UpdateTime:       millisecondTime(response.UpdateTime),
	}
}

func toGlobalFuturesBalances(balances []*futures.Balance) (types.BalanceSlice, error) {
	var retBalances types.BalanceSlice
	for _, b := range balances {
		balance, err := parseFloat(b.Balance)
		if err != nil {
			return nil, errors.Wrapf(err, "can not parse %s balance", b.Asset)
		}

		retBalances = append(retBalances, types.Balance{
			Asset:              b.Asset,
			Balance:            balance,
			CrossWalletBalance: mustParseFloat(b.CrossWalletBalance),
			AvailableBalance:   mustParseFloat(b.AvailableBalance),
		})
	}

	return retBalances, nil
}

func toGlobalFuturesPositions(risks []*futures.PositionRisk) (types.PositionSlice, error) {
	var positions types.PositionSlice
	for _, risk := range risks {
		amount, err := parseFloat(risk.PositionAmt)
		if err != nil {
			return nil, errors.Wrapf(err, "can not parse %s position amount", risk.Symbol)
		}

		positions = append(positions, types.Position{
			Symbol:         risk.Symbol,
			PositionAmount: amount,
			EntryPrice:     mustParseFloat(risk.EntryPrice),
			UnrealizedPnL:  mustParseFloat(risk.UnRealizedProfit),
		})
	}

	return positions, nil
}

func toGlobalFuturesMarkets(symbols []futures.Symbol) types.MarketMap {
	markets := types.MarketMap{}
	for _, symbol := range symbols {
		markets[symbol.Symbol] = types.Market{
			Symbol:          symbol.Symbol,
			PricePrecision:  symbol.PricePrecision,
			VolumePrecision: symbol.QuantityPrecision,
			QuoteCurrency:   symbol.QuoteAsset,
			BaseCurrency:    symbol.BaseAsset,
		}
	}

	return markets
}
