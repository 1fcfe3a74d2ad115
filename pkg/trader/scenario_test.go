package trader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/ladderbot/ladderbot/pkg/clock"
	"github.com/ladderbot/ladderbot/pkg/types"
	"github.com/ladderbot/ladderbot/pkg/types/mocks"
)

var testMarket = types.Market{
	Symbol:          "SOLUSDT",
	PricePrecision:  2,
	VolumePrecision: 2,
	QuoteCurrency:   "USDT",
	BaseCurrency:    "SOL",
}

var testStartTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingNotifier) Notify(obj interface{}, args ...interface{}) {
	var textArgs []interface{}
	for _, arg := range args {
		if _, ok := arg.(types.SlackAttachmentCreator); ok {
			break
		}
		textArgs = append(textArgs, arg)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, fmt.Sprintf(obj.(string), textArgs...))
}

func (r *recordingNotifier) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

// exchangeScenario is an in-memory futures exchange behind the gomock gateway.
type exchangeScenario struct {
	mu sync.Mutex

	nextOrderID int64
	orders      map[int64]*types.Order

	submitted      []types.SubmitOrder
	canceled       []int64
	cancelAllCalls int

	market   types.Market
	balance  float64
	position float64

	positionQueries int

	// liveStops counts uncanceled stop-loss orders, maxLiveStops is its high-water mark.
	liveStops    int
	maxLiveStops int

	// onSubmit may reject or fill an order before it is stored.
	onSubmit func(s *exchangeScenario, order *types.Order) error

	// onPositionQuery runs before the n-th position query is answered.
	onPositionQuery func(s *exchangeScenario, n int)

	cancelOrderErr error
}

func newExchangeScenario() *exchangeScenario {
	return &exchangeScenario{
		nextOrderID: 1000,
		orders:      map[int64]*types.Order{},
		market:      testMarket,
		balance:     10000,
	}
}

func (s *exchangeScenario) install(gw *mocks.MockFuturesGateway) {
	gw.EXPECT().SubmitOrder(gomock.Any(), gomock.Any()).DoAndReturn(s.submitOrder).AnyTimes()
	gw.EXPECT().CancelOrder(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(s.cancelOrder).AnyTimes()
	gw.EXPECT().CancelAllOpenOrders(gomock.Any(), gomock.Any()).DoAndReturn(s.cancelAllOpenOrders).AnyTimes()
	gw.EXPECT().QueryOrder(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(s.queryOrder).AnyTimes()
	gw.EXPECT().QueryPositions(gomock.Any(), gomock.Any()).DoAndReturn(s.queryPositions).AnyTimes()
	gw.EXPECT().QueryAccountBalances(gomock.Any()).DoAndReturn(s.queryAccountBalances).AnyTimes()
	gw.EXPECT().QueryMarket(gomock.Any(), gomock.Any()).DoAndReturn(s.queryMarket).AnyTimes()
}

// rejectMarketOrders makes the exchange refuse every MARKET order.
func rejectMarketOrders(_ *exchangeScenario, order *types.Order) error {
	if order.Type == types.OrderTypeMarket {
		return errors.New("market orders are suspended")
	}
	return nil
}

func (s *exchangeScenario) submitOrder(_ context.Context, submitOrder types.SubmitOrder) (*types.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextOrderID++
	order := &types.Order{
		SubmitOrder: submitOrder,
		OrderID:     s.nextOrderID,
		Status:      types.OrderStatusNew,
	}

	if s.onSubmit != nil {
		if err := s.onSubmit(s, order); err != nil {
			return nil, err
		}
	}

	if submitOrder.Type == types.OrderTypeMarket && submitOrder.ReduceOnly {
		if s.position == 0 || types.DirectionFromAmount(s.position).CloseSide() != submitOrder.Side {
			return nil, fmt.Errorf("reduce-only order is rejected")
		}

		if submitOrder.Quantity > abs(s.position) {
			submitOrder.Quantity = abs(s.position)
			order.Quantity = submitOrder.Quantity
		}
	}

	s.submitted = append(s.submitted, submitOrder)
	s.orders[order.OrderID] = order

	if submitOrder.Type == types.OrderTypeMarket && order.Status == types.OrderStatusNew {
		order.Status = types.OrderStatusFilled
		order.ExecutedQuantity = submitOrder.Quantity
		order.AveragePrice = submitOrder.Price

		delta := submitOrder.Quantity
		if submitOrder.Side == types.SideTypeSell {
			delta = -delta
		}
		s.position += delta
	}

	if submitOrder.Type == types.OrderTypeStopMarket {
		s.liveStops++
		if s.liveStops > s.maxLiveStops {
			s.maxLiveStops = s.liveStops
		}
	}

	o := *order
	return &o, nil
}

func (s *exchangeScenario) cancelOrder(_ context.Context, _ string, orderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelOrderErr != nil {
		return s.cancelOrderErr
	}

	order, ok := s.orders[orderID]
	if !ok {
		return fmt.Errorf("unknown order %d", orderID)
	}

	if order.Type == types.OrderTypeStopMarket && order.Status == types.OrderStatusNew {
		s.liveStops--
	}

	order.Status = types.OrderStatusCanceled
	s.canceled = append(s.canceled, orderID)
	return nil
}

func (s *exchangeScenario) cancelAllOpenOrders(_ context.Context, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelAllCalls++
	for _, order := range s.orders {
		if order.Status == types.OrderStatusNew || order.Status == types.OrderStatusPartiallyFilled {
			order.Status = types.OrderStatusCanceled
		}
	}
	s.liveStops = 0
	return nil
}

func (s *exchangeScenario) queryOrder(_ context.Context, _ string, orderID int64) (*types.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("unknown order %d", orderID)
	}

	o := *order
	return &o, nil
}

func (s *exchangeScenario) queryPositions(_ context.Context, symbol string) (types.PositionSlice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.positionQueries++
	if s.onPositionQuery != nil {
		s.onPositionQuery(s, s.positionQueries)
	}

	return types.PositionSlice{{Symbol: symbol, PositionAmount: s.position}}, nil
}

func (s *exchangeScenario) queryAccountBalances(_ context.Context) (types.BalanceSlice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return types.BalanceSlice{{Asset: "USDT", Balance: s.balance}}, nil
}

func (s *exchangeScenario) queryMarket(_ context.Context, _ string) (*types.Market, error) {
	m := s.market
	return &m, nil
}

// fill marks the order filled at the price; the caller holds the lock.
func (s *exchangeScenario) fill(orderID int64, price float64) {
	order := s.orders[orderID]
	order.Status = types.OrderStatusFilled
	order.ExecutedQuantity = order.Quantity
	order.AveragePrice = price
}

// ordersOfType returns the submitted orders of the type; the caller holds the lock.
func (s *exchangeScenario) ordersOfType(orderType types.OrderType) (orders []*types.Order) {
	for id := int64(1001); id <= s.nextOrderID; id++ {
		if o, ok := s.orders[id]; ok && o.Type == orderType {
			orders = append(orders, o)
		}
	}
	return orders
}

func (s *exchangeScenario) Submitted() []types.SubmitOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.SubmitOrder(nil), s.submitted...)
}

func newTestExecutor(t *testing.T) (*OrderExecutor, *mocks.MockFuturesGateway, *clock.Fake, *recordingNotifier) {
	mockCtrl := gomock.NewController(t)
	gw := mocks.NewMockFuturesGateway(mockCtrl)
	clk := clock.NewFake(testStartTime)
	n := &recordingNotifier{}

	return &OrderExecutor{
		Gateway:       gw,
		Clock:         clk,
		Notifier:      n,
		RetryInterval: time.Second,
	}, gw, clk, n
}
