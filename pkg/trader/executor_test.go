package trader

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ladderbot/ladderbot/pkg/types"
)

func TestOrderExecutor_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("limit order", func(t *testing.T) {
		executor, gw, clk, _ := newTestExecutor(t)

		gw.EXPECT().SubmitOrder(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, o types.SubmitOrder) (*types.Order, error) {
			assert.Equal(t, types.OrderTypeLimit, o.Type)
			assert.Equal(t, types.TimeInForceGTC, o.TimeInForce)
			assert.Equal(t, 12.34, o.Quantity)
			assert.Equal(t, 100.13, o.Price)
			assert.False(t, o.ReduceOnly)
			return &types.Order{SubmitOrder: o, OrderID: 1, Status: types.OrderStatusNew}, nil
		})

		order, err := executor.Submit(ctx, OrderRequest{
			SubmitOrder: types.SubmitOrder{
				Symbol:   "SOLUSDT",
				Side:     types.SideTypeBuy,
				Type:     types.OrderTypeLimit,
				Quantity: 12.3456,
				Price:    100.125,
				Market:   testMarket,
			},
		}, clk.Now().Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, int64(1), order.OrderID)
		assert.Empty(t, clk.Sleeps())
	})

	t.Run("take profit is reduce-only, stop closes the position", func(t *testing.T) {
		executor, gw, clk, _ := newTestExecutor(t)

		gomock.InOrder(
			gw.EXPECT().SubmitOrder(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, o types.SubmitOrder) (*types.Order, error) {
				assert.True(t, o.ReduceOnly)
				assert.False(t, o.ClosePosition)
				assert.Equal(t, 110.0, o.StopPrice)
				return &types.Order{SubmitOrder: o, OrderID: 2}, nil
			}),
			gw.EXPECT().SubmitOrder(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, o types.SubmitOrder) (*types.Order, error) {
				assert.True(t, o.ClosePosition)
				assert.False(t, o.ReduceOnly)
				assert.Equal(t, 0.0, o.Quantity)
				assert.Equal(t, 95.0, o.StopPrice)
				return &types.Order{SubmitOrder: o, OrderID: 3}, nil
			}),
		)

		_, err := executor.Submit(ctx, OrderRequest{SubmitOrder: types.SubmitOrder{
			Symbol: "SOLUSDT", Side: types.SideTypeSell, Type: types.OrderTypeTakeProfitMarket,
			Quantity: 100, StopPrice: 110, Market: testMarket,
		}}, clk.Now().Add(time.Minute))
		require.NoError(t, err)

		// a stop carries no quantity, so it never takes the zero-quantity path
		_, err = executor.Submit(ctx, OrderRequest{SubmitOrder: types.SubmitOrder{
			Symbol: "SOLUSDT", Side: types.SideTypeSell, Type: types.OrderTypeStopMarket,
			StopPrice: 95, Market: testMarket,
		}}, clk.Now().Add(time.Minute))
		require.NoError(t, err)
	})

	t.Run("retries and flattens on every gateway error", func(t *testing.T) {
		executor, gw, clk, n := newTestExecutor(t)

		var flattens []types.SubmitOrder
		attempts := 0
		gw.EXPECT().SubmitOrder(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, o types.SubmitOrder) (*types.Order, error) {
			if o.Type == types.OrderTypeMarket {
				flattens = append(flattens, o)
				return &types.Order{SubmitOrder: o, Status: types.OrderStatusFilled}, nil
			}

			attempts++
			if attempts < 3 {
				return nil, errors.New("connection reset")
			}
			return &types.Order{SubmitOrder: o, OrderID: 9}, nil
		}).Times(5)

		order, err := executor.Submit(ctx, OrderRequest{
			SubmitOrder: types.SubmitOrder{
				Symbol: "SOLUSDT", Side: types.SideTypeSell, Type: types.OrderTypeTakeProfitMarket,
				Quantity: 50, StopPrice: 115, Market: testMarket,
			},
			PositionAmount: 150,
		}, clk.Now().Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, int64(9), order.OrderID)

		assert.Equal(t, 3, attempts)
		require.Len(t, flattens, 2)
		for _, f := range flattens {
			assert.Equal(t, types.SideTypeSell, f.Side)
			assert.Equal(t, 150.0, f.Quantity)
			assert.True(t, f.ReduceOnly)
		}
		assert.Equal(t, []time.Duration{time.Second, time.Second}, clk.Sleeps())
		assert.Len(t, n.Messages(), 2)
	})

	t.Run("past deadline makes no gateway call", func(t *testing.T) {
		executor, _, clk, _ := newTestExecutor(t)

		_, err := executor.Submit(ctx, OrderRequest{SubmitOrder: types.SubmitOrder{
			Symbol: "SOLUSDT", Side: types.SideTypeBuy, Type: types.OrderTypeLimit,
			Quantity: 1, Price: 100, Market: testMarket,
		}}, clk.Now().Add(-time.Second))
		assert.ErrorIs(t, err, ErrDeadlineExceeded)
	})

	t.Run("deadline reached while retrying", func(t *testing.T) {
		executor, gw, clk, _ := newTestExecutor(t)

		gw.EXPECT().SubmitOrder(ctx, gomock.Any()).Return(nil, errors.New("rejected")).Times(3)

		_, err := executor.Submit(ctx, OrderRequest{SubmitOrder: types.SubmitOrder{
			Symbol: "SOLUSDT", Side: types.SideTypeBuy, Type: types.OrderTypeLimit,
			Quantity: 1, Price: 100, Market: testMarket,
		}}, clk.Now().Add(3*time.Second))
		assert.ErrorIs(t, err, ErrDeadlineExceeded)
	})

	t.Run("zero quantity flattens instead", func(t *testing.T) {
		executor, gw, clk, _ := newTestExecutor(t)

		gw.EXPECT().SubmitOrder(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, o types.SubmitOrder) (*types.Order, error) {
			assert.Equal(t, types.OrderTypeMarket, o.Type)
			assert.Equal(t, types.SideTypeBuy, o.Side)
			assert.Equal(t, 3.0, o.Quantity)
			assert.True(t, o.ReduceOnly)
			return &types.Order{SubmitOrder: o, OrderID: 5, Status: types.OrderStatusFilled}, nil
		})

		order, err := executor.Submit(ctx, OrderRequest{
			SubmitOrder: types.SubmitOrder{
				Symbol: "SOLUSDT", Side: types.SideTypeBuy, Type: types.OrderTypeLimit,
				Quantity: 0.004, Price: 100, Market: testMarket,
			},
			PositionAmount: -3,
		}, clk.Now().Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, types.OrderTypeMarket, order.Type)
	})

	t.Run("zero quantity without a position", func(t *testing.T) {
		executor, _, clk, _ := newTestExecutor(t)

		_, err := executor.Submit(ctx, OrderRequest{SubmitOrder: types.SubmitOrder{
			Symbol: "SOLUSDT", Side: types.SideTypeBuy, Type: types.OrderTypeTakeProfitMarket,
			Quantity: 0, StopPrice: 100, Market: testMarket,
		}}, clk.Now().Add(time.Minute))
		assert.ErrorIs(t, err, ErrNothingToFlatten)
	})

	t.Run("unrecognized type cancels all open orders", func(t *testing.T) {
		executor, gw, clk, _ := newTestExecutor(t)

		gomock.InOrder(
			gw.EXPECT().CancelAllOpenOrders(ctx, "SOLUSDT").Return(errors.New("timeout")),
			gw.EXPECT().CancelAllOpenOrders(ctx, "SOLUSDT").Return(nil),
		)

		order, err := executor.Submit(ctx, OrderRequest{SubmitOrder: types.SubmitOrder{
			Symbol: "SOLUSDT", Type: types.OrderType("TRAILING"), Quantity: 1, Market: testMarket,
		}}, clk.Now().Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, types.OrderTypeCancelAll, order.Type)
		assert.Equal(t, types.OrderStatusCanceled, order.Status)
	})
}

func TestOrderExecutor_Flatten(t *testing.T) {
	ctx := context.Background()
	executor, gw, clk, _ := newTestExecutor(t)

	gomock.InOrder(
		gw.EXPECT().SubmitOrder(ctx, gomock.Any()).Return(nil, errors.New("timeout")),
		gw.EXPECT().SubmitOrder(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, o types.SubmitOrder) (*types.Order, error) {
			assert.Equal(t, types.SideTypeSell, o.Side)
			assert.Equal(t, 0.3, o.Quantity)
			return &types.Order{SubmitOrder: o, Status: types.OrderStatusFilled}, nil
		}),
	)

	_, err := executor.Flatten(ctx, testMarket, 0.305, time.Time{}, "failsafe")
	assert.NoError(t, err)
	assert.Equal(t, []time.Duration{time.Second}, clk.Sleeps())

	_, err = executor.Flatten(ctx, testMarket, 0.001, time.Time{}, "failsafe")
	assert.ErrorIs(t, err, ErrNothingToFlatten)
}
