package trader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ladderbot/ladderbot/pkg/types"
)

func TestSizePosition(t *testing.T) {
	market := types.Market{Symbol: "SOLUSDT", PricePrecision: 2, VolumePrecision: 0}

	t.Run("risk scenario", func(t *testing.T) {
		sizing, err := SizePosition(market, 10000, 10, 100, 95)
		require.NoError(t, err)
		assert.Equal(t, 1000.0, sizing.MaxRisk)
		assert.Equal(t, 5.0, sizing.PriceDistance)
		assert.Equal(t, 200.0, sizing.RawQuantity)
		assert.Equal(t, 200.0, sizing.Quantity)
	})

	t.Run("short side uses the absolute distance", func(t *testing.T) {
		sizing, err := SizePosition(market, 10000, 10, 95, 100)
		require.NoError(t, err)
		assert.Equal(t, 200.0, sizing.Quantity)
	})

	t.Run("truncates to the volume precision", func(t *testing.T) {
		btc := types.Market{Symbol: "BTCUSDT", PricePrecision: 1, VolumePrecision: 3}
		sizing, err := SizePosition(btc, 1000, 1, 30000, 29700)
		require.NoError(t, err)
		// 10 / 300 = 0.0333...
		assert.Equal(t, 0.033, sizing.Quantity)

		sizing, err = SizePosition(market, 1000, 1, 30000, 29700)
		require.NoError(t, err)
		assert.Equal(t, 0.0, sizing.Quantity)
	})

	t.Run("zero distance", func(t *testing.T) {
		_, err := SizePosition(market, 10000, 10, 100, 100)
		assert.ErrorIs(t, err, ErrZeroStopDistance)
	})

	t.Run("never negative", func(t *testing.T) {
		sizing, err := SizePosition(market, -500, 10, 100, 95)
		require.NoError(t, err)
		assert.Equal(t, 0.0, sizing.Quantity)
	})

	t.Run("property", func(t *testing.T) {
		cases := []struct{ balance, percentage, entry, stop float64 }{
			{1234.56, 2.5, 57.3, 55.1},
			{50000, 1, 2000, 2100},
			{10, 100, 0.5, 0.45},
		}
		for _, c := range cases {
			sizing, err := SizePosition(market, c.balance, c.percentage, c.entry, c.stop)
			require.NoError(t, err)

			expected := c.balance * c.percentage / 100 / abs(c.entry-c.stop)
			assert.InDelta(t, expected, sizing.RawQuantity, 1e-9)
			assert.Equal(t, market.TruncateQuantity(expected), sizing.Quantity)
			assert.GreaterOrEqual(t, sizing.Quantity, 0.0)
		}
	})
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
