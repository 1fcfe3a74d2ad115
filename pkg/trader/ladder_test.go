package trader

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ladderbot/ladderbot/pkg/types"
)

func rungQuantities(l *ExitLadder) (quantities []float64) {
	for _, r := range l.Rungs {
		quantities = append(quantities, r.Quantity)
	}
	return quantities
}

func rungPrices(l *ExitLadder) (prices []float64) {
	for _, r := range l.Rungs {
		prices = append(prices, r.TargetPrice)
	}
	return prices
}

func TestNewExitLadder(t *testing.T) {
	t.Run("long", func(t *testing.T) {
		ladder := NewExitLadder(testMarket, types.DirectionLong, 200, 100, 110, 95, DefaultQuantityMultiplier)
		assert.Equal(t, 10.0, ladder.ATR)
		assert.Equal(t, 95.0, ladder.Stop.Price)
		assert.Equal(t, []float64{100, 50, 25, 12.5, 6.25}, rungQuantities(ladder))
		assert.Equal(t, []float64{110, 115, 120, 125, 130}, rungPrices(ladder))
	})

	t.Run("short", func(t *testing.T) {
		ladder := NewExitLadder(testMarket, types.DirectionShort, 200, 100, 90, 105, DefaultQuantityMultiplier)
		assert.Equal(t, []float64{100, 50, 25, 12.5, 6.25}, rungQuantities(ladder))
		assert.Equal(t, []float64{90, 85, 80, 75, 70}, rungPrices(ladder))
	})

	t.Run("high volatility multiplier", func(t *testing.T) {
		ladder := NewExitLadder(testMarket, types.DirectionLong, 200, 100, 110, 95, HighVolQuantityMultiplier)
		assert.Equal(t, []float64{200, 100, 50, 25, 12.5}, rungQuantities(ladder))
	})

	t.Run("rungs are clamped to one quantity step", func(t *testing.T) {
		integral := types.Market{Symbol: "DOGEUSDT", PricePrecision: 5, VolumePrecision: 0}
		ladder := NewExitLadder(integral, types.DirectionLong, 3, 0.1, 0.11, 0.09, DefaultQuantityMultiplier)
		assert.Equal(t, []float64{1, 1, 1, 1, 1}, rungQuantities(ladder))
	})

	t.Run("quantities halve and prices move away from the entry", func(t *testing.T) {
		for _, direction := range []types.Direction{types.DirectionLong, types.DirectionShort} {
			target := direction.Shift(250, 12)
			ladder := NewExitLadder(testMarket, direction, 37.77, 250, target, direction.Shift(250, -6), DefaultQuantityMultiplier)

			for k := 1; k < LadderSize; k++ {
				prev, cur := ladder.Rungs[k-1], ladder.Rungs[k]
				assert.InDelta(t, prev.Quantity/2, cur.Quantity, testMarket.QuantityStep(), "rung %d quantity", k+1)
				assert.True(t, direction.IsMoreFavorable(cur.TargetPrice, prev.TargetPrice), "rung %d price %s", k+1, direction)
			}
		}
	})
}

func TestExitLadder_RatchetPrice(t *testing.T) {
	t.Run("long", func(t *testing.T) {
		ladder := NewExitLadder(testMarket, types.DirectionLong, 200, 100, 110, 95, DefaultQuantityMultiplier)

		_, ok := ladder.RatchetPrice(1)
		assert.False(t, ok)

		price, ok := ladder.RatchetPrice(2)
		assert.True(t, ok)
		assert.Equal(t, 105.0, price, "second fill jumps the stop one ATR from the initial stop")

		expected := map[int]float64{3: 105, 4: 110, 5: 115}
		for iteration, want := range expected {
			price, ok := ladder.RatchetPrice(iteration)
			assert.True(t, ok)
			assert.Equal(t, want, price, "iteration %d", iteration)
		}
	})

	t.Run("short", func(t *testing.T) {
		ladder := NewExitLadder(testMarket, types.DirectionShort, 200, 100, 90, 105, DefaultQuantityMultiplier)

		price, _ := ladder.RatchetPrice(2)
		assert.Equal(t, 95.0, price)

		price, _ = ladder.RatchetPrice(3)
		assert.Equal(t, 95.0, price)

		price, _ = ladder.RatchetPrice(5)
		assert.Equal(t, 85.0, price)
	})

	t.Run("jump is measured from the initial stop", func(t *testing.T) {
		ladder := NewExitLadder(testMarket, types.DirectionLong, 200, 100, 110, 95, DefaultQuantityMultiplier)
		ladder.Stop.Price = 99

		price, _ := ladder.RatchetPrice(2)
		assert.Equal(t, 105.0, price)
		assert.Equal(t, 95.0, ladder.InitialStopPrice)
	})

	t.Run("ratchet never loosens the stop", func(t *testing.T) {
		for _, direction := range []types.Direction{types.DirectionLong, types.DirectionShort} {
			for _, stopDistance := range []float64{10, 25, 60} {
				entry := 1800.0
				ladder := NewExitLadder(testMarket, direction, 3, entry, direction.Shift(entry, 40), direction.Shift(entry, -stopDistance), DefaultQuantityMultiplier)

				stop := ladder.Stop.Price
				for iteration := 2; iteration <= LadderSize; iteration++ {
					price, ok := ladder.RatchetPrice(iteration)
					assert.True(t, ok)
					if direction.IsMoreFavorable(price, stop) {
						stop = price
					}
					assert.False(t, direction.IsMoreFavorable(ladder.Stop.Price, stop), "%s iteration %d: stop %f", direction, iteration, stop)
				}
				assert.True(t, direction.IsMoreFavorable(stop, ladder.Stop.Price))
			}
		}
	})
}

func TestQuantityMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, QuantityMultiplier("highVol", "highVol"))
	assert.Equal(t, 0.5, QuantityMultiplier("trend", "highVol"))
	assert.Equal(t, 0.5, QuantityMultiplier("", ""))
}
