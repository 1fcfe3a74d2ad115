package types

import (
	"math"

	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

// Market carries the instrument precision of a futures symbol.
//
// Quantities are always truncated toward zero to VolumePrecision decimals, prices
// and stop prices are rounded half away from zero to PricePrecision decimals.
// Both are sent to the exchange as fixed-decimal strings. There is exactly one
// rule for every symbol and every call site.
type Market struct {
	Symbol string `json:"symbol"`

	PricePrecision  int `json:"pricePrecision"`
	VolumePrecision int `json:"volumePrecision"`

	QuoteCurrency string `json:"quoteCurrency,omitempty"`
	BaseCurrency  string `json:"baseCurrency,omitempty"`
}

// TruncateQuantity cuts the quantity down to the volume precision, never rounding up.
func (m Market) TruncateQuantity(val float64) float64 {
	f, _ := decimal.NewFromFloat(val).Truncate(int32(m.VolumePrecision)).Float64()
	return f
}

func (m Market) RoundPrice(val float64) float64 {
	f, _ := decimal.NewFromFloat(val).Round(int32(m.PricePrecision)).Float64()
	return f
}

func (m Market) FormatQuantity(val float64) string {
	return decimal.NewFromFloat(val).Truncate(int32(m.VolumePrecision)).StringFixed(int32(m.VolumePrecision))
}

func (m Market) FormatPrice(val float64) string {
	return decimal.NewFromFloat(val).StringFixed(int32(m.PricePrecision))
}

// QuantityStep is the smallest non-zero quantity representable at the volume precision.
func (m Market) QuantityStep() float64 {
	return math.Pow10(-m.VolumePrecision)
}

// QuoteCurrencyFormatter formats amounts of the quote currency, e.g. $1,234.50.
func (m Market) QuoteCurrencyFormatter() *accounting.Accounting {
	return QuoteFormatter(m.QuoteCurrency)
}

func (m Market) FormatPriceCurrency(val float64) string {
	a := m.QuoteCurrencyFormatter()
	a.Precision = m.PricePrecision
	return a.FormatMoney(m.RoundPrice(val))
}

// QuoteFormatter returns a two-decimal money formatter for the asset.
// Dollar-pegged assets are printed with a "$" prefix.
func QuoteFormatter(asset string) *accounting.Accounting {
	switch asset {
	case "USDT", "USDC", "BUSD", "USD", "":
		return accounting.DefaultAccounting("$", 2)
	}

	a := accounting.DefaultAccounting(asset, 2)
	a.Format = "%v %s"
	a.FormatNegative = "-%v %s"
	a.FormatZero = "%v %s"
	return a
}

// FormatMoney formats a quote currency amount with thousands separators.
func FormatMoney(asset string, val float64) string {
	return QuoteFormatter(asset).FormatMoney(val)
}

type MarketMap map[string]Market
