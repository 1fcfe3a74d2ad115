package types

import (
	"fmt"
	"time"

	"github.com/slack-go/slack"
)

// OrderType define order type
type OrderType string

const (
	OrderTypeLimit            OrderType = "LIMIT"
	OrderTypeMarket           OrderType = "MARKET"
	OrderTypeStopMarket       OrderType = "STOP_MARKET"
	OrderTypeTakeProfitMarket OrderType = "TAKE_PROFIT_MARKET"

	// OrderTypeCancelAll is not an exchange order type. Submitting it asks the
	// executor to cancel every open order of the symbol; any unrecognized type is
	// interpreted the same way.
	OrderTypeCancelAll OrderType = "CANCEL_ALL"
)

type OrderStatus string

const (
	OrderStatusNew             OrderStatus = "NEW"
	OrderStatusFilled          OrderStatus = "FILLED"
	OrderStatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	OrderStatusCanceled        OrderStatus = "CANCELED"
	OrderStatusRejected        OrderStatus = "REJECTED"
	OrderStatusExpired         OrderStatus = "EXPIRED"
)

// In reports whether the status is one of the given statuses.
// An empty set accepts every status.
func (s OrderStatus) In(statuses ...OrderStatus) bool {
	if len(statuses) == 0 {
		return true
	}

	for _, o := range statuses {
		if s == o {
			return true
		}
	}
	return false
}

const (
	TimeInForceGTC = "GTC"
)

type SubmitOrder struct {
	ClientOrderID string `json:"clientOrderID" db:"client_order_id"`

	Symbol string    `json:"symbol" db:"symbol"`
	Side   SideType  `json:"side" db:"side"`
	Type   OrderType `json:"orderType" db:"order_type"`

	Quantity  float64 `json:"quantity" db:"quantity"`
	Price     float64 `json:"price" db:"price"`
	StopPrice float64 `json:"stopPrice" db:"stop_price"`

	Market Market `json:"market" db:"-"`

	TimeInForce string `json:"timeInForce" db:"time_in_force"` // GTC, IOC, FOK

	ReduceOnly    bool `json:"reduceOnly" db:"reduce_only"`
	ClosePosition bool `json:"closePosition" db:"close_position"`

	Tag string `json:"tag,omitempty" db:"-"`
}

func (o SubmitOrder) String() string {
	switch o.Type {
	case OrderTypeStopMarket, OrderTypeTakeProfitMarket:
		return fmt.Sprintf("SubmitOrder %s %s %s %s @ stop %s", o.Symbol, o.Type, o.Side,
			o.Market.FormatQuantity(o.Quantity), o.Market.FormatPrice(o.StopPrice))
	case OrderTypeLimit:
		return fmt.Sprintf("SubmitOrder %s %s %s %s @ %s", o.Symbol, o.Type, o.Side,
			o.Market.FormatQuantity(o.Quantity), o.Market.FormatPrice(o.Price))
	}

	return fmt.Sprintf("SubmitOrder %s %s %s %s", o.Symbol, o.Type, o.Side, o.Market.FormatQuantity(o.Quantity))
}

func (o *SubmitOrder) SlackAttachment() slack.Attachment {
	var fields = []slack.AttachmentField{
		{Title: "Symbol", Value: o.Symbol, Short: true},
		{Title: "Side", Value: string(o.Side), Short: true},
		{Title: "Quantity", Value: o.Market.FormatQuantity(o.Quantity), Short: true},
	}

	if o.Price > 0 {
		fields = append(fields, slack.AttachmentField{Title: "Price", Value: o.Market.FormatPrice(o.Price), Short: true})
	}

	if o.StopPrice > 0 {
		fields = append(fields, slack.AttachmentField{Title: "Stop Price", Value: o.Market.FormatPrice(o.StopPrice), Short: true})
	}

	return slack.Attachment{
		Color:  SideToColorName(o.Side),
		Title:  string(o.Type) + " Order " + string(o.Side),
		Fields: fields,
	}
}

// Order is an order accepted by the exchange. Status is owned by the exchange;
// it is only ever observed here by polling.
type Order struct {
	SubmitOrder

	OrderID          int64       `json:"orderID" db:"order_id"`
	Status           OrderStatus `json:"status" db:"status"`
	ExecutedQuantity float64     `json:"executedQuantity" db:"executed_quantity"`
	AveragePrice     float64     `json:"averagePrice" db:"average_price"`
	CreationTime     time.Time   `json:"creationTime" db:"created_at"`
	UpdateTime       time.Time   `json:"updateTime" db:"updated_at"`
}

func (o Order) String() string {
	return fmt.Sprintf("Order #%d %s %s %s %s/%s status=%s",
		o.OrderID, o.Symbol, o.Type, o.Side,
		o.Market.FormatQuantity(o.ExecutedQuantity), o.Market.FormatQuantity(o.Quantity),
		o.Status)
}

// FillPrice returns the average fill price and falls back to the order price
// for exchanges that report an empty average.
func (o Order) FillPrice() float64 {
	if o.AveragePrice > 0 {
		return o.AveragePrice
	}

	if o.Price > 0 {
		return o.Price
	}

	return o.StopPrice
}
