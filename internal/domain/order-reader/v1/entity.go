package orderreaderv1

import (
	"time"

	orderbookv1 "github.com/joaquinbejar/OrderBookEngine/internal/domain/orderbook/v1"
)

// Action distinguishes order placement from cancellation on the intake topic.
type Action string

const (
	// ActionPlace submits a new order.
	ActionPlace Action = "PLACE"
	// ActionCancel withdraws a resting order.
	ActionCancel Action = "CANCEL"
)

// OrderRequest is the JSON payload consumed from the order intake topic.
type OrderRequest struct {
	Action     Action                `json:"action"`
	OrderID    string                `json:"orderID"`
	Symbol     string                `json:"symbol"`
	Type       orderbookv1.OrderType `json:"type"`
	Side       orderbookv1.Side      `json:"side"`
	Position   orderbookv1.Position  `json:"position"`
	Quantity   int64                 `json:"quantity"`
	Price      float64               `json:"price,omitempty"`
	Expiration time.Time             `json:"expiration,omitempty"`
	Offset     int64                 `json:"-"` // stream offset, set by the reader
}

// ToOrder converts a placement request into a core order.
func (r *OrderRequest) ToOrder() *orderbookv1.Order {
	var order *orderbookv1.Order
	if r.Type == orderbookv1.OrderTypeMarket {
		order = orderbookv1.NewMarketOrder(r.OrderID, r.Symbol, r.Side, r.Position, r.Quantity)
	} else {
		order = orderbookv1.NewLimitOrder(r.OrderID, r.Symbol, r.Side, r.Position, r.Quantity, r.Price)
	}
	order.Expiration = r.Expiration
	return order
}
