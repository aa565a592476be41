package orderbookv1

import "time"

// SubmitResult reports the outcome of one submission. A market order that
// could not be fully filled is not an error: RemainingQuantity carries the
// unmet size and Status reports the cancelled remainder.
type SubmitResult struct {
	OrderID           string  `json:"orderID"`
	Status            Status  `json:"status"`
	Matches           []Match `json:"matches"`
	RemainingQuantity int64   `json:"remainingQuantity"`
}

// CancelResult reports a successful cancellation.
type CancelResult struct {
	OrderID           string `json:"orderID"`
	Status            Status `json:"status"`
	CancelledQuantity int64  `json:"cancelledQuantity"`
}

// OrderView is a read-only view of an order's current state.
type OrderView struct {
	ID             string    `json:"id"`
	Symbol         string    `json:"symbol"`
	Type           OrderType `json:"type"`
	Side           Side      `json:"side"`
	Position       Position  `json:"position"`
	Quantity       int64     `json:"quantity"`
	FilledQuantity int64     `json:"filledQuantity"`
	Price          float64   `json:"price,omitempty"`
	Status         Status    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
}

// ViewOf builds the read-only view of an order.
func ViewOf(o *Order) *OrderView {
	return &OrderView{
		ID:             o.ID,
		Symbol:         o.Symbol,
		Type:           o.Type,
		Side:           o.Side,
		Position:       o.Position,
		Quantity:       o.Quantity,
		FilledQuantity: o.FilledQuantity,
		Price:          o.Price,
		Status:         o.Status,
		Timestamp:      o.Timestamp,
	}
}

// LevelDepth is one (price, aggregate quantity) row of a book snapshot.
type LevelDepth struct {
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}

// BookSnapshot is an ordered, depth-limited view of both sides of a book.
// Bids are sorted highest price first, asks lowest price first.
type BookSnapshot struct {
	Symbol string       `json:"symbol"`
	Bids   []LevelDepth `json:"bids"`
	Asks   []LevelDepth `json:"asks"`
}
