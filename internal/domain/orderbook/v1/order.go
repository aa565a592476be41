package orderbookv1

import (
	"fmt"
	"time"
)

// OrderType represents the execution type of an order.
type OrderType string

const (
	// OrderTypeLimit executes at the given price or better and may rest.
	OrderTypeLimit OrderType = "LIMIT"
	// OrderTypeMarket executes at the best available prices and never rests.
	OrderTypeMarket OrderType = "MARKET"
)

// Side represents the side of an order.
type Side string

const (
	// SideBuy is a buy order.
	SideBuy Side = "BUY"
	// SideSell is a sell order.
	SideSell Side = "SELL"
)

// Opposite returns the other side of the book.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// Position represents the position effect an order establishes or closes.
// It is carried through to trade records but never consulted by matching.
type Position string

const (
	// PositionLong opens or closes a long position.
	PositionLong Position = "LONG"
	// PositionShort opens or closes a short position.
	PositionShort Position = "SHORT"
)

// Status represents the lifecycle state of an order.
type Status string

const (
	// StatusNew is an accepted order with no fills yet.
	StatusNew Status = "NEW"
	// StatusPartiallyFilled is an order with some but not all quantity filled.
	StatusPartiallyFilled Status = "PARTIALLY_FILLED"
	// StatusFilled is a fully executed order. Terminal.
	StatusFilled Status = "FILLED"
	// StatusCancelled is an order withdrawn before completion. Terminal.
	StatusCancelled Status = "CANCELLED"
	// StatusExpired is an order invalidated by its contract expiry. Terminal.
	StatusExpired Status = "EXPIRED"
)

// IsTerminal reports whether no further transition is permitted.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusFilled, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// Order is a single buy or sell instruction for one futures contract.
// Identity fields are immutable after construction; only FilledQuantity and
// Status change, and only through ApplyFill, MarkCancelled and MarkExpired.
type Order struct {
	ID             string    `json:"id"`
	Symbol         string    `json:"symbol"`
	Type           OrderType `json:"type"`
	Side           Side      `json:"side"`
	Position       Position  `json:"position"`
	Quantity       int64     `json:"quantity"`
	FilledQuantity int64     `json:"filledQuantity"`
	Price          float64   `json:"price,omitempty"` // limit price, zero for market orders
	Timestamp      time.Time `json:"timestamp"`
	Expiration     time.Time `json:"expiration,omitempty"` // zero means never expires
	Sequence       int64     `json:"sequence"`             // arrival order within the book
	Status         Status    `json:"status"`
}

// NewLimitOrder creates a limit order in state NEW.
func NewLimitOrder(id, symbol string, side Side, position Position, quantity int64, price float64) *Order {
	return &Order{
		ID:       id,
		Symbol:   symbol,
		Type:     OrderTypeLimit,
		Side:     side,
		Position: position,
		Quantity: quantity,
		Price:    price,
		Status:   StatusNew,
	}
}

// NewMarketOrder creates a market order in state NEW. Market orders carry no
// price; any price supplied by the caller is dropped before matching.
func NewMarketOrder(id, symbol string, side Side, position Position, quantity int64) *Order {
	return &Order{
		ID:       id,
		Symbol:   symbol,
		Type:     OrderTypeMarket,
		Side:     side,
		Position: position,
		Quantity: quantity,
		Status:   StatusNew,
	}
}

// Validate checks the construction contract of the order.
func (o *Order) Validate() error {
	if o.ID == "" {
		return ErrEmptyID
	}
	if o.Symbol == "" {
		return ErrEmptySymbol
	}
	switch o.Type {
	case OrderTypeLimit, OrderTypeMarket:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrderType, o.Type)
	}
	switch o.Side {
	case SideBuy, SideSell:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSide, o.Side)
	}
	switch o.Position {
	case PositionLong, PositionShort:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPosition, o.Position)
	}
	if o.Quantity <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, o.Quantity)
	}
	if o.Type == OrderTypeLimit && o.Price <= 0 {
		return fmt.Errorf("%w: got %f", ErrInvalidPrice, o.Price)
	}
	return nil
}

// Remaining returns the unfilled quantity.
func (o *Order) Remaining() int64 {
	return o.Quantity - o.FilledQuantity
}

// IsExpired reports whether the order's contract expiry has passed.
func (o *Order) IsExpired(now time.Time) bool {
	return !o.Expiration.IsZero() && now.After(o.Expiration)
}

// ApplyFill records qty executed against this order and recomputes status.
// FilledQuantity never decreases.
func (o *Order) ApplyFill(qty int64) error {
	if o.Status.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrInvalidState, o.Status)
	}
	if qty <= 0 || qty > o.Remaining() {
		return fmt.Errorf("%w: qty %d, remaining %d", ErrInvalidFill, qty, o.Remaining())
	}

	o.FilledQuantity += qty
	if o.FilledQuantity == o.Quantity {
		o.Status = StatusFilled
	} else {
		o.Status = StatusPartiallyFilled
	}
	return nil
}

// MarkCancelled moves the order to CANCELLED.
func (o *Order) MarkCancelled() error {
	if o.Status.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrInvalidState, o.Status)
	}
	o.Status = StatusCancelled
	return nil
}

// MarkExpired moves the order to EXPIRED.
func (o *Order) MarkExpired() error {
	if o.Status.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrInvalidState, o.Status)
	}
	o.Status = StatusExpired
	return nil
}

// IsBuy reports whether the order is on the buy side.
func (o *Order) IsBuy() bool {
	return o.Side == SideBuy
}
