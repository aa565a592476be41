package orderbookv1

import "errors"

var (
	// ErrNilOrder is returned when a nil order is handed to the book or engine.
	ErrNilOrder = errors.New("order cannot be nil")
	// ErrEmptyID is returned when an order has no id.
	ErrEmptyID = errors.New("order id cannot be empty")
	// ErrEmptySymbol is returned when an order has no symbol.
	ErrEmptySymbol = errors.New("order symbol cannot be empty")
	// ErrInvalidQuantity is returned when an order quantity is not positive.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrInvalidPrice is returned when a limit order price is not positive.
	ErrInvalidPrice = errors.New("limit price must be positive")
	// ErrInvalidOrderType is returned for an order type outside LIMIT/MARKET.
	ErrInvalidOrderType = errors.New("invalid order type")
	// ErrInvalidSide is returned for a side outside BUY/SELL.
	ErrInvalidSide = errors.New("invalid order side")
	// ErrInvalidPosition is returned for a position outside LONG/SHORT.
	ErrInvalidPosition = errors.New("invalid order position")

	// ErrDuplicateID is returned when submitting an order whose id the book
	// has already seen, resting or terminal.
	ErrDuplicateID = errors.New("order id already known")
	// ErrSymbolMismatch is returned when an order targets a book serving a
	// different contract. One book always serves exactly one symbol, so this
	// indicates a routing bug in the caller.
	ErrSymbolMismatch = errors.New("order symbol does not match book symbol")

	// ErrOrderNotFound is returned by cancel and status lookups for ids that
	// are unknown, and by cancel for ids that are already terminal.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidState is returned when mutating an order in a terminal state.
	ErrInvalidState = errors.New("order is in a terminal state")
	// ErrInvalidFill is returned when a fill quantity is zero, negative, or
	// exceeds the order's remaining quantity.
	ErrInvalidFill = errors.New("fill quantity out of range")
)
