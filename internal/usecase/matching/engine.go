package matching

import (
	"fmt"
	"time"

	orderbookv1 "github.com/joaquinbejar/OrderBookEngine/internal/domain/orderbook/v1"
	"github.com/joaquinbejar/OrderBookEngine/internal/usecase/orderbook"
)

// Engine matches incoming orders against one book under price-time priority.
// It holds no state of its own beyond the book reference and the injected
// clock; every submission either completes or fails validation with the book
// untouched. Calls must be serialized per book (see app/engine).
type Engine struct {
	book  *orderbook.OrderBook
	clock func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock injects the time source used for expiry checks and match
// timestamps. Defaults to time.Now.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// NewEngine creates a matching engine bound to the given book.
func NewEngine(book *orderbook.OrderBook, opts ...Option) *Engine {
	e := &Engine{
		book:  book,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Symbol returns the contract the bound book serves.
func (e *Engine) Symbol() string {
	return e.book.Symbol()
}

// Submit validates the incoming order, matches it against the opposite side
// while economically possible, and applies the remainder policy: a limit
// remainder rests, a market remainder is cancelled and reported through
// RemainingQuantity as an insufficient-liquidity outcome.
func (e *Engine) Submit(order *orderbookv1.Order) (*orderbookv1.SubmitResult, error) {
	if order == nil {
		return nil, orderbookv1.ErrNilOrder
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	if order.Symbol != e.book.Symbol() {
		return nil, fmt.Errorf("%w: order %s targets %s, book serves %s",
			orderbookv1.ErrSymbolMismatch, order.ID, order.Symbol, e.book.Symbol())
	}
	if e.book.Known(order.ID) {
		return nil, fmt.Errorf("%w: %s", orderbookv1.ErrDuplicateID, order.ID)
	}
	if order.Type == orderbookv1.OrderTypeMarket {
		// A supplied price is ignored for matching purposes.
		order.Price = 0
	}

	now := e.clock()
	if order.Timestamp.IsZero() {
		order.Timestamp = now
	}
	order.Sequence = e.book.NextSequence()

	// An already-expired contract is an outcome, not an error: report
	// EXPIRED with no matches and no book mutation beyond the registry.
	if order.IsExpired(now) {
		_ = order.MarkExpired()
		e.book.RecordTerminal(order)
		return &orderbookv1.SubmitResult{
			OrderID:           order.ID,
			Status:            order.Status,
			RemainingQuantity: order.Remaining(),
		}, nil
	}

	// Stale resting liquidity never participates in a match.
	e.book.PurgeExpired(now)

	matches := e.match(order, now)

	if order.Remaining() > 0 {
		switch order.Type {
		case orderbookv1.OrderTypeLimit:
			if err := e.book.Insert(order); err != nil {
				return nil, err
			}
		case orderbookv1.OrderTypeMarket:
			// Market orders never rest; the unmet remainder is cancelled.
			_ = order.MarkCancelled()
			e.book.RecordTerminal(order)
		}
	} else {
		e.book.RecordTerminal(order)
	}

	return &orderbookv1.SubmitResult{
		OrderID:           order.ID,
		Status:            order.Status,
		Matches:           matches,
		RemainingQuantity: order.Remaining(),
	}, nil
}

// match runs the matching loop: repeatedly take the best opposing level and
// execute against its head order only, so price priority comes from level
// selection and time priority from the level's FIFO queue. The resting price
// governs every fill.
func (e *Engine) match(order *orderbookv1.Order, now time.Time) []orderbookv1.Match {
	var matches []orderbookv1.Match
	opposite := order.Side.Opposite()

	for order.Remaining() > 0 {
		maker := e.book.PeekBest(opposite)
		if maker == nil {
			break
		}
		if order.Type == orderbookv1.OrderTypeLimit && !crosses(order, maker.Price) {
			break
		}

		qty := min(order.Remaining(), maker.Remaining())
		if _, err := e.book.FillBest(opposite, qty); err != nil {
			break
		}
		if err := order.ApplyFill(qty); err != nil {
			break
		}

		matches = append(matches, orderbookv1.NewMatch(order, maker, qty, now))
	}
	return matches
}

// Cancel withdraws a resting order. Cancelling an unknown or already
// terminal id fails with the not-found error.
func (e *Engine) Cancel(orderID string) (*orderbookv1.CancelResult, error) {
	order, err := e.book.Cancel(orderID)
	if err != nil {
		return nil, err
	}
	return &orderbookv1.CancelResult{
		OrderID:           order.ID,
		Status:            order.Status,
		CancelledQuantity: order.Remaining(),
	}, nil
}

// OrderStatus returns the current view of a known order.
func (e *Engine) OrderStatus(orderID string) (*orderbookv1.OrderView, error) {
	return e.book.Status(orderID)
}

// Snapshot returns the depth-limited view of both sides of the book.
func (e *Engine) Snapshot(depth int) *orderbookv1.BookSnapshot {
	return e.book.Snapshot(depth)
}

// PurgeExpired removes expired resting orders outside of a submission, e.g.
// on the periodic expiry sweep.
func (e *Engine) PurgeExpired(now time.Time) []*orderbookv1.Order {
	return e.book.PurgeExpired(now)
}

// crosses reports whether a limit taker meets the opposing price.
func crosses(order *orderbookv1.Order, oppositePrice float64) bool {
	if order.IsBuy() {
		return oppositePrice <= order.Price
	}
	return oppositePrice >= order.Price
}
