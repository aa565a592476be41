package orderbook

import (
	"fmt"
	"sort"
	"sync"
	"time"

	orderbookv1 "github.com/joaquinbejar/OrderBookEngine/internal/domain/orderbook/v1"
)

// OrderBook holds the resting orders for one futures contract: price levels
// per side plus an id index for O(1) cancel and status lookup. Levels and
// orders are reachable only through the book, so the single writer that owns
// the book owns everything in it.
//
// Ids stay known for the lifetime of the book: terminal orders move from the
// resting index to a terminal registry so duplicate submissions are rejected
// and status stays queryable after fill, cancel or expiry.
type OrderBook struct {
	mu        sync.RWMutex
	symbol    string
	bidLevels map[float64]*orderbookv1.PriceLevel
	askLevels map[float64]*orderbookv1.PriceLevel
	resting   map[string]*orderbookv1.Order
	terminal  map[string]*orderbookv1.Order
	sequence  int64
}

// NewOrderBook creates an empty book for the given contract symbol.
func NewOrderBook(symbol string) *OrderBook {
	return &OrderBook{
		symbol:    symbol,
		bidLevels: make(map[float64]*orderbookv1.PriceLevel),
		askLevels: make(map[float64]*orderbookv1.PriceLevel),
		resting:   make(map[string]*orderbookv1.Order),
		terminal:  make(map[string]*orderbookv1.Order),
	}
}

// Symbol returns the contract this book serves.
func (b *OrderBook) Symbol() string {
	return b.symbol
}

// NextSequence returns the next arrival sequence number for this book.
func (b *OrderBook) NextSequence() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sequence++
	return b.sequence
}

// Known reports whether the id has ever been accepted by this book.
func (b *OrderBook) Known(orderID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if _, ok := b.resting[orderID]; ok {
		return true
	}
	_, ok := b.terminal[orderID]
	return ok
}

// Insert rests an order on its side of the book, creating the price level if
// the price is new. The order must have survived matching with remaining
// size; market orders never rest.
func (b *OrderBook) Insert(order *orderbookv1.Order) error {
	if order == nil {
		return orderbookv1.ErrNilOrder
	}
	if order.Type == orderbookv1.OrderTypeMarket {
		return fmt.Errorf("%w: market orders never rest", orderbookv1.ErrInvalidOrderType)
	}
	if order.Remaining() <= 0 {
		return fmt.Errorf("%w: remaining %d", orderbookv1.ErrInvalidQuantity, order.Remaining())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.resting[order.ID]; exists {
		return fmt.Errorf("%w: %s", orderbookv1.ErrDuplicateID, order.ID)
	}
	if _, exists := b.terminal[order.ID]; exists {
		return fmt.Errorf("%w: %s", orderbookv1.ErrDuplicateID, order.ID)
	}

	levels := b.levelsFor(order.Side)
	level, exists := levels[order.Price]
	if !exists {
		level = orderbookv1.NewPriceLevel(order.Price)
		levels[order.Price] = level
	}
	if err := level.Enqueue(order); err != nil {
		return err
	}

	b.resting[order.ID] = order
	return nil
}

// RecordTerminal registers an order that reached a terminal state without
// ever resting, so its id stays known and its status queryable.
func (b *OrderBook) RecordTerminal(order *orderbookv1.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.terminal[order.ID] = order
}

// BestBid returns the top-of-book bid price and aggregate quantity.
func (b *OrderBook) BestBid() (orderbookv1.LevelDepth, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return bestOf(b.bidLevels, orderbookv1.SideBuy)
}

// BestAsk returns the top-of-book ask price and aggregate quantity.
func (b *OrderBook) BestAsk() (orderbookv1.LevelDepth, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return bestOf(b.askLevels, orderbookv1.SideSell)
}

// PeekBest returns the head order of the best price level on the given side,
// or nil if the side is empty.
func (b *OrderBook) PeekBest(side orderbookv1.Side) *orderbookv1.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()

	level := bestLevel(b.levelsFor(side), side)
	if level == nil {
		return nil
	}
	return level.Peek()
}

// FillBest executes qty against the head order of the best level on the given
// side and returns that maker order. A fully filled maker leaves the index
// and joins the terminal registry; an emptied level leaves the book.
func (b *OrderBook) FillBest(side orderbookv1.Side, qty int64) (*orderbookv1.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	levels := b.levelsFor(side)
	level := bestLevel(levels, side)
	if level == nil {
		return nil, fmt.Errorf("%w: no liquidity on %s side", orderbookv1.ErrOrderNotFound, side)
	}

	maker := level.Peek()
	if err := level.FillFront(qty); err != nil {
		return nil, err
	}

	if maker.Status == orderbookv1.StatusFilled {
		delete(b.resting, maker.ID)
		b.terminal[maker.ID] = maker
	}
	if level.IsEmpty() {
		delete(levels, level.Price)
	}
	return maker, nil
}

// Cancel withdraws a resting order. Unknown and already-terminal ids both
// fail with the not-found error.
func (b *OrderBook) Cancel(orderID string) (*orderbookv1.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	order, exists := b.resting[orderID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", orderbookv1.ErrOrderNotFound, orderID)
	}

	if err := b.removeResting(order); err != nil {
		return nil, err
	}
	if err := order.MarkCancelled(); err != nil {
		return nil, err
	}
	b.terminal[order.ID] = order
	return order, nil
}

// PurgeExpired removes every resting order on both sides whose expiry has
// passed, marking each EXPIRED. Called before matching so stale liquidity is
// never traded against.
func (b *OrderBook) PurgeExpired(now time.Time) []*orderbookv1.Order {
	b.mu.Lock()
	defer b.mu.Unlock()

	var expired []*orderbookv1.Order
	for _, order := range b.resting {
		if order.IsExpired(now) {
			expired = append(expired, order)
		}
	}

	// Stable order for logs and event feeds.
	sort.Slice(expired, func(i, j int) bool {
		return expired[i].Sequence < expired[j].Sequence
	})

	for _, order := range expired {
		if err := b.removeResting(order); err != nil {
			continue
		}
		_ = order.MarkExpired()
		b.terminal[order.ID] = order
	}
	return expired
}

// Status returns the current view of a known order, resting or terminal.
func (b *OrderBook) Status(orderID string) (*orderbookv1.OrderView, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if order, ok := b.resting[orderID]; ok {
		return orderbookv1.ViewOf(order), nil
	}
	if order, ok := b.terminal[orderID]; ok {
		return orderbookv1.ViewOf(order), nil
	}
	return nil, fmt.Errorf("%w: %s", orderbookv1.ErrOrderNotFound, orderID)
}

// Snapshot returns both sides as ordered (price, quantity) rows, bids
// descending and asks ascending. depth <= 0 returns the full book.
func (b *OrderBook) Snapshot(depth int) *orderbookv1.BookSnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return &orderbookv1.BookSnapshot{
		Symbol: b.symbol,
		Bids:   sideDepth(b.bidLevels, orderbookv1.SideBuy, depth),
		Asks:   sideDepth(b.askLevels, orderbookv1.SideSell, depth),
	}
}

// removeResting unlinks an order from its level and the index. The caller
// holds the write lock.
func (b *OrderBook) removeResting(order *orderbookv1.Order) error {
	levels := b.levelsFor(order.Side)
	level, exists := levels[order.Price]
	if !exists {
		return fmt.Errorf("%w: level %f missing for %s", orderbookv1.ErrOrderNotFound, order.Price, order.ID)
	}

	if _, err := level.Remove(order.ID); err != nil {
		return err
	}
	if level.IsEmpty() {
		delete(levels, level.Price)
	}
	delete(b.resting, order.ID)
	return nil
}

func (b *OrderBook) levelsFor(side orderbookv1.Side) map[float64]*orderbookv1.PriceLevel {
	if side == orderbookv1.SideBuy {
		return b.bidLevels
	}
	return b.askLevels
}

// bestLevel picks the highest bid or lowest ask level.
func bestLevel(levels map[float64]*orderbookv1.PriceLevel, side orderbookv1.Side) *orderbookv1.PriceLevel {
	var best *orderbookv1.PriceLevel
	for _, level := range levels {
		if best == nil {
			best = level
			continue
		}
		if side == orderbookv1.SideBuy && level.Price > best.Price {
			best = level
		}
		if side == orderbookv1.SideSell && level.Price < best.Price {
			best = level
		}
	}
	return best
}

func bestOf(levels map[float64]*orderbookv1.PriceLevel, side orderbookv1.Side) (orderbookv1.LevelDepth, bool) {
	level := bestLevel(levels, side)
	if level == nil {
		return orderbookv1.LevelDepth{}, false
	}
	return orderbookv1.LevelDepth{Price: level.Price, Quantity: level.TotalQuantity()}, true
}

// sideDepth returns the side's levels in priority order, depth-limited.
func sideDepth(levels map[float64]*orderbookv1.PriceLevel, side orderbookv1.Side, depth int) []orderbookv1.LevelDepth {
	prices := make([]float64, 0, len(levels))
	for price := range levels {
		prices = append(prices, price)
	}
	if side == orderbookv1.SideBuy {
		sort.Sort(sort.Reverse(sort.Float64Slice(prices)))
	} else {
		sort.Float64s(prices)
	}

	if depth > 0 && len(prices) > depth {
		prices = prices[:depth]
	}

	rows := make([]orderbookv1.LevelDepth, 0, len(prices))
	for _, price := range prices {
		rows = append(rows, orderbookv1.LevelDepth{
			Price:    price,
			Quantity: levels[price].TotalQuantity(),
		})
	}
	return rows
}
