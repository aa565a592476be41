package orderbookv1

import "fmt"

// PriceLevel is a FIFO queue of resting orders sharing one price. The queue
// order is the time priority: the head is always the oldest resting order.
// Levels are owned by a single book and rely on its writer discipline; they
// do no locking of their own.
type PriceLevel struct {
	Price  float64
	orders []*Order
	total  int64
}

// NewPriceLevel creates an empty level at the given price.
func NewPriceLevel(price float64) *PriceLevel {
	return &PriceLevel{
		Price:  price,
		orders: make([]*Order, 0),
	}
}

// Enqueue appends an order at the tail of the queue.
func (l *PriceLevel) Enqueue(order *Order) error {
	if order == nil {
		return ErrNilOrder
	}
	if order.Remaining() <= 0 {
		return fmt.Errorf("%w: remaining %d", ErrInvalidQuantity, order.Remaining())
	}

	l.orders = append(l.orders, order)
	l.total += order.Remaining()
	return nil
}

// Peek returns the head (oldest) order without removing it, or nil if the
// level is empty.
func (l *PriceLevel) Peek() *Order {
	if len(l.orders) == 0 {
		return nil
	}
	return l.orders[0]
}

// FillFront executes qty against the head order. The head is removed from
// the queue once fully filled. qty must not exceed the head's remaining size.
func (l *PriceLevel) FillFront(qty int64) error {
	head := l.Peek()
	if head == nil {
		return ErrOrderNotFound
	}
	if err := head.ApplyFill(qty); err != nil {
		return err
	}

	l.total -= qty
	if head.Remaining() == 0 {
		l.orders = l.orders[1:]
	}
	return nil
}

// Remove extracts the order with the given id from anywhere in the queue.
// Used by cancel and expiry purge.
func (l *PriceLevel) Remove(orderID string) (*Order, error) {
	for i, o := range l.orders {
		if o.ID == orderID {
			l.orders = append(l.orders[:i], l.orders[i+1:]...)
			l.total -= o.Remaining()
			return o, nil
		}
	}
	return nil, fmt.Errorf("%w: %s at level %f", ErrOrderNotFound, orderID, l.Price)
}

// IsEmpty reports whether the level has no resting orders. An empty level
// must be removed from its book.
func (l *PriceLevel) IsEmpty() bool {
	return len(l.orders) == 0
}

// OrderCount returns the number of resting orders at this level.
func (l *PriceLevel) OrderCount() int {
	return len(l.orders)
}

// TotalQuantity returns the sum of remaining sizes over the queue.
func (l *PriceLevel) TotalQuantity() int64 {
	return l.total
}

// Orders returns a copy of the queue in time priority order.
func (l *PriceLevel) Orders() []*Order {
	orders := make([]*Order, len(l.orders))
	copy(orders, l.orders)
	return orders
}
