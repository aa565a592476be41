package orderbookv1

import "time"

// Matcher defines the per-symbol matching surface the engine workers drive.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=orderbookv1_mock
type Matcher interface {
	// Symbol returns the contract this matcher serves.
	Symbol() string
	// Submit validates and matches one incoming order.
	Submit(order *Order) (*SubmitResult, error)
	// Cancel withdraws a resting order.
	Cancel(orderID string) (*CancelResult, error)
	// OrderStatus returns the current view of a known order.
	OrderStatus(orderID string) (*OrderView, error)
	// Snapshot returns the depth-limited view of both sides.
	Snapshot(depth int) *BookSnapshot
	// PurgeExpired removes resting orders whose contract expiry has passed.
	PurgeExpired(now time.Time) []*Order
}
