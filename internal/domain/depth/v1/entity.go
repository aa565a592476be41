package depthv1

import (
	"time"

	orderbookv1 "github.com/joaquinbejar/OrderBookEngine/internal/domain/orderbook/v1"
)

// DepthSnapshot is the read-side view of a book pushed to the cache so
// market-data consumers never touch the live book.
type DepthSnapshot struct {
	Symbol    string                   `json:"symbol"`
	Bids      []orderbookv1.LevelDepth `json:"bids"`
	Asks      []orderbookv1.LevelDepth `json:"asks"`
	Timestamp time.Time                `json:"timestamp"`
}

// FromBookSnapshot stamps a book snapshot for publication.
func FromBookSnapshot(snapshot *orderbookv1.BookSnapshot, now time.Time) *DepthSnapshot {
	return &DepthSnapshot{
		Symbol:    snapshot.Symbol,
		Bids:      snapshot.Bids,
		Asks:      snapshot.Asks,
		Timestamp: now,
	}
}
