package orderbookv1

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Match is the record of one execution between a taker and a resting maker.
// Matches are engine output; they are never stored in the book.
type Match struct {
	TradeID     string    `json:"tradeID"`
	Symbol      string    `json:"symbol"`
	BuyOrderID  string    `json:"buyOrderID"`
	SellOrderID string    `json:"sellOrderID"`
	Price       float64   `json:"price"`
	Quantity    int64     `json:"quantity"`
	TakerSide   Side      `json:"takerSide"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewMatch builds the trade record for qty executed between the incoming
// taker and the resting maker. The maker's price always governs.
func NewMatch(taker, maker *Order, qty int64, now time.Time) Match {
	m := Match{
		TradeID:   ulid.Make().String(),
		Symbol:    taker.Symbol,
		Price:     maker.Price,
		Quantity:  qty,
		TakerSide: taker.Side,
		Timestamp: now,
	}

	if taker.IsBuy() {
		m.BuyOrderID = taker.ID
		m.SellOrderID = maker.ID
	} else {
		m.BuyOrderID = maker.ID
		m.SellOrderID = taker.ID
	}
	return m
}
