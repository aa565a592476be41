package matchpublisherv1

import (
	"encoding/json"
	"time"

	orderbookv1 "github.com/joaquinbejar/OrderBookEngine/internal/domain/orderbook/v1"
)

// TradeEvent is the JSON payload published to the trade feed for every match.
type TradeEvent struct {
	TradeID     string           `json:"tradeID"`
	Symbol      string           `json:"symbol"`
	BuyOrderID  string           `json:"buyOrderID"`
	SellOrderID string           `json:"sellOrderID"`
	Price       float64          `json:"price"`
	Quantity    int64            `json:"quantity"`
	TakerSide   orderbookv1.Side `json:"takerSide"`
	Timestamp   time.Time        `json:"timestamp"`
}

// FromMatch builds the trade event for a match record.
func FromMatch(match *orderbookv1.Match) *TradeEvent {
	return &TradeEvent{
		TradeID:     match.TradeID,
		Symbol:      match.Symbol,
		BuyOrderID:  match.BuyOrderID,
		SellOrderID: match.SellOrderID,
		Price:       match.Price,
		Quantity:    match.Quantity,
		TakerSide:   match.TakerSide,
		Timestamp:   match.Timestamp,
	}
}

// ToBytes serializes the trade event for the wire.
func ToBytes(event *TradeEvent) []byte {
	data, err := json.Marshal(event)
	if err != nil {
		return nil
	}
	return data
}

// FromBytes deserializes a trade event, returning nil on malformed input.
func FromBytes(data []byte) *TradeEvent {
	var event TradeEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil
	}
	return &event
}
