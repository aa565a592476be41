package matchpublisherv1

import "context"

// MatchPublisher defines the interface for publishing trade events.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=matchpublisherv1_mock
type MatchPublisher interface {
	// PublishTradeEvent publishes one trade event to the feed.
	PublishTradeEvent(ctx context.Context, event *TradeEvent) error
}
