package depthcache

import (
	"context"
	"encoding/json"
	"fmt"

	depthv1 "github.com/joaquinbejar/OrderBookEngine/internal/domain/depth/v1"
	"github.com/joaquinbejar/OrderBookEngine/pkg/errors"
	"github.com/joaquinbejar/OrderBookEngine/pkg/logger"
	"github.com/joaquinbejar/OrderBookEngine/pkg/redis"
)

const keyPrefix = "depth:"

// Store pushes depth snapshots to Redis: the latest snapshot per symbol is
// kept under a key for polling consumers, and each update is also published
// on a channel for streaming ones.
type Store struct {
	redisclient redis.Client
	logger      logger.Interface
}

// NewStore creates a depth cache on the given Redis client.
func NewStore(redisclient redis.Client, log logger.Interface) *Store {
	return &Store{
		redisclient: redisclient,
		logger:      log,
	}
}

// StoreDepth writes the snapshot under its symbol's key and publishes it.
func (s *Store) StoreDepth(ctx context.Context, snapshot *depthv1.DepthSnapshot) error {
	buf, err := json.Marshal(snapshot)
	if err != nil {
		return errors.NewTracer("failed to marshal depth snapshot").Wrap(err)
	}

	key := keyFor(snapshot.Symbol)
	if err := s.redisclient.Set(ctx, key, buf, 0); err != nil {
		s.logger.Error(err, logger.Field{Key: "symbol", Value: snapshot.Symbol})
		return err
	}

	if err := s.redisclient.Publish(ctx, key, buf); err != nil {
		// Publication is best effort; the keyed snapshot is already current.
		s.logger.Warn("depth publish failed",
			logger.Field{Key: "symbol", Value: snapshot.Symbol},
			logger.Field{Key: "error", Value: err.Error()},
		)
	}
	return nil
}

func keyFor(symbol string) string {
	return fmt.Sprintf("%s%s", keyPrefix, symbol)
}
