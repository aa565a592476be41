package engine

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	depthv1 "github.com/joaquinbejar/OrderBookEngine/internal/domain/depth/v1"
	depthmock "github.com/joaquinbejar/OrderBookEngine/internal/domain/depth/v1/mock"
	matchpublishermock "github.com/joaquinbejar/OrderBookEngine/internal/domain/match-publisher/v1/mock"
	orderreaderv1 "github.com/joaquinbejar/OrderBookEngine/internal/domain/order-reader/v1"
	orderreadermock "github.com/joaquinbejar/OrderBookEngine/internal/domain/order-reader/v1/mock"
	orderbookv1 "github.com/joaquinbejar/OrderBookEngine/internal/domain/orderbook/v1"
	"github.com/joaquinbejar/OrderBookEngine/pkg/config"
	"github.com/joaquinbejar/OrderBookEngine/pkg/logger"
)

// Test fixtures and helpers
type testFixture struct {
	ctrl               *gomock.Controller
	mockOrderReader    *orderreadermock.MockOrderReader
	mockMatchPublisher *matchpublishermock.MockMatchPublisher
	mockDepthStore     *depthmock.MockStore
	logger             *logger.Logger
	config             *config.Config
}

func setupTestFixture(t *testing.T) *testFixture {
	ctrl := gomock.NewController(t)

	log, err := logger.NewLogger()
	require.NoError(t, err)

	return &testFixture{
		ctrl:               ctrl,
		mockOrderReader:    orderreadermock.NewMockOrderReader(ctrl),
		mockMatchPublisher: matchpublishermock.NewMockMatchPublisher(ctrl),
		mockDepthStore:     depthmock.NewMockStore(ctrl),
		logger:             log,
		config: &config.Config{
			Symbols: []string{"BTC-PERP", "ETH-PERP"},
			OrderReaderConfig: config.OrderReaderConfig{
				Brokers: []string{"localhost:9092"},
				Topic:   "orders",
			},
			MatchPublisherConfig: config.MatchPublisherConfig{
				Brokers: []string{"localhost:9092"},
				Topic:   "trades",
			},
		},
	}
}

func (f *testFixture) teardown() {
	f.ctrl.Finish()
}

// testOptions keeps tickers quiet so worker tests only exercise the mailbox.
func testOptions() *Options {
	return &Options{
		ExpirySweepInterval:  time.Hour,
		DepthPublishInterval: time.Hour,
		DepthLevels:          5,
		RequestBuffer:        16,
		Clock:                time.Now,
	}
}

func limitOrder(id, symbol string, side orderbookv1.Side, quantity int64, price float64) *orderbookv1.Order {
	return orderbookv1.NewLimitOrder(id, symbol, side, orderbookv1.PositionLong, quantity, price)
}

// startTestEngine builds an engine without order intake and starts it.
func startTestEngine(t *testing.T, f *testFixture, opts *Options) *Engine {
	engine := NewEngineWithOptions(f.config, f.logger, nil, f.mockMatchPublisher, nil, opts)
	require.NoError(t, engine.Start(context.Background()))

	t.Cleanup(func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		require.NoError(t, engine.Stop(stopCtx))
	})
	return engine
}

func TestNewEngine(t *testing.T) {
	testCases := []struct {
		name            string
		options         *Options
		expectedBuffer  int
		expectedDepth   int
		expectedWorkers int
	}{
		{
			name:            "engine with custom options",
			options:         testOptions(),
			expectedBuffer:  16,
			expectedDepth:   5,
			expectedWorkers: 2,
		},
		{
			name:            "engine with default options",
			options:         DefaultEngineOptions(),
			expectedBuffer:  DefaultEngineOptions().RequestBuffer,
			expectedDepth:   DefaultEngineOptions().DepthLevels,
			expectedWorkers: 2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fixture := setupTestFixture(t)
			defer fixture.teardown()

			engine := NewEngineWithOptions(
				fixture.config,
				fixture.logger,
				fixture.mockOrderReader,
				fixture.mockMatchPublisher,
				fixture.mockDepthStore,
				tc.options,
			)

			assert.NotNil(t, engine)
			assert.Equal(t, tc.expectedWorkers, len(engine.workers))
			assert.Contains(t, engine.workers, "BTC-PERP")
			assert.Contains(t, engine.workers, "ETH-PERP")
			assert.Equal(t, tc.expectedDepth, engine.options.DepthLevels)
			assert.Equal(t, tc.expectedBuffer, cap(engine.workers["BTC-PERP"].requests))
		})
	}
}

func TestEngine_Submit(t *testing.T) {
	t.Run("resting order publishes nothing", func(t *testing.T) {
		fixture := setupTestFixture(t)
		defer fixture.teardown()

		engine := startTestEngine(t, fixture, testOptions())

		result, err := engine.Submit(context.Background(), limitOrder("buy1", "BTC-PERP", orderbookv1.SideBuy, 10, 100))

		require.NoError(t, err)
		assert.Equal(t, orderbookv1.StatusNew, result.Status)
		assert.Empty(t, result.Matches)
	})

	t.Run("matched submission publishes one trade event", func(t *testing.T) {
		fixture := setupTestFixture(t)
		defer fixture.teardown()

		fixture.mockMatchPublisher.EXPECT().
			PublishTradeEvent(gomock.Any(), gomock.Any()).
			Return(nil).
			Times(1)

		engine := startTestEngine(t, fixture, testOptions())

		_, err := engine.Submit(context.Background(), limitOrder("buy1", "BTC-PERP", orderbookv1.SideBuy, 10, 100))
		require.NoError(t, err)

		result, err := engine.Submit(context.Background(), limitOrder("sell1", "BTC-PERP", orderbookv1.SideSell, 10, 100))
		require.NoError(t, err)
		assert.Equal(t, orderbookv1.StatusFilled, result.Status)
		require.Equal(t, 1, len(result.Matches))
	})

	t.Run("symbols are isolated", func(t *testing.T) {
		fixture := setupTestFixture(t)
		defer fixture.teardown()

		engine := startTestEngine(t, fixture, testOptions())

		_, err := engine.Submit(context.Background(), limitOrder("buy1", "BTC-PERP", orderbookv1.SideBuy, 10, 100))
		require.NoError(t, err)

		// A crossing sell on the other contract must not match it.
		result, err := engine.Submit(context.Background(), limitOrder("sell1", "ETH-PERP", orderbookv1.SideSell, 10, 100))
		require.NoError(t, err)
		assert.Empty(t, result.Matches)
		assert.Equal(t, orderbookv1.StatusNew, result.Status)
	})

	t.Run("unknown symbol", func(t *testing.T) {
		fixture := setupTestFixture(t)
		defer fixture.teardown()

		engine := startTestEngine(t, fixture, testOptions())

		_, err := engine.Submit(context.Background(), limitOrder("buy1", "DOGE-PERP", orderbookv1.SideBuy, 10, 100))
		assert.ErrorIs(t, err, orderbookv1.ErrSymbolMismatch)
	})

	t.Run("nil order", func(t *testing.T) {
		fixture := setupTestFixture(t)
		defer fixture.teardown()

		engine := startTestEngine(t, fixture, testOptions())

		_, err := engine.Submit(context.Background(), nil)
		assert.ErrorIs(t, err, orderbookv1.ErrNilOrder)
	})
}

func TestEngine_CancelAndStatus(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	engine := startTestEngine(t, fixture, testOptions())
	ctx := context.Background()

	_, err := engine.Submit(ctx, limitOrder("buy1", "BTC-PERP", orderbookv1.SideBuy, 10, 100))
	require.NoError(t, err)

	view, err := engine.OrderStatus(ctx, "BTC-PERP", "buy1")
	require.NoError(t, err)
	assert.Equal(t, orderbookv1.StatusNew, view.Status)

	result, err := engine.Cancel(ctx, "BTC-PERP", "buy1")
	require.NoError(t, err)
	assert.Equal(t, orderbookv1.StatusCancelled, result.Status)
	assert.Equal(t, int64(10), result.CancelledQuantity)

	view, err = engine.OrderStatus(ctx, "BTC-PERP", "buy1")
	require.NoError(t, err)
	assert.Equal(t, orderbookv1.StatusCancelled, view.Status)

	_, err = engine.Cancel(ctx, "BTC-PERP", "buy1")
	assert.ErrorIs(t, err, orderbookv1.ErrOrderNotFound)

	_, err = engine.OrderStatus(ctx, "ETH-PERP", "buy1")
	assert.ErrorIs(t, err, orderbookv1.ErrOrderNotFound)
}

func TestEngine_Snapshot(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	engine := startTestEngine(t, fixture, testOptions())
	ctx := context.Background()

	_, err := engine.Submit(ctx, limitOrder("buy1", "BTC-PERP", orderbookv1.SideBuy, 10, 100))
	require.NoError(t, err)
	_, err = engine.Submit(ctx, limitOrder("sell1", "BTC-PERP", orderbookv1.SideSell, 5, 105))
	require.NoError(t, err)

	snapshot, err := engine.Snapshot(ctx, "BTC-PERP", 10)
	require.NoError(t, err)
	assert.Equal(t, "BTC-PERP", snapshot.Symbol)
	require.Equal(t, 1, len(snapshot.Bids))
	assert.Equal(t, 100.0, snapshot.Bids[0].Price)
	require.Equal(t, 1, len(snapshot.Asks))
	assert.Equal(t, 105.0, snapshot.Asks[0].Price)

	_, err = engine.Snapshot(ctx, "DOGE-PERP", 10)
	assert.ErrorIs(t, err, orderbookv1.ErrSymbolMismatch)
}

func TestEngine_OrderIntake(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	placed := make(chan struct{})
	var delivered atomic.Bool

	placeRequest := &orderreaderv1.OrderRequest{
		Action:   orderreaderv1.ActionPlace,
		OrderID:  "intake1",
		Symbol:   "BTC-PERP",
		Type:     orderbookv1.OrderTypeLimit,
		Side:     orderbookv1.SideBuy,
		Position: orderbookv1.PositionLong,
		Quantity: 10,
		Price:    100,
	}

	// First read delivers one placement; later reads block until shutdown.
	fixture.mockOrderReader.EXPECT().
		ReadMessage(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (kafka.Message, *orderreaderv1.OrderRequest, error) {
			if delivered.CompareAndSwap(false, true) {
				return kafka.Message{Offset: 1}, placeRequest, nil
			}
			<-ctx.Done()
			return kafka.Message{}, nil, ctx.Err()
		}).
		AnyTimes()
	fixture.mockOrderReader.EXPECT().
		CommitMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, msgs ...kafka.Message) error {
			close(placed)
			return nil
		}).
		Times(1)
	fixture.mockOrderReader.EXPECT().
		Close().
		Return(nil).
		Times(1)

	engine := NewEngineWithOptions(fixture.config, fixture.logger, fixture.mockOrderReader, fixture.mockMatchPublisher, nil, testOptions())
	require.NoError(t, engine.Start(context.Background()))

	select {
	case <-placed:
	case <-time.After(5 * time.Second):
		t.Fatal("intake never processed the placement")
	}

	view, err := engine.OrderStatus(context.Background(), "BTC-PERP", "intake1")
	require.NoError(t, err)
	assert.Equal(t, orderbookv1.StatusNew, view.Status)
	assert.Equal(t, int64(10), view.Quantity)

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, engine.Stop(stopCtx))
}

func TestEngine_ExpirySweep(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	opts := testOptions()
	opts.ExpirySweepInterval = 10 * time.Millisecond

	engine := startTestEngine(t, fixture, opts)
	ctx := context.Background()

	order := limitOrder("buy1", "BTC-PERP", orderbookv1.SideBuy, 10, 100)
	order.Expiration = time.Now().Add(50 * time.Millisecond)

	_, err := engine.Submit(ctx, order)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		view, err := engine.OrderStatus(ctx, "BTC-PERP", "buy1")
		return err == nil && view.Status == orderbookv1.StatusExpired
	}, 2*time.Second, 10*time.Millisecond)
}

func TestEngine_DepthPublication(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	opts := testOptions()
	opts.DepthPublishInterval = 10 * time.Millisecond

	stored := make(chan *depthv1.DepthSnapshot, 64)
	fixture.mockDepthStore.EXPECT().
		StoreDepth(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, snapshot *depthv1.DepthSnapshot) error {
			select {
			case stored <- snapshot:
			default:
			}
			return nil
		}).
		AnyTimes()

	engine := NewEngineWithOptions(fixture.config, fixture.logger, nil, fixture.mockMatchPublisher, fixture.mockDepthStore, opts)
	require.NoError(t, engine.Start(context.Background()))

	_, err := engine.Submit(context.Background(), limitOrder("buy1", "BTC-PERP", orderbookv1.SideBuy, 10, 100))
	require.NoError(t, err)

	// Wait for a published snapshot carrying the resting bid.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case snapshot := <-stored:
			if snapshot.Symbol == "BTC-PERP" && len(snapshot.Bids) == 1 {
				assert.Equal(t, 100.0, snapshot.Bids[0].Price)
				assert.Equal(t, int64(10), snapshot.Bids[0].Quantity)

				stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				require.NoError(t, engine.Stop(stopCtx))
				return
			}
		case <-deadline:
			t.Fatal("depth snapshot never published")
		}
	}
}
