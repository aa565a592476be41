package matching

import (
	"fmt"
	"testing"
	"time"

	orderbookv1 "github.com/joaquinbejar/OrderBookEngine/internal/domain/orderbook/v1"
	"github.com/joaquinbejar/OrderBookEngine/internal/usecase/orderbook"
)

func setupBenchmarkEngine(b *testing.B) *Engine {
	b.Helper()
	return NewEngine(
		orderbook.NewOrderBook("BTC-PERP"),
		WithClock(func() time.Time { return baseTime }),
	)
}

func BenchmarkEngine_Submit_RestingLimit(b *testing.B) {
	engine := setupBenchmarkEngine(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		side := orderbookv1.SideBuy
		if i%2 == 0 {
			side = orderbookv1.SideSell
		}
		// Vary price so both sides build depth without ever crossing.
		price := 50_000.0 + float64(i%100)
		if side == orderbookv1.SideBuy {
			price = 40_000.0 - float64(i%100)
		}

		order := orderbookv1.NewLimitOrder(
			fmt.Sprintf("bench-%d", i),
			"BTC-PERP",
			side,
			orderbookv1.PositionLong,
			10,
			price,
		)
		if _, err := engine.Submit(order); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEngine_Submit_CrossingFlow(b *testing.B) {
	engine := setupBenchmarkEngine(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		side := orderbookv1.SideBuy
		if i%2 == 0 {
			side = orderbookv1.SideSell
		}

		// Everyone quotes the same price, so half the submissions match
		// against the liquidity the other half rested.
		order := orderbookv1.NewLimitOrder(
			fmt.Sprintf("bench-%d", i),
			"BTC-PERP",
			side,
			orderbookv1.PositionLong,
			10,
			50_000.0,
		)
		if _, err := engine.Submit(order); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEngine_Snapshot(b *testing.B) {
	engine := setupBenchmarkEngine(b)

	for i := 0; i < 500; i++ {
		order := orderbookv1.NewLimitOrder(
			fmt.Sprintf("bid-%d", i),
			"BTC-PERP",
			orderbookv1.SideBuy,
			orderbookv1.PositionLong,
			10,
			40_000.0-float64(i),
		)
		if _, err := engine.Submit(order); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.Snapshot(20)
	}
}
