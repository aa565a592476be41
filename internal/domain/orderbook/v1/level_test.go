package orderbookv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPriceLevel(t *testing.T) {
	level := NewPriceLevel(100.0)

	assert.NotNil(t, level)
	assert.Equal(t, 100.0, level.Price)
	assert.Equal(t, int64(0), level.TotalQuantity())
	assert.Equal(t, 0, level.OrderCount())
	assert.True(t, level.IsEmpty())
}

func TestPriceLevel_Enqueue(t *testing.T) {
	t.Run("Enqueue valid order", func(t *testing.T) {
		level := NewPriceLevel(100.0)
		order := createTestLimitOrder("ord-1", SideBuy, 10, 100.0)

		err := level.Enqueue(order)

		require.NoError(t, err)
		assert.Equal(t, 1, level.OrderCount())
		assert.Equal(t, int64(10), level.TotalQuantity())
		assert.False(t, level.IsEmpty())
	})

	t.Run("Enqueue nil order", func(t *testing.T) {
		level := NewPriceLevel(100.0)
		assert.ErrorIs(t, level.Enqueue(nil), ErrNilOrder)
	})

	t.Run("Enqueue fully filled order", func(t *testing.T) {
		level := NewPriceLevel(100.0)
		order := createTestLimitOrder("ord-1", SideBuy, 10, 100.0)
		require.NoError(t, order.ApplyFill(10))

		assert.ErrorIs(t, level.Enqueue(order), ErrInvalidQuantity)
	})

	t.Run("Total tracks remaining not original quantity", func(t *testing.T) {
		level := NewPriceLevel(100.0)
		order := createTestLimitOrder("ord-1", SideBuy, 10, 100.0)
		require.NoError(t, order.ApplyFill(4))

		require.NoError(t, level.Enqueue(order))
		assert.Equal(t, int64(6), level.TotalQuantity())
	})
}

func TestPriceLevel_Peek(t *testing.T) {
	level := NewPriceLevel(100.0)

	t.Run("Peek empty level", func(t *testing.T) {
		assert.Nil(t, level.Peek())
	})

	t.Run("Peek returns oldest order", func(t *testing.T) {
		order1 := createTestLimitOrder("ord-1", SideBuy, 10, 100.0)
		order2 := createTestLimitOrder("ord-2", SideBuy, 20, 100.0)
		require.NoError(t, level.Enqueue(order1))
		require.NoError(t, level.Enqueue(order2))

		assert.Equal(t, order1, level.Peek())
		assert.Equal(t, 2, level.OrderCount()) // peek does not remove
	})
}

func TestPriceLevel_FillFront(t *testing.T) {
	t.Run("Partial fill keeps head in place", func(t *testing.T) {
		level := NewPriceLevel(100.0)
		order := createTestLimitOrder("ord-1", SideSell, 10, 100.0)
		require.NoError(t, level.Enqueue(order))

		err := level.FillFront(4)

		require.NoError(t, err)
		assert.Equal(t, order, level.Peek())
		assert.Equal(t, int64(6), level.TotalQuantity())
		assert.Equal(t, StatusPartiallyFilled, order.Status)
	})

	t.Run("Complete fill pops the head", func(t *testing.T) {
		level := NewPriceLevel(100.0)
		order1 := createTestLimitOrder("ord-1", SideSell, 10, 100.0)
		order2 := createTestLimitOrder("ord-2", SideSell, 5, 100.0)
		require.NoError(t, level.Enqueue(order1))
		require.NoError(t, level.Enqueue(order2))

		require.NoError(t, level.FillFront(10))

		assert.Equal(t, order2, level.Peek())
		assert.Equal(t, int64(5), level.TotalQuantity())
		assert.Equal(t, StatusFilled, order1.Status)
	})

	t.Run("Fill on empty level", func(t *testing.T) {
		level := NewPriceLevel(100.0)
		assert.ErrorIs(t, level.FillFront(1), ErrOrderNotFound)
	})

	t.Run("Fill exceeding head remaining", func(t *testing.T) {
		level := NewPriceLevel(100.0)
		order := createTestLimitOrder("ord-1", SideSell, 10, 100.0)
		require.NoError(t, level.Enqueue(order))

		err := level.FillFront(11)

		assert.ErrorIs(t, err, ErrInvalidFill)
		assert.Equal(t, int64(10), level.TotalQuantity())
	})
}

func TestPriceLevel_Remove(t *testing.T) {
	t.Run("Remove from middle preserves queue order", func(t *testing.T) {
		level := NewPriceLevel(100.0)
		order1 := createTestLimitOrder("ord-1", SideBuy, 10, 100.0)
		order2 := createTestLimitOrder("ord-2", SideBuy, 20, 100.0)
		order3 := createTestLimitOrder("ord-3", SideBuy, 30, 100.0)
		require.NoError(t, level.Enqueue(order1))
		require.NoError(t, level.Enqueue(order2))
		require.NoError(t, level.Enqueue(order3))

		removed, err := level.Remove("ord-2")

		require.NoError(t, err)
		assert.Equal(t, order2, removed)
		assert.Equal(t, int64(40), level.TotalQuantity())

		orders := level.Orders()
		require.Equal(t, 2, len(orders))
		assert.Equal(t, "ord-1", orders[0].ID)
		assert.Equal(t, "ord-3", orders[1].ID)
	})

	t.Run("Remove unknown order", func(t *testing.T) {
		level := NewPriceLevel(100.0)
		_, err := level.Remove("missing")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("Remove partially filled order subtracts remaining", func(t *testing.T) {
		level := NewPriceLevel(100.0)
		order := createTestLimitOrder("ord-1", SideBuy, 10, 100.0)
		require.NoError(t, level.Enqueue(order))
		require.NoError(t, level.FillFront(4))

		removed, err := level.Remove("ord-1")

		require.NoError(t, err)
		assert.Equal(t, order, removed)
		assert.Equal(t, int64(0), level.TotalQuantity())
		assert.True(t, level.IsEmpty())
	})
}

func TestPriceLevel_Orders_Copy(t *testing.T) {
	level := NewPriceLevel(100.0)
	order := createTestLimitOrder("ord-1", SideBuy, 10, 100.0)
	require.NoError(t, level.Enqueue(order))

	orders := level.Orders()
	orders[0] = nil

	// Mutating the returned slice must not affect the level.
	assert.Equal(t, order, level.Peek())
}
