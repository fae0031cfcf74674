package match

import (
	"testing"
	"time"

	"github.com/0x5487/matching-core/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	t.Run("keeps given id and timestamp", func(t *testing.T) {
		order, err := NewOrder(&protocol.PlaceOrderCommand{
			OrderID:   "o-1",
			Side:      protocol.SideSell,
			Price:     "101.25",
			Size:      "7",
			Timestamp: 1700000000000,
		})
		require.NoError(t, err)

		assert.Equal(t, "o-1", order.ID)
		assert.Equal(t, Sell, order.Side)
		assert.Equal(t, "101.25", order.Price.String())
		assert.Equal(t, uint64(7), order.Size)
		assert.Equal(t, int64(1700000000000), order.Timestamp)
	})

	t.Run("fills id and timestamp", func(t *testing.T) {
		before := time.Now().UnixMilli()
		cmd, err := protocol.ParsePlaceOrder("buy 10 3")
		require.NoError(t, err)

		order, err := NewOrder(cmd)
		require.NoError(t, err)

		assert.NotEmpty(t, order.ID)
		assert.GreaterOrEqual(t, order.Timestamp, before)
		assert.LessOrEqual(t, order.Timestamp, time.Now().UnixMilli())

		other, err := NewOrder(cmd)
		require.NoError(t, err)
		assert.NotEqual(t, order.ID, other.ID)
	})

	t.Run("largest size is accepted", func(t *testing.T) {
		order, err := NewOrder(&protocol.PlaceOrderCommand{Side: protocol.SideBuy, Price: "1", Size: "4294967295"})
		require.NoError(t, err)
		assert.Equal(t, uint64(MaxOrderSize), order.Size)
	})

	t.Run("zero size is accepted", func(t *testing.T) {
		order, err := NewOrder(&protocol.PlaceOrderCommand{Side: protocol.SideBuy, Price: "1", Size: "0"})
		require.NoError(t, err)
		assert.Equal(t, uint64(0), order.Size)
	})

	testCases := []struct {
		name string
		cmd  *protocol.PlaceOrderCommand
		err  error
	}{
		{name: "nil command", cmd: nil, err: ErrInvalidParam},
		{name: "missing side", cmd: &protocol.PlaceOrderCommand{Price: "1", Size: "1"}, err: ErrInvalidSide},
		{name: "price not a number", cmd: &protocol.PlaceOrderCommand{Side: protocol.SideBuy, Price: "abc", Size: "1"}, err: ErrInvalidPrice},
		{name: "zero price", cmd: &protocol.PlaceOrderCommand{Side: protocol.SideBuy, Price: "0", Size: "1"}, err: ErrInvalidPrice},
		{name: "negative price", cmd: &protocol.PlaceOrderCommand{Side: protocol.SideSell, Price: "-5", Size: "1"}, err: ErrInvalidPrice},
		{name: "infinite price", cmd: &protocol.PlaceOrderCommand{Side: protocol.SideSell, Price: "inf", Size: "1"}, err: ErrInvalidPrice},
		{name: "negative size", cmd: &protocol.PlaceOrderCommand{Side: protocol.SideBuy, Price: "1", Size: "-1"}, err: ErrInvalidSize},
		{name: "fractional size", cmd: &protocol.PlaceOrderCommand{Side: protocol.SideBuy, Price: "1", Size: "1.5"}, err: ErrInvalidSize},
		{name: "size above max", cmd: &protocol.PlaceOrderCommand{Side: protocol.SideBuy, Price: "1", Size: "4294967296"}, err: ErrInvalidSize},
		{name: "size above int64", cmd: &protocol.PlaceOrderCommand{Side: protocol.SideSell, Price: "1", Size: "9223372036854775808"}, err: ErrInvalidSize},
		{name: "size above uint64", cmd: &protocol.PlaceOrderCommand{Side: protocol.SideSell, Price: "1", Size: "18446744073709551616"}, err: ErrInvalidSize},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewOrder(tc.cmd)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}
