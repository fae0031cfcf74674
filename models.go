package match

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/0x5487/matching-core/protocol"
	"github.com/rs/xid"
	"github.com/shopspring/decimal"
)

type Side = protocol.Side

const (
	Buy  Side = protocol.SideBuy
	Sell Side = protocol.SideSell
)

type LogType = protocol.LogType

const (
	LogTypeOpen  LogType = protocol.LogTypeOpen
	LogTypeMatch LogType = protocol.LogTypeMatch
)

// Order represents the state of an order in the order book.
// Size is the remaining quantity; it only ever decreases while matching.
type Order struct {
	ID        string          `json:"id"`
	Side      Side            `json:"side"`
	Price     decimal.Decimal `json:"price"`
	Size      uint64          `json:"size"`
	Timestamp int64           `json:"timestamp"` // Unix milli, submission time
}

// NewOrder validates a place command and converts it into an Order.
// A missing order ID is generated and a missing timestamp is set to now.
func NewOrder(cmd *protocol.PlaceOrderCommand) (Order, error) {
	if cmd == nil {
		return Order{}, ErrInvalidParam
	}

	if cmd.Side != Buy && cmd.Side != Sell {
		return Order{}, ErrInvalidSide
	}

	price, err := decimal.NewFromString(strings.TrimSpace(cmd.Price))
	if err != nil {
		return Order{}, fmt.Errorf("%w: %q", ErrInvalidPrice, cmd.Price)
	}
	if !price.IsPositive() {
		return Order{}, fmt.Errorf("%w: %s", ErrInvalidPrice, price.String())
	}

	size, err := strconv.ParseUint(strings.TrimSpace(cmd.Size), 10, 64)
	if err != nil {
		return Order{}, fmt.Errorf("%w: %q", ErrInvalidSize, cmd.Size)
	}
	if size > MaxOrderSize {
		return Order{}, fmt.Errorf("%w: %d exceeds %d", ErrInvalidSize, size, uint64(MaxOrderSize))
	}

	order := Order{
		ID:        cmd.OrderID,
		Side:      cmd.Side,
		Price:     price,
		Size:      size,
		Timestamp: cmd.Timestamp,
	}

	if len(order.ID) == 0 {
		order.ID = xid.New().String()
	}

	if order.Timestamp == 0 {
		order.Timestamp = time.Now().UnixMilli()
	}

	return order, nil
}

// DepthChange represents a change in the order book depth.
type DepthChange struct {
	Side     Side
	Price    decimal.Decimal
	SizeDiff int64
}

// DepthItem is one aggregated price level of the book.
type DepthItem struct {
	ID    uint32
	Price decimal.Decimal
	Size  uint64
	Count int64
}

// Depth is the aggregated top-N view of both sides.
type Depth struct {
	UpdateID uint64       `json:"update_id"`
	Asks     []*DepthItem `json:"asks"`
	Bids     []*DepthItem `json:"bids"`
}

// BookStats contains statistics about the order book queues
type BookStats struct {
	AskDepthCount int64
	AskOrderCount int64
	BidDepthCount int64
	BidOrderCount int64
}
