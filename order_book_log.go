package match

import (
	"math/big"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// OrderBookLog represents an event in the order book.
// SequenceID is increasing for every event of a book, used for ordering,
// deduplication, and rebuild synchronization in downstream systems.
// - Open: the remaining size of an order rested at Price on Side
// - Match: one trade; Side is the aggressor side, Price is the resting level price
type OrderBookLog struct {
	SequenceID   uint64          `json:"seq_id"`
	TradeID      uint64          `json:"trade_id,omitempty"` // Sequential trade ID, only set for Match events
	Type         LogType         `json:"type"`
	MarketID     string          `json:"market_id"`
	Side         Side            `json:"side"`
	Price        decimal.Decimal `json:"price"`
	Size         uint64          `json:"size"`
	Amount       decimal.Decimal `json:"amount,omitempty"` // Price * Size, only set for Match events
	OrderID      string          `json:"order_id"`
	MakerOrderID string          `json:"maker_order_id,omitempty"`
	Timestamp    int64           `json:"timestamp"` // Unix milli of the order that caused the event
	CreatedAt    time.Time       `json:"created_at"`
}

var bookLogPool = sync.Pool{
	New: func() any {
		return new(OrderBookLog)
	},
}

func acquireBookLog() *OrderBookLog {
	return bookLogPool.Get().(*OrderBookLog)
}

func releaseBookLog(log *OrderBookLog) {
	// For decimal.Decimal, the zero value (nil internal pointer) represents 0, which is valid.
	*log = OrderBookLog{}
	bookLogPool.Put(log)
}

func NewOpenLog(seqID uint64, marketID string, order *Order) *OrderBookLog {
	log := acquireBookLog()
	log.SequenceID = seqID
	log.Type = LogTypeOpen
	log.MarketID = marketID
	log.Side = order.Side
	log.Price = order.Price
	log.Size = order.Size
	log.OrderID = order.ID
	log.Timestamp = order.Timestamp
	log.CreatedAt = time.Now().UTC()
	return log
}

func NewMatchLog(seqID uint64, tradeID uint64, marketID string, takerOrder *Order, makerOrder *Order, price decimal.Decimal, size uint64) *OrderBookLog {
	log := acquireBookLog()
	log.SequenceID = seqID
	log.TradeID = tradeID
	log.Type = LogTypeMatch
	log.MarketID = marketID
	log.Side = takerOrder.Side
	log.Price = price
	log.Size = size
	log.Amount = price.Mul(sizeDecimal(size))
	log.OrderID = takerOrder.ID
	log.MakerOrderID = makerOrder.ID
	log.Timestamp = takerOrder.Timestamp
	log.CreatedAt = time.Now().UTC()
	return log
}

func sizeDecimal(size uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(size), 0)
}
