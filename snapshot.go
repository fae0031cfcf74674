package match

import "github.com/shopspring/decimal"

// OrderBookSnapshot is the read-only state of a single OrderBook.
// Both sides are ordered from the most to the least aggressive price.
type OrderBookSnapshot struct {
	MarketID string               `json:"market_id"`
	SeqID    uint64               `json:"seq_id"`   // Current OrderBookLog sequence ID
	TradeID  uint64               `json:"trade_id"` // Current Trade sequence ID
	Bids     []PriceLevelSnapshot `json:"bids"`     // Highest price first
	Asks     []PriceLevelSnapshot `json:"asks"`     // Lowest price first
}

// PriceLevelSnapshot lists the orders resting at one price in time priority.
type PriceLevelSnapshot struct {
	Price  decimal.Decimal `json:"price"`
	Orders []RestingOrder  `json:"orders"`
}

// RestingOrder is one order inside a price level snapshot.
type RestingOrder struct {
	ID   string `json:"id"`
	Size uint64 `json:"size"`
}

// TotalSize returns the sum of all resting sizes at this price.
func (l PriceLevelSnapshot) TotalSize() uint64 {
	var total uint64
	for _, o := range l.Orders {
		total += o.Size
	}
	return total
}
