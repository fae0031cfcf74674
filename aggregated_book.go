package match

import (
	"fmt"

	"github.com/igrmk/treemap/v2"
	"github.com/shopspring/decimal"
)

// AggregatedBook maintains a simplified view of the order book,
// tracking only price levels and their aggregated sizes (depth).
// It is designed for downstream consumers that rebuild order book
// state from OrderBookLog events instead of querying the book itself.
type AggregatedBook struct {
	seqID uint64 // Last processed SequenceID for gap detection and deduplication
	ask   *treemap.TreeMap[decimal.Decimal, uint64]
	bid   *treemap.TreeMap[decimal.Decimal, uint64]
}

// DepthLevel is one aggregated price level.
type DepthLevel struct {
	Price decimal.Decimal
	Size  uint64
}

// NewAggregatedBook creates a new AggregatedBook instance with empty ask and bid sides.
func NewAggregatedBook() *AggregatedBook {
	return &AggregatedBook{
		ask: newDepthTree(),
		bid: newDepthTree(),
	}
}

func newDepthTree() *treemap.TreeMap[decimal.Decimal, uint64] {
	return treemap.NewWithKeyCompare[decimal.Decimal, uint64](func(a, b decimal.Decimal) bool {
		return a.LessThan(b)
	})
}

// SequenceID returns the last processed sequence ID.
// Used for synchronization and gap detection during rebuild.
func (ab *AggregatedBook) SequenceID() uint64 {
	return ab.seqID
}

// Replay applies an OrderBookLog event to update the aggregated book state.
// Events already applied are ignored; an event that skips a sequence ID returns ErrSequenceGap
// and leaves the book untouched.
func (ab *AggregatedBook) Replay(log *OrderBookLog) error {
	if log == nil {
		return ErrInvalidParam
	}

	if log.SequenceID <= ab.seqID {
		return nil
	}

	if log.SequenceID != ab.seqID+1 {
		return fmt.Errorf("%w: expected %d, got %d", ErrSequenceGap, ab.seqID+1, log.SequenceID)
	}

	change := CalculateDepthChange(log)
	if change.SizeDiff != 0 {
		ab.apply(change)
	}

	ab.seqID = log.SequenceID
	return nil
}

// Publish lets the aggregated book subscribe to an OrderBook directly.
func (ab *AggregatedBook) Publish(logs ...*OrderBookLog) {
	for _, log := range logs {
		if log == nil {
			continue
		}
		if err := ab.Replay(log); err != nil {
			logger.Warn("aggregated book replay failed", "seq_id", log.SequenceID, "error", err)
		}
	}
}

func (ab *AggregatedBook) apply(change DepthChange) {
	tree := ab.tree(change.Side)
	if tree == nil {
		return
	}

	current, _ := tree.Get(change.Price)
	if change.SizeDiff > 0 {
		tree.Set(change.Price, current+uint64(change.SizeDiff))
		return
	}

	removed := uint64(-change.SizeDiff)
	if removed >= current {
		tree.Del(change.Price)
		return
	}
	tree.Set(change.Price, current-removed)
}

func (ab *AggregatedBook) tree(side Side) *treemap.TreeMap[decimal.Decimal, uint64] {
	switch side {
	case Buy:
		return ab.bid
	case Sell:
		return ab.ask
	}
	return nil
}

// OnRebuild resets the aggregated book from a snapshot.
// This should be called before replaying events produced after the snapshot.
func (ab *AggregatedBook) OnRebuild(snap *OrderBookSnapshot) error {
	if snap == nil {
		return ErrInvalidParam
	}

	ab.ask = newDepthTree()
	ab.bid = newDepthTree()

	for _, level := range snap.Bids {
		if size := level.TotalSize(); size > 0 {
			ab.bid.Set(level.Price, size)
		}
	}
	for _, level := range snap.Asks {
		if size := level.TotalSize(); size > 0 {
			ab.ask.Set(level.Price, size)
		}
	}

	ab.seqID = snap.SeqID
	return nil
}

// Depth returns the aggregated size at a specific price level for the given side.
// Returns zero if the price level does not exist.
func (ab *AggregatedBook) Depth(side Side, price decimal.Decimal) (uint64, error) {
	tree := ab.tree(side)
	if tree == nil {
		return 0, ErrInvalidSide
	}

	size, _ := tree.Get(price)
	return size, nil
}

// Levels returns the levels of one side, best price first.
func (ab *AggregatedBook) Levels(side Side) []DepthLevel {
	tree := ab.tree(side)
	if tree == nil {
		return nil
	}

	levels := make([]DepthLevel, 0, tree.Len())
	if side == Buy {
		for it := tree.Reverse(); it.Valid(); it.Next() {
			levels = append(levels, DepthLevel{Price: it.Key(), Size: it.Value()})
		}
		return levels
	}

	for it := tree.Iterator(); it.Valid(); it.Next() {
		levels = append(levels, DepthLevel{Price: it.Key(), Size: it.Value()})
	}
	return levels
}
