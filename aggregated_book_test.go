package match

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/0x5487/matching-core/protocol"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AggregatedBookTestSuite struct {
	suite.Suite
	book      *OrderBook
	publisher *MemoryPublishLog
	agg       *AggregatedBook
}

func TestAggregatedBookTestSuite(t *testing.T) {
	suite.Run(t, new(AggregatedBookTestSuite))
}

func (s *AggregatedBookTestSuite) SetupTest() {
	s.publisher = NewMemoryPublishLog()
	s.agg = NewAggregatedBook()
	s.book = NewOrderBook("BTC-USDT", WithPublishLog(NewTeePublishLog(s.publisher, s.agg)))
}

func (s *AggregatedBookTestSuite) assertMatchesSnapshot() {
	snap := s.book.Snapshot()

	bids := s.agg.Levels(Buy)
	s.Require().Len(bids, len(snap.Bids))
	for i, level := range snap.Bids {
		s.True(level.Price.Equal(bids[i].Price))
		s.Equal(level.TotalSize(), bids[i].Size)
	}

	asks := s.agg.Levels(Sell)
	s.Require().Len(asks, len(snap.Asks))
	for i, level := range snap.Asks {
		s.True(level.Price.Equal(asks[i].Price))
		s.Equal(level.TotalSize(), asks[i].Size)
	}

	s.Equal(snap.SeqID, s.agg.SequenceID())
}

func (s *AggregatedBookTestSuite) TestEmpty() {
	s.Empty(s.agg.Levels(Buy))
	s.Empty(s.agg.Levels(Sell))
	s.Equal(uint64(0), s.agg.SequenceID())

	size, err := s.agg.Depth(Buy, decimal.NewFromInt(1))
	s.NoError(err)
	s.Equal(uint64(0), size)

	_, err = s.agg.Depth(Side(0), decimal.NewFromInt(1))
	s.ErrorIs(err, ErrInvalidSide)
}

func (s *AggregatedBookTestSuite) TestFollowsOrderBook() {
	s.book.Process(newTestOrder("b1", Buy, 99, 3, 1), nil)
	s.book.Process(newTestOrder("b2", Buy, 100, 2, 2), nil)
	s.book.Process(newTestOrder("s1", Sell, 101, 4, 3), nil)
	s.assertMatchesSnapshot()

	size, err := s.agg.Depth(Buy, decimal.RequireFromString("100.00"))
	s.NoError(err)
	s.Equal(uint64(2), size)

	// sweeps 100 then 99 partially
	s.book.Process(newTestOrder("s2", Sell, 99, 4, 4), nil)
	s.assertMatchesSnapshot()

	size, _ = s.agg.Depth(Buy, decimal.NewFromInt(100))
	s.Equal(uint64(0), size)
	size, _ = s.agg.Depth(Buy, decimal.NewFromInt(99))
	s.Equal(uint64(1), size)

	levels := s.agg.Levels(Sell)
	s.Require().Len(levels, 1)
	s.Equal("101", levels[0].Price.String())
}

func (s *AggregatedBookTestSuite) TestRandomFlow() {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		side := Buy
		if rng.Intn(2) == 0 {
			side = Sell
		}
		s.book.Process(newTestOrder(strconv.Itoa(i), side, int64(rng.Intn(11)+95), uint64(rng.Intn(10)+1), int64(i)), nil)
	}
	s.assertMatchesSnapshot()
}

func (s *AggregatedBookTestSuite) TestLargestSizesStayExact() {
	for i := 0; i < 3; i++ {
		order, err := NewOrder(&protocol.PlaceOrderCommand{
			OrderID:   "s" + strconv.Itoa(i),
			Side:      protocol.SideSell,
			Price:     "101",
			Size:      strconv.FormatUint(MaxOrderSize, 10),
			Timestamp: int64(i + 1),
		})
		s.Require().NoError(err)
		s.book.Process(order, nil)
	}
	s.assertMatchesSnapshot()

	size, err := s.agg.Depth(Sell, decimal.NewFromInt(101))
	s.NoError(err)
	s.Equal(3*uint64(MaxOrderSize), size)

	depth, err := s.book.Depth(1)
	s.Require().NoError(err)
	s.Equal(3*uint64(MaxOrderSize), depth.Asks[0].Size)

	s.book.Process(newTestOrder("b1", Buy, 101, MaxOrderSize, 4), nil)
	s.assertMatchesSnapshot()
	size, _ = s.agg.Depth(Sell, decimal.NewFromInt(101))
	s.Equal(2*uint64(MaxOrderSize), size)
}

func (s *AggregatedBookTestSuite) TestReplayNilLog() {
	s.ErrorIs(s.agg.Replay(nil), ErrInvalidParam)
	s.NotPanics(func() { s.agg.Publish(nil) })
	s.Equal(uint64(0), s.agg.SequenceID())
}

func (s *AggregatedBookTestSuite) TestReplaySequence() {
	s.book.Process(newTestOrder("b1", Buy, 99, 3, 1), nil)
	s.book.Process(newTestOrder("b2", Buy, 98, 1, 2), nil)
	s.book.Process(newTestOrder("s1", Sell, 99, 1, 3), nil)

	logs := s.publisher.Logs()
	s.Require().Len(logs, 3)

	agg := NewAggregatedBook()

	// gap
	err := agg.Replay(logs[1])
	s.ErrorIs(err, ErrSequenceGap)
	s.Equal(uint64(0), agg.SequenceID())
	s.Empty(agg.Levels(Buy))

	for _, log := range logs {
		s.NoError(agg.Replay(log))
	}
	// duplicates are ignored
	s.NoError(agg.Replay(logs[0]))
	s.NoError(agg.Replay(logs[2]))

	s.Equal(uint64(3), agg.SequenceID())
	size, _ := agg.Depth(Buy, decimal.NewFromInt(99))
	s.Equal(uint64(2), size)
	size, _ = agg.Depth(Buy, decimal.NewFromInt(98))
	s.Equal(uint64(1), size)
}

func (s *AggregatedBookTestSuite) TestRebuildFromSnapshot() {
	s.book.Process(newTestOrder("b1", Buy, 99, 3, 1), nil)
	s.book.Process(newTestOrder("s1", Sell, 101, 2, 2), nil)

	agg := NewAggregatedBook()
	s.ErrorIs(agg.OnRebuild(nil), ErrInvalidParam)
	s.NoError(agg.OnRebuild(s.book.Snapshot()))
	s.Equal(uint64(2), agg.SequenceID())

	// continue from the snapshot with live events
	before := s.publisher.Count()
	s.book.Process(newTestOrder("s2", Sell, 99, 1, 3), nil)
	for _, log := range s.publisher.Logs()[before:] {
		s.NoError(agg.Replay(log))
	}

	size, _ := agg.Depth(Buy, decimal.NewFromInt(99))
	s.Equal(uint64(2), size)
	size, _ = agg.Depth(Sell, decimal.NewFromInt(101))
	s.Equal(uint64(2), size)
	s.Equal(s.book.Snapshot().SeqID, agg.SequenceID())
}

func (s *AggregatedBookTestSuite) TestCalculateDepthChange() {
	open := &OrderBookLog{Type: LogTypeOpen, Side: Buy, Price: decimal.NewFromInt(10), Size: 4}
	change := CalculateDepthChange(open)
	s.Equal(Buy, change.Side)
	s.Equal(int64(4), change.SizeDiff)

	trade := &OrderBookLog{Type: LogTypeMatch, Side: Buy, Price: decimal.NewFromInt(11), Size: 3}
	change = CalculateDepthChange(trade)
	s.Equal(Sell, change.Side)
	s.Equal("11", change.Price.String())
	s.Equal(int64(-3), change.SizeDiff)

	s.Equal(DepthChange{}, CalculateDepthChange(&OrderBookLog{Type: LogType("unknown")}))
}
