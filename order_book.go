package match

// OrderBookOption configures an OrderBook.
type OrderBookOption func(*OrderBook)

// WithPublishLog sets where trade and rest logs are published.
func WithPublishLog(publisher PublishLog) OrderBookOption {
	return func(book *OrderBook) {
		if publisher != nil {
			book.publishTrader = publisher
		}
	}
}

// OrderBook matches orders of a single market under price/time priority.
// It is not safe for concurrent use; callers serialize Process and all queries.
type OrderBook struct {
	marketID      string
	seqID         uint64 // increasing ID of every OrderBookLog produced
	tradeID       uint64 // increasing ID of Match events only
	bidQueue      *queue
	askQueue      *queue
	publishTrader PublishLog
}

// NewOrderBook creates a new order book instance.
func NewOrderBook(marketID string, opts ...OrderBookOption) *OrderBook {
	book := &OrderBook{
		marketID:      marketID,
		bidQueue:      NewBuyerQueue(),
		askQueue:      NewSellerQueue(),
		publishTrader: NewDiscardPublishLog(),
	}

	for _, opt := range opts {
		opt(book)
	}

	return book
}

// MarketID returns the market this book belongs to.
func (book *OrderBook) MarketID() string {
	return book.marketID
}

// Process matches order against the opposite side and rests any remainder on its own side.
// Every trade is published as a Match log and recorded in tracker (which may be nil)
// at the resting price with the incoming order's timestamp. A zero size order is ignored.
func (book *OrderBook) Process(order Order, tracker *OHLCTracker) {
	if order.Size == 0 {
		return
	}

	// the book owns this copy from here on; the caller's value is never aliased
	incoming := &order

	var myQueue, targetQueue *queue
	if incoming.Side == Buy {
		myQueue = book.bidQueue
		targetQueue = book.askQueue
	} else {
		myQueue = book.askQueue
		targetQueue = book.bidQueue
	}

	logs := make([]*OrderBookLog, 0, 8)

	for incoming.Size > 0 {
		best, ok := targetQueue.bestPrice()
		if !ok {
			break
		}

		if incoming.Side == Buy && best.GreaterThan(incoming.Price) ||
			incoming.Side == Sell && best.LessThan(incoming.Price) {
			break
		}

		// consume the best level front to back until it or the incoming order runs out
		for incoming.Size > 0 {
			tOrd := targetQueue.peekHeadOrder()
			if tOrd == nil || !tOrd.Price.Equal(best) {
				break
			}
			tOrd = targetQueue.popHeadOrder()

			traded := min(incoming.Size, tOrd.Size)
			incoming.Size -= traded
			tOrd.Size -= traded

			book.seqID++
			book.tradeID++
			logs = append(logs, NewMatchLog(book.seqID, book.tradeID, book.marketID, incoming, tOrd, best, traded))

			if tracker != nil {
				tracker.Record(best, incoming.Timestamp)
			}

			if tOrd.Size > 0 {
				targetQueue.insertOrder(tOrd, true)
				break
			}
		}
	}

	if incoming.Size > 0 {
		myQueue.insertOrder(incoming, false)
		book.seqID++
		logs = append(logs, NewOpenLog(book.seqID, book.marketID, incoming))
	}

	if len(logs) > 0 {
		book.publishTrader.Publish(logs...)
		for _, log := range logs {
			releaseBookLog(log)
		}
	}
}

// Snapshot returns every resting order of both sides, most aggressive price first.
func (book *OrderBook) Snapshot() *OrderBookSnapshot {
	return &OrderBookSnapshot{
		MarketID: book.marketID,
		SeqID:    book.seqID,
		TradeID:  book.tradeID,
		Bids:     book.bidQueue.toSnapshot(),
		Asks:     book.askQueue.toSnapshot(),
	}
}

// Depth returns the current depth of the order book up to the specified limit.
func (book *OrderBook) Depth(limit uint32) (*Depth, error) {
	if limit == 0 {
		return nil, ErrInvalidParam
	}

	return &Depth{
		UpdateID: book.seqID,
		Asks:     book.askQueue.depth(limit),
		Bids:     book.bidQueue.depth(limit),
	}, nil
}

// Stats returns usage statistics for the order book.
func (book *OrderBook) Stats() *BookStats {
	return &BookStats{
		AskDepthCount: book.askQueue.depthCount(),
		AskOrderCount: book.askQueue.orderCount(),
		BidDepthCount: book.bidQueue.depthCount(),
		BidOrderCount: book.bidQueue.orderCount(),
	}
}
