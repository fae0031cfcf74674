package match

import (
	"github.com/gammazero/deque"
	"github.com/huandu/skiplist"
	"github.com/shopspring/decimal"
)

// priceLevel is the FIFO of orders resting at one exact price.
type priceLevel struct {
	price     decimal.Decimal
	totalSize uint64
	orders    deque.Deque[*Order]
}

// queue is one side of the book. priceList gives direct access to a level by price,
// depthList keeps the same levels ordered best price first. Both are only mutated
// through insertOrder and popHeadOrder so they never disagree about which prices
// have liquidity.
type queue struct {
	side        Side
	totalOrders int64
	depthList   *skiplist.SkipList
	priceList   map[string]*skiplist.Element
}

// NewBuyerQueue creates a new queue for buy orders (bids).
// The orders are sorted by price in descending order (highest price first).
func NewBuyerQueue() *queue {
	return &queue{
		side: Buy,
		depthList: skiplist.New(skiplist.GreaterThanFunc(func(lhs, rhs any) int {
			d1, _ := lhs.(decimal.Decimal)
			d2, _ := rhs.(decimal.Decimal)
			return d2.Cmp(d1)
		})),
		priceList: make(map[string]*skiplist.Element),
	}
}

// NewSellerQueue creates a new queue for sell orders (asks).
// The orders are sorted by price in ascending order (lowest price first).
func NewSellerQueue() *queue {
	return &queue{
		side: Sell,
		depthList: skiplist.New(skiplist.GreaterThanFunc(func(lhs, rhs any) int {
			d1, _ := lhs.(decimal.Decimal)
			d2, _ := rhs.(decimal.Decimal)
			return d1.Cmp(d2)
		})),
		priceList: make(map[string]*skiplist.Element),
	}
}

// priceKey is the canonical map key of a price; "10", "10.0" and "10.00" share one level.
func priceKey(price decimal.Decimal) string {
	return price.String()
}

// insertOrder inserts an order into the queue.
// isFront puts the order ahead of every other order at its price; it is used to hand a
// partially filled order back without losing time priority.
// A new level and its discovery entry are created together, and only when the price has no level yet.
func (q *queue) insertOrder(order *Order, isFront bool) {
	key := priceKey(order.Price)

	el, ok := q.priceList[key]
	if !ok {
		unit := &priceLevel{price: order.Price}
		el = q.depthList.Set(order.Price, unit)
		q.priceList[key] = el
	}

	unit, _ := el.Value.(*priceLevel)
	if isFront {
		unit.orders.PushFront(order)
	} else {
		unit.orders.PushBack(order)
	}
	unit.totalSize += order.Size
	q.totalOrders++
}

// peekHeadOrder returns the order at the front of the queue (best price) without removing it.
func (q *queue) peekHeadOrder() *Order {
	el := q.depthList.Front()
	if el == nil {
		return nil
	}

	unit, _ := el.Value.(*priceLevel)
	return unit.orders.Front()
}

// popHeadOrder removes and returns the order at the front of the queue.
// When the best level becomes empty it is dropped from both structures in the same step.
func (q *queue) popHeadOrder() *Order {
	el := q.depthList.Front()
	if el == nil {
		return nil
	}

	unit, _ := el.Value.(*priceLevel)
	ord := unit.orders.PopFront()
	unit.totalSize -= ord.Size
	q.totalOrders--

	if unit.orders.Len() == 0 {
		q.depthList.RemoveElement(el)
		delete(q.priceList, priceKey(unit.price))
	}

	return ord
}

// bestPrice returns the most aggressive resting price.
func (q *queue) bestPrice() (decimal.Decimal, bool) {
	el := q.depthList.Front()
	if el == nil {
		return decimal.Zero, false
	}

	unit, _ := el.Value.(*priceLevel)
	return unit.price, true
}

// level returns the orders resting at price in time priority, or nil when there are none.
func (q *queue) level(price decimal.Decimal) []*Order {
	el, ok := q.priceList[priceKey(price)]
	if !ok {
		return nil
	}

	unit, _ := el.Value.(*priceLevel)
	orders := make([]*Order, 0, unit.orders.Len())
	for i := 0; i < unit.orders.Len(); i++ {
		orders = append(orders, unit.orders.At(i))
	}
	return orders
}

// orderCount returns the total number of orders in the queue.
func (q *queue) orderCount() int64 {
	return q.totalOrders
}

// depthCount returns the number of price levels in the queue.
func (q *queue) depthCount() int64 {
	return int64(q.depthList.Len())
}

// toSnapshot lists every level best price first, with orders in time priority.
func (q *queue) toSnapshot() []PriceLevelSnapshot {
	snapshots := make([]PriceLevelSnapshot, 0, q.depthList.Len())

	for elem := q.depthList.Front(); elem != nil; elem = elem.Next() {
		unit, _ := elem.Value.(*priceLevel)

		level := PriceLevelSnapshot{
			Price:  unit.price,
			Orders: make([]RestingOrder, 0, unit.orders.Len()),
		}
		for i := 0; i < unit.orders.Len(); i++ {
			order := unit.orders.At(i)
			level.Orders = append(level.Orders, RestingOrder{
				ID:   order.ID,
				Size: order.Size,
			})
		}

		snapshots = append(snapshots, level)
	}

	return snapshots
}

// depth returns the order book depth up to the specified limit.
func (q *queue) depth(limit uint32) []*DepthItem {
	result := make([]*DepthItem, 0, limit)

	el := q.depthList.Front()

	var i uint32 = 0
	for i < limit && el != nil {
		unit, _ := el.Value.(*priceLevel)
		result = append(result, &DepthItem{
			ID:    i,
			Price: unit.price,
			Size:  unit.totalSize,
			Count: int64(unit.orders.Len()),
		})

		el = el.Next()
		i++
	}

	return result
}
