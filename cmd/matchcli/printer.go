package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	match "github.com/0x5487/matching-core"
	"github.com/0x5487/matching-core/protocol"
)

type printer struct {
	out       io.Writer
	precision int32
}

// Publish prints one line per trade as the book reports it.
func (p *printer) Publish(logs ...*match.OrderBookLog) {
	for _, log := range logs {
		if log.Type != match.LogTypeMatch {
			continue
		}
		fmt.Fprintf(p.out, "Trade executed: %s @ %s (qty: %d)\n", log.Price.String(), log.OrderID, log.Size)
	}
}

// printBook writes both sides highest price first: asks on top, bids below.
func (p *printer) printBook(snap *match.OrderBookSnapshot) {
	fmt.Fprintln(p.out, "Order Book:")
	fmt.Fprintln(p.out, "SELL:")
	// asks are stored lowest first
	for i := len(snap.Asks) - 1; i >= 0; i-- {
		p.printLevel(snap.Asks[i])
	}

	fmt.Fprintln(p.out, "BUY:")
	for _, level := range snap.Bids {
		p.printLevel(level)
	}

	fmt.Fprintln(p.out, strings.Repeat("-", 26))
}

func (p *printer) printLevel(level match.PriceLevelSnapshot) {
	price := level.Price.StringFixed(p.precision)
	for _, order := range level.Orders {
		fmt.Fprintf(p.out, "%s qty:%d id:%s\n", price, order.Size, order.ID)
	}
}

// printOHLC writes nothing until the first trade.
func (p *printer) printOHLC(tracker *match.OHLCTracker) {
	bar, ok := tracker.Value()
	if !ok {
		return
	}

	ts := time.UnixMilli(bar.Timestamp).UTC().Format(time.RFC3339)
	fmt.Fprintf(p.out, "OHLC [%s] => O: %s, H: %s, L: %s, C: %s\n",
		ts,
		bar.Open.StringFixed(p.precision),
		bar.High.StringFixed(p.precision),
		bar.Low.StringFixed(p.precision),
		bar.Close.StringFixed(p.precision),
	)
}

func (p *printer) printDepth(depth *match.AggregatedBook) {
	fmt.Fprintln(p.out, "Depth:")
	fmt.Fprintln(p.out, "SELL:")
	asks := depth.Levels(match.Sell)
	for i := len(asks) - 1; i >= 0; i-- {
		fmt.Fprintf(p.out, "%s size:%d\n", asks[i].Price.StringFixed(p.precision), asks[i].Size)
	}

	fmt.Fprintln(p.out, "BUY:")
	for _, level := range depth.Levels(match.Buy) {
		fmt.Fprintf(p.out, "%s size:%d\n", level.Price.StringFixed(p.precision), level.Size)
	}

	fmt.Fprintln(p.out, strings.Repeat("-", 26))
}

func (p *printer) depthReport(marketID string, depth *match.Depth) *protocol.DepthReport {
	report := &protocol.DepthReport{
		MarketID: marketID,
		UpdateID: depth.UpdateID,
		Asks:     make([]protocol.DepthItem, 0, len(depth.Asks)),
		Bids:     make([]protocol.DepthItem, 0, len(depth.Bids)),
	}
	for _, item := range depth.Asks {
		report.Asks = append(report.Asks, p.depthItem(item))
	}
	for _, item := range depth.Bids {
		report.Bids = append(report.Bids, p.depthItem(item))
	}
	return report
}

func (p *printer) depthItem(item *match.DepthItem) protocol.DepthItem {
	return protocol.DepthItem{
		Price: item.Price.StringFixed(p.precision),
		Size:  item.Size,
		Count: item.Count,
	}
}

// printDepthReport writes the report as a single encoded line.
func (p *printer) printDepthReport(report *protocol.DepthReport, serializer protocol.Serializer) error {
	data, err := serializer.Marshal(report)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.out, string(data))
	return err
}
