package match

import "github.com/shopspring/decimal"

// OHLC is the open/high/low/close summary of the trades recorded so far.
// Timestamp is the Unix milli of the last recorded trade.
type OHLC struct {
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Timestamp int64           `json:"timestamp"`
}

// OHLCTracker folds executed trade prices into a running OHLC.
// It is cumulative over its whole lifetime unless Flush is called.
type OHLCTracker struct {
	bar     OHLC
	hasData bool
}

// NewOHLCTracker creates an empty tracker.
func NewOHLCTracker() *OHLCTracker {
	return &OHLCTracker{}
}

// Record adds one trade. The first trade sets all four prices.
func (t *OHLCTracker) Record(price decimal.Decimal, timestamp int64) {
	if !t.hasData {
		t.bar.Open = price
		t.bar.High = price
		t.bar.Low = price
		t.hasData = true
	} else {
		if price.GreaterThan(t.bar.High) {
			t.bar.High = price
		}
		if price.LessThan(t.bar.Low) {
			t.bar.Low = price
		}
	}
	t.bar.Close = price
	t.bar.Timestamp = timestamp
}

// Value returns the current summary; ok is false until the first trade.
func (t *OHLCTracker) Value() (OHLC, bool) {
	if !t.hasData {
		return OHLC{}, false
	}
	return t.bar, true
}

// Flush closes the current interval: it returns the summary so far and leaves the
// tracker empty, so the next Record opens a new bar.
func (t *OHLCTracker) Flush() (OHLC, bool) {
	bar, ok := t.Value()
	t.bar = OHLC{}
	t.hasData = false
	return bar, ok
}
