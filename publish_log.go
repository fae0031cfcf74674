package match

import (
	"log/slog"
	"sync"
)

// PublishLog is an interface for publishing order book logs (trades and rests).
//
// IMPORTANT: Implementations must either:
//  1. Process logs synchronously before returning, OR
//  2. Clone the OrderBookLog data before returning
//
// The caller recycles OrderBookLog objects to a sync.Pool after Publish returns,
// so any asynchronous processing must work with cloned data.
type PublishLog interface {
	Publish(...*OrderBookLog)
}

// MemoryPublishLog stores logs in memory, useful for testing.
type MemoryPublishLog struct {
	mu     sync.RWMutex
	Trades []*OrderBookLog
}

// NewMemoryPublishLog creates a new MemoryPublishLog.
func NewMemoryPublishLog() *MemoryPublishLog {
	return &MemoryPublishLog{
		Trades: make([]*OrderBookLog, 0),
	}
}

// Publish appends logs to the in-memory slice.
func (m *MemoryPublishLog) Publish(trades ...*OrderBookLog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, trade := range trades {
		cpy := new(OrderBookLog)
		*cpy = *trade
		m.Trades = append(m.Trades, cpy)
	}
}

// Count returns the number of logs stored.
func (m *MemoryPublishLog) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Trades)
}

// Get returns the log at the specified index.
func (m *MemoryPublishLog) Get(index int) *OrderBookLog {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.Trades[index]
}

// Logs returns a copy of all logs stored.
func (m *MemoryPublishLog) Logs() []*OrderBookLog {
	m.mu.RLock()
	defer m.mu.RUnlock()

	logs := make([]*OrderBookLog, len(m.Trades))
	copy(logs, m.Trades)
	return logs
}

// Matches returns only the match logs, in publish order.
func (m *MemoryPublishLog) Matches() []*OrderBookLog {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matches := make([]*OrderBookLog, 0, len(m.Trades))
	for _, log := range m.Trades {
		if log.Type == LogTypeMatch {
			matches = append(matches, log)
		}
	}
	return matches
}

// DiscardPublishLog discards all logs, useful for benchmarking.
type DiscardPublishLog struct {
}

// NewDiscardPublishLog creates a new DiscardPublishLog.
func NewDiscardPublishLog() *DiscardPublishLog {
	return &DiscardPublishLog{}
}

// Publish does nothing.
func (p *DiscardPublishLog) Publish(trades ...*OrderBookLog) {

}

// SlogPublishLog writes every trade and rest as a structured log record.
type SlogPublishLog struct {
	logger *slog.Logger
}

// NewSlogPublishLog creates a SlogPublishLog; a nil logger uses the package logger.
func NewSlogPublishLog(l *slog.Logger) *SlogPublishLog {
	return &SlogPublishLog{logger: l}
}

// Publish logs trades at info level and rests at debug level.
func (p *SlogPublishLog) Publish(logs ...*OrderBookLog) {
	l := p.logger
	if l == nil {
		l = logger
	}

	for _, log := range logs {
		switch log.Type {
		case LogTypeMatch:
			l.Info("trade executed",
				"market_id", log.MarketID,
				"trade_id", log.TradeID,
				"price", log.Price.String(),
				"size", log.Size,
				"order_id", log.OrderID,
				"maker_order_id", log.MakerOrderID,
			)
		case LogTypeOpen:
			l.Debug("order rested",
				"market_id", log.MarketID,
				"side", log.Side.String(),
				"price", log.Price.String(),
				"size", log.Size,
				"order_id", log.OrderID,
			)
		}
	}
}

// TeePublishLog forwards every batch to each publisher in order.
type TeePublishLog struct {
	publishers []PublishLog
}

// NewTeePublishLog creates a TeePublishLog.
func NewTeePublishLog(publishers ...PublishLog) *TeePublishLog {
	return &TeePublishLog{publishers: publishers}
}

// Publish fans the logs out.
func (t *TeePublishLog) Publish(logs ...*OrderBookLog) {
	for _, p := range t.publishers {
		p.Publish(logs...)
	}
}
