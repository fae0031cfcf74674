package protocol

import (
	"strings"
)

// Side represents the order side (Buy/Sell).
type Side int8

const (
	SideBuy  Side = 1
	SideSell Side = 2
)

// String returns the lower-case name used by the text protocol.
func (s Side) String() string {
	switch s {
	case SideBuy:
		return "buy"
	case SideSell:
		return "sell"
	}
	return "unknown"
}

// Opposite returns the other side of the book.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// ParseSide converts "buy"/"sell" (any case) into a Side.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return SideBuy, nil
	case "sell":
		return SideSell, nil
	}
	return 0, ErrInvalidSide
}

// LogType represents the type of event log.
type LogType string

const (
	LogTypeOpen  LogType = "open"
	LogTypeMatch LogType = "match"
)

// DepthItem is one aggregated price level.
type DepthItem struct {
	Price string `json:"price"`
	Size  uint64 `json:"size"`
	Count int64  `json:"count"`
}

// DepthReport is the wire form of the top levels of both sides, best price first.
type DepthReport struct {
	MarketID string      `json:"market_id"`
	UpdateID uint64      `json:"update_id"`
	Asks     []DepthItem `json:"asks"`
	Bids     []DepthItem `json:"bids"`
}
