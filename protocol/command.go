package protocol

import (
	"errors"
	"strings"
)

var (
	ErrInvalidFormat = errors.New("invalid format, use: buy/sell price qty")
	ErrInvalidSide   = errors.New("side must be buy or sell")
)

// PlaceOrderCommand is the payload for placing a new order.
// Price and Size stay as strings so JSON input keeps full precision;
// numeric validation happens when the command becomes an order.
type PlaceOrderCommand struct {
	OrderID   string `json:"order_id,omitempty"`
	Side      Side   `json:"side"`
	Price     string `json:"price"`
	Size      string `json:"size"`
	Timestamp int64  `json:"timestamp,omitempty"` // Unix milli
}

// ParsePlaceOrder parses one interactive line of the form "buy|sell <price> <qty>".
func ParsePlaceOrder(line string) (*PlaceOrderCommand, error) {
	tokens := strings.Fields(line)
	if len(tokens) != 3 {
		return nil, ErrInvalidFormat
	}

	side, err := ParseSide(tokens[0])
	if err != nil {
		return nil, err
	}

	return &PlaceOrderCommand{
		Side:  side,
		Price: tokens[1],
		Size:  tokens[2],
	}, nil
}
