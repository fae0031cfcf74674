package match

import "errors"

var (
	ErrInvalidParam = errors.New("the param is invalid")
	ErrInvalidPrice = errors.New("price must be a positive decimal")
	ErrInvalidSize  = errors.New("size must be a non-negative integer within MaxOrderSize")
	ErrInvalidSide  = errors.New("side must be buy or sell")
	ErrSequenceGap  = errors.New("book log sequence gap")
)
