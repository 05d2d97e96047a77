package bouquet

import "errors"

var (
	// ErrMalformedDesign is returned when a design token cannot be parsed into
	// species requirements and a total slot count.
	ErrMalformedDesign = errors.New("malformed design token")
	// ErrInsufficientStock is returned when a decrement would drive a species below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)
