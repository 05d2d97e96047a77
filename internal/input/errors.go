package input

import "errors"

var (
	// ErrEmptyInput is returned when acquisition yields no non-blank line.
	ErrEmptyInput = errors.New("empty content, nothing to do")
	// ErrMalformedLine is returned for lines too short to carry a category.
	ErrMalformedLine = errors.New("malformed input line")
)
