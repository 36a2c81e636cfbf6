package xssurl

import "errors"

var (
	// ErrInvalidPattern is returned by Include when a pattern does not
	// compile as a regular expression.
	ErrInvalidPattern = errors.New("xssurl: invalid pattern")
)
