package domain

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("document store unavailable")
	ErrQueryFailed      = errors.New("query failed")
)
