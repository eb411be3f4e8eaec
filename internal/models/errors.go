package models

import "errors"

// Custom errors
var (
	ErrInvalidNumber  = errors.New("invalid numeric input")
	ErrNegativeValue  = errors.New("value must not be negative")
	ErrUnknownMarket  = errors.New("unknown market")
	ErrInvalidProfile = errors.New("invalid model profile")
)
