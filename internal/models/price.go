package models

import (
	"encoding/json"
	"math"
)

// Price is a decimal price; an infinite price means no realistic bet exists
type Price float64

// InfinitePrice is the fair price of an outcome with zero probability
var InfinitePrice = Price(math.Inf(1))

// IsInf reports whether the price is the unbounded sentinel
func (p Price) IsInf() bool {
	return math.IsInf(float64(p), 1)
}

// Float64 returns the raw value
func (p Price) Float64() float64 {
	return float64(p)
}

// MarshalJSON writes null for the infinite sentinel
func (p Price) MarshalJSON() ([]byte, error) {
	if p.IsInf() || math.IsNaN(float64(p)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(p))
}

// UnmarshalJSON reads null back as the infinite sentinel
func (p *Price) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = InfinitePrice
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Price(v)
	return nil
}
