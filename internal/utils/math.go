package utils

import "github.com/shopspring/decimal"

// RoundPrice rounds a provider price (which may carry fractions, e.g. averages) to the nearest whole gil.
// Negative inputs clamp to zero.
func RoundPrice(v float64) int64 {
	if v <= 0 {
		return 0
	}
	return decimal.NewFromFloat(v).Round(0).IntPart()
}

// MulRound returns round(unit × qty).
func MulRound(unit int64, qty int) int64 {
	return decimal.NewFromInt(unit).Mul(decimal.NewFromInt(int64(qty))).Round(0).IntPart()
}

// DivRound returns round(total / divisor), treating a divisor below 1 as 1.
func DivRound(total int64, divisor int) int64 {
	if divisor < 1 {
		divisor = 1
	}
	return decimal.NewFromInt(total).Div(decimal.NewFromInt(int64(divisor))).Round(0).IntPart()
}

// MillisToSeconds converts a millisecond epoch timestamp to seconds.
func MillisToSeconds(ms int64) int64 {
	return ms / 1000
}
