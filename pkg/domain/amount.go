package domain

import (
	"math"
	"strconv"
)

// amountScale is the number of raw units per whole item.
const amountScale = 1_000_000

// Amount is a fixed-point item quantity with six decimal places.
type Amount int64

// AmountFromInt converts a whole number of items.
func AmountFromInt(n int64) Amount {
	return Amount(n * amountScale)
}

// AmountFromFloat64 converts f, rounding to the nearest raw unit.
func AmountFromFloat64(f float64) Amount {
	return Amount(math.Round(f * amountScale))
}

// Float64 returns the quantity as a float.
func (a Amount) Float64() float64 {
	return float64(a) / amountScale
}

// Mul scales the quantity by factor, truncating toward zero at the sixth
// decimal. The factor keeps its float32 error, so 3 x 0.35 is 1.049999.
func (a Amount) Mul(factor float32) Amount {
	return Amount(math.Trunc(float64(a) * float64(factor)))
}

// MaxAmount returns the larger of a and b.
func MaxAmount(a, b Amount) Amount {
	if a > b {
		return a
	}
	return b
}

func (a Amount) String() string {
	return strconv.FormatFloat(a.Float64(), 'f', -1, 64)
}
