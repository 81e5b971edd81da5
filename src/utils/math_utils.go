package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// Epsilon is the tolerance for all "is it zero" comparisons on quantities and
// balances, absorbing float drift in caller-supplied numbers.
const Epsilon = 1e-6

// EpsilonDec is Epsilon as a decimal, for the processors' internal arithmetic.
var EpsilonDec = decimal.NewFromFloat(Epsilon)

// NearZero reports whether x is within Epsilon of zero.
func NearZero(x float64) bool {
	return math.Abs(x) < Epsilon
}

// NearZeroDec reports whether d is within Epsilon of zero.
func NearZeroDec(d decimal.Decimal) bool {
	return d.Abs().LessThan(EpsilonDec)
}

// RoundFloat rounds a float64 to a specified number of decimal places.
func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
