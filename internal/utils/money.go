package utils

import (
	"fmt"
	"math"
)

// RoundMinor rounds an amount to the currency's minor unit (2 decimals)
// using standard half-up rounding.
func RoundMinor(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
