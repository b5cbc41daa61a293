// Package pricefmt renders base-unit amounts as display prices.
package pricefmt

import (
	"github.com/shopspring/decimal"
)

// Format shifts a base-unit amount by the currency's decimals, e.g.
// Format("1050000", 6) == "1.05". Malformed amounts format as empty.
func Format(amount string, decimals int32) string {
	v, err := decimal.NewFromString(amount)
	if err != nil {
		return ""
	}
	return v.Shift(-decimals).String()
}

// Parse converts a display price back to base units, truncating anything
// below one base unit.
func Parse(display string, decimals int32) (string, error) {
	v, err := decimal.NewFromString(display)
	if err != nil {
		return "", err
	}
	return v.Shift(decimals).Truncate(0).String(), nil
}
