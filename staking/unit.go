package staking

import (
	"github.com/shopspring/decimal"
)

// Unit is the currency unit used to render amounts, e.g. {ATOM, 6}.
// Magnitude is the number of decimal places between the base unit the chain
// counts in and the unit users read.
type Unit struct {
	Code      string
	Magnitude int32
}

// Format renders an amount of base units as "<decimal amount> <unit code>",
// e.g. Unit{ATOM, 6}.Format(1500000) == "1.5 ATOM".
func (u Unit) Format(amount int64) string {
	return decimal.New(amount, -u.Magnitude).String() + " " + u.Code
}
