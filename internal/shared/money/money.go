// Package money holds the precision rules of amounts persisted as DECIMAL(18,2).
package money

import "github.com/shopspring/decimal"

// Scale is the number of fractional digits every stored amount carries.
const Scale = 2

// maxIntegerDigits is the DECIMAL(18,2) precision less its scale.
const maxIntegerDigits = 16

var limit = decimal.New(1, maxIntegerDigits)

// Fits reports whether d is stored without rounding or overflow.
// Trailing zeros do not count against the scale, so 1.500 fits.
func Fits(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(Scale)) && d.Abs().LessThan(limit)
}
