// Package stats turns a slice of journal trades into risk-normalised
// performance figures: R-multiples, equity curve, drawdown, expectancy,
// grouped breakdowns, monthly P&L, tag frequencies and period reviews.
//
// Every function is pure. Inputs are never mutated, nothing is cached, and
// no function returns an error: missing or malformed numbers read as zero.
package stats

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// SafeFloat converts v to a finite float64, returning def when v is nil, a
// nil pointer, or anything that does not parse as a finite number.
func SafeFloat(v any, def float64) float64 {
	var f float64
	switch x := v.(type) {
	case nil:
		return def
	case float64:
		f = x
	case *float64:
		if x == nil {
			return def
		}
		f = *x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case bool:
		if x {
			f = 1
		}
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return def
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return def
		}
		f = n
	case decimal.Decimal:
		f = x.InexactFloat64()
	default:
		return def
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

// Float reads an optional trade field, treating nil as zero.
func Float(p *float64) float64 {
	return SafeFloat(p, 0)
}

// roundExp is the precision at which a float is expanded before rounding.
// It keeps the binary value, so 2.675 is read as 2.67499... and rounds down.
const roundExp = -30

// round rounds half to even at the given number of decimal places, working
// on the exact binary value of x. Non-finite values collapse to zero so
// results always serialise.
func round(x float64, places int32) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return decimal.NewFromFloatWithExponent(x, roundExp).RoundBank(places).InexactFloat64()
}
