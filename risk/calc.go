// Package risk holds the fixed-fractional risk arithmetic used when a trade
// is planned and when it is closed.
package risk

import (
	"math"
	"strings"
)

// Params controls the lot-size model behind ProfitAndPct.
type Params struct {
	RiskPercent    float64 // fraction of capital risked, 0.01 = 1%
	PipMultiplier  float64 // 10000 for 4-digit FX quotes
	PipValuePerLot float64 // account currency per pip for one lot
}

// DefaultParams risks 1% on a standard FX lot.
func DefaultParams() Params {
	return Params{RiskPercent: 0.01, PipMultiplier: 10000, PipValuePerLot: 10}
}

// RR returns the planned reward-to-risk ratio. It is 0 when the stop is not
// set or sits on the entry.
func RR(entry, stop, takeProfit float64) float64 {
	risk := math.Abs(entry - stop)
	if risk == 0 || stop == 0 {
		return 0
	}
	return math.Abs(takeProfit-entry) / risk
}

// ProfitAndPct returns the money result of exiting at exit and that result
// as a percent of capital, both rounded to cents. Short trades profit when
// exit is below entry; any other direction is treated as long. Both values
// are 0 when capital is not positive or the stop distance is 0.
func ProfitAndPct(exit, entry float64, direction string, capital, stop float64, p Params) (profit, pct float64) {
	if capital <= 0 {
		return 0, 0
	}
	stopPips := math.Abs(entry-stop) * p.PipMultiplier
	if stopPips == 0 || p.PipValuePerLot == 0 {
		return 0, 0
	}

	pipDiff := math.Abs(exit-entry) * p.PipMultiplier
	lot := capital * p.RiskPercent / (stopPips * p.PipValuePerLot)
	profit = pipDiff * lot * p.PipValuePerLot

	if strings.EqualFold(strings.TrimSpace(direction), "short") {
		if exit > entry {
			profit = -profit
		}
	} else if exit < entry {
		profit = -profit
	}

	pct = profit / capital * 100
	return round2(profit), round2(pct)
}
