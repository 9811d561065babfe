package stats

import "github.com/rustyeddy/tradejournal/journal"

// DefaultRiskPercent is the fraction of capital assumed at risk on every
// trade (1%) when the caller has no better figure.
const DefaultRiskPercent = 0.01

// RMultiple expresses a trade's profit in units of the capital put at risk:
//
//	R = profit / (capital * riskPercent)
//
// It is 0 when capital or riskPercent is not positive.
func RMultiple(t journal.Trade, riskPercent float64) float64 {
	capital := Float(t.Capital)
	profit := Float(t.Profit)

	if capital <= 0 || riskPercent <= 0 {
		return 0
	}

	risk := capital * riskPercent
	if risk == 0 {
		return 0
	}
	return profit / risk
}

func closedTrades(trades []journal.Trade) []journal.Trade {
	out := make([]journal.Trade, 0, len(trades))
	for _, t := range trades {
		if t.Closed() {
			out = append(out, t)
		}
	}
	return out
}
