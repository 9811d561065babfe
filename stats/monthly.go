package stats

import (
	"sort"

	"github.com/rustyeddy/tradejournal/journal"
)

// MonthPnL is the summed profit of one calendar month.
type MonthPnL struct {
	Month  string  `json:"month"` // YYYY-MM
	Profit float64 `json:"profit"`
}

// MonthlyPnL sums profit per calendar month, oldest month first. Trades
// without a date are skipped; open trades contribute nothing.
func MonthlyPnL(trades []journal.Trade) []MonthPnL {
	sums := make(map[string]float64)
	for _, t := range trades {
		if t.Date == "" {
			continue
		}
		month := t.Date
		if len(month) > 7 {
			month = month[:7]
		}
		sums[month] += Float(t.Profit)
	}

	out := make([]MonthPnL, 0, len(sums))
	for month, pnl := range sums {
		out = append(out, MonthPnL{Month: month, Profit: round(pnl, 2)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
