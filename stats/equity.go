package stats

import (
	"math"
	"sort"

	"github.com/rustyeddy/tradejournal/journal"
)

// EquityPoint is one closed trade on the cumulative R curve.
type EquityPoint struct {
	ID      int64   `json:"id"`
	Date    string  `json:"date"`
	Symbol  string  `json:"symbol"`
	R       float64 `json:"r"`
	EquityR float64 `json:"equity_r"`
}

// DrawdownPoint is the distance below the running equity peak after a trade.
type DrawdownPoint struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"`
	EquityR   float64 `json:"equity_r"`
	DrawdownR float64 `json:"drawdown_r"`
}

// EquityCurve returns the cumulative R-multiple of closed trades in
// chronological order. Trades on the same date are ordered by ID.
func EquityCurve(trades []journal.Trade, riskPercent float64) []EquityPoint {
	closed := closedTrades(trades)
	sort.SliceStable(closed, func(i, j int) bool {
		if closed[i].Date != closed[j].Date {
			return closed[i].Date < closed[j].Date
		}
		return closed[i].ID < closed[j].ID
	})

	curve := make([]EquityPoint, 0, len(closed))
	cumR := 0.0
	for _, t := range closed {
		r := RMultiple(t, riskPercent)
		cumR += r
		curve = append(curve, EquityPoint{
			ID:      t.ID,
			Date:    t.Date,
			Symbol:  t.Symbol,
			R:       round(r, 2),
			EquityR: round(cumR, 2),
		})
	}
	return curve
}

// MaxDrawdown returns the largest peak-to-trough decline of the curve in R.
// It is never negative and is 0 for empty or non-decreasing curves.
func MaxDrawdown(curve []EquityPoint) float64 {
	peak := math.Inf(-1)
	maxDD := 0.0

	for _, p := range curve {
		if p.EquityR > peak {
			peak = p.EquityR
		}
		if dd := peak - p.EquityR; dd > maxDD {
			maxDD = dd
		}
	}
	return round(maxDD, 2)
}

// DrawdownSeries returns the drawdown below the running peak at every point.
func DrawdownSeries(curve []EquityPoint) []DrawdownPoint {
	out := make([]DrawdownPoint, 0, len(curve))
	peak := math.Inf(-1)
	for _, p := range curve {
		if p.EquityR > peak {
			peak = p.EquityR
		}
		out = append(out, DrawdownPoint{
			ID:        p.ID,
			Date:      p.Date,
			EquityR:   p.EquityR,
			DrawdownR: round(peak-p.EquityR, 2),
		})
	}
	return out
}
