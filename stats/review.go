package stats

import (
	"sort"

	"github.com/rustyeddy/tradejournal/journal"
)

// TradeSummary is the trimmed view of a trade shown in reviews.
type TradeSummary struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"`
	Symbol    string  `json:"symbol"`
	Setup     string  `json:"setup"`
	Direction string  `json:"direction"`
	Session   string  `json:"session"`
	Timeframe string  `json:"timeframe"`
	Profit    float64 `json:"profit"`
	ProfitPct float64 `json:"profit_pct"`
	RR        float64 `json:"rr"`
}

// Review bundles what a weekly or monthly review looks at.
type Review struct {
	Overview   Overview      `json:"overview"`
	BestTrade  *TradeSummary `json:"best_trade"`
	WorstTrade *TradeSummary `json:"worst_trade"`
	WinStreak  int           `json:"win_streak"`
}

// ReviewRange echoes the current and previous period bounds. Absent bounds
// are nil.
type ReviewRange struct {
	From     *string `json:"from"`
	To       *string `json:"to"`
	PrevFrom *string `json:"prev_from"`
	PrevTo   *string `json:"prev_to"`
}

// NewReviewRange echoes cur and, when prev is non-nil, the previous period.
// Empty bounds become nil.
func NewReviewRange(cur journal.Range, prev *journal.Range) ReviewRange {
	rr := ReviewRange{From: bound(cur.From), To: bound(cur.To)}
	if prev != nil {
		rr.PrevFrom, rr.PrevTo = bound(prev.From), bound(prev.To)
	}
	return rr
}

// Current returns the reviewed range with open bounds as "".
func (r ReviewRange) Current() journal.Range {
	return journal.Range{From: deref(r.From), To: deref(r.To)}
}

// Previous returns the compared range with open bounds as "".
func (r ReviewRange) Previous() journal.Range {
	return journal.Range{From: deref(r.PrevFrom), To: deref(r.PrevTo)}
}

func bound(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// PeriodReview compares a period with the one before it. Previous is nil
// when no previous period could be derived.
type PeriodReview struct {
	Current    Review      `json:"current"`
	Previous   *Review     `json:"previous"`
	Range      ReviewRange `json:"range"`
	SetupStats []Group     `json:"setup_stats"`
}

func summarize(t journal.Trade) *TradeSummary {
	return &TradeSummary{
		ID:        t.ID,
		Date:      t.Date,
		Symbol:    t.Symbol,
		Setup:     t.Setup,
		Direction: t.Direction,
		Session:   t.Session,
		Timeframe: t.Timeframe,
		Profit:    round(Float(t.Profit), 2),
		ProfitPct: round(Float(t.ProfitPct), 2),
		RR:        round(Float(t.RR), 2),
	}
}

// BestTrade returns the closed trade with the highest profit, or nil.
// The first of equal maxima wins.
func BestTrade(trades []journal.Trade) *TradeSummary {
	closed := closedTrades(trades)
	if len(closed) == 0 {
		return nil
	}
	best := closed[0]
	for _, t := range closed[1:] {
		if Float(t.Profit) > Float(best.Profit) {
			best = t
		}
	}
	return summarize(best)
}

// WorstTrade returns the losing trade with the most negative profit, or nil
// when no closed trade lost money.
func WorstTrade(trades []journal.Trade) *TradeSummary {
	var worst *journal.Trade
	for _, t := range closedTrades(trades) {
		p := Float(t.Profit)
		if p >= 0 {
			continue
		}
		if worst == nil || p < Float(worst.Profit) {
			t := t
			worst = &t
		}
	}
	if worst == nil {
		return nil
	}
	return summarize(*worst)
}

// WinStreak returns the longest run of profitable closed trades in date
// order. A losing trade resets the run; a flat trade neither extends nor
// breaks it.
func WinStreak(trades []journal.Trade) int {
	closed := closedTrades(trades)
	sort.SliceStable(closed, func(i, j int) bool { return closed[i].Date < closed[j].Date })

	current, best := 0, 0
	for _, t := range closed {
		p := Float(t.Profit)
		switch {
		case p > 0:
			current++
			if current > best {
				best = current
			}
		case p < 0:
			current = 0
		}
	}
	return best
}

// ReviewPackage computes the review for one period.
func ReviewPackage(trades []journal.Trade, riskPercent float64) Review {
	return Review{
		Overview:   OverviewStats(trades, riskPercent),
		BestTrade:  BestTrade(trades),
		WorstTrade: WorstTrade(trades),
		WinStreak:  WinStreak(trades),
	}
}
