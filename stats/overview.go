package stats

import (
	"math"

	"github.com/rustyeddy/tradejournal/journal"
)

// Overview is the headline performance summary for a set of trades. Only
// closed trades are counted.
type Overview struct {
	TotalTrades     int `json:"total_trades"`
	WinTrades       int `json:"win_trades"`
	LossTrades      int `json:"loss_trades"`
	BreakevenTrades int `json:"breakeven_trades"`

	Winrate float64 `json:"winrate"` // percent

	NetProfit    float64 `json:"net_profit"`
	AvgProfit    float64 `json:"avg_profit"`
	NetProfitPct float64 `json:"net_profit_pct"`
	AvgProfitPct float64 `json:"avg_profit_pct"`
	NetR         float64 `json:"net_r"`
	AvgR         float64 `json:"avg_r"`

	ExpectancyR      float64 `json:"expectancy_r"`
	ExpectancyProfit float64 `json:"expectancy_profit"`

	// ProfitFactor is nil when there are gains and no losses, which
	// encodes as JSON null rather than an infinity.
	ProfitFactor *float64 `json:"profit_factor"`

	MaxDrawdownR float64 `json:"max_drawdown_r"`
}

// ProfitFactorUnbounded reports whether the profit factor is undefined
// because there were no losing trades.
func (o Overview) ProfitFactorUnbounded() bool {
	return o.ProfitFactor == nil
}

func zeroOverview() Overview {
	pf := 0.0
	return Overview{ProfitFactor: &pf}
}

// OverviewStats computes the headline statistics for trades. With no
// closed trades it returns the zero summary with a profit factor of 0.
func OverviewStats(trades []journal.Trade, riskPercent float64) Overview {
	if len(trades) == 0 {
		return zeroOverview()
	}

	closed := closedTrades(trades)
	if len(closed) == 0 {
		return zeroOverview()
	}

	var (
		wins, losses, breakeven int

		netProfit, netPct, netR float64
		sumWinR, sumLossR       float64
		grossProfit, grossLoss  float64
	)

	for _, t := range closed {
		r := RMultiple(t, riskPercent)
		p := Float(t.Profit)
		pct := Float(t.ProfitPct)

		switch {
		case r > 0:
			wins++
			sumWinR += r
		case r < 0:
			losses++
			sumLossR += r
		default:
			breakeven++
		}

		netProfit += p
		netPct += pct
		netR += r

		if p > 0 {
			grossProfit += p
		} else if p < 0 {
			grossLoss += p
		}
	}

	total := float64(len(closed))
	grossLoss = math.Abs(grossLoss)

	pWin := float64(wins) / total
	pLoss := float64(losses) / total

	avgWinR := 0.0
	if wins > 0 {
		avgWinR = sumWinR / float64(wins)
	}
	avgLossR := 0.0
	if losses > 0 {
		avgLossR = math.Abs(sumLossR) / float64(losses)
	}
	expectancyR := pWin*avgWinR - pLoss*avgLossR

	var pf *float64
	switch {
	case grossLoss > 0:
		v := round(grossProfit/grossLoss, 2)
		pf = &v
	case grossProfit > 0:
		pf = nil
	default:
		v := 0.0
		pf = &v
	}

	return Overview{
		TotalTrades:      len(closed),
		WinTrades:        wins,
		LossTrades:       losses,
		BreakevenTrades:  breakeven,
		Winrate:          round(pWin*100, 2),
		NetProfit:        round(netProfit, 2),
		AvgProfit:        round(netProfit/total, 2),
		NetProfitPct:     round(netPct, 2),
		AvgProfitPct:     round(netPct/total, 2),
		NetR:             round(netR, 2),
		AvgR:             round(netR/total, 2),
		ExpectancyR:      round(expectancyR, 3),
		ExpectancyProfit: round(netProfit/total, 2),
		ProfitFactor:     pf,
		MaxDrawdownR:     MaxDrawdown(EquityCurve(trades, riskPercent)),
	}
}
