package risk

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// SymbolMeta describes how price moves translate to money for one symbol.
type SymbolMeta struct {
	TickSize  float64 `json:"tick_size"`
	TickValue float64 `json:"tick_value"` // per lot per tick
	MinLot    float64 `json:"min_lot"`
	LotStep   float64 `json:"lot_step"`
	Unit      string  `json:"unit"` // "pips" or "points"
}

var (
	fxMeta     = SymbolMeta{TickSize: 0.0001, TickValue: 10, MinLot: 0.01, LotStep: 0.01, Unit: "pips"}
	pointsMeta = SymbolMeta{TickSize: 1, TickValue: 1, MinLot: 0.01, LotStep: 0.01, Unit: "points"}
)

// DefaultSymbolMeta is used for symbols missing from the table.
var DefaultSymbolMeta = fxMeta

var symbolTable = map[string]SymbolMeta{
	"EUR/USD": fxMeta,
	"GBP/USD": fxMeta,
	"AUD/USD": fxMeta,
	"USD/CAD": fxMeta,
	"NZD/USD": fxMeta,
	"USD/JPY": {TickSize: 0.01, TickValue: 9.5, MinLot: 0.01, LotStep: 0.01, Unit: "pips"},
	"XAU/USD": {TickSize: 0.01, TickValue: 1, MinLot: 0.01, LotStep: 0.01, Unit: "points"},
	"US30":    pointsMeta,
	"NAS100":  pointsMeta,
	"BTC/USD": pointsMeta,
}

var (
	symbolJunk = regexp.MustCompile(`[\s/\-_]`)
	fxPair     = regexp.MustCompile(`([A-Z]{3})([A-Z]{3})`)

	symbolAliases = []struct{ from, to string }{
		{"XAUUSD", "XAU/USD"},
		{"BTCUSD", "BTC/USD"},
		{"US100", "NAS100"},
		{"DJ30", "US30"},
		{"DOW", "US30"},
	}
)

// NormalizeSymbol maps the many ways a symbol gets typed onto one key:
// "eur_usd" and "EURUSD" become "EUR/USD", "US100" becomes "NAS100".
func NormalizeSymbol(raw string) string {
	s := symbolJunk.ReplaceAllString(strings.ToUpper(strings.TrimSpace(raw)), "")
	for _, a := range symbolAliases {
		s = strings.Replace(s, a.from, a.to, 1)
	}
	if m := fxPair.FindStringSubmatchIndex(s); m != nil {
		s = s[:m[0]] + s[m[2]:m[3]] + "/" + s[m[4]:m[5]] + s[m[1]:]
	}
	return s
}

// SymbolMetaFor returns the metadata for symbol, or DefaultSymbolMeta.
func SymbolMetaFor(symbol string) SymbolMeta {
	if symbol == "" {
		return DefaultSymbolMeta
	}
	if m, ok := symbolTable[NormalizeSymbol(symbol)]; ok {
		return m
	}
	return DefaultSymbolMeta
}

// Position is a sized trade plan.
type Position struct {
	Lots       float64 `json:"lots"`
	RiskAmount float64 `json:"risk_amount"`
	StopTicks  float64 `json:"stop_ticks"`
	RR         float64 `json:"rr"`
	Unit       string  `json:"unit"`
	Note       string  `json:"note,omitempty"`
	Valid      bool    `json:"valid"`
}

// PositionSize sizes a trade so that hitting the stop loses riskPct
// (a fraction, 0.01 = 1%) of capital. Lots are floored to the symbol's lot
// step; a size below the minimum lot is reported as 0 lots with a note.
func PositionSize(meta SymbolMeta, capital, riskPct, entry, stop, takeProfit float64) Position {
	pos := Position{Unit: meta.Unit}
	if entry == 0 || stop == 0 || entry == stop || meta.TickSize <= 0 || meta.TickValue <= 0 {
		return pos
	}

	distance := math.Abs(entry - stop)
	ticks := math.Round(distance / meta.TickSize)
	if ticks == 0 {
		return pos
	}

	riskAmount := capital * riskPct
	exact := riskAmount / (ticks * meta.TickValue)

	switch {
	case exact > 0 && exact < meta.MinLot:
		pos.Note = fmt.Sprintf("below minimum lot %g", meta.MinLot)
	case exact >= meta.MinLot:
		pos.Lots = floorToStep(exact, meta.LotStep)
		if pos.Lots*ticks*meta.TickValue > riskAmount+0.01 {
			pos.Note = "lot reduced to stay within risk"
		}
	}

	if takeProfit != 0 {
		pos.RR = round2(math.Abs(takeProfit-entry) / distance)
	}
	pos.RiskAmount = math.Round(riskAmount)
	pos.StopTicks = decimal.NewFromFloat(ticks).Round(1).InexactFloat64()
	pos.Valid = true
	return pos
}

func floorToStep(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	s := decimal.NewFromFloat(step)
	return decimal.NewFromFloat(v).Div(s).Floor().Mul(s).InexactFloat64()
}

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloatWithExponent(v, -30).RoundBank(2).InexactFloat64()
}
