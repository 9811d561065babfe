package journal

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTradeOrg renders a Trade as an Org-mode block suitable for pasting into a journal.
// Structured facts live in a PROPERTIES drawer for easy search; the narrative
// sections are filled from the trade's reasons and lessons when present.
func FormatTradeOrg(t Trade) string {
	heading := fmt.Sprintf("** Trade: %s #%d", orDash(t.Symbol), t.ID)
	if t.Date != "" {
		heading += " <" + t.Date + ">"
	}

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":ID: %d\n", t.ID))
	b.WriteString(fmt.Sprintf(":DATE: %s\n", t.Date))
	b.WriteString(fmt.Sprintf(":SYMBOL: %s\n", t.Symbol))
	b.WriteString(fmt.Sprintf(":DIRECTION: %s\n", t.Direction))
	b.WriteString(fmt.Sprintf(":SETUP: %s\n", t.Setup))
	b.WriteString(fmt.Sprintf(":SESSION: %s\n", t.Session))
	b.WriteString(fmt.Sprintf(":TIMEFRAME: %s\n", t.Timeframe))
	b.WriteString(fmt.Sprintf(":ENTRY: %s\n", price(t.Entry)))
	b.WriteString(fmt.Sprintf(":SL: %s\n", price(t.SL)))
	b.WriteString(fmt.Sprintf(":TP: %s\n", price(t.TP)))
	b.WriteString(fmt.Sprintf(":EXIT: %s\n", price(t.Exit)))
	b.WriteString(fmt.Sprintf(":CAPITAL: %s\n", money(t.Capital)))
	if t.Closed() {
		b.WriteString(fmt.Sprintf(":PROFIT: %s\n", money(t.Profit)))
		b.WriteString(fmt.Sprintf(":PROFIT_PCT: %s\n", money(t.ProfitPct)))
	} else {
		b.WriteString(":STATUS: open\n")
	}
	if t.Grade != "" {
		b.WriteString(fmt.Sprintf(":GRADE: %s\n", t.Grade))
	}
	if tags := DecodeTags(t.Mistakes); len(tags) > 0 {
		b.WriteString(fmt.Sprintf(":MISTAKES: %s\n", strings.Join(tags, ", ")))
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- " + t.EntryReason + "\n\n")
	b.WriteString("*** Execution\n- " + t.ExitReason + "\n\n")
	b.WriteString("*** Review\n- " + t.Lessons + "\n")

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func price(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', 5, 64)
}

func money(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', 2, 64)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
