// Package report renders engine output for people: plain-text summaries
// for the terminal and Org-mode review documents.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rustyeddy/tradejournal/stats"
)

const rule = "--------------------------------------------------"

var printer = message.NewPrinter(language.English)

// Money formats v with thousands separators and two decimals.
func Money(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// ProfitFactor formats a profit factor, where nil means no losing trades.
func ProfitFactor(pf *float64) string {
	if pf == nil {
		return "n/a (no losses)"
	}
	return printer.Sprintf("%.2f", *pf)
}

func banner(w io.Writer, title string) {
	fmt.Fprintln(w, strings.Repeat("=", len(rule)))
	fmt.Fprintf(w, " %s\n", title)
	fmt.Fprintln(w, strings.Repeat("=", len(rule)))
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, rule)
}

// PrintOverview writes the headline statistics.
func PrintOverview(w io.Writer, title string, o stats.Overview) {
	banner(w, title)
	writeOverview(w, o)
	fmt.Fprintln(w)
}

func writeOverview(w io.Writer, o stats.Overview) {
	section(w, "Trade Statistics")
	fmt.Fprintf(w, "Trades:        %d\n", o.TotalTrades)
	fmt.Fprintf(w, "Wins:          %d\n", o.WinTrades)
	fmt.Fprintf(w, "Losses:        %d\n", o.LossTrades)
	fmt.Fprintf(w, "Breakeven:     %d\n", o.BreakevenTrades)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", o.Winrate)

	section(w, "Performance")
	fmt.Fprintf(w, "Net P/L:       %s\n", Money(o.NetProfit))
	fmt.Fprintf(w, "Avg P/L:       %s\n", Money(o.AvgProfit))
	fmt.Fprintf(w, "Net Return:    %.2f%%\n", o.NetProfitPct)
	fmt.Fprintf(w, "Net R:         %.2f\n", o.NetR)
	fmt.Fprintf(w, "Avg R:         %.2f\n", o.AvgR)
	fmt.Fprintf(w, "Expectancy:    %.3fR / %s\n", o.ExpectancyR, Money(o.ExpectancyProfit))
	fmt.Fprintf(w, "Profit Factor: %s\n", ProfitFactor(o.ProfitFactor))
	fmt.Fprintf(w, "Max Drawdown:  %.2fR\n", o.MaxDrawdownR)
}

// PrintGroups writes one row per group, best net R first.
func PrintGroups(w io.Writer, key stats.GroupKey, groups []stats.Group) {
	banner(w, "Performance by "+string(key))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(string(key))+"\tTRADES\tWIN%\tNET R\tNET P/L\tPF")
	for _, g := range groups {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%s\t%s\n",
			g.Label, g.Stats.TotalTrades, g.Stats.Winrate, g.Stats.NetR,
			Money(g.Stats.NetProfit), ProfitFactor(g.Stats.ProfitFactor))
	}
	_ = tw.Flush()
	fmt.Fprintln(w)
}

// PrintMonthly writes profit per month.
func PrintMonthly(w io.Writer, months []stats.MonthPnL) {
	banner(w, "Monthly P/L")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, m := range months {
		fmt.Fprintf(tw, "%s\t%s\t\n", m.Month, Money(m.Profit))
	}
	_ = tw.Flush()
	fmt.Fprintln(w)
}

// PrintEquity writes the equity curve.
func PrintEquity(w io.Writer, curve []stats.EquityPoint) {
	banner(w, "Equity Curve (R)")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tID\tSYMBOL\tR\tEQUITY")
	for _, p := range curve {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%.2f\t%.2f\n", p.Date, p.ID, p.Symbol, p.R, p.EquityR)
	}
	_ = tw.Flush()
	fmt.Fprintln(w)
}

// PrintTagCounts writes tag frequencies, most frequent first.
func PrintTagCounts(w io.Writer, title string, counts map[string]int) {
	banner(w, title)
	for _, tc := range SortedCounts(counts) {
		fmt.Fprintf(w, "%4d  %s\n", tc.Count, tc.Tag)
	}
	fmt.Fprintln(w)
}

// TagCount is one row of a tag frequency table.
type TagCount struct {
	Tag   string
	Count int
}

// SortedCounts orders counts by frequency, then by tag.
func SortedCounts(counts map[string]int) []TagCount {
	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

// PrintReview writes a period review next to the previous period.
func PrintReview(w io.Writer, rv stats.PeriodReview) {
	cur := rv.Range.Current()
	banner(w, "Review "+period(cur.From, cur.To))
	writeReview(w, rv.Current)

	if rv.Previous != nil {
		prev := rv.Range.Previous()
		section(w, "Previous Period "+period(prev.From, prev.To))
		c, p := rv.Current.Overview, rv.Previous.Overview
		fmt.Fprintf(w, "Trades:        %d (%+d)\n", p.TotalTrades, c.TotalTrades-p.TotalTrades)
		fmt.Fprintf(w, "Win Rate:      %.2f%% (%+.2f)\n", p.Winrate, c.Winrate-p.Winrate)
		fmt.Fprintf(w, "Net R:         %.2f (%+.2f)\n", p.NetR, c.NetR-p.NetR)
		fmt.Fprintf(w, "Net P/L:       %s\n", Money(p.NetProfit))
	}

	if len(rv.SetupStats) > 0 {
		section(w, "By Setup")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, g := range rv.SetupStats {
			fmt.Fprintf(tw, "%s\t%d trades\t%.2fR\t%.2f%%\n", g.Label, g.Stats.TotalTrades, g.Stats.NetR, g.Stats.Winrate)
		}
		_ = tw.Flush()
	}
	fmt.Fprintln(w)
}

func writeReview(w io.Writer, r stats.Review) {
	writeOverview(w, r.Overview)

	section(w, "Highlights")
	fmt.Fprintf(w, "Best Trade:    %s\n", tradeLine(r.BestTrade))
	fmt.Fprintf(w, "Worst Trade:   %s\n", tradeLine(r.WorstTrade))
	fmt.Fprintf(w, "Win Streak:    %d\n", r.WinStreak)
}

func tradeLine(t *stats.TradeSummary) string {
	if t == nil {
		return "-"
	}
	return fmt.Sprintf("#%d %s %s %s (%s)", t.ID, t.Date, t.Symbol, Money(t.Profit), orDash(t.Setup))
}

func period(from, to string) string {
	if from == "" && to == "" {
		return "(all time)"
	}
	return orDash(from) + " .. " + orDash(to)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
