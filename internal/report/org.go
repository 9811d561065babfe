package report

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/stats"
)

// ReviewDoc is the data behind an Org-mode period review.
type ReviewDoc struct {
	Review  stats.PeriodReview
	Note    *journal.ReviewNote // written review, optional
	Created time.Time
}

var orgFuncs = template.FuncMap{
	"money":  Money,
	"pf":     ProfitFactor,
	"period": period,
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
	"sub": func(a, b float64) float64 { return a - b },
}

var reviewOrg = template.Must(template.New("review").Funcs(orgFuncs).Parse(ReviewOrgTemplate))

// WriteReviewOrg renders doc as an Org-mode document.
func WriteReviewOrg(w io.Writer, doc ReviewDoc) error {
	if err := reviewOrg.Execute(w, doc); err != nil {
		return fmt.Errorf("render review org: %w", err)
	}
	return nil
}

// ReviewOrgTemplate is the Org-mode layout of a period review.
const ReviewOrgTemplate = `{{$cur := .Review.Range.Current -}}
* REVIEW: {{period $cur.From $cur.To}}
:PROPERTIES:
:FROM:        {{if $cur.From}}{{$cur.From}}{{else}}(open){{end}}
:TO:          {{if $cur.To}}{{$cur.To}}{{else}}(open){{end}}
{{- with .Note}}
:PERIOD:      {{.PeriodType}} {{.PeriodKey}}
:REVIEW_ID:   {{.ID}}
{{- end}}
:TRADES:      {{.Review.Current.Overview.TotalTrades}}
:WIN_RATE:    {{printf "%.2f" .Review.Current.Overview.Winrate}}
:NET_PL:      {{printf "%.2f" .Review.Current.Overview.NetProfit}}
:NET_R:       {{printf "%.2f" .Review.Current.Overview.NetR}}
:EXPECTANCY:  {{printf "%.3f" .Review.Current.Overview.ExpectancyR}}
:PROFIT_FAC:  {{pf .Review.Current.Overview.ProfitFactor}}
:MAX_DD_R:    {{printf "%.2f" .Review.Current.Overview.MaxDrawdownR}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
{{- with .Review.Current}}
- Net P/L:          *{{money .Overview.NetProfit}}*
- Net R:            *{{printf "%.2f" .Overview.NetR}}R*
- Win Rate:         *{{printf "%.2f" .Overview.Winrate}}%*
- Expectancy:       *{{printf "%.3f" .Overview.ExpectancyR}}R*
- Profit Factor:    *{{pf .Overview.ProfitFactor}}*
- Max Drawdown:     *{{printf "%.2f" .Overview.MaxDrawdownR}}R*
- Win Streak:       *{{.WinStreak}}*
{{- end}}

** Trade Distribution
| Outcome   | Count |
|-----------+-------|
| Wins      | {{.Review.Current.Overview.WinTrades}} |
| Losses    | {{.Review.Current.Overview.LossTrades}} |
| Breakeven | {{.Review.Current.Overview.BreakevenTrades}} |
| Total     | {{.Review.Current.Overview.TotalTrades}} |

** Highlights
{{- with .Review.Current.BestTrade}}
- Best:  #{{.ID}} {{.Date}} {{.Symbol}} {{money .Profit}}{{if .Setup}} ({{.Setup}}){{end}}
{{- else}}
- Best:  (no closed trades)
{{- end}}
{{- with .Review.Current.WorstTrade}}
- Worst: #{{.ID}} {{.Date}} {{.Symbol}} {{money .Profit}}{{if .Setup}} ({{.Setup}}){{end}}
{{- else}}
- Worst: (no losing trades)
{{- end}}

{{- if .Review.SetupStats}}

** By Setup
| Setup | Trades | Win % | Net R | Net P/L |
|-------+--------+-------+-------+---------|
{{- range .Review.SetupStats}}
| {{.Label}} | {{.Stats.TotalTrades}} | {{printf "%.2f" .Stats.Winrate}} | {{printf "%.2f" .Stats.NetR}} | {{money .Stats.NetProfit}} |
{{- end}}
{{- end}}

{{- with .Review.Previous}}

** Compared to {{with $.Review.Range.Previous}}{{period .From .To}}{{end}}
| Metric   | Previous | Change |
|----------+----------+--------|
| Net R    | {{printf "%.2f" .Overview.NetR}} | {{printf "%+.2f" (sub $.Review.Current.Overview.NetR .Overview.NetR)}} |
| Win Rate | {{printf "%.2f" .Overview.Winrate}} | {{printf "%+.2f" (sub $.Review.Current.Overview.Winrate .Overview.Winrate)}} |
| Net P/L  | {{money .Overview.NetProfit}} | {{money (sub $.Review.Current.Overview.NetProfit .Overview.NetProfit)}} |
{{- end}}

{{- with .Note}}
{{- if .GoodPoints}}

** What Went Well
{{.GoodPoints}}
{{- end}}
{{- if .ImprovementPoints}}

** To Improve
{{.ImprovementPoints}}
{{- end}}
{{- end}}
`
