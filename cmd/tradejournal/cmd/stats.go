package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/internal/report"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/stats"
	"github.com/rustyeddy/tradejournal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Performance statistics for the journal",
	Long: `Compute statistics over closed trades, normalized to R-multiples.

Subcommands:
  overview  - Win rate, expectancy, profit factor and drawdown
  equity    - Cumulative R after each trade
  by        - Breakdown by symbol, setup, session, timeframe, direction or grade
  monthly   - Profit per calendar month
  mistakes  - How often each mistake tag was used
  tags      - Counts for any tag list field
  review    - A period review compared with the previous period

Every subcommand accepts the same filters.

Examples:
  tradejournal stats overview --range 30d
  tradejournal stats by setup --symbol EURUSD
  tradejournal stats review --from 2025-03-03 --to 2025-03-09 --org`,
}

var statsOverviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Headline statistics",
	Args:  cobra.NoArgs,
	RunE:  runStatsOverview,
}

var statsEquityCmd = &cobra.Command{
	Use:   "equity",
	Short: "Equity curve in R",
	Args:  cobra.NoArgs,
	RunE:  runStatsEquity,
}

var statsByCmd = &cobra.Command{
	Use:   "by <symbol|setup|session|timeframe|direction|grade>",
	Short: "Statistics per group",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatsBy,
}

var statsMonthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Profit per month",
	Args:  cobra.NoArgs,
	RunE:  runStatsMonthly,
}

var statsMistakesCmd = &cobra.Command{
	Use:   "mistakes",
	Short: "Mistake tag counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTagCounts(cmd, "mistakes")
	},
}

var statsTagsCmd = &cobra.Command{
	Use:   "tags <mistakes|psychological_tags|confluence|entry_model>",
	Short: "Tag counts for one tag list field",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTagCounts(cmd, args[0])
	},
}

var statsReviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review a period against the one before it",
	Long: `Build the review of the filtered period. With both --from and --to set
(or a --range preset) the previous period of the same length is reviewed too.

With --org the review is written as an Org-mode document, including the
written review note for --period/--key when one has been saved.`,
	Args: cobra.NoArgs,
	RunE: runStatsReview,
}

var (
	fSymbol    string
	fSetup     string
	fSession   string
	fTimeframe string
	fFrom      string
	fTo        string
	fRange     string
	statsJSON  bool

	reviewOrg        bool
	reviewPeriodType string
	reviewPeriodKey  string
)

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.AddCommand(statsOverviewCmd)
	statsCmd.AddCommand(statsEquityCmd)
	statsCmd.AddCommand(statsByCmd)
	statsCmd.AddCommand(statsMonthlyCmd)
	statsCmd.AddCommand(statsMistakesCmd)
	statsCmd.AddCommand(statsTagsCmd)
	statsCmd.AddCommand(statsReviewCmd)

	pf := statsCmd.PersistentFlags()
	pf.StringVar(&fSymbol, "symbol", "", "only trades on this symbol")
	pf.StringVar(&fSetup, "setup", "", "only trades with this setup")
	pf.StringVar(&fSession, "session", "", "only trades in this session")
	pf.StringVar(&fTimeframe, "timeframe", "", "only trades on this timeframe")
	pf.StringVar(&fFrom, "from", "", "first day, YYYY-MM-DD")
	pf.StringVar(&fTo, "to", "", "last day, YYYY-MM-DD")
	pf.StringVarP(&fRange, "range", "r", "", "preset range: all, 30d, 6m, ytd")
	pf.BoolVar(&statsJSON, "json", false, "print JSON instead of text")

	statsReviewCmd.Flags().BoolVar(&reviewOrg, "org", false, "write an Org-mode review document")
	statsReviewCmd.Flags().StringVar(&reviewPeriodType, "period", "", "review note period type (week or month)")
	statsReviewCmd.Flags().StringVar(&reviewPeriodKey, "key", "", "review note period key")
}

// statsFilter builds the trade filter from the command line. Explicit
// --from/--to win over a --range preset.
func statsFilter(now time.Time) (store.Filter, error) {
	f := store.Filter{
		Symbol:    fSymbol,
		Setup:     fSetup,
		Session:   fSession,
		Timeframe: fTimeframe,
	}
	if fRange != "" {
		r, err := journal.PresetRange(fRange, now)
		if err != nil {
			return f, err
		}
		f = f.WithRange(r)
	}
	if fFrom != "" {
		f.From = fFrom
	}
	if fTo != "" {
		f.To = fTo
	}
	for _, d := range []string{f.From, f.To} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(journal.DateLayout, d); err != nil {
			return f, fmt.Errorf("date %q must be YYYY-MM-DD", d)
		}
	}
	return f, nil
}

func title(base string, f store.Filter) string {
	var parts []string
	for _, p := range []string{f.Symbol, f.Setup, f.Session, f.Timeframe} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if f.From != "" || f.To != "" {
		parts = append(parts, fmt.Sprintf("%s..%s", f.From, f.To))
	}
	if len(parts) == 0 {
		return base
	}
	return base + " (" + strings.Join(parts, ", ") + ")"
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runStatsOverview(cmd *cobra.Command, args []string) error {
	f, err := statsFilter(time.Now())
	if err != nil {
		return err
	}
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	o, err := a.svc.Overview(cmd.Context(), f)
	if err != nil {
		return err
	}
	if statsJSON {
		return printJSON(cmd.OutOrStdout(), o)
	}
	report.PrintOverview(cmd.OutOrStdout(), title("Overview", f), o)
	return nil
}

func runStatsEquity(cmd *cobra.Command, args []string) error {
	f, err := statsFilter(time.Now())
	if err != nil {
		return err
	}
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	curve, err := a.svc.EquityCurve(cmd.Context(), f)
	if err != nil {
		return err
	}
	if statsJSON {
		return printJSON(cmd.OutOrStdout(), curve)
	}
	report.PrintEquity(cmd.OutOrStdout(), curve)
	return nil
}

func runStatsBy(cmd *cobra.Command, args []string) error {
	key := stats.GroupKey(strings.ToLower(args[0]))
	if !key.Valid() {
		return fmt.Errorf("unknown group %q (supported: %v)", args[0], stats.GroupKeys)
	}
	f, err := statsFilter(time.Now())
	if err != nil {
		return err
	}
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	groups, err := a.svc.Grouped(cmd.Context(), f, key)
	if err != nil {
		return err
	}
	if statsJSON {
		return printJSON(cmd.OutOrStdout(), groups)
	}
	report.PrintGroups(cmd.OutOrStdout(), key, groups)
	return nil
}

func runStatsMonthly(cmd *cobra.Command, args []string) error {
	f, err := statsFilter(time.Now())
	if err != nil {
		return err
	}
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	months, err := a.svc.Monthly(cmd.Context(), f)
	if err != nil {
		return err
	}
	if statsJSON {
		return printJSON(cmd.OutOrStdout(), months)
	}
	report.PrintMonthly(cmd.OutOrStdout(), months)
	return nil
}

func runTagCounts(cmd *cobra.Command, field string) error {
	f, err := statsFilter(time.Now())
	if err != nil {
		return err
	}
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	counts, err := a.svc.Tags(cmd.Context(), f, field)
	if err != nil {
		return err
	}
	if statsJSON {
		return printJSON(cmd.OutOrStdout(), report.SortedCounts(counts))
	}
	report.PrintTagCounts(cmd.OutOrStdout(), title(strings.ReplaceAll(field, "_", " "), f), counts)
	return nil
}

func runStatsReview(cmd *cobra.Command, args []string) error {
	f, err := statsFilter(time.Now())
	if err != nil {
		return err
	}
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	rv, err := a.svc.Review(ctx, f)
	if err != nil {
		return err
	}

	switch {
	case reviewOrg:
		doc := report.ReviewDoc{Review: rv, Created: time.Now()}
		if reviewPeriodType != "" && reviewPeriodKey != "" {
			n, err := a.svc.ReviewNote(ctx, reviewPeriodType, reviewPeriodKey)
			switch {
			case err == nil:
				doc.Note = &n
			case !errors.Is(err, store.ErrNotFound):
				return err
			}
		}
		return report.WriteReviewOrg(cmd.OutOrStdout(), doc)
	case statsJSON:
		return printJSON(cmd.OutOrStdout(), rv)
	}
	report.PrintReview(cmd.OutOrStdout(), rv)
	return nil
}
