package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/store"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Log, close and query trades",
	Long: `Work with the trade records themselves.

Subcommands:
  add     - Log a new trade
  close   - Record the exit of an open trade
  trade   - Show one trade as Org-mode
  day     - Show the trades of one day as Org-mode
  import  - Add trades from a CSV file
  export  - Write trades to a CSV file
  note    - Save the written review for a week or month

Examples:
  tradejournal journal add --date 2025-03-04 --symbol EURUSD --entry 1.0850 --sl 1.0830 --tp 1.0890 --capital 10000
  tradejournal journal close 12 --exit 1.0890
  tradejournal journal day 2025-03-04`,
}

var journalAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a new trade",
	Args:  cobra.NoArgs,
	RunE:  runJournalAdd,
}

var journalCloseCmd = &cobra.Command{
	Use:   "close <trade-id>",
	Short: "Record the exit price of a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalClose,
}

var journalTradeCmd = &cobra.Command{
	Use:   "trade <trade-id>",
	Short: "Get details of a specific trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTrade,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List trades taken on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalImportCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Add trades from a CSV export",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalImport,
}

var journalExportCmd = &cobra.Command{
	Use:   "export <file.csv>",
	Short: "Write all trades to CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalExport,
}

var journalNoteCmd = &cobra.Command{
	Use:   "note <week|month> <period-key>",
	Short: "Save the written review for a period",
	Args:  cobra.ExactArgs(2),
	RunE:  runJournalNote,
}

var (
	addTrade   journal.Trade
	addEntry   float64
	addSL      float64
	addTP      float64
	addCapital float64

	closeExit float64

	noteFrom    string
	noteTo      string
	noteGood    string
	noteImprove string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalAddCmd)
	journalCmd.AddCommand(journalCloseCmd)
	journalCmd.AddCommand(journalTradeCmd)
	journalCmd.AddCommand(journalDayCmd)
	journalCmd.AddCommand(journalImportCmd)
	journalCmd.AddCommand(journalExportCmd)
	journalCmd.AddCommand(journalNoteCmd)

	af := journalAddCmd.Flags()
	af.StringVar(&addTrade.Date, "date", time.Now().Format(journal.DateLayout), "trade date, YYYY-MM-DD")
	af.StringVarP(&addTrade.Symbol, "symbol", "s", "", "symbol, e.g. EURUSD (required)")
	af.StringVar(&addTrade.Direction, "direction", "Long", "Long or Short")
	af.StringVar(&addTrade.Setup, "setup", "", "setup name")
	af.StringVar(&addTrade.Session, "session", "", "session, e.g. London")
	af.StringVar(&addTrade.Timeframe, "timeframe", "", "entry timeframe, e.g. M15")
	af.Float64Var(&addEntry, "entry", 0, "entry price")
	af.Float64Var(&addSL, "sl", 0, "stop loss price")
	af.Float64Var(&addTP, "tp", 0, "take profit price")
	af.Float64Var(&addCapital, "capital", 0, "account capital at entry")
	af.StringVar(&addTrade.Confluence, "confluence", "", "comma separated confluences")
	af.StringVar(&addTrade.EntryReason, "reason", "", "why the trade was taken")
	journalAddCmd.MarkFlagRequired("symbol")

	journalCloseCmd.Flags().Float64Var(&closeExit, "exit", 0, "exit price (required)")
	journalCloseCmd.MarkFlagRequired("exit")

	nf := journalNoteCmd.Flags()
	nf.StringVar(&noteFrom, "from", "", "first day of the period")
	nf.StringVar(&noteTo, "to", "", "last day of the period")
	nf.StringVar(&noteGood, "good", "", "what went well")
	nf.StringVar(&noteImprove, "improve", "", "what to improve")
}

func optFloat(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return journal.Float(v)
}

func parseTradeID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid trade id %q", s)
	}
	return id, nil
}

func runJournalAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	t := addTrade
	t.Entry, t.SL, t.TP, t.Capital = optFloat(addEntry), optFloat(addSL), optFloat(addTP), optFloat(addCapital)

	added, err := a.svc.AddTrade(cmd.Context(), t)
	if err != nil {
		return fmt.Errorf("add trade: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged trade #%d: %s %s %s\n", added.ID, added.Date, added.Direction, added.Symbol)
	return nil
}

func runJournalClose(cmd *cobra.Command, args []string) error {
	id, err := parseTradeID(args[0])
	if err != nil {
		return err
	}
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	t, err := a.svc.CloseTrade(cmd.Context(), id, closeExit)
	if err != nil {
		return fmt.Errorf("close trade: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Closed trade #%d at %g: profit %.2f (%.2f%%)\n",
		t.ID, closeExit, *t.Profit, *t.ProfitPct)
	return nil
}

func runJournalTrade(cmd *cobra.Command, args []string) error {
	id, err := parseTradeID(args[0])
	if err != nil {
		return err
	}
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	rec, err := a.svc.GetTrade(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(rec))
	return nil
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	day := args[0]
	if _, err := time.Parse(journal.DateLayout, day); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	recs, err := a.svc.ListTrades(cmd.Context(), store.Filter{From: day, To: day})
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradesOrg(recs))
	return nil
}

func runJournalImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	trades, err := journal.ReadCSV(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.svc.ImportTrades(cmd.Context(), trades)
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d of %d trades from %s\n", n, len(trades), args[0])
	return err
}

func runJournalExport(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	trades, err := a.svc.ListTrades(cmd.Context(), store.Filter{})
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	if err := journal.WriteCSV(f, trades); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", args[0], err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d trades to %s\n", len(trades), args[0])
	return nil
}

func runJournalNote(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.svc.SaveReviewNote(cmd.Context(), journal.ReviewNote{
		PeriodType:        args[0],
		PeriodKey:         args[1],
		FromDate:          noteFrom,
		ToDate:            noteTo,
		GoodPoints:        noteGood,
		ImprovementPoints: noteImprove,
	})
	if err != nil {
		return fmt.Errorf("save review: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved %s review %s (%s)\n", n.PeriodType, n.PeriodKey, n.ID)
	return nil
}
