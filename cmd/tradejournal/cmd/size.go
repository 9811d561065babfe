package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/risk"
)

var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Size a position from a risk budget",
	Long: `Compute the lot size that loses the given share of capital when the
stop is hit. Lots are floored to the symbol's lot step.

Example:
  tradejournal size --symbol EURUSD --capital 10000 --entry 1.0850 --sl 1.0830 --tp 1.0890`,
	Args: cobra.NoArgs,
	RunE: runSize,
}

var (
	sizeSymbol  string
	sizeCapital float64
	sizeRisk    float64
	sizeEntry   float64
	sizeSL      float64
	sizeTP      float64
)

func init() {
	rootCmd.AddCommand(sizeCmd)

	sizeCmd.Flags().StringVarP(&sizeSymbol, "symbol", "s", "EURUSD", "symbol")
	sizeCmd.Flags().Float64VarP(&sizeCapital, "capital", "b", 10_000, "account capital")
	sizeCmd.Flags().Float64Var(&sizeRisk, "risk", 0.01, "risk per trade (0.01 = 1%)")
	sizeCmd.Flags().Float64Var(&sizeEntry, "entry", 0, "entry price (required)")
	sizeCmd.Flags().Float64Var(&sizeSL, "sl", 0, "stop loss price (required)")
	sizeCmd.Flags().Float64Var(&sizeTP, "tp", 0, "take profit price")
	sizeCmd.MarkFlagRequired("entry")
	sizeCmd.MarkFlagRequired("sl")
}

func runSize(cmd *cobra.Command, args []string) error {
	meta := risk.SymbolMetaFor(sizeSymbol)
	pos := risk.PositionSize(meta, sizeCapital, sizeRisk, sizeEntry, sizeSL, sizeTP)
	if !pos.Valid {
		return fmt.Errorf("cannot size %s: entry and stop must differ", sizeSymbol)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Symbol:     %s\n", risk.NormalizeSymbol(sizeSymbol))
	fmt.Fprintf(out, "Risk:       %.2f (%.2f%%)\n", pos.RiskAmount, sizeRisk*100)
	fmt.Fprintf(out, "Stop:       %.1f %s\n", pos.StopTicks, pos.Unit)
	fmt.Fprintf(out, "Lots:       %.2f\n", pos.Lots)
	if pos.RR > 0 {
		fmt.Fprintf(out, "R:R:        %.2f\n", pos.RR)
	}
	if pos.Note != "" {
		fmt.Fprintf(out, "Note:       %s\n", pos.Note)
	}
	return nil
}
