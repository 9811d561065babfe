package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/pkg/id"
)

// dialect picks the placeholder style of the backend.
type dialect int

const (
	sqliteDialect dialect = iota
	postgresDialect
)

// arg returns the placeholder for the n-th (1-based) argument.
func (d dialect) arg(n int) string {
	if d == postgresDialect {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// args returns n comma-separated placeholders starting at first.
func (d dialect) args(first, n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = d.arg(first + i)
	}
	return strings.Join(ph, ", ")
}

// tradeColumns is the column order used by every trade SELECT.
const tradeColumns = `id, date, symbol, setup, direction, session, timeframe, grade,
	entry, sl, tp, exit, capital, rr, profit, profit_pct,
	mistakes, confluence, entry_model, psychological_tags,
	note, entry_reason, exit_reason, lessons`

// insertColumns is tradeColumns without the generated id.
const insertColumns = `date, symbol, setup, direction, session, timeframe, grade,
	entry, sl, tp, exit, capital, rr, profit, profit_pct,
	mistakes, confluence, entry_model, psychological_tags,
	note, entry_reason, exit_reason, lessons`

const insertColumnCount = 23

func listTradesQuery(d dialect, f Filter) (string, []any) {
	q := "SELECT " + tradeColumns + " FROM trades WHERE 1=1"
	var args []any

	add := func(clause string, v string) {
		if v == "" {
			return
		}
		args = append(args, v)
		q += fmt.Sprintf(clause, d.arg(len(args)))
	}
	add(" AND symbol = %s", f.Symbol)
	add(" AND setup = %s", f.Setup)
	add(" AND session = %s", f.Session)
	add(" AND timeframe = %s", f.Timeframe)
	add(" AND date >= %s", f.From)
	add(" AND date <= %s", f.To)

	return q + " ORDER BY date ASC, id ASC", args
}

func getTradeQuery(d dialect) string {
	return "SELECT " + tradeColumns + " FROM trades WHERE id = " + d.arg(1)
}

func insertTradeQuery(d dialect) string {
	return "INSERT INTO trades (" + insertColumns + ") VALUES (" +
		d.args(1, insertColumnCount) + ") RETURNING id"
}

func closeTradeQuery(d dialect) string {
	return fmt.Sprintf("UPDATE trades SET exit = %s, profit = %s, profit_pct = %s WHERE id = %s",
		d.arg(1), d.arg(2), d.arg(3), d.arg(4))
}

func updateReviewQuery(d dialect) string {
	return fmt.Sprintf(`UPDATE trades SET grade = %s, mistakes = %s, psychological_tags = %s,
		exit_reason = %s, note = %s, lessons = %s WHERE id = %s`,
		d.arg(1), d.arg(2), d.arg(3), d.arg(4), d.arg(5), d.arg(6), d.arg(7))
}

func deleteTradeQuery(d dialect) string {
	return "DELETE FROM trades WHERE id = " + d.arg(1)
}

const reviewColumns = `id, period_type, period_key, from_date, to_date,
	good_points, improvement_points, created_at, updated_at`

func getReviewQuery(d dialect) string {
	return "SELECT " + reviewColumns + " FROM reviews WHERE period_type = " + d.arg(1) +
		" AND period_key = " + d.arg(2)
}

// upsertReviewQuery keeps the id and created_at of an existing period.
func upsertReviewQuery(d dialect) string {
	return "INSERT INTO reviews (" + reviewColumns + ") VALUES (" + d.args(1, 9) + `)
		ON CONFLICT (period_type, period_key) DO UPDATE SET
			from_date = excluded.from_date,
			to_date = excluded.to_date,
			good_points = excluded.good_points,
			improvement_points = excluded.improvement_points,
			updated_at = excluded.updated_at`
}

// tradeArgs returns the insert arguments in insertColumns order. Empty tag
// lists are stored as "[]".
func tradeArgs(t *journal.Trade) []any {
	return []any{
		t.Date, t.Symbol, t.Setup, t.Direction, t.Session, t.Timeframe, t.Grade,
		t.Entry, t.SL, t.TP, t.Exit, t.Capital, t.RR, t.Profit, t.ProfitPct,
		tagsOrEmpty(t.Mistakes), tagsOrEmpty(t.Confluence),
		tagsOrEmpty(t.EntryModel), tagsOrEmpty(t.PsychologicalTags),
		t.Note, t.EntryReason, t.ExitReason, t.Lessons,
	}
}

func reviewArgs(rv journal.TradeReview, id int64) []any {
	return []any{
		rv.Grade,
		journal.EncodeTags(rv.Mistakes),
		journal.EncodeTags(rv.PsychologicalTags),
		rv.ExitReason, rv.Note, rv.Lessons,
		id,
	}
}

// prepareReview stamps a new id and timestamps onto n and returns the
// upsert arguments.
func prepareReview(n *journal.ReviewNote, now time.Time) []any {
	ts := now.UTC().Format(time.RFC3339)
	if n.ID == "" {
		n.ID = id.NewAt(now)
	}
	if n.CreatedAt == "" {
		n.CreatedAt = ts
	}
	n.UpdatedAt = ts
	return []any{
		n.ID, n.PeriodType, n.PeriodKey, n.FromDate, n.ToDate,
		n.GoodPoints, n.ImprovementPoints, n.CreatedAt, n.UpdatedAt,
	}
}

func tagsOrEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return "[]"
	}
	return s
}

// scanner is satisfied by *sql.Row, *sql.Rows, pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(row scanner) (journal.Trade, error) {
	var t journal.Trade
	err := row.Scan(
		&t.ID, &t.Date, &t.Symbol, &t.Setup, &t.Direction, &t.Session, &t.Timeframe, &t.Grade,
		&t.Entry, &t.SL, &t.TP, &t.Exit, &t.Capital, &t.RR, &t.Profit, &t.ProfitPct,
		&t.Mistakes, &t.Confluence, &t.EntryModel, &t.PsychologicalTags,
		&t.Note, &t.EntryReason, &t.ExitReason, &t.Lessons,
	)
	return t, err
}

func scanReview(row scanner) (journal.ReviewNote, error) {
	var n journal.ReviewNote
	err := row.Scan(
		&n.ID, &n.PeriodType, &n.PeriodKey, &n.FromDate, &n.ToDate,
		&n.GoodPoints, &n.ImprovementPoints, &n.CreatedAt, &n.UpdatedAt,
	)
	return n, err
}

func validReview(n *journal.ReviewNote) error {
	if n == nil || n.PeriodType == "" || n.PeriodKey == "" {
		return fmt.Errorf("period_type and period_key are required")
	}
	return nil
}
