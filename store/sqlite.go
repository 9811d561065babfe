package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/tradejournal/journal"
)

// SQLite is the file-backed journal store.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

var _ Store = (*SQLite)(nil)

// NewSQLite opens (creating if needed) the journal database at path and
// applies the schema.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	// One writer keeps SQLite from reporting "database is locked".
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLite{db: db, now: time.Now}, nil
}

func (s *SQLite) ListTrades(ctx context.Context, f Filter) ([]journal.Trade, error) {
	q, args := listTradesQuery(sqliteDialect, f)
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	defer rows.Close()

	out := []journal.Trade{}
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLite) GetTrade(ctx context.Context, id int64) (journal.Trade, error) {
	t, err := scanTrade(s.db.QueryRowContext(ctx, getTradeQuery(sqliteDialect), id))
	if errors.Is(err, sql.ErrNoRows) {
		return journal.Trade{}, fmt.Errorf("trade %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return journal.Trade{}, fmt.Errorf("get trade %d: %w", id, err)
	}
	return t, nil
}

func (s *SQLite) AddTrade(ctx context.Context, t *journal.Trade) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, insertTradeQuery(sqliteDialect), tradeArgs(t)...).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("add trade: %w", err)
	}
	t.ID = id
	return id, nil
}

func (s *SQLite) CloseTrade(ctx context.Context, id int64, exit, profit, profitPct float64) (journal.Trade, error) {
	res, err := s.db.ExecContext(ctx, closeTradeQuery(sqliteDialect), exit, profit, profitPct, id)
	if err := affected(res, err, id); err != nil {
		return journal.Trade{}, fmt.Errorf("close trade: %w", err)
	}
	return s.GetTrade(ctx, id)
}

func (s *SQLite) UpdateTradeReview(ctx context.Context, id int64, rv journal.TradeReview) (journal.Trade, error) {
	res, err := s.db.ExecContext(ctx, updateReviewQuery(sqliteDialect), reviewArgs(rv, id)...)
	if err := affected(res, err, id); err != nil {
		return journal.Trade{}, fmt.Errorf("update trade review: %w", err)
	}
	return s.GetTrade(ctx, id)
}

func (s *SQLite) DeleteTrade(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, deleteTradeQuery(sqliteDialect), id)
	if err := affected(res, err, id); err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	return nil
}

func (s *SQLite) GetReview(ctx context.Context, periodType, periodKey string) (journal.ReviewNote, error) {
	n, err := scanReview(s.db.QueryRowContext(ctx, getReviewQuery(sqliteDialect), periodType, periodKey))
	if errors.Is(err, sql.ErrNoRows) {
		return journal.ReviewNote{}, fmt.Errorf("review %s/%s: %w", periodType, periodKey, ErrNotFound)
	}
	if err != nil {
		return journal.ReviewNote{}, fmt.Errorf("get review: %w", err)
	}
	return n, nil
}

func (s *SQLite) SaveReview(ctx context.Context, n *journal.ReviewNote) error {
	if err := validReview(n); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, upsertReviewQuery(sqliteDialect), prepareReview(n, s.now())...); err != nil {
		return fmt.Errorf("save review: %w", err)
	}
	saved, err := s.GetReview(ctx, n.PeriodType, n.PeriodKey)
	if err != nil {
		return err
	}
	*n = saved
	return nil
}

// Ping checks that the database file is reachable.
func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func affected(res sql.Result, err error, id int64) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("trade %d: %w", id, ErrNotFound)
	}
	return nil
}
