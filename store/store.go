// Package store persists journal trades and review notes. Two backends share
// one contract: SQLite for a single-user journal on disk and Postgres for a
// hosted journal.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rustyeddy/tradejournal/journal"
)

// ErrNotFound is returned when a trade or review does not exist.
var ErrNotFound = errors.New("not found")

// Filter narrows ListTrades. Empty fields are ignored; From and To are
// inclusive YYYY-MM-DD bounds.
type Filter struct {
	Symbol    string `json:"symbol,omitempty"`
	Setup     string `json:"setup,omitempty"`
	Session   string `json:"session,omitempty"`
	Timeframe string `json:"timeframe,omitempty"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
}

// WithRange returns a copy of f bounded by r.
func (f Filter) WithRange(r journal.Range) Filter {
	f.From, f.To = r.From, r.To
	return f
}

// Range returns the date bounds of f.
func (f Filter) Range() journal.Range {
	return journal.Range{From: f.From, To: f.To}
}

// Store is the journal persistence contract. Trades are always returned in
// date order, oldest first, with ties broken by ID.
type Store interface {
	ListTrades(ctx context.Context, f Filter) ([]journal.Trade, error)
	GetTrade(ctx context.Context, id int64) (journal.Trade, error)
	AddTrade(ctx context.Context, t *journal.Trade) (int64, error)
	CloseTrade(ctx context.Context, id int64, exit, profit, profitPct float64) (journal.Trade, error)
	UpdateTradeReview(ctx context.Context, id int64, rv journal.TradeReview) (journal.Trade, error)
	DeleteTrade(ctx context.Context, id int64) error

	GetReview(ctx context.Context, periodType, periodKey string) (journal.ReviewNote, error)
	SaveReview(ctx context.Context, n *journal.ReviewNote) error

	Ping(ctx context.Context) error
	Close() error
}

// Drivers understood by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open connects to the backend named by driver. For SQLite dsn is a file
// path (or ":memory:"); for Postgres it is a connection URL.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch strings.ToLower(driver) {
	case DriverSQLite, "sqlite3", "":
		return NewSQLite(dsn)
	case DriverPostgres, "pg", "postgresql":
		return NewPostgres(ctx, dsn)
	}
	return nil, fmt.Errorf("store: unknown driver %q", driver)
}
