package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rustyeddy/tradejournal/journal"
)

// Postgres is the pooled, hosted journal store.
type Postgres struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

var _ Store = (*Postgres)(nil)

// NewPostgres connects to dsn, verifies the connection and applies the
// schema.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.MaxConnIdleTime = 30 * time.Second
	cfg.MaxConnLifetime = 5 * time.Minute

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Postgres{pool: pool, now: time.Now}, nil
}

func (p *Postgres) ListTrades(ctx context.Context, f Filter) ([]journal.Trade, error) {
	q, args := listTradesQuery(postgresDialect, f)
	rows, err := p.pool.Query(ctx, q, args...)
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

func (p *Postgres) GetTrade(ctx context.Context, id int64) (journal.Trade, error) {
	t, err := scanTrade(p.pool.QueryRow(ctx, getTradeQuery(postgresDialect), id))
	if errors.Is(err, pgx.ErrNoRows) {
		return journal.Trade{}, fmt.Errorf("trade %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return journal.Trade{}, fmt.Errorf("get trade %d: %w", id, err)
	}
	return t, nil
}

func (p *Postgres) AddTrade(ctx context.Context, t *journal.Trade) (int64, error) {
	var id int64
	if err := p.pool.QueryRow(ctx, insertTradeQuery(postgresDialect), tradeArgs(t)...).Scan(&id); err != nil {
		return 0, fmt.Errorf("add trade: %w", err)
	}
	t.ID = id
	return id, nil
}

func (p *Postgres) CloseTrade(ctx context.Context, id int64, exit, profit, profitPct float64) (journal.Trade, error) {
	tag, err := p.pool.Exec(ctx, closeTradeQuery(postgresDialect), exit, profit, profitPct, id)
	if err := pgAffected(tag, err, id); err != nil {
		return journal.Trade{}, fmt.Errorf("close trade: %w", err)
	}
	return p.GetTrade(ctx, id)
}

func (p *Postgres) UpdateTradeReview(ctx context.Context, id int64, rv journal.TradeReview) (journal.Trade, error) {
	tag, err := p.pool.Exec(ctx, updateReviewQuery(postgresDialect), reviewArgs(rv, id)...)
	if err := pgAffected(tag, err, id); err != nil {
		return journal.Trade{}, fmt.Errorf("update trade review: %w", err)
	}
	return p.GetTrade(ctx, id)
}

func (p *Postgres) DeleteTrade(ctx context.Context, id int64) error {
	tag, err := p.pool.Exec(ctx, deleteTradeQuery(postgresDialect), id)
	if err := pgAffected(tag, err, id); err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	return nil
}

func (p *Postgres) GetReview(ctx context.Context, periodType, periodKey string) (journal.ReviewNote, error) {
	n, err := scanReview(p.pool.QueryRow(ctx, getReviewQuery(postgresDialect), periodType, periodKey))
	if errors.Is(err, pgx.ErrNoRows) {
		return journal.ReviewNote{}, fmt.Errorf("review %s/%s: %w", periodType, periodKey, ErrNotFound)
	}
	if err != nil {
		return journal.ReviewNote{}, fmt.Errorf("get review: %w", err)
	}
	return n, nil
}

func (p *Postgres) SaveReview(ctx context.Context, n *journal.ReviewNote) error {
	if err := validReview(n); err != nil {
		return err
	}
	if _, err := p.pool.Exec(ctx, upsertReviewQuery(postgresDialect), prepareReview(n, p.now())...); err != nil {
		return fmt.Errorf("save review: %w", err)
	}
	saved, err := p.GetReview(ctx, n.PeriodType, n.PeriodKey)
	if err != nil {
		return err
	}
	*n = saved
	return nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func pgAffected(tag pgconn.CommandTag, err error, id int64) error {
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("trade %d: %w", id, ErrNotFound)
	}
	return nil
}
