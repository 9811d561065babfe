package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/risk"
	"github.com/rustyeddy/tradejournal/store"
)

// ListTrades returns the filtered trades, oldest first.
func (s *Service) ListTrades(ctx context.Context, f store.Filter) ([]journal.Trade, error) {
	return s.trades(ctx, "list", f)
}

// GetTrade returns one trade.
func (s *Service) GetTrade(ctx context.Context, id int64) (journal.Trade, error) {
	return s.store.GetTrade(ctx, id)
}

// AddTrade logs a new trade. Tag fields are normalised to JSON lists and the
// planned R:R is filled in from entry, stop and target when missing.
func (s *Service) AddTrade(ctx context.Context, t journal.Trade) (journal.Trade, error) {
	if err := validateTrade(t); err != nil {
		return journal.Trade{}, err
	}

	t.ID = 0
	t.Mistakes = journal.ToJSONList(t.Mistakes)
	t.Confluence = journal.ToJSONList(t.Confluence)
	t.EntryModel = journal.ToJSONList(t.EntryModel)
	t.PsychologicalTags = journal.ToJSONList(t.PsychologicalTags)
	if t.RR == nil && t.Entry != nil && t.SL != nil && t.TP != nil {
		t.RR = journal.Float(risk.RR(*t.Entry, *t.SL, *t.TP))
	}

	if _, err := s.store.AddTrade(ctx, &t); err != nil {
		return journal.Trade{}, err
	}
	s.logger.Info("trade added", zap.Int64("id", t.ID), zap.String("symbol", t.Symbol), zap.String("date", t.Date))
	return t, nil
}

func validateTrade(t journal.Trade) error {
	if strings.TrimSpace(t.Symbol) == "" {
		return fmt.Errorf("symbol is required: %w", ErrInvalidArgument)
	}
	if _, err := time.Parse(journal.DateLayout, t.Date); err != nil {
		return fmt.Errorf("date %q must be YYYY-MM-DD: %w", t.Date, ErrInvalidArgument)
	}
	return nil
}

// CloseTrade records the exit price of a trade and derives its profit from
// the configured fixed-risk lot model.
func (s *Service) CloseTrade(ctx context.Context, id int64, exit float64) (journal.Trade, error) {
	if exit <= 0 {
		return journal.Trade{}, fmt.Errorf("exit price must be positive: %w", ErrInvalidArgument)
	}
	t, err := s.store.GetTrade(ctx, id)
	if err != nil {
		return journal.Trade{}, err
	}

	profit, pct := risk.ProfitAndPct(exit, deref(t.Entry), t.Direction, deref(t.Capital), deref(t.SL), s.params)

	closed, err := s.store.CloseTrade(ctx, id, exit, profit, pct)
	if err != nil {
		return journal.Trade{}, err
	}
	s.logger.Info("trade closed",
		zap.Int64("id", id), zap.Float64("exit", exit), zap.Float64("profit", profit))
	return closed, nil
}

// ReviewTrade stores the post-trade self assessment.
func (s *Service) ReviewTrade(ctx context.Context, id int64, rv journal.TradeReview) (journal.Trade, error) {
	return s.store.UpdateTradeReview(ctx, id, rv)
}

// DeleteTrade removes a trade.
func (s *Service) DeleteTrade(ctx context.Context, id int64) error {
	if err := s.store.DeleteTrade(ctx, id); err != nil {
		return err
	}
	s.logger.Info("trade deleted", zap.Int64("id", id))
	return nil
}

// ImportTrades adds trades in order, ignoring their IDs. It stops at the
// first failure and reports how many were added.
func (s *Service) ImportTrades(ctx context.Context, trades []journal.Trade) (int, error) {
	for i, t := range trades {
		if _, err := s.AddTrade(ctx, t); err != nil {
			return i, fmt.Errorf("trade %d (%s %s): %w", i+1, t.Date, t.Symbol, err)
		}
	}
	return len(trades), nil
}

// ReviewNote returns the written review for a period.
func (s *Service) ReviewNote(ctx context.Context, periodType, periodKey string) (journal.ReviewNote, error) {
	if periodType == "" || periodKey == "" {
		return journal.ReviewNote{}, fmt.Errorf("period_type and period_key are required: %w", ErrInvalidArgument)
	}
	return s.store.GetReview(ctx, periodType, periodKey)
}

// SaveReviewNote creates or replaces the written review for a period.
func (s *Service) SaveReviewNote(ctx context.Context, n journal.ReviewNote) (journal.ReviewNote, error) {
	if n.PeriodType == "" || n.PeriodKey == "" {
		return journal.ReviewNote{}, fmt.Errorf("period_type and period_key are required: %w", ErrInvalidArgument)
	}
	if err := s.store.SaveReview(ctx, &n); err != nil {
		return journal.ReviewNote{}, err
	}
	return n, nil
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
