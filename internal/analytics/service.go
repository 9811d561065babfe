// Package analytics runs the statistics engine over trades pulled from a
// journal store and drives the trade workflow (log, close, review).
package analytics

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rustyeddy/tradejournal/internal/logging"
	"github.com/rustyeddy/tradejournal/internal/tracing"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/risk"
	"github.com/rustyeddy/tradejournal/stats"
	"github.com/rustyeddy/tradejournal/store"
)

// ErrInvalidArgument marks caller mistakes such as an unknown group key.
var ErrInvalidArgument = errors.New("invalid argument")

// Service is safe for concurrent use when its store is.
type Service struct {
	store  store.Store
	risk   float64
	params risk.Params
	logger *zap.Logger
}

// NewService returns a service computing R-multiples at riskPercent. A nil
// logger disables logging.
func NewService(st store.Store, riskPercent float64, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if riskPercent <= 0 {
		riskPercent = stats.DefaultRiskPercent
	}
	params := risk.DefaultParams()
	params.RiskPercent = riskPercent

	return &Service{
		store:  st,
		risk:   riskPercent,
		params: params,
		logger: logger.Named("analytics"),
	}
}

// RiskPercent returns the risk fraction used for R-multiples.
func (s *Service) RiskPercent() float64 {
	return s.risk
}

// Ping reports whether the underlying store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) trades(ctx context.Context, op string, f store.Filter) ([]journal.Trade, error) {
	ctx, span := tracing.Start(ctx, "analytics."+op,
		attribute.String("filter.symbol", f.Symbol),
		attribute.String("filter.setup", f.Setup),
		attribute.String("filter.from", f.From),
		attribute.String("filter.to", f.To),
	)
	defer span.End()

	trades, err := s.store.ListTrades(ctx, f)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	span.SetAttributes(attribute.Int("trades", len(trades)))
	logging.WithTrace(ctx, s.logger).Debug("loaded trades",
		zap.String("op", op), zap.Int("count", len(trades)))
	return trades, nil
}

// Overview returns the headline statistics for the filtered trades.
func (s *Service) Overview(ctx context.Context, f store.Filter) (stats.Overview, error) {
	trades, err := s.trades(ctx, "overview", f)
	if err != nil {
		return stats.Overview{}, err
	}
	return stats.OverviewStats(trades, s.risk), nil
}

// EquityCurve returns the cumulative R curve for the filtered trades.
func (s *Service) EquityCurve(ctx context.Context, f store.Filter) ([]stats.EquityPoint, error) {
	trades, err := s.trades(ctx, "equity_curve", f)
	if err != nil {
		return nil, err
	}
	return stats.EquityCurve(trades, s.risk), nil
}

// Drawdown returns the drawdown below the running peak at each trade.
func (s *Service) Drawdown(ctx context.Context, f store.Filter) ([]stats.DrawdownPoint, error) {
	curve, err := s.EquityCurve(ctx, f)
	if err != nil {
		return nil, err
	}
	return stats.DrawdownSeries(curve), nil
}

// Grouped partitions the filtered trades by key.
func (s *Service) Grouped(ctx context.Context, f store.Filter, key stats.GroupKey) ([]stats.Group, error) {
	if !key.Valid() {
		return nil, fmt.Errorf("group key %q: %w", key, ErrInvalidArgument)
	}
	trades, err := s.trades(ctx, "grouped", f)
	if err != nil {
		return nil, err
	}
	return stats.GroupedStats(trades, key, s.risk), nil
}

// Monthly returns profit per calendar month.
func (s *Service) Monthly(ctx context.Context, f store.Filter) ([]stats.MonthPnL, error) {
	trades, err := s.trades(ctx, "monthly", f)
	if err != nil {
		return nil, err
	}
	return stats.MonthlyPnL(trades), nil
}

// Tags counts the tags of one list field, e.g. "mistakes".
func (s *Service) Tags(ctx context.Context, f store.Filter, field string) (map[string]int, error) {
	if !validTagField(field) {
		return nil, fmt.Errorf("tag field %q: %w", field, ErrInvalidArgument)
	}
	trades, err := s.trades(ctx, "tags", f)
	if err != nil {
		return nil, err
	}
	return stats.TagCounts(trades, field), nil
}

func validTagField(field string) bool {
	for _, f := range stats.TagFields {
		if f == field {
			return true
		}
	}
	return false
}

// Review builds the review of the filtered period. When the filter has both
// bounds the previous period of equal length is reviewed as well, with the
// same symbol, setup, session and timeframe filters. A reversed range still
// gets a (usually empty) previous period. A range that cannot be parsed
// yields no previous period rather than an error.
func (s *Service) Review(ctx context.Context, f store.Filter) (stats.PeriodReview, error) {
	var out stats.PeriodReview

	var (
		prev        journal.Range
		hasPrev     bool
		current     []journal.Trade
		previousSet []journal.Trade
	)
	if f.Range().Bounded() {
		r, err := f.Range().Previous()
		if err != nil {
			s.logger.Warn("no previous period", zap.String("from", f.From), zap.String("to", f.To), zap.Error(err))
		} else {
			prev, hasPrev = r, true
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.trades(gctx, "review", f)
		return err
	})
	if hasPrev {
		g.Go(func() error {
			var err error
			previousSet, err = s.trades(gctx, "review.previous", f.WithRange(prev))
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return stats.PeriodReview{}, err
	}

	out.Current = stats.ReviewPackage(current, s.risk)
	out.SetupStats = stats.GroupedStats(current, stats.BySetup, s.risk)
	out.Range = stats.NewReviewRange(f.Range(), nil)
	if hasPrev {
		rv := stats.ReviewPackage(previousSet, s.risk)
		out.Previous = &rv
		out.Range = stats.NewReviewRange(f.Range(), &prev)
	}
	return out, nil
}
