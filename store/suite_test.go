package store

import (
	"context"
	"testing"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrade(date, symbol string) *journal.Trade {
	return &journal.Trade{
		Date:        date,
		Symbol:      symbol,
		Setup:       "OB",
		Direction:   "Long",
		Session:     "London",
		Timeframe:   "M15",
		Entry:       journal.Float(1.0850),
		SL:          journal.Float(1.0830),
		TP:          journal.Float(1.0890),
		Capital:     journal.Float(10000),
		RR:          journal.Float(2),
		Confluence:  `["HTF bias","Liquidity sweep"]`,
		EntryReason: "sweep of Asia low",
	}
}

// runStoreSuite exercises the Store contract. newStore must return an empty
// store each time it is called.
func runStoreSuite(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("add and get", func(t *testing.T) {
		s := newStore(t)

		in := sampleTrade("2024-01-02", "EURUSD")
		id, err := s.AddTrade(ctx, in)
		require.NoError(t, err)
		assert.NotZero(t, id)
		assert.Equal(t, id, in.ID)

		got, err := s.GetTrade(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "EURUSD", got.Symbol)
		assert.Equal(t, "OB", got.Setup)
		require.NotNil(t, got.Entry)
		assert.InDelta(t, 1.0850, *got.Entry, 1e-9)
		assert.Nil(t, got.Profit, "new trades are open")
		assert.Nil(t, got.Exit)
		assert.False(t, got.Closed())
		assert.Equal(t, "[]", got.Mistakes)
		assert.Equal(t, []string{"HTF bias", "Liquidity sweep"}, journal.DecodeTags(got.Confluence))
	})

	t.Run("ping", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Ping(ctx))
	})

	t.Run("get missing", func(t *testing.T) {
		s := newStore(t)

		_, err := s.GetTrade(ctx, 404)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list order and filters", func(t *testing.T) {
		s := newStore(t)

		for _, tr := range []*journal.Trade{
			sampleTrade("2024-01-05", "EURUSD"),
			sampleTrade("2024-01-01", "XAUUSD"),
			sampleTrade("2024-01-05", "XAUUSD"),
			sampleTrade("2024-02-01", "EURUSD"),
		} {
			_, err := s.AddTrade(ctx, tr)
			require.NoError(t, err)
		}

		all, err := s.ListTrades(ctx, Filter{})
		require.NoError(t, err)
		require.Len(t, all, 4)
		assert.Equal(t, "2024-01-01", all[0].Date)
		assert.Equal(t, "2024-01-05", all[1].Date)
		assert.Equal(t, "2024-01-05", all[2].Date)
		assert.Less(t, all[1].ID, all[2].ID)
		assert.Equal(t, "2024-02-01", all[3].Date)

		xau, err := s.ListTrades(ctx, Filter{Symbol: "XAUUSD"})
		require.NoError(t, err)
		assert.Len(t, xau, 2)

		jan, err := s.ListTrades(ctx, Filter{From: "2024-01-01", To: "2024-01-31"})
		require.NoError(t, err)
		assert.Len(t, jan, 3)

		none, err := s.ListTrades(ctx, Filter{Setup: "FVG"})
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("close trade", func(t *testing.T) {
		s := newStore(t)

		id, err := s.AddTrade(ctx, sampleTrade("2024-03-01", "EURUSD"))
		require.NoError(t, err)

		got, err := s.CloseTrade(ctx, id, 1.0890, 200, 2)
		require.NoError(t, err)
		assert.True(t, got.Closed())
		assert.InDelta(t, 200, *got.Profit, 1e-9)
		assert.InDelta(t, 2, *got.ProfitPct, 1e-9)
		assert.InDelta(t, 1.0890, *got.Exit, 1e-9)

		_, err = s.CloseTrade(ctx, id+100, 1, 1, 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update review", func(t *testing.T) {
		s := newStore(t)

		id, err := s.AddTrade(ctx, sampleTrade("2024-03-01", "EURUSD"))
		require.NoError(t, err)

		got, err := s.UpdateTradeReview(ctx, id, journal.TradeReview{
			Grade:             "B",
			Mistakes:          []string{"FOMO", "Moved SL"},
			PsychologicalTags: []string{"Impatient"},
			ExitReason:        "TP hit",
			Lessons:           "wait for the close",
		})
		require.NoError(t, err)
		assert.Equal(t, "B", got.Grade)
		assert.Equal(t, []string{"FOMO", "Moved SL"}, journal.DecodeTags(got.Mistakes))
		assert.Equal(t, []string{"Impatient"}, journal.DecodeTags(got.PsychologicalTags))
		assert.Equal(t, "TP hit", got.ExitReason)
		assert.Equal(t, "wait for the close", got.Lessons)

		_, err = s.UpdateTradeReview(ctx, id+100, journal.TradeReview{})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete trade", func(t *testing.T) {
		s := newStore(t)

		id, err := s.AddTrade(ctx, sampleTrade("2024-03-01", "EURUSD"))
		require.NoError(t, err)

		require.NoError(t, s.DeleteTrade(ctx, id))
		_, err = s.GetTrade(ctx, id)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, s.DeleteTrade(ctx, id), ErrNotFound)
	})

	t.Run("save review upserts", func(t *testing.T) {
		s := newStore(t)

		_, err := s.GetReview(ctx, "month", "2025-03")
		assert.ErrorIs(t, err, ErrNotFound)

		n := &journal.ReviewNote{
			PeriodType: "month",
			PeriodKey:  "2025-03",
			FromDate:   "2025-03-01",
			ToDate:     "2025-03-31",
			GoodPoints: "followed the plan",
		}
		require.NoError(t, s.SaveReview(ctx, n))
		assert.NotEmpty(t, n.ID)
		firstID, created := n.ID, n.CreatedAt

		again := &journal.ReviewNote{
			PeriodType:        "month",
			PeriodKey:         "2025-03",
			FromDate:          "2025-03-01",
			ToDate:            "2025-03-31",
			GoodPoints:        "followed the plan",
			ImprovementPoints: "fewer trades on Friday",
		}
		require.NoError(t, s.SaveReview(ctx, again))
		assert.Equal(t, firstID, again.ID, "same period keeps its id")
		assert.Equal(t, created, again.CreatedAt)

		got, err := s.GetReview(ctx, "month", "2025-03")
		require.NoError(t, err)
		assert.Equal(t, "fewer trades on Friday", got.ImprovementPoints)
	})

	t.Run("save review requires period", func(t *testing.T) {
		s := newStore(t)

		assert.Error(t, s.SaveReview(ctx, &journal.ReviewNote{PeriodType: "week"}))
		assert.Error(t, s.SaveReview(ctx, nil))
	})
}
