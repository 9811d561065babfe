package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSymbol(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"EURUSD", "EUR/USD"},
		{"eur_usd", "EUR/USD"},
		{" gbp-usd ", "GBP/USD"},
		{"XAUUSD", "XAU/USD"},
		{"xau/usd", "XAU/USD"},
		{"US100", "NAS100"},
		{"DJ30", "US30"},
		{"dow", "US30"},
		{"btc usd", "BTC/USD"},
		{"US30", "US30"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeSymbol(tt.in))
		})
	}
}

func TestSymbolMetaFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.01, SymbolMetaFor("usdjpy").TickSize)
	assert.Equal(t, 9.5, SymbolMetaFor("USD/JPY").TickValue)
	assert.Equal(t, "points", SymbolMetaFor("US100").Unit)
	assert.Equal(t, DefaultSymbolMeta, SymbolMetaFor(""))
	assert.Equal(t, DefaultSymbolMeta, SymbolMetaFor("EURGBP"))
}

func TestPositionSizeFX(t *testing.T) {
	t.Parallel()

	// 20 pip stop, $100 risk, $10/pip/lot -> 0.5 lots.
	got := PositionSize(SymbolMetaFor("EURUSD"), 10000, 0.01, 1.0850, 1.0830, 1.0890)

	assert.True(t, got.Valid)
	assert.InDelta(t, 0.5, got.Lots, 1e-9)
	assert.Equal(t, 100.0, got.RiskAmount)
	assert.Equal(t, 20.0, got.StopTicks)
	assert.Equal(t, 2.0, got.RR)
	assert.Equal(t, "pips", got.Unit)
	assert.Empty(t, got.Note)
}

func TestPositionSizeFloorsToLotStep(t *testing.T) {
	t.Parallel()

	// 30 pip stop, $100 risk -> 0.3333 lots floored to 0.33.
	got := PositionSize(SymbolMetaFor("EURUSD"), 10000, 0.01, 1.0850, 1.0820, 0)

	assert.InDelta(t, 0.33, got.Lots, 1e-9)
	assert.Zero(t, got.RR)
}

func TestPositionSizeBelowMinLot(t *testing.T) {
	t.Parallel()

	// $1 risk on a 50 pip stop is far below 0.01 lots.
	got := PositionSize(SymbolMetaFor("EURUSD"), 100, 0.01, 1.1000, 1.0950, 0)

	assert.True(t, got.Valid)
	assert.Zero(t, got.Lots)
	assert.Contains(t, got.Note, "below minimum lot")
}

func TestPositionSizeInvalid(t *testing.T) {
	t.Parallel()

	meta := SymbolMetaFor("EURUSD")

	assert.False(t, PositionSize(meta, 10000, 0.01, 0, 1.08, 1.09).Valid)
	assert.False(t, PositionSize(meta, 10000, 0.01, 1.08, 0, 1.09).Valid)
	assert.False(t, PositionSize(meta, 10000, 0.01, 1.08, 1.08, 1.09).Valid)
	assert.False(t, PositionSize(SymbolMeta{}, 10000, 0.01, 1.08, 1.07, 1.09).Valid)
}
