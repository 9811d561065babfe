package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", []string{}},
		{"blank", "   ", []string{}},
		{"list", `["FOMO","No SL"]`, []string{"FOMO", "No SL"}},
		{"trims and drops empty", `[" FOMO ", "", "  "]`, []string{"FOMO"}},
		{"not json", "FOMO, No SL", []string{}},
		{"object", `{"a":1}`, []string{}},
		{"string scalar", `"FOMO"`, []string{}},
		{"mixed element types", `["FOMO", 3, true, null]`, []string{"FOMO", "3", "true"}},
		{"json spelling of scalars", `[1.0, 2.5, false, null, null]`, []string{"1", "2.5", "false"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeTags(tt.raw))
		})
	}
}

func TestToJSONList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", "[]"},
		{`["a","b"]`, `["a","b"]`},
		{"a, b ,,c", `["a","b","c"]`},
		{",", "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ToJSONList(tt.in))
		})
	}
}

func TestEncodeTagsNil(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[]", EncodeTags(nil))
	assert.Equal(t, `["x"]`, EncodeTags([]string{"x"}))
}

func TestRangePrevious(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Range
		want Range
	}{
		{"month", Range{"2024-03-01", "2024-03-31"}, Range{"2024-01-30", "2024-02-29"}},
		{"single day", Range{"2024-01-01", "2024-01-01"}, Range{"2023-12-31", "2023-12-31"}},
		{"week", Range{"2025-03-10", "2025-03-16"}, Range{"2025-03-03", "2025-03-09"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Previous()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			wantDays, err := tt.in.Days()
			require.NoError(t, err)
			gotDays, err := got.Days()
			require.NoError(t, err)
			assert.Equal(t, wantDays, gotDays)
		})
	}
}

func TestRangePreviousErrors(t *testing.T) {
	t.Parallel()

	for _, r := range []Range{
		{},
		{From: "2024-01-01"},
		{From: "2024/01/01", To: "2024-01-02"},
	} {
		_, err := r.Previous()
		assert.Error(t, err, "%+v", r)
	}
}

func TestRangePreviousReversed(t *testing.T) {
	t.Parallel()

	r := Range{From: "2024-02-10", To: "2024-02-01"}
	days, err := r.Days()
	require.NoError(t, err)
	assert.Equal(t, -8, days)

	got, err := r.Previous()
	require.NoError(t, err)
	assert.Equal(t, Range{From: "2024-02-18", To: "2024-02-09"}, got)
}

func TestPresetRange(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 8, 15, 10, 0, 0, 0, time.UTC)

	all, err := PresetRange("all", now)
	require.NoError(t, err)
	assert.False(t, all.Bounded())

	r, err := PresetRange("30d", now)
	require.NoError(t, err)
	assert.Equal(t, Range{"2024-07-16", "2024-08-15"}, r)

	r, err = PresetRange("6m", now)
	require.NoError(t, err)
	assert.Equal(t, Range{"2024-02-15", "2024-08-15"}, r)

	r, err = PresetRange("ytd", now)
	require.NoError(t, err)
	assert.Equal(t, Range{"2024-01-01", "2024-08-15"}, r)

	_, err = PresetRange("decade", now)
	assert.Error(t, err)
}

func TestTradeLabel(t *testing.T) {
	t.Parallel()

	tr := Trade{Symbol: "EURUSD", Setup: "OB", Session: "NY", Timeframe: "M15", Direction: "Short", Grade: "B"}
	assert.Equal(t, "EURUSD", tr.Label("symbol"))
	assert.Equal(t, "OB", tr.Label("Setup"))
	assert.Equal(t, "NY", tr.Label("session"))
	assert.Equal(t, "M15", tr.Label("timeframe"))
	assert.Equal(t, "Short", tr.Label("direction"))
	assert.Equal(t, "B", tr.Label("grade"))
	assert.Equal(t, "", tr.Label("nonsense"))
}
