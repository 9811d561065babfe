package journal

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVWriterHeader(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	header, err := csv.NewReader(&buf).Read()
	require.NoError(t, err)
	assert.Equal(t, CSVHeader, header)
}

func TestCSVRoundTrip(t *testing.T) {
	t.Parallel()

	in := []Trade{
		{
			ID:        7,
			Date:      "2024-01-02",
			Symbol:    "EURUSD",
			Setup:     "OB-H4",
			Direction: "Long",
			Session:   "London",
			Timeframe: "H1",
			Entry:     Float(1.0850),
			SL:        Float(1.0830),
			TP:        Float(1.0890),
			Capital:   Float(10000),
			Profit:    Float(-12.5),
			ProfitPct: Float(-0.13),
			Mistakes:  `["FOMO","No SL"]`,
			Note:      "chased, see chart",
		},
		{
			ID:      8,
			Date:    "2024-01-03",
			Symbol:  "XAUUSD",
			Capital: Float(5000),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, in))

	out, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, int64(7), out[0].ID)
	assert.Equal(t, "OB-H4", out[0].Setup)
	require.NotNil(t, out[0].Profit)
	assert.InDelta(t, -12.5, *out[0].Profit, 1e-9)
	assert.Equal(t, []string{"FOMO", "No SL"}, DecodeTags(out[0].Mistakes))
	assert.Equal(t, "chased, see chart", out[0].Note)

	assert.False(t, out[1].Closed(), "empty profit cell is an open trade")
	assert.Nil(t, out[1].Exit)
	assert.Equal(t, "[]", out[1].Mistakes)
}

func TestReadCSVByteOrderMark(t *testing.T) {
	t.Parallel()

	data := "\ufeffdate,symbol,profit,mistakes\n2024-02-01,GBPUSD,25,\"FOMO, Late entry\"\n"

	out, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "2024-02-01", out[0].Date)
	assert.Equal(t, "GBPUSD", out[0].Symbol)
	assert.Equal(t, []string{"FOMO", "Late entry"}, DecodeTags(out[0].Mistakes))
}

func TestReadCSVErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		data   string
		errMsg string
	}{
		{"no date column", "symbol,profit\nEURUSD,1\n", "no date column"},
		{"bad number", "date,profit\n2024-01-01,abc\n", "line 2: profit"},
		{"bad id", "id,date\nx,2024-01-01\n", "line 2: id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestReadCSVEmpty(t *testing.T) {
	t.Parallel()

	out, err := ReadCSV(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Empty(t, out)
}
