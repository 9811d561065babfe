package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVHeader is the column order written by CSVWriter. ReadCSV matches
// columns by name, so files may carry them in any order or omit some.
var CSVHeader = []string{
	"id", "date", "symbol", "setup", "direction", "session", "timeframe", "grade",
	"entry", "sl", "tp", "exit", "capital", "rr", "profit", "profit_pct",
	"mistakes", "confluence", "entry_model", "psychological_tags",
	"note", "entry_reason", "exit_reason", "lessons",
}

type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter writes the header row immediately.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return nil, err
	}
	return &CSVWriter{w: cw}, nil
}

func (j *CSVWriter) Write(t Trade) error {
	return j.w.Write([]string{
		strconv.FormatInt(t.ID, 10),
		t.Date, t.Symbol, t.Setup, t.Direction, t.Session, t.Timeframe, t.Grade,
		f(t.Entry), f(t.SL), f(t.TP), f(t.Exit), f(t.Capital), f(t.RR),
		f(t.Profit), f(t.ProfitPct),
		t.Mistakes, t.Confluence, t.EntryModel, t.PsychologicalTags,
		t.Note, t.EntryReason, t.ExitReason, t.Lessons,
	})
}

func (j *CSVWriter) Flush() error {
	j.w.Flush()
	return j.w.Error()
}

// WriteCSV writes trades with a header row.
func WriteCSV(w io.Writer, trades []Trade) error {
	cw, err := NewCSVWriter(w)
	if err != nil {
		return err
	}
	for _, t := range trades {
		if err := cw.Write(t); err != nil {
			return err
		}
	}
	return cw.Flush()
}

// ReadCSV parses trades from a CSV file with a header row. A leading UTF-8
// or UTF-16 byte order mark is honoured, which spreadsheet exports often add.
// Empty numeric cells are read as missing values.
func ReadCSV(r io.Reader) ([]Trade, error) {
	dec := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	cr := csv.NewReader(dec)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["date"]; !ok {
		return nil, fmt.Errorf("csv header has no date column")
	}

	var out []Trade
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row := csvRow{cols: cols, rec: rec}
		t := Trade{
			Date:              row.str("date"),
			Symbol:            row.str("symbol"),
			Setup:             row.str("setup"),
			Direction:         row.str("direction"),
			Session:           row.str("session"),
			Timeframe:         row.str("timeframe"),
			Grade:             row.str("grade"),
			Mistakes:          ToJSONList(row.str("mistakes")),
			Confluence:        ToJSONList(row.str("confluence")),
			EntryModel:        ToJSONList(row.str("entry_model")),
			PsychologicalTags: ToJSONList(row.str("psychological_tags")),
			Note:              row.str("note"),
			EntryReason:       row.str("entry_reason"),
			ExitReason:        row.str("exit_reason"),
			Lessons:           row.str("lessons"),
		}
		if v := row.str("id"); v != "" {
			if t.ID, err = strconv.ParseInt(v, 10, 64); err != nil {
				return nil, fmt.Errorf("line %d: id: %w", line, err)
			}
		}
		for _, nf := range []struct {
			col string
			dst **float64
		}{
			{"entry", &t.Entry}, {"sl", &t.SL}, {"tp", &t.TP}, {"exit", &t.Exit},
			{"capital", &t.Capital}, {"rr", &t.RR},
			{"profit", &t.Profit}, {"profit_pct", &t.ProfitPct},
		} {
			v, err := row.float(nf.col)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, nf.col, err)
			}
			*nf.dst = v
		}
		out = append(out, t)
	}
	return out, nil
}

type csvRow struct {
	cols map[string]int
	rec  []string
}

func (r csvRow) str(col string) string {
	i, ok := r.cols[col]
	if !ok || i >= len(r.rec) {
		return ""
	}
	return strings.TrimSpace(r.rec[i])
}

func (r csvRow) float(col string) (*float64, error) {
	s := r.str(col)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func f(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
