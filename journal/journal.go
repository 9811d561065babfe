// Package journal holds the trade journal record model and its portable
// formats (Org-mode, CSV). It knows nothing about storage or statistics.
package journal

import "strings"

// Trade is a single journal entry. Numeric fields that may be missing are
// pointers: a nil Profit means the trade is still open.
type Trade struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"` // YYYY-MM-DD
	Symbol    string `json:"symbol"`
	Setup     string `json:"setup"`
	Direction string `json:"direction"`
	Session   string `json:"session"`
	Timeframe string `json:"timeframe"`
	Grade     string `json:"grade"`

	Entry   *float64 `json:"entry"`
	SL      *float64 `json:"sl"`
	TP      *float64 `json:"tp"`
	Exit    *float64 `json:"exit"`
	Capital *float64 `json:"capital"`
	RR      *float64 `json:"rr"`

	Profit    *float64 `json:"profit"`
	ProfitPct *float64 `json:"profit_pct"`

	// JSON-encoded string lists, e.g. `["FOMO","No SL"]`.
	Mistakes          string `json:"mistakes"`
	Confluence        string `json:"confluence"`
	EntryModel        string `json:"entry_model"`
	PsychologicalTags string `json:"psychological_tags"`

	Note        string `json:"note"`
	EntryReason string `json:"entry_reason"`
	ExitReason  string `json:"exit_reason"`
	Lessons     string `json:"lessons"`
}

// Closed reports whether the trade has a realized result.
func (t Trade) Closed() bool {
	return t.Profit != nil
}

// Label returns the categorical field named by key, or "" when the key is
// not a categorical field.
func (t Trade) Label(key string) string {
	switch strings.ToLower(key) {
	case "symbol":
		return t.Symbol
	case "setup":
		return t.Setup
	case "direction":
		return t.Direction
	case "session":
		return t.Session
	case "timeframe":
		return t.Timeframe
	case "grade":
		return t.Grade
	case "date":
		return t.Date
	}
	return ""
}

// TagList returns the raw JSON tag list stored under field.
func (t Trade) TagList(field string) string {
	switch strings.ToLower(field) {
	case "mistakes":
		return t.Mistakes
	case "confluence":
		return t.Confluence
	case "entry_model":
		return t.EntryModel
	case "psychological_tags":
		return t.PsychologicalTags
	}
	return ""
}

// TradeReview is the post-trade self assessment a trader fills in after the
// position is closed.
type TradeReview struct {
	Grade             string   `json:"grade"`
	Mistakes          []string `json:"mistakes"`
	PsychologicalTags []string `json:"psychological_tags"`
	ExitReason        string   `json:"exit_reason"`
	Note              string   `json:"note"`
	Lessons           string   `json:"lessons"`
}

// ReviewNote is the written weekly or monthly review for a period.
type ReviewNote struct {
	ID                string `json:"id"`
	PeriodType        string `json:"period_type"` // "week" or "month"
	PeriodKey         string `json:"period_key"`  // "2025-03" or the week's first day
	FromDate          string `json:"from_date"`
	ToDate            string `json:"to_date"`
	GoodPoints        string `json:"good_points"`
	ImprovementPoints string `json:"improvement_points"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// Float returns a pointer to v. Handy for building trades in code.
func Float(v float64) *float64 {
	return &v
}
