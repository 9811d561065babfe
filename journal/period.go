package journal

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used throughout the journal.
const DateLayout = "2006-01-02"

// Range is an inclusive date range. Empty bounds are open.
type Range struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Bounded reports whether both ends of the range are set.
func (r Range) Bounded() bool {
	return r.From != "" && r.To != ""
}

// Days returns the number of calendar days in a bounded range. A reversed
// range has zero or fewer days.
func (r Range) Days() (int, error) {
	start, end, err := r.parse()
	if err != nil {
		return 0, err
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

// Previous returns the range of equal length that ends the day before From.
// For a reversed range the result is reversed as well and matches no dates.
func (r Range) Previous() (Range, error) {
	start, end, err := r.parse()
	if err != nil {
		return Range{}, err
	}
	days := int(end.Sub(start).Hours()/24) + 1

	prevEnd := start.AddDate(0, 0, -1)
	prevStart := prevEnd.AddDate(0, 0, -(days - 1))
	return Range{
		From: prevStart.Format(DateLayout),
		To:   prevEnd.Format(DateLayout),
	}, nil
}

func (r Range) parse() (time.Time, time.Time, error) {
	if !r.Bounded() {
		return time.Time{}, time.Time{}, fmt.Errorf("range %q..%q is open", r.From, r.To)
	}
	start, err := time.Parse(DateLayout, r.From)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("from: %w", err)
	}
	end, err := time.Parse(DateLayout, r.To)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("to: %w", err)
	}
	return start, end, nil
}

// PresetRange resolves a named time filter relative to now:
// "all" (open range), "30d", "6m" and "ytd".
func PresetRange(name string, now time.Time) (Range, error) {
	to := now.Format(DateLayout)
	switch name {
	case "", "all":
		return Range{}, nil
	case "30d":
		return Range{From: now.AddDate(0, 0, -30).Format(DateLayout), To: to}, nil
	case "6m":
		return Range{From: now.AddDate(0, -6, 0).Format(DateLayout), To: to}, nil
	case "ytd":
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return Range{From: start.Format(DateLayout), To: to}, nil
	}
	return Range{}, fmt.Errorf("unknown range preset %q", name)
}
