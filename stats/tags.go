package stats

import "github.com/rustyeddy/tradejournal/journal"

// TagFields are the trade fields holding JSON tag lists.
var TagFields = []string{"mistakes", "psychological_tags", "confluence", "entry_model"}

// TagCounts counts how often each tag appears in the given list field across
// all trades. Trades whose field is missing or malformed are skipped.
func TagCounts(trades []journal.Trade, field string) map[string]int {
	counts := make(map[string]int)
	for _, t := range trades {
		for _, tag := range journal.DecodeTags(t.TagList(field)) {
			counts[tag]++
		}
	}
	return counts
}

// MistakeCounts counts mistake tags across trades.
func MistakeCounts(trades []journal.Trade) map[string]int {
	return TagCounts(trades, "mistakes")
}
