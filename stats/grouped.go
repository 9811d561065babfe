package stats

import (
	"sort"

	"github.com/rustyeddy/tradejournal/journal"
)

// GroupKey names the categorical trade field used to partition trades.
type GroupKey string

const (
	BySymbol    GroupKey = "symbol"
	BySetup     GroupKey = "setup"
	BySession   GroupKey = "session"
	ByTimeframe GroupKey = "timeframe"
	ByDirection GroupKey = "direction"
	ByGrade     GroupKey = "grade"
)

// UnknownLabel is the group for trades with an empty group field.
const UnknownLabel = "UNKNOWN"

// GroupKeys lists the keys GroupedStats understands.
var GroupKeys = []GroupKey{BySymbol, BySetup, BySession, ByTimeframe, ByDirection, ByGrade}

// Valid reports whether k is one of GroupKeys.
func (k GroupKey) Valid() bool {
	for _, g := range GroupKeys {
		if g == k {
			return true
		}
	}
	return false
}

// Group is the overview of one partition.
type Group struct {
	Key   string   `json:"key"`
	Label string   `json:"label"`
	Stats Overview `json:"stats"`
}

// GroupedStats partitions trades by key and computes an overview per
// partition. Groups are ranked by net R, best first; ties keep the order in
// which each group first appeared.
func GroupedStats(trades []journal.Trade, key GroupKey, riskPercent float64) []Group {
	var order []string
	groups := make(map[string][]journal.Trade)

	for _, t := range trades {
		label := t.Label(string(key))
		if label == "" {
			label = UnknownLabel
		}
		if _, ok := groups[label]; !ok {
			order = append(order, label)
		}
		groups[label] = append(groups[label], t)
	}

	out := make([]Group, 0, len(order))
	for _, label := range order {
		out = append(out, Group{
			Key:   label,
			Label: label,
			Stats: OverviewStats(groups[label], riskPercent),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Stats.NetR > out[j].Stats.NetR
	})
	return out
}
