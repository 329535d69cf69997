// Package rank orders teams for presentation. Every ordering breaks ties on
// team id so two runs over identical input produce identical output.
package rank

import (
	"sort"

	"luck-mcp/internal/luck"
	"luck-mcp/internal/trend"
)

// ByLuck returns team ids sorted by luck score, highest (luckiest) first.
func ByLuck(records map[string]luck.Record) []string {
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := records[ids[i]], records[ids[j]]
		if a.LuckScore != b.LuckScore {
			return a.LuckScore > b.LuckScore
		}
		return ids[i] < ids[j]
	})
	return ids
}

// ByMomentum returns team ids sorted by recent form, hottest first.
func ByMomentum(trends map[string]trend.Record) []string {
	ids := make([]string, 0, len(trends))
	for id := range trends {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := trends[ids[i]], trends[ids[j]]
		if a.RecentForm != b.RecentForm {
			return a.RecentForm > b.RecentForm
		}
		return ids[i] < ids[j]
	})
	return ids
}
