package luck

import "luck-mcp/internal/season"

// Extremes carries the single most and least fortunate team-weeks in scope.
type Extremes struct {
	Luckiest   WeekLuck `json:"luckiest"`
	Unluckiest WeekLuck `json:"unluckiest"`
}

// FindExtremes scans a week ledger for the highest and lowest luck deltas.
// teamID narrows the scan to one team; "" scans league-wide. Entries must be
// in ComputeWeekLuck order (week, then team id): equal deltas resolve to the
// earliest week, then the smallest team id, so repeated runs on identical
// input always pick the same weeks even when computed deltas collide
// exactly.
func FindExtremes(entries []WeekLuck, teamID string) (Extremes, error) {
	var best, worst *WeekLuck
	for i := range entries {
		e := &entries[i]
		if teamID != "" && e.TeamID != teamID {
			continue
		}
		if best == nil || e.Delta > best.Delta {
			best = e
		}
		if worst == nil || e.Delta < worst.Delta {
			worst = e
		}
	}
	if best == nil {
		return Extremes{}, &season.InsufficientDataError{Weeks: 0, Needed: 1}
	}
	return Extremes{Luckiest: *best, Unluckiest: *worst}, nil
}
