package season

import "fmt"

// IncompleteDataError means malformed or partial weekly data reached the
// engine: a missing score for a week flagged complete, a team paired in zero
// or more than one matchup, or a score that disagrees between the two sides
// of a pairing. It is fatal for the whole analysis.
type IncompleteDataError struct {
	Week   int
	TeamID string
	Reason string
}

func (e *IncompleteDataError) Error() string {
	if e.TeamID == "" {
		return fmt.Sprintf("incomplete data for week %d: %s", e.Week, e.Reason)
	}
	return fmt.Sprintf("incomplete data for week %d, team %s: %s", e.Week, e.TeamID, e.Reason)
}

// InsufficientTeamsError means the league has fewer than two teams (or a
// week has a single participant), so fair-win rates are undefined.
type InsufficientTeamsError struct {
	Teams int
	Week  int // 0 when the league as a whole is too small
}

func (e *InsufficientTeamsError) Error() string {
	if e.Week > 0 {
		return fmt.Sprintf("week %d has %d participant(s), need at least 2", e.Week, e.Teams)
	}
	return fmt.Sprintf("league has %d team(s), need at least 2", e.Teams)
}

// InsufficientDataError means a requested statistic needs more completed
// weeks than the season provides. Trend statistics degrade per team instead
// of raising this; it is returned only when nothing at all can be computed.
type InsufficientDataError struct {
	Weeks  int
	Needed int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("season has %d completed week(s), need at least %d", e.Weeks, e.Needed)
}
