// Package luck turns the season snapshot into expected records and luck
// scores: how far each team's actual outcomes drifted from what its raw
// scoring output alone predicted.
package luck

import (
	"math"
	"sort"

	"luck-mcp/internal/config"
	"luck-mcp/internal/season"
)

// WeekLuck is one team's luck ledger entry for one week.
type WeekLuck struct {
	TeamID        string        `json:"team_id"`
	Week          int           `json:"week"`
	FairWins      int           `json:"fair_wins"`
	FairWinRate   float64       `json:"fair_win_rate"`
	Result        season.Result `json:"result"`
	OpponentID    string        `json:"opponent_id"`
	OwnScore      float64       `json:"own_score"`
	OpponentScore float64       `json:"opponent_score"`
	Delta         float64       `json:"luck_delta"`
}

// Record is one team's season-level luck summary.
type Record struct {
	TeamID          string  `json:"team_id"`
	TeamName        string  `json:"team_name"`
	WeeksPlayed     int     `json:"weeks_played"`
	ActualWins      int     `json:"actual_wins"`
	ActualLosses    int     `json:"actual_losses"`
	ActualTies      int     `json:"actual_ties"`
	ExpectedWins    float64 `json:"expected_wins"`
	ExpectedLosses  float64 `json:"expected_losses"`
	LuckScore       float64 `json:"luck_score"`
	WinDifferential int     `json:"win_differential"`
}

// resultValue maps an outcome to its win share: a tie is half a win.
func resultValue(r season.Result) float64 {
	switch r {
	case season.Win:
		return 1
	case season.Tie:
		return 0.5
	}
	return 0
}

// ComputeWeekLuck builds the full luck ledger, ordered by week then team id.
//
// Per entry: fair wins are the teams whose score that week falls strictly
// below the team's own (ties count neither way). The delta is
//
//	(actual − fairWins/(participants−1)) × WeeklyLuckScale
//	  − (opponentPercentile − 0.5) × OpponentStrengthWeight
//
// so a win over the week's weakest opponent is worth less than the same win
// over its strongest.
func ComputeWeekLuck(m *season.Matrix, cfg config.Engine) ([]WeekLuck, error) {
	out := make([]WeekLuck, 0, m.Weeks()*len(m.Teams()))

	for week := 1; week <= m.Weeks(); week++ {
		scores := m.ScoresForWeek(week)
		participants := len(scores)
		if participants == 0 {
			continue
		}
		if participants < 2 {
			return nil, &season.InsufficientTeamsError{Teams: participants, Week: week}
		}
		denom := float64(participants - 1)

		entries := make([]WeekLuck, 0, participants)
		for _, mu := range m.MatchupsForWeek(week) {
			for _, teamID := range []string{mu.TeamA, mu.TeamB} {
				own := mu.ScoreOf(teamID)
				oppScore := mu.ScoreAgainst(teamID)

				fairWins := 0
				belowOpponent := 0
				for id, pts := range scores {
					if id != teamID && pts < own {
						fairWins++
					}
					if pts < oppScore {
						belowOpponent++
					}
				}

				fairRate := float64(fairWins) / denom
				actual := resultValue(mu.ResultFor(teamID))
				base := (actual - fairRate) * cfg.WeeklyLuckScale
				oppPercentile := float64(belowOpponent) / denom
				adjustment := (oppPercentile - 0.5) * cfg.OpponentStrengthWeight

				entries = append(entries, WeekLuck{
					TeamID:        teamID,
					Week:          week,
					FairWins:      fairWins,
					FairWinRate:   fairRate,
					Result:        mu.ResultFor(teamID),
					OpponentID:    mu.OpponentOf(teamID),
					OwnScore:      own,
					OpponentScore: oppScore,
					Delta:         base - adjustment,
				})
			}
		}

		sort.Slice(entries, func(i, j int) bool { return entries[i].TeamID < entries[j].TeamID })
		out = append(out, entries...)
	}

	return out, nil
}

// ComputeRecords aggregates the week ledger into season records, keyed by
// team id. Teams that never played (a full season of byes) get a zero record
// with WeeksPlayed 0.
func ComputeRecords(m *season.Matrix, cfg config.Engine) (map[string]Record, error) {
	entries, err := ComputeWeekLuck(m, cfg)
	if err != nil {
		return nil, err
	}

	records := make(map[string]Record, len(m.Teams()))
	for _, t := range m.Teams() {
		records[t.ID] = Record{TeamID: t.ID, TeamName: t.Name}
	}

	for _, e := range entries {
		r := records[e.TeamID]
		r.WeeksPlayed++
		switch e.Result {
		case season.Win:
			r.ActualWins++
		case season.Loss:
			r.ActualLosses++
		case season.Tie:
			r.ActualTies++
		}
		r.ExpectedWins += e.FairWinRate
		r.LuckScore += e.Delta
		records[e.TeamID] = r
	}

	for id, r := range records {
		r.ExpectedLosses = float64(r.WeeksPlayed) - r.ExpectedWins
		r.WinDifferential = r.ActualWins - int(math.Round(r.ExpectedWins))
		records[id] = r
	}

	return records, nil
}
