// Package season holds the normalized, read-only snapshot of a league
// season: which teams exist, what every team scored each completed week, and
// how the weekly head-to-head pairings came out. All analysis packages
// consume a Matrix and never mutate it.
package season

import "sort"

// Team identifies one fantasy team for the season.
type Team struct {
	ID   string `json:"team_id"`
	Name string `json:"name"`
}

// Result is the outcome of a matchup from one team's point of view. A tie is
// its own outcome, never folded into win or loss.
type Result string

const (
	Win  Result = "W"
	Loss Result = "L"
	Tie  Result = "T"
)

// Matchup is one completed head-to-head pairing. TeamA/TeamB ordering is
// canonical (ascending team id) so identical input always yields identical
// matchup lists.
type Matchup struct {
	Week   int     `json:"week"`
	TeamA  string  `json:"team_a"`
	TeamB  string  `json:"team_b"`
	ScoreA float64 `json:"score_a"`
	ScoreB float64 `json:"score_b"`
}

// ResultFor returns the outcome from teamID's side, or "" if the team did
// not play in this matchup.
func (m Matchup) ResultFor(teamID string) Result {
	var own, opp float64
	switch teamID {
	case m.TeamA:
		own, opp = m.ScoreA, m.ScoreB
	case m.TeamB:
		own, opp = m.ScoreB, m.ScoreA
	default:
		return ""
	}
	if own > opp {
		return Win
	}
	if own < opp {
		return Loss
	}
	return Tie
}

// OpponentOf returns the other side of the pairing, or "" if teamID did not
// play in this matchup.
func (m Matchup) OpponentOf(teamID string) string {
	switch teamID {
	case m.TeamA:
		return m.TeamB
	case m.TeamB:
		return m.TeamA
	}
	return ""
}

// ScoreOf returns teamID's own score in this matchup.
func (m Matchup) ScoreOf(teamID string) float64 {
	if teamID == m.TeamA {
		return m.ScoreA
	}
	return m.ScoreB
}

// ScoreAgainst returns the opponent's score in this matchup.
func (m Matchup) ScoreAgainst(teamID string) float64 {
	if teamID == m.TeamA {
		return m.ScoreB
	}
	return m.ScoreA
}

// MatchupRow is one team's view of its weekly pairing as delivered by the
// data-acquisition layer. Each pairing arrives as two mirrored rows.
type MatchupRow struct {
	TeamID        string  `json:"team_id"`
	OpponentID    string  `json:"opponent_id"`
	TeamScore     float64 `json:"team_score"`
	OpponentScore float64 `json:"opponent_score"`
}

// Source is the contract with the data-acquisition collaborator. It reports
// how many weeks are safe to analyze and hands over finalized scores and
// pairings per week; deciding completeness (excluding in-progress weeks) is
// its job, not the engine's.
type Source interface {
	CompletedWeeks() (int, error)
	WeeklyScores(week int) (map[string]float64, error)
	WeeklyMatchups(week int) ([]MatchupRow, error)
}

// Matrix is the validated, immutable season snapshot.
type Matrix struct {
	teams    []Team
	teamByID map[string]Team
	weeks    int

	scores   []map[string]float64 // index week-1
	matchups [][]Matchup          // index week-1, sorted by TeamA
	byTeam   []map[string]Matchup // index week-1, team id -> its matchup
}

// Build pulls every completed week from src and validates it into a Matrix.
// Validation per week: scores are non-negative, every scored team appears in
// exactly one pairing, both sides of a pairing agree on the scores, and no
// pairing references a team outside the league. A team absent from both the
// scores and the pairings of a week is on a bye for that week.
func Build(teams []Team, src Source) (*Matrix, error) {
	if len(teams) < 2 {
		return nil, &InsufficientTeamsError{Teams: len(teams)}
	}

	byID := make(map[string]Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}
	sorted := make([]Team, len(teams))
	copy(sorted, teams)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	weeks, err := src.CompletedWeeks()
	if err != nil {
		return nil, err
	}

	m := &Matrix{
		teams:    sorted,
		teamByID: byID,
		weeks:    weeks,
		scores:   make([]map[string]float64, weeks),
		matchups: make([][]Matchup, weeks),
		byTeam:   make([]map[string]Matchup, weeks),
	}

	for week := 1; week <= weeks; week++ {
		scores, err := src.WeeklyScores(week)
		if err != nil {
			return nil, err
		}
		rows, err := src.WeeklyMatchups(week)
		if err != nil {
			return nil, err
		}
		if err := m.loadWeek(week, scores, rows); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Matrix) loadWeek(week int, scores map[string]float64, rows []MatchupRow) error {
	for id, pts := range scores {
		if _, ok := m.teamByID[id]; !ok {
			return &IncompleteDataError{Week: week, TeamID: id, Reason: "score for unknown team"}
		}
		if pts < 0 {
			return &IncompleteDataError{Week: week, TeamID: id, Reason: "negative score"}
		}
	}

	pairs := make(map[string]Matchup)
	seen := make(map[string]bool)
	for _, r := range rows {
		if _, ok := m.teamByID[r.TeamID]; !ok {
			return &IncompleteDataError{Week: week, TeamID: r.TeamID, Reason: "matchup for unknown team"}
		}
		if _, ok := m.teamByID[r.OpponentID]; !ok {
			return &IncompleteDataError{Week: week, TeamID: r.OpponentID, Reason: "matchup against unknown team"}
		}
		if r.TeamID == r.OpponentID {
			return &IncompleteDataError{Week: week, TeamID: r.TeamID, Reason: "team paired against itself"}
		}
		if seen[r.TeamID] {
			return &IncompleteDataError{Week: week, TeamID: r.TeamID, Reason: "team appears in more than one matchup"}
		}
		seen[r.TeamID] = true

		pts, ok := scores[r.TeamID]
		if !ok {
			return &IncompleteDataError{Week: week, TeamID: r.TeamID, Reason: "matchup present but score missing"}
		}
		if pts != r.TeamScore {
			return &IncompleteDataError{Week: week, TeamID: r.TeamID, Reason: "matchup score disagrees with weekly score"}
		}

		a, b := r.TeamID, r.OpponentID
		sa, sb := r.TeamScore, r.OpponentScore
		if b < a {
			a, b = b, a
			sa, sb = sb, sa
		}
		key := a + "|" + b
		if prev, ok := pairs[key]; ok {
			if prev.ScoreA != sa || prev.ScoreB != sb {
				return &IncompleteDataError{Week: week, TeamID: r.TeamID, Reason: "mirrored matchup rows disagree on scores"}
			}
			continue
		}
		pairs[key] = Matchup{Week: week, TeamA: a, TeamB: b, ScoreA: sa, ScoreB: sb}
	}

	// Every scored team must sit in exactly one pairing. Teams missing from
	// both maps are on a bye.
	for id := range scores {
		if !seen[id] {
			return &IncompleteDataError{Week: week, TeamID: id, Reason: "score present but no matchup"}
		}
	}

	list := make([]Matchup, 0, len(pairs))
	for _, mu := range pairs {
		list = append(list, mu)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].TeamA < list[j].TeamA })

	byTeam := make(map[string]Matchup, len(list)*2)
	for _, mu := range list {
		byTeam[mu.TeamA] = mu
		byTeam[mu.TeamB] = mu
	}

	m.scores[week-1] = scores
	m.matchups[week-1] = list
	m.byTeam[week-1] = byTeam
	return nil
}

// Teams returns the league's teams sorted by id.
func (m *Matrix) Teams() []Team {
	out := make([]Team, len(m.teams))
	copy(out, m.teams)
	return out
}

// Team looks a team up by id.
func (m *Matrix) Team(id string) (Team, bool) {
	t, ok := m.teamByID[id]
	return t, ok
}

// Weeks returns the count of completed weeks in the snapshot.
func (m *Matrix) Weeks() int {
	return m.weeks
}

// ScoresForWeek returns team id -> points for one week, week in [1, Weeks()].
// Teams on a bye that week are absent from the map.
func (m *Matrix) ScoresForWeek(week int) map[string]float64 {
	out := make(map[string]float64, len(m.scores[week-1]))
	for id, pts := range m.scores[week-1] {
		out[id] = pts
	}
	return out
}

// MatchupsForWeek returns the week's pairings in canonical order.
func (m *Matrix) MatchupsForWeek(week int) []Matchup {
	out := make([]Matchup, len(m.matchups[week-1]))
	copy(out, m.matchups[week-1])
	return out
}

// MatchupFor returns teamID's pairing in the given week; ok is false when
// the team was on a bye.
func (m *Matrix) MatchupFor(teamID string, week int) (Matchup, bool) {
	mu, ok := m.byTeam[week-1][teamID]
	return mu, ok
}

// WeeksPlayed counts the weeks in which teamID actually had a matchup.
func (m *Matrix) WeeksPlayed(teamID string) int {
	n := 0
	for w := 1; w <= m.weeks; w++ {
		if _, ok := m.byTeam[w-1][teamID]; ok {
			n++
		}
	}
	return n
}

// ScoresOf returns (week, score) pairs for teamID across its played weeks,
// in week order. Bye weeks are skipped, so the slice length equals
// WeeksPlayed.
func (m *Matrix) ScoresOf(teamID string) []WeekScore {
	out := make([]WeekScore, 0, m.weeks)
	for w := 1; w <= m.weeks; w++ {
		if pts, ok := m.scores[w-1][teamID]; ok {
			out = append(out, WeekScore{Week: w, Points: pts})
		}
	}
	return out
}

// WeekScore is one team's finalized score for one week.
type WeekScore struct {
	Week   int     `json:"week"`
	Points float64 `json:"points"`
}
