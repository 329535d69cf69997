// Package store reads and writes season snapshots as JSON files under a
// data root, one file per league. The snapshot is the hand-off point from
// the (external) data-acquisition layer: whatever fetched and finalized the
// weekly results writes season.json; the engine only ever reads it.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"luck-mcp/internal/season"
)

// SeasonStore resolves league season files under Root, e.g. "data/raw".
type SeasonStore struct {
	Root string
}

func NewSeasonStore(root string) *SeasonStore {
	return &SeasonStore{Root: root}
}

// Path returns the location of a league's season file under the root.
func (s *SeasonStore) Path(leagueID string) string {
	return filepath.Join(s.Root, "league", leagueID, "season.json")
}

// Exists reports whether a snapshot for the league is present.
func (s *SeasonStore) Exists(leagueID string) bool {
	_, err := os.Stat(s.Path(leagueID))
	return err == nil
}

// LoadSeason reads and decodes a league's season snapshot.
func (s *SeasonStore) LoadSeason(leagueID string) (*SeasonFile, error) {
	raw, err := os.ReadFile(s.Path(leagueID))
	if err != nil {
		return nil, err
	}
	var f SeasonFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse season.json for league %s: %w", leagueID, err)
	}
	return &f, nil
}

// WriteSeason encodes and writes a league's season snapshot, creating the
// league directory as needed.
func (s *SeasonStore) WriteSeason(leagueID string, f *SeasonFile) error {
	path := s.Path(leagueID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}

// SeasonFile is the on-disk season snapshot.
type SeasonFile struct {
	LeagueID   string        `json:"league_id"`
	LeagueName string        `json:"league_name"`
	Teams      []season.Team `json:"teams"`
	Weeks      []SeasonWeek  `json:"weeks"`
}

// SeasonWeek is one week's finalized pairings. Complete is decided by the
// producer (a week with games still in progress stays false); the engine
// analyzes only the leading run of complete weeks.
type SeasonWeek struct {
	Week     int             `json:"week"`
	Complete bool            `json:"complete"`
	Matchups []SeasonMatchup `json:"matchups"`
}

// SeasonMatchup is one head-to-head pairing as stored.
type SeasonMatchup struct {
	TeamA  string  `json:"team_a"`
	TeamB  string  `json:"team_b"`
	ScoreA float64 `json:"score_a"`
	ScoreB float64 `json:"score_b"`
}

// Source exposes the snapshot through the season.Source contract.
func (f *SeasonFile) Source() season.Source {
	byWeek := make(map[int]SeasonWeek, len(f.Weeks))
	for _, w := range f.Weeks {
		byWeek[w.Week] = w
	}
	return &fileSource{byWeek: byWeek}
}

type fileSource struct {
	byWeek map[int]SeasonWeek
}

// CompletedWeeks counts the leading run of complete weeks starting at week
// 1. The first missing or incomplete week ends the run: later complete
// weeks (out-of-order finalization) are not analyzed until the gap closes.
func (s *fileSource) CompletedWeeks() (int, error) {
	n := 0
	for {
		w, ok := s.byWeek[n+1]
		if !ok || !w.Complete {
			return n, nil
		}
		n++
	}
}

func (s *fileSource) WeeklyScores(week int) (map[string]float64, error) {
	w, ok := s.byWeek[week]
	if !ok {
		return nil, fmt.Errorf("week %d not in snapshot", week)
	}
	scores := make(map[string]float64, len(w.Matchups)*2)
	for _, mu := range w.Matchups {
		scores[mu.TeamA] = mu.ScoreA
		scores[mu.TeamB] = mu.ScoreB
	}
	return scores, nil
}

func (s *fileSource) WeeklyMatchups(week int) ([]season.MatchupRow, error) {
	w, ok := s.byWeek[week]
	if !ok {
		return nil, fmt.Errorf("week %d not in snapshot", week)
	}
	rows := make([]season.MatchupRow, 0, len(w.Matchups)*2)
	for _, mu := range w.Matchups {
		rows = append(rows,
			season.MatchupRow{TeamID: mu.TeamA, OpponentID: mu.TeamB, TeamScore: mu.ScoreA, OpponentScore: mu.ScoreB},
			season.MatchupRow{TeamID: mu.TeamB, OpponentID: mu.TeamA, TeamScore: mu.ScoreB, OpponentScore: mu.ScoreA},
		)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].TeamID < rows[j].TeamID })
	return rows, nil
}
