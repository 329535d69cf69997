package main

import (
	"fmt"
	"strings"

	"luck-mcp/internal/config"
	"luck-mcp/internal/season"
	"luck-mcp/internal/store"
)

// ServerConfig carries everything a tool build function needs: where season
// snapshots live and the engine constants loaded at startup.
type ServerConfig struct {
	DataRoot string
	Engine   config.Engine
}

// loadSeason reads a league's snapshot and validates it into a Matrix.
func loadSeason(cfg ServerConfig, leagueID string) (*store.SeasonFile, *season.Matrix, error) {
	if strings.TrimSpace(leagueID) == "" {
		return nil, nil, fmt.Errorf("league_id is required")
	}
	st := store.NewSeasonStore(cfg.DataRoot)
	f, err := st.LoadSeason(leagueID)
	if err != nil {
		return nil, nil, err
	}
	m, err := season.Build(f.Teams, f.Source())
	if err != nil {
		return nil, nil, err
	}
	return f, m, nil
}

// resolveTeam finds a team by id, exact name (case-insensitive), or unique
// partial name, in that order.
func resolveTeam(f *store.SeasonFile, teamID string, teamName string) (season.Team, error) {
	if id := strings.TrimSpace(teamID); id != "" {
		for _, t := range f.Teams {
			if t.ID == id {
				return t, nil
			}
		}
		return season.Team{}, fmt.Errorf("team not found: %s", id)
	}

	name := strings.TrimSpace(teamName)
	if name == "" {
		return season.Team{}, fmt.Errorf("team_id or team_name is required")
	}
	for _, t := range f.Teams {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	matches := make([]season.Team, 0)
	for _, t := range f.Teams {
		if strings.Contains(strings.ToLower(t.Name), strings.ToLower(name)) {
			matches = append(matches, t)
		}
	}
	if len(matches) == 0 {
		return season.Team{}, fmt.Errorf("no team found for name: %s", name)
	}
	if len(matches) > 1 {
		return season.Team{}, fmt.Errorf("ambiguous team_name: %s", name)
	}
	return matches[0], nil
}
