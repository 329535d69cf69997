package main

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"luck-mcp/internal/season"
)

// LeagueTeamsArgs is the input schema for the league_teams tool.
type LeagueTeamsArgs struct {
	LeagueID string `json:"league_id" jsonschema:"League id (required)"`
}

// LeagueTeamsOutput lists the league's teams, sorted by id.
type LeagueTeamsOutput struct {
	LeagueID   string        `json:"league_id"`
	LeagueName string        `json:"league_name"`
	Weeks      int           `json:"weeks_analyzed"`
	Teams      []season.Team `json:"teams"`
}

func buildLeagueTeams(cfg ServerConfig, args LeagueTeamsArgs) (*LeagueTeamsOutput, error) {
	f, m, err := loadSeason(cfg, args.LeagueID)
	if err != nil {
		return nil, err
	}
	return &LeagueTeamsOutput{
		LeagueID:   args.LeagueID,
		LeagueName: f.LeagueName,
		Weeks:      m.Weeks(),
		Teams:      m.Teams(),
	}, nil
}

// leagueTeamsHandler is the MCP tool handler for league_teams.
func leagueTeamsHandler(cfg ServerConfig) func(context.Context, *mcp.CallToolRequest, LeagueTeamsArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args LeagueTeamsArgs) (*mcp.CallToolResult, any, error) {
		out, err := buildLeagueTeams(cfg, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolMarshal(out)
	}
}
