package main

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"luck-mcp/internal/rank"
	"luck-mcp/internal/trend"
)

// TeamTrendsArgs is the input schema for the team_trends tool.
type TeamTrendsArgs struct {
	LeagueID string `json:"league_id" jsonschema:"League id (required)"`
}

// TeamTrendRow is one team's trend line in the momentum table.
type TeamTrendRow struct {
	Rank     int    `json:"rank"`
	TeamName string `json:"team_name"`
	trend.Record
}

// TeamTrendsOutput is the output of the team_trends tool, hottest recent
// form first.
type TeamTrendsOutput struct {
	LeagueID string         `json:"league_id"`
	Weeks    int            `json:"weeks_analyzed"`
	Trends   []TeamTrendRow `json:"trends"`
}

func buildTeamTrends(cfg ServerConfig, args TeamTrendsArgs) (*TeamTrendsOutput, error) {
	_, m, err := loadSeason(cfg, args.LeagueID)
	if err != nil {
		return nil, err
	}

	trends, err := trend.Compute(m, cfg.Engine)
	if err != nil {
		return nil, err
	}

	rows := make([]TeamTrendRow, 0, len(trends))
	for i, id := range rank.ByMomentum(trends) {
		name := ""
		if t, ok := m.Team(id); ok {
			name = t.Name
		}
		rows = append(rows, TeamTrendRow{Rank: i + 1, TeamName: name, Record: trends[id]})
	}

	return &TeamTrendsOutput{
		LeagueID: args.LeagueID,
		Weeks:    m.Weeks(),
		Trends:   rows,
	}, nil
}

// teamTrendsHandler is the MCP tool handler for team_trends.
func teamTrendsHandler(cfg ServerConfig) func(context.Context, *mcp.CallToolRequest, TeamTrendsArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args TeamTrendsArgs) (*mcp.CallToolResult, any, error) {
		out, err := buildTeamTrends(cfg, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolMarshal(out)
	}
}
