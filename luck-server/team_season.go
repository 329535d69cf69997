package main

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"luck-mcp/internal/luck"
	"luck-mcp/internal/trend"
)

// TeamSeasonArgs is the input schema for the team_season tool.
type TeamSeasonArgs struct {
	LeagueID string `json:"league_id" jsonschema:"League id (required)"`
	TeamID   string `json:"team_id,omitempty" jsonschema:"Team id"`
	TeamName string `json:"team_name,omitempty" jsonschema:"Team name (if team_id not provided)"`
}

// TeamSeasonWeek is one week in a team's luck ledger. Bye weeks do not
// appear.
type TeamSeasonWeek struct {
	Week          int     `json:"week"`
	Score         float64 `json:"score"`
	OpponentID    string  `json:"opponent_id"`
	OpponentName  string  `json:"opponent_name"`
	OpponentScore float64 `json:"opponent_score"`
	Result        string  `json:"result"`
	FairWins      int     `json:"fair_wins"`
	LuckDelta     float64 `json:"luck_delta"`
}

// TeamSeasonOutput is the output of the team_season tool: one team's
// week-by-week luck ledger with its season record and trend summary.
type TeamSeasonOutput struct {
	LeagueID string           `json:"league_id"`
	TeamID   string           `json:"team_id"`
	TeamName string           `json:"team_name"`
	Record   luck.Record      `json:"record"`
	Trend    trend.Record     `json:"trend"`
	Weeks    []TeamSeasonWeek `json:"weeks"`
}

func buildTeamSeason(cfg ServerConfig, args TeamSeasonArgs) (*TeamSeasonOutput, error) {
	f, m, err := loadSeason(cfg, args.LeagueID)
	if err != nil {
		return nil, err
	}
	team, err := resolveTeam(f, args.TeamID, args.TeamName)
	if err != nil {
		return nil, err
	}

	records, err := luck.ComputeRecords(m, cfg.Engine)
	if err != nil {
		return nil, err
	}
	trends, err := trend.Compute(m, cfg.Engine)
	if err != nil {
		return nil, err
	}
	entries, err := luck.ComputeWeekLuck(m, cfg.Engine)
	if err != nil {
		return nil, err
	}

	weeks := make([]TeamSeasonWeek, 0, m.Weeks())
	for _, e := range entries {
		if e.TeamID != team.ID {
			continue
		}
		oppName := ""
		if opp, ok := m.Team(e.OpponentID); ok {
			oppName = opp.Name
		}
		weeks = append(weeks, TeamSeasonWeek{
			Week:          e.Week,
			Score:         e.OwnScore,
			OpponentID:    e.OpponentID,
			OpponentName:  oppName,
			OpponentScore: e.OpponentScore,
			Result:        string(e.Result),
			FairWins:      e.FairWins,
			LuckDelta:     e.Delta,
		})
	}

	return &TeamSeasonOutput{
		LeagueID: args.LeagueID,
		TeamID:   team.ID,
		TeamName: team.Name,
		Record:   records[team.ID],
		Trend:    trends[team.ID],
		Weeks:    weeks,
	}, nil
}

// teamSeasonHandler is the MCP tool handler for team_season.
func teamSeasonHandler(cfg ServerConfig) func(context.Context, *mcp.CallToolRequest, TeamSeasonArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args TeamSeasonArgs) (*mcp.CallToolResult, any, error) {
		out, err := buildTeamSeason(cfg, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolMarshal(out)
	}
}
