package main

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"luck-mcp/internal/luck"
)

// ExtremeWeeksArgs is the input schema for the extreme_weeks tool. With no
// team filter the scan is league-wide.
type ExtremeWeeksArgs struct {
	LeagueID string `json:"league_id" jsonschema:"League id (required)"`
	TeamID   string `json:"team_id,omitempty" jsonschema:"Restrict to one team by id"`
	TeamName string `json:"team_name,omitempty" jsonschema:"Restrict to one team by name (if team_id not provided)"`
}

// ExtremeWeeksOutput is the output of the extreme_weeks tool.
type ExtremeWeeksOutput struct {
	LeagueID   string        `json:"league_id"`
	TeamID     string        `json:"team_id,omitempty"`
	TeamName   string        `json:"team_name,omitempty"`
	Luckiest   luck.WeekLuck `json:"luckiest"`
	Unluckiest luck.WeekLuck `json:"unluckiest"`
}

func buildExtremeWeeks(cfg ServerConfig, args ExtremeWeeksArgs) (*ExtremeWeeksOutput, error) {
	f, m, err := loadSeason(cfg, args.LeagueID)
	if err != nil {
		return nil, err
	}

	out := &ExtremeWeeksOutput{LeagueID: args.LeagueID}
	scope := ""
	if args.TeamID != "" || args.TeamName != "" {
		t, err := resolveTeam(f, args.TeamID, args.TeamName)
		if err != nil {
			return nil, err
		}
		scope = t.ID
		out.TeamID = t.ID
		out.TeamName = t.Name
	}

	entries, err := luck.ComputeWeekLuck(m, cfg.Engine)
	if err != nil {
		return nil, err
	}
	ex, err := luck.FindExtremes(entries, scope)
	if err != nil {
		return nil, err
	}

	out.Luckiest = ex.Luckiest
	out.Unluckiest = ex.Unluckiest
	return out, nil
}

// extremeWeeksHandler is the MCP tool handler for extreme_weeks.
func extremeWeeksHandler(cfg ServerConfig) func(context.Context, *mcp.CallToolRequest, ExtremeWeeksArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args ExtremeWeeksArgs) (*mcp.CallToolResult, any, error) {
		out, err := buildExtremeWeeks(cfg, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolMarshal(out)
	}
}
