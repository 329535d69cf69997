package main

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"luck-mcp/internal/luck"
)

// WeeklyBreakdownArgs is the input schema for the weekly_breakdown tool.
type WeeklyBreakdownArgs struct {
	LeagueID string `json:"league_id" jsonschema:"League id (required)"`
}

// WeekBreakdown holds one week's full luck ledger plus that week's most and
// least fortunate teams.
type WeekBreakdown struct {
	Week       int             `json:"week"`
	Luckiest   luck.WeekLuck   `json:"luckiest"`
	Unluckiest luck.WeekLuck   `json:"unluckiest"`
	Entries    []luck.WeekLuck `json:"entries"`
}

// WeeklyBreakdownOutput is the output of the weekly_breakdown tool, ordered
// by week; entries within a week are ordered by team id.
type WeeklyBreakdownOutput struct {
	LeagueID string          `json:"league_id"`
	Weeks    int             `json:"weeks_analyzed"`
	Weekly   []WeekBreakdown `json:"weekly"`
}

func buildWeeklyBreakdown(cfg ServerConfig, args WeeklyBreakdownArgs) (*WeeklyBreakdownOutput, error) {
	_, m, err := loadSeason(cfg, args.LeagueID)
	if err != nil {
		return nil, err
	}

	entries, err := luck.ComputeWeekLuck(m, cfg.Engine)
	if err != nil {
		return nil, err
	}

	weekly := make([]WeekBreakdown, 0, m.Weeks())
	for i := 0; i < len(entries); {
		week := entries[i].Week
		j := i
		for j < len(entries) && entries[j].Week == week {
			j++
		}
		ex, err := luck.FindExtremes(entries[i:j], "")
		if err != nil {
			return nil, err
		}
		weekly = append(weekly, WeekBreakdown{
			Week:       week,
			Luckiest:   ex.Luckiest,
			Unluckiest: ex.Unluckiest,
			Entries:    entries[i:j],
		})
		i = j
	}

	return &WeeklyBreakdownOutput{
		LeagueID: args.LeagueID,
		Weeks:    m.Weeks(),
		Weekly:   weekly,
	}, nil
}

// weeklyBreakdownHandler is the MCP tool handler for weekly_breakdown.
func weeklyBreakdownHandler(cfg ServerConfig) func(context.Context, *mcp.CallToolRequest, WeeklyBreakdownArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args WeeklyBreakdownArgs) (*mcp.CallToolResult, any, error) {
		out, err := buildWeeklyBreakdown(cfg, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolMarshal(out)
	}
}
