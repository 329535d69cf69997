package main

import (
	"context"
	"math"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"luck-mcp/internal/luck"
	"luck-mcp/internal/rank"
)

// LuckRankingsArgs is the input schema for the luck_rankings tool.
type LuckRankingsArgs struct {
	LeagueID string `json:"league_id" jsonschema:"League id (required)"`
}

// LuckRankingRow is one team's line in the luck table, luckiest first.
type LuckRankingRow struct {
	Rank            int     `json:"rank"`
	TeamID          string  `json:"team_id"`
	TeamName        string  `json:"team_name"`
	LuckScore       float64 `json:"luck_score"`
	ActualWins      int     `json:"actual_wins"`
	ActualLosses    int     `json:"actual_losses"`
	ActualTies      int     `json:"actual_ties"`
	ExpectedWins    int     `json:"expected_wins"`
	ExpectedLosses  int     `json:"expected_losses"`
	WinDifferential int     `json:"win_differential"`
}

// LuckRankingsOutput is the output of the luck_rankings tool. Expected
// records are rounded to whole games for display; the luck scores behind
// the ordering use the unrounded expectation.
type LuckRankingsOutput struct {
	LeagueID   string           `json:"league_id"`
	LeagueName string           `json:"league_name"`
	Weeks      int              `json:"weeks_analyzed"`
	Rankings   []LuckRankingRow `json:"rankings"`
}

func buildLuckRankings(cfg ServerConfig, args LuckRankingsArgs) (*LuckRankingsOutput, error) {
	f, m, err := loadSeason(cfg, args.LeagueID)
	if err != nil {
		return nil, err
	}

	records, err := luck.ComputeRecords(m, cfg.Engine)
	if err != nil {
		return nil, err
	}

	rows := make([]LuckRankingRow, 0, len(records))
	for i, id := range rank.ByLuck(records) {
		r := records[id]
		expWins := int(math.Round(r.ExpectedWins))
		rows = append(rows, LuckRankingRow{
			Rank:            i + 1,
			TeamID:          r.TeamID,
			TeamName:        r.TeamName,
			LuckScore:       r.LuckScore,
			ActualWins:      r.ActualWins,
			ActualLosses:    r.ActualLosses,
			ActualTies:      r.ActualTies,
			ExpectedWins:    expWins,
			ExpectedLosses:  r.WeeksPlayed - expWins,
			WinDifferential: r.WinDifferential,
		})
	}

	return &LuckRankingsOutput{
		LeagueID:   args.LeagueID,
		LeagueName: f.LeagueName,
		Weeks:      m.Weeks(),
		Rankings:   rows,
	}, nil
}

// luckRankingsHandler is the MCP tool handler for luck_rankings.
func luckRankingsHandler(cfg ServerConfig) func(context.Context, *mcp.CallToolRequest, LuckRankingsArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args LuckRankingsArgs) (*mcp.CallToolResult, any, error) {
		out, err := buildLuckRankings(cfg, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolMarshal(out)
	}
}
