package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"luck-mcp/internal/config"
)

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func main() {
	var (
		addr         = flag.String("addr", ":8080", "HTTP listen address")
		mcpPath      = flag.String("path", "/mcp", "HTTP path for MCP endpoint")
		dataRoot     = flag.String("data-root", "data/raw", "root directory for season snapshots")
		engineConfig = flag.String("engine-config", "config/engine.yaml", "engine constants YAML (defaults apply if missing)")
		requireAuth  = flag.Bool("require-auth", true, "require API key auth via LUCK_MCP_API_KEY")
		authHeader   = flag.String("auth-header", "X-API-Key", "HTTP header to read API key from")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	eng, err := config.LoadEngine(*engineConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("load engine config")
	}

	cfg := ServerConfig{
		DataRoot: *dataRoot,
		Engine:   eng,
	}

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "luck-mcp",
			Version: "0.1.0",
		},
		nil,
	)

	registry := make([]toolInfo, 0, 8)

	addTool(server, &registry, &mcp.Tool{
		Name:        "luck_rankings",
		Description: "Season luck table: actual vs expected record and luck score per team",
	}, luckRankingsHandler(cfg))

	addTool(server, &registry, &mcp.Tool{
		Name:        "weekly_breakdown",
		Description: "Per-week luck ledger with each week's luckiest and unluckiest teams",
	}, weeklyBreakdownHandler(cfg))

	addTool(server, &registry, &mcp.Tool{
		Name:        "extreme_weeks",
		Description: "Most and least fortunate single weeks, league-wide or for one team",
	}, extremeWeeksHandler(cfg))

	addTool(server, &registry, &mcp.Tool{
		Name:        "team_trends",
		Description: "Scoring trends per team: average, recent form, momentum, volatility",
	}, teamTrendsHandler(cfg))

	addTool(server, &registry, &mcp.Tool{
		Name:        "team_season",
		Description: "One team's week-by-week luck ledger with season record and trend",
	}, teamSeasonHandler(cfg))

	addTool(server, &registry, &mcp.Tool{
		Name:        "league_teams",
		Description: "List league teams (id/name) from the season snapshot",
	}, leagueTeamsHandler(cfg))

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	apiKey := strings.TrimSpace(os.Getenv("LUCK_MCP_API_KEY"))
	if *requireAuth && apiKey == "" {
		log.Fatal().Msg("LUCK_MCP_API_KEY is required (set env var or run with --require-auth=false)")
	}

	withAuth := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				next(w, r)
				return
			}
			key := strings.TrimSpace(r.Header.Get(*authHeader))
			if key == "" {
				if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
					key = strings.TrimSpace(authz[7:])
				}
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next(w, r)
		}
	}

	http.HandleFunc("/health", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))

	http.HandleFunc("/tools", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		b, _ := json.MarshalIndent(map[string]any{"tools": registry}, "", "  ")
		w.Write(b)
	}))

	http.HandleFunc(*mcpPath, withAuth(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r)
	}))

	log.Info().Str("addr", *addr).Str("path", *mcpPath).Str("data_root", *dataRoot).Msg("luck MCP server listening")
	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatal().Err(err).Msg("http server")
	}
}

func addTool[T any](server *mcp.Server, registry *[]toolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

func toolMarshal(v any) (*mcp.CallToolResult, any, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSONBytes(b), nil, nil
}

func toolJSONBytes(res []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(res)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: "error: " + err.Error()},
		},
	}
}
