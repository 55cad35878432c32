package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/kenzliang/leeger/internal/config"
	"github.com/kenzliang/leeger/internal/logger"
	"github.com/kenzliang/leeger/internal/source"
)

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func main() {
	var (
		configPath = flag.String("config", "", "config file (default ./leeger.yaml if present)")
		addr       = flag.String("addr", "", "HTTP listen address; empty serves MCP over stdio")
		mcpPath    = flag.String("path", "/mcp", "HTTP path for MCP endpoint")
		authHeader = flag.String("auth-header", "X-API-Key", "HTTP header to read API key from")
	)
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.InitLogger(cfg.LogLevel, cfg.Development)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	league, err := source.Load(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to load league")
	}
	log.WithFields(logrus.Fields{"league": league.Name, "years": len(league.Years)}).Info("League loaded")

	server, registry := newServer(ServerConfig{League: league, Filters: cfg.Filters})

	if *addr == "" {
		if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
			log.WithError(err).Fatal("MCP stdio server stopped")
		}
		return
	}

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	withAuth := apiKeyAuth(strings.TrimSpace(os.Getenv("LEEGER_MCP_API_KEY")), *authHeader)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	mux.HandleFunc("/tools", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		b, _ := json.MarshalIndent(map[string]any{"tools": registry}, "", "  ")
		w.Write(b)
	}))
	mux.HandleFunc(*mcpPath, withAuth(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r)
	}))

	log.WithField("addr", *addr+*mcpPath).Info("MCP HTTP server listening")
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.WithError(err).Fatal("MCP HTTP server stopped")
	}
}

func newServer(cfg ServerConfig) (*mcp.Server, []toolInfo) {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "leeger-stats",
			Version: "0.1.0",
		},
		nil,
	)

	registry := make([]toolInfo, 0, 8)

	addTool(server, &registry, &mcp.Tool{
		Name:        "league_years",
		Description: "List the league's years with their week counts and team names, plus the stat names",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args LeagueArgs) (*mcp.CallToolResult, any, error) {
		b, err := buildLeagueYears(cfg)
		return toolJSON("league_years", b, err)
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "year_stats",
		Description: "Every stat for every team of one year, in display order",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args YearStatsArgs) (*mcp.CallToolResult, any, error) {
		b, err := buildYearStats(cfg, args)
		return toolJSON("year_stats", b, err)
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "all_time_stats",
		Description: "Every stat pooled by owner across a range of years",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args FilterArgs) (*mcp.CallToolResult, any, error) {
		b, err := buildAllTimeStats(cfg, args)
		return toolJSON("all_time_stats", b, err)
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "owner_lookup",
		Description: "Resolve an owner name or alias to the owner, every name they have used and their team in each year",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args OwnerLookupArgs) (*mcp.CallToolResult, any, error) {
		b, err := buildOwnerLookup(cfg, args)
		return toolJSON("owner_lookup", b, err)
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "head_to_head",
		Description: "All-time record and match list between two owners, by name or alias",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args HeadToHeadArgs) (*mcp.CallToolResult, any, error) {
		out, err := buildHeadToHead(cfg, args)
		if err != nil {
			return toolJSON("head_to_head", nil, err)
		}
		b, _ := json.MarshalIndent(out, "", "  ")
		return toolJSONBytes(b), nil, nil
	})

	return server, registry
}

func addTool[T any](server *mcp.Server, registry *[]toolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

// apiKeyAuth checks the key in header or an Authorization bearer token. An empty key
// disables the check.
func apiKeyAuth(apiKey string, header string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				next(w, r)
				return
			}
			key := strings.TrimSpace(r.Header.Get(header))
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
}

func toolJSON(tool string, res []byte, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		logger.WithTool(tool).WithError(err).Warn("Tool failed")
		return toolError(err), nil, nil
	}
	return toolJSONBytes(res), nil, nil
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
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
