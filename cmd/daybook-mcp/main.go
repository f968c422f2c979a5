package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "daybook/internal/adapters/mcp"
	"daybook/internal/app"
	"daybook/internal/config"
)

func main() {
	dbFlag := flag.String("db", "", "path to the daybook database (overrides config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("daybook-mcp: %v", err)
	}
	if *dbFlag != "" {
		cfg.DB = *dbFlag
	}

	svc, closeDB, err := app.Open(cfg)
	if err != nil {
		log.Fatalf("daybook-mcp: %v", err)
	}
	defer closeDB()

	mcpServer := server.NewMCPServer(
		"daybook-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, svc)
	mcpadapter.RegisterWriteTools(mcpServer, svc)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("daybook-mcp: %v", err)
	}
}
