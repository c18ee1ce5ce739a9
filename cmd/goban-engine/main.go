package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmmcquay/goban-engine/internal/board"
	"github.com/dmmcquay/goban-engine/internal/cache"
	"github.com/dmmcquay/goban-engine/internal/config"
	"github.com/dmmcquay/goban-engine/internal/health"
	"github.com/dmmcquay/goban-engine/internal/logging"
	mcptools "github.com/dmmcquay/goban-engine/internal/mcp"
	"github.com/dmmcquay/goban-engine/internal/metrics"
	"github.com/dmmcquay/goban-engine/internal/rules"
	httpserver "github.com/dmmcquay/goban-engine/internal/server"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var (
	// Version information injected at build time.
	GitCommit string = "unknown"
	BuildTime string = "unknown"
)

func main() {
	// Parse command line flags
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	// Handle version flag
	if showVersion {
		fmt.Printf("goban-engine version 0.1.0\n")
		fmt.Printf("Git commit: %s\n", GitCommit)
		fmt.Printf("Build time: %s\n", BuildTime)
		os.Exit(0)
	}

	// Load configuration
	configPath := config.GetConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Create logger
	logConfig := &logging.Config{
		Level:   cfg.Logging.Level,
		Format:  logging.LogFormat(cfg.Logging.Format), // Will default to JSON if not set
		Service: cfg.Server.Name,
		Version: cfg.Server.Version,
		Prefix:  cfg.Logging.Prefix,
	}
	logger := logging.NewFromConfig(logConfig)
	logger.Info("Starting goban engine server version %s (commit: %s, built: %s)",
		cfg.Server.Version, GitCommit, BuildTime)
	logger.Info("Rule set: %s, board size: %d", cfg.Game.RuleSet, cfg.Game.BoardSize)

	// Create metrics collectors
	metricsCollector := metrics.NewCollector()
	prometheusCollector := metrics.NewPrometheusCollector()

	// Create score cache
	var scoreCache *cache.ScoreCache
	if cfg.Cache.Enabled {
		scoreCache = cache.NewScoreCache(cfg.Cache.MaxItems)
	}

	// Set up health checker with an engine self-test
	healthChecker := health.NewChecker(logger, cfg.Server.Version)
	healthChecker.RegisterCheck("engine", func(ctx context.Context) error {
		b, err := board.New(9)
		if err != nil {
			return err
		}
		engine := rules.New(rules.Chinese, 0)
		if result := engine.IsLegalMove(b, 4, 4, board.Black, nil); result != rules.Success {
			return fmt.Errorf("legality self-test failed: %s", result)
		}
		return nil
	})

	// Start HTTP health check server
	healthAddr := cfg.Server.HealthAddr
	if healthAddr == "" {
		healthAddr = ":8080"
	}
	httpServer := httpserver.NewHTTPServer(healthAddr, logger, healthChecker)
	if err := httpServer.Start(); err != nil {
		logger.Error("Failed to start health check server: %v", err)
		os.Exit(1)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Shutting down...")
		cancel()

		// Stop health check server
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := httpServer.Stop(shutdownCtx); err != nil {
			logger.Error("Failed to stop health check server: %v", err)
		}
	}()

	// Create MCP server
	mcpServer := server.NewMCPServer(
		cfg.Server.Name,
		cfg.Server.Version,
		server.WithLogging(),
	)

	// Create middleware
	middleware := mcptools.NewMiddleware(logger, metricsCollector, prometheusCollector)

	// Create and register tools
	toolsHandler := mcptools.NewToolsHandler(logger, scoreCache)
	toolsHandler.SetMiddleware(middleware)
	toolsHandler.RegisterTools(mcpServer)

	// Register health check tool
	healthTool := mcp.NewTool("health",
		mcp.WithDescription("Check server health and engine configuration"),
	)
	mcpServer.AddTool(healthTool, func(checkCtx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		status := "Goban Engine Health Status\n"
		status += "==========================\n"
		status += fmt.Sprintf("Server Version: %s\n", cfg.Server.Version)
		status += fmt.Sprintf("Git Commit: %s\n", GitCommit)
		status += fmt.Sprintf("Build Time: %s\n", BuildTime)
		status += "\nDefaults:\n"
		status += fmt.Sprintf("  Rule set: %s\n", cfg.Game.RuleSet)
		status += fmt.Sprintf("  Board size: %d\n", cfg.Game.BoardSize)
		status += fmt.Sprintf("  Komi: %g\n", cfg.Game.Komi)
		if cfg.Game.Handicap > 0 {
			status += fmt.Sprintf("  Handicap: %d\n", cfg.Game.Handicap)
		}

		if scoreCache != nil {
			stats := scoreCache.Stats()
			status += "\nScore cache:\n"
			status += fmt.Sprintf("  Items: %d\n", stats.Items)
			status += fmt.Sprintf("  Hit rate: %.1f%%\n", stats.HitRate*100)
		}

		response := healthChecker.CheckHealth(checkCtx)
		status += fmt.Sprintf("\nOverall: %s\n", response.Status)

		return mcp.NewToolResultText(status), nil
	})

	// Start server
	logger.Info("Goban engine server ready")

	// Serve with context for cancellation support
	done := make(chan error, 1)
	go func() {
		done <- server.ServeStdio(mcpServer)
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.Error("Server error: %v", err)
		}
	case <-ctx.Done():
		logger.Info("Server stopped by context cancellation")
	}
}
