// agentrelay - HTTP relay in front of a Bedrock-hosted agent.
// Entry point: flag handling plus startup wiring.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matiasleandrokruk/agentrelay/internal/api"
	"github.com/matiasleandrokruk/agentrelay/internal/domain/agent"
	"github.com/matiasleandrokruk/agentrelay/internal/domain/audit"
	"github.com/matiasleandrokruk/agentrelay/internal/domain/tool"
	"github.com/matiasleandrokruk/agentrelay/internal/infra/bedrock"
	"github.com/matiasleandrokruk/agentrelay/internal/infra/config"
	"github.com/matiasleandrokruk/agentrelay/internal/infra/logging"
	"github.com/matiasleandrokruk/agentrelay/internal/infra/sqlite"
	"github.com/matiasleandrokruk/agentrelay/internal/mcp"
	"github.com/matiasleandrokruk/agentrelay/internal/server"
	"github.com/matiasleandrokruk/agentrelay/internal/version"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("agentrelay", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help")
	configPath := fs.String("config", "", "Path to YAML config file (default: $RELAY_CONFIG)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	}

	if *showHelp {
		printHelp(out)
		return 0
	}

	path := *configPath
	if path == "" {
		path = os.Getenv("RELAY_CONFIG")
	}
	return serve(path)
}

// serve wires config -> logger -> model client -> tools -> agent -> router
// -> server, then blocks until SIGINT/SIGTERM or a listener error. Every
// wiring failure here is fatal: the relay never limps into a listening state
// with a broken backend.
func serve(configPath string) int {
	logger := logging.New(os.Stdout)

	cfg, err := config.LoadWithFile(configPath)
	if err != nil {
		logger.Error("startup: %v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	modelClient, err := bedrock.NewClient(ctx, cfg.ModelID, bedrock.WithRegion(cfg.Region))
	if err != nil {
		logger.Error("startup: %v", err)
		return 1
	}
	logger.Info("model %s in %s", cfg.ModelID, cfg.Region)

	registry := tool.NewRegistry()
	if err := tool.RegisterBuiltins(registry); err != nil {
		logger.Error("startup: register builtin tools: %v", err)
		return 1
	}
	if len(cfg.MCPServers) > 0 {
		manager, mcpErr := mcp.NewManager(ctx, cfg.MCPServers, registry, logger)
		if mcpErr != nil {
			logger.Error("startup: %v", mcpErr)
			return 1
		}
		defer manager.Close() //nolint:errcheck
	}

	var auditSvc *audit.Service
	if cfg.DBPath != "" {
		db, dbErr := sqlite.NewDB(cfg.DBPath)
		if dbErr != nil {
			logger.Error("startup: %v", dbErr)
			return 1
		}
		defer db.Close() //nolint:errcheck
		if migErr := sqlite.MigrateUp(db); migErr != nil {
			logger.Error("startup: %v", migErr)
			return 1
		}
		auditSvc = audit.NewService(db)
		logger.Info("invocation audit store at %s", cfg.DBPath)
	}

	runner := agent.NewRunner(modelClient, registry, logger, agent.Config{
		SystemPrompt: cfg.SystemPrompt,
		MaxTokens:    cfg.MaxTokens,
		MaxTurns:     cfg.MaxTurns,
	})

	router := api.NewRouter(runner, auditSvc, logger, cfg)

	serverCfg := server.DefaultConfig()
	serverCfg.Host = cfg.Host
	serverCfg.Port = cfg.Port
	srv := server.NewServer(router, logger, serverCfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server: %v", err)
			return 1
		}
		return 0
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown: %v", err)
			return 1
		}
		return 0
	}
}

func printHelp(out io.Writer) {
	helpText := `agentrelay - HTTP relay in front of a Bedrock-hosted agent

Usage:
  agentrelay [options]

Options:
  --version          Show version information
  --help             Show this help message
  --config <path>    YAML config file (default: $RELAY_CONFIG)

Environment:
  PORT, HOST                    Listen address (default 0.0.0.0:8080)
  AWS_REGION                    Bedrock region (default us-west-2)
  RELAY_MODEL_ID                Bedrock model id
  RELAY_MAX_TOKENS              Max tokens per model turn
  RELAY_MAX_TURNS               Max model round-trips per invocation
  RELAY_SYSTEM_PROMPT           System prompt for the agent
  RELAY_JWT_SECRET              Enables Bearer auth on /invocations when set
  RELAY_DB                      Enables the invocation audit store when set
  RELAY_CONFIG                  YAML config file path`
	fmt.Fprintln(out, helpText) //nolint:errcheck
}
