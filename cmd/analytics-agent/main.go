// Command analytics-agent is the orchestrator: it runs natural-language
// queries through an OpenAI-compatible chat model that can call the
// capability host's tools.
//
// Endpoint settings come from the environment: AI_ENDPOINT,
// AI_MODEL_NAME, and AI_DEPLOYMENT_NAME have defaults; AI_API_KEY is
// required and its absence is fatal. The host binary location comes
// from the optional config file or the -server flag.
//
// Usage:
//
//	analytics-agent [flags] [query ...]
//	analytics-agent [flags] compare [year]
//
// With no queries, a built-in demo set runs.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/datacorp/analytics-mcp/internal/agent"
	"github.com/datacorp/analytics-mcp/internal/client"
	"github.com/datacorp/analytics-mcp/internal/config"
	"github.com/datacorp/analytics-mcp/internal/llm"
)

// defaultQueries run when the command line carries none.
var defaultQueries = []string{
	"Show me the sales data for APAC region in 2024 and calculate the profit metrics assuming expenses are 65% of revenue.",
	"Generate a 6-month revenue forecast for the AMERICAS region and summarize the outlook.",
}

func main() {
	ctx := context.Background()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	var configPath, serverPath, logLevel string
	var queries []string

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-config" && i+1 < len(args):
			configPath = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-config="):
			configPath = strings.TrimPrefix(args[i], "-config=")
		case args[i] == "-server" && i+1 < len(args):
			serverPath = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-server="):
			serverPath = strings.TrimPrefix(args[i], "-server=")
		case args[i] == "-log-level" && i+1 < len(args):
			logLevel = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-log-level="):
			logLevel = strings.TrimPrefix(args[i], "-log-level=")
		case args[i] == "-h" || args[i] == "-help" || args[i] == "--help":
			fmt.Fprintln(stdout, "Usage: analytics-agent [-config file] [-server path] [-log-level level] [query ...]")
			fmt.Fprintln(stdout, "       analytics-agent [flags] compare [year]")
			return nil
		case strings.HasPrefix(args[i], "-"):
			return fmt.Errorf("unknown flag: %s", args[i])
		default:
			queries = append(queries, args[i])
		}
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if serverPath == "" {
		serverPath = cfg.Server.Path
	}
	if logLevel == "" {
		logLevel = cfg.LogLevel
	}

	level, err := config.ParseLogLevel(logLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: config.ReplaceLogLevelNames,
	}))

	ai, err := config.AIFromEnv()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := client.Connect(ctx, serverPath, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	llmClient := llm.NewOpenAIClient(ai.Endpoint, ai.APIKey, logger)
	orchestrator := agent.New(logger, llmClient, c, ai.ChatModel())

	if len(queries) > 0 && queries[0] == "compare" {
		return runCompare(ctx, stdout, orchestrator, queries[1:])
	}

	if len(queries) == 0 {
		queries = defaultQueries
	}
	for _, query := range queries {
		fmt.Fprintf(stdout, "Q: %s\n", query)
		answer, err := orchestrator.Answer(ctx, query)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "A: %s\n\n", answer)
	}
	return nil
}

// runCompare fans out sales fetches across all regions and prints the
// per-region outcomes.
func runCompare(ctx context.Context, stdout io.Writer, o *agent.Orchestrator, args []string) error {
	year := 2024
	if len(args) > 0 {
		y, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid year %q", args[0])
		}
		year = y
	}

	results, err := o.CompareRegions(ctx, []string{"APAC", "EMEA", "AMERICAS"}, year)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Region comparison for %d:\n", year)
	for _, r := range results {
		fmt.Fprintf(stdout, "  %-9s %s\n", r.Region, r.Result.Text)
	}
	return nil
}

// loadConfig resolves the file config. An explicit path must exist; an
// absent implicit config falls back to defaults.
func loadConfig(explicit string) (*config.Config, error) {
	path, err := config.FindConfig(explicit)
	if err != nil {
		if explicit != "" {
			return nil, err
		}
		return config.Default(), nil
	}
	return config.Load(path)
}
