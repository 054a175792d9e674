// Command analytics-server is the capability host: an MCP server that
// serves the DataCorp analytics catalog (tools, resources, prompt
// templates) over stdio.
//
// It takes no arguments and runs until its client disconnects or the
// process receives SIGINT/SIGTERM. Logs go to stderr; stdout carries
// the protocol.
//
// Usage:
//
//	analytics-server [-log-level level]
//	analytics-server version
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/datacorp/analytics-mcp/internal/buildinfo"
	"github.com/datacorp/analytics-mcp/internal/config"
	"github.com/datacorp/analytics-mcp/internal/server"
)

// main constructs the OS-level environment and delegates to run so the
// lifecycle can be driven from tests.
func main() {
	ctx := context.Background()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	var logLevel string

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-log-level" && i+1 < len(args):
			logLevel = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-log-level="):
			logLevel = strings.TrimPrefix(args[i], "-log-level=")
		case args[i] == "version":
			fmt.Fprintln(stdout, buildinfo.String())
			return nil
		case args[i] == "-h" || args[i] == "-help" || args[i] == "--help":
			fmt.Fprintln(stdout, "Usage: analytics-server [-log-level trace|debug|info|warn|error]")
			return nil
		default:
			return fmt.Errorf("unknown argument: %s", args[i])
		}
	}

	level, err := config.ParseLogLevel(logLevel)
	if err != nil {
		return err
	}

	// stdout is the MCP transport; all logging goes to stderr.
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: config.ReplaceLogLevelNames,
	}))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(logger).Run(ctx)
}
