// Command analytics-client connects to a capability host, discovers its
// catalog, and walks through the demo workflows: individual calls, a
// concurrent batch across regions, a chained fetch-then-calculate
// sequence, and a call under a hard deadline with a fallback.
//
// Usage:
//
//	analytics-client [-log-level level] <path-to-analytics-server>
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/datacorp/analytics-mcp/internal/client"
	"github.com/datacorp/analytics-mcp/internal/config"
)

// forecastTimeout is the deadline for the timeout demo. Generous enough
// to always succeed against the local host; the fallback path exists
// for hosts that are genuinely stuck.
const forecastTimeout = 5 * time.Second

func main() {
	ctx := context.Background()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	var logLevel, serverPath string

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-log-level" && i+1 < len(args):
			logLevel = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-log-level="):
			logLevel = strings.TrimPrefix(args[i], "-log-level=")
		case args[i] == "-h" || args[i] == "-help" || args[i] == "--help":
			fmt.Fprintln(stdout, "Usage: analytics-client [-log-level level] <path-to-analytics-server>")
			return nil
		case !strings.HasPrefix(args[i], "-") && serverPath == "":
			serverPath = args[i]
		default:
			return fmt.Errorf("unknown argument: %s", args[i])
		}
	}

	if serverPath == "" {
		return fmt.Errorf("usage: analytics-client [-log-level level] <path-to-analytics-server>")
	}

	level, err := config.ParseLogLevel(logLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: config.ReplaceLogLevelNames,
	}))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := client.Connect(ctx, serverPath, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := showCatalog(ctx, stdout, c); err != nil {
		return err
	}
	if err := demoBatch(ctx, stdout, c); err != nil {
		return err
	}
	if err := demoChain(ctx, stdout, c); err != nil {
		return err
	}
	if err := demoTimeout(ctx, stdout, c); err != nil {
		return err
	}
	return demoResourcesAndPrompts(ctx, stdout, c)
}

// showCatalog lists everything the host advertises.
func showCatalog(ctx context.Context, w io.Writer, c *client.Client) error {
	tools, err := c.Tools(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Tools (%d):\n", len(tools))
	for _, t := range tools {
		fmt.Fprintf(w, "  %-20s %s\n", t.Name, t.Description)
	}

	resources, err := c.Resources(ctx)
	if err != nil {
		return err
	}
	templates, err := c.ResourceTemplates(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Resources (%d + %d templates):\n", len(resources), len(templates))
	for _, r := range resources {
		fmt.Fprintf(w, "  %s\n", r.URI)
	}
	for _, t := range templates {
		fmt.Fprintf(w, "  %s\n", t.URITemplate)
	}

	prompts, err := c.Prompts(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Prompts (%d):\n", len(prompts))
	for _, p := range prompts {
		fmt.Fprintf(w, "  %s\n", p.Name)
	}
	return nil
}

// demoBatch fetches all regions concurrently. The calls are
// independent, so they fan out and join on a barrier.
func demoBatch(ctx context.Context, w io.Writer, c *client.Client) error {
	regions := []string{"APAC", "EMEA", "AMERICAS"}

	type outcome struct {
		result client.Result
		err    error
	}
	outcomes := make([]outcome, len(regions))

	var wg sync.WaitGroup
	for i, region := range regions {
		wg.Add(1)
		go func(idx int, region string) {
			defer wg.Done()
			res, err := c.CallTool(ctx, "fetch_sales_data", map[string]any{
				"region": region,
				"year":   2024,
			})
			outcomes[idx] = outcome{result: res, err: err}
		}(i, region)
	}
	wg.Wait()

	fmt.Fprintln(w, "\nBatch fetch, all regions for 2024:")
	for i, region := range regions {
		if outcomes[i].err != nil {
			return fmt.Errorf("batch fetch %s: %w", region, outcomes[i].err)
		}
		fmt.Fprintf(w, "  %-9s %s\n", region, outcomes[i].result.Text)
	}
	return nil
}

// demoChain feeds one tool's output into the next: fetch APAC sales,
// then compute metrics assuming expenses at 65% of revenue.
func demoChain(ctx context.Context, w io.Writer, c *client.Client) error {
	sales, err := c.CallTool(ctx, "fetch_sales_data", map[string]any{"region": "APAC", "year": 2024})
	if err != nil {
		return err
	}

	var report struct {
		TotalRevenue float64 `json:"total_revenue"`
	}
	if err := sales.Decode(&report); err != nil {
		return err
	}

	metrics, err := c.CallTool(ctx, "calculate_metrics", map[string]any{
		"revenue":  report.TotalRevenue,
		"expenses": report.TotalRevenue * 0.65,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "\nChained workflow, APAC 2024 metrics at 65% expense ratio:")
	fmt.Fprintf(w, "  %s\n", metrics.Text)
	return nil
}

// demoTimeout runs a forecast under a hard deadline. A deadline miss is
// reported as a fallback message rather than a failure.
func demoTimeout(ctx context.Context, w io.Writer, c *client.Client) error {
	res, err := c.CallToolWithTimeout(ctx, forecastTimeout, "forecast_trend", map[string]any{
		"region":       "EMEA",
		"months_ahead": 6,
	})

	fmt.Fprintln(w, "\nForecast under deadline:")
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		fmt.Fprintf(w, "  forecast unavailable within %s, continuing without it (%v)\n", forecastTimeout, err)
		return nil
	}
	fmt.Fprintf(w, "  %s\n", res.Text)
	return nil
}

// demoResourcesAndPrompts reads each resource kind and renders a prompt.
func demoResourcesAndPrompts(ctx context.Context, w io.Writer, c *client.Client) error {
	fmt.Fprintln(w, "\nResources:")
	for _, uri := range []string{
		"resource://company/config",
		"report://quarterly",
		"database://customers",
	} {
		res, err := c.ReadResource(ctx, uri)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s:\n    %s\n", uri, strings.ReplaceAll(res.Text, "\n", "\n    "))
	}

	prompt, err := c.GetPrompt(ctx, "sales_analysis_prompt", map[string]string{"region": "APAC"})
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\nPrompt sales_analysis_prompt(APAC):")
	for _, m := range prompt.Messages {
		fmt.Fprintf(w, "  [%s] %s\n", m.Role, contentText(m.Content))
	}
	return nil
}

func contentText(c mcp.Content) string {
	if tc, ok := c.(*mcp.TextContent); ok {
		return tc.Text
	}
	return fmt.Sprintf("%v", c)
}
