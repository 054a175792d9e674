package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newSession wires a host and an SDK client in-process and returns the
// connected client session.
func newSession(t *testing.T) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	srv := New(testLogger())
	if _, err := srv.Connect(ctx, serverTransport); err != nil {
		t.Fatalf("server connect: %v", err)
	}

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.0"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { cs.Close() })

	return cs
}

// callTool invokes a tool and decodes its JSON text content.
func callTool(t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) map[string]any {
	t.Helper()

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("call %s: %v", name, err)
	}
	if res.IsError {
		t.Fatalf("call %s: unexpected isError result: %+v", name, res.Content)
	}
	if len(res.Content) == 0 {
		t.Fatalf("call %s: empty content", name)
	}

	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("call %s: content type = %T, want TextContent", name, res.Content[0])
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Fatalf("call %s: decode %q: %v", name, text.Text, err)
	}
	return payload
}

func TestDiscovery(t *testing.T) {
	cs := newSession(t)
	ctx := context.Background()

	tools, err := cs.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	wantTools := map[string]bool{
		"fetch_sales_data":  false,
		"calculate_metrics": false,
		"forecast_trend":    false,
	}
	for _, tool := range tools.Tools {
		if _, known := wantTools[tool.Name]; !known {
			t.Errorf("unexpected tool %q", tool.Name)
			continue
		}
		wantTools[tool.Name] = true
	}
	for name, seen := range wantTools {
		if !seen {
			t.Errorf("tool %q not listed", name)
		}
	}

	resources, err := cs.ListResources(ctx, &mcp.ListResourcesParams{})
	if err != nil {
		t.Fatalf("ListResources: %v", err)
	}
	if len(resources.Resources) != 1 || resources.Resources[0].URI != companyConfigURI {
		t.Errorf("resources = %+v, want just %s", resources.Resources, companyConfigURI)
	}

	// Both parameterized resources must survive registration and be
	// advertised with their {parameter} templates intact.
	templates, err := cs.ListResourceTemplates(ctx, &mcp.ListResourceTemplatesParams{})
	if err != nil {
		t.Fatalf("ListResourceTemplates: %v", err)
	}
	wantTemplates := map[string]bool{
		reportPrefix + "{report_type}":  false,
		databasePrefix + "{table_name}": false,
	}
	for _, tmpl := range templates.ResourceTemplates {
		if _, known := wantTemplates[tmpl.URITemplate]; !known {
			t.Errorf("unexpected resource template %q", tmpl.URITemplate)
			continue
		}
		wantTemplates[tmpl.URITemplate] = true
	}
	for uri, seen := range wantTemplates {
		if !seen {
			t.Errorf("resource template %q not listed", uri)
		}
	}

	prompts, err := cs.ListPrompts(ctx, &mcp.ListPromptsParams{})
	if err != nil {
		t.Fatalf("ListPrompts: %v", err)
	}
	if len(prompts.Prompts) != 3 {
		t.Errorf("listed %d prompts, want 3", len(prompts.Prompts))
	}
}

func TestFetchSalesDataTool(t *testing.T) {
	cs := newSession(t)

	payload := callTool(t, cs, "fetch_sales_data", map[string]any{"region": "APAC", "year": 2024})
	if payload["total_revenue"] != 125000.50 {
		t.Errorf("total_revenue = %v, want 125000.50", payload["total_revenue"])
	}
	if payload["region"] != "APAC" {
		t.Errorf("region = %v, want APAC", payload["region"])
	}

	// Out-of-catalog combinations come back as payloads, not faults.
	payload = callTool(t, cs, "fetch_sales_data", map[string]any{"region": "INVALID_REGION", "year": 2024})
	if _, ok := payload["error"]; !ok {
		t.Fatalf("unknown region payload = %v, want error key", payload)
	}
	regions, ok := payload["available_regions"].([]any)
	if !ok || len(regions) != 3 {
		t.Fatalf("available_regions = %v, want 3 entries", payload["available_regions"])
	}
}

func TestCalculateMetricsTool(t *testing.T) {
	cs := newSession(t)

	payload := callTool(t, cs, "calculate_metrics", map[string]any{"revenue": 100, "expenses": 60})
	if payload["profit"] != 40.0 {
		t.Errorf("profit = %v, want 40", payload["profit"])
	}
	if payload["profit_margin_percentage"] != 40.0 {
		t.Errorf("margin = %v, want 40", payload["profit_margin_percentage"])
	}
	if payload["roi_percentage"] != 66.67 {
		t.Errorf("roi = %v, want 66.67", payload["roi_percentage"])
	}
	if payload["is_profitable"] != true {
		t.Errorf("is_profitable = %v, want true", payload["is_profitable"])
	}

	payload = callTool(t, cs, "calculate_metrics", map[string]any{"revenue": 0, "expenses": 100})
	if _, ok := payload["error"]; !ok {
		t.Errorf("zero revenue payload = %v, want error key", payload)
	}
}

func TestForecastTrendTool(t *testing.T) {
	cs := newSession(t)

	payload := callTool(t, cs, "forecast_trend", map[string]any{"region": "APAC", "months_ahead": 6})
	months, ok := payload["forecast"].([]any)
	if !ok {
		t.Fatalf("forecast = %v, want a list", payload["forecast"])
	}
	if len(months) != 6 {
		t.Fatalf("forecast has %d records, want 6", len(months))
	}

	first := months[0].(map[string]any)
	if conf := first["confidence"].(float64); math.Abs(conf-0.90) > 1e-9 {
		t.Errorf("month 1 confidence = %v, want 0.90", conf)
	}

	// Default horizon applies only when months_ahead is omitted.
	payload = callTool(t, cs, "forecast_trend", map[string]any{"region": "EMEA"})
	if payload["forecast_period_months"] != 3.0 {
		t.Errorf("default forecast_period_months = %v, want 3", payload["forecast_period_months"])
	}

	// An explicit zero is honored, not replaced by the default.
	payload = callTool(t, cs, "forecast_trend", map[string]any{"region": "EMEA", "months_ahead": 0})
	if payload["forecast_period_months"] != 0.0 {
		t.Errorf("explicit zero forecast_period_months = %v, want 0", payload["forecast_period_months"])
	}
	if zero, ok := payload["forecast"].([]any); !ok || len(zero) != 0 {
		t.Errorf("explicit zero forecast = %v, want an empty list", payload["forecast"])
	}
}

func readResource(t *testing.T, cs *mcp.ClientSession, uri string) string {
	t.Helper()
	res, err := cs.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: uri})
	if err != nil {
		t.Fatalf("read %s: %v", uri, err)
	}
	if len(res.Contents) != 1 {
		t.Fatalf("read %s: got %d contents, want 1", uri, len(res.Contents))
	}
	return res.Contents[0].Text
}

func TestResources(t *testing.T) {
	cs := newSession(t)

	var config map[string]any
	if err := json.Unmarshal([]byte(readResource(t, cs, companyConfigURI)), &config); err != nil {
		t.Fatalf("decode company config: %v", err)
	}
	if config["company"] != "DataCorp Analytics" {
		t.Errorf("company = %v, want DataCorp Analytics", config["company"])
	}

	text := readResource(t, cs, "report://quarterly")
	if !strings.Contains(text, "Q4 2024") {
		t.Errorf("quarterly report = %q, want Q4 2024 content", text)
	}

	text = readResource(t, cs, "report://unknown")
	if !strings.Contains(text, "not found") {
		t.Errorf("unknown report = %q, want not-found message", text)
	}
	for _, name := range []string{"quarterly", "annual", "compliance"} {
		if !strings.Contains(text, name) {
			t.Errorf("not-found message does not list %q", name)
		}
	}

	var rows []map[string]any
	if err := json.Unmarshal([]byte(readResource(t, cs, "database://customers")), &rows); err != nil {
		t.Fatalf("decode customers: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("customers has %d rows, want 3", len(rows))
	}

	if err := json.Unmarshal([]byte(readResource(t, cs, "database://missing")), &rows); err != nil {
		t.Fatalf("decode missing table: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("missing table has %d rows, want 1", len(rows))
	}
	if _, ok := rows[0]["error"]; !ok {
		t.Errorf("missing table row = %v, want error entry", rows[0])
	}
}

func TestPrompts(t *testing.T) {
	cs := newSession(t)
	ctx := context.Background()

	res, err := cs.GetPrompt(ctx, &mcp.GetPromptParams{
		Name:      "sales_analysis_prompt",
		Arguments: map[string]string{"region": "EMEA"},
	})
	if err != nil {
		t.Fatalf("GetPrompt: %v", err)
	}
	if len(res.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(res.Messages))
	}
	if res.Messages[0].Role != "system" || res.Messages[1].Role != "user" {
		t.Errorf("roles = %s/%s, want system/user", res.Messages[0].Role, res.Messages[1].Role)
	}
	text, ok := res.Messages[0].Content.(*mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want TextContent", res.Messages[0].Content)
	}
	if !strings.Contains(text.Text, "EMEA") {
		t.Error("system message does not mention the region")
	}
}

// TestDiscoveryRoundTrip verifies that every advertised catalog entry
// is independently invocable with a well-formed argument set.
func TestDiscoveryRoundTrip(t *testing.T) {
	cs := newSession(t)
	ctx := context.Background()

	toolArgs := map[string]map[string]any{
		"fetch_sales_data":  {"region": "APAC", "year": 2024},
		"calculate_metrics": {"revenue": 1000.0, "expenses": 400.0},
		"forecast_trend":    {"region": "EMEA", "months_ahead": 2},
	}
	tools, err := cs.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	for _, tool := range tools.Tools {
		args, ok := toolArgs[tool.Name]
		if !ok {
			t.Errorf("no argument set for advertised tool %q", tool.Name)
			continue
		}
		callTool(t, cs, tool.Name, args)
	}

	resources, err := cs.ListResources(ctx, &mcp.ListResourcesParams{})
	if err != nil {
		t.Fatalf("ListResources: %v", err)
	}
	for _, r := range resources.Resources {
		readResource(t, cs, r.URI)
	}

	promptArgs := map[string]map[string]string{
		"sales_analysis_prompt":     {"region": "APAC"},
		"budget_planning_prompt":    nil,
		"technical_analysis_prompt": {"metric": "revenue"},
	}
	prompts, err := cs.ListPrompts(ctx, &mcp.ListPromptsParams{})
	if err != nil {
		t.Fatalf("ListPrompts: %v", err)
	}
	for _, p := range prompts.Prompts {
		args, ok := promptArgs[p.Name]
		if !ok {
			t.Errorf("no argument set for advertised prompt %q", p.Name)
			continue
		}
		if _, err := cs.GetPrompt(ctx, &mcp.GetPromptParams{Name: p.Name, Arguments: args}); err != nil {
			t.Errorf("GetPrompt(%s): %v", p.Name, err)
		}
	}
}

// TestAnalysisChain mirrors the demo workflow: fetch APAC 2024 sales,
// then compute metrics assuming expenses at 65% of revenue.
func TestAnalysisChain(t *testing.T) {
	cs := newSession(t)

	sales := callTool(t, cs, "fetch_sales_data", map[string]any{"region": "APAC", "year": 2024})
	revenue, ok := sales["total_revenue"].(float64)
	if !ok {
		t.Fatalf("total_revenue = %v, want a number", sales["total_revenue"])
	}

	metrics := callTool(t, cs, "calculate_metrics", map[string]any{
		"revenue":  revenue,
		"expenses": revenue * 0.65,
	})
	if margin := metrics["profit_margin_percentage"].(float64); math.Abs(margin-35.0) > 1e-9 {
		t.Errorf("margin = %v, want 35.00", margin)
	}
	wantProfit := revenue * 0.35
	if profit := metrics["profit"].(float64); math.Abs(profit-wantProfit) > 1e-6 {
		t.Errorf("profit = %v, want %v", profit, wantProfit)
	}
}
