package server

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/datacorp/analytics-mcp/internal/analytics"
)

// SalesQuery is the input for fetch_sales_data.
type SalesQuery struct {
	Region string `json:"region"`
	Year   int    `json:"year"`
}

// MetricsInput is the input for calculate_metrics.
type MetricsInput struct {
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
}

// ForecastInput is the input for forecast_trend. MonthsAhead is a
// pointer so an omitted horizon (defaulted) is distinguishable from an
// explicit zero (empty forecast).
type ForecastInput struct {
	Region      string `json:"region"`
	MonthsAhead *int   `json:"months_ahead,omitempty"`
}

// Input schemas are declared explicitly rather than inferred so the
// advertised parameter descriptions match the catalog. The region is
// deliberately not an enum: an out-of-catalog region must reach the
// handler and come back as an available_regions payload, not a
// validation fault.
var (
	salesQuerySchema = &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"region": {Type: "string", Description: "Sales region (APAC, EMEA, AMERICAS)"},
			"year":   {Type: "integer", Description: "Fiscal year"},
		},
		Required: []string{"region", "year"},
	}

	metricsInputSchema = &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"revenue":  {Type: "number", Description: "Total revenue"},
			"expenses": {Type: "number", Description: "Total expenses"},
		},
		Required: []string{"revenue", "expenses"},
	}

	forecastInputSchema = &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"region":       {Type: "string", Description: "Sales region"},
			"months_ahead": {Type: "integer", Description: "Number of months to forecast (default 3)"},
		},
		Required: []string{"region"},
	}
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "fetch_sales_data",
		Description: "Fetch sales data for a specific region and year",
		InputSchema: salesQuerySchema,
	}, s.fetchSalesData)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "calculate_metrics",
		Description: "Calculate profitability metrics from revenue and expenses",
		InputSchema: metricsInputSchema,
	}, s.calculateMetrics)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "forecast_trend",
		Description: "Generate a revenue trend forecast for a region",
		InputSchema: forecastInputSchema,
	}, s.forecastTrend)
}

func (s *Server) fetchSalesData(_ context.Context, _ *mcp.CallToolRequest, in SalesQuery) (*mcp.CallToolResult, any, error) {
	result := analytics.FetchSalesData(in.Region, in.Year)
	s.logger.Info("fetched sales data", "region", in.Region, "year", in.Year)
	return nil, result, nil
}

func (s *Server) calculateMetrics(_ context.Context, _ *mcp.CallToolRequest, in MetricsInput) (*mcp.CallToolResult, any, error) {
	result := analytics.CalculateMetrics(in.Revenue, in.Expenses)
	s.logger.Info("calculated metrics", "revenue", in.Revenue, "expenses", in.Expenses)
	return nil, result, nil
}

func (s *Server) forecastTrend(_ context.Context, _ *mcp.CallToolRequest, in ForecastInput) (*mcp.CallToolResult, any, error) {
	months := analytics.DefaultForecastMonths
	if in.MonthsAhead != nil {
		months = *in.MonthsAhead
	}
	result := analytics.ForecastTrend(in.Region, months)
	s.logger.Info("generated forecast", "region", in.Region, "months", result.ForecastPeriodMonths)
	return nil, result, nil
}
