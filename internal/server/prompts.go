package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/datacorp/analytics-mcp/internal/analytics"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(&mcp.Prompt{
		Name:        "sales_analysis_prompt",
		Description: "Template for regional sales analysis",
		Arguments: []*mcp.PromptArgument{
			{Name: "region", Description: "Sales region to analyze", Required: true},
		},
	}, s.salesAnalysisPrompt)

	s.mcp.AddPrompt(&mcp.Prompt{
		Name:        "budget_planning_prompt",
		Description: "Template for budget planning",
	}, s.budgetPlanningPrompt)

	s.mcp.AddPrompt(&mcp.Prompt{
		Name:        "technical_analysis_prompt",
		Description: "Template for technical data analysis",
		Arguments: []*mcp.PromptArgument{
			{Name: "metric", Description: "Metric to analyze (default: revenue)"},
		},
	}, s.technicalAnalysisPrompt)
}

func (s *Server) salesAnalysisPrompt(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	region := req.Params.Arguments["region"]
	s.logger.Info("prompt requested", "prompt", "sales_analysis_prompt", "region", region)
	return promptResult("Regional sales analysis", analytics.SalesAnalysisPrompt(region)), nil
}

func (s *Server) budgetPlanningPrompt(_ context.Context, _ *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	s.logger.Info("prompt requested", "prompt", "budget_planning_prompt")
	return promptResult("Budget planning", analytics.BudgetPlanningPrompt()), nil
}

func (s *Server) technicalAnalysisPrompt(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	metric := req.Params.Arguments["metric"]
	s.logger.Info("prompt requested", "prompt", "technical_analysis_prompt", "metric", metric)
	return promptResult("Technical data analysis", analytics.TechnicalAnalysisPrompt(metric)), nil
}

// promptResult converts catalog messages into the wire representation.
func promptResult(description string, messages []analytics.PromptMessage) *mcp.GetPromptResult {
	out := make([]*mcp.PromptMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, &mcp.PromptMessage{
			Role:    mcp.Role(m.Role),
			Content: &mcp.TextContent{Text: m.Content},
		})
	}
	return &mcp.GetPromptResult{
		Description: description,
		Messages:    out,
	}
}
