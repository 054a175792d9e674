package analytics

import "fmt"

// PromptMessage is one role-tagged message in a prompt template.
type PromptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// DefaultAnalysisMetric is used when technical_analysis_prompt is
// requested without a metric argument.
const DefaultAnalysisMetric = "revenue"

// SalesAnalysisPrompt is the template for regional sales analysis.
func SalesAnalysisPrompt(region string) []PromptMessage {
	return []PromptMessage{
		{
			Role: "system",
			Content: fmt.Sprintf(`You are a sales analyst specializing in the %s market.
Your task is to analyze sales trends, identify opportunities, and provide actionable insights.
Focus on:
1. Growth trends and patterns
2. Customer acquisition and retention
3. Revenue optimization opportunities
4. Competitive positioning
5. Regional market dynamics

Provide specific, data-driven recommendations.`, region),
		},
		{
			Role: "user",
			Content: fmt.Sprintf(`Please analyze the sales performance for %s and provide:
1. Current performance metrics
2. Key growth drivers
3. Areas needing improvement
4. Opportunities for expansion
5. 3-month forecast
6. Recommended actions`, region),
		},
	}
}

// BudgetPlanningPrompt is the template for budget planning.
func BudgetPlanningPrompt() []PromptMessage {
	return []PromptMessage{
		{
			Role: "system",
			Content: `You are a financial planning expert specializing in SaaS budgeting.
Your expertise includes:
- Cost optimization and allocation
- Revenue forecasting and modeling
- Risk assessment and contingency planning
- Resource optimization
- Scenario planning

Provide realistic, actionable budget recommendations.`,
		},
		{
			Role: "user",
			Content: `Based on the provided financial data, help me create an optimized budget plan for Q1 2025:
1. Recommended departmental allocations
2. Revenue targets by region
3. Contingency reserves
4. Risk mitigation strategies
5. KPIs to track
6. Monthly milestones and checkpoints`,
		},
	}
}

// TechnicalAnalysisPrompt is the template for technical data analysis.
// An empty metric falls back to DefaultAnalysisMetric.
func TechnicalAnalysisPrompt(metric string) []PromptMessage {
	if metric == "" {
		metric = DefaultAnalysisMetric
	}
	return []PromptMessage{
		{
			Role: "system",
			Content: fmt.Sprintf(`You are a technical data analyst.
Analyze the %s metric using statistical methods and provide insights.
Include:
- Descriptive statistics
- Trend analysis
- Anomaly detection
- Correlation analysis
- Predictive insights`, metric),
		},
		{
			Role: "user",
			Content: fmt.Sprintf(`Perform a comprehensive technical analysis of %s:
1. Statistical summary
2. Trend identification
3. Outlier analysis
4. Pattern recognition
5. Predictive model suggestions
6. Visualization recommendations`, metric),
		},
	}
}
