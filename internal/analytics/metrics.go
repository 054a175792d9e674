package analytics

import "math"

// Metrics is a successful calculate_metrics result.
type Metrics struct {
	Revenue                float64 `json:"revenue"`
	Expenses               float64 `json:"expenses"`
	Profit                 float64 `json:"profit"`
	ProfitMarginPercentage float64 `json:"profit_margin_percentage"`
	ROIPercentage          float64 `json:"roi_percentage"`
	IsProfitable           bool    `json:"is_profitable"`
}

// ErrorPayload is a generic tool error returned as an ordinary result.
type ErrorPayload struct {
	Error string `json:"error"`
}

// CalculateMetrics derives profitability metrics from revenue and
// expenses. Revenue must be positive; otherwise an ErrorPayload is
// returned. Percentages are rounded to two decimals.
func CalculateMetrics(revenue, expenses float64) any {
	if revenue <= 0 {
		return ErrorPayload{Error: "Revenue must be greater than 0"}
	}

	profit := revenue - expenses
	margin := profit / revenue * 100

	var roi float64
	if expenses > 0 {
		roi = profit / expenses * 100
	}

	return Metrics{
		Revenue:                revenue,
		Expenses:               expenses,
		Profit:                 profit,
		ProfitMarginPercentage: round2(margin),
		ROIPercentage:          round2(roi),
		IsProfitable:           profit > 0,
	}
}

// round2 rounds to two decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
