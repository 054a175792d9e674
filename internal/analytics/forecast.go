package analytics

// DefaultForecastMonths is used when a forecast request does not
// specify a horizon.
const DefaultForecastMonths = 3

// forecastBaseRevenue is the starting monthly revenue for every
// forecast, independent of region.
const forecastBaseRevenue = 125000

// regionGrowth holds annual growth rates per region. Unknown regions
// fall back to defaultGrowth.
var regionGrowth = map[string]float64{
	"APAC":     0.15,
	"EMEA":     0.08,
	"AMERICAS": 0.22,
}

const defaultGrowth = 0.10

// ForecastPoint is a single projected month.
type ForecastPoint struct {
	Month            int     `json:"month"`
	ProjectedRevenue float64 `json:"projected_revenue"`
	Confidence       float64 `json:"confidence"`
}

// Forecast is the result of forecast_trend.
type Forecast struct {
	Region               string          `json:"region"`
	ForecastPeriodMonths int             `json:"forecast_period_months"`
	BaseGrowthRate       float64         `json:"base_growth_rate"`
	Forecast             []ForecastPoint `json:"forecast"`
}

// ForecastTrend compounds the region's monthly growth rate over
// monthsAhead periods starting from the fixed base revenue. Confidence
// decreases linearly by 0.05 per month from 0.95. A monthsAhead of
// zero or less yields an empty forecast; defaulting an omitted horizon
// is the caller's job.
func ForecastTrend(region string, monthsAhead int) Forecast {
	growth, ok := regionGrowth[region]
	if !ok {
		growth = defaultGrowth
	}

	points := make([]ForecastPoint, 0)
	revenue := float64(forecastBaseRevenue)
	for month := 1; month <= monthsAhead; month++ {
		revenue *= 1 + growth/12
		points = append(points, ForecastPoint{
			Month:            month,
			ProjectedRevenue: round2(revenue),
			Confidence:       0.95 - float64(month)*0.05,
		})
	}

	return Forecast{
		Region:               region,
		ForecastPeriodMonths: monthsAhead,
		BaseGrowthRate:       growth,
		Forecast:             points,
	}
}
