// Package analytics holds the demo business-analytics catalog: a fixed
// in-memory sales table, profitability arithmetic, trend forecasting,
// readable resources, and prompt templates. Everything is a literal or
// elementary arithmetic; no state survives between calls.
package analytics

import "fmt"

// RegionalSales holds the stored metrics for one region and fiscal year.
type RegionalSales struct {
	TotalRevenue  float64 `json:"total_revenue"`
	UnitsSold     int     `json:"units_sold"`
	GrowthRate    float64 `json:"growth_rate"`
	TopProduct    string  `json:"top_product"`
	CustomerCount int     `json:"customer_count"`
}

// SalesReport is a successful fetch_sales_data result: the stored
// metrics merged with the requested region and year.
type SalesReport struct {
	Region string `json:"region"`
	Year   int    `json:"year"`
	RegionalSales
}

// SalesNotFound is returned when no data exists for a region/year pair.
// It is an ordinary payload, not a protocol error, so the caller (and
// the LLM) can see it and self-correct.
type SalesNotFound struct {
	Error            string   `json:"error"`
	AvailableRegions []string `json:"available_regions"`
}

// salesDB is the simulated sales database.
var salesDB = map[string]map[int]RegionalSales{
	"APAC": {
		2024: {TotalRevenue: 125000.50, UnitsSold: 1250, GrowthRate: 0.15, TopProduct: "Analytics Pro", CustomerCount: 150},
		2023: {TotalRevenue: 108700.25, UnitsSold: 1050, GrowthRate: 0.12, TopProduct: "Analytics Starter", CustomerCount: 120},
	},
	"EMEA": {
		2024: {TotalRevenue: 98500.75, UnitsSold: 890, GrowthRate: 0.08, TopProduct: "Enterprise Suite", CustomerCount: 110},
		2023: {TotalRevenue: 91100.50, UnitsSold: 820, GrowthRate: 0.10, TopProduct: "Analytics Pro", CustomerCount: 95},
	},
	"AMERICAS": {
		2024: {TotalRevenue: 156000.00, UnitsSold: 1400, GrowthRate: 0.22, TopProduct: "Enterprise Suite", CustomerCount: 200},
		2023: {TotalRevenue: 127800.00, UnitsSold: 1150, GrowthRate: 0.18, TopProduct: "Analytics Pro", CustomerCount: 175},
	},
}

// Regions returns the known sales regions in catalog order.
func Regions() []string {
	return []string{"APAC", "EMEA", "AMERICAS"}
}

// FetchSalesData looks up the stored metrics for a region and fiscal
// year. The result is either a SalesReport or a SalesNotFound payload;
// unknown combinations never fault.
func FetchSalesData(region string, year int) any {
	data, ok := salesDB[region][year]
	if !ok {
		return SalesNotFound{
			Error:            fmt.Sprintf("Data not found for %s in %d", region, year),
			AvailableRegions: Regions(),
		}
	}
	return SalesReport{
		Region:        region,
		Year:          year,
		RegionalSales: data,
	}
}
