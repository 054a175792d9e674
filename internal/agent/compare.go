package agent

import (
	"context"
	"fmt"
	"sync"

	"github.com/datacorp/analytics-mcp/internal/client"
)

// RegionSales is the outcome of one region's fetch in CompareRegions.
type RegionSales struct {
	Region string
	Result client.Result
	Err    error
}

// CompareRegions fetches sales data for every region concurrently. The
// calls are independent, so they fan out and join on a barrier; results
// come back in input order with per-region outcomes. The aggregate
// error is non-nil if any fetch failed at the protocol level.
func (a *Orchestrator) CompareRegions(ctx context.Context, regions []string, year int) ([]RegionSales, error) {
	results := make([]RegionSales, len(regions))

	var wg sync.WaitGroup
	for i, region := range regions {
		wg.Add(1)
		go func(idx int, region string) {
			defer wg.Done()

			res, err := a.client.CallTool(ctx, "fetch_sales_data", map[string]any{
				"region": region,
				"year":   year,
			})
			results[idx] = RegionSales{Region: region, Result: res, Err: err}
		}(i, region)
	}
	wg.Wait()

	var firstErr error
	for _, r := range results {
		if r.Err != nil {
			firstErr = fmt.Errorf("fetch %s: %w", r.Region, r.Err)
			break
		}
	}

	a.logger.Info("region comparison completed", "regions", len(regions), "year", year)
	return results, firstErr
}
