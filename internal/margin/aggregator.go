package margin

import "sort"

// CustomerSummary is the running (then finalized) per-customer state.
type CustomerSummary struct {
	CustomerName         string            `json:"customer_name"`
	Results              []*ShipmentResult `json:"results"`
	TotalTargetCost      float64           `json:"total_target_cost"`
	TotalCompetitorCost  float64           `json:"total_competitor_cost"`
	TotalCompetitorPrice float64           `json:"total_competitor_price"`
	ShipmentCount        int               `json:"shipment_count"`
	RecommendedMargin    float64           `json:"recommended_margin"`
}

// Aggregator folds shipment results into per-customer summaries. It is
// not safe for concurrent use; a single consumer goroutine owns it.
type Aggregator struct {
	byCustomer map[string]*CustomerSummary
}

func NewAggregator() *Aggregator {
	return &Aggregator{byCustomer: make(map[string]*CustomerSummary)}
}

func (a *Aggregator) Add(customerName string, result *ShipmentResult) {
	summary, ok := a.byCustomer[customerName]
	if !ok {
		summary = &CustomerSummary{CustomerName: customerName}
		a.byCustomer[customerName] = summary
	}

	summary.Results = append(summary.Results, result)
	summary.TotalTargetCost += result.TargetCost
	summary.TotalCompetitorCost += result.AvgCompetitorCost
	summary.TotalCompetitorPrice += result.AvgCompetitorPrice
	summary.ShipmentCount++
}

// Finalize computes each customer's recommended margin exactly once
// from the completed sums and returns every summary that accumulated at
// least one result. Computing the margin once, at the end, keeps it
// free of order-dependent rounding drift.
func (a *Aggregator) Finalize() []*CustomerSummary {
	summaries := make([]*CustomerSummary, 0, len(a.byCustomer))
	for _, summary := range a.byCustomer {
		if summary.TotalCompetitorPrice > 0 {
			summary.RecommendedMargin = (summary.TotalCompetitorPrice - summary.TotalCompetitorCost) / summary.TotalCompetitorPrice * 100
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// ReportRow is the flattened, export-ready shape of a customer summary.
type ReportRow struct {
	CustomerName         string  `json:"customer_name"`
	TotalTargetCost      float64 `json:"total_target_cost"`
	TotalCompetitorCost  float64 `json:"total_competitor_cost"`
	TotalCompetitorPrice float64 `json:"total_competitor_price"`
	RecommendedMargin    float64 `json:"recommended_margin"`
	ShipmentCount        int     `json:"shipment_count"`
}

// FlattenReport produces tabular rows sorted by customer name so the
// export order is stable across runs.
func FlattenReport(report *Report) []ReportRow {
	rows := make([]ReportRow, 0, len(report.Customers))
	for _, summary := range report.Customers {
		rows = append(rows, ReportRow{
			CustomerName:         summary.CustomerName,
			TotalTargetCost:      summary.TotalTargetCost,
			TotalCompetitorCost:  summary.TotalCompetitorCost,
			TotalCompetitorPrice: summary.TotalCompetitorPrice,
			RecommendedMargin:    summary.RecommendedMargin,
			ShipmentCount:        summary.ShipmentCount,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].CustomerName < rows[j].CustomerName })
	return rows
}
