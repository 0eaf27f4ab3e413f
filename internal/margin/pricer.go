package margin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/LoganKirkendoll123/UnifiedRFQTool-sub001/internal/rating"
	"github.com/LoganKirkendoll123/UnifiedRFQTool-sub001/storage/db"
)

// Quoter is the slice of the rating client the pricer needs.
type Quoter interface {
	GetQuotes(ctx context.Context, spec rating.ShipmentSpec, carrierIDs []string) ([]rating.RateQuote, error)
	GetQuotesForGroup(ctx context.Context, spec rating.ShipmentSpec, groupID string) ([]rating.RateQuote, error)
}

// PricedCompetitorRate is a competitor quote with its resolved margin
// and the customer-facing price derived from it.
type PricedCompetitorRate struct {
	Quote         rating.RateQuote `json:"quote"`
	MarginPercent float64          `json:"margin_percent"`
	CustomerPrice float64          `json:"customer_price"`
}

// ShipmentResult is the outcome of pricing one shipment. The
// no-outliers slice is always a subset of CompetitorRates, and the two
// averages are means over that same subset.
type ShipmentResult struct {
	ShipmentID                string                 `json:"shipment_id"`
	TargetCost                float64                `json:"target_cost"`
	CompetitorRates           []PricedCompetitorRate `json:"competitor_rates"`
	CompetitorRatesNoOutliers []PricedCompetitorRate `json:"competitor_rates_no_outliers"`
	AvgCompetitorCost         float64                `json:"avg_competitor_cost"`
	AvgCompetitorPrice        float64                `json:"avg_competitor_price"`
}

// Pricer rates a single shipment against the target carrier and the
// competitor set.
type Pricer struct {
	rater                Quoter
	margins              *MarginTable
	targetCarrierID      string
	competitorCarrierIDs []string
	competitorGroupID    string
}

// NewPricer builds a pricer. When competitorCarrierIDs is empty the
// whole competitor group is rated in one call per shipment.
func NewPricer(rater Quoter, margins *MarginTable, targetCarrierID string, competitorCarrierIDs []string, competitorGroupID string) *Pricer {
	return &Pricer{
		rater:                rater,
		margins:              margins,
		targetCarrierID:      targetCarrierID,
		competitorCarrierIDs: competitorCarrierIDs,
		competitorGroupID:    competitorGroupID,
	}
}

// Price rates one shipment. A nil result with a nil error means the
// shipment was skipped (incomplete data, no quotes, or nothing left
// after outlier filtering). An error means the rating API failed for
// this shipment; callers treat that as a skip too and must not abort
// the batch.
func (p *Pricer) Price(ctx context.Context, rec db.Shipment) (*ShipmentResult, error) {
	spec, ok := NormalizeShipment(rec)
	if !ok {
		slog.Debug("skipping shipment with incomplete data", "shipment_id", rec.ID, "customer", rec.CustomerName)
		return nil, nil
	}

	targetQuotes, err := p.rater.GetQuotes(ctx, spec, []string{p.targetCarrierID})
	if err != nil {
		return nil, fmt.Errorf("target quote request failed: %w", err)
	}
	if len(targetQuotes) == 0 {
		slog.Debug("no target rate returned", "shipment_id", rec.ID, "carrier_id", p.targetCarrierID)
		return nil, nil
	}

	// Several quotes can come back for the one requested carrier
	// (service level variants); the cheapest wins.
	targetCost := lowestCostQuote(targetQuotes).Cost()

	var competitorQuotes []rating.RateQuote
	if len(p.competitorCarrierIDs) > 0 {
		competitorQuotes, err = p.rater.GetQuotes(ctx, spec, p.competitorCarrierIDs)
	} else {
		competitorQuotes, err = p.rater.GetQuotesForGroup(ctx, spec, p.competitorGroupID)
	}
	if err != nil {
		return nil, fmt.Errorf("competitor quote request failed: %w", err)
	}
	if len(competitorQuotes) == 0 {
		slog.Debug("no competitor rates returned", "shipment_id", rec.ID)
		return nil, nil
	}

	priced := make([]PricedCompetitorRate, 0, len(competitorQuotes))
	for _, quote := range competitorQuotes {
		marginPercent := p.margins.Resolve(rec.CustomerName, quote.CarrierCode)
		priced = append(priced, PricedCompetitorRate{
			Quote:         quote,
			MarginPercent: marginPercent,
			CustomerPrice: quote.Cost() / (1 - marginPercent/100),
		})
	}

	retained := FilterOutlierRates(priced, targetCost)
	if len(retained) == 0 {
		slog.Debug("all competitor rates filtered as outliers", "shipment_id", rec.ID)
		return nil, nil
	}

	var sumCost, sumPrice float64
	for _, r := range retained {
		sumCost += r.Quote.Cost()
		sumPrice += r.CustomerPrice
	}
	n := float64(len(retained))

	return &ShipmentResult{
		ShipmentID:                rec.ID,
		TargetCost:                targetCost,
		CompetitorRates:           priced,
		CompetitorRatesNoOutliers: retained,
		AvgCompetitorCost:         sumCost / n,
		AvgCompetitorPrice:        sumPrice / n,
	}, nil
}

func lowestCostQuote(quotes []rating.RateQuote) rating.RateQuote {
	best := quotes[0]
	for _, q := range quotes[1:] {
		if q.Cost() < best.Cost() {
			best = q
		}
	}
	return best
}
