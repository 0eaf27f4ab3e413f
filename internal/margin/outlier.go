package margin

import "sort"

// outlierMinSample is the smallest cost set the filter will trim; below
// this there is not enough data to call anything an outlier.
const outlierMinSample = 4

// outlierThresholdFactor flags a cost as a high-end outlier when it
// exceeds the mean of the remaining costs by this factor.
const outlierThresholdFactor = 1.5

type costIndex struct {
	cost float64
	idx  int
}

// highEndOutlierIndices returns the input indices removed by the
// one-sided trimming rule: repeatedly drop the current maximum while it
// is both more than 1.5x the mean of the rest and still cheaper than the
// target carrier's cost. A maximum above the target cost is kept; it
// corroborates that the target is not the most expensive option.
func highEndOutlierIndices(costs []float64, targetCost float64) map[int]struct{} {
	removed := make(map[int]struct{})
	if len(costs) < outlierMinSample {
		return removed
	}

	working := make([]costIndex, len(costs))
	for i, c := range costs {
		working[i] = costIndex{cost: c, idx: i}
	}
	sort.Slice(working, func(i, j int) bool { return working[i].cost < working[j].cost })

	for len(working) >= outlierMinSample {
		max := working[len(working)-1]
		rest := working[:len(working)-1]

		var sum float64
		for _, c := range rest {
			sum += c.cost
		}
		avgRest := sum / float64(len(rest))

		if max.cost > avgRest*outlierThresholdFactor && max.cost < targetCost {
			removed[max.idx] = struct{}{}
			working = rest
			continue
		}
		break
	}

	return removed
}

// RemoveHighEndOutliers returns the retained subset of costs, in input
// order. Fewer than four costs are returned unchanged.
func RemoveHighEndOutliers(costs []float64, targetCost float64) []float64 {
	removed := highEndOutlierIndices(costs, targetCost)
	if len(removed) == 0 {
		return costs
	}

	kept := make([]float64, 0, len(costs)-len(removed))
	for i, c := range costs {
		if _, drop := removed[i]; !drop {
			kept = append(kept, c)
		}
	}
	return kept
}

// FilterOutlierRates applies the same trimming rule to priced competitor
// rates and returns the survivors. Filtering by index keeps each cost
// tied to its carrier, so two competitors quoting the same cost are
// never confused.
func FilterOutlierRates(rates []PricedCompetitorRate, targetCost float64) []PricedCompetitorRate {
	costs := make([]float64, len(rates))
	for i, r := range rates {
		costs[i] = r.Quote.Cost()
	}

	removed := highEndOutlierIndices(costs, targetCost)
	if len(removed) == 0 {
		return rates
	}

	kept := make([]PricedCompetitorRate, 0, len(rates)-len(removed))
	for i, r := range rates {
		if _, drop := removed[i]; !drop {
			kept = append(kept, r)
		}
	}
	return kept
}
