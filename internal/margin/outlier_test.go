package margin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LoganKirkendoll123/UnifiedRFQTool-sub001/internal/rating"
)

func TestRemoveHighEndOutliers_SmallSampleUnchanged(t *testing.T) {
	inputs := [][]float64{
		{},
		{500},
		{100, 900},
		{100, 200, 900},
	}

	for _, costs := range inputs {
		result := RemoveHighEndOutliers(costs, 1000)
		assert.Equal(t, costs, result, "fewer than 4 costs must come back unchanged")
	}
}

func TestRemoveHighEndOutliers_DropsHighOutlierBelowTarget(t *testing.T) {
	// avg of [100,110,105] is 105, threshold 157.5; 300 exceeds it and
	// is cheaper than the target, so it goes.
	result := RemoveHighEndOutliers([]float64{100, 110, 105, 300}, 400)

	assert.ElementsMatch(t, []float64{100, 105, 110}, result)
}

func TestRemoveHighEndOutliers_KeepsOutlierAboveTarget(t *testing.T) {
	// 300 is over the threshold but not cheaper than the target, so it
	// stays; it corroborates that the target is not the ceiling.
	result := RemoveHighEndOutliers([]float64{100, 110, 105, 300}, 250)

	assert.ElementsMatch(t, []float64{100, 105, 110, 300}, result)
}

func TestRemoveHighEndOutliers_IterativeRemoval(t *testing.T) {
	// 900 goes first, then 500 against the shrunken rest.
	result := RemoveHighEndOutliers([]float64{100, 110, 105, 95, 500, 900}, 1000)

	assert.ElementsMatch(t, []float64{100, 110, 105, 95}, result)
}

func TestRemoveHighEndOutliers_StopsAtMinimumSampleSize(t *testing.T) {
	// Even with extreme values, never trims below 4 costs.
	result := RemoveHighEndOutliers([]float64{10, 10, 10, 800}, 1000)

	require.Len(t, result, 3)
	assert.ElementsMatch(t, []float64{10, 10, 10}, result)

	again := RemoveHighEndOutliers(result, 1000)
	assert.Equal(t, result, again, "3 remaining costs are below the minimum sample size")
}

func TestRemoveHighEndOutliers_Idempotent(t *testing.T) {
	first := RemoveHighEndOutliers([]float64{100, 110, 105, 95, 500, 900}, 1000)
	second := RemoveHighEndOutliers(first, 1000)

	assert.Equal(t, first, second)
}

func TestRemoveHighEndOutliers_PreservesInputOrder(t *testing.T) {
	result := RemoveHighEndOutliers([]float64{110, 100, 300, 105}, 400)

	assert.Equal(t, []float64{110, 100, 105}, result)
}

func TestFilterOutlierRates_KeepsCarrierIdentity(t *testing.T) {
	rates := []PricedCompetitorRate{
		{Quote: rating.RateQuote{CarrierCode: "EXLA", BaseRate: 100}},
		{Quote: rating.RateQuote{CarrierCode: "SAIA", BaseRate: 110}},
		{Quote: rating.RateQuote{CarrierCode: "ODFL", BaseRate: 105}},
		{Quote: rating.RateQuote{CarrierCode: "XPO", BaseRate: 300}},
	}

	retained := FilterOutlierRates(rates, 400)

	require.Len(t, retained, 3)
	var codes []string
	for _, r := range retained {
		codes = append(codes, r.Quote.CarrierCode)
	}
	assert.ElementsMatch(t, []string{"EXLA", "SAIA", "ODFL"}, codes)
}

func TestFilterOutlierRates_TiedCostsStayDistinct(t *testing.T) {
	// Two carriers quoting the identical cost must both survive as
	// themselves; index-based filtering never confuses them.
	rates := []PricedCompetitorRate{
		{Quote: rating.RateQuote{CarrierCode: "EXLA", BaseRate: 100}},
		{Quote: rating.RateQuote{CarrierCode: "SAIA", BaseRate: 100}},
		{Quote: rating.RateQuote{CarrierCode: "ODFL", BaseRate: 105}},
		{Quote: rating.RateQuote{CarrierCode: "XPO", BaseRate: 300}},
	}

	retained := FilterOutlierRates(rates, 400)

	require.Len(t, retained, 3)
	var codes []string
	for _, r := range retained {
		codes = append(codes, r.Quote.CarrierCode)
	}
	assert.ElementsMatch(t, []string{"EXLA", "SAIA", "ODFL"}, codes)
}

func TestFilterOutlierRates_NoRemovalReturnsInput(t *testing.T) {
	rates := []PricedCompetitorRate{
		{Quote: rating.RateQuote{CarrierCode: "EXLA", BaseRate: 100}},
		{Quote: rating.RateQuote{CarrierCode: "SAIA", BaseRate: 110}},
	}

	retained := FilterOutlierRates(rates, 400)

	assert.Equal(t, rates, retained)
}
