package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateRidesCheapestFirst(t *testing.T) {
	estimates := EstimateRides("Indiranagar", "Koramangala", 6, 1.0, "", 0)
	require.NotEmpty(t, estimates.Options)

	for i := 1; i < len(estimates.Options); i++ {
		assert.LessOrEqual(t,
			estimates.Options[i-1].EstimatedPrice,
			estimates.Options[i].EstimatedPrice)
	}
	assert.False(t, estimates.SurgeActive)
	assert.Contains(t, estimates.Recommendation, estimates.Options[0].Service)
}

func TestEstimateRidesSurge(t *testing.T) {
	calm := EstimateRides("A", "B", 8, 1.0, "", 0)
	surged := EstimateRides("A", "B", 8, 1.5, "", 0)

	require.NotEmpty(t, calm.Options)
	require.NotEmpty(t, surged.Options)
	assert.True(t, surged.SurgeActive)
	assert.Greater(t, surged.Options[0].EstimatedPrice, calm.Options[0].EstimatedPrice)
	for _, opt := range surged.Options {
		assert.True(t, opt.SurgeApplied)
	}
}

func TestEstimateRidesElderlyHasNoBikes(t *testing.T) {
	estimates := EstimateRides("A", "B", 5, 1.0, "elderly", 0)
	require.NotEmpty(t, estimates.Options)

	for _, opt := range estimates.Options {
		assert.NotEqual(t, "bike", opt.Category)
	}
}

func TestEstimateRidesElderlyLongTripRecommendsCab(t *testing.T) {
	estimates := EstimateRides("A", "B", 15, 1.0, "elderly", 0)
	require.NotEmpty(t, estimates.Options)
	assert.Contains(t, estimates.Recommendation, "Comfortable for longer trips")
}

func TestEstimateRidesBudgetFilter(t *testing.T) {
	all := EstimateRides("A", "B", 10, 1.0, "", 0)
	capped := EstimateRides("A", "B", 10, 1.0, "", 200)

	assert.Greater(t, len(all.Options), len(capped.Options))
	for _, opt := range capped.Options {
		assert.LessOrEqual(t, opt.EstimatedPrice, 200)
	}
}

func TestEstimateRidesImpossibleBudget(t *testing.T) {
	estimates := EstimateRides("A", "B", 10, 1.0, "", 1)
	assert.Empty(t, estimates.Options)
	assert.Contains(t, estimates.Recommendation, "No ride options")
}

func TestEstimateRidesDeepLinks(t *testing.T) {
	estimates := EstimateRides("MG Road", "Airport", 30, 1.0, "", 0)
	for _, opt := range estimates.Options {
		assert.NotEmpty(t, opt.DeepLink)
		assert.NotEqual(t, "#", opt.DeepLink)
	}
}
