package routing

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marga.transitlab.org/internal/oracle"
	"marga.transitlab.org/internal/transitdata"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()

	store, err := transitdata.Load("../../testdata")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine, err := NewEngine(store, oracle.Fixed{}, FixedClock{T: weekdayAt(13)}, logger)
	require.NoError(t, err)
	return engine
}

func TestNewEngineBuildsAllCities(t *testing.T) {
	engine := testEngine(t)
	assert.Equal(t, []string{"Bengaluru", "Mumbai"}, engine.Cities())
	assert.NotEmpty(t, engine.StationNames("Bengaluru"))
	assert.NotEmpty(t, engine.StationNames("mumbai"))
	assert.Nil(t, engine.StationNames("Atlantis"))
}

func TestNewEngineRejectsEmptyStore(t *testing.T) {
	store, err := transitdata.NewStore(transitdata.LineSet{}, transitdata.FareTable{})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err = NewEngine(store, oracle.Fixed{}, FixedClock{T: weekdayAt(13)}, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no cities")
}

func TestCurrentSurgeFollowsInjectedClock(t *testing.T) {
	store, err := transitdata.Load("../../testdata")
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	offPeak := testEngine(t)
	assert.Equal(t, 1.0, offPeak.CurrentSurge())

	peak, err := NewEngine(store, oracle.Fixed{}, FixedClock{T: weekdayAt(8)}, logger)
	require.NoError(t, err)
	assert.Equal(t, 1.5, peak.CurrentSurge())
}

// Scenario: a common single-rider trip on a well-covered corridor.
func TestComputeOptionsWhitefieldToMajestic(t *testing.T) {
	engine := testEngine(t)

	result := engine.ComputeOptions(context.Background(), Request{
		Origin:          "Whitefield",
		Destination:     "Majestic",
		City:            "Bengaluru",
		Group:           GroupSpec{Size: 1},
		DistanceKmHint:  18,
		DurationMinHint: 45,
	})

	require.NotEmpty(t, result.AllOptions)
	assert.NotNil(t, findKind(result.AllOptions, KindBus))
	assert.NotNil(t, findKind(result.AllOptions, KindAuto))

	require.NotNil(t, result.Cheapest)
	assert.Contains(t, []ModeKind{KindBus, KindMetroBus}, result.Cheapest.Kind)

	require.NotNil(t, result.Fastest)
	assert.Contains(t, []ModeKind{KindAuto, KindCab, KindMetro}, result.Fastest.Kind)

	assert.NotEmpty(t, result.RideOptions)
	assert.NotEmpty(t, result.Recommendation)
	assert.False(t, result.AlreadyThere)
}

// Scenario: sedan capacity arithmetic across group sizes.
func TestComputeOptionsGroupVehicles(t *testing.T) {
	engine := testEngine(t)

	base := Request{
		Origin:          "Whitefield",
		Destination:     "Majestic",
		City:            "Bengaluru",
		DistanceKmHint:  18,
		DurationMinHint: 45,
	}

	sedanOf := func(result Result) *ModeOption {
		for i := range result.AllOptions {
			opt := &result.AllOptions[i]
			if opt.Kind == KindCab && opt.VehicleClass == ClassSedan {
				return opt
			}
		}
		return nil
	}

	four := base
	four.Group = GroupSpec{Size: 4}
	sedan := sedanOf(engine.ComputeOptions(context.Background(), four))
	require.NotNil(t, sedan)
	assert.Equal(t, 1, sedan.NumVehicles)

	five := base
	five.Group = GroupSpec{Size: 5}
	sedan = sedanOf(engine.ComputeOptions(context.Background(), five))
	require.NotNil(t, sedan)
	assert.Equal(t, 2, sedan.NumVehicles)
}

// Scenario: origin and destination resolve to the same station.
func TestComputeOptionsAlreadyThere(t *testing.T) {
	engine := testEngine(t)

	result := engine.ComputeOptions(context.Background(), Request{
		Origin:      "Majestic",
		Destination: "kempegowda bus station",
		City:        "Bengaluru",
		Group:       GroupSpec{Size: 1},
	})

	assert.True(t, result.AlreadyThere)
	assert.Empty(t, result.AllOptions)
	assert.Contains(t, result.Recommendation, "already at the destination")
}

// Scenario: unresolvable places still produce usable options.
func TestComputeOptionsUnknownPlacesFallBack(t *testing.T) {
	engine := testEngine(t)

	result := engine.ComputeOptions(context.Background(), Request{
		Origin:      "Frobnitz Gardens",
		Destination: "Quux Enclave",
		City:        "Bengaluru",
		Group:       GroupSpec{Size: 1},
	})

	assert.NotEmpty(t, result.AllOptions, "generic fallback always produces options")
	assert.Equal(t, oracle.FallbackDistanceKm, result.DistanceKm)
	assert.NotNil(t, result.Cheapest)
	assert.NotNil(t, result.Fastest)
}

func TestComputeOptionsUnknownCityUsesDefault(t *testing.T) {
	engine := testEngine(t)

	result := engine.ComputeOptions(context.Background(), Request{
		Origin:      "Whitefield",
		Destination: "Majestic",
		City:        "Narnia",
		Group:       GroupSpec{Size: 1},
	})

	assert.Equal(t, "Bengaluru", result.City)
	assert.NotEmpty(t, result.AllOptions)
}

func TestComputeOptionsSanitizesWildHints(t *testing.T) {
	engine := testEngine(t)

	result := engine.ComputeOptions(context.Background(), Request{
		Origin:          "Whitefield",
		Destination:     "Majestic",
		City:            "Bengaluru",
		Group:           GroupSpec{Size: 1},
		DistanceKmHint:  900,
		DurationMinHint: 1200,
	})

	assert.Equal(t, 30.0, result.DistanceKm, "implausible distances are capped")
	assert.Equal(t, 90.0, result.DurationMin)
}

func TestPlanAccessibleRoute(t *testing.T) {
	engine := testEngine(t)

	plan := engine.PlanAccessibleRoute(context.Background(), Request{
		Origin:          "Whitefield",
		Destination:     "Majestic",
		City:            "Bengaluru",
		Group:           GroupSpec{Size: 2, ElderlyCount: 1},
		DistanceKmHint:  18,
		DurationMinHint: 45,
	})

	require.NotEmpty(t, plan.AllOptions)
	require.NotNil(t, plan.MostComfortable)

	for i := 1; i < len(plan.AllOptions); i++ {
		assert.GreaterOrEqual(t,
			plan.AllOptions[i-1].ComfortScore,
			plan.AllOptions[i].ComfortScore,
			"options are ranked by comfort")
	}

	for _, ride := range plan.RideOptions {
		assert.NotEqual(t, "bike", ride.Category)
	}
	assert.NotEmpty(t, plan.Recommendation)
	assert.Empty(t, plan.SafetyNote, "no night warning at midday")
}

func TestPlanAccessibleRouteNightSafetyNote(t *testing.T) {
	store, err := transitdata.Load("../../testdata")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine, err := NewEngine(store, oracle.Fixed{}, FixedClock{T: weekdayAt(23)}, logger)
	require.NoError(t, err)

	plan := engine.PlanAccessibleRoute(context.Background(), Request{
		Origin:      "Whitefield",
		Destination: "Majestic",
		City:        "Bengaluru",
		Group:       GroupSpec{Size: 1, ElderlyCount: 1},
	})

	assert.NotEmpty(t, plan.SafetyNote)
}

func TestFindKRoutes(t *testing.T) {
	engine := testEngine(t)

	paths := engine.FindKRoutes("Whitefield", "Majestic", "Bengaluru", 3, -1)
	require.NotEmpty(t, paths)
	assert.LessOrEqual(t, len(paths), 3)

	assert.Empty(t, engine.FindKRoutes("Atlantis", "Majestic", "Bengaluru", 3, -1))
}
