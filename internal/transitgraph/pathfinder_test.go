package transitgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marga.transitlab.org/internal/transitdata"
)

// railOnlyLines has no bus shortcuts, so path assertions stay on rails.
func railOnlyLines() transitdata.CityLines {
	lines := testCityLines()
	lines.Bus.MajorRoutes = nil
	return lines
}

func TestShortestPathSameLine(t *testing.T) {
	g, err := Build("Bengaluru", railOnlyLines())
	require.NoError(t, err)

	cand, ok := g.ShortestPath("Whitefield", "MG Road", DefaultMaxTransfers)
	require.True(t, ok)

	assert.Equal(t, []string{"Whitefield", "KR Puram", "Indiranagar", "MG Road"}, cand.Stations)
	assert.Equal(t, 0, cand.Transfers)
	assert.Equal(t, []string{"Purple Line"}, cand.Lines)
	assert.Greater(t, cand.TimeMinutes, 0)
	assert.Greater(t, cand.DistanceKm, 0.0)
}

func TestShortestPathAcrossInterchange(t *testing.T) {
	g, err := Build("Bengaluru", railOnlyLines())
	require.NoError(t, err)

	cand, ok := g.ShortestPath("Whitefield", "Jayanagar", DefaultMaxTransfers)
	require.True(t, ok)

	assert.Equal(t, 1, cand.Transfers)
	assert.Contains(t, cand.Lines, "Purple Line")
	assert.Contains(t, cand.Lines, "Green Line")
	assert.Contains(t, cand.Stations, "Majestic")
}

func TestShortestPathSameStation(t *testing.T) {
	g := buildTestGraph(t)

	cand, ok := g.ShortestPath("Majestic", "kempegowda bus station", DefaultMaxTransfers)
	require.True(t, ok)

	assert.Equal(t, []string{"Majestic"}, cand.Stations)
	assert.Zero(t, cand.DistanceKm)
	assert.Zero(t, cand.TimeMinutes)
	assert.Zero(t, cand.CostEstimate)
	assert.Contains(t, cand.Description, "already at the destination")
}

func TestShortestPathUnresolvedEndpoint(t *testing.T) {
	g := buildTestGraph(t)

	_, ok := g.ShortestPath("Atlantis", "Majestic", DefaultMaxTransfers)
	assert.False(t, ok)

	_, ok = g.ShortestPath("Majestic", "Atlantis", DefaultMaxTransfers)
	assert.False(t, ok)
}

func TestShortestPathHonorsTransferBudget(t *testing.T) {
	g, err := Build("Bengaluru", railOnlyLines())
	require.NoError(t, err)

	_, ok := g.ShortestPath("Whitefield", "Jayanagar", 0)
	assert.False(t, ok, "cross-line trip needs one transfer")

	cand, ok := g.ShortestPath("Whitefield", "Jayanagar", 1)
	require.True(t, ok)
	assert.Equal(t, 1, cand.Transfers)

	// Zero applies to the alternatives search too; only negative means
	// "use the default".
	assert.Empty(t, g.KShortestPaths("Whitefield", "Jayanagar", 3, 0))
	assert.NotEmpty(t, g.KShortestPaths("Whitefield", "Jayanagar", 3, -1))

	sameLine, ok := g.ShortestPath("Whitefield", "MG Road", 0)
	require.True(t, ok, "same-line trip fits a zero budget")
	assert.Equal(t, 0, sameLine.Transfers)
}

func TestKShortestPaths(t *testing.T) {
	g := buildTestGraph(t)

	paths := g.KShortestPaths("Whitefield", "Majestic", 3, DefaultMaxTransfers)
	require.NotEmpty(t, paths)
	assert.LessOrEqual(t, len(paths), 3)

	for i, p := range paths {
		// Loop-free: no station repeats within a path.
		seen := map[string]bool{}
		for _, station := range p.Stations {
			assert.False(t, seen[station], "station %s repeats in path %d", station, i)
			seen[station] = true
		}
		// Sorted shortest-first.
		if i > 0 {
			assert.GreaterOrEqual(t, p.DistanceKm, paths[i-1].DistanceKm)
		}
	}

	// Alternatives are distinct.
	for i := 0; i < len(paths); i++ {
		for j := i + 1; j < len(paths); j++ {
			assert.NotEqual(t, paths[i].Stations, paths[j].Stations)
		}
	}
}

func TestKShortestPathsFirstIsShortest(t *testing.T) {
	g := buildTestGraph(t)

	best, ok := g.ShortestPath("Whitefield", "Majestic", DefaultMaxTransfers)
	require.True(t, ok)

	paths := g.KShortestPaths("Whitefield", "Majestic", 2, DefaultMaxTransfers)
	require.NotEmpty(t, paths)
	assert.Equal(t, best.Stations, paths[0].Stations)
}

func TestKShortestPathsUnknownStation(t *testing.T) {
	g := buildTestGraph(t)
	assert.Empty(t, g.KShortestPaths("Atlantis", "Majestic", 3, DefaultMaxTransfers))
}
