package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestClusterFarApartPairSplits verifies two points beyond epsKm land in
// separate clusters when nothing bridges them.
func TestClusterFarApartPairSplits(t *testing.T) {
	points := []Location{
		{Latitude: 12.90, Longitude: 77.50},
		{Latitude: 12.95, Longitude: 77.50}, // ~5.6 km north
	}

	groups := ClusterIndices(points, 3.0, 1)

	require.Len(t, groups, 2)
	assert.Equal(t, []int{0}, groups[0])
	assert.Equal(t, []int{1}, groups[1])
}

// TestClusterChainsMerge verifies expansion follows neighbor chains: A-B and
// B-C are within eps while A-C is not, and all three still end up together.
func TestClusterChainsMerge(t *testing.T) {
	points := []Location{
		{Latitude: 12.900, Longitude: 77.50},
		{Latitude: 12.918, Longitude: 77.50}, // ~2 km from A
		{Latitude: 12.936, Longitude: 77.50}, // ~2 km from B, ~4 km from A
	}

	groups := ClusterIndices(points, 3.0, 1)

	require.Len(t, groups, 1)
	assert.Equal(t, []int{0, 1, 2}, groups[0])
}

// TestClusterSingletonFallback verifies a point below the minPts density
// threshold becomes its own cluster rather than noise.
func TestClusterSingletonFallback(t *testing.T) {
	points := []Location{
		{Latitude: 13.50, Longitude: 78.00}, // isolated
		{Latitude: 12.900, Longitude: 77.50},
		{Latitude: 12.905, Longitude: 77.50}, // ~0.6 km from previous
	}

	groups := ClusterIndices(points, 3.0, 2)

	require.Len(t, groups, 2)
	assert.Equal(t, []int{0}, groups[0], "isolated point keeps its own cluster")
	assert.Equal(t, []int{1, 2}, groups[1])
}

// TestClusterPartitionComplete verifies every input index appears in exactly
// one group regardless of geometry.
func TestClusterPartitionComplete(t *testing.T) {
	points := []Location{
		{Latitude: 12.90, Longitude: 77.50},
		{Latitude: 12.91, Longitude: 77.51},
		{Latitude: 13.20, Longitude: 77.80},
		{Latitude: 12.905, Longitude: 77.505},
		{Latitude: 14.00, Longitude: 76.00},
	}

	groups := ClusterIndices(points, 3.0, 1)

	seen := make(map[int]int)
	for _, g := range groups {
		require.NotEmpty(t, g)
		for _, idx := range g {
			seen[idx]++
		}
	}
	assert.Len(t, seen, len(points))
	for idx, count := range seen {
		assert.Equal(t, 1, count, "index %d labeled more than once", idx)
	}
}

// TestClusterEmptyInput verifies nil input produces no groups.
func TestClusterEmptyInput(t *testing.T) {
	assert.Nil(t, ClusterIndices(nil, 3.0, 1))
}
