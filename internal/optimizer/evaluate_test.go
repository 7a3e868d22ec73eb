package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

// TestBuildTypeCapacities verifies per-type max capacity and candidate IDs.
func TestBuildTypeCapacities(t *testing.T) {
	vehicles := []Vehicle{
		{ID: "veh-1", VehicleType: "auto", CapacityKg: 350, CapacityM3: f64(2.0)},
		{ID: "veh-2", VehicleType: "auto", CapacityKg: 400, CapacityM3: nil},
		{ID: "veh-3", VehicleType: "truck", CapacityKg: 2000, CapacityM3: f64(12)},
	}

	caps := buildTypeCapacities(vehicles)

	require.Len(t, caps, 2)
	assert.Equal(t, 400.0, caps["auto"].maxKg)
	assert.Equal(t, 2.0, caps["auto"].maxM3, "nil volume does not reset the max")
	assert.Equal(t, []string{"veh-1", "veh-2"}, caps["auto"].vehicleIDs)
	assert.Equal(t, []string{"veh-3"}, caps["truck"].vehicleIDs)
}

// TestTripsForMonotonicity verifies increasing weight never decreases trips.
func TestTripsForMonotonicity(t *testing.T) {
	tc := &typeCapacity{maxKg: 400, maxM3: 2.5}

	prev := 0
	for weight := 0.0; weight <= 4000; weight += 50 {
		trips := tripsFor(weight, 0, tc)
		assert.GreaterOrEqual(t, trips, prev, "weight %.0f", weight)
		assert.GreaterOrEqual(t, trips, 1)
		prev = trips
	}
	assert.Equal(t, 1, tripsFor(400, 0, tc))
	assert.Equal(t, 2, tripsFor(401, 0, tc))
}

// TestTripsForZeroCapacityGuard verifies a zero capacity dimension never
// forces extra trips.
func TestTripsForZeroCapacityGuard(t *testing.T) {
	assert.Equal(t, 1, tripsFor(10000, 50, &typeCapacity{}))
	assert.Equal(t, 1, tripsFor(0, 0, &typeCapacity{maxKg: 400, maxM3: 2.5}))
}

// TestTripsForVolumeBindsOnlyWhenPublished verifies volume constrains trips
// only for types that report a positive volume capacity.
func TestTripsForVolumeBindsOnlyWhenPublished(t *testing.T) {
	noVolume := &typeCapacity{maxKg: 400}
	assert.Equal(t, 1, tripsFor(100, 99, noVolume))

	withVolume := &typeCapacity{maxKg: 400, maxM3: 2.5}
	assert.Equal(t, 4, tripsFor(100, 9.0, withVolume))
}

// TestEvaluateCheapestTypeWins verifies the rate entry with the lowest cost
// is selected.
func TestEvaluateCheapestTypeWins(t *testing.T) {
	rates := []Rate{
		{VehicleType: "truck", BaseFareRs: 500, PerKmRs: 30},
		{VehicleType: "auto", BaseFareRs: 100, PerKmRs: 15},
	}
	caps := map[string]*typeCapacity{
		"truck": {maxKg: 2000, vehicleIDs: []string{"veh-t1"}},
		"auto":  {maxKg: 400, vehicleIDs: []string{"veh-a1", "veh-a2"}},
	}

	choice, ok := evaluateVehicleChoice(rates, caps, 200, 0.7, 10)

	require.True(t, ok)
	assert.Equal(t, "auto", choice.vehicleType)
	assert.Equal(t, []string{"veh-a1", "veh-a2"}, choice.vehicleIDs)
	assert.Equal(t, 1, choice.trips)
	assert.InDelta(t, 250.0, choice.costRs, 1e-9) // 100 + 15*10
}

// TestEvaluateTieKeepsFirstRate verifies an equal-cost later entry does not
// replace the current best.
func TestEvaluateTieKeepsFirstRate(t *testing.T) {
	rates := []Rate{
		{VehicleType: "auto", BaseFareRs: 100, PerKmRs: 10},
		{VehicleType: "tempo", BaseFareRs: 100, PerKmRs: 10},
	}
	caps := map[string]*typeCapacity{
		"auto":  {maxKg: 400, vehicleIDs: []string{"veh-a"}},
		"tempo": {maxKg: 800, vehicleIDs: []string{"veh-t"}},
	}

	choice, ok := evaluateVehicleChoice(rates, caps, 100, 0.3, 5)

	require.True(t, ok)
	assert.Equal(t, "auto", choice.vehicleType)
}

// TestEvaluateSkipsTypesWithoutInventory verifies rate entries with no
// registered vehicles are ignored, and no match yields ok=false.
func TestEvaluateSkipsTypesWithoutInventory(t *testing.T) {
	rates := []Rate{
		{VehicleType: "auto", BaseFareRs: 100, PerKmRs: 15},
		{VehicleType: "truck", BaseFareRs: 500, PerKmRs: 30},
	}
	caps := map[string]*typeCapacity{
		"truck": {maxKg: 2000, vehicleIDs: []string{"veh-t1"}},
	}

	choice, ok := evaluateVehicleChoice(rates, caps, 100, 0.3, 5)
	require.True(t, ok)
	assert.Equal(t, "truck", choice.vehicleType)

	_, ok = evaluateVehicleChoice(rates, map[string]*typeCapacity{}, 100, 0.3, 5)
	assert.False(t, ok)
}
