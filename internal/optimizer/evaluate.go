package optimizer

import "math"

// typeCapacity is the optimistic per-type view of the fleet: the largest
// weight and volume capacity seen across vehicles of the type, plus every
// vehicle ID of the type as candidates for manual assignment.
type typeCapacity struct {
	maxKg      float64
	maxM3      float64
	vehicleIDs []string
}

// buildTypeCapacities folds the vehicle inventory into per-type capacity
// records. A vehicle without a volume capacity contributes nothing to maxM3;
// a type whose maxM3 stays zero is treated as unconstrained by volume.
func buildTypeCapacities(vehicles []Vehicle) map[string]*typeCapacity {
	caps := make(map[string]*typeCapacity, len(vehicles))
	for _, v := range vehicles {
		tc, ok := caps[v.VehicleType]
		if !ok {
			tc = &typeCapacity{}
			caps[v.VehicleType] = tc
		}
		if v.CapacityKg > tc.maxKg {
			tc.maxKg = v.CapacityKg
		}
		if v.CapacityM3 != nil && *v.CapacityM3 > tc.maxM3 {
			tc.maxM3 = *v.CapacityM3
		}
		tc.vehicleIDs = append(tc.vehicleIDs, v.ID)
	}
	return caps
}

// tripsFor computes how many trips a vehicle type needs for the given load.
// A zero capacity in either dimension never forces extra trips from that
// dimension; the result is always at least 1.
func tripsFor(weightKg, volumeM3 float64, tc *typeCapacity) int {
	byWeight := 1
	if tc.maxKg > 0 {
		byWeight = int(math.Ceil(weightKg / tc.maxKg))
	}
	byVolume := 1
	if tc.maxM3 > 0 {
		byVolume = int(math.Ceil(volumeM3 / tc.maxM3))
	}
	trips := byWeight
	if byVolume > trips {
		trips = byVolume
	}
	if trips < 1 {
		trips = 1
	}
	return trips
}

// vehicleChoice is the winning rate-card evaluation for a cluster.
type vehicleChoice struct {
	vehicleType string
	vehicleIDs  []string
	trips       int
	costRs      float64
}

// evaluateVehicleChoice walks the rate card in input order and costs each
// vehicle type that has registered inventory. The cheapest type wins; the
// strict-less comparison means an earlier rate entry keeps ties. Returns
// false when no rate entry has a matching vehicle type.
func evaluateVehicleChoice(rates []Rate, caps map[string]*typeCapacity, weightKg, volumeM3, routeKm float64) (vehicleChoice, bool) {
	var best vehicleChoice
	found := false
	for _, r := range rates {
		tc, ok := caps[r.VehicleType]
		if !ok {
			continue
		}
		trips := tripsFor(weightKg, volumeM3, tc)
		cost := float64(trips) * (r.BaseFareRs + r.PerKmRs*routeKm)
		if !found || cost < best.costRs {
			best = vehicleChoice{
				vehicleType: r.VehicleType,
				vehicleIDs:  tc.vehicleIDs,
				trips:       trips,
				costRs:      cost,
			}
			found = true
		}
	}
	return best, found
}
