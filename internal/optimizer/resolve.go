package optimizer

// clusterPlan is the resolved geometry and load of one cluster: the farmer
// to deliver to, the approximate route distance, and the load totals the
// vehicle evaluation runs against.
type clusterPlan struct {
	pickups  []Pickup
	farmer   Farmer
	routeKm  float64
	weightKg float64
	volumeM3 float64
}

// resolveCluster computes the centroid of a cluster, matches it to the
// nearest farmer with coordinates, and accumulates route distance and load
// totals. farmers must already be filtered to those with coordinates.
// Returns false when no farmer is available; the cluster then produces no
// suggestion.
func resolveCluster(pickups []Pickup, farmers []Farmer, densityKgPerM3 float64) (clusterPlan, bool) {
	plan := clusterPlan{pickups: pickups}
	if len(pickups) == 0 || len(farmers) == 0 {
		return plan, false
	}

	// Arithmetic-mean centroid. Not geodesically exact, but adequate for
	// nearest-farmer lookup at city scale.
	var sumLat, sumLng float64
	for _, p := range pickups {
		sumLat += *p.Lat
		sumLng += *p.Lng
	}
	centLat := sumLat / float64(len(pickups))
	centLng := sumLng / float64(len(pickups))

	// Nearest farmer by centroid distance. Strict-less comparison: the first
	// farmer in input order wins ties.
	best := -1
	bestDist := 0.0
	for i, f := range farmers {
		d := HaversineKm(centLat, centLng, *f.Lat, *f.Lng)
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	plan.farmer = farmers[best]

	// Route legs follow cluster input order; no stop reordering is attempted.
	// The final leg runs from the last pickup to the farmer.
	for i := 1; i < len(pickups); i++ {
		prev, cur := pickups[i-1], pickups[i]
		plan.routeKm += HaversineKm(*prev.Lat, *prev.Lng, *cur.Lat, *cur.Lng)
	}
	last := pickups[len(pickups)-1]
	plan.routeKm += HaversineKm(*last.Lat, *last.Lng, *plan.farmer.Lat, *plan.farmer.Lng)

	for _, p := range pickups {
		weight := 0.0
		if p.WeightKg != nil {
			weight = *p.WeightKg
		}
		plan.weightKg += weight

		if p.VolumeM3 != nil {
			plan.volumeM3 += *p.VolumeM3
		} else if densityKgPerM3 > 0 {
			plan.volumeM3 += weight / densityKgPerM3
		}
	}

	return plan, true
}
