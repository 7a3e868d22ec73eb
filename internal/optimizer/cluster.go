package optimizer

// ClusterIndices partitions points into groups of indices using density-based
// neighbor expansion. Two points are neighbors when their haversine distance
// is at most epsKm; a point's neighbor set includes itself.
//
// Points are processed in input order. An unlabeled point with at least
// minPts neighbors seeds a new cluster and the cluster grows breadth-first
// through every reachable neighbor chain; a point keeps the label of
// whichever expansion reaches it first. An unlabeled point with fewer than
// minPts neighbors is not discarded as noise: it becomes its own singleton
// cluster, so every input index appears in exactly one group.
//
// Groups are returned ordered by cluster discovery, with member indices in
// input order.
func ClusterIndices(points []Location, epsKm float64, minPts int) [][]int {
	n := len(points)
	if n == 0 {
		return nil
	}

	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}

	neighborsOf := func(i int) []int {
		var nbrs []int
		for j := 0; j < n; j++ {
			d := HaversineKm(points[i].Latitude, points[i].Longitude, points[j].Latitude, points[j].Longitude)
			if d <= epsKm {
				nbrs = append(nbrs, j)
			}
		}
		return nbrs
	}

	nextCluster := 0
	for i := 0; i < n; i++ {
		if labels[i] != -1 {
			continue
		}

		nbrs := neighborsOf(i)
		if len(nbrs) < minPts {
			// Below the density threshold: singleton cluster, not noise.
			labels[i] = nextCluster
			nextCluster++
			continue
		}

		cluster := nextCluster
		nextCluster++
		labels[i] = cluster

		queue := append([]int(nil), nbrs...)
		for qi := 0; qi < len(queue); qi++ {
			j := queue[qi]
			if labels[j] != -1 {
				continue
			}
			labels[j] = cluster
			jn := neighborsOf(j)
			if len(jn) >= minPts {
				queue = append(queue, jn...)
			}
		}
	}

	groups := make([][]int, nextCluster)
	for i, c := range labels {
		groups[c] = append(groups[c], i)
	}
	return groups
}
