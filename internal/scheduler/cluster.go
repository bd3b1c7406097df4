package scheduler

// clusterPOIs groups unanchored POIs that are quick to reach from a
// common seed, so the greedy pass considers nearby places back to back.
// Membership is seed-based: a POI joins when its travel time to the seed
// is within the cluster threshold. It is deliberately not a transitive
// closure, which keeps clusters tight around their seed.
func clusterPOIs(pois []POI, cons Constraints, m TravelMatrix, profile TransportProfile) [][]POI {
	ordered := orderForClustering(pois)
	used := make([]bool, len(ordered))

	var clusters [][]POI
	for i, seed := range ordered {
		if used[i] {
			continue
		}
		used[i] = true
		group := []POI{seed}

		// A seed without coordinates stays a singleton. Otherwise it
		// would recruit the whole remainder through zero travel times.
		if seed.HasCoordinates() {
			seedLoc := poiLocation(seed)
			for j := i + 1; j < len(ordered); j++ {
				if used[j] || !ordered[j].HasCoordinates() {
					continue
				}
				minutes := travelMinutesBetween(m, seedLoc, poiLocation(ordered[j]), profile)
				if minutes <= cons.MaxTravelMinutesInCluster {
					used[j] = true
					group = append(group, ordered[j])
				}
			}
		}
		clusters = append(clusters, group)
	}
	return clusters
}

// orderForClustering puts POIs with coordinates ahead of those without,
// keeping the input order inside each group.
func orderForClustering(pois []POI) []POI {
	ordered := make([]POI, 0, len(pois))
	for _, p := range pois {
		if p.HasCoordinates() {
			ordered = append(ordered, p)
		}
	}
	for _, p := range pois {
		if !p.HasCoordinates() {
			ordered = append(ordered, p)
		}
	}
	return ordered
}

func flattenClusters(clusters [][]POI) []POI {
	var flat []POI
	for _, group := range clusters {
		flat = append(flat, group...)
	}
	return flat
}
