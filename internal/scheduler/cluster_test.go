package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClusterPOIsSeedBased(t *testing.T) {
	cons := Constraints{}.normalized()

	// b is ~1km from the seed (about 12 walking minutes), c is ~2km from
	// the seed but only ~1km from b. Star membership means c must not
	// ride into the seed's cluster through b.
	seed := poiAt("seed", 0, 0)
	b := poiAt("b", 0.009, 0)
	c := poiAt("c", 0.018, 0)

	clusters := clusterPOIs([]POI{seed, b, c}, cons, nil, ProfileWalking)
	require.Len(t, clusters, 2)
	require.Equal(t, []string{"seed", "b"}, poiIDs(clusters[0]))
	require.Equal(t, []string{"c"}, poiIDs(clusters[1]))
}

func TestClusterPOIsWithoutCoordinates(t *testing.T) {
	cons := Constraints{}.normalized()

	pois := []POI{
		{ID: "x", Name: "x"},
		{ID: "y", Name: "y"},
		{ID: "z", Name: "z"},
	}
	clusters := clusterPOIs(pois, cons, nil, ProfileWalking)
	require.Len(t, clusters, 3)
	for i, group := range clusters {
		require.Len(t, group, 1, "cluster %d", i)
	}
	require.Equal(t, []string{"x"}, poiIDs(clusters[0]))
	require.Equal(t, []string{"y"}, poiIDs(clusters[1]))
	require.Equal(t, []string{"z"}, poiIDs(clusters[2]))
}

func TestClusterPOIsOrdering(t *testing.T) {
	cons := Constraints{}.normalized()

	// Coordinate-less POIs sort behind those with coordinates, so "near"
	// seeds the first cluster even though "blind" arrives first.
	blind := POI{ID: "blind", Name: "blind"}
	near := poiAt("near", 0, 0)
	alsoNear := poiAt("alsoNear", 0.003, 0)

	clusters := clusterPOIs([]POI{blind, near, alsoNear}, cons, nil, ProfileWalking)
	require.Len(t, clusters, 2)
	require.Equal(t, []string{"near", "alsoNear"}, poiIDs(clusters[0]))
	require.Equal(t, []string{"blind"}, poiIDs(clusters[1]))

	flat := flattenClusters(clusters)
	require.Equal(t, []string{"near", "alsoNear", "blind"}, poiIDs(flat))
}

func TestClusterPOIsUsesMatrix(t *testing.T) {
	cons := Constraints{}.normalized()

	// Physically far apart, but the matrix reports a 5 minute hop, so
	// they cluster anyway. The threshold itself is inclusive.
	a := poiAt("a", 0, 0)
	b := poiAt("b", 1, 1)
	edge := poiAt("edge", 2, 2)
	m := TravelMatrix{
		POIKey("a"): {
			POIKey("b"):    300,
			POIKey("edge"): cons.MaxTravelMinutesInCluster * 60,
		},
	}

	clusters := clusterPOIs([]POI{a, b, edge}, cons, m, ProfileWalking)
	require.Len(t, clusters, 1)
	require.Equal(t, []string{"a", "b", "edge"}, poiIDs(clusters[0]))
}

func poiIDs(pois []POI) []string {
	ids := make([]string, 0, len(pois))
	for _, p := range pois {
		ids = append(ids, p.ID)
	}
	return ids
}
