package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHaversineKm(t *testing.T) {
	// One degree of longitude on the equator.
	got := haversineKm(0, 0, 0, 1)
	require.InDelta(t, 111.195, got, 0.01)

	require.Zero(t, haversineKm(48.8566, 2.3522, 48.8566, 2.3522))
}

func TestHaversineSymmetry(t *testing.T) {
	pairs := [][4]float64{
		{48.8566, 2.3522, 51.5074, -0.1278},
		{10.7769, 106.7009, 21.0278, 105.8342},
		{-33.8688, 151.2093, 35.6762, 139.6503},
		{0, 0, 0.009, 0.009},
	}
	for _, p := range pairs {
		forward := haversineKm(p[0], p[1], p[2], p[3])
		backward := haversineKm(p[2], p[3], p[0], p[1])
		require.InDelta(t, forward, backward, 1e-9)
	}
}

func TestProfileSpeeds(t *testing.T) {
	tests := []struct {
		profile TransportProfile
		want    float64
	}{
		{ProfileWalking, 1.4},
		{ProfileCycling, 4.2},
		{ProfileDriving, 8.3},
		{TransportProfile("jetpack"), 1.4},
		{TransportProfile(""), 1.4},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.profile.speedMPS(), "profile %q", tt.profile)
	}
}

func TestEstimateSeconds(t *testing.T) {
	meters := haversineKm(0, 0, 0, 1) * 1000

	walking := estimateSeconds(0, 0, 0, 1, ProfileWalking)
	require.InDelta(t, meters/1.4, walking, 1e-6)

	driving := estimateSeconds(0, 0, 0, 1, ProfileDriving)
	require.InDelta(t, meters/8.3, driving, 1e-6)
	require.Less(t, driving, walking)
}

func TestTravelSecondsBetweenFallback(t *testing.T) {
	a := poiLocation(poiAt("a", 0, 0))
	b := poiLocation(poiAt("b", 0.009, 0))
	noCoords := poiLocation(POI{ID: "c"})

	// No matrix: estimate from coordinates.
	estimated := travelSecondsBetween(nil, a, b, ProfileWalking)
	require.Greater(t, estimated, 0.0)

	// Missing coordinates and no matrix entry: zero.
	require.Zero(t, travelSecondsBetween(nil, a, noCoords, ProfileWalking))

	// A matrix entry wins over the estimate.
	m := TravelMatrix{
		POIKey("a"): {POIKey("b"): 123},
	}
	require.Equal(t, 123.0, travelSecondsBetween(m, a, b, ProfileWalking))

	// The matrix also covers pairs that could not be estimated.
	m[POIKey("a")][POIKey("c")] = 60
	require.Equal(t, 60.0, travelSecondsBetween(m, a, noCoords, ProfileWalking))
}
