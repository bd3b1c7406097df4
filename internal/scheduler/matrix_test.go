package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocationKeyWireForm(t *testing.T) {
	require.Equal(t, "poi_abc", POIKey("abc").String())
	require.Equal(t, "accom_3", AccommodationKey(3).String())

	key, ok := ParseLocationKey("poi_abc")
	require.True(t, ok)
	require.Equal(t, POIKey("abc"), key)

	key, ok = ParseLocationKey("accom_3")
	require.True(t, ok)
	require.Equal(t, AccommodationKey(3), key)

	for _, bad := range []string{"", "poi_", "accom_", "accom_x", "hotel_1", "poiabc"} {
		_, ok := ParseLocationKey(bad)
		require.False(t, ok, "expected %q to be rejected", bad)
	}
}

func TestTravelMatrixLookup(t *testing.T) {
	var nilMatrix TravelMatrix
	_, ok := nilMatrix.Lookup(POIKey("a"), POIKey("b"))
	require.False(t, ok)

	m := TravelMatrix{
		POIKey("a"): {
			POIKey("b"):         300,
			AccommodationKey(1): 120,
		},
	}

	seconds, ok := m.Lookup(POIKey("a"), POIKey("b"))
	require.True(t, ok)
	require.Equal(t, 300.0, seconds)

	seconds, ok = m.Lookup(POIKey("a"), AccommodationKey(1))
	require.True(t, ok)
	require.Equal(t, 120.0, seconds)

	_, ok = m.Lookup(POIKey("b"), POIKey("a"))
	require.False(t, ok, "lookup is directional, no row for b")

	_, ok = m.Lookup(POIKey("a"), POIKey("missing"))
	require.False(t, ok)
}
