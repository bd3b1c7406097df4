package scheduler

// location pairs a matrix key with optional coordinates so a travel time
// can fall back from matrix lookup to haversine estimation. Every travel
// duration the engine uses goes through travelSecondsBetween, which keeps
// clustering, scoring and summaries consistent with each other.
type location struct {
	key       LocationKey
	lat, lon  float64
	hasCoords bool
}

func poiLocation(p POI) location {
	loc := location{key: POIKey(p.ID)}
	if p.HasCoordinates() {
		loc.lat, loc.lon = *p.Latitude, *p.Longitude
		loc.hasCoords = true
	}
	return loc
}

func accommodationLocation(a Accommodation) location {
	loc := location{key: AccommodationKey(a.DayNumber)}
	if a.HasCoordinates() {
		loc.lat, loc.lon = *a.Latitude, *a.Longitude
		loc.hasCoords = true
	}
	return loc
}

func travelSecondsBetween(m TravelMatrix, from, to location, profile TransportProfile) float64 {
	if seconds, ok := m.Lookup(from.key, to.key); ok {
		return seconds
	}
	if !from.hasCoords || !to.hasCoords {
		return 0
	}
	return estimateSeconds(from.lat, from.lon, to.lat, to.lon, profile)
}

func travelMinutesBetween(m TravelMatrix, from, to location, profile TransportProfile) float64 {
	return travelSecondsBetween(m, from, to, profile) / 60
}
