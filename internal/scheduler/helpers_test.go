package scheduler

func f64(v float64) *float64 {
	return &v
}

// poiAt builds a POI pinned to coordinates, offset in degrees latitude
// from the equator so tests can reason in round meter distances
// (one degree of latitude is about 111.195 km).
func poiAt(id string, lat, lon float64) POI {
	return POI{ID: id, Name: id, Latitude: f64(lat), Longitude: f64(lon)}
}

func hasWarning(result *Result, warningType string) bool {
	for _, w := range result.Warnings {
		if w.Type == warningType {
			return true
		}
	}
	return false
}

func assignmentFor(result *Result, poiID string) (Assignment, bool) {
	for _, a := range result.Assignments {
		if a.POIID == poiID {
			return a, true
		}
	}
	return Assignment{}, false
}
