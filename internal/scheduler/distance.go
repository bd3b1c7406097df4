package scheduler

import "math"

const earthRadiusKm = 6371.0

// profile speeds in meters per second. Anything unrecognized is treated
// as walking, the slowest and therefore safest assumption.
const (
	walkingSpeedMPS = 1.4
	cyclingSpeedMPS = 4.2
	drivingSpeedMPS = 8.3
)

func (p TransportProfile) speedMPS() float64 {
	switch p {
	case ProfileCycling:
		return cyclingSpeedMPS
	case ProfileDriving:
		return drivingSpeedMPS
	default:
		return walkingSpeedMPS
	}
}

// haversineKm computes the great-circle distance between two coordinates.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// estimateSeconds turns a straight-line distance into a travel duration
// for the given profile.
func estimateSeconds(lat1, lon1, lat2, lon2 float64, profile TransportProfile) float64 {
	meters := haversineKm(lat1, lon1, lat2, lon2) * 1000
	return meters / profile.speedMPS()
}
