package scheduler

import "math"

// Scoring weights, applied on top of baseScore.
const (
	baseScore = 100.0

	overBudgetPenalty  = 50.0
	fillRewardWeight   = 20.0
	travelDeltaGrace   = 30.0
	travelDeltaMaxCost = 30.0

	foodAtCapPenalty   = 80.0
	foodNearCapPenalty = 20.0

	accommodationBonusWeight  = 15.0
	accommodationBonusMinutes = 10.0

	cohesionBonusWeight  = 30.0
	cohesionLooseBonus   = 10.0
	cohesionFarPenalty   = 15.0
	emptyDayBonus        = 5.0
)

// dayTravelMinutes models a day as one chain: accommodation to the first
// POI, then POI to POI in list order. POIs or accommodations without
// coordinates contribute zero-length legs unless the matrix knows them.
func dayTravelMinutes(pois []POI, accommodation *Accommodation, m TravelMatrix, profile TransportProfile) float64 {
	if len(pois) == 0 {
		return 0
	}
	var minutes float64
	if accommodation != nil {
		minutes += travelMinutesBetween(m, accommodationLocation(*accommodation), poiLocation(pois[0]), profile)
	}
	for i := 1; i < len(pois); i++ {
		minutes += travelMinutesBetween(m, poiLocation(pois[i-1]), poiLocation(pois[i]), profile)
	}
	return minutes
}

// appendTravelDeltaMinutes is the travel added by placing candidate at
// the end of the day: one new leg from the current tail (or from the
// accommodation when the day is still empty).
func appendTravelDeltaMinutes(pois []POI, accommodation *Accommodation, candidate POI, m TravelMatrix, profile TransportProfile) float64 {
	if len(pois) > 0 {
		return travelMinutesBetween(m, poiLocation(pois[len(pois)-1]), poiLocation(candidate), profile)
	}
	if accommodation != nil {
		return travelMinutesBetween(m, accommodationLocation(*accommodation), poiLocation(candidate), profile)
	}
	return 0
}

func totalDwellMinutes(pois []POI) int {
	var minutes int
	for _, p := range pois {
		minutes += p.DwellMinutes()
	}
	return minutes
}

func countFood(pois []POI) int {
	var n int
	for _, p := range pois {
		if p.IsFood() {
			n++
		}
	}
	return n
}

// scorePOIForDay rates appending candidate to a day holding dayPOIs.
// Higher is better. The day list is read-only here; only the engine's
// commit step mutates day state.
func scorePOIForDay(candidate POI, dayPOIs []POI, accommodation *Accommodation, cons Constraints, m TravelMatrix, profile TransportProfile) float64 {
	score := baseScore

	dwell := float64(totalDwellMinutes(dayPOIs))
	currentTravel := dayTravelMinutes(dayPOIs, accommodation, m, profile)
	travelDelta := appendTravelDeltaMinutes(dayPOIs, accommodation, candidate, m, profile)

	maxMinutes := cons.maxMinutesPerDay()
	projected := dwell + currentTravel + travelDelta
	if projected > maxMinutes {
		score -= overBudgetPenalty
	} else {
		score += projected / maxMinutes * fillRewardWeight
	}

	if travelDelta > travelDeltaGrace {
		score -= math.Min(travelDeltaMaxCost, travelDelta-travelDeltaGrace)
	}

	if candidate.IsFood() {
		switch n := countFood(dayPOIs); {
		case n >= cons.MaxFoodPerDay:
			score -= foodAtCapPenalty
		case n == cons.MaxFoodPerDay-1:
			score -= foodNearCapPenalty
		}
	}

	if accommodation != nil && accommodation.HasCoordinates() && candidate.HasCoordinates() {
		minutes := travelMinutesBetween(m, accommodationLocation(*accommodation), poiLocation(candidate), profile)
		if minutes <= accommodationBonusMinutes {
			score += accommodationBonusWeight * (1 - minutes/accommodationBonusMinutes)
		}
	}

	if len(dayPOIs) == 0 {
		score += emptyDayBonus
		return score
	}

	last := dayPOIs[len(dayPOIs)-1]
	minutes := travelMinutesBetween(m, poiLocation(last), poiLocation(candidate), profile)
	threshold := cons.MaxTravelMinutesInCluster
	switch {
	case minutes <= threshold:
		score += cohesionBonusWeight * (1 - minutes/threshold)
	case minutes <= 2*threshold:
		score += cohesionLooseBonus
	default:
		score -= cohesionFarPenalty
	}
	return score
}
