package scheduler

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

const (
	nearLimitRatio       = 0.9
	overloadedMeanFactor = 1.5
	overloadedMinCount   = 5
)

// buildSummaries aggregates each day and derives the warning list. All
// thresholds work on the same leg model scoring uses, so a day the
// scorer saw as full is the same day the summary flags.
func buildSummaries(days []*dayState, cons Constraints, m TravelMatrix, profile TransportProfile) ([]DaySummary, []Warning) {
	counts := make([]float64, len(days))
	for i, ds := range days {
		counts[i] = float64(len(ds.pois))
	}
	meanPerDay := stat.Mean(counts, nil)

	summaries := make([]DaySummary, 0, len(days))
	warnings := make([]Warning, 0)

	maxMinutes := cons.maxMinutesPerDay()
	for _, ds := range days {
		dwell := totalDwellMinutes(ds.pois)
		travel := dayTravelMinutes(ds.pois, ds.accommodation, m, profile)
		total := float64(dwell) + travel

		summary := DaySummary{
			Date:          ds.day.Date,
			DayNumber:     ds.day.DayNumber,
			POICount:      len(ds.pois),
			FoodCount:     countFood(ds.pois),
			DwellMinutes:  dwell,
			TravelMinutes: travel,
			TotalMinutes:  total,
		}
		if ds.accommodation != nil {
			summary.Accommodation = ds.accommodation.Name
		}
		summaries = append(summaries, summary)

		switch {
		case total > maxMinutes:
			warnings = append(warnings, Warning{
				Type:     WarningTimeExceeded,
				Severity: SeverityError,
				Message:  fmt.Sprintf("planned time %.0f min exceeds the %.0f min day budget", total, maxMinutes),
				Date:     ds.day.Date,
			})
		case total >= nearLimitRatio*maxMinutes:
			warnings = append(warnings, Warning{
				Type:     WarningTimeNearLimit,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("planned time %.0f min is close to the %.0f min day budget", total, maxMinutes),
				Date:     ds.day.Date,
			})
		}

		if summary.FoodCount > cons.MaxFoodPerDay {
			warnings = append(warnings, Warning{
				Type:     WarningFoodExceeded,
				Severity: SeverityError,
				Message:  fmt.Sprintf("%d food stops on one day, limit is %d", summary.FoodCount, cons.MaxFoodPerDay),
				Date:     ds.day.Date,
			})
		}

		if float64(summary.POICount) > overloadedMeanFactor*meanPerDay && summary.POICount >= overloadedMinCount {
			warnings = append(warnings, Warning{
				Type:     WarningOverloaded,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("%d POIs on one day, well above the trip average", summary.POICount),
				Date:     ds.day.Date,
			})
		}

		if ds.accommodation == nil || ds.accommodation.Name == "" {
			warnings = append(warnings, Warning{
				Type:     WarningNoAccommodation,
				Severity: SeverityInfo,
				Message:  "no accommodation set for this day",
				Date:     ds.day.Date,
			})
		}
	}
	return summaries, warnings
}

func buildStats(days []*dayState, totalPOIs, distributed, anchored int) Stats {
	stats := Stats{
		TotalPOIs:       totalPOIs,
		DistributedPOIs: distributed,
		AnchoredPOIs:    anchored,
	}

	var activeHours []float64
	for _, ds := range days {
		if len(ds.pois) == 0 {
			continue
		}
		stats.DaysUsed++
		activeHours = append(activeHours, float64(totalDwellMinutes(ds.pois))/60)
	}
	if len(activeHours) > 0 {
		stats.AvgActiveHoursPerDay = stat.Mean(activeHours, nil)
	}
	return stats
}
