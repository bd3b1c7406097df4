package scheduler

import (
	"fmt"
	"math"
	"sort"
)

// Sort key for anchored POIs that somehow lack a time. "HH:MM" strings
// order lexicographically, so the sentinel sends them to the end of day.
const missingAnchorTimeSentinel = "23:59"

// dayState is the engine's working view of one day. The engine owns the
// poi list exclusively; scoring only ever reads it.
type dayState struct {
	day           Day
	accommodation *Accommodation
	pois          []POI
}

// BuildItinerary distributes every input POI across the trip days. It is
// pure and deterministic: same input, same result, no I/O. The run never
// refuses a POI; days that end up over budget are reported as warnings.
//
// The engine works in four phases: place anchored POIs on their fixed
// dates, cluster the rest by travel proximity, greedily commit each
// remaining POI to its best-scoring day, then reindex per-day positions.
func BuildItinerary(in Input) *Result {
	cons := in.Constraints.normalized()

	if len(in.POIs) == 0 || len(in.Days) == 0 {
		return &Result{
			Success:      true,
			Message:      "nothing to schedule",
			Assignments:  []Assignment{},
			DaySummaries: []DaySummary{},
			Warnings:     []Warning{},
			Constraints:  cons,
		}
	}

	days, byDate := buildDayStates(in.Days, in.Accommodations)

	anchored, floating := splitAnchored(in.POIs, byDate)
	assignments := placeAnchored(days, byDate, anchored)
	anchoredCount := len(assignments)

	candidates := flattenClusters(clusterPOIs(floating, cons, in.Matrix, in.Profile))
	assignments = append(assignments, placeGreedy(days, candidates, cons, in.Matrix, in.Profile)...)

	reindexDayOrders(days, assignments)

	summaries, warnings := buildSummaries(days, cons, in.Matrix, in.Profile)
	stats := buildStats(days, len(in.POIs), len(assignments), anchoredCount)

	return &Result{
		Success:      true,
		Message:      fmt.Sprintf("distributed %d POIs across %d days", len(assignments), stats.DaysUsed),
		Assignments:  assignments,
		DaySummaries: summaries,
		Warnings:     warnings,
		Stats:        stats,
		Constraints:  cons,
	}
}

func buildDayStates(days []Day, accommodations []Accommodation) ([]*dayState, map[string]*dayState) {
	states := make([]*dayState, 0, len(days))
	byDate := make(map[string]*dayState, len(days))
	for _, d := range days {
		ds := &dayState{day: d}
		for i := range accommodations {
			if accommodations[i].DayNumber == d.DayNumber {
				ds.accommodation = &accommodations[i]
				break
			}
		}
		states = append(states, ds)
		byDate[d.Date] = ds
	}
	return states, byDate
}

// splitAnchored partitions the input. A POI is anchor-placeable when it
// is anchored, carries a time, and its scheduled date names a known day;
// everything else, including anchored POIs with a stale date, falls
// through to the greedy pass so no POI is ever dropped.
func splitAnchored(pois []POI, byDate map[string]*dayState) (anchored, floating []POI) {
	for _, p := range pois {
		if p.IsAnchored && p.AnchoredTime != "" {
			if _, ok := byDate[p.ScheduledDate]; ok {
				anchored = append(anchored, p)
				continue
			}
		}
		floating = append(floating, p)
	}
	return anchored, floating
}

// placeAnchored pins anchored POIs to their scheduled dates. Dates are
// honored unconditionally: no capacity check, no conflict resolution.
// Each day list is then ordered by anchored time.
func placeAnchored(days []*dayState, byDate map[string]*dayState, anchored []POI) []Assignment {
	for _, p := range anchored {
		ds := byDate[p.ScheduledDate]
		ds.pois = append(ds.pois, p)
	}

	assignments := make([]Assignment, 0, len(anchored))
	for _, ds := range days {
		sort.SliceStable(ds.pois, func(i, j int) bool {
			return anchorSortKey(ds.pois[i]) < anchorSortKey(ds.pois[j])
		})
		for _, p := range ds.pois {
			assignments = append(assignments, Assignment{
				POIID:        p.ID,
				Name:         p.Name,
				Date:         ds.day.Date,
				IsAnchored:   p.IsAnchored,
				AnchoredTime: p.AnchoredTime,
			})
		}
	}
	return assignments
}

func anchorSortKey(p POI) string {
	if p.AnchoredTime == "" {
		return missingAnchorTimeSentinel
	}
	return p.AnchoredTime
}

// placeGreedy commits each candidate to the day that scores best at that
// moment. Scores are recomputed against the already-mutated day lists,
// so earlier commits shape later ones. Ties go to the earliest day.
func placeGreedy(days []*dayState, candidates []POI, cons Constraints, m TravelMatrix, profile TransportProfile) []Assignment {
	assignments := make([]Assignment, 0, len(candidates))
	for _, candidate := range candidates {
		best := 0
		bestScore := math.Inf(-1)
		for i, ds := range days {
			score := scorePOIForDay(candidate, ds.pois, ds.accommodation, cons, m, profile)
			if score > bestScore {
				bestScore = score
				best = i
			}
		}

		ds := days[best]
		ds.pois = append(ds.pois, candidate)
		assignments = append(assignments, Assignment{
			POIID:        candidate.ID,
			Name:         candidate.Name,
			Date:         ds.day.Date,
			IsAnchored:   candidate.IsAnchored,
			AnchoredTime: candidate.AnchoredTime,
		})
	}
	return assignments
}

// reindexDayOrders rewrites every assignment's DayOrder to its final
// 0-based position, walking each day list once. Positions are contiguous
// per day by construction.
func reindexDayOrders(days []*dayState, assignments []Assignment) {
	byPOI := make(map[string]*Assignment, len(assignments))
	for i := range assignments {
		byPOI[assignments[i].POIID] = &assignments[i]
	}
	for _, ds := range days {
		for pos, p := range ds.pois {
			if a, ok := byPOI[p.ID]; ok {
				a.DayOrder = pos
			}
		}
	}
}
