package scheduler

import (
	"strconv"
	"strings"
)

// TransportProfile selects the travel speed model used whenever a travel
// time has to be estimated from raw coordinates.
type TransportProfile string

const (
	ProfileWalking TransportProfile = "foot-walking"
	ProfileCycling TransportProfile = "cycling-regular"
	ProfileDriving TransportProfile = "driving-car"
)

const defaultDwellMinutes = 60

var foodCategoryMarkers = []string{"food", "restaurants", "restaurant", "cafe", "bar", "dining"}

// POI is a point of interest the engine has to place on some trip day.
// Coordinates are optional; a POI without them can still be scheduled, it
// just contributes nothing to travel times.
type POI struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	DurationMinutes int      `json:"duration_minutes,omitempty"`
	IsAnchored      bool     `json:"is_anchored"`
	AnchoredTime    string   `json:"anchored_time,omitempty"`
	ScheduledDate   string   `json:"scheduled_date,omitempty"`
}

func (p POI) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// DwellMinutes returns the visit duration, falling back to one hour when
// the POI does not carry one.
func (p POI) DwellMinutes() int {
	if p.DurationMinutes <= 0 {
		return defaultDwellMinutes
	}
	return p.DurationMinutes
}

// IsFood reports whether the category marks the POI as an eating stop.
func (p POI) IsFood() bool {
	category := strings.ToLower(p.Category)
	if category == "" {
		return false
	}
	for _, marker := range foodCategoryMarkers {
		if strings.Contains(category, marker) {
			return true
		}
	}
	return false
}

// Day is one plannable trip day. DayNumber is 1-indexed and Date uses the
// YYYY-MM-DD form everywhere.
type Day struct {
	Date      string `json:"date"`
	DayNumber int    `json:"day_number"`
}

// Accommodation is where the traveller sleeps on a given day number.
type Accommodation struct {
	DayNumber int      `json:"day_number"`
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (a Accommodation) HasCoordinates() bool {
	return a.Latitude != nil && a.Longitude != nil
}

// Constraints tune the engine. Zero values mean "use the default"; out of
// range values are clamped, and the result echoes what was applied.
type Constraints struct {
	MaxFoodPerDay             int     `json:"max_food_per_day"`
	MaxHoursPerDay            float64 `json:"max_hours_per_day"`
	MaxTravelMinutesInCluster float64 `json:"max_travel_minutes_in_cluster"`
}

const (
	defaultMaxFoodPerDay             = 2
	defaultMaxHoursPerDay            = 8
	defaultMaxTravelMinutesInCluster = 15

	minFoodPerDay  = 1
	maxFoodPerDay  = 4
	minHoursPerDay = 4
	maxHoursPerDay = 12
)

func (c Constraints) normalized() Constraints {
	if c.MaxFoodPerDay == 0 {
		c.MaxFoodPerDay = defaultMaxFoodPerDay
	}
	if c.MaxHoursPerDay == 0 {
		c.MaxHoursPerDay = defaultMaxHoursPerDay
	}
	if c.MaxTravelMinutesInCluster <= 0 {
		c.MaxTravelMinutesInCluster = defaultMaxTravelMinutesInCluster
	}
	if c.MaxFoodPerDay < minFoodPerDay {
		c.MaxFoodPerDay = minFoodPerDay
	}
	if c.MaxFoodPerDay > maxFoodPerDay {
		c.MaxFoodPerDay = maxFoodPerDay
	}
	if c.MaxHoursPerDay < minHoursPerDay {
		c.MaxHoursPerDay = minHoursPerDay
	}
	if c.MaxHoursPerDay > maxHoursPerDay {
		c.MaxHoursPerDay = maxHoursPerDay
	}
	return c
}

func (c Constraints) maxMinutesPerDay() float64 {
	return c.MaxHoursPerDay * 60
}

// LocationKind tags what a travel matrix key points at.
type LocationKind uint8

const (
	LocationPOI LocationKind = iota
	LocationAccommodation
)

// LocationKey identifies one endpoint in a travel matrix. POIs are keyed
// by id, accommodations by day number.
type LocationKey struct {
	Kind LocationKind
	Ref  string
}

func POIKey(id string) LocationKey {
	return LocationKey{Kind: LocationPOI, Ref: id}
}

func AccommodationKey(dayNumber int) LocationKey {
	return LocationKey{Kind: LocationAccommodation, Ref: strconv.Itoa(dayNumber)}
}

// String renders the wire form used by matrix producers: "poi_<id>" and
// "accom_<dayNumber>".
func (k LocationKey) String() string {
	switch k.Kind {
	case LocationAccommodation:
		return "accom_" + k.Ref
	default:
		return "poi_" + k.Ref
	}
}

// ParseLocationKey converts the wire form back into a key. The second
// return is false for strings that match neither prefix.
func ParseLocationKey(s string) (LocationKey, bool) {
	if ref, ok := strings.CutPrefix(s, "poi_"); ok && ref != "" {
		return POIKey(ref), true
	}
	if ref, ok := strings.CutPrefix(s, "accom_"); ok && ref != "" {
		if _, err := strconv.Atoi(ref); err == nil {
			return LocationKey{Kind: LocationAccommodation, Ref: ref}, true
		}
	}
	return LocationKey{}, false
}

// TravelMatrix holds precomputed pairwise durations in seconds. It is
// optional everywhere; a nil matrix simply makes every lookup miss.
type TravelMatrix map[LocationKey]map[LocationKey]float64

// Lookup returns the duration in seconds between two keys, and whether
// the matrix knows the pair at all.
func (m TravelMatrix) Lookup(from, to LocationKey) (float64, bool) {
	row, ok := m[from]
	if !ok {
		return 0, false
	}
	seconds, ok := row[to]
	return seconds, ok
}

// Input carries everything one scheduling run consumes. The engine never
// mutates it.
type Input struct {
	POIs           []POI
	Days           []Day
	Accommodations []Accommodation
	Constraints    Constraints
	Matrix         TravelMatrix
	Profile        TransportProfile
}

// Assignment maps one input POI onto a day. DayOrder is the 0-based
// position inside that day after the final reindex pass.
type Assignment struct {
	POIID        string `json:"poi_id"`
	Name         string `json:"name"`
	Date         string `json:"date"`
	DayOrder     int    `json:"day_order"`
	IsAnchored   bool   `json:"is_anchored"`
	AnchoredTime string `json:"anchored_time,omitempty"`
}

// DaySummary aggregates what ended up on a single day.
type DaySummary struct {
	Date          string  `json:"date"`
	DayNumber     int     `json:"day_number"`
	POICount      int     `json:"poi_count"`
	FoodCount     int     `json:"food_count"`
	DwellMinutes  int     `json:"dwell_minutes"`
	TravelMinutes float64 `json:"travel_minutes"`
	TotalMinutes  float64 `json:"total_minutes"`
	Accommodation string  `json:"accommodation,omitempty"`
}

type WarningSeverity string

const (
	SeverityError   WarningSeverity = "error"
	SeverityWarning WarningSeverity = "warning"
	SeverityInfo    WarningSeverity = "info"
)

const (
	WarningTimeExceeded    = "time_exceeded"
	WarningTimeNearLimit   = "time_near_limit"
	WarningFoodExceeded    = "food_exceeded"
	WarningOverloaded      = "overloaded"
	WarningNoAccommodation = "no_accommodation"
)

// Warning flags a capacity or comfort problem on a day. Warnings never
// block placement; an over-packed day schedules fine and reports here.
type Warning struct {
	Type     string          `json:"type"`
	Severity WarningSeverity `json:"severity"`
	Message  string          `json:"message"`
	Date     string          `json:"date,omitempty"`
}

// Stats summarizes a whole run. Active hours count dwell time only.
type Stats struct {
	TotalPOIs            int     `json:"total_pois"`
	DistributedPOIs      int     `json:"distributed_pois"`
	AnchoredPOIs         int     `json:"anchored_pois"`
	AvgActiveHoursPerDay float64 `json:"avg_active_hours_per_day"`
	DaysUsed             int     `json:"days_used"`
}

// Result is the full outcome of one scheduling run.
type Result struct {
	Success      bool         `json:"success"`
	Message      string       `json:"message"`
	Assignments  []Assignment `json:"assignments"`
	DaySummaries []DaySummary `json:"day_summaries"`
	Warnings     []Warning    `json:"warnings"`
	Stats        Stats        `json:"stats"`
	Constraints  Constraints  `json:"constraints"`
}
