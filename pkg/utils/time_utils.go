package utils

import "time"

const (
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "15:04"
)

func NowUnixSeconds() int64 { return time.Now().Unix() }

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ValidTimeOfDay reports whether s is a well-formed HH:MM clock time.
func ValidTimeOfDay(s string) bool {
	_, err := time.Parse(TimeOfDayLayout, s)
	return err == nil
}

// EnumerateDates lists every date from start to end inclusive, formatted
// with DateLayout. Both arguments are expected at date resolution, as
// ParseDate returns them. End before start yields an empty slice.
func EnumerateDates(start, end time.Time) []string {
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, FormatDate(d))
	}
	return dates
}
