package utils

import "time"

const DayLayout = "2006-01-02"

// DayKey returns the day string of t in the given GMT-X timezone, the name of
// the collection holding that day's city records. Unknown timezones fall back
// to UTC.
func DayKey(t time.Time, timezone string) string {
	loc := GetLocation(timezone)
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DayLayout)
}
