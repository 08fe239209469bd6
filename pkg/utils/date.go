package utils

import (
	"strings"
	"time"
)

// DayNames lists lower-case weekday names indexed by time.Weekday.
var DayNames = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// Weekdays is monday through friday.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

// DayName returns the lower-case weekday name of t in UTC.
func DayName(t time.Time) string {
	return DayNames[t.UTC().Weekday()]
}

// ParseDayName maps a lower-case day name back to its weekday.
func ParseDayName(name string) (time.Weekday, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, d := range DayNames {
		if d == name {
			return time.Weekday(i), true
		}
	}
	return time.Sunday, false
}
