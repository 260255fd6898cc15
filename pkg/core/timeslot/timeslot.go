// Package timeslot holds the date-key and HH:MM arithmetic shared by the
// whole engine. Nothing here returns an error: malformed values report
// ok=false and callers treat the range as non-matching.
package timeslot

import (
	"fmt"
	"time"

	"github.com/hostwell/shiftengine/pkg/core/model"
)

const (
	// MinutesPerDay is the exclusive upper bound for a time of day;
	// "24:00" parses to exactly this value.
	MinutesPerDay = 24 * 60

	dateLayout = "2006-01-02"
)

// ParseClock parses an HH:MM string to minutes since midnight.
// "24:00" yields 1440. Anything not matching two digits, a colon and two
// digits (or with out-of-range components) reports ok=false.
func ParseClock(s string) (int, bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	hours := int(s[0]-'0')*10 + int(s[1]-'0')
	mins := int(s[3]-'0')*10 + int(s[4]-'0')
	if mins > 59 {
		return 0, false
	}
	total := hours*60 + mins
	if total > MinutesPerDay {
		return 0, false
	}
	return total, true
}

// ParseDateKey parses a YYYY-MM-DD date key
func ParseDateKey(key string) (time.Time, bool) {
	t, err := time.ParseInLocation(dateLayout, key, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsDateKey reports whether key is a well-formed YYYY-MM-DD date
func IsDateKey(key string) bool {
	_, ok := ParseDateKey(key)
	return ok
}

// Combine builds the absolute instant for a date key plus a time of day.
// Minutes past 1440 roll into the following day.
func Combine(dateKey string, minutes int) (time.Time, bool) {
	day, ok := ParseDateKey(dateKey)
	if !ok {
		return time.Time{}, false
	}
	return day.Add(time.Duration(minutes) * time.Minute), true
}

// HoursBetween returns the elapsed hours from a to b (negative if b < a)
func HoursBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours()
}

// NextDay returns the date key of the day after the given key
func NextDay(dateKey string) (string, bool) {
	day, ok := ParseDateKey(dateKey)
	if !ok {
		return "", false
	}
	return day.AddDate(0, 0, 1).Format(dateLayout), true
}

// DateKeyOf formats an instant back to its YYYY-MM-DD date key
func DateKeyOf(t time.Time) string {
	return t.Format(dateLayout)
}

// NormalizeBucket clamps a bucket size to at least one minute
func NormalizeBucket(bucketMins int) int {
	if bucketMins < 1 {
		return 1
	}
	return bucketMins
}

// BucketKey produces the date-qualified slot key for an instant, flooring
// the time of day to the bucket size: "2025-01-06T08:15".
func BucketKey(t time.Time, bucketMins int) string {
	bucketMins = NormalizeBucket(bucketMins)
	minutes := t.Hour()*60 + t.Minute()
	minutes = (minutes / bucketMins) * bucketMins
	return fmt.Sprintf("%sT%02d:%02d", t.Format(dateLayout), minutes/60, minutes%60)
}

// Interval is a resolved absolute time interval
type Interval struct {
	Start time.Time
	End   time.Time
}

// ResolveRange resolves a start/end clock pair on a date to an absolute
// interval, pushing the end into the next day when it is numerically less
// than or equal to the start (the engine-wide cross-midnight rule).
func ResolveRange(dateKey, startClock, endClock string) (Interval, bool) {
	startMins, ok := ParseClock(startClock)
	if !ok {
		return Interval{}, false
	}
	endMins, ok := ParseClock(endClock)
	if !ok {
		return Interval{}, false
	}
	if endMins <= startMins {
		endMins += MinutesPerDay
	}
	start, ok := Combine(dateKey, startMins)
	if !ok {
		return Interval{}, false
	}
	end, _ := Combine(dateKey, endMins)
	return Interval{Start: start, End: end}, true
}

// fallbackClosingTime is the last resort when neither a per-day nor a
// default closing time is configured.
const fallbackClosingTime = "23:00"

// ResolveClosingTime returns the closing clock for a date, walking the
// fallback chain per-weekday -> default -> fallback constant. The offset
// minutes from the settings are added by ShiftBounds, not here.
func ResolveClosingTime(settings model.ScheduleSettings, dateKey string) string {
	if day, ok := ParseDateKey(dateKey); ok {
		if clock, exists := settings.ClosingTimeByDay[day.Weekday().String()]; exists {
			if _, valid := ParseClock(clock); valid {
				return clock
			}
		}
	}
	if _, valid := ParseClock(settings.DefaultClosingTime); valid {
		return settings.DefaultClosingTime
	}
	return fallbackClosingTime
}

// ShiftBounds resolves a shift's absolute start and end. The end falls back
// to the resolved closing time plus the closing offset when absent, and is
// pushed past midnight when it would not otherwise follow the start.
// Day-off shifts and shifts without a resolvable start report ok=false.
func ShiftBounds(shift model.Shift, settings model.ScheduleSettings) (Interval, bool) {
	if shift.IsDayOff {
		return Interval{}, false
	}
	startMins, ok := ParseClock(shift.StartTime)
	if !ok {
		return Interval{}, false
	}

	endClock := shift.EndTime
	offset := 0
	if endClock == "" {
		endClock = ResolveClosingTime(settings, shift.DateKey)
		offset = settings.ClosingOffsetMins
	}
	endMins, ok := ParseClock(endClock)
	if !ok {
		return Interval{}, false
	}
	endMins += offset
	if endMins <= startMins {
		endMins += MinutesPerDay
	}

	start, ok := Combine(shift.DateKey, startMins)
	if !ok {
		return Interval{}, false
	}
	end, _ := Combine(shift.DateKey, endMins)
	return Interval{Start: start, End: end}, true
}
