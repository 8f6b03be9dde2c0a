package timebucket

import (
	"fmt"
	"time"
)

// TZOffsetHours is the fixed offset of the business timezone relative to UTC.
// All bucket keys are derived in this zone regardless of server locale.
const TZOffsetHours = 8

const (
	dayKeyLayout  = "20060102"
	dayDateLayout = "2006-01-02"
	hourKeyLayout = "2006010215"
)

var businessZone = time.FixedZone(fmt.Sprintf("UTC+%d", TZOffsetHours), TZOffsetHours*3600)

// Zone returns the business timezone, for parsing timestamps reported in it.
func Zone() *time.Location {
	return businessZone
}

// BusinessTime shifts t into the business timezone. Every key derivation goes
// through this one conversion so day and hour rollover share the same
// calendar arithmetic.
func BusinessTime(t time.Time) time.Time {
	return t.In(businessZone)
}

// DayKey returns the 8-digit YYYYMMDD bucket key for t.
func DayKey(t time.Time) string {
	return BusinessTime(t).Format(dayKeyLayout)
}

// DayDate returns the YYYY-MM-DD display form of the day bucket, used as the
// daily summary table key.
func DayDate(t time.Time) string {
	return BusinessTime(t).Format(dayDateLayout)
}

// HourKey returns the 10-digit YYYYMMDDHH bucket key for t.
func HourKey(t time.Time) string {
	return BusinessTime(t).Format(hourKeyLayout)
}

// RecentDayKeys returns n day keys counting back from now, most-recent-first.
// The business-local calendar date is decremented directly; time.Date
// normalizes out-of-range days, so month and year boundaries roll over
// correctly.
func RecentDayKeys(n int, now time.Time) []string {
	return recentDays(n, now, dayKeyLayout)
}

// RecentDayDates is RecentDayKeys in YYYY-MM-DD display form.
func RecentDayDates(n int, now time.Time) []string {
	return recentDays(n, now, dayDateLayout)
}

func recentDays(n int, now time.Time, layout string) []string {
	bt := BusinessTime(now)
	y, m, d := bt.Date()
	keys := make([]string, 0, n)
	for i := 0; i < n; i++ {
		keys = append(keys, time.Date(y, m, d-i, 0, 0, 0, 0, businessZone).Format(layout))
	}
	return keys
}

// RecentHourKeys returns n hour keys counting back from now, most-recent-first.
func RecentHourKeys(n int, now time.Time) []string {
	bt := BusinessTime(now)
	y, m, d := bt.Date()
	h := bt.Hour()
	keys := make([]string, 0, n)
	for i := 0; i < n; i++ {
		keys = append(keys, time.Date(y, m, d, h-i, 0, 0, 0, businessZone).Format(hourKeyLayout))
	}
	return keys
}
