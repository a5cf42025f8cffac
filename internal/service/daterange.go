package service

import (
	"time"

	"gorm.io/datatypes"
)

// Calendar ranges accepted by the doctor appointment views
const (
	RangeDay   = "day"
	RangeWeek  = "week"
	RangeMonth = "month"
)

// AppointmentRange returns the first and last calendar day of the range around now.
// Weeks run Monday to Sunday. Unknown ranges fall back to the current day.
func AppointmentRange(rng string, now time.Time) (time.Time, time.Time) {
	today := startOfDay(now)

	switch rng {
	case RangeWeek:
		offset := (int(today.Weekday()) + 6) % 7
		from := today.AddDate(0, 0, -offset)
		return from, from.AddDate(0, 0, 6)
	case RangeMonth:
		from := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return from, from.AddDate(0, 1, -1)
	default:
		return today, today
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// today is the current UTC calendar day; dates are stored without a zone
func today() time.Time {
	return startOfDay(time.Now().UTC())
}

func timeOf(d datatypes.Date) time.Time {
	return time.Time(d)
}
