package scoring

import "time"

// Shared fixtures for the calculator tests. All tests pin "now" to a fixed
// Monday noon so date bucketing is deterministic.

var testNow = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func intPtr(i int) *int             { return &i }
func floatPtr(f float64) *float64   { return &f }
func timePtr(t time.Time) *time.Time { return &t }

func levelPtr(l ActivityLevel) *ActivityLevel { return &l }

// sleepOn builds a sleep entry attributed to the given day offset from
// testNow (0 = today), starting at startHour:00 and lasting hours.
func sleepOn(daysAgo int, startHour int, hours float64) SleepEntry {
	day := testNow.AddDate(0, 0, -daysAgo)
	start := time.Date(day.Year(), day.Month(), day.Day(), startHour, 0, 0, 0, time.UTC)
	return SleepEntry{
		Date:          DateKey(day),
		Start:         start,
		End:           start.Add(time.Duration(hours * float64(time.Hour))),
		DurationHours: hours,
	}
}

// shiftOn builds a work shift on the given day offset starting at
// startHour:00 local.
func shiftOn(daysAgo int, typ ShiftType, startHour int) ShiftEntry {
	day := testNow.AddDate(0, 0, -daysAgo)
	start := time.Date(day.Year(), day.Month(), day.Day(), startHour, 0, 0, 0, time.UTC)
	return ShiftEntry{
		Date:  DateKey(day),
		Type:  typ,
		Start: &start,
	}
}
