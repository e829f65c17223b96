// Package scoring implements the circadian/shift health scoring engine.
//
// Every function in this package is pure and deterministic: inputs are plain
// structs plus an explicit "now", outputs are result structs, and nothing here
// touches a clock, database, or network. Callers fetch the raw rows, run the
// normalizer, and persist or render the results.
package scoring

import "time"

// ShiftType is the coarse classification of a rota day.
type ShiftType string

const (
	ShiftDay   ShiftType = "day"
	ShiftNight ShiftType = "night"
	ShiftOff   ShiftType = "off"
	ShiftOther ShiftType = "other"
)

// IsWork reports whether the shift type counts as a work day.
// Unlogged days are treated as free days by the callers.
func (s ShiftType) IsWork() bool {
	return s == ShiftDay || s == ShiftNight || s == ShiftOther
}

// ActivityLevel is the shift-reported physical demand of a work day.
type ActivityLevel string

const (
	ActivityVeryLight ActivityLevel = "very_light"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityBusy      ActivityLevel = "busy"
	ActivityIntense   ActivityLevel = "intense"
)

// SleepEntry is one canonical sleep session.
// Date is the local calendar day the session belongs to (YYYY-MM-DD),
// anchored on the start timestamp; see NormalizeSleep.
type SleepEntry struct {
	Date          string
	Start         time.Time
	End           time.Time
	DurationHours float64
	Quality       *int // 1-5 when reported
}

// ShiftEntry is one canonical rota day. At most one per date.
type ShiftEntry struct {
	Date  string
	Type  ShiftType
	Start *time.Time
	End   *time.Time
}

// ActivityEntry is one canonical activity day. At most one per date.
type ActivityEntry struct {
	Date          string
	Steps         int
	ActiveMinutes *int
	Level         *ActivityLevel
}

// DateKey formats a timestamp as the canonical YYYY-MM-DD date key.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
