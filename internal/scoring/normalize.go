package scoring

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Raw rows mirror the historical storage schemas: older rows carry
// start_ts/end_ts and a precomputed sleep_hours column, newer rows carry
// start_at/end_at. The normalizer is the only place that knows about the
// drift; nothing past this boundary sees the alternate field names.

// RawSleepRow is a sleep record as fetched, before canonicalization.
type RawSleepRow struct {
	Date       string     `json:"date,omitempty"`
	StartAt    *time.Time `json:"start_at,omitempty"`
	EndAt      *time.Time `json:"end_at,omitempty"`
	StartTS    *time.Time `json:"start_ts,omitempty"`
	EndTS      *time.Time `json:"end_ts,omitempty"`
	SleepHours *float64   `json:"sleep_hours,omitempty"`
	Quality    *int       `json:"quality,omitempty"`
}

// RawShiftRow is a rota record as fetched, before canonicalization.
type RawShiftRow struct {
	Date    string     `json:"date"`
	Type    string     `json:"type,omitempty"`
	Label   string     `json:"label,omitempty"`
	StartAt *time.Time `json:"start_at,omitempty"`
	EndAt   *time.Time `json:"end_at,omitempty"`
	StartTS *time.Time `json:"start_ts,omitempty"`
	EndTS   *time.Time `json:"end_ts,omitempty"`
}

// RawActivityRow is an activity record as fetched, before canonicalization.
type RawActivityRow struct {
	Date          string `json:"date"`
	Steps         *int   `json:"steps,omitempty"`
	ActiveMinutes *int   `json:"active_minutes,omitempty"`
	Level         string `json:"level,omitempty"`
}

// NormalizeSleep converts raw sleep rows into canonical entries sorted by
// date descending (most recent first), dropping rows without usable
// timestamps. Dropped rows are reported as warnings for the caller to log;
// they never abort the computation.
//
// The entry date is the local calendar day of the *start* timestamp. For
// shift workers the "day" a sleep belongs to is ambiguous around midnight;
// anchoring on when the sleep began keeps a post-night-shift morning sleep on
// the day the worker finished that shift.
func NormalizeSleep(rows []RawSleepRow, loc *time.Location) ([]SleepEntry, []string) {
	if loc == nil {
		loc = time.UTC
	}

	var entries []SleepEntry
	var warnings []string

	for i, row := range rows {
		start := coalesceTime(row.StartAt, row.StartTS)
		end := coalesceTime(row.EndAt, row.EndTS)

		if start == nil {
			warnings = append(warnings, fmt.Sprintf("sleep row %d: no start timestamp, dropped", i))
			continue
		}

		var duration float64
		switch {
		case row.SleepHours != nil:
			// An explicit duration column wins over derived values.
			duration = *row.SleepHours
		case end != nil:
			duration = end.Sub(*start).Hours()
		default:
			warnings = append(warnings, fmt.Sprintf("sleep row %d: no end timestamp or duration, dropped", i))
			continue
		}
		if duration < 0 {
			duration = 0
		}

		date := row.Date
		if date == "" {
			date = DateKey(start.In(loc))
		}

		entry := SleepEntry{
			Date:          date,
			Start:         *start,
			DurationHours: duration,
			Quality:       row.Quality,
		}
		if end != nil {
			entry.End = *end
		} else {
			entry.End = start.Add(time.Duration(duration * float64(time.Hour)))
		}

		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].Start.After(entries[j].Start)
	})

	return entries, warnings
}

// NormalizeShifts converts raw rota rows into canonical one-per-date entries.
// When the same date appears twice the later row wins (upsert semantics).
// The shift date comes from the stored date field, not from timestamps: rota
// days are calendar assignments and a night shift's start timestamp would
// otherwise drift the row across midnight.
func NormalizeShifts(rows []RawShiftRow) ([]ShiftEntry, []string) {
	var warnings []string
	byDate := make(map[string]ShiftEntry)

	for i, row := range rows {
		if row.Date == "" {
			warnings = append(warnings, fmt.Sprintf("shift row %d: missing date, dropped", i))
			continue
		}

		byDate[row.Date] = ShiftEntry{
			Date:  row.Date,
			Type:  shiftTypeFrom(row.Type, row.Label),
			Start: coalesceTime(row.StartAt, row.StartTS),
			End:   coalesceTime(row.EndAt, row.EndTS),
		}
	}

	entries := make([]ShiftEntry, 0, len(byDate))
	for _, e := range byDate {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })

	return entries, warnings
}

// NormalizeActivity converts raw activity rows into canonical one-per-date
// entries, most recent first. Missing steps default to zero.
func NormalizeActivity(rows []RawActivityRow) ([]ActivityEntry, []string) {
	var warnings []string
	byDate := make(map[string]ActivityEntry)

	for i, row := range rows {
		if row.Date == "" {
			warnings = append(warnings, fmt.Sprintf("activity row %d: missing date, dropped", i))
			continue
		}

		entry := ActivityEntry{
			Date:          row.Date,
			ActiveMinutes: row.ActiveMinutes,
		}
		if row.Steps != nil && *row.Steps > 0 {
			entry.Steps = *row.Steps
		}
		if lvl, ok := activityLevelFrom(row.Level); ok {
			entry.Level = &lvl
		} else if row.Level != "" {
			warnings = append(warnings, fmt.Sprintf("activity row %d: unknown level %q ignored", i, row.Level))
		}

		byDate[row.Date] = entry
	}

	entries := make([]ActivityEntry, 0, len(byDate))
	for _, e := range byDate {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })

	return entries, warnings
}

// DailySleepHours buckets sleep into per-day totals for the trailing window
// ending at now, zero-filling days without any logged sleep. Index 0 is
// today, index windowDays-1 the oldest day.
func DailySleepHours(entries []SleepEntry, now time.Time, windowDays int) []DailySleep {
	totals := make(map[string]float64, len(entries))
	for _, e := range entries {
		totals[e.Date] += e.DurationHours
	}

	days := make([]DailySleep, 0, windowDays)
	for i := 0; i < windowDays; i++ {
		date := DateKey(now.AddDate(0, 0, -i))
		days = append(days, DailySleep{Date: date, Hours: totals[date]})
	}
	return days
}

// DailySleep is one zero-filled daily sleep bucket.
type DailySleep struct {
	Date  string
	Hours float64
}

func coalesceTime(primary, fallback *time.Time) *time.Time {
	if primary != nil && !primary.IsZero() {
		return primary
	}
	if fallback != nil && !fallback.IsZero() {
		return fallback
	}
	return nil
}

func shiftTypeFrom(typ, label string) ShiftType {
	switch ShiftType(strings.ToLower(typ)) {
	case ShiftDay, ShiftNight, ShiftOff, ShiftOther:
		return ShiftType(strings.ToLower(typ))
	}

	// Legacy rows only carry a free-text label, e.g. "Night 12h" or "OFF".
	l := strings.ToLower(label)
	switch {
	case l == "" || l == "off" || strings.Contains(l, "rest"):
		return ShiftOff
	case strings.Contains(l, "night"):
		return ShiftNight
	case strings.Contains(l, "day") || strings.Contains(l, "morning") || strings.Contains(l, "early"):
		return ShiftDay
	default:
		return ShiftOther
	}
}

func activityLevelFrom(s string) (ActivityLevel, bool) {
	switch ActivityLevel(strings.ToLower(s)) {
	case ActivityVeryLight, ActivityLight, ActivityModerate, ActivityBusy, ActivityIntense:
		return ActivityLevel(strings.ToLower(s)), true
	}
	return "", false
}
