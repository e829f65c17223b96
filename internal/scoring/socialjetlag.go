package scoring

import (
	"fmt"
	"math"
	"time"
)

// JetlagCategory buckets the circadian misalignment.
type JetlagCategory string

const (
	JetlagLow      JetlagCategory = "low"
	JetlagModerate JetlagCategory = "moderate"
	JetlagHigh     JetlagCategory = "high"
)

// SocialJetlagResult describes the shift between sleep timing on work days
// and free days. When InsufficientData is set the misalignment numbers are
// not meaningful and callers must not display them as measurements.
type SocialJetlagResult struct {
	CurrentMisalignmentHours       float64        `json:"current_misalignment_hours"`
	WeeklyAverageMisalignmentHours float64        `json:"weekly_average_misalignment_hours"`
	BaselineMidpointClock          float64        `json:"baseline_midpoint_clock"`
	CurrentMidpointClock           float64        `json:"current_midpoint_clock"`
	Category                       JetlagCategory `json:"category"`
	Explanation                    string         `json:"explanation"`
	InsufficientData               bool           `json:"insufficient_data"`
}

// CalculateSocialJetlag compares the average sleep midpoint on work days
// against the average on free days over the trailing window. A day counts as
// "work" when a day/night/other shift is logged for it; off and unlogged days
// are free. Requires at least one work day and one free day with sleep.
func CalculateSocialJetlag(sleep []SleepEntry, shifts []ShiftEntry, now time.Time) SocialJetlagResult {
	workDates := make(map[string]bool, len(shifts))
	for _, s := range shifts {
		if s.Type.IsWork() {
			workDates[s.Date] = true
		}
	}

	// One midpoint per day: earliest start to latest end across sessions.
	type span struct{ start, end time.Time }
	days := make(map[string]span)
	cutoff := DateKey(now.AddDate(0, 0, -JetlagWindowDays))
	for _, e := range sleep {
		if e.Date < cutoff || e.Date > DateKey(now) {
			continue
		}
		sp, ok := days[e.Date]
		if !ok {
			days[e.Date] = span{start: e.Start, end: e.End}
			continue
		}
		if e.Start.Before(sp.start) {
			sp.start = e.Start
		}
		if e.End.After(sp.end) {
			sp.end = e.End
		}
		days[e.Date] = sp
	}

	var workMids, freeMids []float64
	var workDayMids []dayMidpoint
	for date, sp := range days {
		mid := clockHours(sp.start.Add(sp.end.Sub(sp.start) / 2))
		if workDates[date] {
			workMids = append(workMids, mid)
			workDayMids = append(workDayMids, dayMidpoint{date: date, mid: mid})
		} else {
			freeMids = append(freeMids, mid)
		}
	}

	if len(workMids) == 0 || len(freeMids) == 0 {
		return SocialJetlagResult{
			Category:         JetlagLow,
			InsufficientData: true,
			Explanation:      "Not enough data to measure social jetlag yet. Log sleep on at least one work day and one free day.",
		}
	}

	baseline := circularMeanClock(freeMids)
	current := circularMeanClock(workMids)
	misalignment := round1(circularDistanceHours(current, baseline))

	// Weekly average: per-work-day misalignment over the trailing 7 days.
	weekCutoff := DateKey(now.AddDate(0, 0, -7))
	var weekly []float64
	for _, dm := range workDayMids {
		if dm.date >= weekCutoff {
			weekly = append(weekly, circularDistanceHours(dm.mid, baseline))
		}
	}
	weeklyAvg := misalignment
	if len(weekly) > 0 {
		sum := 0.0
		for _, w := range weekly {
			sum += w
		}
		weeklyAvg = round1(sum / float64(len(weekly)))
	}

	category := jetlagCategory(misalignment)

	return SocialJetlagResult{
		CurrentMisalignmentHours:       misalignment,
		WeeklyAverageMisalignmentHours: weeklyAvg,
		BaselineMidpointClock:          round1(baseline),
		CurrentMidpointClock:           round1(current),
		Category:                       category,
		Explanation:                    jetlagExplanation(category, misalignment),
	}
}

type dayMidpoint struct {
	date string
	mid  float64
}

// clockHours converts a timestamp to hours after midnight (0-24).
func clockHours(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

// circularDistanceHours is the shorter arc between two clock times on the
// 24h dial: 23:00 and 01:00 are 2h apart, not 22h.
func circularDistanceHours(a, b float64) float64 {
	d := math.Abs(a - b)
	d = math.Mod(d, 24)
	if d > 12 {
		d = 24 - d
	}
	return d
}

// circularMeanClock averages clock times on the 24h circle so that a mix of
// 23:30 and 00:30 midpoints averages to midnight rather than noon.
func circularMeanClock(hours []float64) float64 {
	var sinSum, cosSum float64
	for _, h := range hours {
		angle := h / 24 * 2 * math.Pi
		sinSum += math.Sin(angle)
		cosSum += math.Cos(angle)
	}
	angle := math.Atan2(sinSum, cosSum)
	h := angle / (2 * math.Pi) * 24
	if h < 0 {
		h += 24
	}
	return h
}

func jetlagCategory(hours float64) JetlagCategory {
	switch {
	case hours <= JetlagLowMaxHours:
		return JetlagLow
	case hours <= JetlagModerateMaxHours:
		return JetlagModerate
	default:
		return JetlagHigh
	}
}

func jetlagExplanation(category JetlagCategory, hours float64) string {
	switch category {
	case JetlagLow:
		return "Your sleep timing on work days stays close to your free-day rhythm."
	case JetlagModerate:
		return fmt.Sprintf("Your sleep midpoint shifts by around %.1f hours between work days and free days.", hours)
	default:
		return fmt.Sprintf("Your body clock is heavily shifted (~%.1fh) between work days and free days after recent rotations.", hours)
	}
}
