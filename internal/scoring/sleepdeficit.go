package scoring

import (
	"fmt"
	"math"
	"time"
)

// DeficitCategory buckets the weekly sleep deficit.
type DeficitCategory string

const (
	DeficitSurplus DeficitCategory = "surplus"
	DeficitLow     DeficitCategory = "low"
	DeficitMedium  DeficitCategory = "medium"
	DeficitHigh    DeficitCategory = "high"
)

// DeficitDay is one day's contribution to the weekly deficit.
type DeficitDay struct {
	Date     string  `json:"date"`
	Label    string  `json:"label"`
	Required float64 `json:"required"`
	Actual   float64 `json:"actual"`
	Deficit  float64 `json:"deficit"`
}

// SleepDeficitResult is the weekly sleep deficit vs target.
// WeeklyDeficitHours is positive when behind target, negative in surplus.
type SleepDeficitResult struct {
	RequiredDailyHours float64         `json:"required_daily_hours"`
	WeeklyDeficitHours float64         `json:"weekly_deficit_hours"`
	Category           DeficitCategory `json:"category"`
	Daily              []DeficitDay    `json:"daily"`
	DaysWithSleep      int             `json:"days_with_sleep"`
	Explanation        string          `json:"explanation"`
}

// CalculateSleepDeficit aggregates the trailing 7-day sleep window against the
// nightly target. Days without logged sleep count as zero; with fewer than two
// logged days the number is still computed from the zero-filled data and the
// caller decides whether to surface "not enough data" messaging.
func CalculateSleepDeficit(entries []SleepEntry, targetHours float64, now time.Time) SleepDeficitResult {
	if targetHours <= 0 {
		targetHours = DefaultSleepTargetHours
	}

	buckets := DailySleepHours(entries, now, DeficitWindowDays)

	daily := make([]DeficitDay, 0, len(buckets))
	weekly := 0.0
	daysWithSleep := 0
	for _, b := range buckets {
		date, _ := time.Parse("2006-01-02", b.Date)
		day := DeficitDay{
			Date:     b.Date,
			Label:    date.Weekday().String()[:3],
			Required: targetHours,
			Actual:   round1(b.Hours),
			Deficit:  round1(targetHours - b.Hours),
		}
		if b.Hours > 0 {
			daysWithSleep++
		}
		weekly += targetHours - b.Hours
		daily = append(daily, day)
	}

	weekly = round1(weekly)

	result := SleepDeficitResult{
		RequiredDailyHours: targetHours,
		WeeklyDeficitHours: weekly,
		Category:           deficitCategory(weekly),
		Daily:              daily,
		DaysWithSleep:      daysWithSleep,
	}
	result.Explanation = deficitExplanation(result)
	return result
}

func deficitCategory(weekly float64) DeficitCategory {
	switch {
	case weekly <= 0:
		return DeficitSurplus
	case weekly <= DeficitLowMaxHours:
		return DeficitLow
	case weekly <= DeficitMediumMaxHours:
		return DeficitMedium
	default:
		return DeficitHigh
	}
}

func deficitExplanation(r SleepDeficitResult) string {
	switch r.Category {
	case DeficitSurplus:
		return "You are meeting or exceeding your weekly sleep target."
	case DeficitLow:
		return fmt.Sprintf("You are slightly behind target (%.1fh this week). A longer sleep block tonight closes the gap.", r.WeeklyDeficitHours)
	case DeficitMedium:
		return fmt.Sprintf("You are carrying %.1fh of sleep debt this week. Prioritise sleep on your next free day.", r.WeeklyDeficitHours)
	default:
		return fmt.Sprintf("You are %.1fh behind your weekly sleep target. Plan recovery sleep before your next run of shifts.", r.WeeklyDeficitHours)
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
