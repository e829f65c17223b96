package scoring

import (
	"fmt"
	"math"
	"time"
)

// ActivityScoreLevel buckets the daily activity score.
type ActivityScoreLevel string

const (
	ActivityScoreHigh        ActivityScoreLevel = "High"
	ActivityScoreModerate    ActivityScoreLevel = "Moderate"
	ActivityScoreLowModerate ActivityScoreLevel = "Low-Moderate"
	ActivityScoreLow         ActivityScoreLevel = "Low"
)

// IntensityBreakdown splits today's active minutes into light, moderate, and
// vigorous bands. The three bands always sum to TotalActiveMinutes exactly.
// Estimated is true when ActiveMinutes was not reported and the total was
// inferred from activity level and steps.
type IntensityBreakdown struct {
	Date               string           `json:"date"`
	TotalActiveMinutes int              `json:"total_active_minutes"`
	LightMinutes       int              `json:"light_minutes"`
	ModerateMinutes    int              `json:"moderate_minutes"`
	VigorousMinutes    int              `json:"vigorous_minutes"`
	Targets            IntensityTargets `json:"targets"`
	Estimated          bool             `json:"estimated"`
	Explanation        string           `json:"explanation"`
}

// ActivityScoreResult is the 0-100 daily activity score with its level.
type ActivityScoreResult struct {
	Score         int                `json:"score"`
	Level         ActivityScoreLevel `json:"level"`
	Steps         int                `json:"steps"`
	ActiveMinutes int                `json:"active_minutes"`
	Explanation   string             `json:"explanation"`
}

// CalculateIntensityBreakdown derives today's intensity bands from the
// activity record and the day's shift type. When active minutes are reported
// they are used as the total; otherwise the total is estimated from the
// activity level's base minutes scaled by step count and capped. Step density
// (steps per active minute) nudges the band split toward vigorous when high
// and toward light when low.
func CalculateIntensityBreakdown(activity *ActivityEntry, shift ShiftType, now time.Time) IntensityBreakdown {
	result := IntensityBreakdown{
		Date:    DateKey(now),
		Targets: intensityTargetsFor(shift),
	}

	if activity == nil {
		result.Estimated = true
		result.Explanation = intensityExplanation(result)
		return result
	}

	level := ActivityModerate
	if activity.Level != nil {
		level = *activity.Level
	}
	steps := activity.Steps

	total := 0
	if activity.ActiveMinutes != nil && *activity.ActiveMinutes >= 0 {
		total = *activity.ActiveMinutes
	} else {
		total = estimateActiveMinutes(level, steps)
		result.Estimated = true
	}

	split := intensityProportions[level]
	if total > 0 {
		density := float64(steps) / float64(total)
		split = nudgeSplit(split, density)
	}

	// Light and moderate round; vigorous takes the remainder so the bands
	// always sum to the total exactly.
	result.TotalActiveMinutes = total
	result.LightMinutes = int(math.Round(float64(total) * split.Light))
	result.ModerateMinutes = int(math.Round(float64(total) * split.Moderate))
	result.VigorousMinutes = total - result.LightMinutes - result.ModerateMinutes
	if result.VigorousMinutes < 0 {
		result.ModerateMinutes += result.VigorousMinutes
		result.VigorousMinutes = 0
	}
	if result.ModerateMinutes < 0 {
		result.LightMinutes += result.ModerateMinutes
		result.ModerateMinutes = 0
	}

	result.Explanation = intensityExplanation(result)
	return result
}

// estimateActiveMinutes derives a total from the activity level's base
// minutes, scaled by step count and capped.
func estimateActiveMinutes(level ActivityLevel, steps int) int {
	base, ok := baseActiveMinutes[level]
	if !ok {
		base = baseActiveMinutes[ActivityModerate]
	}

	factor := 1.0
	switch {
	case steps > 10000:
		factor = 1.3
	case steps > 7000:
		factor = 1.15
	case steps > 0 && steps < 3000:
		factor = 0.7
	}

	return clampi(int(math.Round(float64(base)*factor)), 0, MaxEstimatedActiveMinutes)
}

// nudgeSplit shifts 10% of the minutes between bands when step density is far
// from typical walking cadence. High density looks like sustained brisk
// movement; low density looks like standing work.
func nudgeSplit(split intensitySplit, density float64) intensitySplit {
	const shift = 0.1
	switch {
	case density > StepDensityHigh:
		moved := math.Min(shift, split.Light)
		split.Light -= moved
		split.Moderate += moved / 2
		split.Vigorous += moved / 2
	case density < StepDensityLow:
		moved := math.Min(shift, split.Vigorous+split.Moderate)
		fromVigorous := math.Min(moved, split.Vigorous)
		split.Vigorous -= fromVigorous
		split.Moderate -= moved - fromVigorous
		split.Light += moved
	}
	return split
}

func intensityExplanation(b IntensityBreakdown) string {
	if b.TotalActiveMinutes == 0 {
		return "No activity recorded today. Even a short walk between tasks counts."
	}
	met := b.ModerateMinutes >= b.Targets.Moderate && b.VigorousMinutes >= b.Targets.Vigorous
	if met {
		return fmt.Sprintf("Solid movement today: %dm moderate and %dm vigorous activity hit your targets.", b.ModerateMinutes, b.VigorousMinutes)
	}
	return fmt.Sprintf("You logged %d active minutes today. Aim for %dm of moderate activity to hit your target.", b.TotalActiveMinutes, b.Targets.Moderate)
}

// CalculateActivityScore maps today's steps and active minutes to a 0-100
// score. The score starts from a neutral base and earns stepped bonuses, so a
// day with zero data sits at the base rather than at zero.
func CalculateActivityScore(activity *ActivityEntry, shift ShiftType, now time.Time) ActivityScoreResult {
	steps := 0
	if activity != nil {
		steps = activity.Steps
	}

	breakdown := CalculateIntensityBreakdown(activity, shift, now)
	activeMinutes := breakdown.TotalActiveMinutes

	score := 50.0

	switch {
	case steps >= 12000:
		score += 25
	case steps >= 10000:
		score += 20
	case steps >= 7000:
		score += 12
	case steps >= 5000:
		score += 6
	case steps > 0 && steps < 3000:
		score -= 10
	}

	switch {
	case activeMinutes >= 45:
		score += 20
	case activeMinutes >= 30:
		score += 12
	case activeMinutes >= 15:
		score += 5
	}

	total := clampi(int(math.Round(score)), 0, 100)
	level := activityScoreLevel(total)

	return ActivityScoreResult{
		Score:         total,
		Level:         level,
		Steps:         steps,
		ActiveMinutes: activeMinutes,
		Explanation:   activityScoreExplanation(level, steps, activeMinutes),
	}
}

func activityScoreLevel(score int) ActivityScoreLevel {
	switch {
	case score >= 70:
		return ActivityScoreHigh
	case score >= 50:
		return ActivityScoreModerate
	case score >= 30:
		return ActivityScoreLowModerate
	default:
		return ActivityScoreLow
	}
}

func activityScoreExplanation(level ActivityScoreLevel, steps, activeMinutes int) string {
	switch level {
	case ActivityScoreHigh:
		return fmt.Sprintf("Great activity day: %d steps and %d active minutes.", steps, activeMinutes)
	case ActivityScoreModerate:
		return fmt.Sprintf("A decent activity day with %d steps. A brisk walk would push it higher.", steps)
	case ActivityScoreLowModerate:
		return "Activity is on the low side today. Short movement breaks add up fast on shift."
	default:
		return "Very little movement logged today. Try a 10-minute walk before or after your shift."
	}
}
