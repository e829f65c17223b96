package scoring

import (
	"math"
	"time"
)

// NutritionSnapshot carries today's nutrition-target adherence signals.
// Any field may be nil; absent signals simply don't contribute.
type NutritionSnapshot struct {
	CalorieTarget    *float64
	ConsumedCalories *float64
	ProteinTarget    *float64
	ProteinConsumed  *float64
	WaterTargetMl    *float64
	WaterConsumedMl  *float64
}

// ActivitySnapshot carries today's activity-target adherence signals.
type ActivitySnapshot struct {
	Steps             int
	StepTarget        int
	ActiveMinutes     *int
	ActiveMinutesGoal int
}

// MealWindow is a recommended meal slot with its actual logged time, when any.
type MealWindow struct {
	Slot        string
	WindowStart string // "HH:MM"
	WindowEnd   string // "HH:MM"
	ActualAt    *time.Time
}

// ShiftRhythmInputs bundles everything the rhythm composite can use. Sleep
// and shifts are the required signal families; the rest are optional and
// blend in when present.
type ShiftRhythmInputs struct {
	Sleep            []SleepEntry
	Shifts           []ShiftEntry
	Nutrition        *NutritionSnapshot
	Activity         *ActivitySnapshot
	MealTiming       []MealWindow
	TargetSleepHours float64
}

// ShiftRhythmResult is the broad daily composite. Sub-scores carry their own
// ranges (sleep 0-30, regularity 0-25, shift pattern 0-25, recovery 0-20);
// the optional adherence scores are 0-100 and nil when the signal was absent.
type ShiftRhythmResult struct {
	Date              string `json:"date"`
	SleepScore        int    `json:"sleep_score"`
	RegularityScore   int    `json:"regularity_score"`
	ShiftPatternScore int    `json:"shift_pattern_score"`
	RecoveryScore     int    `json:"recovery_score"`
	NutritionScore    *int   `json:"nutrition_score,omitempty"`
	ActivityScore     *int   `json:"activity_score,omitempty"`
	MealTimingScore   *int   `json:"meal_timing_score,omitempty"`
	TotalScore        int    `json:"total_score"`
	NoData            bool   `json:"no_data"`
	Explanation       string `json:"explanation"`
}

// CalculateShiftRhythm blends sleep adequacy, schedule regularity,
// shift-pattern load, and recovery into a 0-100 score, optionally folding in
// nutrition/activity adherence. With no sleep logs and no shift days at all
// it returns an explicit zero flagged NoData rather than a mid-range default,
// so new users aren't shown a score that means nothing.
func CalculateShiftRhythm(in ShiftRhythmInputs, now time.Time) ShiftRhythmResult {
	result := ShiftRhythmResult{Date: DateKey(now)}

	if len(in.Sleep) == 0 && len(in.Shifts) == 0 {
		result.NoData = true
		result.Explanation = "No rhythm data yet. Log sleep or shifts to start tracking your Shift Rhythm."
		return result
	}

	target := in.TargetSleepHours
	if target <= 0 {
		target = DefaultSleepTargetHours
	}

	recent := trailingSleep(in.Sleep, now, 7)

	result.SleepScore = rhythmSleepScore(recent, target)
	result.RegularityScore = rhythmRegularityScore(recent)
	result.ShiftPatternScore = rhythmShiftPatternScore(in.Shifts, now)
	result.RecoveryScore = rhythmRecoveryScore(recent)

	base := float64(result.SleepScore + result.RegularityScore + result.ShiftPatternScore + result.RecoveryScore)

	// Optional adherence signals blend against the base with renormalized
	// weights. Meal timing is scored for display but stays out of the total,
	// matching how the product has always weighted it.
	weightedSum := base * RhythmBaseWeight
	weightTotal := RhythmBaseWeight

	if in.Nutrition != nil {
		score := nutritionAdherenceScore(*in.Nutrition)
		result.NutritionScore = &score
		weightedSum += float64(score) * RhythmNutritionWeight
		weightTotal += RhythmNutritionWeight
	}
	if in.Activity != nil {
		score := activityAdherenceScore(*in.Activity)
		result.ActivityScore = &score
		weightedSum += float64(score) * RhythmActivityWeight
		weightTotal += RhythmActivityWeight
	}
	if len(in.MealTiming) > 0 {
		score := mealTimingScore(in.MealTiming)
		result.MealTimingScore = &score
	}

	result.TotalScore = clampi(int(math.Round(weightedSum/weightTotal)), 0, 100)
	result.Explanation = rhythmExplanation(result.TotalScore)
	return result
}

func trailingSleep(entries []SleepEntry, now time.Time, days int) []SleepEntry {
	cutoff := DateKey(now.AddDate(0, 0, -days))
	var out []SleepEntry
	for _, e := range entries {
		if e.Date >= cutoff && e.Date <= DateKey(now) {
			out = append(out, e)
		}
	}
	return out
}

// rhythmSleepScore: average duration vs target mapped to 0-30, with a timing
// bonus for conventional bedtimes and a penalty for mid-day sleep onsets.
func rhythmSleepScore(recent []SleepEntry, target float64) int {
	if len(recent) == 0 {
		return 0
	}
	sum := 0.0
	for _, e := range recent {
		sum += e.DurationHours
	}
	avg := sum / float64(len(recent))

	score := clampf(avg/8*float64(RhythmSleepMax), 0, float64(RhythmSleepMax))

	// Most recent sleep's start hour nudges the score.
	startHour := recent[0].Start.Hour()
	if startHour >= 22 || startHour <= 2 {
		score += 5
	}
	if startHour >= 10 && startHour <= 15 {
		score -= 5
	}

	return clampi(int(math.Round(score)), 0, RhythmSleepMax)
}

// rhythmRegularityScore: bedtime spread mapped to 0-25; 0h std scores full
// marks, 3h+ scores zero. Too little data gets the neutral default.
func rhythmRegularityScore(recent []SleepEntry) int {
	if len(recent) <= 2 {
		return RhythmRegularityDefault
	}

	var hours []float64
	for _, e := range recent {
		hours = append(hours, clockHours(e.Start))
	}

	mean := 0.0
	for _, h := range hours {
		mean += h
	}
	mean /= float64(len(hours))

	variance := 0.0
	for _, h := range hours {
		variance += (h - mean) * (h - mean)
	}
	variance /= float64(len(hours))
	std := math.Sqrt(variance)

	score := mapRange(std, 0, 3, float64(RhythmRegularityMax), 0)
	return clampi(int(math.Round(score)), 0, RhythmRegularityMax)
}

// rhythmShiftPatternScore: each shift-type flip in the trailing week costs
// RhythmFlipPenalty points off the 0-25 pattern score. Day/night alternation
// burns the whole budget; a steady rotation keeps it.
func rhythmShiftPatternScore(shifts []ShiftEntry, now time.Time) int {
	cutoff := DateKey(now.AddDate(0, 0, -7))
	var window []ShiftEntry
	for _, s := range shifts {
		if s.Date >= cutoff && s.Date <= DateKey(now) {
			window = append(window, s)
		}
	}
	if len(window) < 2 {
		return RhythmShiftPatternMax
	}

	// Oldest first for flip counting.
	for i, j := 0, len(window)-1; i < j; i, j = i+1, j-1 {
		window[i], window[j] = window[j], window[i]
	}

	flips := 0
	for i := 1; i < len(window); i++ {
		if window[i].Type != window[i-1].Type {
			flips++
		}
	}

	return clampi(RhythmShiftPatternMax-flips*RhythmFlipPenalty, 0, RhythmShiftPatternMax)
}

// rhythmRecoveryScore: sleep quality as a recovery proxy, 0-20.
func rhythmRecoveryScore(recent []SleepEntry) int {
	if len(recent) == 0 {
		return 0
	}
	quality := 3
	if recent[0].Quality != nil {
		quality = clampi(*recent[0].Quality, 1, 5)
	}
	score := float64(quality) / 5 * 15
	if quality <= 2 {
		score -= 5
	}
	return clampi(int(math.Round(score)), 0, RhythmRecoveryMax)
}

func nutritionAdherenceScore(n NutritionSnapshot) int {
	var scores []float64

	if n.CalorieTarget != nil && *n.CalorieTarget > 0 && n.ConsumedCalories != nil {
		ratio := *n.ConsumedCalories / *n.CalorieTarget
		scores = append(scores, mapRange(ratio, 0.7, 1.1, 50, 100))
	}
	if n.ProteinTarget != nil && *n.ProteinTarget > 0 && n.ProteinConsumed != nil {
		ratio := *n.ProteinConsumed / *n.ProteinTarget
		scores = append(scores, mapRange(ratio, 0.8, 1.1, 60, 100))
	}
	if n.WaterTargetMl != nil && *n.WaterTargetMl > 0 && n.WaterConsumedMl != nil {
		ratio := *n.WaterConsumedMl / *n.WaterTargetMl
		scores = append(scores, mapRange(ratio, 0.6, 1.0, 55, 100))
	}

	if len(scores) == 0 {
		return 80
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return clampi(int(math.Round(sum/float64(len(scores)))), 0, 100)
}

func activityAdherenceScore(a ActivitySnapshot) int {
	stepGoal := a.StepTarget
	if stepGoal <= 0 {
		stepGoal = 10000
	}
	stepsScore := mapRange(float64(a.Steps)/float64(stepGoal), 0.5, 1.1, 60, 100)

	minutesScore := 80.0
	if a.ActiveMinutesGoal > 0 && a.ActiveMinutes != nil {
		ratio := float64(*a.ActiveMinutes) / float64(a.ActiveMinutesGoal)
		minutesScore = mapRange(ratio, 0.5, 1.1, 60, 100)
	}

	return clampi(int(math.Round(stepsScore*0.75+minutesScore*0.25)), 0, 100)
}

func mealTimingScore(windows []MealWindow) int {
	var scores []float64
	for _, w := range windows {
		if w.ActualAt == nil {
			continue
		}
		start, okS := parseClock(w.WindowStart, *w.ActualAt)
		end, okE := parseClock(w.WindowEnd, *w.ActualAt)
		if !okS || !okE {
			continue
		}
		at := *w.ActualAt
		if !at.Before(start) && !at.After(end) {
			scores = append(scores, 95)
			continue
		}
		diffMinutes := math.Abs(at.Sub(start).Minutes())
		scores = append(scores, mapRange(diffMinutes, 30, 180, 90, 60))
	}

	if len(scores) == 0 {
		return 75
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return clampi(int(math.Round(sum/float64(len(scores)))), 0, 100)
}

func parseClock(hhmm string, onDay time.Time) (time.Time, bool) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(onDay.Year(), onDay.Month(), onDay.Day(), t.Hour(), t.Minute(), 0, 0, onDay.Location()), true
}

func rhythmExplanation(total int) string {
	switch {
	case total >= 85:
		return "Your rhythm is humming. Keep stacking consistent days."
	case total >= 70:
		return "Your rhythm is syncing well today. Stay consistent."
	case total >= 55:
		return "Your rhythm is holding, but sleep and meal timing could be tighter."
	case total >= 40:
		return "Your rhythm is off today. Focus on a consistent sleep window and lighter late meals."
	default:
		return "Rhythm reset needed. Prioritise sleep and your pre-shift routine tonight."
	}
}
