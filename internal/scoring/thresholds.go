package scoring

// All bucket boundaries, weights, and lookup tables used by the scorers live
// here as named constants so tests can assert on them directly instead of
// depending on literals buried in formulas.

const (
	// DefaultSleepTargetHours is the nightly sleep target when the profile
	// does not override it.
	DefaultSleepTargetHours = 7.5

	// DeficitWindowDays is the trailing window for the weekly sleep deficit.
	DeficitWindowDays = 7

	// Sleep deficit categories (weekly hours behind target).
	DeficitLowMaxHours    = 3.5
	DeficitMediumMaxHours = 7.0
)

const (
	// JetlagWindowDays is the trailing window for social jetlag.
	JetlagWindowDays = 14

	// Social jetlag categories (hours of midpoint shift).
	JetlagLowMaxHours      = 1.5
	JetlagModerateMaxHours = 3.5
)

// Schedule instability: shift-start standard deviation (hours) mapped to a
// 0-20 sub-score, piecewise linear between breakpoints. Larger spread never
// scores lower.
const (
	InstabilityWindowDays = 14

	InstabilityStdLow      = 2.0 // below this: 0 points
	InstabilityStdModerate = 4.0 // 2-4h: 5-10 points
	InstabilityStdHigh     = 6.0 // 4-6h: 10-15 points
	InstabilityStdSevere   = 8.0 // 6-8h: 15-20 points, >=8h: 20

	InstabilityMaxScore = 20
)

// ShiftLag sub-score ranges and level boundaries.
const (
	SleepDebtMaxScore    = 40
	MisalignmentMaxScore = 40

	// Weekly sleep debt (hours) breakpoints for the 0-40 debt sub-score.
	SleepDebtLowHours    = 3.0  // below: 0 points
	SleepDebtMediumHours = 7.0  // 3-7h: 10-20 points
	SleepDebtHighHours   = 14.0 // 7-14h: 20-35 points, >=14h: 40

	// Misalignment (hours) breakpoints for the 0-40 misalignment sub-score.
	MisalignLowHours    = 2.0
	MisalignMediumHours = 4.0
	MisalignHighHours   = 6.0
	MisalignSevereHours = 8.0

	ShiftLagLowMax      = 20
	ShiftLagModerateMax = 50
)

// Shift Rhythm sub-score ranges and blend weights.
const (
	RhythmSleepMax        = 30
	RhythmRegularityMax   = 25
	RhythmShiftPatternMax = 25
	RhythmRecoveryMax     = 20

	// Default regularity when there is too little data to measure spread.
	RhythmRegularityDefault = 15

	// Each shift-type flip in the window costs this many pattern points.
	RhythmFlipPenalty = 5

	// Blend weights when optional adherence signals are present. Weights are
	// renormalized over the signals actually supplied; meal timing is reported
	// but unweighted.
	RhythmBaseWeight      = 0.60
	RhythmNutritionWeight = 0.25
	RhythmActivityWeight  = 0.15
)

// Binge risk factor tables and level boundaries.
const (
	BingeMediumMin = 30
	BingeHighMin   = 70

	// Fatigue proxy (100 - shift rhythm total) breakpoints.
	FatigueHighMin     = 70.0 // +35
	FatigueElevatedMin = 50.0 // +25
	FatigueModerateMin = 30.0 // +12
)

// bingeActivityPoints maps the shift-reported activity level to its binge
// risk contribution. High physical demand raises risk through fatigue and
// missed meals.
var bingeActivityPoints = map[ActivityLevel]int{
	ActivityVeryLight: 0,
	ActivityLight:     2,
	ActivityModerate:  5,
	ActivityBusy:      10,
	ActivityIntense:   15,
}

// IntensityProportions distributes estimated active minutes across the
// light/moderate/vigorous bands per reported activity level.
type intensitySplit struct {
	Light, Moderate, Vigorous float64
}

var intensityProportions = map[ActivityLevel]intensitySplit{
	ActivityVeryLight: {Light: 0.9, Moderate: 0.1, Vigorous: 0},
	ActivityLight:     {Light: 0.7, Moderate: 0.3, Vigorous: 0},
	ActivityModerate:  {Light: 0.4, Moderate: 0.6, Vigorous: 0},
	ActivityBusy:      {Light: 0.2, Moderate: 0.65, Vigorous: 0.15},
	ActivityIntense:   {Light: 0.1, Moderate: 0.5, Vigorous: 0.4},
}

// baseActiveMinutes estimates total active minutes per activity level before
// step-count adjustment.
var baseActiveMinutes = map[ActivityLevel]int{
	ActivityVeryLight: 5,
	ActivityLight:     15,
	ActivityModerate:  25,
	ActivityBusy:      40,
	ActivityIntense:   60,
}

const (
	// MaxEstimatedActiveMinutes caps any active-minute estimate.
	MaxEstimatedActiveMinutes = 120

	// Steps-per-active-minute densities that nudge the band split.
	StepDensityHigh = 100.0
	StepDensityLow  = 30.0
)

// IntensityTargets are the per-band minute targets, shift-type aware:
// night shifts get lower defaults than day/off.
type IntensityTargets struct {
	Light, Moderate, Vigorous int
}

func intensityTargetsFor(shift ShiftType) IntensityTargets {
	if shift == ShiftNight {
		return IntensityTargets{Light: 8, Moderate: 12, Vigorous: 3}
	}
	return IntensityTargets{Light: 10, Moderate: 15, Vigorous: 5}
}

func clampf(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampi(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// mapRange linearly maps value from [inMin,inMax] to [outMin,outMax],
// clamping to the input range first.
func mapRange(value, inMin, inMax, outMin, outMax float64) float64 {
	span := inMax - inMin
	if span == 0 {
		span = 1
	}
	ratio := (clampf(value, min(inMin, inMax), max(inMin, inMax)) - inMin) / span
	return outMin + ratio*(outMax-outMin)
}
