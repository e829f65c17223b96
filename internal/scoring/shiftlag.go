package scoring

import (
	"fmt"
	"math"
	"time"
)

// ShiftLagLevel buckets the composite ShiftLag score.
type ShiftLagLevel string

const (
	ShiftLagLevelLow      ShiftLagLevel = "low"
	ShiftLagLevelModerate ShiftLagLevel = "moderate"
	ShiftLagLevelHigh     ShiftLagLevel = "high"
)

// ShiftLagDrivers names the three contributing factors. All three are always
// populated; a zero contribution still gets a displayable "on track" string.
type ShiftLagDrivers struct {
	SleepDebt    string `json:"sleep_debt"`
	Misalignment string `json:"misalignment"`
	Instability  string `json:"instability"`
}

// ShiftLagResult is the jet-lag-like composite for shift work: sleep debt
// (0-40) + circadian misalignment (0-40) + schedule instability (0-20),
// clamped to 0-100. When InsufficientData is set the score is not asserted
// as a measurement.
type ShiftLagResult struct {
	Score              int             `json:"score"`
	Level              ShiftLagLevel   `json:"level"`
	SleepDebtScore     int             `json:"sleep_debt_score"`
	MisalignmentScore  int             `json:"misalignment_score"`
	InstabilityScore   int             `json:"instability_score"`
	SleepDebtHours     float64         `json:"sleep_debt_hours"`
	MisalignmentHours  float64         `json:"misalignment_hours"`
	VariabilityHours   float64         `json:"variability_hours"`
	Drivers            ShiftLagDrivers `json:"drivers"`
	Explanation        string          `json:"explanation"`
	Recommendations    []string        `json:"recommendations"`
	InsufficientData   bool            `json:"insufficient_data"`
}

// CalculateShiftLag combines the sleep deficit, social jetlag, and schedule
// instability calculators into the 0-100 composite. With no sleep and no
// shift history at all it returns a whole-result insufficiency sentinel
// instead of a misleading zero.
func CalculateShiftLag(sleep []SleepEntry, shifts []ShiftEntry, targetHours float64, now time.Time) ShiftLagResult {
	if len(sleep) == 0 && len(shifts) == 0 {
		return ShiftLagResult{
			Level:            ShiftLagLevelLow,
			InsufficientData: true,
			Explanation:      "Unable to calculate ShiftLag yet. Log sleep and your rota to unlock it.",
			Drivers: ShiftLagDrivers{
				SleepDebt:    "No data",
				Misalignment: "No data",
				Instability:  "No data",
			},
			Recommendations: []string{"Log your shifts and sleep for a few days to get a ShiftLag score."},
		}
	}

	deficit := CalculateSleepDeficit(sleep, targetHours, now)
	debtHours := math.Max(0, deficit.WeeklyDeficitHours)

	jetlag := CalculateSocialJetlag(sleep, shifts, now)
	misalignHours := 0.0
	if !jetlag.InsufficientData {
		misalignHours = jetlag.CurrentMisalignmentHours
	}

	instability := CalculateInstability(shifts, now)

	debtScore := sleepDebtScore(debtHours)
	misalignScore := misalignmentScore(misalignHours)

	total := clampi(debtScore+misalignScore+instability.Score, 0, 100)
	level := shiftLagLevel(total)

	return ShiftLagResult{
		Score:             total,
		Level:             level,
		SleepDebtScore:    debtScore,
		MisalignmentScore: misalignScore,
		InstabilityScore:  instability.Score,
		SleepDebtHours:    round1(debtHours),
		MisalignmentHours: misalignHours,
		VariabilityHours:  instability.VariabilityHours,
		Drivers:           shiftLagDrivers(debtHours, misalignHours, instability.VariabilityHours),
		Explanation:       shiftLagExplanation(level, total),
		Recommendations:   shiftLagRecommendations(level, debtHours, misalignHours, instability.VariabilityHours),
	}
}

// sleepDebtScore maps weekly sleep debt hours to 0-40 points.
func sleepDebtScore(debtHours float64) int {
	var score float64
	switch {
	case debtHours >= SleepDebtHighHours:
		score = SleepDebtMaxScore
	case debtHours >= SleepDebtMediumHours:
		score = 20 + (debtHours-SleepDebtMediumHours)/7*15
	case debtHours >= SleepDebtLowHours:
		score = 10 + (debtHours-SleepDebtLowHours)/4*10
	default:
		score = 0
	}
	return clampi(int(math.Round(score)), 0, SleepDebtMaxScore)
}

// misalignmentScore maps social-jetlag hours to 0-40 points.
func misalignmentScore(hours float64) int {
	var score float64
	switch {
	case hours >= MisalignSevereHours:
		score = MisalignmentMaxScore
	case hours >= MisalignHighHours:
		score = 35 + (hours-MisalignHighHours)/2*5
	case hours >= MisalignMediumHours:
		score = 25 + (hours-MisalignMediumHours)/2*10
	case hours >= MisalignLowHours:
		score = 15 + (hours-MisalignLowHours)/2*10
	case hours > 0:
		score = 5
	default:
		score = 0
	}
	return clampi(int(math.Round(score)), 0, MisalignmentMaxScore)
}

func shiftLagLevel(score int) ShiftLagLevel {
	switch {
	case score <= ShiftLagLowMax:
		return ShiftLagLevelLow
	case score <= ShiftLagModerateMax:
		return ShiftLagLevelModerate
	default:
		return ShiftLagLevelHigh
	}
}

func shiftLagDrivers(debtHours, misalignHours, variabilityHours float64) ShiftLagDrivers {
	d := ShiftLagDrivers{
		SleepDebt:    "Sleep debt: on track",
		Misalignment: "Circadian alignment: good",
		Instability:  "Schedule stability: consistent",
	}
	if debtHours > 0 {
		d.SleepDebt = fmt.Sprintf("Sleep debt: %.1fh this week", debtHours)
	}
	if misalignHours > 0 {
		d.Misalignment = fmt.Sprintf("Sleep timing shifted %.1fh between work and free days", misalignHours)
	}
	if variabilityHours > 0 {
		d.Instability = fmt.Sprintf("Schedule changes: %.1fh variation in start times", variabilityHours)
	}
	return d
}

func shiftLagExplanation(level ShiftLagLevel, score int) string {
	switch level {
	case ShiftLagLevelLow:
		return "Your body clock is coping well with your current shift pattern."
	case ShiftLagLevelModerate:
		return fmt.Sprintf("You're carrying some shift lag (%d/100) from recent sleep debt and shift timing changes.", score)
	default:
		return fmt.Sprintf("Your body clock is significantly out of sync (%d/100) due to sleep debt, shifted sleep timing, and schedule changes.", score)
	}
}

func shiftLagRecommendations(level ShiftLagLevel, debtHours, misalignHours, variabilityHours float64) []string {
	var recs []string
	switch level {
	case ShiftLagLevelHigh:
		recs = append(recs, "Prioritise a solid sleep block today (aim for 7-9 hours)")
		if misalignHours > 4 {
			recs = append(recs, "Use blackout curtains and avoid bright light 1-2h before daytime sleep")
		}
		if debtHours > 7 {
			recs = append(recs, "Focus on catching up on sleep debt with longer sleep blocks when possible")
		}
	case ShiftLagLevelModerate:
		recs = append(recs, "Try to keep wake-up time consistent for the next 3 days")
		if variabilityHours > 4 {
			recs = append(recs, "Minimise shift pattern changes where possible")
		}
	default:
		recs = append(recs, "Keep maintaining your current sleep and shift routine")
	}
	return recs
}
