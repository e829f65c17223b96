package scoring

import (
	"fmt"
	"time"
)

// BingeRiskLevel buckets the binge risk score.
type BingeRiskLevel string

const (
	BingeRiskLow    BingeRiskLevel = "low"
	BingeRiskMedium BingeRiskLevel = "medium"
	BingeRiskHigh   BingeRiskLevel = "high"
)

// BingeRiskResult is the 0-100 late-night overeating risk for today.
// Drivers lists the factors that contributed; it is never empty.
type BingeRiskResult struct {
	Score       int            `json:"score"`
	Level       BingeRiskLevel `json:"level"`
	Drivers     []string       `json:"drivers"`
	Explanation string         `json:"explanation"`
}

// BingeRiskInputs carries the optional risk factors. Each nil field simply
// contributes nothing.
type BingeRiskInputs struct {
	SleepDebtHours *float64
	RhythmTotal    *int
	ActivityLevel  *ActivityLevel
}

// CalculateBingeRisk scores the risk of late-night overeating from sleep
// debt, fatigue, and physical demand. It always returns a usable result: any
// combination of absent inputs, and even an internal panic, degrades to the
// low-risk fallback rather than failing the surrounding score assembly.
func CalculateBingeRisk(in BingeRiskInputs, now time.Time) (result BingeRiskResult) {
	defer func() {
		if recover() != nil {
			result = bingeRiskFallback()
		}
	}()

	if in.SleepDebtHours == nil && in.RhythmTotal == nil && in.ActivityLevel == nil {
		return bingeRiskFallback()
	}

	score := 0
	var drivers []string

	if in.SleepDebtHours != nil {
		debt := *in.SleepDebtHours
		points := sleepDebtScore(debt)
		if points > 0 {
			score += points
			drivers = append(drivers, fmt.Sprintf("Sleep debt of %.1fh increases cravings for quick energy", debt))
		}
	}

	if in.RhythmTotal != nil {
		fatigue := float64(clampi(100-*in.RhythmTotal, 0, 100))
		var points int
		switch {
		case fatigue >= FatigueHighMin:
			points = 35
		case fatigue >= FatigueElevatedMin:
			points = 25
		case fatigue >= FatigueModerateMin:
			points = 12
		}
		if points > 0 {
			score += points
			drivers = append(drivers, "Fatigue from a disrupted rhythm lowers impulse control around food")
		}
	}

	if in.ActivityLevel != nil {
		points := bingeActivityPoints[*in.ActivityLevel]
		if points > 0 {
			score += points
			drivers = append(drivers, fmt.Sprintf("A %s shift raises energy demand and late-shift hunger", string(*in.ActivityLevel)))
		}
	}

	score = clampi(score, 0, 100)
	level := bingeRiskLevel(score)
	if len(drivers) == 0 {
		drivers = []string{"No elevated risk factors today"}
	}

	return BingeRiskResult{
		Score:       score,
		Level:       level,
		Drivers:     drivers,
		Explanation: bingeRiskExplanation(level),
	}
}

func bingeRiskFallback() BingeRiskResult {
	return BingeRiskResult{
		Score:       0,
		Level:       BingeRiskLow,
		Drivers:     []string{"Insufficient data to assess binge risk today"},
		Explanation: "Log sleep and shifts to get a binge risk reading.",
	}
}

func bingeRiskLevel(score int) BingeRiskLevel {
	switch {
	case score >= BingeHighMin:
		return BingeRiskHigh
	case score >= BingeMediumMin:
		return BingeRiskMedium
	default:
		return BingeRiskLow
	}
}

func bingeRiskExplanation(level BingeRiskLevel) string {
	switch level {
	case BingeRiskHigh:
		return "High risk tonight. Plan a protein-forward meal before the craving window hits."
	case BingeRiskMedium:
		return "Some risk tonight. Keep a planned snack on hand instead of grazing."
	default:
		return "Low risk today. Your routine is keeping cravings in check."
	}
}
