package scoring

import (
	"math"
	"time"
)

// InstabilityResult is the schedule instability sub-score: how much the
// start-of-shift clock time moves around over the trailing window.
type InstabilityResult struct {
	Score            int     `json:"score"`
	VariabilityHours float64 `json:"variability_hours"`
	ShiftsMeasured   int     `json:"shifts_measured"`
}

// CalculateInstability measures the spread of work-shift start times over the
// trailing 14 days and maps it to 0-20 points. Shifts without a recorded
// start time are skipped; fewer than two measurable shifts score zero.
//
// The mapping is piecewise linear between the breakpoints in thresholds.go
// and monotonic: a larger observed spread never yields a lower score.
func CalculateInstability(shifts []ShiftEntry, now time.Time) InstabilityResult {
	cutoff := DateKey(now.AddDate(0, 0, -InstabilityWindowDays))

	var starts []float64
	for _, s := range shifts {
		if !s.Type.IsWork() || s.Start == nil {
			continue
		}
		if s.Date < cutoff || s.Date > DateKey(now) {
			continue
		}
		starts = append(starts, clockHours(*s.Start))
	}

	if len(starts) < 2 {
		return InstabilityResult{}
	}

	mean := 0.0
	for _, h := range starts {
		mean += h
	}
	mean /= float64(len(starts))

	variance := 0.0
	for _, h := range starts {
		variance += (h - mean) * (h - mean)
	}
	variance /= float64(len(starts))
	std := math.Sqrt(variance)

	return InstabilityResult{
		Score:            instabilityScore(std),
		VariabilityHours: round1(std),
		ShiftsMeasured:   len(starts),
	}
}

func instabilityScore(stdHours float64) int {
	var score float64
	switch {
	case stdHours >= InstabilityStdSevere:
		score = InstabilityMaxScore
	case stdHours >= InstabilityStdHigh:
		score = 15 + (stdHours-InstabilityStdHigh)/2*5
	case stdHours >= InstabilityStdModerate:
		score = 10 + (stdHours-InstabilityStdModerate)/2*5
	case stdHours >= InstabilityStdLow:
		score = 5 + (stdHours-InstabilityStdLow)/2*5
	default:
		score = 0
	}
	return clampi(int(math.Round(score)), 0, InstabilityMaxScore)
}
