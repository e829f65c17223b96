package domain

import (
	"time"

	"github.com/shiftcoach/shiftcoach-api/internal/scoring"
)

// ScoreOverviewResponse bundles every calculator's output for one instant.
// @Description All wellness scores computed at a single point in time.
type ScoreOverviewResponse struct {
	// The instant the scores were computed for
	At time.Time `json:"at"`
	// Calendar date of At in the user's timezone
	Date string `json:"date"`

	SleepDeficit scoring.SleepDeficitResult  `json:"sleep_deficit"`
	SocialJetlag scoring.SocialJetlagResult  `json:"social_jetlag"`
	ShiftLag     scoring.ShiftLagResult      `json:"shift_lag"`
	ShiftRhythm  scoring.ShiftRhythmResult   `json:"shift_rhythm"`
	BingeRisk    scoring.BingeRiskResult     `json:"binge_risk"`
	Activity     scoring.ActivityScoreResult `json:"activity"`
	Intensity    scoring.IntensityBreakdown  `json:"intensity"`

	// Normalization warnings for rows that could not be used
	Warnings []string `json:"warnings,omitempty"`
}
