package domain

import (
	"time"

	"github.com/google/uuid"
)

// DailyScore caches one day's Shift Rhythm computation so dashboards and the
// coach can read history without recomputing. One row per (user, date),
// last write wins.
type DailyScore struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_daily_scores_user_date" json:"user_id"`
	Date              string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_daily_scores_user_date" json:"date"`
	TotalScore        int       `gorm:"not null" json:"total_score"`
	SleepScore        int       `gorm:"not null" json:"sleep_score"`
	RegularityScore   int       `gorm:"not null" json:"regularity_score"`
	ShiftPatternScore int       `gorm:"not null" json:"shift_pattern_score"`
	RecoveryScore     int       `gorm:"not null" json:"recovery_score"`
	ComputedAt        time.Time `gorm:"autoUpdateTime" json:"computed_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (DailyScore) TableName() string {
	return "daily_scores"
}
