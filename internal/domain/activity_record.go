package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityRecord is one day's movement summary. At most one row exists per
// (user, date); writes go through an upsert.
type ActivityRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_activity_records_user_date" json:"user_id"`
	Date          string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_activity_records_user_date" json:"date"`
	Steps         int       `gorm:"not null;default:0" json:"steps"`
	ActiveMinutes *int      `json:"active_minutes,omitempty"`
	Level         *string   `gorm:"type:varchar(20)" json:"level,omitempty"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ActivityRecord) TableName() string {
	return "activity_records"
}

// UpsertActivityRequest is the request body for setting a day's activity.
// @Description Daily movement summary. Replaces any existing entry for the date.
type UpsertActivityRequest struct {
	// Step count for the day
	Steps int `json:"steps" validate:"min=0" example:"8500"`
	// Optional measured active minutes; when absent the engine estimates them
	ActiveMinutes *int `json:"active_minutes,omitempty" validate:"omitempty,min=0" example:"35"`
	// Optional perceived busyness of the day's shift
	Level *string `json:"level,omitempty" validate:"omitempty,oneof=very_light light moderate busy intense" example:"busy" enums:"very_light,light,moderate,busy,intense"`
}

// ActivityRecordResponse is the response body for activity endpoints.
type ActivityRecordResponse struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Date          string    `json:"date"`
	Steps         int       `json:"steps"`
	ActiveMinutes *int      `json:"active_minutes,omitempty"`
	Level         *string   `json:"level,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (a *ActivityRecord) ToResponse() ActivityRecordResponse {
	return ActivityRecordResponse{
		ID:            a.ID,
		UserID:        a.UserID,
		Date:          a.Date,
		Steps:         a.Steps,
		ActiveMinutes: a.ActiveMinutes,
		Level:         a.Level,
		UpdatedAt:     a.UpdatedAt,
	}
}
