package domain

import (
	"time"

	"github.com/google/uuid"
)

// ShiftWorkType classifies a rota day.
// @Description Shift classification: day, night, off, or other.
type ShiftWorkType string

const (
	ShiftWorkDay   ShiftWorkType = "day"
	ShiftWorkNight ShiftWorkType = "night"
	ShiftWorkOff   ShiftWorkType = "off"
	ShiftWorkOther ShiftWorkType = "other"
)

// ShiftDay is one rota assignment. At most one row exists per (user, date);
// writes go through an upsert.
type ShiftDay struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_shift_days_user_date" json:"user_id"`
	Date      string        `gorm:"type:varchar(10);not null;uniqueIndex:idx_shift_days_user_date" json:"date"`
	Type      ShiftWorkType `gorm:"type:varchar(10);not null" json:"type"`
	Label     string        `gorm:"type:varchar(100)" json:"label,omitempty"`
	StartAt   *time.Time    `json:"start_at,omitempty"`
	EndAt     *time.Time    `json:"end_at,omitempty"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ShiftDay) TableName() string {
	return "shift_days"
}

// UpsertShiftDayRequest is the request body for setting a rota day.
// @Description Rota assignment for one calendar date. Replaces any existing entry.
type UpsertShiftDayRequest struct {
	// Shift classification
	Type ShiftWorkType `json:"type" validate:"required,oneof=day night off other" example:"night" enums:"day,night,off,other"`
	// Optional free-text label, e.g. "Night 12h"
	Label string `json:"label,omitempty" validate:"omitempty,max=100" example:"Night 12h"`
	// Optional shift start timestamp
	StartAt *time.Time `json:"start_at,omitempty" example:"2024-01-15T20:00:00Z"`
	// Optional shift end timestamp (must be after start_at when both set)
	EndAt *time.Time `json:"end_at,omitempty" example:"2024-01-16T08:00:00Z"`
}

// ShiftDayResponse is the response body for rota endpoints.
type ShiftDayResponse struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"user_id"`
	Date      string        `json:"date"`
	Type      ShiftWorkType `json:"type"`
	Label     string        `json:"label,omitempty"`
	StartAt   *time.Time    `json:"start_at,omitempty"`
	EndAt     *time.Time    `json:"end_at,omitempty"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (s *ShiftDay) ToResponse() ShiftDayResponse {
	return ShiftDayResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		Date:      s.Date,
		Type:      s.Type,
		Label:     s.Label,
		StartAt:   s.StartAt,
		EndAt:     s.EndAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ShiftDayFilter bounds a rota range query. Dates are inclusive "2006-01-02"
// strings; empty bounds mean unbounded.
type ShiftDayFilter struct {
	From string
	To   string
}
