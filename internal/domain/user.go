package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile defaults applied when a field is not supplied on create.
const (
	DefaultSleepTargetHours    = 7.5
	DefaultStepTarget          = 10000
	DefaultActiveMinutesTarget = 30
)

type User struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Timezone            string    `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	SleepTargetHours    float64   `gorm:"not null;default:7.5" json:"sleep_target_hours"`
	StepTarget          int       `gorm:"not null;default:10000" json:"step_target"`
	ActiveMinutesTarget int       `gorm:"not null;default:30" json:"active_minutes_target"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// CreateUserRequest is the request body for creating a user profile.
// @Description New shift-worker profile. Omitted targets get sensible defaults.
type CreateUserRequest struct {
	// IANA timezone the worker lives in
	Timezone string `json:"timezone" validate:"required,timezone" example:"Europe/Prague"`
	// Nightly sleep target in hours (default 7.5)
	SleepTargetHours *float64 `json:"sleep_target_hours,omitempty" validate:"omitempty,gt=0,lte=14" example:"7.5"`
	// Daily step target (default 10000)
	StepTarget *int `json:"step_target,omitempty" validate:"omitempty,gt=0" example:"10000"`
	// Daily active-minutes target (default 30)
	ActiveMinutesTarget *int `json:"active_minutes_target,omitempty" validate:"omitempty,gt=0" example:"30"`
}

// UpdateUserRequest is the request body for patching a profile. All fields
// optional; only supplied fields change.
type UpdateUserRequest struct {
	Timezone            *string  `json:"timezone,omitempty" validate:"omitempty,timezone"`
	SleepTargetHours    *float64 `json:"sleep_target_hours,omitempty" validate:"omitempty,gt=0,lte=14"`
	StepTarget          *int     `json:"step_target,omitempty" validate:"omitempty,gt=0"`
	ActiveMinutesTarget *int     `json:"active_minutes_target,omitempty" validate:"omitempty,gt=0"`
}

// UserResponse is the response body for user endpoints
type UserResponse struct {
	ID                  uuid.UUID `json:"id"`
	Timezone            string    `json:"timezone"`
	SleepTargetHours    float64   `json:"sleep_target_hours"`
	StepTarget          int       `json:"step_target"`
	ActiveMinutesTarget int       `json:"active_minutes_target"`
	CreatedAt           time.Time `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:                  u.ID,
		Timezone:            u.Timezone,
		SleepTargetHours:    u.SleepTargetHours,
		StepTarget:          u.StepTarget,
		ActiveMinutesTarget: u.ActiveMinutesTarget,
		CreatedAt:           u.CreatedAt,
	}
}

// Location resolves the user's timezone, falling back to UTC on bad data.
func (u *User) Location() *time.Location {
	if loc, err := time.LoadLocation(u.Timezone); err == nil {
		return loc
	}
	return time.UTC
}
