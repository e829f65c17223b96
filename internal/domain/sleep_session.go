package domain

import (
	"time"

	"github.com/google/uuid"
)

type SleepSession struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index:idx_sleep_sessions_user_start" json:"user_id"`
	StartAt         time.Time `gorm:"not null;index:idx_sleep_sessions_user_start,sort:desc" json:"start_at"`
	EndAt           time.Time `gorm:"not null" json:"end_at"`
	Quality         *int      `gorm:"type:smallint" json:"quality,omitempty"`
	LocalTimezone   string    `gorm:"type:varchar(64);not null;default:'UTC'" json:"local_timezone"`
	ClientRequestID *string   `gorm:"type:varchar(255);uniqueIndex:idx_user_client_request,where:client_request_id IS NOT NULL" json:"client_request_id,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (SleepSession) TableName() string {
	return "sleep_sessions"
}

// DurationHours is the stored span in hours, floored at zero.
func (s *SleepSession) DurationHours() float64 {
	h := s.EndAt.Sub(s.StartAt).Hours()
	if h < 0 {
		return 0
	}
	return h
}

// CreateSleepSessionRequest is the request body for recording a sleep block.
// @Description Request payload for recording a sleep session.
type CreateSleepSessionRequest struct {
	// Sleep start time in RFC3339 format (UTC recommended)
	StartAt time.Time `json:"start_at" validate:"required" example:"2024-01-15T23:00:00Z"`
	// Sleep end time in RFC3339 format (must be after start_at)
	EndAt time.Time `json:"end_at" validate:"required,gtfield=StartAt" example:"2024-01-16T07:00:00Z"`
	// Optional sleep quality rating from 1 (poor) to 5 (excellent)
	Quality *int `json:"quality,omitempty" validate:"omitempty,min=1,max=5" example:"4" minimum:"1" maximum:"5"`
	// Optional client-generated ID for idempotent requests (max 255 chars)
	ClientRequestID *string `json:"client_request_id,omitempty" validate:"omitempty,max=255" example:"client-uuid-12345"`
	// Optional IANA timezone for local time display (defaults to user's timezone)
	LocalTimezone *string `json:"local_timezone,omitempty" validate:"omitempty,timezone" example:"Europe/Prague"`
}

// UpdateSleepSessionRequest is the request body for amending a sleep block.
// All fields optional; only supplied fields change.
type UpdateSleepSessionRequest struct {
	StartAt       *time.Time `json:"start_at,omitempty"`
	EndAt         *time.Time `json:"end_at,omitempty"`
	Quality       *int       `json:"quality,omitempty" validate:"omitempty,min=1,max=5"`
	LocalTimezone *string    `json:"local_timezone,omitempty" validate:"omitempty,timezone"`
}

// SleepSessionResponse is the response body for sleep session endpoints.
// @Description Sleep session record with UTC and local times.
type SleepSessionResponse struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	DurationHours   float64   `json:"duration_hours"`
	Quality         *int      `json:"quality,omitempty"`
	ClientRequestID *string   `json:"client_request_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	LocalTimezone   string    `json:"local_timezone"`
	LocalStartAt    time.Time `json:"local_start_at"`
	LocalEndAt      time.Time `json:"local_end_at"`
}

func (s *SleepSession) ToResponse() SleepSessionResponse {
	loc := time.UTC
	if s.LocalTimezone != "" {
		if l, err := time.LoadLocation(s.LocalTimezone); err == nil {
			loc = l
		}
	}

	return SleepSessionResponse{
		ID:              s.ID,
		UserID:          s.UserID,
		StartAt:         s.StartAt,
		EndAt:           s.EndAt,
		DurationHours:   s.DurationHours(),
		Quality:         s.Quality,
		ClientRequestID: s.ClientRequestID,
		CreatedAt:       s.CreatedAt,
		LocalTimezone:   s.LocalTimezone,
		LocalStartAt:    s.StartAt.In(loc),
		LocalEndAt:      s.EndAt.In(loc),
	}
}

// SleepSessionListResponse is the response body for listing sleep sessions.
// @Description Paginated list of sleep sessions.
type SleepSessionListResponse struct {
	Data       []SleepSessionResponse `json:"data"`
	Pagination PaginationResponse     `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
// @Description Cursor-based pagination info.
type PaginationResponse struct {
	// Cursor for fetching the next page (empty if no more pages)
	NextCursor string `json:"next_cursor,omitempty"`
	// True if more results are available
	HasMore bool `json:"has_more"`
}

// SleepSessionFilter contains filter parameters for listing sleep sessions
type SleepSessionFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Cursor string
}
