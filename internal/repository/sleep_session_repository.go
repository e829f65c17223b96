package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"github.com/shiftcoach/shiftcoach-api/pkg/pagination"
	"gorm.io/gorm"
)

type SleepSessionRepository interface {
	Create(ctx context.Context, session *domain.SleepSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SleepSession, error)
	Update(ctx context.Context, session *domain.SleepSession) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, filter domain.SleepSessionFilter) ([]domain.SleepSession, error)
	ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.SleepSession, error)
	HasOverlap(ctx context.Context, userID uuid.UUID, startAt, endAt time.Time, excludeID *uuid.UUID) (bool, error)
	GetByClientRequestID(ctx context.Context, userID uuid.UUID, clientRequestID string) (*domain.SleepSession, error)
}

type sleepSessionRepository struct {
	db *gorm.DB
}

func NewSleepSessionRepository(db *gorm.DB) SleepSessionRepository {
	return &sleepSessionRepository{db: db}
}

func (r *sleepSessionRepository) Create(ctx context.Context, session *domain.SleepSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sleepSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SleepSession, error) {
	var session domain.SleepSession
	err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *sleepSessionRepository) Update(ctx context.Context, session *domain.SleepSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *sleepSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.SleepSession{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *sleepSessionRepository) List(ctx context.Context, userID uuid.UUID, filter domain.SleepSessionFilter) ([]domain.SleepSession, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_at DESC")

	if filter.From != nil {
		query = query.Where("start_at >= ?", filter.From)
	}
	if filter.To != nil {
		query = query.Where("start_at <= ?", filter.To)
	}

	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err == nil && cursor != nil {
			// For DESC order: records strictly before the cursor position.
			query = query.Where(
				"(start_at < ?) OR (start_at = ? AND id < ?)",
				cursor.StartAt, cursor.StartAt, cursor.ID,
			)
		}
	}

	// Fetch one extra to determine if there are more results
	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var sessions []domain.SleepSession
	if err := query.Find(&sessions).Error; err != nil {
		return nil, err
	}

	return sessions, nil
}

// ListSince returns every session starting at or after the given instant,
// most recent first. The score engine uses this for its trailing windows.
func (r *sleepSessionRepository) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.SleepSession, error) {
	var sessions []domain.SleepSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND start_at >= ?", userID, since).
		Order("start_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// HasOverlap checks whether any existing session intersects [startAt, endAt).
// excludeID lets updates skip the session being amended.
func (r *sleepSessionRepository) HasOverlap(ctx context.Context, userID uuid.UUID, startAt, endAt time.Time, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&domain.SleepSession{}).
		Where("user_id = ?", userID).
		Where("start_at < ?", endAt).
		Where("end_at > ?", startAt)

	if excludeID != nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *sleepSessionRepository) GetByClientRequestID(ctx context.Context, userID uuid.UUID, clientRequestID string) (*domain.SleepSession, error) {
	var session domain.SleepSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND client_request_id = ?", userID, clientRequestID).
		First(&session).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // Not found is not an error for idempotency check
		}
		return nil, err
	}
	return &session, nil
}
