package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActivityRepository interface {
	Upsert(ctx context.Context, record *domain.ActivityRecord) error
	GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.ActivityRecord, error)
	ListRange(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.ActivityRecord, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

// Upsert writes the day's record, replacing any existing row for (user, date).
func (r *activityRepository) Upsert(ctx context.Context, record *domain.ActivityRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"steps", "active_minutes", "level", "updated_at"}),
		}).
		Create(record).Error
}

func (r *activityRepository) GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.ActivityRecord, error) {
	var record domain.ActivityRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *activityRepository) ListRange(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.ActivityRecord, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC")

	if from != "" {
		query = query.Where("date >= ?", from)
	}
	if to != "" {
		query = query.Where("date <= ?", to)
	}

	var records []domain.ActivityRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
