package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShiftDayRepository interface {
	Upsert(ctx context.Context, day *domain.ShiftDay) error
	GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.ShiftDay, error)
	ListRange(ctx context.Context, userID uuid.UUID, filter domain.ShiftDayFilter) ([]domain.ShiftDay, error)
	Delete(ctx context.Context, userID uuid.UUID, date string) error
}

type shiftDayRepository struct {
	db *gorm.DB
}

func NewShiftDayRepository(db *gorm.DB) ShiftDayRepository {
	return &shiftDayRepository{db: db}
}

// Upsert writes the rota day, replacing any existing row for (user, date).
func (r *shiftDayRepository) Upsert(ctx context.Context, day *domain.ShiftDay) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"type", "label", "start_at", "end_at", "updated_at"}),
		}).
		Create(day).Error
}

func (r *shiftDayRepository) GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.ShiftDay, error) {
	var day domain.ShiftDay
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&day).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &day, nil
}

func (r *shiftDayRepository) ListRange(ctx context.Context, userID uuid.UUID, filter domain.ShiftDayFilter) ([]domain.ShiftDay, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC")

	if filter.From != "" {
		query = query.Where("date >= ?", filter.From)
	}
	if filter.To != "" {
		query = query.Where("date <= ?", filter.To)
	}

	var days []domain.ShiftDay
	if err := query.Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (r *shiftDayRepository) Delete(ctx context.Context, userID uuid.UUID, date string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Delete(&domain.ShiftDay{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
