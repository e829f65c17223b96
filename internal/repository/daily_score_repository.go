package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyScoreRepository interface {
	Upsert(ctx context.Context, score *domain.DailyScore) error
	ListRange(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.DailyScore, error)
}

type dailyScoreRepository struct {
	db *gorm.DB
}

func NewDailyScoreRepository(db *gorm.DB) DailyScoreRepository {
	return &dailyScoreRepository{db: db}
}

// Upsert caches the day's computation; the latest write wins.
func (r *dailyScoreRepository) Upsert(ctx context.Context, score *domain.DailyScore) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_score", "sleep_score", "regularity_score",
				"shift_pattern_score", "recovery_score", "computed_at",
			}),
		}).
		Create(score).Error
}

func (r *dailyScoreRepository) ListRange(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.DailyScore, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC")

	if from != "" {
		query = query.Where("date >= ?", from)
	}
	if to != "" {
		query = query.Where("date <= ?", to)
	}

	var scores []domain.DailyScore
	if err := query.Find(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}
