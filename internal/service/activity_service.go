package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"github.com/shiftcoach/shiftcoach-api/internal/repository"
)

type ActivityService interface {
	Upsert(ctx context.Context, userID uuid.UUID, date string, req *domain.UpsertActivityRequest) (*domain.ActivityRecord, error)
	GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.ActivityRecord, error)
}

type activityService struct {
	repo     repository.ActivityRepository
	userRepo repository.UserRepository
}

func NewActivityService(repo repository.ActivityRepository, userRepo repository.UserRepository) ActivityService {
	return &activityService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *activityService) Upsert(ctx context.Context, userID uuid.UUID, date string, req *domain.UpsertActivityRequest) (*domain.ActivityRecord, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, domain.ErrInvalidInput
	}

	record := &domain.ActivityRecord{
		UserID:        userID,
		Date:          date,
		Steps:         req.Steps,
		ActiveMinutes: req.ActiveMinutes,
		Level:         req.Level,
	}

	if err := s.repo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	return s.repo.GetByDate(ctx, userID, date)
}

func (s *activityService) GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.ActivityRecord, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetByDate(ctx, userID, date)
}
