package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"github.com/shiftcoach/shiftcoach-api/internal/repository"
)

type UserService interface {
	Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, req *domain.UpdateUserRequest) (*domain.User, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	user := &domain.User{
		ID:                  uuid.New(),
		Timezone:            req.Timezone,
		SleepTargetHours:    domain.DefaultSleepTargetHours,
		StepTarget:          domain.DefaultStepTarget,
		ActiveMinutesTarget: domain.DefaultActiveMinutesTarget,
	}
	if req.SleepTargetHours != nil {
		user.SleepTargetHours = *req.SleepTargetHours
	}
	if req.StepTarget != nil {
		user.StepTarget = *req.StepTarget
	}
	if req.ActiveMinutesTarget != nil {
		user.ActiveMinutesTarget = *req.ActiveMinutesTarget
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateUserRequest) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Timezone != nil && *req.Timezone != "" {
		user.Timezone = *req.Timezone
	}
	if req.SleepTargetHours != nil {
		user.SleepTargetHours = *req.SleepTargetHours
	}
	if req.StepTarget != nil {
		user.StepTarget = *req.StepTarget
	}
	if req.ActiveMinutesTarget != nil {
		user.ActiveMinutesTarget = *req.ActiveMinutesTarget
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
