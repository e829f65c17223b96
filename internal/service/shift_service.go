package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"github.com/shiftcoach/shiftcoach-api/internal/repository"
)

type ShiftService interface {
	Upsert(ctx context.Context, userID uuid.UUID, date string, req *domain.UpsertShiftDayRequest) (*domain.ShiftDay, error)
	GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.ShiftDay, error)
	ListRange(ctx context.Context, userID uuid.UUID, filter domain.ShiftDayFilter) ([]domain.ShiftDayResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, date string) error
}

type shiftService struct {
	repo     repository.ShiftDayRepository
	userRepo repository.UserRepository
}

func NewShiftService(repo repository.ShiftDayRepository, userRepo repository.UserRepository) ShiftService {
	return &shiftService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *shiftService) Upsert(ctx context.Context, userID uuid.UUID, date string, req *domain.UpsertShiftDayRequest) (*domain.ShiftDay, error) {
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
	if req.StartAt != nil && req.EndAt != nil && !req.EndAt.After(*req.StartAt) {
		return nil, domain.ErrInvalidInput
	}

	day := &domain.ShiftDay{
		UserID: userID,
		Date:   date,
		Type:   req.Type,
		Label:  req.Label,
	}
	if req.StartAt != nil {
		t := req.StartAt.UTC()
		day.StartAt = &t
	}
	if req.EndAt != nil {
		t := req.EndAt.UTC()
		day.EndAt = &t
	}

	if err := s.repo.Upsert(ctx, day); err != nil {
		return nil, err
	}

	// Re-read so the caller sees the stored row, not the write payload
	return s.repo.GetByDate(ctx, userID, date)
}

func (s *shiftService) GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.ShiftDay, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetByDate(ctx, userID, date)
}

func (s *shiftService) ListRange(ctx context.Context, userID uuid.UUID, filter domain.ShiftDayFilter) ([]domain.ShiftDayResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	days, err := s.repo.ListRange(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.ShiftDayResponse, len(days))
	for i, day := range days {
		responses[i] = day.ToResponse()
	}
	return responses, nil
}

func (s *shiftService) Delete(ctx context.Context, userID uuid.UUID, date string) error {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, userID, date)
}
