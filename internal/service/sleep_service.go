package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"github.com/shiftcoach/shiftcoach-api/internal/repository"
	"github.com/shiftcoach/shiftcoach-api/pkg/pagination"
)

type SleepService interface {
	Create(ctx context.Context, userID uuid.UUID, req *domain.CreateSleepSessionRequest) (*domain.SleepSession, bool, error)
	Update(ctx context.Context, userID, sessionID uuid.UUID, req *domain.UpdateSleepSessionRequest) (*domain.SleepSession, error)
	Delete(ctx context.Context, userID, sessionID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, filter domain.SleepSessionFilter) (*domain.SleepSessionListResponse, error)
}

type sleepService struct {
	repo     repository.SleepSessionRepository
	userRepo repository.UserRepository
}

func NewSleepService(repo repository.SleepSessionRepository, userRepo repository.UserRepository) SleepService {
	return &sleepService{
		repo:     repo,
		userRepo: userRepo,
	}
}

// Create records a sleep session.
// Returns (session, isExisting, error) - isExisting is true when an earlier
// request with the same client_request_id already created the session.
func (s *sleepService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateSleepSessionRequest) (*domain.SleepSession, bool, error) {
	// Load user to confirm existence and get their home timezone
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	localTZ := user.Timezone
	if req.LocalTimezone != nil && *req.LocalTimezone != "" {
		localTZ = *req.LocalTimezone
	}
	if localTZ == "" {
		localTZ = "UTC"
	}

	// Normalize timestamps to UTC for storage and overlap checks
	startUTC := req.StartAt.UTC()
	endUTC := req.EndAt.UTC()

	// Idempotency: a repeated client_request_id returns the original session
	if req.ClientRequestID != nil && *req.ClientRequestID != "" {
		existing, err := s.repo.GetByClientRequestID(ctx, userID, *req.ClientRequestID)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, true, nil
		}
	}

	hasOverlap, err := s.repo.HasOverlap(ctx, userID, startUTC, endUTC, nil)
	if err != nil {
		return nil, false, err
	}
	if hasOverlap {
		return nil, false, domain.ErrOverlappingSleep
	}

	session := &domain.SleepSession{
		UserID:          userID,
		StartAt:         startUTC,
		EndAt:           endUTC,
		Quality:         req.Quality,
		LocalTimezone:   localTZ,
		ClientRequestID: req.ClientRequestID,
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, false, err
	}

	return session, false, nil
}

func (s *sleepService) Update(ctx context.Context, userID, sessionID uuid.UUID, req *domain.UpdateSleepSessionRequest) (*domain.SleepSession, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	session, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Ownership check; a foreign session is indistinguishable from a missing one
	if session.UserID != userID {
		return nil, domain.ErrNotFound
	}

	if req.StartAt != nil {
		session.StartAt = req.StartAt.UTC()
	}
	if req.EndAt != nil {
		session.EndAt = req.EndAt.UTC()
	}
	if req.Quality != nil {
		session.Quality = req.Quality
	}
	if req.LocalTimezone != nil && *req.LocalTimezone != "" {
		session.LocalTimezone = *req.LocalTimezone
	}

	// Validate end > start after applying updates
	if !session.EndAt.After(session.StartAt) {
		return nil, domain.ErrInvalidInput
	}

	hasOverlap, err := s.repo.HasOverlap(ctx, userID, session.StartAt, session.EndAt, &sessionID)
	if err != nil {
		return nil, err
	}
	if hasOverlap {
		return nil, domain.ErrOverlappingSleep
	}

	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *sleepService) Delete(ctx context.Context, userID, sessionID uuid.UUID) error {
	session, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.UserID != userID {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, sessionID)
}

func (s *sleepService) List(ctx context.Context, userID uuid.UUID, filter domain.SleepSessionFilter) (*domain.SleepSessionListResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	sessions, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	hasMore := len(sessions) > limit
	if hasMore {
		sessions = sessions[:limit]
	}

	response := &domain.SleepSessionListResponse{
		Data: make([]domain.SleepSessionResponse, len(sessions)),
		Pagination: domain.PaginationResponse{
			HasMore: hasMore,
		},
	}

	for i, session := range sessions {
		response.Data[i] = session.ToResponse()
	}

	if hasMore && len(sessions) > 0 {
		last := sessions[len(sessions)-1]
		cursor := &pagination.Cursor{
			ID:      last.ID,
			StartAt: last.StartAt,
		}
		response.Pagination.NextCursor = cursor.Encode()
	}

	return response, nil
}
