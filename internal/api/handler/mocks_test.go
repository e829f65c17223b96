package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"github.com/shiftcoach/shiftcoach-api/internal/scoring"
)

// MockUserService is a mock implementation of service.UserService
type MockUserService struct {
	createFunc  func(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error)
	getByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	updateFunc  func(ctx context.Context, id uuid.UUID, req *domain.UpdateUserRequest) (*domain.User, error)
}

func defaultUser(id uuid.UUID) *domain.User {
	return &domain.User{
		ID:                  id,
		Timezone:            "Europe/Prague",
		SleepTargetHours:    domain.DefaultSleepTargetHours,
		StepTarget:          domain.DefaultStepTarget,
		ActiveMinutesTarget: domain.DefaultActiveMinutesTarget,
		CreatedAt:           time.Now(),
	}
}

func (m *MockUserService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	user := defaultUser(uuid.New())
	user.Timezone = req.Timezone
	return user, nil
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return defaultUser(id), nil
}

func (m *MockUserService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateUserRequest) (*domain.User, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, req)
	}
	return defaultUser(id), nil
}

// MockSleepService is a mock implementation of service.SleepService
type MockSleepService struct {
	createFunc func(ctx context.Context, userID uuid.UUID, req *domain.CreateSleepSessionRequest) (*domain.SleepSession, bool, error)
	updateFunc func(ctx context.Context, userID, sessionID uuid.UUID, req *domain.UpdateSleepSessionRequest) (*domain.SleepSession, error)
	deleteFunc func(ctx context.Context, userID, sessionID uuid.UUID) error
	listFunc   func(ctx context.Context, userID uuid.UUID, filter domain.SleepSessionFilter) (*domain.SleepSessionListResponse, error)
}

func (m *MockSleepService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateSleepSessionRequest) (*domain.SleepSession, bool, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, req)
	}
	return &domain.SleepSession{
		ID:            uuid.New(),
		UserID:        userID,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
		Quality:       req.Quality,
		LocalTimezone: "UTC",
		CreatedAt:     time.Now(),
	}, false, nil
}

func (m *MockSleepService) Update(ctx context.Context, userID, sessionID uuid.UUID, req *domain.UpdateSleepSessionRequest) (*domain.SleepSession, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, userID, sessionID, req)
	}
	return &domain.SleepSession{
		ID:            sessionID,
		UserID:        userID,
		StartAt:       time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC),
		EndAt:         time.Date(2024, 1, 16, 7, 0, 0, 0, time.UTC),
		LocalTimezone: "UTC",
		CreatedAt:     time.Now(),
	}, nil
}

func (m *MockSleepService) Delete(ctx context.Context, userID, sessionID uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, sessionID)
	}
	return nil
}

func (m *MockSleepService) List(ctx context.Context, userID uuid.UUID, filter domain.SleepSessionFilter) (*domain.SleepSessionListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, filter)
	}
	return &domain.SleepSessionListResponse{
		Data:       []domain.SleepSessionResponse{},
		Pagination: domain.PaginationResponse{HasMore: false},
	}, nil
}

// MockShiftService is a mock implementation of service.ShiftService
type MockShiftService struct {
	upsertFunc    func(ctx context.Context, userID uuid.UUID, date string, req *domain.UpsertShiftDayRequest) (*domain.ShiftDay, error)
	getByDateFunc func(ctx context.Context, userID uuid.UUID, date string) (*domain.ShiftDay, error)
	listRangeFunc func(ctx context.Context, userID uuid.UUID, filter domain.ShiftDayFilter) ([]domain.ShiftDayResponse, error)
	deleteFunc    func(ctx context.Context, userID uuid.UUID, date string) error
}

func (m *MockShiftService) Upsert(ctx context.Context, userID uuid.UUID, date string, req *domain.UpsertShiftDayRequest) (*domain.ShiftDay, error) {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, userID, date, req)
	}
	return &domain.ShiftDay{
		ID:     uuid.New(),
		UserID: userID,
		Date:   date,
		Type:   req.Type,
		Label:  req.Label,
	}, nil
}

func (m *MockShiftService) GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.ShiftDay, error) {
	if m.getByDateFunc != nil {
		return m.getByDateFunc(ctx, userID, date)
	}
	return &domain.ShiftDay{
		ID:     uuid.New(),
		UserID: userID,
		Date:   date,
		Type:   domain.ShiftWorkNight,
	}, nil
}

func (m *MockShiftService) ListRange(ctx context.Context, userID uuid.UUID, filter domain.ShiftDayFilter) ([]domain.ShiftDayResponse, error) {
	if m.listRangeFunc != nil {
		return m.listRangeFunc(ctx, userID, filter)
	}
	return []domain.ShiftDayResponse{}, nil
}

func (m *MockShiftService) Delete(ctx context.Context, userID uuid.UUID, date string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, date)
	}
	return nil
}

// MockActivityService is a mock implementation of service.ActivityService
type MockActivityService struct {
	upsertFunc    func(ctx context.Context, userID uuid.UUID, date string, req *domain.UpsertActivityRequest) (*domain.ActivityRecord, error)
	getByDateFunc func(ctx context.Context, userID uuid.UUID, date string) (*domain.ActivityRecord, error)
}

func (m *MockActivityService) Upsert(ctx context.Context, userID uuid.UUID, date string, req *domain.UpsertActivityRequest) (*domain.ActivityRecord, error) {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, userID, date, req)
	}
	return &domain.ActivityRecord{
		ID:            uuid.New(),
		UserID:        userID,
		Date:          date,
		Steps:         req.Steps,
		ActiveMinutes: req.ActiveMinutes,
		Level:         req.Level,
	}, nil
}

func (m *MockActivityService) GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.ActivityRecord, error) {
	if m.getByDateFunc != nil {
		return m.getByDateFunc(ctx, userID, date)
	}
	return &domain.ActivityRecord{
		ID:     uuid.New(),
		UserID: userID,
		Date:   date,
		Steps:  8000,
	}, nil
}

// MockScoreService is a mock implementation of service.ScoreService
type MockScoreService struct {
	overviewFunc     func(ctx context.Context, userID uuid.UUID, at *time.Time) (*domain.ScoreOverviewResponse, error)
	sleepDeficitFunc func(ctx context.Context, userID uuid.UUID, at *time.Time) (*scoring.SleepDeficitResult, error)
	socialJetlagFunc func(ctx context.Context, userID uuid.UUID, at *time.Time) (*scoring.SocialJetlagResult, error)
	shiftLagFunc     func(ctx context.Context, userID uuid.UUID, at *time.Time) (*scoring.ShiftLagResult, error)
	shiftRhythmFunc  func(ctx context.Context, userID uuid.UUID, at *time.Time) (*scoring.ShiftRhythmResult, error)
	bingeRiskFunc    func(ctx context.Context, userID uuid.UUID, at *time.Time) (*scoring.BingeRiskResult, error)
	activityFunc     func(ctx context.Context, userID uuid.UUID, at *time.Time) (*scoring.ActivityScoreResult, error)
}

func (m *MockScoreService) Overview(ctx context.Context, userID uuid.UUID, at *time.Time) (*domain.ScoreOverviewResponse, error) {
	if m.overviewFunc != nil {
		return m.overviewFunc(ctx, userID, at)
	}
	return &domain.ScoreOverviewResponse{
		At:   time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
		Date: "2024-01-15",
	}, nil
}

func (m *MockScoreService) SleepDeficit(ctx context.Context, userID uuid.UUID, at *time.Time) (*scoring.SleepDeficitResult, error) {
	if m.sleepDeficitFunc != nil {
		return m.sleepDeficitFunc(ctx, userID, at)
	}
	return &scoring.SleepDeficitResult{
		RequiredDailyHours: 7.5,
		WeeklyDeficitHours: 3.0,
		Category:           scoring.DeficitLow,
	}, nil
}

func (m *MockScoreService) SocialJetlag(ctx context.Context, userID uuid.UUID, at *time.Time) (*scoring.SocialJetlagResult, error) {
	if m.socialJetlagFunc != nil {
		return m.socialJetlagFunc(ctx, userID, at)
	}
	return &scoring.SocialJetlagResult{Category: scoring.JetlagLow}, nil
}

func (m *MockScoreService) ShiftLag(ctx context.Context, userID uuid.UUID, at *time.Time) (*scoring.ShiftLagResult, error) {
	if m.shiftLagFunc != nil {
		return m.shiftLagFunc(ctx, userID, at)
	}
	return &scoring.ShiftLagResult{Score: 15, Level: scoring.ShiftLagLevelLow}, nil
}

func (m *MockScoreService) ShiftRhythm(ctx context.Context, userID uuid.UUID, at *time.Time) (*scoring.ShiftRhythmResult, error) {
	if m.shiftRhythmFunc != nil {
		return m.shiftRhythmFunc(ctx, userID, at)
	}
	return &scoring.ShiftRhythmResult{Date: "2024-01-15", TotalScore: 80}, nil
}

func (m *MockScoreService) BingeRisk(ctx context.Context, userID uuid.UUID, at *time.Time) (*scoring.BingeRiskResult, error) {
	if m.bingeRiskFunc != nil {
		return m.bingeRiskFunc(ctx, userID, at)
	}
	return &scoring.BingeRiskResult{Score: 10, Level: scoring.BingeRiskLow}, nil
}

func (m *MockScoreService) Activity(ctx context.Context, userID uuid.UUID, at *time.Time) (*scoring.ActivityScoreResult, error) {
	if m.activityFunc != nil {
		return m.activityFunc(ctx, userID, at)
	}
	return &scoring.ActivityScoreResult{Score: 62, Level: scoring.ActivityScoreModerate}, nil
}

// MockCoachService is a mock implementation of service.CoachService
type MockCoachService struct {
	weeklySummaryFunc func(ctx context.Context, userID uuid.UUID) (*domain.CoachSummaryResponse, error)
	feedbackFunc      func(ctx context.Context, userID uuid.UUID, req *domain.CoachFeedbackRequest) error
}

func (m *MockCoachService) WeeklySummary(ctx context.Context, userID uuid.UUID) (*domain.CoachSummaryResponse, error) {
	if m.weeklySummaryFunc != nil {
		return m.weeklySummaryFunc(ctx, userID)
	}
	return &domain.CoachSummaryResponse{
		Summary:     "A steady week.",
		Model:       "gpt-4o-mini",
		GeneratedAt: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
		TraceID:     "trace-1",
	}, nil
}

func (m *MockCoachService) Feedback(ctx context.Context, userID uuid.UUID, req *domain.CoachFeedbackRequest) error {
	if m.feedbackFunc != nil {
		return m.feedbackFunc(ctx, userID, req)
	}
	return nil
}
