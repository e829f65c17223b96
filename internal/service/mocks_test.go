package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"github.com/shiftcoach/shiftcoach-api/internal/langfuse"
	"github.com/shiftcoach/shiftcoach-api/internal/llm"
	"github.com/shiftcoach/shiftcoach-api/pkg/pagination"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	users map[uuid.UUID]*domain.User
	err   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[uuid.UUID]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.users[id]
	return ok, nil
}

func (m *MockUserRepository) SetError(err error) {
	m.err = err
}

// MockSleepSessionRepository is a mock implementation of SleepSessionRepository
type MockSleepSessionRepository struct {
	sessions        map[uuid.UUID]*domain.SleepSession
	clientRequestID map[string]*domain.SleepSession
	err             error
}

func NewMockSleepSessionRepository() *MockSleepSessionRepository {
	return &MockSleepSessionRepository{
		sessions:        make(map[uuid.UUID]*domain.SleepSession),
		clientRequestID: make(map[string]*domain.SleepSession),
	}
}

func (m *MockSleepSessionRepository) Create(ctx context.Context, session *domain.SleepSession) error {
	if m.err != nil {
		return m.err
	}
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	session.CreatedAt = time.Now()
	m.sessions[session.ID] = session
	if session.ClientRequestID != nil {
		key := session.UserID.String() + ":" + *session.ClientRequestID
		m.clientRequestID[key] = session
	}
	return nil
}

func (m *MockSleepSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SleepSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	session, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return session, nil
}

func (m *MockSleepSessionRepository) Update(ctx context.Context, session *domain.SleepSession) error {
	if m.err != nil {
		return m.err
	}
	m.sessions[session.ID] = session
	return nil
}

func (m *MockSleepSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.sessions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSleepSessionRepository) List(ctx context.Context, userID uuid.UUID, filter domain.SleepSessionFilter) ([]domain.SleepSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.SleepSession
	for _, session := range m.sessions {
		if session.UserID != userID {
			continue
		}
		if filter.From != nil && session.StartAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && session.StartAt.After(*filter.To) {
			continue
		}
		result = append(result, *session)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartAt.After(result[j].StartAt)
	})
	// Mirror the real repository: fetch one extra row past the limit
	limit := pagination.NormalizeLimit(filter.Limit)
	if len(result) > limit+1 {
		result = result[:limit+1]
	}
	return result, nil
}

func (m *MockSleepSessionRepository) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.SleepSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.SleepSession
	for _, session := range m.sessions {
		if session.UserID == userID && !session.StartAt.Before(since) {
			result = append(result, *session)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartAt.After(result[j].StartAt)
	})
	return result, nil
}

func (m *MockSleepSessionRepository) HasOverlap(ctx context.Context, userID uuid.UUID, startAt, endAt time.Time, excludeID *uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, session := range m.sessions {
		if session.UserID != userID {
			continue
		}
		if excludeID != nil && session.ID == *excludeID {
			continue
		}
		// Overlap: new period intersects if start < existing.end AND end > existing.start
		if startAt.Before(session.EndAt) && endAt.After(session.StartAt) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockSleepSessionRepository) GetByClientRequestID(ctx context.Context, userID uuid.UUID, clientRequestID string) (*domain.SleepSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	key := userID.String() + ":" + clientRequestID
	session, ok := m.clientRequestID[key]
	if !ok {
		return nil, nil
	}
	return session, nil
}

func (m *MockSleepSessionRepository) SetError(err error) {
	m.err = err
}

// MockShiftDayRepository is a mock implementation of ShiftDayRepository
type MockShiftDayRepository struct {
	days map[string]*domain.ShiftDay
	err  error
}

func NewMockShiftDayRepository() *MockShiftDayRepository {
	return &MockShiftDayRepository{
		days: make(map[string]*domain.ShiftDay),
	}
}

func shiftKey(userID uuid.UUID, date string) string {
	return userID.String() + ":" + date
}

func (m *MockShiftDayRepository) Upsert(ctx context.Context, day *domain.ShiftDay) error {
	if m.err != nil {
		return m.err
	}
	if day.ID == uuid.Nil {
		day.ID = uuid.New()
	}
	m.days[shiftKey(day.UserID, day.Date)] = day
	return nil
}

func (m *MockShiftDayRepository) GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.ShiftDay, error) {
	if m.err != nil {
		return nil, m.err
	}
	day, ok := m.days[shiftKey(userID, date)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return day, nil
}

func (m *MockShiftDayRepository) ListRange(ctx context.Context, userID uuid.UUID, filter domain.ShiftDayFilter) ([]domain.ShiftDay, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.ShiftDay
	for _, day := range m.days {
		if day.UserID != userID {
			continue
		}
		if filter.From != "" && day.Date < filter.From {
			continue
		}
		if filter.To != "" && day.Date > filter.To {
			continue
		}
		result = append(result, *day)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date > result[j].Date
	})
	return result, nil
}

func (m *MockShiftDayRepository) Delete(ctx context.Context, userID uuid.UUID, date string) error {
	if m.err != nil {
		return m.err
	}
	key := shiftKey(userID, date)
	if _, ok := m.days[key]; !ok {
		return domain.ErrNotFound
	}
	delete(m.days, key)
	return nil
}

func (m *MockShiftDayRepository) SetError(err error) {
	m.err = err
}

// MockActivityRepository is a mock implementation of ActivityRepository
type MockActivityRepository struct {
	records map[string]*domain.ActivityRecord
	err     error
}

func NewMockActivityRepository() *MockActivityRepository {
	return &MockActivityRepository{
		records: make(map[string]*domain.ActivityRecord),
	}
}

func (m *MockActivityRepository) Upsert(ctx context.Context, record *domain.ActivityRecord) error {
	if m.err != nil {
		return m.err
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	m.records[shiftKey(record.UserID, record.Date)] = record
	return nil
}

func (m *MockActivityRepository) GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.ActivityRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	record, ok := m.records[shiftKey(userID, date)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

func (m *MockActivityRepository) ListRange(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.ActivityRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.ActivityRecord
	for _, record := range m.records {
		if record.UserID != userID {
			continue
		}
		if from != "" && record.Date < from {
			continue
		}
		if to != "" && record.Date > to {
			continue
		}
		result = append(result, *record)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date > result[j].Date
	})
	return result, nil
}

func (m *MockActivityRepository) SetError(err error) {
	m.err = err
}

// MockDailyScoreRepository is a mock implementation of DailyScoreRepository
type MockDailyScoreRepository struct {
	scores    map[string]*domain.DailyScore
	upserts   int
	upsertErr error
	listErr   error
}

func NewMockDailyScoreRepository() *MockDailyScoreRepository {
	return &MockDailyScoreRepository{
		scores: make(map[string]*domain.DailyScore),
	}
}

func (m *MockDailyScoreRepository) Upsert(ctx context.Context, score *domain.DailyScore) error {
	m.upserts++
	if m.upsertErr != nil {
		return m.upsertErr
	}
	if score.ID == uuid.Nil {
		score.ID = uuid.New()
	}
	m.scores[shiftKey(score.UserID, score.Date)] = score
	return nil
}

func (m *MockDailyScoreRepository) ListRange(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.DailyScore, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []domain.DailyScore
	for _, score := range m.scores {
		if score.UserID != userID {
			continue
		}
		if from != "" && score.Date < from {
			continue
		}
		if to != "" && score.Date > to {
			continue
		}
		result = append(result, *score)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date > result[j].Date
	})
	return result, nil
}

// MockCoachLLM is a mock implementation of llm.CoachLLM
type MockCoachLLM struct {
	summary     string
	model       string
	err         error
	lastContext *llm.CoachContext
}

func (m *MockCoachLLM) GenerateSummary(ctx context.Context, coachCtx *llm.CoachContext) (string, error) {
	m.lastContext = coachCtx
	if m.err != nil {
		return "", m.err
	}
	return m.summary, nil
}

func (m *MockCoachLLM) Model() string {
	return m.model
}

// MockLangfuseClient is a mock implementation of langfuse.Client
type MockLangfuseClient struct {
	enabled  bool
	traceID  string
	traceErr error
	scoreErr error
	traces   []langfuse.TraceInput
	scores   []langfuse.ScoreInput
}

func (m *MockLangfuseClient) IsEnabled() bool {
	return m.enabled
}

func (m *MockLangfuseClient) CreateTrace(ctx context.Context, in langfuse.TraceInput) (string, error) {
	m.traces = append(m.traces, in)
	if m.traceErr != nil {
		return m.traceID, m.traceErr
	}
	return m.traceID, nil
}

func (m *MockLangfuseClient) CreateScore(ctx context.Context, in langfuse.ScoreInput) error {
	m.scores = append(m.scores, in)
	return m.scoreErr
}

// Helper functions
func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func timePtr(t time.Time) *time.Time {
	return &t
}
