package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"github.com/shiftcoach/shiftcoach-api/internal/langfuse"
	"github.com/shiftcoach/shiftcoach-api/internal/llm"
	"github.com/shiftcoach/shiftcoach-api/internal/repository"
	"github.com/shiftcoach/shiftcoach-api/internal/scoring"
)

// coachHistoryDays is how far back the coach looks at cached daily scores.
const coachHistoryDays = 14

// CoachService generates weekly wellness summaries and records user feedback.
type CoachService interface {
	// WeeklySummary produces a short non-medical summary of the user's week.
	WeeklySummary(ctx context.Context, userID uuid.UUID) (*domain.CoachSummaryResponse, error)
	// Feedback records a user rating for a previously generated summary.
	Feedback(ctx context.Context, userID uuid.UUID, req *domain.CoachFeedbackRequest) error
}

type coachService struct {
	scoreService ScoreService
	userRepo     repository.UserRepository
	dailyRepo    repository.DailyScoreRepository
	llmClient    llm.CoachLLM
	tracer       langfuse.Client
	logger       zerolog.Logger
	now          func() time.Time
}

// NewCoachService creates a new CoachService. llmClient may wrap a nil
// OpenAI client; summaries then fail with domain.ErrCoachUnavailable.
func NewCoachService(
	scoreService ScoreService,
	userRepo repository.UserRepository,
	dailyRepo repository.DailyScoreRepository,
	llmClient llm.CoachLLM,
	tracer langfuse.Client,
	logger zerolog.Logger,
) CoachService {
	return &coachService{
		scoreService: scoreService,
		userRepo:     userRepo,
		dailyRepo:    dailyRepo,
		llmClient:    llmClient,
		tracer:       tracer,
		logger:       logger,
		now:          time.Now,
	}
}

// coachDailyScore is the compact history row shipped to the model.
type coachDailyScore struct {
	Date       string `json:"date"`
	TotalScore int    `json:"total_score"`
}

func (s *coachService) WeeklySummary(ctx context.Context, userID uuid.UUID) (*domain.CoachSummaryResponse, error) {
	if s.llmClient == nil || s.llmClient.Model() == "" {
		return nil, domain.ErrCoachUnavailable
	}

	// Overview validates the user and assembles the full score set.
	overview, err := s.scoreService.Overview(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	history := s.loadHistory(ctx, userID)

	coachCtx := &llm.CoachContext{
		Scores:       overview,
		DailyHistory: history,
	}

	summary, err := s.llmClient.GenerateSummary(ctx, coachCtx)
	if err != nil {
		if errors.Is(err, llm.ErrOpenAIUnavailable) {
			return nil, domain.ErrCoachUnavailable
		}
		return nil, err
	}

	response := &domain.CoachSummaryResponse{
		Summary:     summary,
		Model:       s.llmClient.Model(),
		GeneratedAt: s.now().UTC(),
	}

	if s.tracer.IsEnabled() {
		traceID, traceErr := s.tracer.CreateTrace(ctx, langfuse.TraceInput{
			UserID: userID.String(),
			Name:   "coach-weekly-summary",
			Input:  coachCtx,
			Output: map[string]any{"summary": summary},
			Tags:   []string{"shiftcoach", "coach"},
			Metadata: map[string]any{
				"model":        s.llmClient.Model(),
				"history_days": coachHistoryDays,
			},
		})
		if traceErr != nil {
			s.logger.Warn().Err(traceErr).Stringer("user_id", userID).Msg("coach trace ingestion failed")
		}
		response.TraceID = traceID
	}

	return response, nil
}

func (s *coachService) Feedback(ctx context.Context, userID uuid.UUID, req *domain.CoachFeedbackRequest) error {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}

	return s.tracer.CreateScore(ctx, langfuse.ScoreInput{
		TraceID: req.TraceID,
		Name:    "user_rating",
		Value:   float64(req.Rating),
		Comment: req.Comment,
	})
}

// loadHistory reads cached daily scores, newest first. A failed read degrades
// to an empty history; the summary still works from today's scores.
func (s *coachService) loadHistory(ctx context.Context, userID uuid.UUID) []coachDailyScore {
	now := s.now().UTC()
	from := scoring.DateKey(now.AddDate(0, 0, -coachHistoryDays))
	to := scoring.DateKey(now)

	rows, err := s.dailyRepo.ListRange(ctx, userID, from, to)
	if err != nil {
		s.logger.Warn().Err(err).Stringer("user_id", userID).Msg("daily score history read failed, coaching without history")
		return nil
	}

	history := make([]coachDailyScore, len(rows))
	for i, row := range rows {
		history[i] = coachDailyScore{Date: row.Date, TotalScore: row.TotalScore}
	}
	return history
}
