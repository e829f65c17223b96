package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"github.com/shiftcoach/shiftcoach-api/internal/repository"
	"github.com/shiftcoach/shiftcoach-api/internal/scoring"
	"golang.org/x/sync/errgroup"
)

// fetchWindowDays covers the engine's longest trailing window (14 days) with
// headroom for sessions crossing the boundary.
const fetchWindowDays = 21

type ScoreService interface {
	Overview(ctx context.Context, userID uuid.UUID, at *time.Time) (*domain.ScoreOverviewResponse, error)
	SleepDeficit(ctx context.Context, userID uuid.UUID, at *time.Time) (*scoring.SleepDeficitResult, error)
	SocialJetlag(ctx context.Context, userID uuid.UUID, at *time.Time) (*scoring.SocialJetlagResult, error)
	ShiftLag(ctx context.Context, userID uuid.UUID, at *time.Time) (*scoring.ShiftLagResult, error)
	ShiftRhythm(ctx context.Context, userID uuid.UUID, at *time.Time) (*scoring.ShiftRhythmResult, error)
	BingeRisk(ctx context.Context, userID uuid.UUID, at *time.Time) (*scoring.BingeRiskResult, error)
	Activity(ctx context.Context, userID uuid.UUID, at *time.Time) (*scoring.ActivityScoreResult, error)
}

type scoreService struct {
	userRepo     repository.UserRepository
	sleepRepo    repository.SleepSessionRepository
	shiftRepo    repository.ShiftDayRepository
	activityRepo repository.ActivityRepository
	dailyRepo    repository.DailyScoreRepository
	logger       zerolog.Logger
	now          func() time.Time
}

func NewScoreService(
	userRepo repository.UserRepository,
	sleepRepo repository.SleepSessionRepository,
	shiftRepo repository.ShiftDayRepository,
	activityRepo repository.ActivityRepository,
	dailyRepo repository.DailyScoreRepository,
	logger zerolog.Logger,
) ScoreService {
	return &scoreService{
		userRepo:     userRepo,
		sleepRepo:    sleepRepo,
		shiftRepo:    shiftRepo,
		activityRepo: activityRepo,
		dailyRepo:    dailyRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// scoreInputs is one consistent snapshot of everything the calculators read.
type scoreInputs struct {
	user     *domain.User
	now      time.Time
	sleep    []scoring.SleepEntry
	shifts   []scoring.ShiftEntry
	activity []scoring.ActivityEntry
	warnings []string
}

// fetchInputs loads the trailing data window for the user. The three family
// fetches fan out concurrently; a failed fetch degrades that family to empty
// rather than failing the whole computation, since every calculator has
// defined insufficient-data behavior.
func (s *scoreService) fetchInputs(ctx context.Context, userID uuid.UUID, at *time.Time) (*scoreInputs, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	loc := user.Location()
	now := s.now().In(loc)
	if at != nil {
		now = at.In(loc)
	}

	since := now.AddDate(0, 0, -fetchWindowDays)
	fromDate := scoring.DateKey(since)
	toDate := scoring.DateKey(now)

	var sessions []domain.SleepSession
	var days []domain.ShiftDay
	var records []domain.ActivityRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sessions, err = s.sleepRepo.ListSince(gctx, userID, since.UTC())
		if err != nil {
			s.logger.Warn().Err(err).Stringer("user_id", userID).Msg("sleep fetch failed, scoring without sleep data")
			sessions = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		days, err = s.shiftRepo.ListRange(gctx, userID, domain.ShiftDayFilter{From: fromDate, To: toDate})
		if err != nil {
			s.logger.Warn().Err(err).Stringer("user_id", userID).Msg("shift fetch failed, scoring without rota data")
			days = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		records, err = s.activityRepo.ListRange(gctx, userID, fromDate, toDate)
		if err != nil {
			s.logger.Warn().Err(err).Stringer("user_id", userID).Msg("activity fetch failed, scoring without activity data")
			records = nil
		}
		return nil
	})
	_ = g.Wait()

	in := &scoreInputs{user: user, now: now}

	sleepRows := make([]scoring.RawSleepRow, len(sessions))
	for i := range sessions {
		sleepRows[i] = scoring.RawSleepRow{
			StartAt: &sessions[i].StartAt,
			EndAt:   &sessions[i].EndAt,
			Quality: sessions[i].Quality,
		}
	}
	var warnings []string
	in.sleep, warnings = scoring.NormalizeSleep(sleepRows, loc)
	in.warnings = append(in.warnings, warnings...)

	shiftRows := make([]scoring.RawShiftRow, len(days))
	for i := range days {
		shiftRows[i] = scoring.RawShiftRow{
			Date:    days[i].Date,
			Type:    string(days[i].Type),
			Label:   days[i].Label,
			StartAt: days[i].StartAt,
			EndAt:   days[i].EndAt,
		}
	}
	in.shifts, warnings = scoring.NormalizeShifts(shiftRows)
	in.warnings = append(in.warnings, warnings...)

	activityRows := make([]scoring.RawActivityRow, len(records))
	for i := range records {
		activityRows[i] = scoring.RawActivityRow{
			Date:          records[i].Date,
			Steps:         &records[i].Steps,
			ActiveMinutes: records[i].ActiveMinutes,
		}
		if records[i].Level != nil {
			activityRows[i].Level = *records[i].Level
		}
	}
	in.activity, warnings = scoring.NormalizeActivity(activityRows)
	in.warnings = append(in.warnings, warnings...)

	for _, w := range in.warnings {
		s.logger.Warn().Stringer("user_id", userID).Str("warning", w).Msg("dropped row during score normalization")
	}

	return in, nil
}

// todayActivity returns today's normalized activity entry, if any.
func (in *scoreInputs) todayActivity() *scoring.ActivityEntry {
	today := scoring.DateKey(in.now)
	for i := range in.activity {
		if in.activity[i].Date == today {
			return &in.activity[i]
		}
	}
	return nil
}

// todayShiftType returns today's rota classification, defaulting to off.
func (in *scoreInputs) todayShiftType() scoring.ShiftType {
	today := scoring.DateKey(in.now)
	for _, sh := range in.shifts {
		if sh.Date == today {
			return sh.Type
		}
	}
	return scoring.ShiftOff
}

func (in *scoreInputs) rhythmInputs() scoring.ShiftRhythmInputs {
	rhythmIn := scoring.ShiftRhythmInputs{
		Sleep:            in.sleep,
		Shifts:           in.shifts,
		TargetSleepHours: in.user.SleepTargetHours,
	}
	if act := in.todayActivity(); act != nil {
		rhythmIn.Activity = &scoring.ActivitySnapshot{
			Steps:             act.Steps,
			StepTarget:        in.user.StepTarget,
			ActiveMinutes:     act.ActiveMinutes,
			ActiveMinutesGoal: in.user.ActiveMinutesTarget,
		}
	}
	return rhythmIn
}

func (s *scoreService) Overview(ctx context.Context, userID uuid.UUID, at *time.Time) (*domain.ScoreOverviewResponse, error) {
	in, err := s.fetchInputs(ctx, userID, at)
	if err != nil {
		return nil, err
	}

	deficit := scoring.CalculateSleepDeficit(in.sleep, in.user.SleepTargetHours, in.now)
	jetlag := scoring.CalculateSocialJetlag(in.sleep, in.shifts, in.now)
	shiftLag := scoring.CalculateShiftLag(in.sleep, in.shifts, in.user.SleepTargetHours, in.now)
	rhythm := scoring.CalculateShiftRhythm(in.rhythmInputs(), in.now)
	s.cacheDailyScore(ctx, userID, rhythm)

	todayAct := in.todayActivity()
	todayShift := in.todayShiftType()
	activityScore := scoring.CalculateActivityScore(todayAct, todayShift, in.now)
	intensity := scoring.CalculateIntensityBreakdown(todayAct, todayShift, in.now)
	binge := s.bingeRisk(in, deficit, rhythm)

	return &domain.ScoreOverviewResponse{
		At:           in.now,
		Date:         scoring.DateKey(in.now),
		SleepDeficit: deficit,
		SocialJetlag: jetlag,
		ShiftLag:     shiftLag,
		ShiftRhythm:  rhythm,
		BingeRisk:    binge,
		Activity:     activityScore,
		Intensity:    intensity,
		Warnings:     in.warnings,
	}, nil
}

func (s *scoreService) SleepDeficit(ctx context.Context, userID uuid.UUID, at *time.Time) (*scoring.SleepDeficitResult, error) {
	in, err := s.fetchInputs(ctx, userID, at)
	if err != nil {
		return nil, err
	}
	result := scoring.CalculateSleepDeficit(in.sleep, in.user.SleepTargetHours, in.now)
	return &result, nil
}

func (s *scoreService) SocialJetlag(ctx context.Context, userID uuid.UUID, at *time.Time) (*scoring.SocialJetlagResult, error) {
	in, err := s.fetchInputs(ctx, userID, at)
	if err != nil {
		return nil, err
	}
	result := scoring.CalculateSocialJetlag(in.sleep, in.shifts, in.now)
	return &result, nil
}

func (s *scoreService) ShiftLag(ctx context.Context, userID uuid.UUID, at *time.Time) (*scoring.ShiftLagResult, error) {
	in, err := s.fetchInputs(ctx, userID, at)
	if err != nil {
		return nil, err
	}
	result := scoring.CalculateShiftLag(in.sleep, in.shifts, in.user.SleepTargetHours, in.now)
	return &result, nil
}

func (s *scoreService) ShiftRhythm(ctx context.Context, userID uuid.UUID, at *time.Time) (*scoring.ShiftRhythmResult, error) {
	in, err := s.fetchInputs(ctx, userID, at)
	if err != nil {
		return nil, err
	}
	result := scoring.CalculateShiftRhythm(in.rhythmInputs(), in.now)
	s.cacheDailyScore(ctx, userID, result)
	return &result, nil
}

func (s *scoreService) BingeRisk(ctx context.Context, userID uuid.UUID, at *time.Time) (*scoring.BingeRiskResult, error) {
	in, err := s.fetchInputs(ctx, userID, at)
	if err != nil {
		return nil, err
	}
	deficit := scoring.CalculateSleepDeficit(in.sleep, in.user.SleepTargetHours, in.now)
	rhythm := scoring.CalculateShiftRhythm(in.rhythmInputs(), in.now)
	result := s.bingeRisk(in, deficit, rhythm)
	return &result, nil
}

func (s *scoreService) Activity(ctx context.Context, userID uuid.UUID, at *time.Time) (*scoring.ActivityScoreResult, error) {
	in, err := s.fetchInputs(ctx, userID, at)
	if err != nil {
		return nil, err
	}
	result := scoring.CalculateActivityScore(in.todayActivity(), in.todayShiftType(), in.now)
	return &result, nil
}

func (s *scoreService) bingeRisk(in *scoreInputs, deficit scoring.SleepDeficitResult, rhythm scoring.ShiftRhythmResult) scoring.BingeRiskResult {
	bingeIn := scoring.BingeRiskInputs{}
	if len(in.sleep) > 0 {
		debt := deficit.WeeklyDeficitHours
		if debt < 0 {
			debt = 0
		}
		bingeIn.SleepDebtHours = &debt
	}
	if !rhythm.NoData {
		total := rhythm.TotalScore
		bingeIn.RhythmTotal = &total
	}
	if act := in.todayActivity(); act != nil && act.Level != nil {
		bingeIn.ActivityLevel = act.Level
	}
	return scoring.CalculateBingeRisk(bingeIn, in.now)
}

// cacheDailyScore persists the rhythm snapshot for history reads. Failures
// are logged and swallowed; the response is computed either way.
func (s *scoreService) cacheDailyScore(ctx context.Context, userID uuid.UUID, rhythm scoring.ShiftRhythmResult) {
	if rhythm.NoData {
		return
	}
	err := s.dailyRepo.Upsert(ctx, &domain.DailyScore{
		UserID:            userID,
		Date:              rhythm.Date,
		TotalScore:        rhythm.TotalScore,
		SleepScore:        rhythm.SleepScore,
		RegularityScore:   rhythm.RegularityScore,
		ShiftPatternScore: rhythm.ShiftPatternScore,
		RecoveryScore:     rhythm.RecoveryScore,
	})
	if err != nil {
		s.logger.Warn().Err(err).Stringer("user_id", userID).Str("date", rhythm.Date).Msg("daily score cache write failed")
	}
}
