package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"github.com/shiftcoach/shiftcoach-api/internal/service"
	"github.com/shiftcoach/shiftcoach-api/pkg/problem"
)

// ScoreHandler serves the computed wellness scores. Every endpoint accepts an
// optional "at" query parameter (RFC3339) to compute scores as of a past
// moment; it defaults to now in the user's timezone.
type ScoreHandler struct {
	service service.ScoreService
}

func NewScoreHandler(service service.ScoreService) *ScoreHandler {
	return &ScoreHandler{service: service}
}

// Overview handles GET /v1/users/{userId}/scores/overview
// @Summary Full score overview
// @Description Compute every wellness score for the user in one response: sleep deficit, social jetlag, ShiftLag, Shift Rhythm, binge risk, activity, and intensity.
// @Tags scores
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param at query string false "Score as of this instant (RFC3339), defaults to now" format(date-time)
// @Success 200 {object} domain.ScoreOverviewResponse
// @Failure 400 {object} problem.Problem "Invalid user ID or at parameter"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/scores/overview [get]
func (h *ScoreHandler) Overview(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, userID uuid.UUID, at *time.Time) (any, error) {
		return h.service.Overview(ctx, userID, at)
	})
}

// SleepDeficit handles GET /v1/users/{userId}/scores/sleep-deficit
// @Summary Weekly sleep deficit
// @Description Trailing 7-day sleep deficit against the user's nightly target, with a per-day breakdown.
// @Tags scores
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param at query string false "Score as of this instant (RFC3339), defaults to now" format(date-time)
// @Success 200 {object} scoring.SleepDeficitResult
// @Failure 400 {object} problem.Problem "Invalid user ID or at parameter"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/scores/sleep-deficit [get]
func (h *ScoreHandler) SleepDeficit(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, userID uuid.UUID, at *time.Time) (any, error) {
		return h.service.SleepDeficit(ctx, userID, at)
	})
}

// SocialJetlag handles GET /v1/users/{userId}/scores/social-jetlag
// @Summary Social jetlag
// @Description Circular misalignment between work-day and free-day sleep midpoints over the trailing window.
// @Tags scores
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param at query string false "Score as of this instant (RFC3339), defaults to now" format(date-time)
// @Success 200 {object} scoring.SocialJetlagResult
// @Failure 400 {object} problem.Problem "Invalid user ID or at parameter"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/scores/social-jetlag [get]
func (h *ScoreHandler) SocialJetlag(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, userID uuid.UUID, at *time.Time) (any, error) {
		return h.service.SocialJetlag(ctx, userID, at)
	})
}

// ShiftLag handles GET /v1/users/{userId}/scores/shift-lag
// @Summary ShiftLag composite
// @Description 0-100 composite of sleep debt, circadian misalignment, and schedule instability, with per-driver breakdown and recommendations.
// @Tags scores
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param at query string false "Score as of this instant (RFC3339), defaults to now" format(date-time)
// @Success 200 {object} scoring.ShiftLagResult
// @Failure 400 {object} problem.Problem "Invalid user ID or at parameter"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/scores/shift-lag [get]
func (h *ScoreHandler) ShiftLag(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, userID uuid.UUID, at *time.Time) (any, error) {
		return h.service.ShiftLag(ctx, userID, at)
	})
}

// ShiftRhythm handles GET /v1/users/{userId}/scores/shift-rhythm
// @Summary Shift Rhythm composite
// @Description Broad 0-100 daily composite of sleep, regularity, shift pattern, and recovery, optionally blending activity adherence. The result is cached as the day's score.
// @Tags scores
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param at query string false "Score as of this instant (RFC3339), defaults to now" format(date-time)
// @Success 200 {object} scoring.ShiftRhythmResult
// @Failure 400 {object} problem.Problem "Invalid user ID or at parameter"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/scores/shift-rhythm [get]
func (h *ScoreHandler) ShiftRhythm(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, userID uuid.UUID, at *time.Time) (any, error) {
		return h.service.ShiftRhythm(ctx, userID, at)
	})
}

// BingeRisk handles GET /v1/users/{userId}/scores/binge-risk
// @Summary Binge risk
// @Description Risk of late-night overeating from sleep debt, fatigue, and physical demand. Absent inputs degrade to the low-risk fallback.
// @Tags scores
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param at query string false "Score as of this instant (RFC3339), defaults to now" format(date-time)
// @Success 200 {object} scoring.BingeRiskResult
// @Failure 400 {object} problem.Problem "Invalid user ID or at parameter"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/scores/binge-risk [get]
func (h *ScoreHandler) BingeRisk(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, userID uuid.UUID, at *time.Time) (any, error) {
		return h.service.BingeRisk(ctx, userID, at)
	})
}

// Activity handles GET /v1/users/{userId}/scores/activity
// @Summary Activity score
// @Description Today's 0-100 activity score from steps and active minutes, with the shift-aware intensity estimate behind it.
// @Tags scores
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param at query string false "Score as of this instant (RFC3339), defaults to now" format(date-time)
// @Success 200 {object} scoring.ActivityScoreResult
// @Failure 400 {object} problem.Problem "Invalid user ID or at parameter"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/scores/activity [get]
func (h *ScoreHandler) Activity(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, userID uuid.UUID, at *time.Time) (any, error) {
		return h.service.Activity(ctx, userID, at)
	})
}

// serve factors out the shared userId/at parsing and error mapping.
func (h *ScoreHandler) serve(w http.ResponseWriter, r *http.Request, compute func(context.Context, uuid.UUID, *time.Time) (any, error)) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var at *time.Time
	if atStr := r.URL.Query().Get("at"); atStr != "" {
		parsed, err := time.Parse(time.RFC3339, atStr)
		if err != nil {
			problem.BadRequest("at must be a valid RFC3339 timestamp").Write(w)
			return
		}
		at = &parsed
	}

	result, err := compute(r.Context(), userID, at)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to compute scores").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
