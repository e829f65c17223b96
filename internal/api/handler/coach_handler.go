package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/api/validation"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"github.com/shiftcoach/shiftcoach-api/internal/llm"
	"github.com/shiftcoach/shiftcoach-api/internal/service"
	"github.com/shiftcoach/shiftcoach-api/pkg/problem"
)

// CoachHandler serves the LLM coach endpoints.
type CoachHandler struct {
	service service.CoachService
}

func NewCoachHandler(service service.CoachService) *CoachHandler {
	return &CoachHandler{service: service}
}

// WeeklySummary handles GET /v1/users/{userId}/coach/weekly-summary
// @Summary Weekly coach summary
// @Description Generate a short non-medical wellness summary of the user's week from their computed scores. Returns 503 when no LLM is configured.
// @Tags coach
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Success 200 {object} domain.CoachSummaryResponse
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Failure 502 {object} problem.Problem "LLM request failed"
// @Failure 503 {object} problem.Problem "Coach not configured"
// @Router /users/{userId}/coach/weekly-summary [get]
func (h *CoachHandler) WeeklySummary(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	result, err := h.service.WeeklySummary(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		if errors.Is(err, domain.ErrCoachUnavailable) {
			problem.ServiceUnavailable("Coach is not configured").Write(w)
			return
		}
		if errors.Is(err, llm.ErrOpenAIRequest) || errors.Is(err, llm.ErrOpenAIResponse) {
			problem.BadGateway("Failed to generate the coach summary").Write(w)
			return
		}
		problem.InternalError("Failed to generate the coach summary").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// Feedback handles POST /v1/users/{userId}/coach/feedback
// @Summary Rate a coach summary
// @Description Submit a user rating and optional comment for a previously generated summary, keyed by its trace ID.
// @Tags coach
// @Accept json
// @Param userId path string true "User UUID" format(uuid)
// @Param request body domain.CoachFeedbackRequest true "Feedback request"
// @Success 204 "Feedback recorded"
// @Failure 400 {object} problem.Problem "Invalid request"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 422 {object} problem.Problem "Invalid request body"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/coach/feedback [post]
func (h *CoachHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var req domain.CoachFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	if err := h.service.Feedback(r.Context(), userID, &req); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to record feedback").Write(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
