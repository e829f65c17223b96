package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/api/validation"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"github.com/shiftcoach/shiftcoach-api/internal/service"
	"github.com/shiftcoach/shiftcoach-api/pkg/problem"
)

type ActivityHandler struct {
	service service.ActivityService
}

func NewActivityHandler(service service.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// Upsert handles PUT /v1/users/{userId}/activity/{date}
// @Summary Set a day's activity
// @Description Create or replace the movement summary for a calendar date. PUT semantics: the payload fully replaces any existing entry.
// @Tags activity
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param date path string true "Calendar date (YYYY-MM-DD)" example(2024-01-15)
// @Param request body domain.UpsertActivityRequest true "Daily movement summary"
// @Success 200 {object} domain.ActivityRecordResponse
// @Failure 400 {object} problem.Problem "Invalid date"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 422 {object} problem.Problem "Invalid request body"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/activity/{date} [put]
func (h *ActivityHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}
	date := chi.URLParam(r, "date")

	var req domain.UpsertActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	record, err := h.service.Upsert(r.Context(), userID, date, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			problem.BadRequest("Invalid date format, expected YYYY-MM-DD").Write(w)
			return
		}
		problem.InternalError("Failed to save activity record").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record.ToResponse())
}

// GetByDate handles GET /v1/users/{userId}/activity/{date}
// @Summary Get a day's activity
// @Description Fetch the movement summary for one calendar date.
// @Tags activity
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param date path string true "Calendar date (YYYY-MM-DD)" example(2024-01-15)
// @Success 200 {object} domain.ActivityRecordResponse
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User or activity record not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/activity/{date} [get]
func (h *ActivityHandler) GetByDate(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}
	date := chi.URLParam(r, "date")

	record, err := h.service.GetByDate(r.Context(), userID, date)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Activity record not found").Write(w)
			return
		}
		problem.InternalError("Failed to get activity record").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record.ToResponse())
}
