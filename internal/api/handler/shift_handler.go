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

type ShiftHandler struct {
	service service.ShiftService
}

func NewShiftHandler(service service.ShiftService) *ShiftHandler {
	return &ShiftHandler{service: service}
}

// Upsert handles PUT /v1/users/{userId}/shifts/{date}
// @Summary Set a rota day
// @Description Create or replace the shift assignment for a calendar date. PUT semantics: the payload fully replaces any existing entry.
// @Tags shifts
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param date path string true "Calendar date (YYYY-MM-DD)" example(2024-01-15)
// @Param request body domain.UpsertShiftDayRequest true "Rota assignment"
// @Success 200 {object} domain.ShiftDayResponse
// @Failure 400 {object} problem.Problem "Invalid date or time range"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 422 {object} problem.Problem "Invalid request body"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/shifts/{date} [put]
func (h *ShiftHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}
	date := chi.URLParam(r, "date")

	var req domain.UpsertShiftDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	day, err := h.service.Upsert(r.Context(), userID, date, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			problem.BadRequest("Invalid date or shift time range").Write(w)
			return
		}
		problem.InternalError("Failed to save shift day").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(day.ToResponse())
}

// GetByDate handles GET /v1/users/{userId}/shifts/{date}
// @Summary Get a rota day
// @Description Fetch the shift assignment for one calendar date.
// @Tags shifts
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param date path string true "Calendar date (YYYY-MM-DD)" example(2024-01-15)
// @Success 200 {object} domain.ShiftDayResponse
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User or shift day not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/shifts/{date} [get]
func (h *ShiftHandler) GetByDate(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}
	date := chi.URLParam(r, "date")

	day, err := h.service.GetByDate(r.Context(), userID, date)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Shift day not found").Write(w)
			return
		}
		problem.InternalError("Failed to get shift day").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(day.ToResponse())
}

// List handles GET /v1/users/{userId}/shifts
// @Summary List rota days
// @Description Fetch shift assignments in a date range, newest first. Empty bounds mean unbounded.
// @Tags shifts
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param from query string false "Start date (YYYY-MM-DD, inclusive)" example(2024-01-01)
// @Param to query string false "End date (YYYY-MM-DD, inclusive)" example(2024-01-31)
// @Success 200 {array} domain.ShiftDayResponse
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/shifts [get]
func (h *ShiftHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	filter := domain.ShiftDayFilter{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}

	days, err := h.service.ListRange(r.Context(), userID, filter)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to list shift days").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(days)
}

// Delete handles DELETE /v1/users/{userId}/shifts/{date}
// @Summary Clear a rota day
// @Description Remove the shift assignment for one calendar date.
// @Tags shifts
// @Param userId path string true "User UUID" format(uuid)
// @Param date path string true "Calendar date (YYYY-MM-DD)" example(2024-01-15)
// @Success 204 "Shift day removed"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User or shift day not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/shifts/{date} [delete]
func (h *ShiftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}
	date := chi.URLParam(r, "date")

	if err := h.service.Delete(r.Context(), userID, date); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Shift day not found").Write(w)
			return
		}
		problem.InternalError("Failed to delete shift day").Write(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
