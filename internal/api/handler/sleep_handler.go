package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/api/validation"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"github.com/shiftcoach/shiftcoach-api/internal/service"
	"github.com/shiftcoach/shiftcoach-api/pkg/problem"
)

type SleepHandler struct {
	service service.SleepService
}

func NewSleepHandler(service service.SleepService) *SleepHandler {
	return &SleepHandler{service: service}
}

// Create handles POST /v1/users/{userId}/sleep-sessions
// @Summary Record sleep
// @Description Log a sleep block. Use client_request_id for safe retries (idempotency). Returns 200 if duplicate request, 201 if new.
// @Tags sleep-sessions
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param request body domain.CreateSleepSessionRequest true "Sleep session data"
// @Success 201 {object} domain.SleepSessionResponse "New sleep session created"
// @Success 200 {object} domain.SleepSessionResponse "Existing session returned (idempotent duplicate)"
// @Failure 400 {object} problem.Problem "Invalid request body or parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 409 {object} problem.Problem "Sleep period overlaps with an existing session"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/sleep-sessions [post]
func (h *SleepHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var req domain.CreateSleepSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	session, isExisting, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		if errors.Is(err, domain.ErrOverlappingSleep) {
			problem.Conflict("Overlapping sleep period detected").Write(w)
			return
		}
		problem.InternalError("Failed to create sleep session").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if isExisting {
		w.WriteHeader(http.StatusOK) // Return 200 for idempotent duplicate
	} else {
		w.WriteHeader(http.StatusCreated)
	}
	json.NewEncoder(w).Encode(session.ToResponse())
}

// Update handles PATCH /v1/users/{userId}/sleep-sessions/{sessionId}
// @Summary Amend a sleep session
// @Description Patch a sleep block's times, quality, or timezone. Only supplied fields change.
// @Tags sleep-sessions
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param sessionId path string true "Session UUID" format(uuid)
// @Param request body domain.UpdateSleepSessionRequest true "Sleep session patch"
// @Success 200 {object} domain.SleepSessionResponse
// @Failure 400 {object} problem.Problem "Invalid request or resulting time range"
// @Failure 404 {object} problem.Problem "User or session not found"
// @Failure 409 {object} problem.Problem "Amended period overlaps another session"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/sleep-sessions/{sessionId} [patch]
func (h *SleepHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionId"))
	if err != nil {
		problem.BadRequest("Invalid session ID format").Write(w)
		return
	}

	var req domain.UpdateSleepSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	session, err := h.service.Update(r.Context(), userID, sessionID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Sleep session not found").Write(w)
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			problem.BadRequest("end_at must be after start_at").Write(w)
			return
		}
		if errors.Is(err, domain.ErrOverlappingSleep) {
			problem.Conflict("Overlapping sleep period detected").Write(w)
			return
		}
		problem.InternalError("Failed to update sleep session").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(session.ToResponse())
}

// Delete handles DELETE /v1/users/{userId}/sleep-sessions/{sessionId}
// @Summary Delete a sleep session
// @Description Remove a sleep block from the history.
// @Tags sleep-sessions
// @Param userId path string true "User UUID" format(uuid)
// @Param sessionId path string true "Session UUID" format(uuid)
// @Success 204 "Session deleted"
// @Failure 400 {object} problem.Problem "Invalid identifiers"
// @Failure 404 {object} problem.Problem "User or session not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/sleep-sessions/{sessionId} [delete]
func (h *SleepHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionId"))
	if err != nil {
		problem.BadRequest("Invalid session ID format").Write(w)
		return
	}

	if err := h.service.Delete(r.Context(), userID, sessionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Sleep session not found").Write(w)
			return
		}
		problem.InternalError("Failed to delete sleep session").Write(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /v1/users/{userId}/sleep-sessions
// @Summary List sleep sessions
// @Description Fetch paginated sleep history. Filter by date range. Results sorted by start_at descending (newest first).
// @Tags sleep-sessions
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param from query string false "Start of date range (RFC3339, UTC recommended for consistent filtering)" format(date-time) example(2024-01-01T00:00:00Z)
// @Param to query string false "End of date range (RFC3339, UTC recommended for consistent filtering)" format(date-time) example(2024-01-31T23:59:59Z)
// @Param limit query integer false "Results per page (1-100)" default(20) minimum(1) maximum(100)
// @Param cursor query string false "Cursor from previous response's next_cursor"
// @Success 200 {object} domain.SleepSessionListResponse "Sleep sessions with pagination"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/sleep-sessions [get]
func (h *SleepHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	filter, fieldErrors := parseListFilter(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	response, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to list sleep sessions").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func parseListFilter(r *http.Request) (domain.SleepSessionFilter, []problem.FieldError) {
	var filter domain.SleepSessionFilter
	var fieldErrors []problem.FieldError

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "from",
				Message: "must be a valid RFC3339 timestamp",
			})
		} else {
			filter.From = &from
		}
	}

	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "to",
				Message: "must be a valid RFC3339 timestamp",
			})
		} else {
			filter.To = &to
		}
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "limit",
				Message: "must be a positive integer",
			})
		} else {
			filter.Limit = limit
		}
	}

	filter.Cursor = r.URL.Query().Get("cursor")

	if len(fieldErrors) > 0 {
		return filter, fieldErrors
	}

	return filter, nil
}
