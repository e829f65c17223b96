package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
)

func TestSleepHandler_Create(t *testing.T) {
	userID := uuid.New()
	handler := NewSleepHandler(&MockSleepService{})

	body := `{
		"start_at": "2024-01-15T23:00:00Z",
		"end_at": "2024-01-16T07:00:00Z",
		"quality": 4
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/users/"+userID.String()+"/sleep-sessions", strings.NewReader(body))
	req = withURLParams(req, map[string]string{"userId": userID.String()})
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}

	var resp domain.SleepSessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.UserID != userID {
		t.Errorf("expected user ID %s, got %s", userID, resp.UserID)
	}
	if resp.DurationHours != 8.0 {
		t.Errorf("expected duration 8.0, got %f", resp.DurationHours)
	}
}

func TestSleepHandler_Create_IdempotentDuplicate(t *testing.T) {
	userID := uuid.New()
	existingID := uuid.New()
	handler := NewSleepHandler(&MockSleepService{
		createFunc: func(ctx context.Context, uid uuid.UUID, req *domain.CreateSleepSessionRequest) (*domain.SleepSession, bool, error) {
			return &domain.SleepSession{
				ID:            existingID,
				UserID:        uid,
				StartAt:       req.StartAt,
				EndAt:         req.EndAt,
				LocalTimezone: "UTC",
			}, true, nil
		},
	})

	body := `{
		"start_at": "2024-01-15T23:00:00Z",
		"end_at": "2024-01-16T07:00:00Z",
		"client_request_id": "req-123"
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/users/"+userID.String()+"/sleep-sessions", strings.NewReader(body))
	req = withURLParams(req, map[string]string{"userId": userID.String()})
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 for a duplicate, got %d", rec.Code)
	}

	var resp domain.SleepSessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != existingID {
		t.Errorf("expected the existing session ID %s, got %s", existingID, resp.ID)
	}
}

func TestSleepHandler_Create_Overlap(t *testing.T) {
	userID := uuid.New()
	handler := NewSleepHandler(&MockSleepService{
		createFunc: func(ctx context.Context, uid uuid.UUID, req *domain.CreateSleepSessionRequest) (*domain.SleepSession, bool, error) {
			return nil, false, domain.ErrOverlappingSleep
		},
	})

	body := `{"start_at": "2024-01-15T23:00:00Z", "end_at": "2024-01-16T07:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/users/"+userID.String()+"/sleep-sessions", strings.NewReader(body))
	req = withURLParams(req, map[string]string{"userId": userID.String()})
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
	p := decodeProblem(t, rec.Body)
	if p.Detail != "Overlapping sleep period detected" {
		t.Errorf("unexpected problem detail: %s", p.Detail)
	}
}

func TestSleepHandler_Create_InvalidBody(t *testing.T) {
	userID := uuid.New()
	handler := NewSleepHandler(&MockSleepService{})

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"malformed json", `{`, http.StatusBadRequest},
		{"missing end_at", `{"start_at": "2024-01-15T23:00:00Z"}`, http.StatusUnprocessableEntity},
		{"end before start", `{"start_at": "2024-01-16T07:00:00Z", "end_at": "2024-01-15T23:00:00Z"}`, http.StatusUnprocessableEntity},
		{"quality out of range", `{"start_at": "2024-01-15T23:00:00Z", "end_at": "2024-01-16T07:00:00Z", "quality": 9}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/users/"+userID.String()+"/sleep-sessions", strings.NewReader(tt.body))
			req = withURLParams(req, map[string]string{"userId": userID.String()})
			rec := httptest.NewRecorder()

			handler.Create(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestSleepHandler_Update(t *testing.T) {
	userID := uuid.New()
	sessionID := uuid.New()
	handler := NewSleepHandler(&MockSleepService{
		updateFunc: func(ctx context.Context, uid, sid uuid.UUID, req *domain.UpdateSleepSessionRequest) (*domain.SleepSession, error) {
			return &domain.SleepSession{
				ID:            sid,
				UserID:        uid,
				StartAt:       time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC),
				EndAt:         *req.EndAt,
				Quality:       req.Quality,
				LocalTimezone: "UTC",
			}, nil
		},
	})

	body := `{"end_at": "2024-01-16T06:00:00Z", "quality": 3}`
	req := httptest.NewRequest(http.MethodPatch, "/v1/users/"+userID.String()+"/sleep-sessions/"+sessionID.String(), strings.NewReader(body))
	req = withURLParams(req, map[string]string{"userId": userID.String(), "sessionId": sessionID.String()})
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp domain.SleepSessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.DurationHours != 7.0 {
		t.Errorf("expected duration 7.0 after the patch, got %f", resp.DurationHours)
	}
	if resp.Quality == nil || *resp.Quality != 3 {
		t.Error("expected quality 3 after the patch")
	}
}

func TestSleepHandler_Update_ErrorMapping(t *testing.T) {
	userID := uuid.New()
	sessionID := uuid.New()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"invalid range", domain.ErrInvalidInput, http.StatusBadRequest},
		{"overlap", domain.ErrOverlappingSleep, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewSleepHandler(&MockSleepService{
				updateFunc: func(ctx context.Context, uid, sid uuid.UUID, req *domain.UpdateSleepSessionRequest) (*domain.SleepSession, error) {
					return nil, tt.err
				},
			})

			body := `{"quality": 2}`
			req := httptest.NewRequest(http.MethodPatch, "/v1/users/"+userID.String()+"/sleep-sessions/"+sessionID.String(), strings.NewReader(body))
			req = withURLParams(req, map[string]string{"userId": userID.String(), "sessionId": sessionID.String()})
			rec := httptest.NewRecorder()

			handler.Update(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestSleepHandler_Delete(t *testing.T) {
	userID := uuid.New()
	sessionID := uuid.New()
	handler := NewSleepHandler(&MockSleepService{})

	req := httptest.NewRequest(http.MethodDelete, "/v1/users/"+userID.String()+"/sleep-sessions/"+sessionID.String(), nil)
	req = withURLParams(req, map[string]string{"userId": userID.String(), "sessionId": sessionID.String()})
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
}

func TestSleepHandler_Delete_NotFound(t *testing.T) {
	userID := uuid.New()
	sessionID := uuid.New()
	handler := NewSleepHandler(&MockSleepService{
		deleteFunc: func(ctx context.Context, uid, sid uuid.UUID) error {
			return domain.ErrNotFound
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/v1/users/"+userID.String()+"/sleep-sessions/"+sessionID.String(), nil)
	req = withURLParams(req, map[string]string{"userId": userID.String(), "sessionId": sessionID.String()})
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestSleepHandler_List(t *testing.T) {
	userID := uuid.New()
	var captured domain.SleepSessionFilter
	handler := NewSleepHandler(&MockSleepService{
		listFunc: func(ctx context.Context, uid uuid.UUID, filter domain.SleepSessionFilter) (*domain.SleepSessionListResponse, error) {
			captured = filter
			return &domain.SleepSessionListResponse{
				Data: []domain.SleepSessionResponse{{ID: uuid.New(), UserID: uid}},
				Pagination: domain.PaginationResponse{
					NextCursor: "cursor-2",
					HasMore:    true,
				},
			}, nil
		},
	})

	target := "/v1/users/" + userID.String() + "/sleep-sessions?from=2024-01-01T00:00:00Z&to=2024-01-31T23:59:59Z&limit=10&cursor=cursor-1"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = withURLParams(req, map[string]string{"userId": userID.String()})
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if captured.From == nil || captured.From.Day() != 1 {
		t.Error("expected the from filter to be parsed")
	}
	if captured.Limit != 10 {
		t.Errorf("expected limit 10, got %d", captured.Limit)
	}
	if captured.Cursor != "cursor-1" {
		t.Errorf("expected cursor cursor-1, got %s", captured.Cursor)
	}

	var resp domain.SleepSessionListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Pagination.HasMore || resp.Pagination.NextCursor != "cursor-2" {
		t.Error("expected pagination metadata to pass through")
	}
}

func TestSleepHandler_List_InvalidQuery(t *testing.T) {
	userID := uuid.New()
	handler := NewSleepHandler(&MockSleepService{})

	tests := []struct {
		name  string
		query string
	}{
		{"bad from", "?from=yesterday"},
		{"bad to", "?to=2024-01-15"},
		{"zero limit", "?limit=0"},
		{"non-numeric limit", "?limit=ten"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID.String()+"/sleep-sessions"+tt.query, nil)
			req = withURLParams(req, map[string]string{"userId": userID.String()})
			rec := httptest.NewRecorder()

			handler.List(rec, req)

			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("expected status 422, got %d", rec.Code)
			}
		})
	}
}
