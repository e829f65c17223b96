package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
)

func newShiftFixture(t *testing.T) (ShiftService, uuid.UUID) {
	t.Helper()
	userRepo := NewMockUserRepository()
	shiftRepo := NewMockShiftDayRepository()

	user := &domain.User{Timezone: "Europe/Prague"}
	if err := userRepo.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	return NewShiftService(shiftRepo, userRepo), user.ID
}

func TestShiftService_Upsert(t *testing.T) {
	svc, userID := newShiftFixture(t)

	start := time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)
	end := start.Add(12 * time.Hour)

	day, err := svc.Upsert(context.Background(), userID, "2024-01-15", &domain.UpsertShiftDayRequest{
		Type:    domain.ShiftWorkNight,
		Label:   "Night 12h",
		StartAt: &start,
		EndAt:   &end,
	})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if day.Type != domain.ShiftWorkNight {
		t.Errorf("Upsert() type = %v, want night", day.Type)
	}
	if day.Label != "Night 12h" {
		t.Errorf("Upsert() label = %v, want Night 12h", day.Label)
	}

	// Second write for the same date replaces the first
	replaced, err := svc.Upsert(context.Background(), userID, "2024-01-15", &domain.UpsertShiftDayRequest{
		Type: domain.ShiftWorkOff,
	})
	if err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}
	if replaced.Type != domain.ShiftWorkOff {
		t.Errorf("second Upsert() type = %v, want off", replaced.Type)
	}

	days, err := svc.ListRange(context.Background(), userID, domain.ShiftDayFilter{})
	if err != nil {
		t.Fatalf("ListRange() error = %v", err)
	}
	if len(days) != 1 {
		t.Errorf("ListRange() returned %d days after upsert, want 1", len(days))
	}
}

func TestShiftService_Upsert_Invalid(t *testing.T) {
	svc, userID := newShiftFixture(t)

	start := time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)
	earlier := start.Add(-1 * time.Hour)

	tests := []struct {
		name    string
		userID  uuid.UUID
		date    string
		req     *domain.UpsertShiftDayRequest
		wantErr error
	}{
		{
			name:    "unknown user",
			userID:  uuid.New(),
			date:    "2024-01-15",
			req:     &domain.UpsertShiftDayRequest{Type: domain.ShiftWorkDay},
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "malformed date",
			userID:  userID,
			date:    "15-01-2024",
			req:     &domain.UpsertShiftDayRequest{Type: domain.ShiftWorkDay},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:   "end before start",
			userID: userID,
			date:   "2024-01-15",
			req: &domain.UpsertShiftDayRequest{
				Type:    domain.ShiftWorkNight,
				StartAt: &start,
				EndAt:   &earlier,
			},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upsert(context.Background(), tt.userID, tt.date, tt.req)
			if err != tt.wantErr {
				t.Errorf("Upsert() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestShiftService_ListRange(t *testing.T) {
	svc, userID := newShiftFixture(t)

	dates := []string{"2024-01-13", "2024-01-14", "2024-01-15"}
	for _, d := range dates {
		if _, err := svc.Upsert(context.Background(), userID, d, &domain.UpsertShiftDayRequest{Type: domain.ShiftWorkDay}); err != nil {
			t.Fatalf("seed Upsert(%s) error = %v", d, err)
		}
	}

	days, err := svc.ListRange(context.Background(), userID, domain.ShiftDayFilter{
		From: "2024-01-14",
		To:   "2024-01-15",
	})
	if err != nil {
		t.Fatalf("ListRange() error = %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("ListRange() returned %d days, want 2", len(days))
	}
	if days[0].Date != "2024-01-15" {
		t.Errorf("ListRange() first date = %v, want 2024-01-15", days[0].Date)
	}
}

func TestShiftService_Delete(t *testing.T) {
	svc, userID := newShiftFixture(t)

	if _, err := svc.Upsert(context.Background(), userID, "2024-01-15", &domain.UpsertShiftDayRequest{Type: domain.ShiftWorkNight}); err != nil {
		t.Fatalf("seed Upsert() error = %v", err)
	}

	if err := svc.Delete(context.Background(), userID, "2024-01-15"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.GetByDate(context.Background(), userID, "2024-01-15"); err != domain.ErrNotFound {
		t.Errorf("GetByDate() after delete error = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(context.Background(), userID, "2024-01-15"); err != domain.ErrNotFound {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}
