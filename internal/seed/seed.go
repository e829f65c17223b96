package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shiftcoach/shiftcoach-api/internal/domain"
)

const seededDays = 40

// rotaPattern is a common 2-2-2 rotation: two day shifts, two nights, two off.
var rotaPattern = []domain.ShiftWorkType{
	domain.ShiftWorkDay,
	domain.ShiftWorkDay,
	domain.ShiftWorkNight,
	domain.ShiftWorkNight,
	domain.ShiftWorkOff,
	domain.ShiftWorkOff,
}

// Run seeds the database with sample shift workers, their rotas, sleep
// sessions, and activity records. Safe to call multiple times.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.SleepSession{},
		&domain.ShiftDay{},
		&domain.ActivityRecord{},
		&domain.DailyScore{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	users := []domain.User{
		{
			ID:                  uuid.MustParse("11111111-1111-1111-1111-111111111111"),
			Timezone:            "Europe/Prague",
			SleepTargetHours:    domain.DefaultSleepTargetHours,
			StepTarget:          domain.DefaultStepTarget,
			ActiveMinutesTarget: domain.DefaultActiveMinutesTarget,
		},
		{
			ID:                  uuid.MustParse("22222222-2222-2222-2222-222222222222"),
			Timezone:            "America/New_York",
			SleepTargetHours:    8,
			StepTarget:          8000,
			ActiveMinutesTarget: 45,
		},
		{
			ID:                  uuid.MustParse("33333333-3333-3333-3333-333333333333"),
			Timezone:            "Asia/Tokyo",
			SleepTargetHours:    7,
			StepTarget:          12000,
			ActiveMinutesTarget: 30,
		},
	}

	for _, user := range users {
		if err := db.Where("id = ?", user.ID).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.ID, err)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i, user := range users {
		if err := seedUserHistory(db, user, i, rng); err != nil {
			return err
		}
	}

	log.Println("Seed completed")
	return nil
}

// seedUserHistory writes one user's rota, sleep, and activity for the
// trailing window. The rota offset staggers users across the rotation.
func seedUserHistory(db *gorm.DB, user domain.User, offset int, rng *rand.Rand) error {
	now := time.Now().UTC()

	for i := 0; i < seededDays; i++ {
		day := now.AddDate(0, 0, -i)
		date := day.Format("2006-01-02")
		shiftType := rotaPattern[(i+offset*2)%len(rotaPattern)]

		if err := seedShiftDay(db, user, day, date, shiftType); err != nil {
			return err
		}
		if err := seedSleepSession(db, user, day, i, shiftType, rng); err != nil {
			return err
		}
		if err := seedActivity(db, user, date, shiftType, rng); err != nil {
			return err
		}
	}
	return nil
}

func seedShiftDay(db *gorm.DB, user domain.User, day time.Time, date string, shiftType domain.ShiftWorkType) error {
	shift := domain.ShiftDay{
		UserID: user.ID,
		Date:   date,
		Type:   shiftType,
	}

	switch shiftType {
	case domain.ShiftWorkDay:
		start := time.Date(day.Year(), day.Month(), day.Day(), 7, 0, 0, 0, time.UTC)
		end := start.Add(12 * time.Hour)
		shift.Label = "Day 12h"
		shift.StartAt = &start
		shift.EndAt = &end
	case domain.ShiftWorkNight:
		start := time.Date(day.Year(), day.Month(), day.Day(), 19, 0, 0, 0, time.UTC)
		end := start.Add(12 * time.Hour)
		shift.Label = "Night 12h"
		shift.StartAt = &start
		shift.EndAt = &end
	}

	if err := db.Where("user_id = ? AND date = ?", user.ID, date).FirstOrCreate(&shift).Error; err != nil {
		return fmt.Errorf("failed to create shift day: %w", err)
	}
	return nil
}

func seedSleepSession(db *gorm.DB, user domain.User, day time.Time, index int, shiftType domain.ShiftWorkType, rng *rand.Rand) error {
	// Night workers sleep through the morning after the shift; everyone
	// else sleeps the previous evening.
	var start time.Time
	if shiftType == domain.ShiftWorkNight {
		start = time.Date(day.Year(), day.Month(), day.Day(), 8+rng.Intn(2), rng.Intn(60), 0, 0, time.UTC)
	} else {
		prev := day.AddDate(0, 0, -1)
		start = time.Date(prev.Year(), prev.Month(), prev.Day(), 22+rng.Intn(2), rng.Intn(60), 0, 0, time.UTC)
	}
	end := start.Add(time.Duration(6+rng.Intn(3)) * time.Hour)

	quality := 2 + rng.Intn(4)
	clientReqID := fmt.Sprintf("seed-sleep-%s-%d", user.ID, index)
	session := domain.SleepSession{
		UserID:          user.ID,
		StartAt:         start,
		EndAt:           end,
		Quality:         &quality,
		LocalTimezone:   user.Timezone,
		ClientRequestID: &clientReqID,
	}

	if err := db.Where("client_request_id = ?", clientReqID).FirstOrCreate(&session).Error; err != nil {
		return fmt.Errorf("failed to create sleep session: %w", err)
	}
	return nil
}

func seedActivity(db *gorm.DB, user domain.User, date string, shiftType domain.ShiftWorkType, rng *rand.Rand) error {
	steps := 3000 + rng.Intn(9000)
	level := "moderate"
	if shiftType == domain.ShiftWorkOff {
		steps = 2000 + rng.Intn(6000)
		level = "light"
	}

	record := domain.ActivityRecord{
		UserID: user.ID,
		Date:   date,
		Steps:  steps,
		Level:  &level,
	}
	if rng.Float32() < 0.7 {
		minutes := 15 + rng.Intn(60)
		record.ActiveMinutes = &minutes
	}

	if err := db.Where("user_id = ? AND date = ?", user.ID, date).FirstOrCreate(&record).Error; err != nil {
		return fmt.Errorf("failed to create activity record: %w", err)
	}
	return nil
}
