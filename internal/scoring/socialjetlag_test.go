package scoring

import "testing"

func TestCalculateSocialJetlag_MidnightWraparound(t *testing.T) {
	// Free-day midpoint 23:00, work-day midpoint 01:00. On the clock dial
	// these are 2h apart, not 22h.
	sleep := []SleepEntry{
		sleepOn(1, 23, 4), // work day, midpoint 01:00
		sleepOn(2, 21, 4), // free day, midpoint 23:00
	}
	shifts := []ShiftEntry{
		shiftOn(1, ShiftDay, 8),
	}

	got := CalculateSocialJetlag(sleep, shifts, testNow)

	if got.InsufficientData {
		t.Fatal("InsufficientData = true, want false")
	}
	if got.CurrentMisalignmentHours != 2.0 {
		t.Errorf("CurrentMisalignmentHours = %.1f, want 2.0", got.CurrentMisalignmentHours)
	}
	if got.Category != JetlagModerate {
		t.Errorf("Category = %s, want moderate", got.Category)
	}
}

func TestCalculateSocialJetlag_Categories(t *testing.T) {
	tests := []struct {
		name          string
		workStartHour int
		wantCategory  JetlagCategory
	}{
		{"aligned timing is low", 22, JetlagLow},
		{"three hour shift is moderate", 19, JetlagModerate},
		{"night flip is high", 5, JetlagHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sleep := []SleepEntry{
				sleepOn(1, tt.workStartHour, 4),
				sleepOn(2, 22, 4), // free-day baseline, midpoint 00:00
			}
			shifts := []ShiftEntry{shiftOn(1, ShiftNight, 20)}

			got := CalculateSocialJetlag(sleep, shifts, testNow)

			if got.Category != tt.wantCategory {
				t.Errorf("Category = %s, want %s (misalignment %.1fh)", got.Category, tt.wantCategory, got.CurrentMisalignmentHours)
			}
		})
	}
}

func TestCalculateSocialJetlag_InsufficientData(t *testing.T) {
	tests := []struct {
		name   string
		sleep  []SleepEntry
		shifts []ShiftEntry
	}{
		{"no sleep at all", nil, []ShiftEntry{shiftOn(1, ShiftDay, 8)}},
		{"only work day sleep", []SleepEntry{sleepOn(1, 23, 7)}, []ShiftEntry{shiftOn(1, ShiftDay, 8)}},
		{"only free day sleep", []SleepEntry{sleepOn(1, 23, 7)}, nil},
		{"off shifts do not make work days", []SleepEntry{sleepOn(1, 23, 7), sleepOn(2, 23, 7)}, []ShiftEntry{shiftOn(1, ShiftOff, 0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateSocialJetlag(tt.sleep, tt.shifts, testNow)

			if !got.InsufficientData {
				t.Fatal("InsufficientData = false, want true")
			}
			if got.Category != JetlagLow {
				t.Errorf("Category = %s, want low sentinel", got.Category)
			}
			if got.Explanation == "" {
				t.Error("Explanation is empty")
			}
		})
	}
}

func TestCircularDistanceHours(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{23, 1, 2},
		{1, 23, 2},
		{12, 0, 12},
		{6, 6, 0},
		{22.5, 0.5, 2},
	}

	for _, tt := range tests {
		if got := circularDistanceHours(tt.a, tt.b); got != tt.want {
			t.Errorf("circularDistanceHours(%.1f, %.1f) = %.1f, want %.1f", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCircularMeanClock_AroundMidnight(t *testing.T) {
	// 23:30 and 00:30 should average to midnight, not noon.
	got := circularMeanClock([]float64{23.5, 0.5})

	if d := circularDistanceHours(got, 0); d > 0.01 {
		t.Errorf("circularMeanClock = %.2f, want ~0.0", got)
	}
}
