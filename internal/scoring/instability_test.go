package scoring

import "testing"

func TestCalculateInstability_SteadySchedule(t *testing.T) {
	shifts := []ShiftEntry{
		shiftOn(1, ShiftDay, 8),
		shiftOn(2, ShiftDay, 8),
		shiftOn(3, ShiftDay, 8),
		shiftOn(4, ShiftDay, 8),
	}

	got := CalculateInstability(shifts, testNow)

	if got.Score != 0 {
		t.Errorf("Score = %d, want 0", got.Score)
	}
	if got.VariabilityHours != 0 {
		t.Errorf("VariabilityHours = %.1f, want 0", got.VariabilityHours)
	}
	if got.ShiftsMeasured != 4 {
		t.Errorf("ShiftsMeasured = %d, want 4", got.ShiftsMeasured)
	}
}

func TestCalculateInstability_DayNightAlternation(t *testing.T) {
	// 08:00 and 20:00 starts alternating: std dev of 6h.
	shifts := []ShiftEntry{
		shiftOn(1, ShiftDay, 8),
		shiftOn(2, ShiftNight, 20),
		shiftOn(3, ShiftDay, 8),
		shiftOn(4, ShiftNight, 20),
	}

	got := CalculateInstability(shifts, testNow)

	if got.Score != 15 {
		t.Errorf("Score = %d, want 15", got.Score)
	}
	if got.VariabilityHours != 6.0 {
		t.Errorf("VariabilityHours = %.1f, want 6.0", got.VariabilityHours)
	}
}

// Wilder alternation must never score below mild jitter.
func TestCalculateInstability_Monotonic(t *testing.T) {
	jitter := []ShiftEntry{
		shiftOn(1, ShiftDay, 7),
		shiftOn(2, ShiftDay, 9),
		shiftOn(3, ShiftDay, 7),
		shiftOn(4, ShiftDay, 9),
	}
	alternating := []ShiftEntry{
		shiftOn(1, ShiftDay, 8),
		shiftOn(2, ShiftNight, 20),
		shiftOn(3, ShiftDay, 8),
		shiftOn(4, ShiftNight, 20),
	}

	jitterScore := CalculateInstability(jitter, testNow).Score
	alternatingScore := CalculateInstability(alternating, testNow).Score

	if alternatingScore <= jitterScore {
		t.Errorf("alternating score %d not above jitter score %d", alternatingScore, jitterScore)
	}
}

func TestCalculateInstability_TooFewShifts(t *testing.T) {
	tests := []struct {
		name   string
		shifts []ShiftEntry
	}{
		{"no shifts", nil},
		{"single shift", []ShiftEntry{shiftOn(1, ShiftDay, 8)}},
		{"off days do not count", []ShiftEntry{shiftOn(1, ShiftOff, 8), shiftOn(2, ShiftOff, 8), shiftOn(3, ShiftDay, 8)}},
		{"missing start times", []ShiftEntry{
			{Date: DateKey(testNow.AddDate(0, 0, -1)), Type: ShiftDay},
			{Date: DateKey(testNow.AddDate(0, 0, -2)), Type: ShiftNight},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateInstability(tt.shifts, testNow)

			if got.Score != 0 || got.ShiftsMeasured > 1 {
				t.Errorf("got score=%d measured=%d, want zero result", got.Score, got.ShiftsMeasured)
			}
		})
	}
}

func TestCalculateInstability_IgnoresShiftsOutsideWindow(t *testing.T) {
	shifts := []ShiftEntry{
		shiftOn(1, ShiftDay, 8),
		shiftOn(2, ShiftDay, 8),
		shiftOn(30, ShiftNight, 20), // too old to count
	}

	got := CalculateInstability(shifts, testNow)

	if got.ShiftsMeasured != 2 {
		t.Errorf("ShiftsMeasured = %d, want 2", got.ShiftsMeasured)
	}
	if got.Score != 0 {
		t.Errorf("Score = %d, want 0", got.Score)
	}
}

func TestInstabilityScore_Breakpoints(t *testing.T) {
	tests := []struct {
		std  float64
		want int
	}{
		{0, 0},
		{1.9, 0},
		{2, 5},
		{3, 8},
		{4, 10},
		{6, 15},
		{8, 20},
		{12, 20},
	}

	for _, tt := range tests {
		if got := instabilityScore(tt.std); got != tt.want {
			t.Errorf("instabilityScore(%.1f) = %d, want %d", tt.std, got, tt.want)
		}
	}
}
