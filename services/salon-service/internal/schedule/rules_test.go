package schedule

import (
	"testing"
	"time"
)

func TestParseDay(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
		ok   bool
	}{
		{"monday", "monday", true},
		{" Tuesday ", "tuesday", true},
		{"SUNDAY", "sunday", true},
		{"funday", "", false},
		{"", "", false},
		{"mon", "", false},
	} {
		got, err := ParseDay(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("ParseDay(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("ParseDay(%q) accepted", tc.in)
		}
	}
}

func TestDayOf(t *testing.T) {
	// 2026-03-09 is a Monday.
	if got := DayOf(time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)); got != "monday" {
		t.Fatalf("DayOf = %q, want monday", got)
	}
	if got := DayOf(time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC)); got != "sunday" {
		t.Fatalf("DayOf = %q, want sunday", got)
	}
}

func TestParseClock(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want int
		ok   bool
	}{
		{"09:00", 540, true},
		{"00:00", 0, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"9:00", 0, false},
		{"09:60", 0, false},
		{"0900", 0, false},
		{"", 0, false},
	} {
		got, err := ParseClock(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("ParseClock(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("ParseClock(%q) accepted", tc.in)
		}
	}
}

func TestFormatClock_RoundTrips(t *testing.T) {
	for _, raw := range []string{"00:00", "09:05", "17:30", "23:59"} {
		mins, err := ParseClock(raw)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", raw, err)
		}
		if got := FormatClock(mins); got != raw {
			t.Fatalf("FormatClock(%d) = %q, want %q", mins, got, raw)
		}
	}
}

func TestNewShift(t *testing.T) {
	t.Run("valid without break", func(t *testing.T) {
		s, err := NewShift("monday", "09:00", "17:00", "", "")
		if err != nil {
			t.Fatal(err)
		}
		if s.HasBreak() {
			t.Fatal("unexpected break")
		}
		if s.StartMin != 540 || s.EndMin != 1020 {
			t.Fatalf("shift = %d..%d", s.StartMin, s.EndMin)
		}
	})

	t.Run("valid with break", func(t *testing.T) {
		s, err := NewShift("friday", "09:00", "17:00", "12:00", "13:00")
		if err != nil {
			t.Fatal(err)
		}
		if !s.HasBreak() || s.BreakStartMin != 720 || s.BreakEndMin != 780 {
			t.Fatalf("break = %d..%d", s.BreakStartMin, s.BreakEndMin)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		if _, err := NewShift("monday", "17:00", "09:00", "", ""); err == nil {
			t.Fatal("accepted reversed shift")
		}
	})

	t.Run("too short", func(t *testing.T) {
		if _, err := NewShift("monday", "09:00", "09:30", "", ""); err == nil {
			t.Fatal("accepted 30 minute shift")
		}
	})

	t.Run("too long", func(t *testing.T) {
		if _, err := NewShift("monday", "06:00", "23:00", "", ""); err == nil {
			t.Fatal("accepted 17 hour shift")
		}
	})

	t.Run("break outside shift", func(t *testing.T) {
		if _, err := NewShift("monday", "09:00", "17:00", "08:00", "09:30"); err == nil {
			t.Fatal("accepted break before shift start")
		}
	})

	t.Run("break half set", func(t *testing.T) {
		if _, err := NewShift("monday", "09:00", "17:00", "12:00", ""); err == nil {
			t.Fatal("accepted break with no end")
		}
	})
}

func TestValidateEffectiveRange(t *testing.T) {
	from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	until := from.AddDate(0, 3, 0)

	if err := ValidateEffectiveRange(&from, &until); err != nil {
		t.Fatal(err)
	}
	if err := ValidateEffectiveRange(nil, nil); err != nil {
		t.Fatal(err)
	}
	if err := ValidateEffectiveRange(&until, &from); err == nil {
		t.Fatal("accepted inverted range")
	}
	if err := ValidateEffectiveRange(&from, &from); err == nil {
		t.Fatal("accepted empty range")
	}
}
