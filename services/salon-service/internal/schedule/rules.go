package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tomide-adeyemi/salonbook/services/salon-service/internal/apperr"
)

// Days in storage order. Schedules key on the lowercase day name rather than
// a numeric weekday so rows read naturally and reorderings can't corrupt
// stored data.
var Days = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

const (
	// NoBreak marks a shift without a break window.
	NoBreak = -1

	minShiftMinutes = 60
	maxShiftMinutes = 16 * 60
)

// ParseDay normalizes and validates a day-of-week name.
func ParseDay(raw string) (string, error) {
	day := strings.ToLower(strings.TrimSpace(raw))
	for _, d := range Days {
		if d == day {
			return d, nil
		}
	}
	return "", apperr.Validationf("Invalid day of week: %s", raw)
}

// DayOf maps a concrete date to its schedule day name.
func DayOf(t time.Time) string {
	return Days[int(t.Weekday())]
}

// ParseClock converts "HH:MM" to minutes from midnight.
func ParseClock(raw string) (int, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 {
		return 0, apperr.Validationf("Invalid time format: %s", raw)
	}
	hh, err := strconv.Atoi(parts[0])
	if err != nil || hh < 0 || hh > 23 || len(parts[0]) != 2 {
		return 0, apperr.Validationf("Invalid time format: %s", raw)
	}
	mm, err := strconv.Atoi(parts[1])
	if err != nil || mm < 0 || mm > 59 || len(parts[1]) != 2 {
		return 0, apperr.Validationf("Invalid time format: %s", raw)
	}
	return hh*60 + mm, nil
}

// FormatClock renders minutes from midnight as "HH:MM".
func FormatClock(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// Shift is a validated weekly working window.
type Shift struct {
	Day           string
	StartMin      int
	EndMin        int
	BreakStartMin int
	BreakEndMin   int
}

// NewShift validates one schedule entry: the shift must run forward, stay
// between 1 and 16 hours, and any break must sit strictly inside it.
func NewShift(day, start, end, breakStart, breakEnd string) (Shift, error) {
	d, err := ParseDay(day)
	if err != nil {
		return Shift{}, err
	}
	startMin, err := ParseClock(start)
	if err != nil {
		return Shift{}, err
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return Shift{}, err
	}
	if endMin <= startMin {
		return Shift{}, apperr.Validation("End time must be after start time")
	}
	if length := endMin - startMin; length < minShiftMinutes || length > maxShiftMinutes {
		return Shift{}, apperr.Validation("Shift must be between 1 and 16 hours")
	}

	s := Shift{Day: d, StartMin: startMin, EndMin: endMin, BreakStartMin: NoBreak, BreakEndMin: NoBreak}

	hasBreakStart := strings.TrimSpace(breakStart) != ""
	hasBreakEnd := strings.TrimSpace(breakEnd) != ""
	if hasBreakStart != hasBreakEnd {
		return Shift{}, apperr.Validation("Break start and end must both be set")
	}
	if !hasBreakStart {
		return s, nil
	}

	bs, err := ParseClock(breakStart)
	if err != nil {
		return Shift{}, err
	}
	be, err := ParseClock(breakEnd)
	if err != nil {
		return Shift{}, err
	}
	if be <= bs {
		return Shift{}, apperr.Validation("Break end must be after break start")
	}
	if bs < startMin || be > endMin {
		return Shift{}, apperr.Validation("Break must be within working hours")
	}
	s.BreakStartMin = bs
	s.BreakEndMin = be
	return s, nil
}

// HasBreak reports whether the shift carries a break window.
func (s Shift) HasBreak() bool {
	return s.BreakStartMin != NoBreak && s.BreakEndMin != NoBreak
}

// ValidateEffectiveRange checks the optional date bounds on a schedule.
func ValidateEffectiveRange(from, until *time.Time) error {
	if from != nil && until != nil && !until.After(*from) {
		return apperr.Validation("Effective until must be after effective from")
	}
	return nil
}
