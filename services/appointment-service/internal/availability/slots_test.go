package availability

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 4, 2, hour, min, 0, 0, time.UTC)
}

func TestAvailableSlots_AroundBusyInterval(t *testing.T) {
	busy := []Interval{{Start: at(9, 15), End: at(9, 45)}}

	slots := AvailableSlots(at(9, 0), at(10, 0), 15*time.Minute, 15*time.Minute, busy, at(0, 0))
	if len(slots) != 2 {
		t.Fatalf("slots = %d, want 2", len(slots))
	}
	if !slots[0].Equal(at(9, 0)) || !slots[1].Equal(at(9, 45)) {
		t.Fatalf("slots = %v, want 09:00 and 09:45", slots)
	}
}

func TestAvailableSlots_BackToBackDoesNotBlock(t *testing.T) {
	// Half-open intervals: an appointment ending at 09:30 does not block a
	// slot starting at 09:30.
	busy := []Interval{{Start: at(9, 0), End: at(9, 30)}}

	slots := AvailableSlots(at(9, 0), at(10, 0), 30*time.Minute, 30*time.Minute, busy, at(0, 0))
	if len(slots) != 1 {
		t.Fatalf("slots = %d, want 1", len(slots))
	}
	if !slots[0].Equal(at(9, 30)) {
		t.Fatalf("slot = %s, want 09:30", slots[0].Format(time.RFC3339))
	}
}

func TestAvailableSlots_SkipsPastStarts(t *testing.T) {
	now := at(9, 31)
	slots := AvailableSlots(at(9, 0), at(10, 0), 15*time.Minute, 15*time.Minute, nil, now)
	if len(slots) != 1 {
		t.Fatalf("slots = %d, want 1", len(slots))
	}
	if !slots[0].Equal(at(9, 45)) {
		t.Fatalf("slot = %s, want 09:45", slots[0].Format(time.RFC3339))
	}
}

func TestAvailableSlots_MergesOverlappingBusy(t *testing.T) {
	busy := []Interval{
		{Start: at(9, 30), End: at(10, 30)},
		{Start: at(10, 0), End: at(11, 0)},
		{Start: at(12, 0), End: at(12, 0)}, // empty, ignored
	}

	slots := AvailableSlots(at(9, 0), at(12, 0), 30*time.Minute, 30*time.Minute, busy, at(0, 0))
	want := []time.Time{at(9, 0), at(11, 0), at(11, 30)}
	if len(slots) != len(want) {
		t.Fatalf("slots = %v, want %v", slots, want)
	}
	for i := range want {
		if !slots[i].Equal(want[i]) {
			t.Fatalf("slots[%d] = %s, want %s", i, slots[i], want[i])
		}
	}
}

func TestAvailableSlots_DurationLongerThanWindow(t *testing.T) {
	if slots := AvailableSlots(at(9, 0), at(9, 30), time.Hour, 15*time.Minute, nil, at(0, 0)); slots != nil {
		t.Fatalf("slots = %v, want none", slots)
	}
}
