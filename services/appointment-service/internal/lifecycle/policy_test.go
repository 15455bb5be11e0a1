package lifecycle

import (
	"testing"
	"time"

	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/apperr"
)

func TestCheckCancellationWindow_BoundaryAllowed(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	start := now.Add(MinCancellationHours * time.Hour)

	if err := CheckCancellationWindow(start, now); err != nil {
		t.Fatalf("exactly %dh of notice must be allowed, got %v", MinCancellationHours, err)
	}
}

func TestCheckCancellationWindow_JustInsideRefused(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	start := now.Add(MinCancellationHours*time.Hour - time.Millisecond)

	err := CheckCancellationWindow(start, now)
	if err == nil {
		t.Fatal("expected refusal just inside the window")
	}
	if apperr.KindOf(err) != apperr.KindPolicyViolation {
		t.Fatalf("expected policy_violation, got %s", apperr.KindOf(err))
	}
}

func TestCheckCancellationWindow_ShortNotice(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	start := now.Add(4 * time.Hour)

	err := CheckCancellationWindow(start, now)
	if err == nil {
		t.Fatal("expected refusal with 4h notice")
	}
	want := "Cannot cancel within 24 hours of appointment. Please contact the salon directly."
	if err.Error() != want {
		t.Fatalf("message mismatch:\n got %q\nwant %q", err.Error(), want)
	}
}

func TestHoursUntil(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	if got := HoursUntil(now.Add(90*time.Minute), now); got != 1.5 {
		t.Fatalf("expected 1.5 hours, got %v", got)
	}
	if got := HoursUntil(now.Add(-time.Hour), now); got != -1 {
		t.Fatalf("expected -1 hours, got %v", got)
	}
}
