package dispatch

import (
	"strings"
	"testing"
	"time"
)

func TestConfirmationMessage(t *testing.T) {
	start := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	m := ConfirmationMessage("Ada", start)

	if m.Subject != "Your appointment is booked" {
		t.Fatalf("subject = %q", m.Subject)
	}
	if !strings.HasPrefix(m.Body, "Hi Ada,") {
		t.Fatalf("body should greet by name, got %q", m.Body)
	}
	if !strings.Contains(m.Body, "Tue, 10 Mar 2026 14:30 UTC") {
		t.Fatalf("body should contain the UTC start time, got %q", m.Body)
	}
}

func TestGreetingWithoutName(t *testing.T) {
	m := ReminderMessage("  ", time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	if !strings.HasPrefix(m.Body, "Hi,") {
		t.Fatalf("blank name should fall back to a bare greeting, got %q", m.Body)
	}
}

func TestCancellationMessageConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	m := CancellationMessage("Bo", time.Date(2026, 3, 10, 15, 0, 0, 0, loc))
	if !strings.Contains(m.Body, "14:00 UTC") {
		t.Fatalf("local start times should render in UTC, got %q", m.Body)
	}
}
