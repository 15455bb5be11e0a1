package lifecycle

import "testing"

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"pending", "confirmed", "cancelled", "completed", "no_show"} {
		if _, ok := ParseStatus(valid); !ok {
			t.Fatalf("expected %q to parse", valid)
		}
	}
	if _, ok := ParseStatus("booked"); ok {
		t.Fatal("unknown status must not parse")
	}
}

func TestTerminal(t *testing.T) {
	if !StatusCancelled.Terminal() || !StatusCompleted.Terminal() {
		t.Fatal("cancelled and completed are terminal")
	}
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusNoShow} {
		if s.Terminal() {
			t.Fatalf("%s must not be terminal", s)
		}
	}
}

func TestCanCancel(t *testing.T) {
	if !CanCancel(StatusPending) || !CanCancel(StatusConfirmed) {
		t.Fatal("pending and confirmed appointments are cancellable")
	}
	for _, s := range []Status{StatusCancelled, StatusCompleted, StatusNoShow} {
		if CanCancel(s) {
			t.Fatalf("%s must not be cancellable by the customer", s)
		}
	}
}

func TestCanRequestReschedule(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusNoShow} {
		if !CanRequestReschedule(s) {
			t.Fatalf("%s should allow a reschedule request", s)
		}
	}
	for _, s := range []Status{StatusCancelled, StatusCompleted} {
		if CanRequestReschedule(s) {
			t.Fatalf("%s is terminal for customer actions", s)
		}
	}
}
