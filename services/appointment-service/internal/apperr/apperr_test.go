package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	if KindOf(NotFound("missing")) != KindNotFound {
		t.Fatal("expected not_found kind")
	}
	if KindOf(PolicyViolation("too late")) != KindPolicyViolation {
		t.Fatal("expected policy_violation kind")
	}
	if KindOf(errors.New("driver broke")) != KindSystem {
		t.Fatal("unclassified errors must map to system")
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("cancel: %w", Conflict("Appointment is already cancelled"))
	if KindOf(err) != KindConflict {
		t.Fatal("expected conflict kind through wrapping")
	}
}

func TestSystemPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := System("failed to cancel appointment", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be unwrappable")
	}
	if err.Error() != "failed to cancel appointment" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}
