package lifecycle

// Status is the appointment lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return Status(s), true
	}
	return "", false
}

// Terminal reports whether no further customer-initiated transition is
// permitted from s. Staff overrides go through a different path and are not
// modelled here.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// CanCancel reports whether a customer cancellation may move s to cancelled.
func CanCancel(s Status) bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanRequestReschedule reports whether a reschedule request is allowed from
// s. The request re-asserts pending; it never moves the appointment time.
func CanRequestReschedule(s Status) bool {
	return !s.Terminal()
}
