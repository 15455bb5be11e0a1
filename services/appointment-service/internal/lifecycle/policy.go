package lifecycle

import (
	"fmt"
	"time"

	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/apperr"
)

// MinCancellationHours is the minimum notice a customer must give before
// cancelling. Inside that window the salon has to be contacted directly.
const MinCancellationHours = 24

// HoursUntil returns the fractional number of hours between now and start.
// Negative once the appointment has begun.
func HoursUntil(start, now time.Time) float64 {
	return float64(start.Sub(now).Milliseconds()) / float64(time.Hour.Milliseconds())
}

// CheckCancellationWindow refuses a cancellation made with less than
// MinCancellationHours of notice. The comparison is a strict less-than on
// the unrounded quotient: an appointment starting exactly at the threshold
// may still be cancelled.
func CheckCancellationWindow(start, now time.Time) error {
	if HoursUntil(start, now) < MinCancellationHours {
		return apperr.PolicyViolation(fmt.Sprintf(
			"Cannot cancel within %d hours of appointment. Please contact the salon directly.",
			MinCancellationHours,
		))
	}
	return nil
}
