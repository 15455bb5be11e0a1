package dispatch

import (
	"fmt"
	"strings"
	"time"
)

const (
	KindBookingConfirmed    = "booking_confirmed"
	KindBookingCancelled    = "booking_cancelled"
	KindRescheduleRequested = "reschedule_requested"
	KindReminder            = "reminder"
)

// Message is a rendered notification, channel-agnostic. SMS delivery uses
// Body alone.
type Message struct {
	Subject string
	Body    string
}

func greet(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Hi,"
	}
	return "Hi " + name + ","
}

func formatWhen(t time.Time) string {
	return t.UTC().Format("Mon, 02 Jan 2006 15:04 MST")
}

func ConfirmationMessage(name string, startTime time.Time) Message {
	return Message{
		Subject: "Your appointment is booked",
		Body: fmt.Sprintf("%s\n\nYour appointment on %s is confirmed. See you then!",
			greet(name), formatWhen(startTime)),
	}
}

func CancellationMessage(name string, startTime time.Time) Message {
	return Message{
		Subject: "Your appointment was cancelled",
		Body: fmt.Sprintf("%s\n\nYour appointment on %s has been cancelled.",
			greet(name), formatWhen(startTime)),
	}
}

func RescheduleAckMessage(name string) Message {
	return Message{
		Subject: "Reschedule request received",
		Body: fmt.Sprintf("%s\n\nWe received your reschedule request. The salon will review it and confirm the new time shortly.",
			greet(name)),
	}
}

func ReminderMessage(name string, startTime time.Time) Message {
	return Message{
		Subject: "Appointment reminder",
		Body: fmt.Sprintf("%s\n\nThis is a reminder for your appointment on %s.",
			greet(name), formatWhen(startTime)),
	}
}
