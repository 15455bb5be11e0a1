package model

import (
	"time"

	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/lifecycle"
)

type Appointment struct {
	ID          string
	SalonID     string
	CustomerID  string
	StaffID     string
	ServiceID   string
	StartTime   time.Time
	EndTime     time.Time
	DurationMin int
	Status      lifecycle.Status
	UpdatedByID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Salon is the locally cached tenant record appointment flows consult. It is
// maintained from salon-service events, never written by user requests.
type Salon struct {
	ID       string
	Name     string
	OwnerID  string
	IsActive bool
}

// MessageThread is the communication record a reschedule request opens.
type MessageThread struct {
	ID              string
	SalonID         string
	CustomerID      string
	StaffID         string
	AppointmentID   string
	Subject         string
	Status          string
	Priority        string
	UnreadStaff     int
	Metadata        []byte
	LastMessageByID string
	CreatedAt       time.Time
}
