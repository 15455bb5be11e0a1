package model

import "time"

type Salon struct {
	ID        string
	Name      string
	OwnerID   string
	Timezone  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Staff struct {
	ID        string
	SalonID   string
	UserID    string
	Name      string
	IsActive  bool
	CreatedAt time.Time
}

type SalonService struct {
	ID          string
	SalonID     string
	Name        string
	DurationMin int
	Price       string
	Description string
	CreatedAt   time.Time
}

// StaffSchedule is one weekly recurring shift. Clock fields are minutes from
// local midnight; BreakStart/BreakEnd are -1 when the shift has no break.
// At most one active schedule may exist per (staff, salon, day).
type StaffSchedule struct {
	ID             string
	SalonID        string
	StaffID        string
	DayOfWeek      string
	StartMin       int
	EndMin         int
	BreakStartMin  int
	BreakEndMin    int
	EffectiveFrom  *time.Time
	EffectiveUntil *time.Time
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type TimeOff struct {
	ID        string
	StaffID   string
	StartTime time.Time
	EndTime   time.Time
	Reason    string
	CreatedAt time.Time
}
