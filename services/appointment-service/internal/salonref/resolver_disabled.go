//go:build !protogen

package salonref

import (
	"context"
	"time"
)

type DayAvailability struct {
	IsWorking    bool
	WorkStartUTC time.Time
	WorkEndUTC   time.Time
	BreaksUTC    []BreakWindow
	Timezone     string
}

type BreakWindow struct {
	StartUTC time.Time
	EndUTC   time.Time
}

type Resolver interface {
	GetDayAvailability(ctx context.Context, salonID, staffID string, date string) (DayAvailability, error)
}

// NewResolver returns a nil resolver when built without generated gRPC code;
// callers fall back to local data.
func NewResolver(_ string) (Resolver, error) {
	return nil, nil
}
