//go:build protogen

package salonref

import (
	"context"
	"time"

	"github.com/tomide-adeyemi/salonbook/libs/grpcx"
	salonv1 "github.com/tomide-adeyemi/salonbook/protos/gen/salon/v1"
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

// Resolver answers staff availability questions against the salon service.
// Slot computation needs the working window and break windows for a staff
// member on a concrete date.
type Resolver interface {
	GetDayAvailability(ctx context.Context, salonID, staffID string, date string) (DayAvailability, error)
}

type grpcResolver struct {
	client salonv1.SalonServiceClient
}

func NewResolver(addr string) (Resolver, error) {
	if addr == "" {
		return nil, nil
	}
	conn, err := grpcx.Dial(context.Background(), addr, grpcx.DialOptions{Timeout: 3 * time.Second})
	if err != nil {
		return nil, err
	}
	return &grpcResolver{client: salonv1.NewSalonServiceClient(conn)}, nil
}

func (r *grpcResolver) GetDayAvailability(ctx context.Context, salonID, staffID string, date string) (DayAvailability, error) {
	resp, err := r.client.GetDayAvailability(ctx, &salonv1.DayAvailabilityRequest{
		SalonId: salonID,
		StaffId: staffID,
		Date:    date,
	})
	if err != nil {
		return DayAvailability{}, err
	}
	out := DayAvailability{
		IsWorking: resp.GetIsWorking(),
		Timezone:  resp.GetTimezone(),
	}
	if resp.GetWorkStartUtc() != nil {
		out.WorkStartUTC = resp.GetWorkStartUtc().AsTime()
	}
	if resp.GetWorkEndUtc() != nil {
		out.WorkEndUTC = resp.GetWorkEndUtc().AsTime()
	}
	for _, b := range resp.GetBreaksUtc() {
		if b.GetStartUtc() == nil || b.GetEndUtc() == nil {
			continue
		}
		start := b.GetStartUtc().AsTime()
		end := b.GetEndUtc().AsTime()
		if end.After(start) {
			out.BreaksUTC = append(out.BreaksUTC, BreakWindow{StartUTC: start, EndUTC: end})
		}
	}
	return out, nil
}
