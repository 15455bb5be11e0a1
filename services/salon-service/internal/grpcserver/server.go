//go:build protogen

package grpcserver

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/tomide-adeyemi/salonbook/libs/db"
	salonv1 "github.com/tomide-adeyemi/salonbook/protos/gen/salon/v1"
	"github.com/tomide-adeyemi/salonbook/services/salon-service/internal/model"
	"github.com/tomide-adeyemi/salonbook/services/salon-service/internal/schedule"
	"github.com/tomide-adeyemi/salonbook/services/salon-service/internal/storage"
)

const defaultFreeMaxStaff = 3

type server struct {
	salonv1.UnimplementedSalonServiceServer
	pool *db.Pool
	repo *storage.Repository
}

func Register(grpcServer *grpc.Server, pool *db.Pool, repo *storage.Repository) {
	salonv1.RegisterSalonServiceServer(grpcServer, &server{pool: pool, repo: repo})
}

// GetDayAvailability resolves a staff member's working window for one
// calendar date, expressed in UTC. Breaks and approved time off come back
// as busy windows clipped to the shift; the caller subtracts them when
// computing bookable slots.
func (s *server) GetDayAvailability(ctx context.Context, req *salonv1.DayAvailabilityRequest) (*salonv1.DayAvailabilityResponse, error) {
	resp := &salonv1.DayAvailabilityResponse{Timezone: "UTC"}
	if req.GetSalonId() == "" || req.GetStaffId() == "" || req.GetDate() == "" {
		return resp, nil
	}

	loc := time.UTC
	salon, err := s.repo.GetSalon(ctx, req.GetSalonId())
	if err == nil && salon.Timezone != "" {
		if parsed, err := time.LoadLocation(salon.Timezone); err == nil {
			loc = parsed
			resp.Timezone = salon.Timezone
		}
	}

	dayLocal, err := time.ParseInLocation("2006-01-02", req.GetDate(), loc)
	if err != nil {
		return resp, nil
	}

	sched, err := s.repo.GetActiveScheduleForDay(ctx, req.GetSalonId(), req.GetStaffId(), schedule.DayOf(dayLocal), dayLocal)
	if err != nil {
		// No schedule row means the staff member does not work that day.
		return resp, nil
	}

	midnight := time.Date(dayLocal.Year(), dayLocal.Month(), dayLocal.Day(), 0, 0, 0, 0, loc)
	workStart := midnight.Add(time.Duration(sched.StartMin) * time.Minute).UTC()
	workEnd := midnight.Add(time.Duration(sched.EndMin) * time.Minute).UTC()
	if !workEnd.After(workStart) {
		return resp, nil
	}

	resp.IsWorking = true
	resp.WorkStartUtc = timestamppb.New(workStart)
	resp.WorkEndUtc = timestamppb.New(workEnd)

	if sched.BreakStartMin != schedule.NoBreak && sched.BreakEndMin != schedule.NoBreak {
		resp.BreaksUtc = append(resp.BreaksUtc, &salonv1.BreakWindow{
			StartUtc: timestamppb.New(midnight.Add(time.Duration(sched.BreakStartMin) * time.Minute).UTC()),
			EndUtc:   timestamppb.New(midnight.Add(time.Duration(sched.BreakEndMin) * time.Minute).UTC()),
		})
	}

	blocks, err := s.repo.ListTimeOff(ctx, req.GetSalonId(), req.GetStaffId(), workStart, workEnd, 200)
	if err != nil {
		// Time off is best effort here; the shift window alone is still usable.
		return resp, nil
	}
	for _, w := range clipBlocks(workStart, workEnd, blocks) {
		resp.BreaksUtc = append(resp.BreaksUtc, &salonv1.BreakWindow{
			StartUtc: timestamppb.New(w.start),
			EndUtc:   timestamppb.New(w.end),
		})
	}
	return resp, nil
}

func (s *server) GetSalonLimits(ctx context.Context, req *salonv1.SalonLimitsRequest) (*salonv1.SalonLimitsResponse, error) {
	resp := &salonv1.SalonLimitsResponse{MaxStaff: defaultFreeMaxStaff}
	if req.GetSalonId() == "" {
		return resp, nil
	}
	if salon, err := s.repo.GetSalon(ctx, req.GetSalonId()); err == nil {
		resp.Active = salon.IsActive
	}
	ent, found, err := s.repo.GetSalonEntitlements(ctx, req.GetSalonId())
	if err != nil || !found {
		return resp, nil
	}
	resp.MaxStaff = int32(ent.MaxStaff)
	resp.MaxAppointmentsPerMonth = int32(ent.MaxMonthlyBookings)
	return resp, nil
}

type window struct {
	start time.Time
	end   time.Time
}

// clipBlocks trims time-off records to the working window, dropping the
// ones that fall entirely outside it.
func clipBlocks(baseStart, baseEnd time.Time, blocks []model.TimeOff) []window {
	var out []window
	for _, t := range blocks {
		s := t.StartTime.UTC()
		e := t.EndTime.UTC()
		if e.Before(baseStart) || !s.Before(baseEnd) {
			continue
		}
		if s.Before(baseStart) {
			s = baseStart
		}
		if e.After(baseEnd) {
			e = baseEnd
		}
		if e.After(s) {
			out = append(out, window{start: s, end: e})
		}
	}
	return out
}
