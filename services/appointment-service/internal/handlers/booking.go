package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tomide-adeyemi/salonbook/libs/db"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/availability"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/lifecycle"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/model"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/outbox"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/salonref"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/storage"
)

// BookingHandler serves appointment creation and slot discovery. New
// appointments start pending; salon staff confirm them out of band.
type BookingHandler struct {
	repo       *storage.AppointmentRepository
	salons     *storage.SalonCacheRepository
	outboxRepo *outbox.Repository
	resolver   salonref.Resolver
	logger     *slog.Logger
}

func NewBookingHandler(repo *storage.AppointmentRepository, salons *storage.SalonCacheRepository, outboxRepo *outbox.Repository, resolver salonref.Resolver, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{
		repo:       repo,
		salons:     salons,
		outboxRepo: outboxRepo,
		resolver:   resolver,
		logger:     logger,
	}
}

type createRequest struct {
	SalonID   string `json:"salon_id"`
	StaffID   string `json:"staff_id"`
	ServiceID string `json:"service_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type createResponse struct {
	AppointmentID string `json:"appointment_id"`
	Status        string `json:"status"`
}

type slotItem struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	customerID := callerID(r)
	if customerID == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.SalonID = strings.TrimSpace(req.SalonID)
	req.StaffID = strings.TrimSpace(req.StaffID)
	req.ServiceID = strings.TrimSpace(req.ServiceID)
	if req.SalonID == "" || req.StaffID == "" || req.ServiceID == "" {
		writeError(w, http.StatusBadRequest, "salon_id, staff_id, and service_id required")
		return
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_time")
		return
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_time")
		return
	}
	if !endTime.After(startTime) {
		writeError(w, http.StatusBadRequest, "end_time must be after start_time")
		return
	}
	if !startTime.After(time.Now()) {
		writeError(w, http.StatusBadRequest, "start_time must be in the future")
		return
	}

	ctx := r.Context()

	salon, err := h.salons.Get(ctx, req.SalonID)
	if err != nil || !salon.IsActive {
		writeError(w, http.StatusNotFound, "Salon not available")
		return
	}

	if h.resolver != nil {
		ok, err := h.withinWorkingHours(ctx, req.SalonID, req.StaffID, startTime, endTime)
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, "availability check unavailable")
			return
		}
		if !ok {
			writeError(w, http.StatusUnprocessableEntity, "Requested time is outside staff working hours")
			return
		}
	}

	appt := &model.Appointment{
		SalonID:     req.SalonID,
		CustomerID:  customerID,
		StaffID:     req.StaffID,
		ServiceID:   req.ServiceID,
		StartTime:   startTime,
		EndTime:     endTime,
		DurationMin: int(endTime.Sub(startTime) / time.Minute),
		Status:      lifecycle.StatusPending,
	}

	tx, err := h.repo.Begin(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	id, err := h.repo.Create(ctx, tx, appt)
	if err != nil {
		if db.IsExclusionViolation(err) {
			writeError(w, http.StatusConflict, "Time slot is not available")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	payload, err := json.Marshal(map[string]any{
		"appointment_id": id,
		"salon_id":       appt.SalonID,
		"customer_id":    appt.CustomerID,
		"staff_id":       appt.StaffID,
		"service_id":     appt.ServiceID,
		"start_time":     appt.StartTime.UTC().Format(time.RFC3339),
		"end_time":       appt.EndTime.UTC().Format(time.RFC3339),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "appointment",
		AggregateID:   id,
		EventType:     "appointment.created.v1",
		Payload:       payload,
	}); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := tx.Commit(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, createResponse{AppointmentID: id, Status: string(lifecycle.StatusPending)})
}

func (h *BookingHandler) Slots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	salonID := strings.TrimSpace(r.URL.Query().Get("salon_id"))
	staffID := strings.TrimSpace(r.URL.Query().Get("staff_id"))
	dateStr := strings.TrimSpace(r.URL.Query().Get("date"))
	if salonID == "" || staffID == "" || dateStr == "" {
		writeError(w, http.StatusBadRequest, "salon_id, staff_id, and date are required")
		return
	}

	durationMins := 30
	if v := strings.TrimSpace(r.URL.Query().Get("duration_minutes")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 8*60 {
			writeError(w, http.StatusBadRequest, "invalid duration_minutes")
			return
		}
		durationMins = n
	}
	stepMins := 15

	window, breaks, ok := h.resolveDayWindow(r.Context(), salonID, staffID, dateStr, r)
	if !ok {
		writeJSON(w, http.StatusOK, []slotItem{})
		return
	}

	active, err := h.repo.ListActiveIntervals(r.Context(), salonID, staffID, window.Start, window.End)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	busy := make([]availability.Interval, 0, len(active)+len(breaks))
	for _, a := range active {
		busy = append(busy, availability.Interval{Start: a.StartTime, End: a.EndTime})
	}
	busy = append(busy, breaks...)

	starts := availability.AvailableSlots(
		window.Start,
		window.End,
		time.Duration(durationMins)*time.Minute,
		time.Duration(stepMins)*time.Minute,
		busy,
		time.Now().UTC(),
	)

	items := make([]slotItem, 0, len(starts))
	for _, s := range starts {
		items = append(items, slotItem{
			StartTime: s.UTC().Format(time.RFC3339),
			EndTime:   s.Add(time.Duration(durationMins) * time.Minute).UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, items)
}

// resolveDayWindow asks salon-service for the staff member's working window
// and breaks. Without a resolver it falls back to query-param workday hours
// so the service stays usable in dev builds.
func (h *BookingHandler) resolveDayWindow(ctx context.Context, salonID, staffID, dateStr string, r *http.Request) (availability.Interval, []availability.Interval, bool) {
	if h.resolver != nil {
		reqCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		day, err := h.resolver.GetDayAvailability(reqCtx, salonID, staffID, dateStr)
		if err == nil {
			if !day.IsWorking || day.WorkStartUTC.IsZero() || !day.WorkEndUTC.After(day.WorkStartUTC) {
				return availability.Interval{}, nil, false
			}
			var breaks []availability.Interval
			for _, b := range day.BreaksUTC {
				breaks = append(breaks, availability.Interval{Start: b.StartUTC, End: b.EndUTC})
			}
			return availability.Interval{Start: day.WorkStartUTC.UTC(), End: day.WorkEndUTC.UTC()}, breaks, true
		}
		h.logger.Warn("day availability fetch failed; falling back to query params", "err", err)
	}

	day, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		return availability.Interval{}, nil, false
	}
	workStart := strings.TrimSpace(r.URL.Query().Get("workday_start"))
	if workStart == "" {
		workStart = "09:00"
	}
	workEnd := strings.TrimSpace(r.URL.Query().Get("workday_end"))
	if workEnd == "" {
		workEnd = "17:00"
	}
	startClock, err := time.Parse("15:04", workStart)
	if err != nil {
		return availability.Interval{}, nil, false
	}
	endClock, err := time.Parse("15:04", workEnd)
	if err != nil {
		return availability.Interval{}, nil, false
	}
	windowStart := time.Date(day.Year(), day.Month(), day.Day(), startClock.Hour(), startClock.Minute(), 0, 0, time.UTC)
	windowEnd := time.Date(day.Year(), day.Month(), day.Day(), endClock.Hour(), endClock.Minute(), 0, 0, time.UTC)
	if !windowEnd.After(windowStart) {
		return availability.Interval{}, nil, false
	}
	return availability.Interval{Start: windowStart, End: windowEnd}, nil, true
}

func (h *BookingHandler) withinWorkingHours(ctx context.Context, salonID, staffID string, start, end time.Time) (bool, error) {
	reqCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	day, err := h.resolver.GetDayAvailability(reqCtx, salonID, staffID, start.UTC().Format("2006-01-02"))
	if err != nil {
		return false, err
	}
	if !day.IsWorking {
		return false, nil
	}
	startUTC := start.UTC()
	endUTC := end.UTC()
	if startUTC.Before(day.WorkStartUTC) || endUTC.After(day.WorkEndUTC) {
		return false, nil
	}
	for _, b := range day.BreaksUTC {
		if startUTC.Before(b.EndUTC) && b.StartUTC.Before(endUTC) {
			return false, nil
		}
	}
	return true, nil
}
