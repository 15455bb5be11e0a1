package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tomide-adeyemi/salonbook/libs/db"
	"github.com/tomide-adeyemi/salonbook/services/salon-service/internal/apperr"
	"github.com/tomide-adeyemi/salonbook/services/salon-service/internal/model"
	"github.com/tomide-adeyemi/salonbook/services/salon-service/internal/outbox"
	"github.com/tomide-adeyemi/salonbook/services/salon-service/internal/schedule"
	"github.com/tomide-adeyemi/salonbook/services/salon-service/internal/schedules"
	"github.com/tomide-adeyemi/salonbook/services/salon-service/internal/storage"
)

// Handler serves salon, staff, and schedule management. Caller identity
// arrives in gateway-stamped headers; routes assume the gateway already
// enforced an owner/admin role for this path group.
type Handler struct {
	store      *storage.Store
	schedules  *schedules.Service
	outboxRepo *outbox.Repository
	logger     *slog.Logger
}

func New(store *storage.Store, scheduleSvc *schedules.Service, outboxRepo *outbox.Repository, logger *slog.Logger) *Handler {
	return &Handler{store: store, schedules: scheduleSvc, outboxRepo: outboxRepo, logger: logger}
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Error: msg})
}

func writeAppError(w http.ResponseWriter, err error) {
	msg := "internal error"
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindPermission:
		status = http.StatusForbidden
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindValidation:
		status = http.StatusBadRequest
	}
	if status != http.StatusInternalServerError {
		msg = apperr.Message(err)
	}
	writeError(w, status, msg)
}

func caller(r *http.Request) schedules.Caller {
	return schedules.Caller{
		UserID: strings.TrimSpace(r.Header.Get("X-User-Id")),
		Role:   strings.TrimSpace(r.Header.Get("X-Role")),
	}
}

func salonIDFrom(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get("X-Salon-Id")); v != "" {
		return v
	}
	return strings.TrimSpace(r.URL.Query().Get("salon_id"))
}

func (h *Handler) GetSalon(w http.ResponseWriter, r *http.Request) {
	salonID := salonIDFrom(r)
	if salonID == "" {
		writeError(w, http.StatusBadRequest, "salon_id required")
		return
	}

	salon, err := h.store.GetSalon(r.Context(), salonID)
	if err != nil {
		if h.store.SalonNotFound(err) {
			writeError(w, http.StatusNotFound, "Salon not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"salon_id":  salon.ID,
		"name":      salon.Name,
		"timezone":  salon.Timezone,
		"is_active": salon.IsActive,
	})
}

// UpdateSalon writes the profile and emits salon.updated.v1 in the same
// transaction so downstream caches converge on the new liveness flag.
func (h *Handler) UpdateSalon(w http.ResponseWriter, r *http.Request) {
	c := caller(r)
	salonID := salonIDFrom(r)
	if salonID == "" {
		writeError(w, http.StatusBadRequest, "salon_id required")
		return
	}

	var req struct {
		Name     string `json:"name"`
		Timezone string `json:"timezone"`
		IsActive *bool  `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}
	req.Timezone = strings.TrimSpace(req.Timezone)
	if req.Timezone == "" {
		req.Timezone = "UTC"
	}
	if _, err := time.LoadLocation(req.Timezone); err != nil {
		writeError(w, http.StatusBadRequest, "invalid timezone")
		return
	}

	ctx := r.Context()
	salon, err := h.store.GetSalon(ctx, salonID)
	if err != nil {
		if h.store.SalonNotFound(err) {
			writeError(w, http.StatusNotFound, "Salon not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if c.Role != "admin" && c.UserID != salon.OwnerID {
		writeError(w, http.StatusForbidden, "Not authorized to manage this salon")
		return
	}

	isActive := salon.IsActive
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	repo := h.store.Repository()
	tx, err := repo.Begin(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := repo.UpdateSalon(ctx, tx, salonID, req.Name, req.Timezone, isActive); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	payload, err := json.Marshal(map[string]any{
		"salon_id":  salonID,
		"name":      req.Name,
		"owner_id":  salon.OwnerID,
		"is_active": isActive,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "salon",
		AggregateID:   salonID,
		EventType:     "salon.updated.v1",
		Payload:       payload,
	}); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := tx.Commit(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"salon_id": salonID, "is_active": isActive})
}

// CreateStaff enforces the subscription staff cap from the locally cached
// entitlements before inserting.
func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	c := caller(r)
	salonID := salonIDFrom(r)
	if salonID == "" {
		writeError(w, http.StatusBadRequest, "salon_id required")
		return
	}

	var req struct {
		UserID string `json:"user_id"`
		Name   string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}

	ctx := r.Context()
	salon, err := h.store.GetSalon(ctx, salonID)
	if err != nil {
		if h.store.SalonNotFound(err) {
			writeError(w, http.StatusNotFound, "Salon not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if c.Role != "admin" && c.UserID != salon.OwnerID {
		writeError(w, http.StatusForbidden, "Not authorized to manage this salon")
		return
	}

	repo := h.store.Repository()
	const defaultFreeMaxStaff = 3
	maxStaff := defaultFreeMaxStaff
	if ent, ok, err := repo.GetSalonEntitlements(ctx, salonID); err == nil && ok && ent.MaxStaff > 0 {
		maxStaff = ent.MaxStaff
	}
	count, err := repo.CountActiveStaff(ctx, salonID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if count >= maxStaff {
		writeError(w, http.StatusPaymentRequired, "Staff limit reached for current plan")
		return
	}

	id, err := repo.CreateStaff(ctx, salonID, strings.TrimSpace(req.UserID), req.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"staff_id": id})
}

func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	salonID := salonIDFrom(r)
	if salonID == "" {
		writeError(w, http.StatusBadRequest, "salon_id required")
		return
	}
	limit := 100
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	staff, err := h.store.Repository().ListStaff(r.Context(), salonID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	items := make([]map[string]any, 0, len(staff))
	for _, s := range staff {
		items = append(items, map[string]any{
			"staff_id":  s.ID,
			"user_id":   s.UserID,
			"name":      s.Name,
			"is_active": s.IsActive,
		})
	}
	writeJSON(w, http.StatusOK, items)
}

// CreateService adds an entry to the salon's service menu. The id it returns
// is what booking requests reference as service_id.
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	c := caller(r)
	salonID := salonIDFrom(r)
	if salonID == "" {
		writeError(w, http.StatusBadRequest, "salon_id required")
		return
	}

	var req struct {
		Name            string `json:"name"`
		DurationMinutes int    `json:"duration_minutes"`
		Price           string `json:"price"`
		Description     string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}
	if req.DurationMinutes <= 0 || req.DurationMinutes > 8*60 {
		writeError(w, http.StatusBadRequest, "duration_minutes must be between 1 and 480")
		return
	}

	ctx := r.Context()
	salon, err := h.store.GetSalon(ctx, salonID)
	if err != nil {
		if h.store.SalonNotFound(err) {
			writeError(w, http.StatusNotFound, "Salon not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if c.Role != "admin" && c.UserID != salon.OwnerID {
		writeError(w, http.StatusForbidden, "Not authorized to manage this salon")
		return
	}

	id, err := h.store.Repository().CreateService(ctx, model.SalonService{
		SalonID:     salonID,
		Name:        req.Name,
		DurationMin: req.DurationMinutes,
		Price:       strings.TrimSpace(req.Price),
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"service_id": id})
}

func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	salonID := salonIDFrom(r)
	if salonID == "" {
		writeError(w, http.StatusBadRequest, "salon_id required")
		return
	}
	limit := 100
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	services, err := h.store.Repository().ListServices(r.Context(), salonID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	items := make([]map[string]any, 0, len(services))
	for _, s := range services {
		items = append(items, map[string]any{
			"service_id":       s.ID,
			"name":             s.Name,
			"duration_minutes": s.DurationMin,
			"price":            s.Price,
			"description":      s.Description,
		})
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	c := caller(r)
	salonID := salonIDFrom(r)
	serviceID := strings.TrimSpace(r.URL.Query().Get("service_id"))
	if salonID == "" || serviceID == "" {
		writeError(w, http.StatusBadRequest, "salon_id and service_id required")
		return
	}

	ctx := r.Context()
	salon, err := h.store.GetSalon(ctx, salonID)
	if err != nil {
		if h.store.SalonNotFound(err) {
			writeError(w, http.StatusNotFound, "Salon not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if c.Role != "admin" && c.UserID != salon.OwnerID {
		writeError(w, http.StatusForbidden, "Not authorized to manage this salon")
		return
	}

	deleted, err := h.store.Repository().DeleteService(ctx, serviceID, salonID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Service not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"service_id": serviceID})
}

type scheduleRequest struct {
	StaffID        string `json:"staff_id"`
	Day            string `json:"day_of_week"`
	Start          string `json:"start_time"`
	End            string `json:"end_time"`
	BreakStart     string `json:"break_start"`
	BreakEnd       string `json:"break_end"`
	EffectiveFrom  string `json:"effective_from"`
	EffectiveUntil string `json:"effective_until"`
}

func (req scheduleRequest) toInput() (schedules.ScheduleInput, error) {
	in := schedules.ScheduleInput{
		Day:        req.Day,
		Start:      req.Start,
		End:        req.End,
		BreakStart: req.BreakStart,
		BreakEnd:   req.BreakEnd,
	}
	if raw := strings.TrimSpace(req.EffectiveFrom); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return in, apperr.Validation("Invalid effective_from date")
		}
		in.EffectiveFrom = &t
	}
	if raw := strings.TrimSpace(req.EffectiveUntil); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return in, apperr.Validation("Invalid effective_until date")
		}
		in.EffectiveUntil = &t
	}
	return in, nil
}

func scheduleItem(s model.StaffSchedule) map[string]any {
	item := map[string]any{
		"schedule_id": s.ID,
		"staff_id":    s.StaffID,
		"day_of_week": s.DayOfWeek,
		"start_time":  schedule.FormatClock(s.StartMin),
		"end_time":    schedule.FormatClock(s.EndMin),
		"is_active":   s.IsActive,
	}
	if s.BreakStartMin != schedule.NoBreak {
		item["break_start"] = schedule.FormatClock(s.BreakStartMin)
		item["break_end"] = schedule.FormatClock(s.BreakEndMin)
	}
	if s.EffectiveFrom != nil {
		item["effective_from"] = s.EffectiveFrom.Format("2006-01-02")
	}
	if s.EffectiveUntil != nil {
		item["effective_until"] = s.EffectiveUntil.Format("2006-01-02")
	}
	return item
}

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	salonID := salonIDFrom(r)
	if salonID == "" {
		writeError(w, http.StatusBadRequest, "salon_id required")
		return
	}
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.StaffID = strings.TrimSpace(req.StaffID)
	if req.StaffID == "" {
		writeError(w, http.StatusBadRequest, "staff_id required")
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeAppError(w, err)
		return
	}

	id, err := h.schedules.Create(r.Context(), caller(r), salonID, req.StaffID, in)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"schedule_id": id})
}

func (h *Handler) SetWeeklySchedules(w http.ResponseWriter, r *http.Request) {
	salonID := salonIDFrom(r)
	if salonID == "" {
		writeError(w, http.StatusBadRequest, "salon_id required")
		return
	}
	var req struct {
		StaffID   string            `json:"staff_id"`
		Schedules []scheduleRequest `json:"schedules"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.StaffID = strings.TrimSpace(req.StaffID)
	if req.StaffID == "" {
		writeError(w, http.StatusBadRequest, "staff_id required")
		return
	}

	inputs := make([]schedules.ScheduleInput, 0, len(req.Schedules))
	for _, sr := range req.Schedules {
		in, err := sr.toInput()
		if err != nil {
			writeAppError(w, err)
			return
		}
		inputs = append(inputs, in)
	}

	ids, err := h.schedules.SetWeek(r.Context(), caller(r), salonID, req.StaffID, inputs)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"schedule_ids": ids})
}

func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	salonID := salonIDFrom(r)
	scheduleID := strings.TrimSpace(r.URL.Query().Get("schedule_id"))
	if salonID == "" || scheduleID == "" {
		writeError(w, http.StatusBadRequest, "salon_id and schedule_id required")
		return
	}
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeAppError(w, err)
		return
	}

	if err := h.schedules.Update(r.Context(), caller(r), salonID, scheduleID, in); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"schedule_id": scheduleID})
}

func (h *Handler) RemoveSchedule(w http.ResponseWriter, r *http.Request) {
	salonID := salonIDFrom(r)
	scheduleID := strings.TrimSpace(r.URL.Query().Get("schedule_id"))
	if salonID == "" || scheduleID == "" {
		writeError(w, http.StatusBadRequest, "salon_id and schedule_id required")
		return
	}
	if err := h.schedules.Remove(r.Context(), caller(r), salonID, scheduleID); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"schedule_id": scheduleID, "status": "removed"})
}

func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	salonID := salonIDFrom(r)
	staffID := strings.TrimSpace(r.URL.Query().Get("staff_id"))
	if salonID == "" || staffID == "" {
		writeError(w, http.StatusBadRequest, "salon_id and staff_id required")
		return
	}

	scheds, err := h.schedules.List(r.Context(), caller(r), salonID, staffID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	items := make([]map[string]any, 0, len(scheds))
	for _, s := range scheds {
		items = append(items, scheduleItem(s))
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) CreateTimeOff(w http.ResponseWriter, r *http.Request) {
	salonID := salonIDFrom(r)
	if salonID == "" {
		writeError(w, http.StatusBadRequest, "salon_id required")
		return
	}
	var req struct {
		StaffID   string `json:"staff_id"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
		Reason    string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.StaffID = strings.TrimSpace(req.StaffID)
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_time")
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_time")
		return
	}
	if req.StaffID == "" || !end.After(start) {
		writeError(w, http.StatusBadRequest, "staff_id and a forward time range required")
		return
	}

	id, err := h.store.Repository().CreateTimeOff(r.Context(), salonID, req.StaffID, start, end, strings.TrimSpace(req.Reason))
	if err != nil {
		if db.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Staff member not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"time_off_id": id})
}

func (h *Handler) ListTimeOff(w http.ResponseWriter, r *http.Request) {
	salonID := salonIDFrom(r)
	staffID := strings.TrimSpace(r.URL.Query().Get("staff_id"))
	if salonID == "" || staffID == "" {
		writeError(w, http.StatusBadRequest, "salon_id and staff_id required")
		return
	}

	from := time.Now().UTC()
	to := from.AddDate(0, 3, 0)
	if raw := strings.TrimSpace(r.URL.Query().Get("from")); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from")
			return
		}
		from = t
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("to")); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to")
			return
		}
		to = t
	}

	blocks, err := h.store.Repository().ListTimeOff(r.Context(), salonID, staffID, from, to, 200)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	items := make([]map[string]any, 0, len(blocks))
	for _, b := range blocks {
		items = append(items, map[string]any{
			"time_off_id": b.ID,
			"staff_id":    b.StaffID,
			"start_time":  b.StartTime.UTC().Format(time.RFC3339),
			"end_time":    b.EndTime.UTC().Format(time.RFC3339),
			"reason":      b.Reason,
		})
	}
	writeJSON(w, http.StatusOK, items)
}
