package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/appointments"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/model"
)

// AppointmentHandler serves the customer-facing lifecycle endpoints. Caller
// identity arrives in X-User-Id / X-Role / X-Salon-Id headers stamped by the
// gateway after JWT verification; this service never sees raw tokens.
type AppointmentHandler struct {
	service *appointments.Service
	logger  *slog.Logger
}

func NewAppointmentHandler(service *appointments.Service, logger *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{service: service, logger: logger}
}

type cancelRequest struct {
	AppointmentID string `json:"appointment_id"`
}

type rescheduleRequest struct {
	AppointmentID string `json:"appointment_id"`
	NewTime       string `json:"new_time"`
	Reason        string `json:"reason"`
}

type appointmentItem struct {
	AppointmentID   string `json:"appointment_id"`
	SalonID         string `json:"salon_id"`
	StaffID         string `json:"staff_id"`
	ServiceID       string `json:"service_id"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
}

func callerID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-Id"))
}

func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	customerID := callerID(r)
	if customerID == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.AppointmentID = strings.TrimSpace(req.AppointmentID)
	if req.AppointmentID == "" {
		writeError(w, http.StatusBadRequest, "appointment_id required")
		return
	}

	if err := h.service.Cancel(r.Context(), req.AppointmentID, customerID); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"appointment_id": req.AppointmentID,
		"status":         "cancelled",
	})
}

func (h *AppointmentHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	customerID := callerID(r)
	if customerID == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req rescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.AppointmentID = strings.TrimSpace(req.AppointmentID)
	req.Reason = strings.TrimSpace(req.Reason)
	if req.AppointmentID == "" {
		writeError(w, http.StatusBadRequest, "appointment_id required")
		return
	}
	newTime, err := time.Parse(time.RFC3339, req.NewTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid new_time")
		return
	}

	if err := h.service.RequestReschedule(r.Context(), req.AppointmentID, customerID, newTime, req.Reason); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"appointment_id": req.AppointmentID,
		"status":         "pending",
	})
}

// List returns the caller's appointments. Owners and admins list by salon
// via X-Salon-Id; customers list their own rows.
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	userID := callerID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	limit := 50
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	role := strings.TrimSpace(r.Header.Get("X-Role"))
	salonID := strings.TrimSpace(r.Header.Get("X-Salon-Id"))

	var (
		appts []model.Appointment
		err   error
	)
	if (role == "owner" || role == "admin" || role == "staff") && salonID != "" {
		appts, err = h.service.ListForSalon(r.Context(), salonID, limit)
	} else {
		appts, err = h.service.ListForCustomer(r.Context(), userID, limit)
	}
	if err != nil {
		writeAppError(w, err)
		return
	}

	items := make([]appointmentItem, 0, len(appts))
	for _, a := range appts {
		items = append(items, appointmentItem{
			AppointmentID:   a.ID,
			SalonID:         a.SalonID,
			StaffID:         a.StaffID,
			ServiceID:       a.ServiceID,
			StartTime:       a.StartTime.UTC().Format(time.RFC3339),
			EndTime:         a.EndTime.UTC().Format(time.RFC3339),
			DurationMinutes: a.DurationMin,
			Status:          string(a.Status),
			CreatedAt:       a.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, items)
}
