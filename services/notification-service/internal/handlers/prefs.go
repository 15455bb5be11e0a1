package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tomide-adeyemi/salonbook/services/notification-service/internal/storage"
)

// PrefsHandler exposes the per-salon reminder preferences. The gateway gates
// the route to owner/admin tokens and stamps X-Salon-Id.
type PrefsHandler struct {
	repo        *storage.Repository
	defaultLead int
	logger      *slog.Logger
}

func NewPrefsHandler(repo *storage.Repository, defaultLeadHours int, logger *slog.Logger) *PrefsHandler {
	return &PrefsHandler{repo: repo, defaultLead: defaultLeadHours, logger: logger}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (h *PrefsHandler) Get(w http.ResponseWriter, r *http.Request) {
	salonID := strings.TrimSpace(r.Header.Get("X-Salon-Id"))
	if salonID == "" {
		writeError(w, http.StatusBadRequest, "salon_id required")
		return
	}

	hours, found, err := h.repo.GetReminderPref(r.Context(), salonID)
	if err != nil {
		h.logger.Error("reminder pref lookup failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !found {
		hours = h.defaultLead
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"salon_id":            salonID,
		"reminder_lead_hours": hours,
		"is_default":          !found,
	})
}

func (h *PrefsHandler) Put(w http.ResponseWriter, r *http.Request) {
	salonID := strings.TrimSpace(r.Header.Get("X-Salon-Id"))
	if salonID == "" {
		writeError(w, http.StatusBadRequest, "salon_id required")
		return
	}

	var req struct {
		ReminderLeadHours int `json:"reminder_lead_hours"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.ReminderLeadHours < 1 || req.ReminderLeadHours > 7*24 {
		writeError(w, http.StatusBadRequest, "reminder_lead_hours must be between 1 and 168")
		return
	}

	if err := h.repo.UpsertReminderPref(r.Context(), salonID, req.ReminderLeadHours); err != nil {
		h.logger.Error("reminder pref save failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"salon_id":            salonID,
		"reminder_lead_hours": req.ReminderLeadHours,
	})
}
