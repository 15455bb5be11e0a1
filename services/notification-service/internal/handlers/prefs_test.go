package handlers

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestPrefsHandler() *PrefsHandler {
	return NewPrefsHandler(nil, 24, slog.Default())
}

func TestPrefsPutRequiresSalonHeader(t *testing.T) {
	h := newTestPrefsHandler()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/notifications/preferences",
		strings.NewReader(`{"reminder_lead_hours": 48}`))
	rw := httptest.NewRecorder()
	h.Put(rw, req)
	if rw.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rw.Code)
	}
}

func TestPrefsPutRejectsOutOfRangeLead(t *testing.T) {
	h := newTestPrefsHandler()
	for _, body := range []string{
		`{"reminder_lead_hours": 0}`,
		`{"reminder_lead_hours": -3}`,
		`{"reminder_lead_hours": 200}`,
	} {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/notifications/preferences", strings.NewReader(body))
		req.Header.Set("X-Salon-Id", "salon-1")
		rw := httptest.NewRecorder()
		h.Put(rw, req)
		if rw.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rw.Code)
		}
	}
}

func TestPrefsPutRejectsInvalidJSON(t *testing.T) {
	h := newTestPrefsHandler()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/notifications/preferences", strings.NewReader("{"))
	req.Header.Set("X-Salon-Id", "salon-1")
	rw := httptest.NewRecorder()
	h.Put(rw, req)
	if rw.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rw.Code)
	}
}
