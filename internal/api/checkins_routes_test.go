package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jmcateer/pulselog/internal/models"
)

func TestHealthRouteNeedsNoUserHeader(t *testing.T) {
	app, _ := newTestApp(t)

	response, body := performRequest(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", response.StatusCode, string(body))
	}

	var payload map[string]string
	decodeJSON(t, body, &payload)
	if payload["status"] != "ok" {
		t.Fatalf("expected status ok, got %#v", payload)
	}
}

func TestAPIRoutesRejectMissingOrMalformedUserHeader(t *testing.T) {
	app, _ := newTestApp(t)

	t.Run("missing header", func(t *testing.T) {
		response, body := performRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/checkins", nil))
		if response.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d: %s", response.StatusCode, string(body))
		}
	})

	t.Run("non-uuid header", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/api/checkins", nil)
		request.Header.Set("X-User-ID", "not-a-uuid")
		response, body := performRequest(t, app, request)
		if response.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d: %s", response.StatusCode, string(body))
		}
	})
}

func TestCreateCheckInStoresPolymorphicSymptoms(t *testing.T) {
	app, repositories := newTestApp(t)

	payload := `{
		"timestamp": "2026-04-09T08:30:00Z",
		"symptoms": {
			"pain_level": 7,
			"nausea": true,
			"mood": "low",
			"headache": {"severity": 6, "location": "left temple", "notes": "worse at night"},
			"glitch": [1, 2, 3]
		},
		"activities": ["running", " work "],
		"triggers": ["coffee"],
		"notes": "long day",
		"flagged_for_doctor": true
	}`

	response, body := performRequest(t, app, authedRequest(http.MethodPost, "/api/checkins", []byte(payload)))
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", response.StatusCode, string(body))
	}

	var created checkInResponse
	decodeJSON(t, body, &created)
	if created.ID == 0 {
		t.Error("expected assigned check-in ID")
	}
	if created.UserID != testUserID {
		t.Errorf("user_id = %q, want %q", created.UserID, testUserID)
	}
	if !created.FlaggedForDoctor {
		t.Error("expected flagged_for_doctor true")
	}
	if len(created.Symptoms) != 4 {
		t.Fatalf("expected the unrecognized encoding to be dropped, got symptoms %#v", created.Symptoms)
	}
	if _, exists := created.Symptoms["glitch"]; exists {
		t.Error("array-encoded symptom value must not be stored")
	}
	if created.Activities[1] != "work" {
		t.Errorf("expected trimmed activity, got %q", created.Activities[1])
	}

	stored, err := repositories.CheckIns.ListByUser(testUserID)
	if err != nil {
		t.Fatalf("list stored check-ins: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected 1 stored check-in, got %d", len(stored))
	}
	headache := stored[0].Structured.Symptoms["headache"]
	if headache.Kind != models.SymptomKindStructured || headache.Severity != 6 {
		t.Errorf("stored headache = %#v, want structured severity 6", headache)
	}
	if !stored[0].Timestamp.Equal(time.Date(2026, 4, 9, 8, 30, 0, 0, time.UTC)) {
		t.Errorf("stored timestamp = %v", stored[0].Timestamp)
	}
}

func TestCreateCheckInValidation(t *testing.T) {
	app, _ := newTestApp(t)

	t.Run("malformed body", func(t *testing.T) {
		response, body := performRequest(t, app, authedRequest(http.MethodPost, "/api/checkins", []byte("{not json")))
		if response.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", response.StatusCode, string(body))
		}
	})

	t.Run("oversized notes", func(t *testing.T) {
		payload := `{"notes": "` + strings.Repeat("x", maxNotesLength+1) + `"}`
		response, body := performRequest(t, app, authedRequest(http.MethodPost, "/api/checkins", []byte(payload)))
		if response.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", response.StatusCode, string(body))
		}
	})
}

func TestListCheckInsIsUserScopedAndOrdered(t *testing.T) {
	app, repositories := newTestApp(t)

	seedCheckIn(t, repositories, testUserID, testNow.AddDate(0, 0, -2), map[string]models.SymptomValue{
		"fatigue": models.NumericSymptomValue(4),
	}, false)
	seedCheckIn(t, repositories, testUserID, testNow.AddDate(0, 0, -1), map[string]models.SymptomValue{
		"fatigue": models.NumericSymptomValue(6),
	}, false)
	seedCheckIn(t, repositories, otherTestUserID, testNow, map[string]models.SymptomValue{
		"fatigue": models.NumericSymptomValue(9),
	}, false)

	response, body := performRequest(t, app, authedRequest(http.MethodGet, "/api/checkins", nil))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", response.StatusCode, string(body))
	}

	var listed []checkInResponse
	decodeJSON(t, body, &listed)
	if len(listed) != 2 {
		t.Fatalf("expected only the caller's 2 check-ins, got %d", len(listed))
	}
	if !listed[0].Timestamp.Before(listed[1].Timestamp) {
		t.Error("expected ascending timestamp order")
	}
	for _, entry := range listed {
		if entry.UserID != testUserID {
			t.Fatalf("leaked another user's check-in: %#v", entry)
		}
	}
}
