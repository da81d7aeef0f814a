package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jmcateer/pulselog/internal/db"
	"github.com/jmcateer/pulselog/internal/models"
)

const (
	testUserID      = "3f1d7a52-9c1e-4a77-b7a4-2f4f3d8e6a10"
	otherTestUserID = "8c9b2f41-5d3a-4f60-9b7e-1a2b3c4d5e6f"
)

var testNow = time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*fiber.App, *db.Repositories) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "pulselog-api.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	repositories := db.NewRepositories(database)
	handler := NewHandler(repositories).WithClock(func() time.Time { return testNow })

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, repositories
}

func seedCheckIn(t *testing.T, repositories *db.Repositories, userID string, timestamp time.Time, symptoms map[string]models.SymptomValue, flagged bool) {
	t.Helper()

	checkIn := models.CheckIn{
		UserID:    userID,
		Timestamp: timestamp,
		Structured: models.StructuredData{
			Symptoms: symptoms,
		},
		FlaggedForDoctor: flagged,
	}
	if err := repositories.CheckIns.Create(&checkIn); err != nil {
		t.Fatalf("seed check-in: %v", err)
	}
}

func authedRequest(method string, target string, body []byte) *http.Request {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	request := httptest.NewRequest(method, target, reader)
	request.Header.Set("X-User-ID", testUserID)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	return request
}

func performRequest(t *testing.T, app *fiber.App, request *http.Request) (*http.Response, []byte) {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return response, body
}

func decodeJSON(t *testing.T, body []byte, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(body, target); err != nil {
		t.Fatalf("decode response %s: %v", string(body), err)
	}
}
