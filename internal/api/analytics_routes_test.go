package api

import (
	"net/http"
	"testing"

	"github.com/jmcateer/pulselog/internal/models"
	"github.com/jmcateer/pulselog/internal/services"
)

func TestSymptomOverviewRoute(t *testing.T) {
	app, repositories := newTestApp(t)

	for day := 0; day < 4; day++ {
		symptoms := map[string]models.SymptomValue{
			"pain_level": models.NumericSymptomValue(float64(4 + day)),
		}
		if day < 2 {
			symptoms["nausea"] = models.BooleanSymptomValue(true)
		}
		seedCheckIn(t, repositories, testUserID, testNow.AddDate(0, 0, -day), symptoms, false)
	}

	response, body := performRequest(t, app, authedRequest(http.MethodGet, "/api/analytics/symptoms", nil))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", response.StatusCode, string(body))
	}

	var overview services.SymptomAggregate
	decodeJSON(t, body, &overview)
	if overview.TotalCheckins != 4 {
		t.Fatalf("total_checkins = %d, want 4", overview.TotalCheckins)
	}
	if len(overview.Symptoms) != 2 {
		t.Fatalf("expected 2 symptom stats, got %#v", overview.Symptoms)
	}
	if overview.Symptoms[0].Name != "pain_level" || overview.Symptoms[0].Count != 4 {
		t.Errorf("expected pain_level first with count 4, got %#v", overview.Symptoms[0])
	}
	if overview.Symptoms[0].Percentage != 100.0 {
		t.Errorf("pain_level percentage = %v, want 100", overview.Symptoms[0].Percentage)
	}
	if overview.Symptoms[1].Type != services.SymptomTypeBoolean {
		t.Errorf("nausea type = %q, want boolean", overview.Symptoms[1].Type)
	}
}

func TestSymptomTrendRoute(t *testing.T) {
	app, repositories := newTestApp(t)

	severities := []float64{1, 5, 9}
	for day, severity := range severities {
		seedCheckIn(t, repositories, testUserID, testNow.AddDate(0, 0, -(day+1)), map[string]models.SymptomValue{
			"pain_level": models.NumericSymptomValue(severity),
		}, false)
	}

	t.Run("default window", func(t *testing.T) {
		response, body := performRequest(t, app, authedRequest(http.MethodGet, "/api/analytics/trends/pain_level", nil))
		if response.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", response.StatusCode, string(body))
		}

		var trend services.TrendResult
		decodeJSON(t, body, &trend)
		if trend.Symptom != "pain_level" || trend.WindowDays != 30 {
			t.Fatalf("unexpected trend header: %#v", trend)
		}
		if trend.SampleSize != 3 || trend.Min != 1 || trend.Max != 9 || trend.Average != 5 || trend.Median != 5 {
			t.Errorf("unexpected trend stats: %#v", trend)
		}
		if len(trend.Points) != 3 {
			t.Fatalf("expected 3 daily points, got %#v", trend.Points)
		}
		if trend.Points[0].Date >= trend.Points[1].Date {
			t.Error("expected points in ascending date order")
		}
	})

	t.Run("days out of range", func(t *testing.T) {
		for _, target := range []string{
			"/api/analytics/trends/pain_level?days=0",
			"/api/analytics/trends/pain_level?days=366",
			"/api/analytics/trends/pain_level?days=abc",
		} {
			response, body := performRequest(t, app, authedRequest(http.MethodGet, target, nil))
			if response.StatusCode != http.StatusBadRequest {
				t.Fatalf("%s: expected 400, got %d: %s", target, response.StatusCode, string(body))
			}
		}
	})

	t.Run("no numeric data", func(t *testing.T) {
		response, body := performRequest(t, app, authedRequest(http.MethodGet, "/api/analytics/trends/unknown_symptom", nil))
		if response.StatusCode != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", response.StatusCode, string(body))
		}
	})
}

func TestStreakRoute(t *testing.T) {
	app, repositories := newTestApp(t)

	// Logs yesterday and the day before: a 2-day current streak under
	// the grace period that ignores today.
	for day := 1; day <= 2; day++ {
		seedCheckIn(t, repositories, testUserID, testNow.AddDate(0, 0, -day), map[string]models.SymptomValue{
			"fatigue": models.NumericSymptomValue(3),
		}, false)
	}

	response, body := performRequest(t, app, authedRequest(http.MethodGet, "/api/analytics/streak", nil))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", response.StatusCode, string(body))
	}

	var streak services.StreakResult
	decodeJSON(t, body, &streak)
	if streak.CurrentStreak != 2 || streak.LongestStreak != 2 || streak.ActiveDays != 2 {
		t.Fatalf("unexpected streak: %#v", streak)
	}
	if streak.StreakStartDate != "2026-04-08" {
		t.Errorf("streak_start_date = %q, want 2026-04-08", streak.StreakStartDate)
	}
	if streak.LastLogDate != "2026-04-09" {
		t.Errorf("last_log_date = %q, want 2026-04-09", streak.LastLogDate)
	}
}

func TestQuickStatsRoute(t *testing.T) {
	app, repositories := newTestApp(t)

	// Current 7-day period: 3 check-ins; previous period: 2.
	for day := 0; day < 3; day++ {
		seedCheckIn(t, repositories, testUserID, testNow.AddDate(0, 0, -day), map[string]models.SymptomValue{
			"pain_level": models.NumericSymptomValue(6),
		}, false)
	}
	for day := 7; day < 9; day++ {
		seedCheckIn(t, repositories, testUserID, testNow.AddDate(0, 0, -day), map[string]models.SymptomValue{
			"pain_level": models.NumericSymptomValue(4),
		}, false)
	}

	t.Run("default period", func(t *testing.T) {
		response, body := performRequest(t, app, authedRequest(http.MethodGet, "/api/analytics/quick-stats", nil))
		if response.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", response.StatusCode, string(body))
		}

		var stats services.QuickStatsResult
		decodeJSON(t, body, &stats)
		if stats.PeriodDays != 7 {
			t.Fatalf("period_days = %d, want 7", stats.PeriodDays)
		}
		if stats.CheckInCount.Current != 3 || stats.CheckInCount.Previous != 2 || stats.CheckInCount.Change != 1 {
			t.Fatalf("unexpected check-in counts: %#v", stats.CheckInCount)
		}
		if stats.CheckInCount.PercentChange != 50.0 {
			t.Errorf("percent_change = %v, want 50", stats.CheckInCount.PercentChange)
		}
		if len(stats.TopSymptoms) != 1 || stats.TopSymptoms[0].Name != "pain_level" {
			t.Fatalf("unexpected top symptoms: %#v", stats.TopSymptoms)
		}
		if stats.AverageSeverity.Trend != services.TrendWorsening {
			t.Errorf("severity trend = %q, want worsening", stats.AverageSeverity.Trend)
		}
	})

	t.Run("days out of range", func(t *testing.T) {
		response, body := performRequest(t, app, authedRequest(http.MethodGet, "/api/analytics/quick-stats?days=91", nil))
		if response.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", response.StatusCode, string(body))
		}
	})
}

func TestSummaryRoute(t *testing.T) {
	app, repositories := newTestApp(t)

	seedCheckIn(t, repositories, testUserID, testNow.AddDate(0, 0, -3), map[string]models.SymptomValue{
		"pain_level": models.NumericSymptomValue(8),
	}, true)
	seedCheckIn(t, repositories, testUserID, testNow.AddDate(0, 0, -2), map[string]models.SymptomValue{
		"pain_level": models.NumericSymptomValue(3),
	}, false)

	t.Run("full range", func(t *testing.T) {
		target := "/api/analytics/summary?start_date=2026-04-01&end_date=2026-04-10"
		response, body := performRequest(t, app, authedRequest(http.MethodGet, target, nil))
		if response.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", response.StatusCode, string(body))
		}

		var report services.SummaryReport
		decodeJSON(t, body, &report)
		if report.Overview.TotalCheckIns != 2 || report.Overview.FlaggedCheckIns != 1 {
			t.Fatalf("unexpected overview: %#v", report.Overview)
		}
		if report.GoodBadDays.BadDays != 1 || report.GoodBadDays.GoodDays != 1 {
			t.Fatalf("unexpected day quality split: %#v", report.GoodBadDays)
		}
		if len(report.FlaggedEntries) != 1 {
			t.Fatalf("expected 1 flagged entry, got %d", len(report.FlaggedEntries))
		}
	})

	t.Run("flagged only", func(t *testing.T) {
		target := "/api/analytics/summary?start_date=2026-04-01&end_date=2026-04-10&flagged_only=true"
		response, body := performRequest(t, app, authedRequest(http.MethodGet, target, nil))
		if response.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", response.StatusCode, string(body))
		}

		var report services.SummaryReport
		decodeJSON(t, body, &report)
		if !report.FlaggedOnly {
			t.Error("expected flagged_only echoed in report")
		}
		if report.Overview.TotalCheckIns != 1 {
			t.Fatalf("expected flagged working set of 1, got %#v", report.Overview)
		}
	})

	t.Run("parameter validation", func(t *testing.T) {
		for _, target := range []string{
			"/api/analytics/summary",
			"/api/analytics/summary?start_date=2026-04-01",
			"/api/analytics/summary?start_date=04/01/2026&end_date=2026-04-10",
			"/api/analytics/summary?start_date=2026-04-10&end_date=2026-04-01",
		} {
			response, body := performRequest(t, app, authedRequest(http.MethodGet, target, nil))
			if response.StatusCode != http.StatusBadRequest {
				t.Fatalf("%s: expected 400, got %d: %s", target, response.StatusCode, string(body))
			}
		}
	})
}
