package services

import (
	"testing"
	"time"

	"github.com/jmcateer/pulselog/internal/models"
)

func mustParseEngineDay(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		t.Fatalf("parse day %q: %v", value, err)
	}
	return parsed
}

// checkInOn builds a noon UTC check-in so date grouping is unambiguous.
func checkInOn(t *testing.T, day string, symptoms map[string]models.SymptomValue) models.CheckIn {
	t.Helper()
	return models.CheckIn{
		UserID:    "3f1d7a52-9c1e-4a77-b7a4-2f4f3d8e6a10",
		Timestamp: mustParseEngineDay(t, day).Add(12 * time.Hour),
		Structured: models.StructuredData{
			Symptoms: symptoms,
		},
	}
}

func severityOnly(severity float64) map[string]models.SymptomValue {
	return map[string]models.SymptomValue{
		"pain_level": models.NumericSymptomValue(severity),
	}
}
