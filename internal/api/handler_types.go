package api

import (
	"time"

	"github.com/jmcateer/pulselog/internal/db"
	"github.com/jmcateer/pulselog/internal/models"
	"github.com/jmcateer/pulselog/internal/services"
)

type Handler struct {
	checkIns *db.CheckInRepository
	analysis *services.AnalysisService
}

func NewHandler(repositories *db.Repositories) *Handler {
	return &Handler{
		checkIns: repositories.CheckIns,
		analysis: services.NewAnalysisService(repositories.CheckIns),
	}
}

// WithClock swaps the analytics clock, used by tests that pin "now".
func (handler *Handler) WithClock(now func() time.Time) *Handler {
	handler.analysis.WithClock(now)
	return handler
}

type checkInPayload struct {
	Timestamp        *time.Time                     `json:"timestamp"`
	Symptoms         map[string]models.SymptomValue `json:"symptoms"`
	Activities       []string                       `json:"activities"`
	Triggers         []string                       `json:"triggers"`
	Notes            string                         `json:"notes"`
	FlaggedForDoctor bool                           `json:"flagged_for_doctor"`
}

type checkInResponse struct {
	ID               uint                           `json:"id"`
	UserID           string                         `json:"user_id"`
	Timestamp        time.Time                      `json:"timestamp"`
	Symptoms         map[string]models.SymptomValue `json:"symptoms"`
	Activities       []string                       `json:"activities"`
	Triggers         []string                       `json:"triggers"`
	Notes            string                         `json:"notes,omitempty"`
	FlaggedForDoctor bool                           `json:"flagged_for_doctor"`
}

func buildCheckInResponse(checkIn models.CheckIn) checkInResponse {
	return checkInResponse{
		ID:               checkIn.ID,
		UserID:           checkIn.UserID,
		Timestamp:        checkIn.Timestamp,
		Symptoms:         checkIn.Structured.Symptoms,
		Activities:       checkIn.Structured.Activities,
		Triggers:         checkIn.Structured.Triggers,
		Notes:            checkIn.Structured.Notes,
		FlaggedForDoctor: checkIn.FlaggedForDoctor,
	}
}
