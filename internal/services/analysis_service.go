package services

import (
	"time"

	"github.com/jmcateer/pulselog/internal/models"
)

// AnalysisCheckInReader is the storage collaborator contract. The
// engine only ever sees the in-memory snapshot these methods return.
type AnalysisCheckInReader interface {
	ListByUser(userID string) ([]models.CheckIn, error)
	ListByUserRange(userID string, from *time.Time, to *time.Time) ([]models.CheckIn, error)
}

// AnalysisService runs the stateless analysis functions against a
// user's persisted history. The clock is injected so every
// "now"-relative computation stays deterministic under test.
type AnalysisService struct {
	checkIns AnalysisCheckInReader
	now      func() time.Time
}

func NewAnalysisService(checkIns AnalysisCheckInReader) *AnalysisService {
	return &AnalysisService{
		checkIns: checkIns,
		now:      time.Now,
	}
}

// WithClock replaces the time source. Tests use this to pin "now".
func (service *AnalysisService) WithClock(now func() time.Time) *AnalysisService {
	service.now = now
	return service
}

func (service *AnalysisService) SymptomOverview(userID string) (SymptomAggregate, error) {
	history, err := service.checkIns.ListByUser(userID)
	if err != nil {
		return SymptomAggregate{}, err
	}
	return AggregateSymptoms(history), nil
}

func (service *AnalysisService) TrendForSymptom(userID string, symptomName string, windowDays int) (*TrendResult, error) {
	now := service.now()
	from := now.AddDate(0, 0, -windowDays)
	history, err := service.checkIns.ListByUserRange(userID, &from, nil)
	if err != nil {
		return nil, err
	}
	return SymptomTrend(history, symptomName, windowDays, now), nil
}

func (service *AnalysisService) StreakForUser(userID string) (StreakResult, error) {
	history, err := service.checkIns.ListByUser(userID)
	if err != nil {
		return StreakResult{}, err
	}
	return CalculateStreak(history, service.now()), nil
}

func (service *AnalysisService) QuickStatsForUser(userID string, days int) (QuickStatsResult, error) {
	now := service.now()
	// Fetch both windows in one read: current plus the preceding
	// equal-length period.
	from := UTCDate(now).AddDate(0, 0, -(2*days - 1))
	history, err := service.checkIns.ListByUserRange(userID, &from, nil)
	if err != nil {
		return QuickStatsResult{}, err
	}
	return QuickStats(history, days, now), nil
}

func (service *AnalysisService) SummaryForUser(userID string, start time.Time, end time.Time, opts SummaryOptions) (SummaryReport, error) {
	from := UTCDate(start)
	to := UTCDate(end).AddDate(0, 0, 1)
	history, err := service.checkIns.ListByUserRange(userID, &from, &to)
	if err != nil {
		return SummaryReport{}, err
	}
	return ClinicalSummary(history, start, end, opts), nil
}
