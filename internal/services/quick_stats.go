package services

import (
	"sort"
	"time"

	"github.com/jmcateer/pulselog/internal/models"
)

const topSymptomLimit = 5

// QuickStatsCheckIns compares check-in volume between the two windows.
type QuickStatsCheckIns struct {
	Current       int     `json:"current"`
	Previous      int     `json:"previous"`
	Change        int     `json:"change"`
	PercentChange float64 `json:"percent_change"`
}

// QuickStatsSymptom is one of the most frequent current-period
// symptoms with its severity movement against the previous period.
type QuickStatsSymptom struct {
	Name        string         `json:"name"`
	Count       int            `json:"count"`
	AvgSeverity float64        `json:"avg_severity"`
	Trend       TrendDirection `json:"trend"`
}

// QuickStatsSeverity compares overall mean severity across all
// symptoms between the two windows.
type QuickStatsSeverity struct {
	Current  float64        `json:"current"`
	Previous float64        `json:"previous"`
	Trend    TrendDirection `json:"trend"`
}

type QuickStatsResult struct {
	PeriodDays      int                 `json:"period_days"`
	CheckInCount    QuickStatsCheckIns  `json:"check_in_count"`
	TopSymptoms     []QuickStatsSymptom `json:"top_symptoms"`
	AverageSeverity QuickStatsSeverity  `json:"average_severity"`
}

type periodSeverities struct {
	bySymptom map[string][]float64
	firstSeen []string
	all       []float64
	checkIns  int
}

// QuickStats compares the current window of the given length against
// the immediately preceding window of equal length. Only canonical
// severities feed the per-symptom numbers; values the normalizer
// cannot resolve are ignored.
func QuickStats(checkIns []models.CheckIn, days int, now time.Time) QuickStatsResult {
	today := UTCDate(now)
	currentStart := today.AddDate(0, 0, -(days - 1))
	previousStart := currentStart.AddDate(0, 0, -days)

	current := newPeriodSeverities()
	previous := newPeriodSeverities()

	for _, checkIn := range checkIns {
		date := UTCDate(checkIn.Timestamp)
		switch {
		case !date.Before(currentStart) && !date.After(today):
			current.observe(checkIn)
		case !date.Before(previousStart) && date.Before(currentStart):
			previous.observe(checkIn)
		}
	}

	result := QuickStatsResult{
		PeriodDays: days,
		CheckInCount: QuickStatsCheckIns{
			Current:  current.checkIns,
			Previous: previous.checkIns,
			Change:   current.checkIns - previous.checkIns,
		},
		TopSymptoms: []QuickStatsSymptom{},
	}
	if previous.checkIns > 0 {
		result.CheckInCount.PercentChange = round1(
			float64(result.CheckInCount.Change) / float64(previous.checkIns) * 100)
	}

	symptoms := make([]QuickStatsSymptom, 0, len(current.firstSeen))
	for _, name := range current.firstSeen {
		severities := current.bySymptom[name]
		entry := QuickStatsSymptom{
			Name:        name,
			Count:       len(severities),
			AvgSeverity: round2(mean(severities)),
			Trend:       TrendStable,
		}
		if baseline, reported := previous.bySymptom[name]; reported {
			entry.Trend = ClassifyTrendDirection(mean(severities), mean(baseline))
		}
		symptoms = append(symptoms, entry)
	}
	sort.SliceStable(symptoms, func(i, j int) bool {
		return symptoms[i].Count > symptoms[j].Count
	})
	if len(symptoms) > topSymptomLimit {
		symptoms = symptoms[:topSymptomLimit]
	}
	result.TopSymptoms = symptoms

	result.AverageSeverity = QuickStatsSeverity{
		Current:  round2(mean(current.all)),
		Previous: round2(mean(previous.all)),
		Trend:    ClassifyTrendDirection(mean(current.all), mean(previous.all)),
	}

	return result
}

func newPeriodSeverities() *periodSeverities {
	return &periodSeverities{bySymptom: make(map[string][]float64)}
}

func (period *periodSeverities) observe(checkIn models.CheckIn) {
	period.checkIns++
	if checkIn.Structured.Symptoms == nil {
		return
	}
	for _, name := range sortedSymptomNames(checkIn.Structured.Symptoms) {
		canonical, usable := NormalizeSymptomValue(name, checkIn.Structured.Symptoms[name])
		if !usable {
			continue
		}
		if _, seen := period.bySymptom[name]; !seen {
			period.firstSeen = append(period.firstSeen, name)
		}
		period.bySymptom[name] = append(period.bySymptom[name], canonical.Severity)
		period.all = append(period.all, canonical.Severity)
	}
}
