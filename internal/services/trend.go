package services

import (
	"sort"
	"time"

	"github.com/jmcateer/pulselog/internal/models"
)

// TrendPoint is one calendar date bucket of a symptom's time series.
type TrendPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// TrendResult carries the daily series plus overall statistics over
// the flat list of qualifying values (not the daily averages).
type TrendResult struct {
	Symptom           string       `json:"symptom"`
	WindowDays        int          `json:"window_days"`
	Points            []TrendPoint `json:"points"`
	Min               float64      `json:"min"`
	Max               float64      `json:"max"`
	Average           float64      `json:"average"`
	Median            float64      `json:"median"`
	StandardDeviation float64      `json:"standard_deviation"`
	SampleSize        int          `json:"sample_size"`
}

// SymptomTrend analyzes one symptom's numeric values over the window
// [now-windowDays, now], both bounds inclusive. Values that are not
// numeric-coercible are excluded entirely, never zero-filled. A nil
// return means no signal, which callers must distinguish from a zero
// signal.
func SymptomTrend(checkIns []models.CheckIn, symptomName string, windowDays int, now time.Time) *TrendResult {
	windowStart := now.AddDate(0, 0, -windowDays)

	type bucket struct {
		values []float64
	}
	buckets := make(map[string]*bucket)
	flat := make([]float64, 0)

	for _, checkIn := range checkIns {
		if checkIn.Timestamp.Before(windowStart) || checkIn.Timestamp.After(now) {
			continue
		}
		if checkIn.Structured.Symptoms == nil {
			continue
		}
		value, present := checkIn.Structured.Symptoms[symptomName]
		if !present {
			continue
		}
		number, ok := NumericSymptomValue(value)
		if !ok {
			continue
		}

		key := DayKey(checkIn.Timestamp)
		if buckets[key] == nil {
			buckets[key] = &bucket{}
		}
		buckets[key].values = append(buckets[key].values, number)
		flat = append(flat, number)
	}

	if len(flat) == 0 {
		return nil
	}

	points := make([]TrendPoint, 0, len(buckets))
	for key, dayBucket := range buckets {
		points = append(points, TrendPoint{
			Date:  key,
			Value: round2(mean(dayBucket.values)),
			Count: len(dayBucket.values),
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})

	lowest, highest := minMax(flat)
	return &TrendResult{
		Symptom:           symptomName,
		WindowDays:        windowDays,
		Points:            points,
		Min:               lowest,
		Max:               highest,
		Average:           round2(mean(flat)),
		Median:            median(flat),
		StandardDeviation: round2(populationStdDev(flat)),
		SampleSize:        len(flat),
	}
}
