package services

import (
	"math"
	"sort"
	"time"
)

const dayKeyLayout = "2006-01-02"

// trendChangeThreshold is the relative change below which two period
// averages are considered equivalent.
const trendChangeThreshold = 0.10

// TrendDirection labels how a metric moved between two periods.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendWorsening TrendDirection = "worsening"
	TrendStable    TrendDirection = "stable"
)

// UTCDate truncates an instant to its UTC calendar date. All calendar
// grouping in the engine keys on the date portion of the UTC instant,
// not local time.
func UTCDate(value time.Time) time.Time {
	year, month, day := value.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DayKey renders an instant as its ISO UTC date. ISO date strings sort
// lexicographically in chronological order, which bucket sorting
// relies on.
func DayKey(value time.Time) string {
	return UTCDate(value).Format(dayKeyLayout)
}

// ClassifyTrendDirection compares a current period average against a
// previous one. Severity dropping by more than the threshold is an
// improvement; rising by more than the threshold is a worsening. A
// zero previous baseline always classifies as stable.
func ClassifyTrendDirection(current float64, previous float64) TrendDirection {
	if previous == 0 {
		return TrendStable
	}
	relative := (current - previous) / previous
	switch {
	case relative < -trendChangeThreshold:
		return TrendImproving
	case relative > trendChangeThreshold:
		return TrendWorsening
	default:
		return TrendStable
	}
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, value := range values {
		sum += value
	}
	return sum / float64(len(values))
}

// median averages the two middle values for even-sized input and
// returns the exact middle value for odd-sized input.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	middle := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[middle]
	}
	return round2((sorted[middle-1] + sorted[middle]) / 2)
}

// populationStdDev computes √(Σ(x-mean)²/n), the population formula.
func populationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	average := mean(values)
	var sumSquares float64
	for _, value := range values {
		deviation := value - average
		sumSquares += deviation * deviation
	}
	return math.Sqrt(sumSquares / float64(len(values)))
}

func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lowest := values[0]
	highest := values[0]
	for _, value := range values[1:] {
		if value < lowest {
			lowest = value
		}
		if value > highest {
			highest = value
		}
	}
	return lowest, highest
}

// daysBetween counts whole days from one UTC date to another.
func daysBetween(from time.Time, to time.Time) int {
	return int(UTCDate(to).Sub(UTCDate(from)).Hours() / 24)
}
