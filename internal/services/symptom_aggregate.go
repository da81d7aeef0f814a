package services

import (
	"sort"

	"github.com/jmcateer/pulselog/internal/models"
)

// SymptomStat describes one symptom across the whole supplied history.
// Min/Max/Average are present for numeric symptoms only; Values lists
// the distinct observations of a categorical symptom in first-seen
// order.
type SymptomStat struct {
	Name       string      `json:"name"`
	Count      int         `json:"count"`
	Percentage float64     `json:"percentage"`
	Type       SymptomType `json:"type"`
	Min        *float64    `json:"min,omitempty"`
	Max        *float64    `json:"max,omitempty"`
	Average    *float64    `json:"average,omitempty"`
	Values     []string    `json:"values,omitempty"`
}

type SymptomAggregate struct {
	Symptoms      []SymptomStat `json:"symptoms"`
	TotalCheckins int           `json:"total_checkins"`
}

type symptomAccumulator struct {
	name   string
	count  int
	values []models.SymptomValue
}

// AggregateSymptoms computes descriptive statistics per distinct
// symptom name over the full check-in collection. Check-ins without a
// symptoms map still count toward the total. The result is ordered by
// occurrence count descending with first-seen order breaking ties.
func AggregateSymptoms(checkIns []models.CheckIn) SymptomAggregate {
	aggregate := SymptomAggregate{
		Symptoms:      []SymptomStat{},
		TotalCheckins: len(checkIns),
	}
	if len(checkIns) == 0 {
		return aggregate
	}

	accumulators := make(map[string]*symptomAccumulator)
	firstSeen := make([]string, 0)

	for _, checkIn := range checkIns {
		if checkIn.Structured.Symptoms == nil {
			continue
		}
		for _, name := range sortedSymptomNames(checkIn.Structured.Symptoms) {
			accumulator, seen := accumulators[name]
			if !seen {
				accumulator = &symptomAccumulator{name: name}
				accumulators[name] = accumulator
				firstSeen = append(firstSeen, name)
			}
			accumulator.count++
			accumulator.values = append(accumulator.values, checkIn.Structured.Symptoms[name])
		}
	}

	stats := make([]SymptomStat, 0, len(firstSeen))
	for _, name := range firstSeen {
		stats = append(stats, buildSymptomStat(accumulators[name], len(checkIns)))
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})

	aggregate.Symptoms = stats
	return aggregate
}

func buildSymptomStat(accumulator *symptomAccumulator, totalCheckins int) SymptomStat {
	stat := SymptomStat{
		Name:       accumulator.name,
		Count:      accumulator.count,
		Percentage: round1(float64(accumulator.count) / float64(totalCheckins) * 100),
		Type:       ClassifySymptomType(accumulator.values),
	}

	switch stat.Type {
	case SymptomTypeNumeric:
		numbers := make([]float64, 0, len(accumulator.values))
		for _, value := range accumulator.values {
			if number, ok := NumericSymptomValue(value); ok {
				numbers = append(numbers, number)
			}
		}
		if len(numbers) > 0 {
			lowest, highest := minMax(numbers)
			average := round2(mean(numbers))
			stat.Min = &lowest
			stat.Max = &highest
			stat.Average = &average
		}
	case SymptomTypeCategorical:
		seen := make(map[string]struct{}, len(accumulator.values))
		distinct := make([]string, 0, len(accumulator.values))
		for _, value := range accumulator.values {
			display := DisplaySymptomValue(value)
			if display == "" {
				continue
			}
			if _, duplicate := seen[display]; duplicate {
				continue
			}
			seen[display] = struct{}{}
			distinct = append(distinct, display)
		}
		stat.Values = distinct
	}

	return stat
}

// sortedSymptomNames gives a deterministic traversal order for a
// symptom map; insertion order is not recoverable from Go maps.
func sortedSymptomNames(symptoms map[string]models.SymptomValue) []string {
	names := make([]string, 0, len(symptoms))
	for name := range symptoms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
