package services

import (
	"math"
	"sort"
	"time"

	"github.com/jmcateer/pulselog/internal/models"
)

// DefaultBadDaySeverityCutoff marks a day "bad" when its average
// logged severity strictly exceeds it.
const DefaultBadDaySeverityCutoff = 6.0

const (
	correlationItemActivity = "activity"
	correlationItemTrigger  = "trigger"

	dayQualityGood = "good"
	dayQualityBad  = "bad"
)

// SummaryOptions tunes report generation. A zero BadDayCutoff selects
// the default.
type SummaryOptions struct {
	FlaggedOnly  bool
	BadDayCutoff float64
}

type SummaryOverview struct {
	TotalCheckIns    int `json:"total_check_ins"`
	FlaggedCheckIns  int `json:"flagged_check_ins"`
	DistinctSymptoms int `json:"distinct_symptoms"`
	ActiveDays       int `json:"active_days"`
}

// SymptomSummary describes one symptom over the report range.
// Frequency is the share of active days on which it was reported.
type SymptomSummary struct {
	Name          string         `json:"name"`
	Count         int            `json:"count"`
	MinSeverity   float64        `json:"min_severity"`
	MaxSeverity   float64        `json:"max_severity"`
	AvgSeverity   float64        `json:"avg_severity"`
	FirstReported string         `json:"first_reported"`
	LastReported  string         `json:"last_reported"`
	Frequency     float64        `json:"frequency"`
	Trend         TrendDirection `json:"trend"`
}

type DayQuality struct {
	Date        string  `json:"date"`
	AvgSeverity float64 `json:"avg_severity"`
	Quality     string  `json:"quality"`
}

type GoodBadDayAnalysis struct {
	GoodDays              int          `json:"good_days"`
	BadDays               int          `json:"bad_days"`
	AvgGapBetweenGoodDays float64      `json:"avg_gap_between_good_days"`
	AvgGapBetweenBadDays  float64      `json:"avg_gap_between_bad_days"`
	AvgBadStreakLength    float64      `json:"avg_bad_streak_length"`
	LongestBadStreak      int          `json:"longest_bad_streak"`
	SeverityCutoff        float64      `json:"severity_cutoff"`
	Timeline              []DayQuality `json:"timeline"`
}

// CorrelationEntry reports how often an activity or trigger co-occurs
// with a symptom. CorrelationStrength is the share of the item's total
// occurrences that coincide with the symptom, a plain conditional
// frequency rather than a statistical correlation coefficient.
// Consumers depend on this exact ratio semantics.
type CorrelationEntry struct {
	Item                string `json:"item"`
	ItemType            string `json:"item_type"`
	Symptom             string `json:"symptom"`
	CoOccurrences       int    `json:"co_occurrences"`
	ItemOccurrences     int    `json:"item_occurrences"`
	CorrelationStrength int    `json:"correlation_strength"`
}

type SummaryReport struct {
	StartDate      string             `json:"start_date"`
	EndDate        string             `json:"end_date"`
	FlaggedOnly    bool               `json:"flagged_only"`
	Overview       SummaryOverview    `json:"overview"`
	SymptomSummary []SymptomSummary   `json:"symptom_summary"`
	GoodBadDays    GoodBadDayAnalysis `json:"good_bad_day_analysis"`
	Correlations   []CorrelationEntry `json:"correlations"`
	FlaggedEntries []models.CheckIn   `json:"flagged_entries"`
}

// ClinicalSummary builds a clinician-facing report over an inclusive
// date range. With FlaggedOnly set, every section is computed over the
// flagged subset only. FlaggedEntries always carries the flagged
// check-ins of the range, passed through unprocessed for review.
func ClinicalSummary(checkIns []models.CheckIn, start time.Time, end time.Time, opts SummaryOptions) SummaryReport {
	startDate := UTCDate(start)
	endDate := UTCDate(end)
	cutoff := opts.BadDayCutoff
	if cutoff == 0 {
		cutoff = DefaultBadDaySeverityCutoff
	}

	inRange := make([]models.CheckIn, 0, len(checkIns))
	flagged := make([]models.CheckIn, 0)
	for _, checkIn := range checkIns {
		date := UTCDate(checkIn.Timestamp)
		if date.Before(startDate) || date.After(endDate) {
			continue
		}
		inRange = append(inRange, checkIn)
		if checkIn.FlaggedForDoctor {
			flagged = append(flagged, checkIn)
		}
	}

	working := inRange
	if opts.FlaggedOnly {
		working = flagged
	}

	report := SummaryReport{
		StartDate:      startDate.Format(dayKeyLayout),
		EndDate:        endDate.Format(dayKeyLayout),
		FlaggedOnly:    opts.FlaggedOnly,
		SymptomSummary: []SymptomSummary{},
		Correlations:   []CorrelationEntry{},
		FlaggedEntries: flagged,
	}

	activeDayKeys := make(map[string]struct{})
	for _, checkIn := range working {
		activeDayKeys[DayKey(checkIn.Timestamp)] = struct{}{}
	}

	report.Overview = SummaryOverview{
		TotalCheckIns:   len(working),
		FlaggedCheckIns: len(flagged),
		ActiveDays:      len(activeDayKeys),
	}

	report.SymptomSummary = buildSymptomSummaries(working, startDate, endDate, len(activeDayKeys))
	report.Overview.DistinctSymptoms = len(report.SymptomSummary)
	report.GoodBadDays = buildGoodBadDayAnalysis(working, cutoff)
	report.Correlations = buildCorrelations(working)

	return report
}

type symptomRangeAccumulator struct {
	name       string
	count      int
	severities []float64
	firstDate  time.Time
	lastDate   time.Time
	firstHalf  []float64
	secondHalf []float64
}

func buildSymptomSummaries(checkIns []models.CheckIn, start time.Time, end time.Time, activeDays int) []SymptomSummary {
	midpoint := start.Add(end.Add(24 * time.Hour).Sub(start) / 2)

	accumulators := make(map[string]*symptomRangeAccumulator)
	firstSeen := make([]string, 0)
	symptomDays := make(map[string]map[string]struct{})

	for _, checkIn := range checkIns {
		if checkIn.Structured.Symptoms == nil {
			continue
		}
		date := UTCDate(checkIn.Timestamp)
		for _, name := range sortedSymptomNames(checkIn.Structured.Symptoms) {
			accumulator, seen := accumulators[name]
			if !seen {
				accumulator = &symptomRangeAccumulator{name: name, firstDate: date, lastDate: date}
				accumulators[name] = accumulator
				firstSeen = append(firstSeen, name)
				symptomDays[name] = make(map[string]struct{})
			}
			accumulator.count++
			symptomDays[name][DayKey(checkIn.Timestamp)] = struct{}{}
			if date.Before(accumulator.firstDate) {
				accumulator.firstDate = date
			}
			if date.After(accumulator.lastDate) {
				accumulator.lastDate = date
			}

			canonical, usable := NormalizeSymptomValue(name, checkIn.Structured.Symptoms[name])
			if !usable {
				continue
			}
			accumulator.severities = append(accumulator.severities, canonical.Severity)
			if checkIn.Timestamp.Before(midpoint) {
				accumulator.firstHalf = append(accumulator.firstHalf, canonical.Severity)
			} else {
				accumulator.secondHalf = append(accumulator.secondHalf, canonical.Severity)
			}
		}
	}

	summaries := make([]SymptomSummary, 0, len(firstSeen))
	for _, name := range firstSeen {
		accumulator := accumulators[name]
		summary := SymptomSummary{
			Name:          name,
			Count:         accumulator.count,
			FirstReported: accumulator.firstDate.Format(dayKeyLayout),
			LastReported:  accumulator.lastDate.Format(dayKeyLayout),
			Trend:         TrendStable,
		}
		if len(accumulator.severities) > 0 {
			lowest, highest := minMax(accumulator.severities)
			summary.MinSeverity = lowest
			summary.MaxSeverity = highest
			summary.AvgSeverity = round2(mean(accumulator.severities))
		}
		if activeDays > 0 {
			summary.Frequency = round1(float64(len(symptomDays[name])) / float64(activeDays) * 100)
		}
		if len(accumulator.firstHalf) > 0 && len(accumulator.secondHalf) > 0 {
			summary.Trend = ClassifyTrendDirection(mean(accumulator.secondHalf), mean(accumulator.firstHalf))
		}
		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Count > summaries[j].Count
	})

	return summaries
}

func buildGoodBadDayAnalysis(checkIns []models.CheckIn, cutoff float64) GoodBadDayAnalysis {
	analysis := GoodBadDayAnalysis{
		SeverityCutoff: cutoff,
		Timeline:       []DayQuality{},
	}

	severitiesByDay := make(map[string][]float64)
	for _, checkIn := range checkIns {
		key := DayKey(checkIn.Timestamp)
		if _, seen := severitiesByDay[key]; !seen {
			severitiesByDay[key] = []float64{}
		}
		if checkIn.Structured.Symptoms == nil {
			continue
		}
		for _, name := range sortedSymptomNames(checkIn.Structured.Symptoms) {
			canonical, usable := NormalizeSymptomValue(name, checkIn.Structured.Symptoms[name])
			if !usable {
				continue
			}
			severitiesByDay[key] = append(severitiesByDay[key], canonical.Severity)
		}
	}

	keys := make([]string, 0, len(severitiesByDay))
	for key := range severitiesByDay {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	goodDates := make([]time.Time, 0, len(keys))
	badDates := make([]time.Time, 0, len(keys))
	for _, key := range keys {
		average := mean(severitiesByDay[key])
		quality := dayQualityGood
		if average > cutoff {
			quality = dayQualityBad
		}
		analysis.Timeline = append(analysis.Timeline, DayQuality{
			Date:        key,
			AvgSeverity: round2(average),
			Quality:     quality,
		})

		date, err := time.ParseInLocation(dayKeyLayout, key, time.UTC)
		if err != nil {
			continue
		}
		if quality == dayQualityBad {
			badDates = append(badDates, date)
		} else {
			goodDates = append(goodDates, date)
		}
	}

	analysis.GoodDays = len(goodDates)
	analysis.BadDays = len(badDates)
	analysis.AvgGapBetweenGoodDays = meanGapDays(goodDates)
	analysis.AvgGapBetweenBadDays = meanGapDays(badDates)
	analysis.AvgBadStreakLength, analysis.LongestBadStreak = consecutiveRunStats(badDates)

	return analysis
}

// meanGapDays averages the day distance between consecutive dates;
// fewer than two dates have no gaps.
func meanGapDays(dates []time.Time) float64 {
	if len(dates) < 2 {
		return 0
	}
	var total float64
	for index := 1; index < len(dates); index++ {
		total += float64(daysBetween(dates[index-1], dates[index]))
	}
	return round2(total / float64(len(dates)-1))
}

// consecutiveRunStats reports the mean and maximum length of runs of
// strictly consecutive calendar dates.
func consecutiveRunStats(dates []time.Time) (float64, int) {
	if len(dates) == 0 {
		return 0, 0
	}
	runs := make([]float64, 0)
	run := 1
	for index := 1; index < len(dates); index++ {
		if daysBetween(dates[index-1], dates[index]) == 1 {
			run++
			continue
		}
		runs = append(runs, float64(run))
		run = 1
	}
	runs = append(runs, float64(run))

	longest := 0
	for _, length := range runs {
		if int(length) > longest {
			longest = int(length)
		}
	}
	return round2(mean(runs)), longest
}

type correlationAccumulator struct {
	item          string
	itemType      string
	occurrences   int
	coOccurrences map[string]int
	symptomOrder  []string
}

func buildCorrelations(checkIns []models.CheckIn) []CorrelationEntry {
	accumulators := make(map[string]*correlationAccumulator)
	itemOrder := make([]string, 0)

	observe := func(item string, itemType string, symptoms []string) {
		key := itemType + "|" + item
		accumulator, seen := accumulators[key]
		if !seen {
			accumulator = &correlationAccumulator{
				item:          item,
				itemType:      itemType,
				coOccurrences: make(map[string]int),
			}
			accumulators[key] = accumulator
			itemOrder = append(itemOrder, key)
		}
		accumulator.occurrences++
		for _, symptom := range symptoms {
			if _, tracked := accumulator.coOccurrences[symptom]; !tracked {
				accumulator.symptomOrder = append(accumulator.symptomOrder, symptom)
			}
			accumulator.coOccurrences[symptom]++
		}
	}

	for _, checkIn := range checkIns {
		symptoms := make([]string, 0)
		if checkIn.Structured.Symptoms != nil {
			symptoms = sortedSymptomNames(checkIn.Structured.Symptoms)
		}
		for _, activity := range checkIn.Structured.Activities {
			observe(activity, correlationItemActivity, symptoms)
		}
		for _, trigger := range checkIn.Structured.Triggers {
			observe(trigger, correlationItemTrigger, symptoms)
		}
	}

	entries := make([]CorrelationEntry, 0)
	for _, key := range itemOrder {
		accumulator := accumulators[key]
		for _, symptom := range accumulator.symptomOrder {
			co := accumulator.coOccurrences[symptom]
			entries = append(entries, CorrelationEntry{
				Item:                accumulator.item,
				ItemType:            accumulator.itemType,
				Symptom:             symptom,
				CoOccurrences:       co,
				ItemOccurrences:     accumulator.occurrences,
				CorrelationStrength: int(math.Round(float64(co) / float64(accumulator.occurrences) * 100)),
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CorrelationStrength != entries[j].CorrelationStrength {
			return entries[i].CorrelationStrength > entries[j].CorrelationStrength
		}
		return entries[i].CoOccurrences > entries[j].CoOccurrences
	})

	return entries
}
