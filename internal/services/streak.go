package services

import (
	"sort"
	"time"

	"github.com/jmcateer/pulselog/internal/models"
)

// StreakResult reports logging adherence over the whole history.
// TotalDays is the inclusive span between the earliest and latest
// active date; ActiveDays can never exceed it.
type StreakResult struct {
	CurrentStreak   int    `json:"current_streak"`
	LongestStreak   int    `json:"longest_streak"`
	ActiveDays      int    `json:"active_days"`
	TotalDays       int    `json:"total_days"`
	StreakStartDate string `json:"streak_start_date,omitempty"`
	LastLogDate     string `json:"last_log_date,omitempty"`
}

// CalculateStreak derives consecutive-day adherence from the check-in
// history. Multiple check-ins on one UTC date collapse to a single
// active day. The current streak walks backward from yesterday, not
// today, so a user who has not logged yet today keeps their streak
// for one more day.
func CalculateStreak(checkIns []models.CheckIn, now time.Time) StreakResult {
	if len(checkIns) == 0 {
		return StreakResult{}
	}

	activeByKey := make(map[string]struct{})
	for _, checkIn := range checkIns {
		activeByKey[DayKey(checkIn.Timestamp)] = struct{}{}
	}

	activeDates := make([]time.Time, 0, len(activeByKey))
	for key := range activeByKey {
		date, err := time.ParseInLocation(dayKeyLayout, key, time.UTC)
		if err != nil {
			continue
		}
		activeDates = append(activeDates, date)
	}
	sort.Slice(activeDates, func(i, j int) bool {
		return activeDates[i].Before(activeDates[j])
	})

	result := StreakResult{
		ActiveDays:  len(activeDates),
		TotalDays:   daysBetween(activeDates[0], activeDates[len(activeDates)-1]) + 1,
		LastLogDate: activeDates[len(activeDates)-1].Format(dayKeyLayout),
	}

	result.LongestStreak = longestRun(activeDates)

	yesterday := UTCDate(now).AddDate(0, 0, -1)
	current := 0
	cursor := yesterday
	for {
		if _, active := activeByKey[cursor.Format(dayKeyLayout)]; !active {
			break
		}
		current++
		cursor = cursor.AddDate(0, 0, -1)
	}
	result.CurrentStreak = current
	if current > 0 {
		result.StreakStartDate = yesterday.AddDate(0, 0, -(current - 1)).Format(dayKeyLayout)
	}

	if result.LongestStreak < result.CurrentStreak {
		result.LongestStreak = result.CurrentStreak
	}

	return result
}

// longestRun finds the maximum run of consecutive dates in a sorted
// distinct date slice.
func longestRun(dates []time.Time) int {
	if len(dates) == 0 {
		return 0
	}
	longest := 1
	run := 1
	for index := 1; index < len(dates); index++ {
		if daysBetween(dates[index-1], dates[index]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
