package services

import (
	"errors"
	"sort"
	"time"

	"github.com/terraincognita07/samaan/internal/models"
)

var ErrInvalidRange = errors.New("invalid range: end before start")

// PeriodSummary is the net calorie total of one recorded day.
type PeriodSummary struct {
	Date             time.Time `json:"date"`
	TotalNetCalories int       `json:"total_net_calories"`
}

// NetCalories is the sum of the four meals minus exercise. Missing meals count
// as zero.
func NetCalories(record models.DailyRecord) int {
	total := 0
	for _, meal := range models.MealTypes {
		total += record.MealCalories(meal)
	}
	return total - record.ExerciseCalories
}

// SummarizeCalories returns one summary per record dated within [start, end],
// oldest first. Days without a record are not synthesised. The input slice is
// left untouched.
func SummarizeCalories(records []models.DailyRecord, start time.Time, end time.Time) ([]PeriodSummary, error) {
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	summaries := make([]PeriodSummary, 0, len(records))
	for _, record := range records {
		if record.Date.Before(start) || record.Date.After(end) {
			continue
		}
		summaries = append(summaries, PeriodSummary{
			Date:             record.Date,
			TotalNetCalories: NetCalories(record),
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Date.Before(summaries[j].Date)
	})
	return summaries, nil
}

func SumNetCalories(summaries []PeriodSummary) int {
	total := 0
	for _, summary := range summaries {
		total += summary.TotalNetCalories
	}
	return total
}
