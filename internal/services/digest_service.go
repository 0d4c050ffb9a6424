package services

import (
	"fmt"
	"strings"
	"time"
)

type ProgressBuilder interface {
	BuildProgressForRange(viewRange ViewRange) (CaloriesProgress, error)
}

// PeriodDigest is a rendered report of one Thursday..Wednesday period.
type PeriodDigest struct {
	Progress CaloriesProgress `json:"progress"`
	Markdown string           `json:"markdown"`
}

type DigestService struct {
	progress ProgressBuilder
}

func NewDigestService(progress ProgressBuilder) *DigestService {
	return &DigestService{progress: progress}
}

// BuildPeriodDigest reports on the period that finished before the one
// containing today.
func (service *DigestService) BuildPeriodDigest(today time.Time) (PeriodDigest, error) {
	return service.BuildDigest(today, true)
}

func (service *DigestService) BuildDigest(reference time.Time, previous bool) (PeriodDigest, error) {
	day := CalendarDay(reference, reference.Location())
	viewRange := ViewRange{View: ViewThisWeek}
	if previous {
		viewRange.View = ViewLastWeek
		viewRange.Start, viewRange.End = PreviousPeriodFor(day)
	} else {
		viewRange.Start, viewRange.End = PeriodFor(day)
	}

	progress, err := service.progress.BuildProgressForRange(viewRange)
	if err != nil {
		return PeriodDigest{}, err
	}
	return PeriodDigest{Progress: progress, Markdown: RenderProgressMarkdown(progress)}, nil
}

func RenderProgressMarkdown(progress CaloriesProgress) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "# Calories %s to %s\n\n", FormatCalendarDay(progress.Range.Start), FormatCalendarDay(progress.Range.End))

	if len(progress.Summaries) == 0 {
		builder.WriteString("No data available for the selected period.\n\n")
	} else {
		builder.WriteString("| Date | Net calories |\n|---|---:|\n")
		for _, summary := range progress.Summaries {
			fmt.Fprintf(&builder, "| %s | %d |\n", FormatCalendarDay(summary.Date), summary.TotalNetCalories)
		}
		builder.WriteString("\n")
	}

	fmt.Fprintf(&builder, "**Total net calories:** %d\n\n", progress.TotalNetCalories)

	if !progress.HasGoal || progress.Evaluation == nil || progress.Goal == nil {
		builder.WriteString("No weight loss goal set.\n")
		return builder.String()
	}

	goal := progress.Goal
	evaluation := progress.Evaluation
	builder.WriteString("## Goal\n\n")
	fmt.Fprintf(&builder, "- Weight loss goal: %s lbs/week\n", goal.RateLbsPerWeek.String())
	fmt.Fprintf(&builder, "- Resting metabolic rate: %d calories\n", goal.RestingMetabolicRate)
	fmt.Fprintf(&builder, "- Goal start date: %s\n", FormatCalendarDay(goal.StartDate))
	fmt.Fprintf(&builder, "- Weekly target calories: %s\n\n", evaluation.WeeklyTarget.StringFixed(2))

	if evaluation.IsSurplus() {
		fmt.Fprintf(&builder, "You are **%s** calories above your target.\n", evaluation.Delta.StringFixed(2))
	} else {
		fmt.Fprintf(&builder, "You are **%s** calories below your target.\n", evaluation.Delta.Neg().StringFixed(2))
	}
	return builder.String()
}
