package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/samaan/internal/models"
)

// CaloriesPerPoundPerWeek is the daily deficit needed to lose one pound a week.
const CaloriesPerPoundPerWeek = 500

const daysPerPeriod = 7

var ErrNoGoalConfigured = errors.New("no goal configured")

type GoalEvaluation struct {
	WeeklyTarget decimal.Decimal `json:"weekly_target"`
	TotalActual  int             `json:"total_actual"`
	Delta        decimal.Decimal `json:"delta"`
}

// IsSurplus reports whether the period ate above target.
func (evaluation GoalEvaluation) IsSurplus() bool {
	return evaluation.Delta.IsPositive()
}

// DailyTarget is RMR minus the deficit the goal rate implies.
func DailyTarget(goal models.WeightLossGoal) decimal.Decimal {
	deficit := goal.RateLbsPerWeek.Mul(decimal.NewFromInt(CaloriesPerPoundPerWeek))
	return decimal.NewFromInt(int64(goal.RestingMetabolicRate)).Sub(deficit)
}

// EvaluateGoal compares the net calories of summaries with the weekly target of
// goal. A nil goal is reported as ErrNoGoalConfigured rather than a zero target.
func EvaluateGoal(summaries []PeriodSummary, goal *models.WeightLossGoal) (GoalEvaluation, error) {
	if goal == nil {
		return GoalEvaluation{}, ErrNoGoalConfigured
	}

	weeklyTarget := DailyTarget(*goal).Mul(decimal.NewFromInt(daysPerPeriod))
	totalActual := SumNetCalories(summaries)
	return GoalEvaluation{
		WeeklyTarget: weeklyTarget,
		TotalActual:  totalActual,
		Delta:        decimal.NewFromInt(int64(totalActual)).Sub(weeklyTarget),
	}, nil
}
