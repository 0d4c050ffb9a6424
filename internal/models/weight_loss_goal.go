package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultRestingMetabolicRate = 1843

type WeightLossGoal struct {
	ID                   uint            `gorm:"primaryKey" json:"-"`
	RateLbsPerWeek       decimal.Decimal `gorm:"column:goal_lbs_per_week;type:numeric;not null" json:"rate_lbs_per_week"`
	RestingMetabolicRate int             `gorm:"column:rmr;not null" json:"resting_metabolic_rate"`
	StartDate            time.Time       `gorm:"type:date;not null;uniqueIndex:uidx_goal_range" json:"start_date"`
	EndDate              *time.Time      `gorm:"type:date;uniqueIndex:uidx_goal_range" json:"end_date"`
}

// IsCurrent reports whether the goal is open-ended.
func (goal WeightLossGoal) IsCurrent() bool {
	return goal.EndDate == nil
}

// Covers reports whether day falls within [StartDate, EndDate-or-open].
func (goal WeightLossGoal) Covers(day time.Time) bool {
	if day.Before(goal.StartDate) {
		return false
	}
	return goal.EndDate == nil || !day.After(*goal.EndDate)
}
