package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnacks    MealType = "snacks"
)

// MealTypes lists the tracked meals in display order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnacks}

func IsValidMealType(value MealType) bool {
	switch value {
	case MealBreakfast, MealLunch, MealDinner, MealSnacks:
		return true
	default:
		return false
	}
}

// CalorieIntake is the per-day row: exercise burned and the weigh-in.
type CalorieIntake struct {
	ID       uint                `gorm:"primaryKey"`
	Date     time.Time           `gorm:"type:date;not null;uniqueIndex"`
	Exercise int                 `gorm:"not null;default:0"`
	Weight   decimal.NullDecimal `gorm:"type:numeric"`
	Meals    []MealDetail        `gorm:"foreignKey:CalorieIntakeID;constraint:OnDelete:CASCADE"`
}

type MealDetail struct {
	ID              uint     `gorm:"primaryKey"`
	CalorieIntakeID uint     `gorm:"not null;uniqueIndex:uidx_intake_meal"`
	MealType        MealType `gorm:"type:varchar(32);not null;uniqueIndex:uidx_intake_meal"`
	Calories        int      `gorm:"not null;default:0"`
	Protein         int      `gorm:"not null;default:0"`
	Fiber           int      `gorm:"not null;default:0"`
	Carbs           int      `gorm:"not null;default:0"`
}

// DailyRecord is one calendar day of meals, exercise and weight, detached
// from storage rows.
type DailyRecord struct {
	Date             time.Time           `json:"date"`
	ExerciseCalories int                 `json:"exercise_calories"`
	Weight           decimal.NullDecimal `json:"weight"`
	Meals            map[MealType]int    `json:"meals"`
}

// MealCalories returns the calories for a meal type, zero when never recorded.
func (record DailyRecord) MealCalories(meal MealType) int {
	if record.Meals == nil {
		return 0
	}
	return record.Meals[meal]
}

func (intake CalorieIntake) Record() DailyRecord {
	meals := make(map[MealType]int, len(intake.Meals))
	for _, meal := range intake.Meals {
		meals[meal.MealType] += meal.Calories
	}
	return DailyRecord{
		Date:             intake.Date,
		ExerciseCalories: intake.Exercise,
		Weight:           intake.Weight,
		Meals:            meals,
	}
}
