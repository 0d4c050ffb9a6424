package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/samaan/internal/models"
)

var maxDailyWeight = decimal.NewFromInt(1500)

var (
	ErrInvalidMealType      = errors.New("invalid meal type")
	ErrInvalidCalories      = errors.New("invalid calories")
	ErrInvalidExercise      = errors.New("invalid exercise calories")
	ErrInvalidWeight        = errors.New("invalid weight")
	ErrInvalidMacroNutrient = errors.New("invalid macro nutrient")
)

type MealInput struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Fiber    int `json:"fiber"`
	Carbs    int `json:"carbs"`
}

type DailyInput struct {
	Meals            map[models.MealType]MealInput `json:"meals"`
	ExerciseCalories int                           `json:"exercise_calories"`
	Weight           decimal.NullDecimal           `json:"weight"`
}

// NormalizeDailyInput validates input and fills every tracked meal, so a save
// always writes all four meal rows.
func NormalizeDailyInput(input DailyInput) (DailyInput, error) {
	if input.ExerciseCalories < 0 {
		return input, ErrInvalidExercise
	}
	if input.Weight.Valid {
		if !input.Weight.Decimal.IsPositive() || input.Weight.Decimal.GreaterThan(maxDailyWeight) {
			return input, ErrInvalidWeight
		}
	}

	meals := make(map[models.MealType]MealInput, len(models.MealTypes))
	for mealType, meal := range input.Meals {
		if !models.IsValidMealType(mealType) {
			return input, ErrInvalidMealType
		}
		if meal.Calories < 0 {
			return input, ErrInvalidCalories
		}
		if meal.Protein < 0 || meal.Fiber < 0 || meal.Carbs < 0 {
			return input, ErrInvalidMacroNutrient
		}
		meals[mealType] = meal
	}
	for _, mealType := range models.MealTypes {
		if _, ok := meals[mealType]; !ok {
			meals[mealType] = MealInput{}
		}
	}

	input.Meals = meals
	return input, nil
}

func (input DailyInput) mealDetails() []models.MealDetail {
	details := make([]models.MealDetail, 0, len(models.MealTypes))
	for _, mealType := range models.MealTypes {
		meal := input.Meals[mealType]
		details = append(details, models.MealDetail{
			MealType: mealType,
			Calories: meal.Calories,
			Protein:  meal.Protein,
			Fiber:    meal.Fiber,
			Carbs:    meal.Carbs,
		})
	}
	return details
}
