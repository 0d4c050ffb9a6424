package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/samaan/internal/models"
)

var maxGoalRate = decimal.NewFromInt(5)

var (
	ErrInvalidGoalRate         = errors.New("invalid goal rate")
	ErrInvalidRestingRate      = errors.New("invalid resting metabolic rate")
	ErrInvalidGoalStartDate    = errors.New("invalid goal start date")
	ErrInvalidGoalRange        = errors.New("goal end before start")
	ErrGoalStartsBeforeCurrent = errors.New("goal starts before the current goal")
	ErrGoalSaveFailed          = errors.New("save goal failed")
)

type GoalRepository interface {
	SaveClosed(goal *models.WeightLossGoal) error
	SaveOpenEnded(goal *models.WeightLossGoal) error
	FindCurrent() (models.WeightLossGoal, bool, error)
	FindForDate(day time.Time) (models.WeightLossGoal, bool, error)
	List() ([]models.WeightLossGoal, error)
}

type GoalInput struct {
	RateLbsPerWeek       decimal.Decimal
	RestingMetabolicRate int
	StartDate            time.Time
	EndDate              *time.Time
}

type GoalService struct {
	goals GoalRepository
}

func NewGoalService(goals GoalRepository) *GoalService {
	return &GoalService{goals: goals}
}

func ValidateGoalInput(input GoalInput) error {
	if input.RateLbsPerWeek.IsNegative() || input.RateLbsPerWeek.GreaterThan(maxGoalRate) {
		return ErrInvalidGoalRate
	}
	if input.RestingMetabolicRate <= 0 {
		return ErrInvalidRestingRate
	}
	if input.StartDate.IsZero() {
		return ErrInvalidGoalStartDate
	}
	if input.EndDate != nil && input.EndDate.Before(input.StartDate) {
		return ErrInvalidGoalRange
	}
	return nil
}

// SetGoal stores a goal. An open-ended goal replaces the current one, which is
// closed the day before the new goal starts.
func (service *GoalService) SetGoal(input GoalInput) (models.WeightLossGoal, error) {
	if err := ValidateGoalInput(input); err != nil {
		return models.WeightLossGoal{}, err
	}

	goal := models.WeightLossGoal{
		RateLbsPerWeek:       input.RateLbsPerWeek,
		RestingMetabolicRate: input.RestingMetabolicRate,
		StartDate:            input.StartDate,
		EndDate:              input.EndDate,
	}

	if goal.EndDate != nil {
		if err := service.goals.SaveClosed(&goal); err != nil {
			return models.WeightLossGoal{}, ErrGoalSaveFailed
		}
		return goal, nil
	}

	current, found, err := service.goals.FindCurrent()
	if err != nil {
		return models.WeightLossGoal{}, ErrGoalLoadFailed
	}
	if found && goal.StartDate.Before(current.StartDate) {
		return models.WeightLossGoal{}, ErrGoalStartsBeforeCurrent
	}
	if err := service.goals.SaveOpenEnded(&goal); err != nil {
		return models.WeightLossGoal{}, ErrGoalSaveFailed
	}
	return goal, nil
}

func (service *GoalService) CurrentGoal() (models.WeightLossGoal, error) {
	goal, found, err := service.goals.FindCurrent()
	if err != nil {
		return models.WeightLossGoal{}, ErrGoalLoadFailed
	}
	if !found {
		return models.WeightLossGoal{}, ErrNoGoalConfigured
	}
	return goal, nil
}

func (service *GoalService) GoalForDate(day time.Time) (models.WeightLossGoal, error) {
	goal, found, err := service.goals.FindForDate(day)
	if err != nil {
		return models.WeightLossGoal{}, ErrGoalLoadFailed
	}
	if !found {
		return models.WeightLossGoal{}, ErrNoGoalConfigured
	}
	return goal, nil
}

func (service *GoalService) ListGoals() ([]models.WeightLossGoal, error) {
	goals, err := service.goals.List()
	if err != nil {
		return nil, ErrGoalLoadFailed
	}
	return goals, nil
}
