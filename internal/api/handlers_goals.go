package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/terraincognita07/samaan/internal/observability"
	"github.com/terraincognita07/samaan/internal/services"
)

type goalPayload struct {
	RateLbsPerWeek       decimal.Decimal `json:"rate_lbs_per_week"`
	RestingMetabolicRate int             `json:"resting_metabolic_rate"`
	StartDate            string          `json:"start_date"`
	EndDate              string          `json:"end_date"`
}

func (payload goalPayload) input() (services.GoalInput, error) {
	start, err := parseDayParam(payload.StartDate)
	if err != nil {
		return services.GoalInput{}, services.ErrInvalidGoalStartDate
	}
	end, err := parseOptionalDay(payload.EndDate)
	if err != nil {
		return services.GoalInput{}, services.ErrInvalidGoalRange
	}
	return services.GoalInput{
		RateLbsPerWeek:       payload.RateLbsPerWeek,
		RestingMetabolicRate: payload.RestingMetabolicRate,
		StartDate:            start,
		EndDate:              end,
	}, nil
}

func (handler *Handler) ListGoals(c *fiber.Ctx) error {
	goals, err := handler.goalService.ListGoals()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load goals")
	}
	return c.JSON(goals)
}

func (handler *Handler) GetCurrentGoal(c *fiber.Ctx) error {
	goal, err := handler.goalService.CurrentGoal()
	if err != nil {
		return goalLookupAPIError(c, err)
	}
	return c.JSON(fiber.Map{
		"goal":         goal,
		"daily_target": services.DailyTarget(goal),
	})
}

func (handler *Handler) GetGoalForDate(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	goal, err := handler.goalService.GoalForDate(day)
	if err != nil {
		return goalLookupAPIError(c, err)
	}
	return c.JSON(fiber.Map{
		"goal":         goal,
		"daily_target": services.DailyTarget(goal),
	})
}

func (handler *Handler) SetGoal(c *fiber.Ctx) error {
	payload := goalPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	input, err := payload.input()
	if err != nil {
		return setGoalAPIError(c, err)
	}

	goal, err := handler.goalService.SetGoal(input)
	if err != nil {
		return setGoalAPIError(c, err)
	}

	observability.RecordGoalUpdate()
	handler.logger.Info("weight loss goal saved",
		zap.String("start_date", services.FormatCalendarDay(goal.StartDate)),
		zap.Bool("open_ended", goal.IsCurrent()),
	)
	return c.Status(fiber.StatusCreated).JSON(goal)
}

func goalLookupAPIError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrNoGoalConfigured) {
		return apiError(c, fiber.StatusNotFound, "no goal configured")
	}
	return apiError(c, fiber.StatusInternalServerError, "failed to load goal")
}

func setGoalAPIError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidGoalRate):
		return apiError(c, fiber.StatusBadRequest, "rate must be between 0 and 5 lbs per week")
	case errors.Is(err, services.ErrInvalidRestingRate):
		return apiError(c, fiber.StatusBadRequest, "resting metabolic rate must be positive")
	case errors.Is(err, services.ErrInvalidGoalStartDate):
		return apiError(c, fiber.StatusBadRequest, "invalid start date")
	case errors.Is(err, services.ErrInvalidGoalRange):
		return apiError(c, fiber.StatusBadRequest, "invalid end date")
	case errors.Is(err, services.ErrGoalStartsBeforeCurrent):
		return apiError(c, fiber.StatusConflict, "goal starts before the current goal")
	default:
		return apiError(c, fiber.StatusInternalServerError, "failed to save goal")
	}
}
