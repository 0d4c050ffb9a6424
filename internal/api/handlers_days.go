package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/terraincognita07/samaan/internal/observability"
	"github.com/terraincognita07/samaan/internal/services"
)

func (handler *Handler) GetDays(c *fiber.Ctx) error {
	from, err := parseOptionalDay(c.Query("from"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid from date")
	}
	to, err := parseOptionalDay(c.Query("to"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid to date")
	}

	records, err := handler.calorieService.ListRecords(from, to)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRange) {
			return apiError(c, fiber.StatusBadRequest, "invalid range")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch days")
	}
	return c.JSON(records)
}

func (handler *Handler) GetDay(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	record, found, err := handler.calorieService.FetchRecord(day)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch day")
	}
	return c.JSON(fiber.Map{
		"record": record,
		"exists": found,
	})
}

func (handler *Handler) UpsertDay(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	input := services.DailyInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	record, err := handler.calorieService.SaveDailyData(day, input)
	if err != nil {
		return saveDayAPIError(c, err)
	}

	observability.RecordDailySave()
	handler.logger.Debug("daily data saved", zap.String("date", services.FormatCalendarDay(day)))
	return c.JSON(record)
}

func (handler *Handler) DeleteDay(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	if err := handler.calorieService.DeleteRecord(day); err != nil {
		if errors.Is(err, services.ErrDailyRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "day not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to delete day")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func saveDayAPIError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidMealType):
		return apiError(c, fiber.StatusBadRequest, "invalid meal type")
	case errors.Is(err, services.ErrInvalidCalories):
		return apiError(c, fiber.StatusBadRequest, "calories must not be negative")
	case errors.Is(err, services.ErrInvalidMacroNutrient):
		return apiError(c, fiber.StatusBadRequest, "macro nutrients must not be negative")
	case errors.Is(err, services.ErrInvalidExercise):
		return apiError(c, fiber.StatusBadRequest, "exercise calories must not be negative")
	case errors.Is(err, services.ErrInvalidWeight):
		return apiError(c, fiber.StatusBadRequest, "invalid weight")
	default:
		return apiError(c, fiber.StatusInternalServerError, "failed to save day")
	}
}
