package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/samaan/internal/services"
)

// GetCaloriesSummary answers ?view=<name> or an explicit ?from=&to= range.
func (handler *Handler) GetCaloriesSummary(c *fiber.Ctx) error {
	rawFrom, rawTo := c.Query("from"), c.Query("to")

	var (
		progress services.CaloriesProgress
		err      error
	)
	if strings.TrimSpace(rawFrom) != "" || strings.TrimSpace(rawTo) != "" {
		viewRange, rangeErr := services.ParseDateRange(rawFrom, rawTo)
		if rangeErr != nil {
			return summaryRangeAPIError(c, rangeErr)
		}
		progress, err = handler.calorieService.BuildProgressForRange(viewRange)
	} else {
		progress, err = handler.calorieService.BuildProgress(c.Query("view"), handler.today())
	}
	if err != nil {
		return summaryRangeAPIError(c, err)
	}
	return c.JSON(progress)
}

// GetDigest renders the current period, or the previous one with ?last=true.
// ?format=markdown returns the markdown body alone.
func (handler *Handler) GetDigest(c *fiber.Ctx) error {
	previous := false
	if raw := strings.TrimSpace(c.Query("last")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid last flag")
		}
		previous = parsed
	}

	reference := handler.today()
	if raw := c.Query("date"); raw != "" {
		day, err := parseDayParam(raw)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid date")
		}
		reference = day
	}

	digest, err := handler.digestService.BuildDigest(reference, previous)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build digest")
	}
	if c.Query("format") == "markdown" {
		c.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
		return c.SendString(digest.Markdown)
	}
	return c.JSON(digest)
}

func summaryRangeAPIError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUnknownView):
		return apiError(c, fiber.StatusBadRequest, "unknown view")
	case errors.Is(err, services.ErrRangeFromRequired):
		return apiError(c, fiber.StatusBadRequest, "from date is required")
	case errors.Is(err, services.ErrRangeToRequired):
		return apiError(c, fiber.StatusBadRequest, "to date is required")
	case errors.Is(err, services.ErrInvalidDate):
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	case errors.Is(err, services.ErrInvalidRange):
		return apiError(c, fiber.StatusBadRequest, "invalid range")
	case errors.Is(err, services.ErrGoalLoadFailed):
		return apiError(c, fiber.StatusInternalServerError, "failed to load goal")
	default:
		return apiError(c, fiber.StatusInternalServerError, "failed to build summary")
	}
}
