package api

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/samaan/internal/services"
)

func (handler *Handler) parseExportRange(c *fiber.Ctx) (*time.Time, *time.Time, string) {
	from, to, err := services.ParseExportRange(c.Query("from"), c.Query("to"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrExportFromDateInvalid):
			return nil, nil, "invalid from date"
		case errors.Is(err, services.ErrExportToDateInvalid):
			return nil, nil, "invalid to date"
		default:
			return nil, nil, "invalid range"
		}
	}
	return from, to, ""
}

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	from, to, rangeError := handler.parseExportRange(c)
	if rangeError != "" {
		return apiError(c, fiber.StatusBadRequest, rangeError)
	}

	summary, err := handler.exportService.BuildSummary(from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load export summary")
	}
	return c.JSON(summary)
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	from, to, rangeError := handler.parseExportRange(c)
	if rangeError != "" {
		return apiError(c, fiber.StatusBadRequest, rangeError)
	}

	body, err := handler.exportService.BuildCSV(from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	setExportAttachmentHeaders(c, "text/csv", buildExportFilename(handler.today(), "csv"))
	return c.Send(body)
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	from, to, rangeError := handler.parseExportRange(c)
	if rangeError != "" {
		return apiError(c, fiber.StatusBadRequest, rangeError)
	}

	entries, err := handler.exportService.BuildEntries(from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch days")
	}
	now := handler.today()

	payload := fiber.Map{
		"exported_at": now.Format(time.RFC3339),
		"entries":     entries,
	}
	serialized, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	setExportAttachmentHeaders(c, fiber.MIMEApplicationJSON, buildExportFilename(now, "json"))
	return c.Send(serialized)
}
