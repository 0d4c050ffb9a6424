package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/samaan/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// parseDayParam parses a YYYY-MM-DD path or query value into a stored
// calendar day.
func parseDayParam(raw string) (time.Time, error) {
	return services.ParseCalendarDay(raw)
}

func parseOptionalDay(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	day, err := parseDayParam(raw)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func buildExportFilename(now time.Time, extension string) string {
	return fmt.Sprintf("samaan-export-%s.%s", now.Format("2006-01-02"), extension)
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}
