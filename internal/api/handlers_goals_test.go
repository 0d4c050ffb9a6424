package api

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/terraincognita07/samaan/internal/models"
	"github.com/terraincognita07/samaan/internal/services"
)

type goalResponse struct {
	Goal        models.WeightLossGoal `json:"goal"`
	DailyTarget decimal.Decimal       `json:"daily_target"`
}

func TestCurrentGoalNotConfigured(t *testing.T) {
	env := newTestApp(t)
	cookie := env.loginOwner(t)

	body := env.expectStatus(t, http.MethodGet, "/api/goals/current", cookie, nil, fiber.StatusNotFound)
	if message := apiErrorMessage(t, body); message != "no goal configured" {
		t.Fatalf("expected no goal configured, got %q", message)
	}
}

func TestSetGoalReplacesCurrentGoal(t *testing.T) {
	env := newTestApp(t)
	cookie := env.loginOwner(t)

	env.expectStatus(t, http.MethodPost, "/api/goals", cookie, map[string]any{
		"rate_lbs_per_week":      "1",
		"resting_metabolic_rate": 2000,
		"start_date":             "2024-01-01",
	}, fiber.StatusCreated)
	env.expectStatus(t, http.MethodPost, "/api/goals", cookie, map[string]any{
		"rate_lbs_per_week":      "2",
		"resting_metabolic_rate": 1843,
		"start_date":             "2024-03-01",
	}, fiber.StatusCreated)

	body := env.expectStatus(t, http.MethodGet, "/api/goals/current", cookie, nil, fiber.StatusOK)
	current := goalResponse{}
	decodeBody(t, body, &current)
	if services.FormatCalendarDay(current.Goal.StartDate) != "2024-03-01" {
		t.Fatalf("expected newest goal to be current, got %v", current.Goal.StartDate)
	}
	if !current.DailyTarget.Equal(decimal.NewFromInt(843)) {
		t.Fatalf("expected daily target 843, got %s", current.DailyTarget)
	}

	body = env.expectStatus(t, http.MethodGet, "/api/goals/on/2024-02-29", cookie, nil, fiber.StatusOK)
	earlier := goalResponse{}
	decodeBody(t, body, &earlier)
	if earlier.Goal.RestingMetabolicRate != 2000 {
		t.Fatalf("expected first goal on 2024-02-29, got rmr %d", earlier.Goal.RestingMetabolicRate)
	}
	if earlier.Goal.EndDate == nil || services.FormatCalendarDay(*earlier.Goal.EndDate) != "2024-02-29" {
		t.Fatalf("expected first goal closed on 2024-02-29, got %v", earlier.Goal.EndDate)
	}

	env.expectStatus(t, http.MethodGet, "/api/goals/on/2023-12-31", cookie, nil, fiber.StatusNotFound)

	body = env.expectStatus(t, http.MethodGet, "/api/goals", cookie, nil, fiber.StatusOK)
	goals := []models.WeightLossGoal{}
	decodeBody(t, body, &goals)
	if len(goals) != 2 {
		t.Fatalf("expected 2 goals, got %d", len(goals))
	}
}

func TestSetGoalValidation(t *testing.T) {
	env := newTestApp(t)
	cookie := env.loginOwner(t)

	env.expectStatus(t, http.MethodPost, "/api/goals", cookie, map[string]any{
		"rate_lbs_per_week":      "1",
		"resting_metabolic_rate": 1843,
		"start_date":             "2024-03-01",
	}, fiber.StatusCreated)

	tests := []struct {
		name    string
		payload map[string]any
		status  int
		message string
	}{
		{name: "rate above five", payload: map[string]any{"rate_lbs_per_week": "5.5", "resting_metabolic_rate": 1843, "start_date": "2024-04-01"}, status: fiber.StatusBadRequest, message: "rate must be between 0 and 5 lbs per week"},
		{name: "negative rate", payload: map[string]any{"rate_lbs_per_week": "-1", "resting_metabolic_rate": 1843, "start_date": "2024-04-01"}, status: fiber.StatusBadRequest, message: "rate must be between 0 and 5 lbs per week"},
		{name: "missing rmr", payload: map[string]any{"rate_lbs_per_week": "1", "start_date": "2024-04-01"}, status: fiber.StatusBadRequest, message: "resting metabolic rate must be positive"},
		{name: "missing start", payload: map[string]any{"rate_lbs_per_week": "1", "resting_metabolic_rate": 1843}, status: fiber.StatusBadRequest, message: "invalid start date"},
		{name: "end before start", payload: map[string]any{"rate_lbs_per_week": "1", "resting_metabolic_rate": 1843, "start_date": "2024-04-01", "end_date": "2024-03-01"}, status: fiber.StatusBadRequest, message: "invalid end date"},
		{name: "starts before current", payload: map[string]any{"rate_lbs_per_week": "1", "resting_metabolic_rate": 1843, "start_date": "2024-02-01"}, status: fiber.StatusConflict, message: "goal starts before the current goal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := env.expectStatus(t, http.MethodPost, "/api/goals", cookie, tt.payload, tt.status)
			if message := apiErrorMessage(t, body); message != tt.message {
				t.Fatalf("expected %q, got %q", tt.message, message)
			}
		})
	}
}
