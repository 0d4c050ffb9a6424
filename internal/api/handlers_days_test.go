package api

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/samaan/internal/models"
)

type dayResponse struct {
	Record models.DailyRecord `json:"record"`
	Exists bool               `json:"exists"`
}

func saveDayPayload(exercise int, weight any, calories map[string]int) map[string]any {
	meals := map[string]any{}
	for meal, value := range calories {
		meals[meal] = map[string]int{"calories": value}
	}
	return map[string]any{
		"meals":             meals,
		"exercise_calories": exercise,
		"weight":            weight,
	}
}

func TestGetDayReturnsZeroRecordWhenMissing(t *testing.T) {
	env := newTestApp(t)
	cookie := env.loginOwner(t)

	body := env.expectStatus(t, http.MethodGet, "/api/days/2024-01-04", cookie, nil, fiber.StatusOK)
	payload := dayResponse{}
	decodeBody(t, body, &payload)

	if payload.Exists {
		t.Fatal("expected exists=false for an unsaved day")
	}
	if payload.Record.Weight.Valid {
		t.Fatal("expected unset weight for an unsaved day")
	}
	for _, meal := range models.MealTypes {
		if got := payload.Record.MealCalories(meal); got != 0 {
			t.Fatalf("expected %s=0, got %d", meal, got)
		}
	}
}

func TestUpsertDayRoundTrip(t *testing.T) {
	env := newTestApp(t)
	cookie := env.loginOwner(t)

	env.expectStatus(t, http.MethodPost, "/api/days/2024-01-04", cookie,
		saveDayPayload(300, "180.4", map[string]int{"breakfast": 400, "lunch": 600, "dinner": 500}),
		fiber.StatusOK)

	body := env.expectStatus(t, http.MethodGet, "/api/days/2024-01-04", cookie, nil, fiber.StatusOK)
	payload := dayResponse{}
	decodeBody(t, body, &payload)
	if !payload.Exists {
		t.Fatal("expected saved day to exist")
	}
	if payload.Record.ExerciseCalories != 300 {
		t.Fatalf("expected exercise 300, got %d", payload.Record.ExerciseCalories)
	}
	if payload.Record.MealCalories(models.MealLunch) != 600 || payload.Record.MealCalories(models.MealSnacks) != 0 {
		t.Fatalf("unexpected meals: %#v", payload.Record.Meals)
	}
	if !payload.Record.Weight.Valid || payload.Record.Weight.Decimal.String() != "180.4" {
		t.Fatalf("expected weight 180.4, got %#v", payload.Record.Weight)
	}

	env.expectStatus(t, http.MethodPost, "/api/days/2024-01-04", cookie,
		saveDayPayload(0, nil, map[string]int{"dinner": 700}),
		fiber.StatusOK)
	body = env.expectStatus(t, http.MethodGet, "/api/days/2024-01-04", cookie, nil, fiber.StatusOK)
	payload = dayResponse{}
	decodeBody(t, body, &payload)
	if payload.Record.MealCalories(models.MealBreakfast) != 0 || payload.Record.MealCalories(models.MealDinner) != 700 {
		t.Fatalf("expected overwrite of every meal, got %#v", payload.Record.Meals)
	}
	if payload.Record.Weight.Valid {
		t.Fatal("expected weight to be cleared by the second save")
	}
}

func TestUpsertDayValidation(t *testing.T) {
	env := newTestApp(t)
	cookie := env.loginOwner(t)

	tests := []struct {
		name    string
		path    string
		payload map[string]any
		message string
	}{
		{name: "bad date", path: "/api/days/2024-13-01", payload: saveDayPayload(0, nil, nil), message: "invalid date"},
		{name: "negative calories", path: "/api/days/2024-01-04", payload: saveDayPayload(0, nil, map[string]int{"lunch": -1}), message: "calories must not be negative"},
		{name: "unknown meal", path: "/api/days/2024-01-04", payload: saveDayPayload(0, nil, map[string]int{"brunch": 10}), message: "invalid meal type"},
		{name: "negative exercise", path: "/api/days/2024-01-04", payload: saveDayPayload(-5, nil, nil), message: "exercise calories must not be negative"},
		{name: "zero weight", path: "/api/days/2024-01-04", payload: saveDayPayload(0, "0", nil), message: "invalid weight"},
		{name: "weight too large", path: "/api/days/2024-01-04", payload: saveDayPayload(0, "1500.1", nil), message: "invalid weight"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := env.expectStatus(t, http.MethodPost, tt.path, cookie, tt.payload, fiber.StatusBadRequest)
			if message := apiErrorMessage(t, body); message != tt.message {
				t.Fatalf("expected %q, got %q", tt.message, message)
			}
		})
	}
}

func TestGetDaysFiltersRange(t *testing.T) {
	env := newTestApp(t)
	cookie := env.loginOwner(t)

	for _, date := range []string{"2024-01-03", "2024-01-04", "2024-01-10", "2024-01-11"} {
		env.expectStatus(t, http.MethodPost, "/api/days/"+date, cookie,
			saveDayPayload(0, nil, map[string]int{"dinner": 100}), fiber.StatusOK)
	}

	body := env.expectStatus(t, http.MethodGet, "/api/days?from=2024-01-04&to=2024-01-10", cookie, nil, fiber.StatusOK)
	records := []models.DailyRecord{}
	decodeBody(t, body, &records)
	if len(records) != 2 {
		t.Fatalf("expected 2 records in range, got %d", len(records))
	}

	env.expectStatus(t, http.MethodGet, "/api/days?from=2024-01-10&to=2024-01-04", cookie, nil, fiber.StatusBadRequest)
	env.expectStatus(t, http.MethodGet, "/api/days?from=nope", cookie, nil, fiber.StatusBadRequest)
}

func TestDeleteDay(t *testing.T) {
	env := newTestApp(t)
	cookie := env.loginOwner(t)

	body := env.expectStatus(t, http.MethodDelete, "/api/days/2024-01-04", cookie, nil, fiber.StatusNotFound)
	if message := apiErrorMessage(t, body); message != "day not found" {
		t.Fatalf("expected day not found, got %q", message)
	}

	env.expectStatus(t, http.MethodPost, "/api/days/2024-01-04", cookie,
		saveDayPayload(0, nil, map[string]int{"dinner": 100}), fiber.StatusOK)
	env.expectStatus(t, http.MethodDelete, "/api/days/2024-01-04", cookie, nil, fiber.StatusOK)

	body = env.expectStatus(t, http.MethodGet, "/api/days/2024-01-04", cookie, nil, fiber.StatusOK)
	payload := dayResponse{}
	decodeBody(t, body, &payload)
	if payload.Exists {
		t.Fatal("expected day to be gone after delete")
	}
}
