package api

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func TestHealthAndNotFound(t *testing.T) {
	env := newTestApp(t)

	body := env.expectStatus(t, http.MethodGet, "/healthz", "", nil, fiber.StatusOK)
	if !strings.Contains(string(body), `"status":"ok"`) {
		t.Fatalf("unexpected health body %s", body)
	}

	body = env.expectStatus(t, http.MethodGet, "/nope", "", nil, fiber.StatusNotFound)
	if message := apiErrorMessage(t, body); message != "not found" {
		t.Fatalf("expected not found, got %q", message)
	}
}

func TestMetricsExposesDailySaves(t *testing.T) {
	env := newTestApp(t)
	cookie := env.loginOwner(t)
	env.expectStatus(t, http.MethodPost, "/api/days/2024-01-04", cookie,
		saveDayPayload(0, nil, map[string]int{"dinner": 100}), fiber.StatusOK)

	body := env.expectStatus(t, http.MethodGet, "/metrics", "", nil, fiber.StatusOK)
	if !strings.Contains(string(body), "samaan_daily_saves_total") {
		t.Fatal("expected daily saves counter in metrics output")
	}
}

func TestNewHandlerDefaults(t *testing.T) {
	if _, err := NewHandler(nil, testSecretKey, nil, HandlerOptions{}); err == nil {
		t.Fatal("expected error without database")
	}

	env := newTestApp(t)
	if env.handler.location != time.UTC {
		t.Fatalf("expected UTC location, got %v", env.handler.location)
	}
}
