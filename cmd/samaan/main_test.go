package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/samaan/internal/api"
	"github.com/terraincognita07/samaan/internal/db"
)

func TestCSRFMiddlewareConfigUsesCookieSecureFlag(t *testing.T) {
	secureConfig := csrfMiddlewareConfig(true)
	if !secureConfig.CookieSecure {
		t.Fatal("expected csrf cookie secure flag to be enabled")
	}
	if secureConfig.CookieHTTPOnly {
		t.Fatal("expected csrf cookie to be readable for the double-submit header")
	}
	if secureConfig.CookieName != "samaan_csrf" {
		t.Fatalf("expected csrf cookie name samaan_csrf, got %q", secureConfig.CookieName)
	}
	if secureConfig.KeyLookup != "header:X-Csrf-Token" {
		t.Fatalf("expected csrf key lookup header:X-Csrf-Token, got %q", secureConfig.KeyLookup)
	}

	insecureConfig := csrfMiddlewareConfig(false)
	if insecureConfig.CookieSecure {
		t.Fatal("expected csrf cookie secure flag to be disabled")
	}
}

func TestSummaryReference(t *testing.T) {
	now := time.Date(2024, time.January, 8, 15, 0, 0, 0, time.UTC)

	got, err := summaryReference("", now)
	if err != nil || !got.Equal(now) {
		t.Fatalf("summaryReference(\"\") = %v, %v", got, err)
	}

	got, err = summaryReference("2024-02-29", now)
	if err != nil || got.Format("2006-01-02") != "2024-02-29" {
		t.Fatalf("summaryReference(2024-02-29) = %v, %v", got, err)
	}

	if _, err := summaryReference("29/02/2024", now); err == nil {
		t.Fatal("expected invalid date error")
	}
}

func newTestServerApp(t *testing.T) *fiber.App {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "samaan-main-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { closeDatabase(database) })

	handler, err := api.NewHandler(database, "0123456789abcdef0123456789abcdef", time.UTC, api.HandlerOptions{})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	return newApp(handler, false)
}

func TestAppRejectsPostWithoutCSRFToken(t *testing.T) {
	app := newTestServerApp(t)

	request := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.c","password":"x"}`))
	request.Header.Set("Content-Type", "application/json")
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("POST /api/auth/login failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected status 403 without csrf token, got %d", response.StatusCode)
	}
}

func TestAppAcceptsEchoedCSRFToken(t *testing.T) {
	app := newTestServerApp(t)

	health, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	if err != nil {
		t.Fatalf("GET /healthz failed: %v", err)
	}
	defer health.Body.Close()
	if health.Header.Get(fiber.HeaderXRequestID) == "" {
		t.Fatal("expected request id header")
	}

	token := ""
	for _, cookie := range health.Cookies() {
		if cookie.Name == csrfCookieName {
			token = cookie.Value
		}
	}
	if token == "" {
		t.Fatal("expected csrf cookie on safe request")
	}

	request := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"owner@example.com","password":"Sup3rSecret"}`))
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set(csrfHeaderName, token)
	request.Header.Set("Cookie", csrfCookieName+"="+token)
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("POST /api/auth/login failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected csrf check to pass and login to fail with 401, got %d", response.StatusCode)
	}
}
