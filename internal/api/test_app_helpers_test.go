package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/terraincognita07/samaan/internal/db"
	"github.com/terraincognita07/samaan/internal/quotes"
)

const (
	testSecretKey     = "test-secret-key-0123456789abcdef"
	testOwnerEmail    = "owner@example.com"
	testOwnerPassword = "Sup3rSecret"
)

type stubQuoteProvider struct {
	prices map[string]decimal.Decimal
}

func (stub stubQuoteProvider) Quote(_ context.Context, symbol string) (quotes.Quote, error) {
	price, ok := stub.prices[symbol]
	if !ok {
		return quotes.Quote{}, quotes.ErrSymbolNotFound
	}
	return quotes.Quote{Symbol: symbol, Currency: "USD", Price: price}, nil
}

type testApp struct {
	app     *fiber.App
	handler *Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithQuotes(t, stubQuoteProvider{})
}

func newTestAppWithQuotes(t *testing.T, provider stubQuoteProvider) *testApp {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "samaan-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	handler, err := NewHandler(database, testSecretKey, time.UTC, HandlerOptions{Quotes: provider})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return &testApp{app: app, handler: handler}
}

// fixNow pins the handler clock so view ranges are deterministic.
func (env *testApp) fixNow(now time.Time) {
	env.handler.now = func() time.Time { return now }
}

func (env *testApp) createOwner(t *testing.T) {
	t.Helper()
	if _, err := env.handler.authService.CreateOwner(testOwnerEmail, testOwnerPassword); err != nil {
		t.Fatalf("create owner: %v", err)
	}
}

// loginOwner creates the owner and returns the Cookie header value of its session.
func (env *testApp) loginOwner(t *testing.T) string {
	t.Helper()
	env.createOwner(t)
	return env.login(t, testOwnerEmail, testOwnerPassword)
}

func (env *testApp) login(t *testing.T, email string, password string) string {
	t.Helper()

	response := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	defer response.Body.Close()
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("login expected status 200, got %d", response.StatusCode)
	}

	token := responseCookieValue(response.Cookies(), authCookieName)
	if token == "" {
		t.Fatal("expected auth cookie in login response")
	}
	return authCookieName + "=" + token
}

func (env *testApp) do(t *testing.T, method string, path string, cookie string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	request.Header.Set("Accept", "application/json")
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}

	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func (env *testApp) expectStatus(t *testing.T, method string, path string, cookie string, payload any, status int) []byte {
	t.Helper()

	response := env.do(t, method, path, cookie, payload)
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", method, path, err)
	}
	if response.StatusCode != status {
		t.Fatalf("%s %s expected status %d, got %d: %s", method, path, status, response.StatusCode, body)
	}
	return body
}

func decodeBody(t *testing.T, body []byte, target any) {
	t.Helper()
	if err := json.Unmarshal(body, target); err != nil {
		t.Fatalf("decode response body: %v (%s)", err, body)
	}
}

func responseCookieValue(cookies []*http.Cookie, name string) string {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

func apiErrorMessage(t *testing.T, body []byte) string {
	t.Helper()
	payload := map[string]string{}
	decodeBody(t, body, &payload)
	return payload["error"]
}

func readAll(t *testing.T, response *http.Response) []byte {
	t.Helper()
	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return body
}
