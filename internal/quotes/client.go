// Package quotes looks up the latest market price of a ticker symbol.
package quotes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/terraincognita07/samaan/internal/config"
)

const (
	pricePath         = "$.chart.result[0].meta.regularMarketPrice"
	previousClosePath = "$.chart.result[0].meta.chartPreviousClose"
	currencyPath      = "$.chart.result[0].meta.currency"
	shortNamePath     = "$.chart.result[0].meta.shortName"
	longNamePath      = "$.chart.result[0].meta.longName"
)

var (
	ErrSymbolNotFound   = errors.New("symbol not found")
	ErrQuoteUnavailable = errors.New("quote unavailable")
)

// Quote is a point-in-time price for one symbol.
type Quote struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Currency      string          `json:"currency"`
	Price         decimal.Decimal `json:"price"`
	PreviousClose decimal.Decimal `json:"previous_close"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
}

// Client is a resty-backed reader of a chart-style quote endpoint.
type Client struct {
	httpClient *resty.Client
}

func NewClient(cfg config.QuotesConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "samaan/1.0").
		SetTimeout(timeout)

	return &Client{httpClient: restyClient}
}

func (c *Client) Quote(ctx context.Context, symbol string) (Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return Quote{}, ErrSymbolNotFound
	}

	var payload any
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"range": "1d", "interval": "1d"}).
		SetResult(&payload).
		Get("/v8/finance/chart/" + url.PathEscape(symbol))
	if err != nil {
		return Quote{}, fmt.Errorf("%w: request %s: %v", ErrQuoteUnavailable, symbol, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return Quote{}, ErrSymbolNotFound
	case resp.StatusCode() >= http.StatusBadRequest:
		return Quote{}, fmt.Errorf("%w: %s returned status %d", ErrQuoteUnavailable, symbol, resp.StatusCode())
	}

	return parseChart(symbol, payload)
}

func parseChart(symbol string, payload any) (Quote, error) {
	if _, err := jsonpath.Get("$.chart.result[0]", payload); err != nil {
		return Quote{}, ErrSymbolNotFound
	}

	price, err := lookupNumber(payload, pricePath)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: %s price: %v", ErrQuoteUnavailable, symbol, err)
	}

	quote := Quote{
		Symbol:   symbol,
		Price:    price,
		Currency: strings.ToUpper(lookupString(payload, currencyPath)),
		Name:     lookupString(payload, longNamePath),
	}
	if quote.Name == "" {
		quote.Name = lookupString(payload, shortNamePath)
	}

	if previous, err := lookupNumber(payload, previousClosePath); err == nil {
		quote.PreviousClose = previous
		quote.Change = price.Sub(previous)
		if !previous.IsZero() {
			quote.ChangePercent = quote.Change.Div(previous).Mul(decimal.NewFromInt(100)).Round(2)
		}
	}
	return quote, nil
}

func lookupNumber(payload any, path string) (decimal.Decimal, error) {
	value, err := jsonpath.Get(path, payload)
	if err != nil {
		return decimal.Zero, err
	}
	// jsonpath may wrap a single match in a list.
	if list, ok := value.([]any); ok && len(list) > 0 {
		value = list[0]
	}
	number, ok := value.(float64)
	if !ok {
		return decimal.Zero, fmt.Errorf("%s is not a number: %v", path, value)
	}
	return decimal.NewFromFloat(number), nil
}

func lookupString(payload any, path string) string {
	value, err := jsonpath.Get(path, payload)
	if err != nil {
		return ""
	}
	if list, ok := value.([]any); ok && len(list) > 0 {
		value = list[0]
	}
	text, _ := value.(string)
	return strings.TrimSpace(text)
}
