package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/terraincognita07/samaan/internal/services"
)

type stockPayload struct {
	Symbol        string              `json:"symbol"`
	Name          string              `json:"name"`
	Quantity      int                 `json:"quantity"`
	DatePurchased string              `json:"date_purchased"`
	PurchasePrice decimal.Decimal     `json:"purchase_price"`
	DateSold      string              `json:"date_sold"`
	SoldPrice     decimal.NullDecimal `json:"sold_price"`
	Source        string              `json:"source"`
	Comments      string              `json:"comments"`
}

var errInvalidStockDate = errors.New("invalid stock date")

func (payload stockPayload) input() (services.StockInput, error) {
	purchased, err := parseOptionalDay(payload.DatePurchased)
	if err != nil {
		return services.StockInput{}, errInvalidStockDate
	}
	sold, err := parseOptionalDay(payload.DateSold)
	if err != nil {
		return services.StockInput{}, errInvalidStockDate
	}
	return services.StockInput{
		Symbol:        payload.Symbol,
		Name:          payload.Name,
		Quantity:      payload.Quantity,
		DatePurchased: purchased,
		PurchasePrice: payload.PurchasePrice,
		DateSold:      sold,
		SoldPrice:     payload.SoldPrice,
		Source:        payload.Source,
		Comments:      payload.Comments,
	}, nil
}

func (handler *Handler) ListStocks(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	portfolio, err := handler.stockService.ListHoldings(c.UserContext(), user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load stocks")
	}
	return c.JSON(portfolio)
}

func (handler *Handler) SaveStock(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := stockPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	input, err := payload.input()
	if err != nil {
		return saveStockAPIError(c, err)
	}

	stock, err := handler.stockService.SaveStock(user.ID, input)
	if err != nil {
		return saveStockAPIError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"symbol":   stock.Symbol,
		"name":     stock.Name,
		"quantity": stock.Quantity,
		"sold":     stock.IsSold(),
	})
}

func (handler *Handler) DeleteStock(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.stockService.DeleteStock(user.ID, c.Params("symbol")); err != nil {
		if errors.Is(err, services.ErrStockNotFound) {
			return apiError(c, fiber.StatusNotFound, "stock not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to delete stock")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func saveStockAPIError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errInvalidStockDate):
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	case errors.Is(err, services.ErrInvalidStockSymbol):
		return apiError(c, fiber.StatusBadRequest, "invalid symbol")
	case errors.Is(err, services.ErrInvalidStockName):
		return apiError(c, fiber.StatusBadRequest, "name is too long")
	case errors.Is(err, services.ErrInvalidStockSource):
		return apiError(c, fiber.StatusBadRequest, "source is too long")
	case errors.Is(err, services.ErrInvalidStockQuantity):
		return apiError(c, fiber.StatusBadRequest, "quantity must be at least 1")
	case errors.Is(err, services.ErrInvalidStockPrice):
		return apiError(c, fiber.StatusBadRequest, "invalid price")
	case errors.Is(err, services.ErrInvalidStockSoldDate):
		return apiError(c, fiber.StatusBadRequest, "sold date before purchase date")
	default:
		return apiError(c, fiber.StatusInternalServerError, "failed to save stock")
	}
}
