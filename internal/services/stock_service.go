package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/terraincognita07/samaan/internal/models"
	"github.com/terraincognita07/samaan/internal/observability"
	"github.com/terraincognita07/samaan/internal/quotes"
)

const (
	MaxStockSymbolLength = 10
	MaxStockNameLength   = 100
	MaxStockSourceLength = 100
)

var (
	ErrInvalidStockSymbol   = errors.New("invalid stock symbol")
	ErrInvalidStockName     = errors.New("invalid stock name")
	ErrInvalidStockQuantity = errors.New("invalid stock quantity")
	ErrInvalidStockPrice    = errors.New("invalid stock price")
	ErrInvalidStockSoldDate = errors.New("stock sold before purchase")
	ErrInvalidStockSource   = errors.New("invalid stock source")
	ErrStockSaveFailed      = errors.New("save stock failed")
	ErrStockLoadFailed      = errors.New("load stocks failed")
	ErrStockDeleteFailed    = errors.New("delete stock failed")
	ErrStockNotFound        = errors.New("stock not found")
)

type StockRepository interface {
	Upsert(stock *models.Stock) error
	ListByUser(userID uint) ([]models.Stock, error)
	DeleteByUserAndSymbol(userID uint, symbol string) (bool, error)
}

type QuoteProvider interface {
	Quote(ctx context.Context, symbol string) (quotes.Quote, error)
}

type StockInput struct {
	Symbol        string              `json:"symbol"`
	Name          string              `json:"name"`
	Quantity      int                 `json:"quantity"`
	DatePurchased *time.Time          `json:"date_purchased"`
	PurchasePrice decimal.Decimal     `json:"purchase_price"`
	DateSold      *time.Time          `json:"date_sold"`
	SoldPrice     decimal.NullDecimal `json:"sold_price"`
	Source        string              `json:"source"`
	Comments      string              `json:"comments"`
}

// Holding is a stored position joined with its latest valuation.
type Holding struct {
	Symbol         string           `json:"symbol"`
	Name           string           `json:"name"`
	Quantity       int              `json:"quantity"`
	DatePurchased  *time.Time       `json:"date_purchased"`
	DateSold       *time.Time       `json:"date_sold"`
	PurchasePrice  decimal.Decimal  `json:"purchase_price"`
	SoldPrice      *decimal.Decimal `json:"sold_price"`
	Source         string           `json:"source"`
	Comments       string           `json:"comments"`
	Currency       string           `json:"currency"`
	Sold           bool             `json:"sold"`
	QuoteAvailable bool             `json:"quote_available"`
	CurrentPrice   *decimal.Decimal `json:"current_price"`
	CostBasis      decimal.Decimal  `json:"cost_basis"`
	MarketValue    *decimal.Decimal `json:"market_value"`
	Gain           *decimal.Decimal `json:"gain"`
	GainPercent    *decimal.Decimal `json:"gain_percent"`
	Display        HoldingDisplay   `json:"display"`
}

type HoldingDisplay struct {
	CostBasis   string `json:"cost_basis"`
	MarketValue string `json:"market_value,omitempty"`
	Gain        string `json:"gain,omitempty"`
}

type Portfolio struct {
	Holdings   []Holding       `json:"holdings"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	TotalValue decimal.Decimal `json:"total_value"`
	TotalGain  decimal.Decimal `json:"total_gain"`
	// Complete is false when at least one open holding could not be priced.
	Complete bool `json:"complete"`
}

type StockService struct {
	stocks StockRepository
	quotes QuoteProvider
}

func NewStockService(stocks StockRepository, quotes QuoteProvider) *StockService {
	return &StockService{stocks: stocks, quotes: quotes}
}

func NormalizeStockInput(input StockInput) (StockInput, error) {
	input.Symbol = strings.ToUpper(strings.TrimSpace(input.Symbol))
	if input.Symbol == "" || len(input.Symbol) > MaxStockSymbolLength {
		return input, ErrInvalidStockSymbol
	}
	input.Name = strings.TrimSpace(input.Name)
	if len([]rune(input.Name)) > MaxStockNameLength {
		return input, ErrInvalidStockName
	}
	input.Source = strings.TrimSpace(input.Source)
	if len([]rune(input.Source)) > MaxStockSourceLength {
		return input, ErrInvalidStockSource
	}
	input.Comments = strings.TrimSpace(input.Comments)
	if input.Quantity < 1 {
		return input, ErrInvalidStockQuantity
	}
	if !input.PurchasePrice.IsPositive() {
		return input, ErrInvalidStockPrice
	}

	// A zero sold price means the position is still open.
	if input.SoldPrice.Valid && input.SoldPrice.Decimal.IsZero() {
		input.SoldPrice = decimal.NullDecimal{}
	}
	if input.SoldPrice.Valid && input.SoldPrice.Decimal.IsNegative() {
		return input, ErrInvalidStockPrice
	}
	if input.DateSold != nil && input.DatePurchased != nil && input.DateSold.Before(*input.DatePurchased) {
		return input, ErrInvalidStockSoldDate
	}
	return input, nil
}

func (service *StockService) SaveStock(userID uint, input StockInput) (models.Stock, error) {
	normalized, err := NormalizeStockInput(input)
	if err != nil {
		return models.Stock{}, err
	}

	stock := models.Stock{
		UserID:        userID,
		Symbol:        normalized.Symbol,
		Name:          normalized.Name,
		Quantity:      normalized.Quantity,
		DatePurchased: normalized.DatePurchased,
		DateSold:      normalized.DateSold,
		PurchasePrice: normalized.PurchasePrice,
		SoldPrice:     normalized.SoldPrice,
		Source:        normalized.Source,
		Comments:      normalized.Comments,
	}
	if err := service.stocks.Upsert(&stock); err != nil {
		return models.Stock{}, ErrStockSaveFailed
	}
	return stock, nil
}

func (service *StockService) DeleteStock(userID uint, symbol string) error {
	deleted, err := service.stocks.DeleteByUserAndSymbol(userID, strings.ToUpper(strings.TrimSpace(symbol)))
	if err != nil {
		return ErrStockDeleteFailed
	}
	if !deleted {
		return ErrStockNotFound
	}
	return nil
}

// ListHoldings values every stored position. Open positions are priced from the
// quote provider; a failed lookup still returns the stored row with
// QuoteAvailable unset.
func (service *StockService) ListHoldings(ctx context.Context, userID uint) (Portfolio, error) {
	stocks, err := service.stocks.ListByUser(userID)
	if err != nil {
		return Portfolio{}, ErrStockLoadFailed
	}

	portfolio := Portfolio{Holdings: make([]Holding, 0, len(stocks)), Complete: true}
	for _, stock := range stocks {
		holding := service.valueHolding(ctx, stock)
		portfolio.Holdings = append(portfolio.Holdings, holding)

		portfolio.TotalCost = portfolio.TotalCost.Add(holding.CostBasis)
		if holding.MarketValue == nil {
			portfolio.Complete = false
			continue
		}
		portfolio.TotalValue = portfolio.TotalValue.Add(*holding.MarketValue)
		portfolio.TotalGain = portfolio.TotalGain.Add(*holding.Gain)
	}
	return portfolio, nil
}

func (service *StockService) valueHolding(ctx context.Context, stock models.Stock) Holding {
	quantity := decimal.NewFromInt(int64(stock.Quantity))
	holding := Holding{
		Symbol:        stock.Symbol,
		Name:          stock.Name,
		Quantity:      stock.Quantity,
		DatePurchased: stock.DatePurchased,
		DateSold:      stock.DateSold,
		PurchasePrice: stock.PurchasePrice,
		Source:        stock.Source,
		Comments:      stock.Comments,
		Currency:      models.DefaultCurrency,
		Sold:          stock.IsSold(),
		CostBasis:     stock.PurchasePrice.Mul(quantity),
	}
	if stock.SoldPrice.Valid {
		soldPrice := stock.SoldPrice.Decimal
		holding.SoldPrice = &soldPrice
	}

	var unitPrice *decimal.Decimal
	switch {
	case holding.SoldPrice != nil:
		unitPrice = holding.SoldPrice
	case !holding.Sold:
		unitPrice = service.lookupPrice(ctx, &holding)
	}

	if unitPrice != nil {
		marketValue := unitPrice.Mul(quantity)
		gain := marketValue.Sub(holding.CostBasis)
		gainPercent := gain.Div(holding.CostBasis).Mul(decimal.NewFromInt(100)).Round(2)
		holding.MarketValue = &marketValue
		holding.Gain = &gain
		holding.GainPercent = &gainPercent
		holding.Display.MarketValue = FormatMoney(marketValue, holding.Currency)
		holding.Display.Gain = FormatMoney(gain, holding.Currency)
	}
	holding.Display.CostBasis = FormatMoney(holding.CostBasis, holding.Currency)
	return holding
}

func (service *StockService) lookupPrice(ctx context.Context, holding *Holding) *decimal.Decimal {
	if service.quotes == nil {
		return nil
	}

	quote, err := service.quotes.Quote(ctx, holding.Symbol)
	switch {
	case errors.Is(err, quotes.ErrSymbolNotFound):
		observability.RecordQuoteLookup(observability.QuoteResultNotFound)
		return nil
	case err != nil:
		observability.RecordQuoteLookup(observability.QuoteResultUnavailable)
		return nil
	}
	observability.RecordQuoteLookup(observability.QuoteResultOK)

	holding.QuoteAvailable = true
	holding.CurrentPrice = &quote.Price
	if quote.Currency != "" {
		holding.Currency = quote.Currency
	}
	if holding.Name == "" {
		holding.Name = quote.Name
	}
	return &quote.Price
}

// FormatMoney renders amount with the symbol and grouping of currency.
// Codes go-money does not know are formatted as the default currency.
func FormatMoney(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		cur = money.GetCurrency(models.DefaultCurrency)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}
