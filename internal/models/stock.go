package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultCurrency = "USD"

type Stock struct {
	ID            uint                `gorm:"primaryKey"`
	UserID        uint                `gorm:"not null;uniqueIndex:uidx_user_symbol"`
	Symbol        string              `gorm:"type:varchar(10);not null;uniqueIndex:uidx_user_symbol"`
	Name          string              `gorm:"type:varchar(100)"`
	Quantity      int                 `gorm:"not null"`
	DatePurchased *time.Time          `gorm:"type:date"`
	DateSold      *time.Time          `gorm:"type:date"`
	PurchasePrice decimal.Decimal     `gorm:"type:numeric(10,2);not null"`
	SoldPrice     decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Source        string              `gorm:"type:varchar(100)"`
	Comments      string
}

func (stock Stock) IsSold() bool {
	return stock.DateSold != nil || stock.SoldPrice.Valid
}
