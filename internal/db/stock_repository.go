package db

import (
	"github.com/terraincognita07/samaan/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StockRepository struct {
	database *gorm.DB
}

func NewStockRepository(database *gorm.DB) *StockRepository {
	return &StockRepository{database: database}
}

// Upsert inserts the holding or overwrites the existing row for the same
// (user_id, symbol).
func (repo *StockRepository) Upsert(stock *models.Stock) error {
	return repo.database.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name",
			"quantity",
			"date_purchased",
			"date_sold",
			"purchase_price",
			"sold_price",
			"source",
			"comments",
		}),
	}).Create(stock).Error
}

func (repo *StockRepository) ListByUser(userID uint) ([]models.Stock, error) {
	stocks := make([]models.Stock, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("symbol ASC").Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

func (repo *StockRepository) DeleteByUserAndSymbol(userID uint, symbol string) (bool, error) {
	result := repo.database.Where("user_id = ? AND symbol = ?", userID, symbol).Delete(&models.Stock{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
