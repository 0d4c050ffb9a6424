package db

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/samaan/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CalorieRepository struct {
	database *gorm.DB
}

func NewCalorieRepository(database *gorm.DB) *CalorieRepository {
	return &CalorieRepository{database: database}
}

// SaveDay upserts the intake row for day and every meal row in one
// transaction. Meals are keyed on (intake, meal type), so saving the same day
// twice overwrites instead of duplicating.
func (repo *CalorieRepository) SaveDay(day time.Time, exercise int, weight decimal.NullDecimal, meals []models.MealDetail) (models.CalorieIntake, error) {
	var stored models.CalorieIntake
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		intake := models.CalorieIntake{Date: day, Exercise: exercise, Weight: weight}
		if err := tx.Omit("Meals").Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"exercise", "weight"}),
		}).Create(&intake).Error; err != nil {
			return fmt.Errorf("upsert calorie intake: %w", err)
		}

		// The upsert does not report the id of an updated row on every driver.
		if err := tx.Where("date = ?", day).First(&stored).Error; err != nil {
			return fmt.Errorf("reload calorie intake: %w", err)
		}

		for _, meal := range meals {
			meal.ID = 0
			meal.CalorieIntakeID = stored.ID
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "calorie_intake_id"}, {Name: "meal_type"}},
				DoUpdates: clause.AssignmentColumns([]string{"calories", "protein", "fiber", "carbs"}),
			}).Create(&meal).Error; err != nil {
				return fmt.Errorf("upsert meal %s: %w", meal.MealType, err)
			}
		}

		return tx.Where("calorie_intake_id = ?", stored.ID).Order("id ASC").Find(&stored.Meals).Error
	})
	if err != nil {
		return models.CalorieIntake{}, err
	}
	return stored, nil
}

func (repo *CalorieRepository) FindByDate(day time.Time) (models.CalorieIntake, bool, error) {
	entry := models.CalorieIntake{}
	result := repo.database.
		Preload("Meals").
		Where("date = ?", day).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.CalorieIntake{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CalorieIntake{}, false, nil
	}
	return entry, true, nil
}

// ListRange returns intakes with from <= date <= to, oldest first. Nil bounds
// are open.
func (repo *CalorieRepository) ListRange(from *time.Time, to *time.Time) ([]models.CalorieIntake, error) {
	query := repo.database.Model(&models.CalorieIntake{}).Preload("Meals")
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date <= ?", *to)
	}

	intakes := make([]models.CalorieIntake, 0)
	if err := query.Order("date ASC, id ASC").Find(&intakes).Error; err != nil {
		return nil, err
	}
	return intakes, nil
}

func (repo *CalorieRepository) DeleteByDate(day time.Time) (bool, error) {
	var deleted int64
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		var intake models.CalorieIntake
		result := tx.Where("date = ?", day).Limit(1).Find(&intake)
		if result.Error != nil || result.RowsAffected == 0 {
			return result.Error
		}
		if err := tx.Where("calorie_intake_id = ?", intake.ID).Delete(&models.MealDetail{}).Error; err != nil {
			return err
		}
		deletion := tx.Delete(&models.CalorieIntake{}, intake.ID)
		deleted = deletion.RowsAffected
		return deletion.Error
	})
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}
