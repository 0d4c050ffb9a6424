package db

import (
	"time"

	"github.com/terraincognita07/samaan/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GoalRepository struct {
	database *gorm.DB
}

func NewGoalRepository(database *gorm.DB) *GoalRepository {
	return &GoalRepository{database: database}
}

// SaveClosed upserts a goal with an explicit end date on (start_date, end_date).
func (repo *GoalRepository) SaveClosed(goal *models.WeightLossGoal) error {
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "start_date"}, {Name: "end_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"goal_lbs_per_week", "rmr"}),
	}).Create(goal).Error
}

// SaveOpenEnded makes goal the only open-ended goal. An open goal with the
// same start is updated in place; older open goals are closed the day before
// goal starts. The open rows stay locked until commit and uidx_goal_open
// rejects a second open goal from a concurrent writer.
func (repo *GoalRepository) SaveOpenEnded(goal *models.WeightLossGoal) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		open := make([]models.WeightLossGoal, 0)
		if err := tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).Where("end_date IS NULL").Order("start_date DESC").Find(&open).Error; err != nil {
			return err
		}

		closeAt := goal.StartDate.AddDate(0, 0, -1)
		updated := false
		for _, existing := range open {
			if existing.StartDate.Equal(goal.StartDate) {
				if err := tx.Model(&models.WeightLossGoal{}).Where("id = ?", existing.ID).Updates(map[string]any{
					"goal_lbs_per_week": goal.RateLbsPerWeek,
					"rmr":               goal.RestingMetabolicRate,
				}).Error; err != nil {
					return err
				}
				goal.ID = existing.ID
				updated = true
				continue
			}
			if err := closeOpenGoal(tx, existing, closeAt); err != nil {
				return err
			}
		}

		if updated {
			return nil
		}
		return tx.Create(goal).Error
	})
}

// closeOpenGoal ends open at endDate. When a closed goal already spans the
// same range it takes the open goal's values and the open row is removed.
func closeOpenGoal(tx *gorm.DB, open models.WeightLossGoal, endDate time.Time) error {
	closed := models.WeightLossGoal{}
	result := tx.Where("end_date = ? AND start_date = (SELECT start_date FROM weight_loss_goals WHERE id = ?)", endDate, open.ID).
		Limit(1).
		Find(&closed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return tx.Model(&models.WeightLossGoal{}).Where("id = ?", open.ID).Update("end_date", endDate).Error
	}

	if err := tx.Model(&models.WeightLossGoal{}).Where("id = ?", closed.ID).Updates(map[string]any{
		"goal_lbs_per_week": open.RateLbsPerWeek,
		"rmr":               open.RestingMetabolicRate,
	}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.WeightLossGoal{}, open.ID).Error
}

func (repo *GoalRepository) FindCurrent() (models.WeightLossGoal, bool, error) {
	return repo.findOne(repo.database.Where("end_date IS NULL"))
}

// FindForDate returns the goal whose range covers day; the latest start wins.
func (repo *GoalRepository) FindForDate(day time.Time) (models.WeightLossGoal, bool, error) {
	return repo.findOne(repo.database.Where("start_date <= ? AND (end_date >= ? OR end_date IS NULL)", day, day))
}

func (repo *GoalRepository) List() ([]models.WeightLossGoal, error) {
	goals := make([]models.WeightLossGoal, 0)
	if err := repo.database.Order("start_date ASC, id ASC").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (repo *GoalRepository) findOne(query *gorm.DB) (models.WeightLossGoal, bool, error) {
	goal := models.WeightLossGoal{}
	result := query.Order("start_date DESC, id DESC").Limit(1).Find(&goal)
	if result.Error != nil {
		return models.WeightLossGoal{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.WeightLossGoal{}, false, nil
	}
	return goal, true, nil
}
