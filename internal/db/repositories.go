package db

import "gorm.io/gorm"

type Repositories struct {
	Users    *UserRepository
	Calories *CalorieRepository
	Goals    *GoalRepository
	Stocks   *StockRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		Calories: NewCalorieRepository(database),
		Goals:    NewGoalRepository(database),
		Stocks:   NewStockRepository(database),
	}
}
