package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/samaan/internal/models"
)

var (
	ErrDailyRecordLoadFailed   = errors.New("load daily record failed")
	ErrDailyRecordSaveFailed   = errors.New("save daily record failed")
	ErrDailyRecordDeleteFailed = errors.New("delete daily record failed")
	ErrDailyRecordNotFound     = errors.New("daily record not found")
	ErrGoalLoadFailed          = errors.New("load goal failed")
)

type CalorieRepository interface {
	SaveDay(day time.Time, exercise int, weight decimal.NullDecimal, meals []models.MealDetail) (models.CalorieIntake, error)
	FindByDate(day time.Time) (models.CalorieIntake, bool, error)
	ListRange(from *time.Time, to *time.Time) ([]models.CalorieIntake, error)
	DeleteByDate(day time.Time) (bool, error)
}

type CurrentGoalReader interface {
	FindCurrent() (models.WeightLossGoal, bool, error)
}

type CalorieService struct {
	intakes CalorieRepository
	goals   CurrentGoalReader
}

// CaloriesProgress is everything the progress view charts for one range.
type CaloriesProgress struct {
	Range            ViewRange              `json:"range"`
	Summaries        []PeriodSummary        `json:"summaries"`
	TotalNetCalories int                    `json:"total_net_calories"`
	HasGoal          bool                   `json:"has_goal"`
	Goal             *models.WeightLossGoal `json:"goal"`
	Evaluation       *GoalEvaluation        `json:"evaluation"`
	DailyTarget      *decimal.Decimal       `json:"daily_target"`
	Weights          []WeightPoint          `json:"weights"`
}

type WeightPoint struct {
	Date   time.Time       `json:"date"`
	Weight decimal.Decimal `json:"weight"`
}

func NewCalorieService(intakes CalorieRepository, goals CurrentGoalReader) *CalorieService {
	return &CalorieService{intakes: intakes, goals: goals}
}

// FetchRecord returns the stored record for day, or an empty record with all
// meals at zero when nothing was saved yet.
func (service *CalorieService) FetchRecord(day time.Time) (models.DailyRecord, bool, error) {
	intake, found, err := service.intakes.FindByDate(day)
	if err != nil {
		return models.DailyRecord{}, false, ErrDailyRecordLoadFailed
	}
	if !found {
		return emptyDailyRecord(day), false, nil
	}
	return intake.Record(), true, nil
}

func (service *CalorieService) SaveDailyData(day time.Time, input DailyInput) (models.DailyRecord, error) {
	normalized, err := NormalizeDailyInput(input)
	if err != nil {
		return models.DailyRecord{}, err
	}

	intake, err := service.intakes.SaveDay(day, normalized.ExerciseCalories, normalized.Weight, normalized.mealDetails())
	if err != nil {
		return models.DailyRecord{}, ErrDailyRecordSaveFailed
	}
	return intake.Record(), nil
}

func (service *CalorieService) ListRecords(from *time.Time, to *time.Time) ([]models.DailyRecord, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, ErrInvalidRange
	}

	intakes, err := service.intakes.ListRange(from, to)
	if err != nil {
		return nil, ErrDailyRecordLoadFailed
	}

	records := make([]models.DailyRecord, 0, len(intakes))
	for _, intake := range intakes {
		records = append(records, intake.Record())
	}
	return records, nil
}

func (service *CalorieService) DeleteRecord(day time.Time) error {
	deleted, err := service.intakes.DeleteByDate(day)
	if err != nil {
		return ErrDailyRecordDeleteFailed
	}
	if !deleted {
		return ErrDailyRecordNotFound
	}
	return nil
}

func (service *CalorieService) BuildProgress(view string, today time.Time) (CaloriesProgress, error) {
	viewRange, err := ResolveViewRange(view, today)
	if err != nil {
		return CaloriesProgress{}, err
	}
	return service.BuildProgressForRange(viewRange)
}

// BuildProgressForRange summarises the records in viewRange and evaluates them
// against the current goal.
func (service *CalorieService) BuildProgressForRange(viewRange ViewRange) (CaloriesProgress, error) {
	records, err := service.ListRecords(&viewRange.Start, &viewRange.End)
	if err != nil {
		return CaloriesProgress{}, err
	}

	summaries, err := SummarizeCalories(records, viewRange.Start, viewRange.End)
	if err != nil {
		return CaloriesProgress{}, err
	}

	progress := CaloriesProgress{
		Range:            viewRange,
		Summaries:        summaries,
		TotalNetCalories: SumNetCalories(summaries),
		Weights:          weightSeries(records),
	}

	goal, found, err := service.goals.FindCurrent()
	if err != nil {
		return CaloriesProgress{}, ErrGoalLoadFailed
	}

	var current *models.WeightLossGoal
	if found {
		current = &goal
	}
	evaluation, err := EvaluateGoal(summaries, current)
	switch {
	case errors.Is(err, ErrNoGoalConfigured):
		return progress, nil
	case err != nil:
		return CaloriesProgress{}, err
	}

	dailyTarget := DailyTarget(goal)
	progress.HasGoal = true
	progress.Goal = current
	progress.Evaluation = &evaluation
	progress.DailyTarget = &dailyTarget
	return progress, nil
}

func emptyDailyRecord(day time.Time) models.DailyRecord {
	meals := make(map[models.MealType]int, len(models.MealTypes))
	for _, mealType := range models.MealTypes {
		meals[mealType] = 0
	}
	return models.DailyRecord{Date: day, Meals: meals}
}

func weightSeries(records []models.DailyRecord) []WeightPoint {
	points := make([]WeightPoint, 0, len(records))
	for _, record := range records {
		if !record.Weight.Valid {
			continue
		}
		points = append(points, WeightPoint{Date: record.Date, Weight: record.Weight.Decimal})
	}
	return points
}
