package services

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/terraincognita07/samaan/internal/models"
)

var ExportCSVHeaders = []string{
	"Date",
	"Breakfast",
	"Lunch",
	"Dinner",
	"Snacks",
	"Exercise",
	"Weight",
	"Net calories",
}

type ExportRecordReader interface {
	ListRecords(from *time.Time, to *time.Time) ([]models.DailyRecord, error)
}

type ExportService struct {
	records ExportRecordReader
}

type ExportSummary struct {
	TotalEntries int    `json:"total_entries"`
	HasData      bool   `json:"has_data"`
	DateFrom     string `json:"date_from"`
	DateTo       string `json:"date_to"`
}

type ExportEntry struct {
	Date        string         `json:"date"`
	Meals       map[string]int `json:"meals"`
	Exercise    int            `json:"exercise"`
	Weight      *string        `json:"weight"`
	NetCalories int            `json:"net_calories"`
}

func NewExportService(records ExportRecordReader) *ExportService {
	return &ExportService{records: records}
}

func (service *ExportService) BuildSummary(from *time.Time, to *time.Time) (ExportSummary, error) {
	records, err := service.records.ListRecords(from, to)
	if err != nil {
		return ExportSummary{}, err
	}
	if len(records) == 0 {
		return ExportSummary{}, nil
	}

	first := records[0].Date
	last := records[0].Date
	for _, record := range records[1:] {
		if record.Date.Before(first) {
			first = record.Date
		}
		if record.Date.After(last) {
			last = record.Date
		}
	}

	return ExportSummary{
		TotalEntries: len(records),
		HasData:      true,
		DateFrom:     FormatCalendarDay(first),
		DateTo:       FormatCalendarDay(last),
	}, nil
}

func (service *ExportService) BuildEntries(from *time.Time, to *time.Time) ([]ExportEntry, error) {
	records, err := service.records.ListRecords(from, to)
	if err != nil {
		return nil, err
	}

	entries := make([]ExportEntry, 0, len(records))
	for _, record := range records {
		meals := make(map[string]int, len(models.MealTypes))
		for _, mealType := range models.MealTypes {
			meals[string(mealType)] = record.MealCalories(mealType)
		}

		entry := ExportEntry{
			Date:        FormatCalendarDay(record.Date),
			Meals:       meals,
			Exercise:    record.ExerciseCalories,
			NetCalories: NetCalories(record),
		}
		if record.Weight.Valid {
			weight := record.Weight.Decimal.String()
			entry.Weight = &weight
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// BuildCSV renders the entries in range as CSV with ExportCSVHeaders.
func (service *ExportService) BuildCSV(from *time.Time, to *time.Time) ([]byte, error) {
	entries, err := service.BuildEntries(from, to)
	if err != nil {
		return nil, err
	}

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(ExportCSVHeaders); err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if err := writer.Write(entry.Columns()); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}

func (entry ExportEntry) Columns() []string {
	weight := ""
	if entry.Weight != nil {
		weight = *entry.Weight
	}

	columns := []string{entry.Date}
	for _, mealType := range models.MealTypes {
		columns = append(columns, strconv.Itoa(entry.Meals[string(mealType)]))
	}
	return append(columns,
		strconv.Itoa(entry.Exercise),
		weight,
		strconv.Itoa(entry.NetCalories),
	)
}
